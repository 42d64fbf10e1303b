package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yeimages/resfinder/resource_scanner/models"
)

// Config represents the structure of the configuration file
type Config struct {
	Version          string   `mapstructure:"version"`
	ProjectPath      string   `mapstructure:"project_path"`
	ExcludeFolders   []string `mapstructure:"exclude_folders"`
	ResourceSuffixes []string `mapstructure:"resource_suffixes"`
	FileSuffixes     []string `mapstructure:"file_suffixes"`
	SimilarPatterns  []string `mapstructure:"similar_patterns"`
	UseSimilar       bool     `mapstructure:"use_similar"`
	RespectGitignore bool     `mapstructure:"respect_gitignore"`
	MaxFileSize      int64    `mapstructure:"max_file_size"`
	EnableCache      bool     `mapstructure:"enable_cache"`
	CacheDir         string   `mapstructure:"cache_dir"`
	LogLevel         string   `mapstructure:"log_level"`
	Theme            string   `mapstructure:"theme"`
	OutputFormat     string   `mapstructure:"output_format"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:        "0.3.0",
	ProjectPath:    "",
	ExcludeFolders: []string{"Pods", "Carthage", "build", "DerivedData", "node_modules", ".build"},
	ResourceSuffixes: []string{
		"imageset", "appiconset", "launchimage", "bundle",
		"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "webp",
	},
	FileSuffixes: []string{
		"h", "m", "mm", "c", "cpp", "swift", "xib", "storyboard", "strings", "plist", "json",
		"html", "htm", "js", "css", "pbxproj",
	},
	SimilarPatterns:  []string{`^\D*?(\d+)\D*$`},
	UseSimilar:       true,
	RespectGitignore: false,
	MaxFileSize:      10 * 1024 * 1024,
	EnableCache:      true,
	CacheDir:         "",
	LogLevel:         "warn",
	Theme:            "dracula",
	OutputFormat:     "table",
}

// OutputFormats are the accepted values of output_format.
var OutputFormats = []string{"table", "json", "yaml", "markdown", "html"}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.SetEnvPrefix("RESFINDER")
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		// Look for resfinder-config.{yml,yaml,json} in the current directory
		viper.SetConfigName("resfinder-config")
		viper.AddConfigPath(cwd)

		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if config.ProjectPath == "" {
		config.ProjectPath = cwd
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects values the scanners cannot work with.
func (c *Config) Validate() error {
	if len(c.ResourceSuffixes) == 0 {
		return errors.New("resource_suffixes must not be empty")
	}
	if len(c.FileSuffixes) == 0 {
		return errors.New("file_suffixes must not be empty")
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative, got %d", c.MaxFileSize)
	}
	for _, format := range OutputFormats {
		if strings.EqualFold(c.OutputFormat, format) {
			c.OutputFormat = format
			return nil
		}
	}
	return fmt.Errorf("unknown output_format %q (expected one of %s)", c.OutputFormat, strings.Join(OutputFormats, ", "))
}

// ScanOptions returns the scanner options described by the configuration.
func (c *Config) ScanOptions() models.ScanOptions {
	return models.ScanOptions{
		ProjectPath:      c.ProjectPath,
		ExcludeFolders:   c.ExcludeFolders,
		ResourceSuffixes: c.ResourceSuffixes,
		FileSuffixes:     c.FileSuffixes,
		RespectGitignore: c.RespectGitignore,
		MaxFileSize:      c.MaxFileSize,
	}
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("project_path", DefaultConfig.ProjectPath)
	viper.SetDefault("exclude_folders", DefaultConfig.ExcludeFolders)
	viper.SetDefault("resource_suffixes", DefaultConfig.ResourceSuffixes)
	viper.SetDefault("file_suffixes", DefaultConfig.FileSuffixes)
	viper.SetDefault("similar_patterns", DefaultConfig.SimilarPatterns)
	viper.SetDefault("use_similar", DefaultConfig.UseSimilar)
	viper.SetDefault("respect_gitignore", DefaultConfig.RespectGitignore)
	viper.SetDefault("max_file_size", DefaultConfig.MaxFileSize)
	viper.SetDefault("enable_cache", DefaultConfig.EnableCache)
	viper.SetDefault("cache_dir", DefaultConfig.CacheDir)
	viper.SetDefault("log_level", DefaultConfig.LogLevel)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("output_format", DefaultConfig.OutputFormat)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("project_path", "RESFINDER_PROJECT_PATH")
	_ = viper.BindEnv("exclude_folders", "RESFINDER_EXCLUDE_FOLDERS")
	_ = viper.BindEnv("resource_suffixes", "RESFINDER_RESOURCE_SUFFIXES")
	_ = viper.BindEnv("file_suffixes", "RESFINDER_FILE_SUFFIXES")
	_ = viper.BindEnv("similar_patterns", "RESFINDER_SIMILAR_PATTERNS")
	_ = viper.BindEnv("use_similar", "RESFINDER_USE_SIMILAR")
	_ = viper.BindEnv("respect_gitignore", "RESFINDER_RESPECT_GITIGNORE")
	_ = viper.BindEnv("max_file_size", "RESFINDER_MAX_FILE_SIZE")
	_ = viper.BindEnv("enable_cache", "RESFINDER_ENABLE_CACHE")
	_ = viper.BindEnv("cache_dir", "RESFINDER_CACHE_DIR")
	_ = viper.BindEnv("log_level", "RESFINDER_LOG_LEVEL")
	_ = viper.BindEnv("theme", "RESFINDER_THEME")
	_ = viper.BindEnv("output_format", "RESFINDER_OUTPUT_FORMAT")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("exclude_folders", flags.Lookup("exclude"))
	_ = viper.BindPFlag("resource_suffixes", flags.Lookup("resource_suffixes"))
	_ = viper.BindPFlag("file_suffixes", flags.Lookup("file_suffixes"))
	_ = viper.BindPFlag("similar_patterns", flags.Lookup("similar_patterns"))
	_ = viper.BindPFlag("use_similar", flags.Lookup("use_similar"))
	_ = viper.BindPFlag("respect_gitignore", flags.Lookup("respect_gitignore"))
	_ = viper.BindPFlag("max_file_size", flags.Lookup("max_file_size"))
	_ = viper.BindPFlag("enable_cache", flags.Lookup("enable_cache"))
	_ = viper.BindPFlag("cache_dir", flags.Lookup("cache_dir"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log_level"))
	_ = viper.BindPFlag("theme", flags.Lookup("theme"))
	_ = viper.BindPFlag("output_format", flags.Lookup("format"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Path to a configuration file (JSON or YAML). Defaults to resfinder-config.{yml,yaml,json} in the current directory.")

	// Scan configuration
	flags.StringSlice("exclude", DefaultConfig.ExcludeFolders, "Folder names skipped together with their subtree.")
	flags.StringSlice("resource_suffixes", DefaultConfig.ResourceSuffixes, "Suffixes of resource files and bundles (e.g., 'png', 'imageset').")
	flags.StringSlice("file_suffixes", DefaultConfig.FileSuffixes, "Suffixes of source files searched for resource names.")
	flags.StringSlice("similar_patterns", DefaultConfig.SimilarPatterns, "Regular expressions whose first group marks the variable part of a name.")
	flags.Bool("use_similar", DefaultConfig.UseSimilar, "Treat names referenced through format strings like 'icon_%d' as used.")
	flags.Bool("respect_gitignore", DefaultConfig.RespectGitignore, "Skip paths ignored by the project's .gitignore.")
	flags.Int64("max_file_size", DefaultConfig.MaxFileSize, "Source files larger than this many bytes are not searched (0 disables the limit).")

	// Cache configuration
	flags.Bool("enable_cache", DefaultConfig.EnableCache, "Enable or disable the extraction cache for faster rescans.")
	flags.String("cache_dir", DefaultConfig.CacheDir, "Directory of the extraction cache (defaults to the user cache directory).")

	// Output configuration
	flags.String("log_level", DefaultConfig.LogLevel, "Log level: 'trace', 'debug', 'info', 'warn', 'error'.")
	flags.String("theme", DefaultConfig.Theme, "Highlighting theme used by 'where' (e.g., 'dracula', 'monokai').")
	flags.StringP("format", "o", DefaultConfig.OutputFormat, "Report format: "+strings.Join(OutputFormats, ", ")+".")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}
