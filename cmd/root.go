package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yeimages/resfinder/config"
	"github.com/yeimages/resfinder/constants/lipgloss"
	"github.com/yeimages/resfinder/resource_scanner"
	"github.com/yeimages/resfinder/utils"
)

// RootDependencies holds the services shared by all subcommands.
type RootDependencies struct {
	Cwd       string
	Config    *config.Config
	Logger    *pterm.Logger
	Cache     *resource_scanner.CacheManager
	Catalog   *resource_scanner.Catalog
	Collector *resource_scanner.Collector
	Patterns  []*regexp.Regexp
}

// RootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "resfinder",
	Short: "Find image resources that nothing in a project refers to",
	Long: `resfinder catalogs the image files and image bundles of an application project,
collects every string in its source files that could name one of them, and reports the
resources that are never referenced. Names built at runtime from format strings such as
"icon_tag_%d" are recognized through configurable patterns.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Println(lipgloss.BlueSky.Render(fmt.Sprintf("resfinder version %s", config.DefaultConfig.Version)))
			return nil
		}
		return cmd.Help()
	},
}

// handleRootCommand loads the configuration and builds the shared services.
// projectPath, when not empty, overrides the configured project root.
func handleRootCommand(cmd *cobra.Command, projectPath string) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get the working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd.Root(), cwd)
	if err != nil {
		return nil, err
	}
	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}
	if !filepath.IsAbs(cfg.ProjectPath) {
		cfg.ProjectPath = filepath.Join(cwd, cfg.ProjectPath)
	}

	patterns, err := resource_scanner.CompilePatterns(cfg.SimilarPatterns)
	if err != nil {
		return nil, err
	}

	logger := utils.NewLogger(cfg.LogLevel, os.Stderr)

	deps := &RootDependencies{
		Cwd:      cwd,
		Config:   cfg,
		Logger:   logger,
		Patterns: patterns,
	}

	if cfg.EnableCache {
		cache, err := resource_scanner.NewCacheManager(cfg.CacheDir)
		if err != nil {
			logger.Warn("extraction cache disabled", logger.Args("error", err))
		} else {
			deps.Cache = cache
		}
	}

	deps.Catalog = resource_scanner.NewCatalog(logger)
	deps.Collector = resource_scanner.NewCollector(logger, deps.Cache)

	return deps, nil
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		cancel()
		os.Exit(1)
	}
}
