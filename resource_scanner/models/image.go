package models

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/yeimages/resfinder/utils"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoPreview is returned when an entry has nothing that can be decoded.
var ErrNoPreview = errors.New("no decodable image")

// Image decodes the resource for preview. For a bundle directory the largest
// image file directly inside it is used.
func (e *ResourceEntry) Image() (image.Image, error) {
	path := e.FullPath
	if e.IsDir {
		var err error
		path, err = largestImageIn(e.FullPath)
		if err != nil {
			return nil, err
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// Thumbnail returns the preview scaled so that its longer side is at most
// maxSide pixels. Images that already fit are returned as they are.
func (e *ResourceEntry) Thumbnail(maxSide int) (image.Image, error) {
	img, err := e.Image()
	if err != nil {
		return nil, err
	}
	return ScaleToFit(img, maxSide), nil
}

// ScaleToFit scales img down so that its longer side is at most maxSide.
func ScaleToFit(img image.Image, maxSide int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxSide <= 0 || (width <= maxSide && height <= maxSide) {
		return img
	}

	scaledW, scaledH := maxSide, maxSide
	if width > height {
		scaledH = max(1, height*maxSide/width)
	} else {
		scaledW = max(1, width*maxSide/height)
	}

	thumb := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), img, bounds, draw.Over, nil)
	return thumb
}

func largestImageIn(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var best string
	var bestSize int64 = -1
	for _, entry := range entries {
		if entry.IsDir() || !utils.IsImageName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			best = filepath.Join(dir, entry.Name())
			bestSize = info.Size()
		}
	}

	if best == "" {
		return "", fmt.Errorf("%s: %w", dir, ErrNoPreview)
	}
	return best, nil
}
