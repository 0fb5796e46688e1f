// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging copies user-selected image files into the data directory
// and generates JPEG thumbnails for the card grid. Files are validated by
// decoding their header, not by extension.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	"promptcard/internal/models"
)

const (
	// ImagesDir is the sub-directory of the data directory holding images.
	ImagesDir = "images"

	// ThumbsDir sits inside ImagesDir.
	ThumbsDir = "thumbs"

	// ThumbMaxWidth is the maximum thumbnail width in pixels.
	ThumbMaxWidth = 400

	// thumbQuality is the JPEG quality for generated thumbnails.
	thumbQuality = 80

	// maxImagePixels caps the number of pixels to prevent memory bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	maxImagePixels = 100_000_000

	// MaxFileSize is the largest file accepted for import (50 MB).
	MaxFileSize = 50 << 20
)

var (
	// ErrUnsupported means the file is not a JPEG, PNG, GIF or WebP image.
	ErrUnsupported = errors.New("unsupported image format")

	// ErrTooLarge means the file or its pixel count exceeds the limits.
	ErrTooLarge = errors.New("image too large")
)

// extensions maps decoder format names to file extensions.
var extensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// Importer stores images under <dataDir>/images.
type Importer struct {
	dir string
	now func() time.Time
}

// NewImporter returns an Importer rooted at dataDir.
func NewImporter(dataDir string) *Importer {
	return &Importer{dir: filepath.Join(dataDir, ImagesDir), now: time.Now}
}

// Dir returns the directory images are copied to.
func (im *Importer) Dir() string {
	return im.dir
}

// Import copies the file at src into the images directory under a fresh
// name and returns the Image record describing it. A thumbnail is written
// when the image is wider than ThumbMaxWidth; a failed thumbnail is logged
// and does not fail the import.
func (im *Importer) Import(src string) (models.Image, error) {
	f, err := os.Open(src)
	if err != nil {
		return models.Image{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return im.ImportReader(filepath.Base(src), f)
}

// ImportReader is Import for image data that does not come from a local
// file, such as an HTTP upload. name is kept as the display name.
func (im *Importer) ImportReader(name string, r io.Reader) (models.Image, error) {
	data, err := readLimited(name, r)
	if err != nil {
		return models.Image{}, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return models.Image{}, fmt.Errorf("%s: %w", name, ErrUnsupported)
	}
	ext, ok := extensions[format]
	if !ok {
		return models.Image{}, fmt.Errorf("%s (%s): %w", name, format, ErrUnsupported)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return models.Image{}, fmt.Errorf("%dx%d exceeds %d pixels: %w", cfg.Width, cfg.Height, maxImagePixels, ErrTooLarge)
	}

	if err := os.MkdirAll(im.dir, 0o755); err != nil {
		return models.Image{}, fmt.Errorf("create images dir: %w", err)
	}
	fileID := uuid.NewString()
	dst := filepath.Join(im.dir, fileID+ext)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return models.Image{}, fmt.Errorf("copy image: %w", err)
	}

	img := models.Image{
		Path:       dst,
		Name:       name,
		Size:       int64(len(data)),
		UploadedAt: im.now().UTC(),
	}

	if format != "gif" {
		thumb, err := Thumbnail(bytes.NewReader(data), ThumbMaxWidth)
		switch {
		case err != nil:
			slog.Warn("thumbnail generation failed", "error", err, "path", dst)
		case thumb != nil:
			tp, err := im.writeThumb(fileID, thumb)
			if err != nil {
				slog.Warn("thumbnail write failed", "error", err, "path", dst)
			} else {
				img.Thumbnail = tp
			}
		}
	}

	slog.Info("image imported", "path", dst, "size", img.Size, "format", format)
	return img, nil
}

// Remove deletes an imported image and its thumbnail. Files outside the
// images directory are left alone.
func (im *Importer) Remove(img models.Image) error {
	var errs []error
	for _, p := range []string{img.Path, img.Thumbnail} {
		if p == "" || !im.owns(p) {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (im *Importer) owns(path string) bool {
	rel, err := filepath.Rel(im.dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (im *Importer) writeThumb(fileID string, data []byte) (string, error) {
	dir := filepath.Join(im.dir, ThumbsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	p := filepath.Join(dir, fileID+"_thumb.jpg")
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", err
	}
	return p, nil
}

func readLimited(name string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%s is larger than %d bytes: %w", name, MaxFileSize, ErrTooLarge)
	}
	return data, nil
}

// Thumbnail creates a JPEG thumbnail from an image, constrained to
// maxWidth while preserving aspect ratio. Returns nil if the image is
// already no wider than maxWidth.
func Thumbnail(src io.ReadSeeker, maxWidth int) ([]byte, error) {
	imgCfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if int64(imgCfg.Width)*int64(imgCfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("%dx%d exceeds %d pixels: %w", imgCfg.Width, imgCfg.Height, maxImagePixels, ErrTooLarge)
	}
	if imgCfg.Width <= maxWidth {
		return nil, nil
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	ratio := float64(maxWidth) / float64(bounds.Dx())
	newHeight := max(int(float64(bounds.Dy())*ratio), 1)

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
