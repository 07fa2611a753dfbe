// Package image loads image files and converts them into pixel buffers for
// extraction.
package image

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/hueforge/internal/extract"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct {
	// MaxEdge downscales images whose longest edge exceeds it. Zero
	// disables downscaling.
	MaxEdge int
}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader(maxEdge int) *FileLoader {
	return &FileLoader{MaxEdge: maxEdge}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, BMP, TIFF.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, err := Decode(file)
	if err != nil {
		return nil, err
	}
	return Downscale(img, l.MaxEdge), nil
}

// LoadPixels loads path and converts it for extraction.
func (l *FileLoader) LoadPixels(path string) (extract.Pixels, error) {
	img, err := l.Load(path)
	if err != nil {
		return extract.Pixels{}, err
	}
	return ToPixels(img), nil
}

// Decode decodes any registered format.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}
}

// IsImageFile reports whether path has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// Downscale shrinks img so its longest edge is at most maxEdge, keeping
// the aspect ratio. Smaller images and maxEdge <= 0 return img unchanged.
func Downscale(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := max(w, h)
	if maxEdge <= 0 || longest <= maxEdge {
		return img
	}
	nw := max(1, w*maxEdge/longest)
	nh := max(1, h*maxEdge/longest)

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ToPixels converts img to a row-major straight-alpha RGBA buffer.
func ToPixels(img image.Image) extract.Pixels {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != w*4 || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	data := make([]byte, w*h*4)
	copy(data, nrgba.Pix)
	return extract.Pixels{Data: data, Width: w, Height: h}
}
