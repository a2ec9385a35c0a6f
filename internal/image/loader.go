// Package image loads images from files, directories and URLs and turns them
// into colour samples for palette generation.
package image

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "github.com/gen2brain/avif" // Register AVIF format
	_ "golang.org/x/image/bmp"    // Register BMP format
	_ "golang.org/x/image/tiff"   // Register TIFF format
	_ "golang.org/x/image/webp"   // Register WebP format

	"github.com/jmylchreest/swatch/internal/security"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
	"github.com/jmylchreest/swatch/internal/util/imagecache"
)

// LoaderOptions configures a SmartLoader.
type LoaderOptions struct {
	// Cache stores downloaded images in CacheDir and reuses them.
	Cache bool

	// CacheDir overrides the default cache directory.
	CacheDir string

	// AllowHTTP permits plain HTTP URLs.
	AllowHTTP bool
}

// SmartLoader loads images from local files, directories (a random image
// inside) and HTTP(S) URLs.
type SmartLoader struct {
	opts        LoaderOptions
	validateURL func(string) error
	fetch       httputil.FetchOptions
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader(opts LoaderOptions) *SmartLoader {
	return &SmartLoader{
		opts: opts,
		validateURL: func(u string) error {
			return security.ValidateHTTPURL(u, opts.AllowHTTP)
		},
	}
}

// Load loads and decodes the image at path. The returned string is the file
// or URL that was actually decoded, which differs from path for directories.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, string, error) {
	if path == "" {
		return nil, "", fmt.Errorf("image path cannot be empty")
	}

	if IsURL(path) {
		img, err := l.loadFromURL(ctx, path)
		return img, path, err
	}

	resolved, err := ResolveImagePath(path)
	if err != nil {
		return nil, "", err
	}
	img, err := LoadFile(resolved)
	return img, resolved, err
}

func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	if err := l.validateURL(url); err != nil {
		return nil, err
	}

	if l.opts.Cache {
		cached, err := imagecache.DownloadAndCache(ctx, url, imagecache.CacheOptions{
			CacheDir: l.opts.CacheDir,
			Fetch:    l.fetch,
		})
		if err != nil {
			return nil, err
		}
		return LoadFile(cached)
	}

	data, err := httputil.Fetch(ctx, url, l.fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	return decode(bytes.NewReader(data))
}

// LoadFile decodes an image file. Supported formats: JPEG, PNG, GIF, WebP,
// AVIF, BMP and TIFF.
func LoadFile(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
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

	return decode(file)
}

func decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif", ".bmp", ".tif", ".tiff"}
}

func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages returns the image files directly inside dirPath,
// following symlinks but not recursing.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			continue
		}
		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}
	return imageFiles, nil
}

// SelectRandomImage selects a random image from a list of image paths.
func SelectRandomImage(imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("image path list is empty")
	}

	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(imagePaths))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return imagePaths[idx.Int64()], nil
}

// ResolveImagePath returns path itself for files and URLs, and a random
// image inside it for directories.
func ResolveImagePath(path string) (string, error) {
	if IsURL(path) {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}
	return SelectRandomImage(imageFiles)
}
