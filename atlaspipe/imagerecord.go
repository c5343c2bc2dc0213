// Package atlaspipe orchestrates the downscale pipeline on top of search
// and raster: loading source images, computing original content hashes,
// pre-resizing oversized inputs, driving the adaptive packer and the
// individual-image fallback once per downscale level, and handing the
// accumulated atlases to the manifest package.
package atlaspipe

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minio/sha256-simd"
	"go.uber.org/zap"

	"github.com/nullforge/atlaspack/raster"
	"github.com/nullforge/atlaspack/search"
)

// supportedExtensions matches the input directory contract, case-insensitive.
var supportedExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".bmp": true, ".tiff": true, ".gif": true, ".webp": true,
}

// SourceImage is one loaded, pre-resized source image plus the SHA-256 of
// its original, undecoded bytes.
type SourceImage struct {
	Name           string
	Raster         raster.Raster
	Width, Height  int
	OriginalSHA256 string
}

// LoadDirectory reads every supported image in dir, computes each file's
// SHA-256 over its raw bytes before any decode, decodes it to RGBA, and
// uniformly resizes it down if either side exceeds maxImageSize.
// Per-file decode failures are logged and skipped; they do not abort the
// run.
func LoadDirectory(log *zap.Logger, backend raster.Backend, dir string, maxImageSize int) ([]SourceImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("atlaspipe: read input directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !supportedExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	images := make([]SourceImage, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("failed to read source image", zap.String("file", name), zap.Error(err))
			continue
		}

		sum := sha256.Sum256(data)
		hash := hex.EncodeToString(sum[:])

		img, err := backend.DecodeBytes(data)
		if err != nil {
			log.Warn("failed to decode source image", zap.String("file", name), zap.Error(err))
			continue
		}

		w, h := img.Bounds()
		if w > maxImageSize || h > maxImageSize {
			newW, newH := fitWithin(w, h, maxImageSize)
			img = backend.Resize(img, newW, newH)
			w, h = newW, newH
		}

		images = append(images, SourceImage{
			Name:           name,
			Raster:         img,
			Width:          w,
			Height:         h,
			OriginalSHA256: hash,
		})
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("atlaspipe: no decodable images in %s", dir)
	}
	return images, nil
}

// fitWithin returns the largest (w, h) scaled down proportionally from
// (w, h) so that both sides are <= limit.
func fitWithin(w, h, limit int) (int, int) {
	ratio := min(float64(limit)/float64(w), float64(limit)/float64(h))
	return max(1, int(float64(w)*ratio)), max(1, int(float64(h)*ratio))
}

// toItems adapts loaded source images, already downscaled to one
// pipeline level, into search.Item values for the packer.
func toItems(images []downscaledImage) []search.Item {
	items := make([]search.Item, len(images))
	for i, img := range images {
		items[i] = search.Item{Name: img.Name, Raster: img.Raster, W: img.Width, H: img.Height}
	}
	return items
}
