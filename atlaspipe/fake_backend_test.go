package atlaspipe

import (
	"errors"
	"image"
	"os"

	"github.com/nullforge/atlaspack/raster"
)

// fakeRaster/fakeBackend let pipeline tests run without real image codecs:
// DecodeBytes derives a deterministic size from the payload's first and
// last byte values instead of parsing pixels.
type fakeRaster struct{ w, h int }

func (r fakeRaster) Bounds() (int, int) { return r.w, r.h }
func (r fakeRaster) Image() image.Image { return image.NewRGBA(image.Rect(0, 0, r.w, r.h)) }

type fakeBackend struct{}

func (fakeBackend) Decode(path string) (raster.Raster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fakeBackend{}.DecodeBytes(data)
}

func (fakeBackend) DecodeBytes(data []byte) (raster.Raster, error) {
	if len(data) == 0 {
		return nil, errors.New("fakeBackend: empty payload")
	}
	// Derive a plausible, varied size from the content so different fixture
	// files produce different dimensions.
	w := 50 + int(data[0])
	h := 50 + int(data[len(data)-1])
	return fakeRaster{w: w, h: h}, nil
}

func (fakeBackend) New(w, h int) raster.Raster { return fakeRaster{w, h} }

func (fakeBackend) Paste(dst, src raster.Raster, x, y int) {}

func (fakeBackend) Crop(src raster.Raster, w, h int) raster.Raster { return fakeRaster{w, h} }

func (fakeBackend) Resize(src raster.Raster, w, h int) raster.Raster { return fakeRaster{w, h} }

func (fakeBackend) Encode(src raster.Raster, path string) error {
	r := src.(fakeRaster)
	return os.WriteFile(path, []byte{byte(r.w), byte(r.h)}, 0o644)
}
