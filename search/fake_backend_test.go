package search

import (
	"errors"
	"image"

	"github.com/nullforge/atlaspack/raster"
)

// fakeRaster carries only dimensions; these tests exercise packing
// geometry, not real pixel data.
type fakeRaster struct {
	w, h int
}

func (r fakeRaster) Bounds() (int, int) { return r.w, r.h }
func (r fakeRaster) Image() image.Image { return image.NewRGBA(image.Rect(0, 0, r.w, r.h)) }

// fakeBackend implements raster.Backend without any real image codec, so
// search-package tests can run entirely on geometry.
type fakeBackend struct{}

func (fakeBackend) Decode(string) (raster.Raster, error) {
	return nil, errors.New("fakeBackend: Decode not supported")
}

func (fakeBackend) DecodeBytes([]byte) (raster.Raster, error) {
	return nil, errors.New("fakeBackend: DecodeBytes not supported")
}

func (fakeBackend) New(w, h int) raster.Raster { return fakeRaster{w, h} }

func (fakeBackend) Paste(dst, src raster.Raster, x, y int) {}

func (fakeBackend) Crop(src raster.Raster, w, h int) raster.Raster { return fakeRaster{w, h} }

func (fakeBackend) Resize(src raster.Raster, w, h int) raster.Raster { return fakeRaster{w, h} }

func (fakeBackend) Encode(src raster.Raster, path string) error { return nil }

func item(name string, w, h int) Item {
	return Item{Name: name, Raster: fakeRaster{w, h}, W: w, H: h}
}
