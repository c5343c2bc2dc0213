package raster

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// nrgbaRaster wraps *image.NRGBA, the type disintegration/imaging decodes
// to and operates on natively.
type nrgbaRaster struct {
	img *image.NRGBA
}

func (r *nrgbaRaster) Bounds() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *nrgbaRaster) Image() image.Image {
	return r.img
}

// ImagingBackend implements Backend on github.com/disintegration/imaging,
// grounded on other_examples/91xusir-rectpack2d/main_test.go.go pairing
// the same package with a rectangle packer. Registering additional
// image.Decode formats (bmp/tiff/webp) happens in formats.go; imaging
// itself covers PNG/JPEG/GIF via the stdlib image package it wraps.
type ImagingBackend struct{}

// NewImagingBackend constructs the default backend.
func NewImagingBackend() *ImagingBackend {
	return &ImagingBackend{}
}

func (b *ImagingBackend) Decode(path string) (Raster, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(false))
	if err != nil {
		return nil, err
	}
	return &nrgbaRaster{img: toNRGBA(img)}, nil
}

func (b *ImagingBackend) DecodeBytes(data []byte) (Raster, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(false))
	if err != nil {
		return nil, err
	}
	return &nrgbaRaster{img: toNRGBA(img)}, nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(img)
}

func (b *ImagingBackend) New(w, h int) Raster {
	return &nrgbaRaster{img: imaging.New(w, h, image.Transparent)}
}

func (b *ImagingBackend) Paste(dst Raster, src Raster, x, y int) {
	d := dst.(*nrgbaRaster)
	s := src.(*nrgbaRaster)
	d.img = imaging.Paste(d.img, s.img, image.Pt(x, y))
}

func (b *ImagingBackend) Crop(src Raster, w, h int) Raster {
	s := src.(*nrgbaRaster)
	cropped := imaging.Crop(s.img, image.Rect(0, 0, w, h))
	return &nrgbaRaster{img: cropped}
}

func (b *ImagingBackend) Resize(src Raster, w, h int) Raster {
	s := src.(*nrgbaRaster)
	resized := imaging.Resize(s.img, w, h, imaging.Lanczos)
	return &nrgbaRaster{img: resized}
}

func (b *ImagingBackend) Encode(src Raster, path string) error {
	s := src.(*nrgbaRaster)
	return imaging.Save(s.img, path, imaging.PNGCompressionLevel(png.BestCompression))
}
