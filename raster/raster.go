// Package raster defines the pluggable imaging backend contract and a
// concrete implementation on top of github.com/disintegration/imaging.
// Everything above this package works in terms of the Raster interface,
// never a concrete image library type, so the backend can be swapped
// without touching the packing engine.
package raster

import "image"

// Raster is a 32-bit RGBA in-memory image. It is intentionally a minimal
// contract: its dimensions and the underlying image; decoding, canvas
// creation, paste, crop, resize and encode are Backend operations.
// Backends return image.NRGBA-backed rasters (what
// disintegration/imaging natively produces), the non-premultiplied
// 8-bit-per-channel RGBA layout.
type Raster interface {
	// Bounds returns the raster's pixel dimensions.
	Bounds() (w, h int)
	// Image exposes the underlying image.Image for backends (encode,
	// paste source) that need it; callers outside this package should
	// otherwise treat Raster as opaque.
	Image() image.Image
}

// Backend is the pluggable imaging contract: decode a file to a raster,
// create a blank transparent canvas, paste one raster onto another at an
// offset, crop to a sub-rectangle, resize with a high-quality filter, and
// encode to PNG. This package supplies one concrete backend satisfying
// the contract; alternative backends are out of scope.
type Backend interface {
	// Decode loads path, converting to the Raster representation.
	Decode(path string) (Raster, error)
	// DecodeBytes loads raw encoded image bytes (used once file content is
	// already read for hashing, to avoid re-reading the file).
	DecodeBytes(data []byte) (Raster, error)
	// New creates a transparent w×h canvas.
	New(w, h int) Raster
	// Paste draws src onto dst at (x,y), mutating dst in place.
	Paste(dst Raster, src Raster, x, y int)
	// Crop returns a new raster containing the sub-rectangle
	// (0,0)-(w,h) of src.
	Crop(src Raster, w, h int) Raster
	// Resize returns a new raster of size w×h, resampled with a
	// Lanczos-equivalent filter.
	Resize(src Raster, w, h int) Raster
	// Encode writes src as a PNG to path.
	Encode(src Raster, path string) error
}
