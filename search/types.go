// Package search implements the single-atlas search, the adaptive
// multi-atlas driver and the individual-atlas fallback. It depends on
// pack for rectangle placement and raster for the imaging backend, but
// knows nothing about downscale levels or manifest persistence (those
// live in atlaspipe and manifest).
package search

import (
	"github.com/nullforge/atlaspack/pack"
	"github.com/nullforge/atlaspack/raster"
)

// Item is a single source image to place: its stable name (the manifest
// key) and its raster at whatever resolution the caller wants packed
// (already downscaled, for a given pipeline level).
type Item struct {
	Name   string
	Raster raster.Raster
	W, H   int
}

// Dimensions implements pack.Sortable.
func (it Item) Dimensions() (int, int) {
	return it.W, it.H
}

// UV is the per-image placement within one atlas, in the bottom-left-origin
// normalized convention used throughout the manifest.
type UV struct {
	Width, Height                       int
	RectX, RectY, RectWidth, RectHeight float64
}

// Atlas is one packed result: its raster, per-image UV map, dimensions,
// and the configuration that produced it. It omits the fields (scale,
// index, file, sha) that only make sense once a downscale level and
// output path are known; atlaspipe adds those.
type Atlas struct {
	Raster            raster.Raster
	UV                map[string]UV
	Width, Height     int
	Count             int
	SortStrategy      string
	PlacementStrategy string
	Efficiency        float64
}

// score is the three-key lexicographic ranking: more placed images is
// better, smaller cropped atlas area is better, higher efficiency
// (placedArea/totalArea) is better. It implements a total order: for any
// two candidates exactly one of a.better(b), b.better(a), or neither
// (equivalent) holds.
type score struct {
	count      int
	area       int
	placedArea int
}

// better reports whether s is a strictly better candidate than other. The
// efficiency comparison cross-multiplies instead of dividing, avoiding
// floating-point in the hot ranking path:
// placedArea/area > otherPlacedArea/otherArea  <=>  placedArea*otherArea > otherPlacedArea*area.
func (s score) better(other score) bool {
	if s.count != other.count {
		return s.count > other.count
	}
	if s.area != other.area {
		return s.area < other.area
	}
	return s.placedArea*other.area > other.placedArea*s.area
}

// efficiency returns the ratio for display/manifest purposes only.
func (s score) efficiency() float64 {
	if s.area == 0 {
		return 0
	}
	return float64(s.placedArea) / float64(s.area)
}
