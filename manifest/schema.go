// Package manifest defines the on-disk manifest schema, reads input
// manifest overrides, writes the output manifest, and implements the
// static-publication index-rewrite transform.
package manifest

import "encoding/json"

// UV is one image's placement within an atlas, normalized to the cropped
// atlas dimensions, bottom-left origin.
type UV struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	RectX      float64 `json:"rect_x"`
	RectY      float64 `json:"rect_y"`
	RectWidth  float64 `json:"rect_width"`
	RectHeight float64 `json:"rect_height"`
}

// AtlasRecord is one packed atlas entry in the output manifest.
type AtlasRecord struct {
	File              string         `json:"file"`
	Scale             int            `json:"scale"`
	Index             int            `json:"index"`
	Width             int            `json:"width"`
	Height            int            `json:"height"`
	UV                map[string]UV  `json:"uv"`
	Count             int            `json:"count"`
	SHA256            string         `json:"sha"`
	SortStrategy      string         `json:"sort_strategy"`
	PlacementStrategy string         `json:"placement_strategy"`
	Efficiency        float64        `json:"efficiency"`
}

// ImageMetadata is the per-image entry of images_metadata: the original
// content hash plus whatever user fields came from the input manifest
// (title, url, ...).
type ImageMetadata struct {
	SHA256 string                 `json:"-"`
	Fields map[string]interface{} `json:"-"`
}

// MarshalJSON flattens SHA256 and Fields into a single JSON object, since
// images_metadata entries place "sha" alongside arbitrary user fields
// rather than nesting them.
func (m ImageMetadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(m.Fields)+1)
	for k, v := range m.Fields {
		out[k] = v
	}
	out["sha"] = m.SHA256
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (m *ImageMetadata) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if sha, ok := raw["sha"].(string); ok {
		m.SHA256 = sha
	}
	delete(raw, "sha")
	m.Fields = raw
	return nil
}

// Manifest is the full output manifest.
type Manifest struct {
	Version        int                      `json:"version"`
	Atlases        []AtlasRecord            `json:"atlases"`
	TotalImages    int                      `json:"total_images"`
	MaxAtlasSize   int                      `json:"max_atlas_size"`
	MaxImageSize   int                      `json:"max_image_size"`
	Padding        int                      `json:"padding"`
	ImagesMetadata map[string]ImageMetadata `json:"images_metadata"`
	Metadata       map[string]interface{}   `json:"metadata,omitempty"`

	// imageOrder preserves the stable image index: either the input
	// manifest's "images" key order, or discovery order if no input
	// manifest supplied one. Not serialized directly; static-publication
	// consumes it.
	imageOrder []string
}
