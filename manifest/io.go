package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// InputOverrides carries the optional parameters an input manifest.json
// supplies: any of the three may be nil, meaning "use the default."
type InputOverrides struct {
	MaxAtlasSize *int
	Padding      *int
	MaxImageSize *int

	// ImageOrder is the stable image index: the "images" object's key
	// order as it appeared in the file.
	ImageOrder  []string
	ImageFields map[string]map[string]interface{}
	Metadata    map[string]interface{}
}

// inputManifestWire mirrors the input schema for decoding everything
// except the order-sensitive "images" object, which ReadInput parses
// separately to preserve key order (encoding/json loses map key order).
type inputManifestWire struct {
	Version  int             `json:"version"`
	Metadata json.RawMessage `json:"metadata"`
	Images   json.RawMessage `json:"images"`
}

// ReadInput reads dir/manifest.json if present. A missing file is not an
// error: it returns a zero-value *InputOverrides, meaning "use defaults."
func ReadInput(dir string) (*InputOverrides, error) {
	path := filepath.Join(dir, "manifest.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &InputOverrides{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("manifest: read input manifest: %w", err)
	}

	var wire inputManifestWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("manifest: parse input manifest: %w", err)
	}

	overrides := &InputOverrides{}
	if len(wire.Metadata) > 0 {
		var meta map[string]interface{}
		if err := json.Unmarshal(wire.Metadata, &meta); err != nil {
			return nil, fmt.Errorf("manifest: parse input metadata block: %w", err)
		}
		overrides.MaxAtlasSize = intField(meta, "max_atlas_size")
		overrides.Padding = intField(meta, "padding")
		overrides.MaxImageSize = intField(meta, "max_image_size")
		overrides.Metadata = meta
	}

	if len(wire.Images) > 0 {
		order, fields, err := decodeOrderedImages(wire.Images)
		if err != nil {
			return nil, fmt.Errorf("manifest: parse input images block: %w", err)
		}
		overrides.ImageOrder = order
		overrides.ImageFields = fields
	}

	return overrides, nil
}

func intField(m map[string]interface{}, key string) *int {
	v, ok := m[key]
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

// decodeOrderedImages walks the "images" object token by token to recover
// the key order json.Unmarshal-into-map would otherwise discard.
func decodeOrderedImages(raw json.RawMessage) ([]string, map[string]map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	if _, err := dec.Token(); err != nil { // opening '{'
		return nil, nil, err
	}

	var order []string
	fields := make(map[string]map[string]interface{})
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected non-string key %v", keyTok)
		}

		var value map[string]interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}

		order = append(order, key)
		fields[key] = value
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, nil, err
	}
	return order, fields, nil
}

// Build assembles the output Manifest from the pipeline's atlas outputs
// and per-image original hashes, applying the input manifest's stable
// ordering when one was supplied.
func Build(atlases []AtlasRecord, originalSHA map[string]string, overrides *InputOverrides, maxAtlasSize, maxImageSize, padding, totalImages int) *Manifest {
	m := &Manifest{
		Version:      1,
		Atlases:      atlases,
		TotalImages:  totalImages,
		MaxAtlasSize: maxAtlasSize,
		MaxImageSize: maxImageSize,
		Padding:      padding,
	}

	m.ImagesMetadata = make(map[string]ImageMetadata, len(originalSHA))
	for name, sha := range originalSHA {
		fields := map[string]interface{}{}
		if overrides != nil {
			if f, ok := overrides.ImageFields[name]; ok {
				for k, v := range f {
					fields[k] = v
				}
			}
		}
		m.ImagesMetadata[name] = ImageMetadata{SHA256: sha, Fields: fields}
	}

	if overrides != nil {
		m.Metadata = overrides.Metadata
		m.imageOrder = overrides.ImageOrder
	}
	if len(m.imageOrder) == 0 {
		m.imageOrder = sortedNames(originalSHA)
	}

	return m
}

// sortedNames returns m's keys in lexicographic order: the deterministic
// fallback when no input manifest supplied a stable image order, matching
// the discovery order atlaspipe.LoadDirectory already sorts by.
func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write encodes m as indented JSON to dir/manifest.json.
func Write(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	return nil
}
