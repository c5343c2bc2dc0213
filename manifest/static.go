package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CompressedAtlas is one atlas entry in the static-publication manifest:
// the subset of AtlasRecord a downstream consumer needs, with its uv map
// keyed by stable integer image index instead of filename.
type CompressedAtlas struct {
	Scale  int           `json:"scale"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	SHA256 string        `json:"sha"`
	UV     map[string]UV `json:"uv"`
}

// CompressedManifest is the static-publication format: the same data as
// Manifest, index-rewritten and metadata-only.
type CompressedManifest struct {
	Version  int                    `json:"version"`
	Mapping  []ImageMetadata        `json:"mapping"`
	Atlases  []CompressedAtlas      `json:"atlases"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Compress implements the static-publication index-rewrite: each atlas's
// uv map gets its string keys replaced by the stable integer index (as a
// string) of the image in the manifest's stable image order (the input
// manifest's "images" key order, else lexicographic filename order), and a
// top-level mapping array lists that same per-image metadata in order. uv
// entries whose image name is not in that order are omitted.
func Compress(m *Manifest) *CompressedManifest {
	order := m.imageOrder
	indexOf := make(map[string]int, len(order))
	mapping := make([]ImageMetadata, 0, len(order))
	for i, name := range order {
		indexOf[name] = i
		mapping = append(mapping, m.ImagesMetadata[name])
	}

	atlases := make([]CompressedAtlas, 0, len(m.Atlases))
	for _, a := range m.Atlases {
		uv := make(map[string]UV, len(a.UV))
		for name, entry := range a.UV {
			idx, ok := indexOf[name]
			if !ok {
				continue
			}
			uv[fmt.Sprintf("%d", idx)] = entry
		}
		atlases = append(atlases, CompressedAtlas{
			Scale:  a.Scale,
			Width:  a.Width,
			Height: a.Height,
			SHA256: a.SHA256,
			UV:     uv,
		})
	}

	return &CompressedManifest{
		Version:  m.Version,
		Mapping:  mapping,
		Atlases:  atlases,
		Metadata: m.Metadata,
	}
}

// WriteStatic writes the compressed manifest to outputDir/atlas.json and
// copies every source atlas PNG into outputDir/atlas/<flat-index>.png,
// where the flat index runs across all atlases in m.Atlases order.
func WriteStatic(sourceDir, outputDir string, m *Manifest) error {
	compressed := Compress(m)

	data, err := json.MarshalIndent(compressed, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: encode compressed manifest: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("manifest: create static output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "atlas.json"), data, 0o644); err != nil {
		return fmt.Errorf("manifest: write atlas.json: %w", err)
	}

	imagesDir := filepath.Join(outputDir, "atlas")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return fmt.Errorf("manifest: create static images dir: %w", err)
	}
	for index, atlas := range m.Atlases {
		src := filepath.Join(sourceDir, atlas.File)
		dst := filepath.Join(imagesDir, fmt.Sprintf("%d%s", index, filepath.Ext(atlas.File)))
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("manifest: copy %s: %w", atlas.File, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
