package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputReturnsDefaultsWhenManifestMissing(t *testing.T) {
	overrides, err := ReadInput(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, overrides.MaxAtlasSize)
	assert.Nil(t, overrides.Padding)
	assert.Nil(t, overrides.MaxImageSize)
	assert.Empty(t, overrides.ImageOrder)
}

func TestReadInputParsesOverridesAndPreservesImageOrder(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"version": 1,
		"metadata": {"max_atlas_size": 1024, "padding": 4, "max_image_size": 2048, "project": "demo"},
		"images": {
			"zebra.png": {"title": "Zebra"},
			"apple.png": {"title": "Apple", "url": "https://example.test/apple"},
			"mango.png": {}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(content), 0o644))

	overrides, err := ReadInput(dir)
	require.NoError(t, err)
	require.NotNil(t, overrides.MaxAtlasSize)
	assert.Equal(t, 1024, *overrides.MaxAtlasSize)
	assert.Equal(t, 4, *overrides.Padding)
	assert.Equal(t, 2048, *overrides.MaxImageSize)
	assert.Equal(t, []string{"zebra.png", "apple.png", "mango.png"}, overrides.ImageOrder,
		"stable image index must follow the input manifest's key order, not alphabetical order")
	assert.Equal(t, "Apple", overrides.ImageFields["apple.png"]["title"])
	assert.Equal(t, "demo", overrides.Metadata["project"])
}

func TestBuildFallsBackToLexicographicOrderWithoutInputManifest(t *testing.T) {
	shas := map[string]string{"b.png": "sha-b", "a.png": "sha-a"}
	m := Build(nil, shas, &InputOverrides{}, 2048, 2048, 2, 2)
	assert.Equal(t, []string{"a.png", "b.png"}, m.imageOrder)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := Build(
		[]AtlasRecord{{File: "atlas_x01_00.png", Scale: 1, Index: 0, Width: 100, Height: 100, Count: 1, SHA256: "deadbeef"}},
		map[string]string{"a.png": "sha-a"},
		&InputOverrides{},
		2048, 2048, 2, 1,
	)
	require.NoError(t, Write(dir, m))

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(1), decoded["version"])
	assert.Equal(t, float64(1), decoded["total_images"])

	meta := decoded["images_metadata"].(map[string]interface{})["a.png"].(map[string]interface{})
	assert.Equal(t, "sha-a", meta["sha"])
}
