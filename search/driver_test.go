package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFindBestPackingPlacesEverythingThatFits(t *testing.T) {
	var items []Item
	for i := 0; i < 12; i++ {
		items = append(items, item(nameOf(i), 400, 400))
	}
	atlases, remaining := FindBestPacking(context.Background(), zap.NewNop(), fakeBackend{}, items, 2, nil)
	assert.Empty(t, remaining)
	require.NotEmpty(t, atlases)

	placed := map[string]bool{}
	for _, a := range atlases {
		for name := range a.UV {
			placed[name] = true
		}
	}
	assert.Len(t, placed, len(items), "union of placed names across atlases must equal the input set")
}

func TestFindBestPackingReturnsResidualWhenNothingFits(t *testing.T) {
	items := []Item{item("a", 3000, 3000)}
	atlases, remaining := FindBestPacking(context.Background(), zap.NewNop(), fakeBackend{}, items, 2, nil)
	assert.Empty(t, atlases)
	assert.Len(t, remaining, 1)
}

func nameOf(i int) string {
	return string(rune('a' + i))
}
