package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type dims struct {
	name string
	w, h int
}

func (d dims) Dimensions() (int, int) { return d.w, d.h }

func TestSortAreaDescendingIsStableOnTies(t *testing.T) {
	items := []dims{
		{"a", 10, 10}, // area 100
		{"b", 20, 5},  // area 100
		{"c", 5, 40},  // area 200
	}
	out := Sort(items, SortArea)
	names := []string{out[0].name, out[1].name, out[2].name}
	assert.Equal(t, []string{"c", "a", "b"}, names, "equal-area items must preserve source order")
}

func TestSortNoneIsIdentity(t *testing.T) {
	items := []dims{{"a", 1, 1}, {"b", 9, 9}, {"c", 5, 5}}
	out := Sort(items, SortNone)
	for i, it := range items {
		assert.Equal(t, it.name, out[i].name)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	items := []dims{{"a", 1, 1}, {"b", 9, 9}}
	_ = Sort(items, SortWidth)
	assert.Equal(t, "a", items[0].name, "Sort must not reorder the caller's slice in place")
}

func TestSortPathologicalInterleavesFromBothEnds(t *testing.T) {
	items := []dims{
		{"a", 1, 1}, // area 1, smallest
		{"b", 2, 2}, // area 4
		{"c", 3, 3}, // area 9
		{"d", 4, 4}, // area 16
		{"e", 5, 5}, // area 25, largest
	}
	out := Sort(items, SortPathological)
	names := make([]string, len(out))
	for i, it := range out {
		names[i] = it.name
	}
	// Area-descending order is e,d,c,b,a; interleaving from both ends
	// gives e (outer), a (inner), d, b, c (middle, appears once).
	assert.Equal(t, []string{"e", "a", "d", "b", "c"}, names)
}

func TestSortPathologicalEvenLength(t *testing.T) {
	items := []dims{{"a", 1, 1}, {"b", 2, 2}, {"c", 3, 3}, {"d", 4, 4}}
	out := Sort(items, SortPathological)
	assert.Len(t, out, 4)
	names := make([]string, len(out))
	for i, it := range out {
		names[i] = it.name
	}
	assert.Equal(t, []string{"d", "a", "c", "b"}, names)
}
