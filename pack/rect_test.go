package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)
	inner := NewRect(10, 10, 20, 20)
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
}

func TestRectOverlapsExcludesTouchingEdges(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(10, 0, 10, 10)
	assert.False(t, a.Overlaps(b), "rects sharing only an edge must not be considered overlapping")

	c := NewRect(5, 0, 10, 10)
	assert.True(t, a.Overlaps(c))
}

func TestRectIsEmpty(t *testing.T) {
	assert.True(t, NewRect(0, 0, 0, 5).IsEmpty())
	assert.True(t, NewRect(0, 0, 5, 0).IsEmpty())
	assert.False(t, NewRect(0, 0, 1, 1).IsEmpty())
}
