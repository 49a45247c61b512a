package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionSetToggleEmitsDiffs(t *testing.T) {
	var changes []SelectionChange
	s := NewSelectionSet(func(c SelectionChange) {
		changes = append(changes, c)
	})

	s.Toggle("P1")
	s.Toggle("P2")
	s.Toggle("P1")

	require.Len(t, changes, 3)
	assert.ElementsMatch(t, []string{"P1"}, changes[0].Added())
	assert.Empty(t, changes[0].Removed())
	assert.ElementsMatch(t, []string{"P2"}, changes[1].Added())
	assert.ElementsMatch(t, []string{"P1"}, changes[2].Removed())
	assert.Empty(t, changes[2].Added())

	assert.False(t, s.Contains("P1"))
	assert.True(t, s.Contains("P2"))
	assert.Equal(t, 1, s.Len())
}

func TestSelectionSetAddAllDiffsOnlyNewKeys(t *testing.T) {
	var last SelectionChange
	s := NewSelectionSet(func(c SelectionChange) { last = c })

	s.Add("P1")
	s.AddAll([]string{"P1", "P2", "P3"})

	assert.ElementsMatch(t, []string{"P2", "P3"}, last.Added())
	assert.Empty(t, last.Removed())
	assert.Equal(t, 3, s.Len())
}

func TestSelectionSetClear(t *testing.T) {
	var last SelectionChange
	s := NewSelectionSet(func(c SelectionChange) { last = c })

	s.AddAll([]string{"P1", "P2"})
	s.Clear()

	assert.ElementsMatch(t, []string{"P1", "P2"}, last.Removed())
	assert.Empty(t, last.Added())
	assert.Equal(t, 0, s.Len())
}

func TestSelectionSetSnapshotIsDetached(t *testing.T) {
	s := NewSelectionSet(nil)
	s.Add("P1")

	snap := s.Snapshot()
	s.Add("P2")

	assert.Len(t, snap, 1)
	assert.Equal(t, 2, s.Len())
}
