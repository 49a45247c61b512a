package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellSelectPlainClickReplacesSelection(t *testing.T) {
	cs := NewCellSelectionController()

	c1 := Cell{PersonKey: "P1", Date: "2025-01-06"}
	c2 := Cell{PersonKey: "P1", Date: "2025-01-07"}

	edit := cs.Click(c1, Modifiers{})
	assert.False(t, edit)
	assert.True(t, cs.Contains(c1))
	assert.Equal(t, 1, cs.Len())

	edit = cs.Click(c2, Modifiers{})
	assert.False(t, edit)
	assert.False(t, cs.Contains(c1))
	assert.True(t, cs.Contains(c2))
}

func TestCellSelectPlainClickOnSoleSelectedRequestsEdit(t *testing.T) {
	cs := NewCellSelectionController()
	c := Cell{PersonKey: "P1", Date: "2025-01-06"}

	assert.False(t, cs.Click(c, Modifiers{}))
	assert.True(t, cs.Click(c, Modifiers{}), "second plain click on the sole selected cell opens the editor")
	assert.True(t, cs.Contains(c))
}

func TestCellSelectCtrlTogglesAndMovesAnchor(t *testing.T) {
	cs := NewCellSelectionController()
	c1 := Cell{PersonKey: "P1", Date: "2025-01-06"}
	c2 := Cell{PersonKey: "P2", Date: "2025-01-07"}

	cs.Click(c1, Modifiers{CtrlOrMeta: true})
	cs.Click(c2, Modifiers{CtrlOrMeta: true})
	assert.Equal(t, 2, cs.Len())

	anchor, ok := cs.Anchor()
	require.True(t, ok)
	assert.Equal(t, c2, anchor)

	cs.Click(c1, Modifiers{CtrlOrMeta: true})
	assert.False(t, cs.Contains(c1))
	assert.Equal(t, 1, cs.Len())
}

func TestCellSelectShiftExtendsSameRowRange(t *testing.T) {
	cs := NewCellSelectionController()

	cs.Click(Cell{PersonKey: "P1", Date: "2025-01-10"}, Modifiers{})
	cs.Click(Cell{PersonKey: "P1", Date: "2025-01-05"}, Modifiers{Shift: true})

	// reversed bounds are swapped: 05..10 inclusive
	assert.Equal(t, 6, cs.Len())
	assert.True(t, cs.Contains(Cell{PersonKey: "P1", Date: "2025-01-05"}))
	assert.True(t, cs.Contains(Cell{PersonKey: "P1", Date: "2025-01-10"}))

	// the anchor stays put so the range can be re-extended
	cs.Click(Cell{PersonKey: "P1", Date: "2025-01-12"}, Modifiers{Shift: true})
	assert.Equal(t, 3, cs.Len())
	assert.True(t, cs.Contains(Cell{PersonKey: "P1", Date: "2025-01-11"}))
	assert.False(t, cs.Contains(Cell{PersonKey: "P1", Date: "2025-01-05"}))
}

func TestCellSelectShiftAcrossRowsDegradesToSingle(t *testing.T) {
	cs := NewCellSelectionController()

	cs.Click(Cell{PersonKey: "P1", Date: "2025-01-06"}, Modifiers{})
	cs.Click(Cell{PersonKey: "P2", Date: "2025-01-08"}, Modifiers{Shift: true})

	assert.Equal(t, 1, cs.Len())
	assert.True(t, cs.Contains(Cell{PersonKey: "P2", Date: "2025-01-08"}))

	anchor, ok := cs.Anchor()
	require.True(t, ok)
	assert.Equal(t, "P2", anchor.PersonKey)
}

func TestCellSelectShiftWithoutAnchorSelectsSingle(t *testing.T) {
	cs := NewCellSelectionController()

	cs.Click(Cell{PersonKey: "P1", Date: "2025-01-06"}, Modifiers{Shift: true})
	assert.Equal(t, 1, cs.Len())
}

func TestCellSelectPurgeForPersons(t *testing.T) {
	cs := NewCellSelectionController()
	cs.Click(Cell{PersonKey: "P1", Date: "2025-01-06"}, Modifiers{CtrlOrMeta: true})
	cs.Click(Cell{PersonKey: "P2", Date: "2025-01-06"}, Modifiers{CtrlOrMeta: true})

	cs.PurgeForPersons([]string{"P2"})

	assert.Equal(t, 1, cs.Len())
	assert.True(t, cs.Contains(Cell{PersonKey: "P1", Date: "2025-01-06"}))
	_, ok := cs.Anchor()
	assert.False(t, ok, "the anchor belonged to the removed row")
}

func TestCellSelectClear(t *testing.T) {
	cs := NewCellSelectionController()
	cs.Click(Cell{PersonKey: "P1", Date: "2025-01-06"}, Modifiers{})

	cs.Clear()

	assert.Equal(t, 0, cs.Len())
	_, ok := cs.Anchor()
	assert.False(t, ok)
	assert.Empty(t, cs.Selected())
}
