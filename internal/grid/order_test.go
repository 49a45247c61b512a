package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendap83/rosterboard/internal/domain"
)

func testLookup(persons map[string]domain.Person) func(string) (domain.Person, bool) {
	return func(key string) (domain.Person, bool) {
		p, ok := persons[key]
		return p, ok
	}
}

func visibleSet(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

func TestRowOrderAppendKeepsPositionsAndDedupes(t *testing.T) {
	rc := NewRowOrderController(testLookup(nil))

	rc.Append([]string{"P1", "P2"})
	rc.Append([]string{"P2", "P3", ""})
	rc.Append([]string{"P1"})

	assert.Equal(t, []string{"P1", "P2", "P3"}, rc.Order())
}

func TestRowOrderRenderFiltersAndAppendsUnseen(t *testing.T) {
	rc := NewRowOrderController(testLookup(nil))
	rc.Append([]string{"P1", "P2", "P3"})

	// P2 is not in the grid right now, P9 was never appended
	rendered := rc.RenderOrder(visibleSet("P3", "P1", "P9"))

	require.Len(t, rendered, 3)
	assert.Equal(t, []string{"P1", "P3", "P9"}, rendered)
}

func TestRowOrderSortCyclesAndFreezes(t *testing.T) {
	persons := map[string]domain.Person{
		"P1": {Key: "P1", Name: "Carla Barbosa"},
		"P2": {Key: "P2", Name: "Ana Paula Rocha"},
		"P3": {Key: "P3", Name: "Bruno Teles"},
	}
	rc := NewRowOrderController(testLookup(persons))
	rc.Append([]string{"P1", "P2", "P3"})
	visible := visibleSet("P1", "P2", "P3")

	spec := rc.ApplySort(ColumnName, visible)
	assert.Equal(t, SortAsc, spec.Direction)
	assert.Equal(t, []string{"P2", "P3", "P1"}, rc.RenderOrder(visible))

	spec = rc.ApplySort(ColumnName, visible)
	assert.Equal(t, SortDesc, spec.Direction)
	assert.Equal(t, []string{"P1", "P3", "P2"}, rc.RenderOrder(visible))

	// third click exits the sort but the frozen arrangement sticks
	spec = rc.ApplySort(ColumnName, visible)
	assert.False(t, spec.Active())
	assert.Equal(t, []string{"P1", "P3", "P2"}, rc.RenderOrder(visible))
}

func TestRowOrderSortIgnoresCaseAndAccents(t *testing.T) {
	persons := map[string]domain.Person{
		"P1": {Key: "P1", Name: "Érica Souza"},
		"P2": {Key: "P2", Name: "adriano lopes"},
		"P3": {Key: "P3", Name: "Fabiana Guimarães"},
	}
	rc := NewRowOrderController(testLookup(persons))
	rc.Append([]string{"P1", "P2", "P3"})
	visible := visibleSet("P1", "P2", "P3")

	rc.ApplySort(ColumnName, visible)
	assert.Equal(t, []string{"P2", "P1", "P3"}, rc.RenderOrder(visible))
}

func TestRowOrderSortIsStableForEqualValues(t *testing.T) {
	persons := map[string]domain.Person{
		"P1": {Key: "P1", Name: "Marcos Silva", Role: "TMA"},
		"P2": {Key: "P2", Name: "Ivana Lima", Role: "TMA"},
		"P3": {Key: "P3", Name: "Diego Matos", Role: "ADM"},
	}
	rc := NewRowOrderController(testLookup(persons))
	rc.Append([]string{"P1", "P2", "P3"})
	visible := visibleSet("P1", "P2", "P3")

	rc.ApplySort(ColumnRole, visible)
	// equal roles keep their prior relative order
	assert.Equal(t, []string{"P3", "P1", "P2"}, rc.RenderOrder(visible))
}

func TestRowOrderDragExitsSortAndCommits(t *testing.T) {
	persons := map[string]domain.Person{
		"P1": {Key: "P1", Name: "Carla"},
		"P2": {Key: "P2", Name: "Ana"},
		"P3": {Key: "P3", Name: "Bruno"},
	}
	rc := NewRowOrderController(testLookup(persons))
	rc.Append([]string{"P1", "P2", "P3"})
	visible := visibleSet("P1", "P2", "P3")

	rc.ApplySort(ColumnName, visible) // P2 P3 P1
	rc.DragReorder("P1", "P2", visible)

	assert.False(t, rc.Sort().Active(), "a drag always exits the sort overlay")
	assert.Equal(t, []string{"P1", "P2", "P3"}, rc.RenderOrder(visible))
}

func TestRowOrderDragKeepsHiddenKeysBehind(t *testing.T) {
	rc := NewRowOrderController(testLookup(nil))
	rc.Append([]string{"P1", "P2", "P3", "P4"})

	// only P1 and P3 are in the grid; P2 and P4 keep their relative order
	visible := visibleSet("P1", "P3")
	rc.DragReorder("P3", "P1", visible)

	assert.Equal(t, []string{"P3", "P1", "P2", "P4"}, rc.Order())
}

func TestRowOrderDragWithUnknownKeyIsNoOp(t *testing.T) {
	rc := NewRowOrderController(testLookup(nil))
	rc.Append([]string{"P1", "P2"})
	visible := visibleSet("P1", "P2")

	rc.DragReorder("P9", "P1", visible)
	rc.DragReorder("P1", "P1", visible)

	assert.Equal(t, []string{"P1", "P2"}, rc.Order())
}

func TestRowOrderSortByKeyNeedsNoLookup(t *testing.T) {
	rc := NewRowOrderController(func(string) (domain.Person, bool) {
		return domain.Person{}, false
	})
	rc.Append([]string{"P2", "P1"})
	visible := visibleSet("P1", "P2")

	rc.ApplySort(ColumnKey, visible)
	assert.Equal(t, []string{"P1", "P2"}, rc.RenderOrder(visible))
}
