package grid

import (
	"github.com/agendap83/rosterboard/internal/domain"
)

// Cell identifies one grid cell by person and ISO date.
type Cell struct {
	PersonKey string
	Date      string
}

// Modifiers mirrors the click gesture: shift extends a range, ctrl/meta
// toggles a single cell.
type Modifiers struct {
	Shift      bool
	CtrlOrMeta bool
}

// CellSelectionController tracks the cells picked for a batch edit plus the
// anchor used for range extension. Range selection never spans rows.
type CellSelectionController struct {
	selected map[Cell]struct{}
	anchor   *Cell
}

func NewCellSelectionController() *CellSelectionController {
	return &CellSelectionController{
		selected: make(map[Cell]struct{}),
	}
}

// Click applies one click gesture. The returned flag asks the caller to open
// the batch editor: a plain click on the cell that is already the sole
// selected one is the convenience edit gesture.
func (cs *CellSelectionController) Click(cell Cell, mods Modifiers) (editRequested bool) {
	switch {
	case mods.Shift && cs.anchor != nil:
		anchor := *cs.anchor
		if anchor.PersonKey != cell.PersonKey {
			// cross-row ranges degrade to selecting just the target
			cs.replaceWith(cell)
			return false
		}
		rng := domain.DateRange{From: anchor.Date, To: cell.Date}.Normalized()
		cs.selected = make(map[Cell]struct{})
		for _, d := range rng.Days() {
			cs.selected[Cell{PersonKey: anchor.PersonKey, Date: d}] = struct{}{}
		}
		// the anchor stays put so the range can be re-extended
		return false

	case mods.CtrlOrMeta:
		if _, ok := cs.selected[cell]; ok {
			delete(cs.selected, cell)
		} else {
			cs.selected[cell] = struct{}{}
		}
		cs.anchor = &cell
		return false

	default:
		_, wasSelected := cs.selected[cell]
		soleSelected := wasSelected && len(cs.selected) == 1
		cs.replaceWith(cell)
		return soleSelected
	}
}

func (cs *CellSelectionController) replaceWith(cell Cell) {
	cs.selected = map[Cell]struct{}{cell: {}}
	cs.anchor = &cell
}

func (cs *CellSelectionController) Contains(cell Cell) bool {
	_, ok := cs.selected[cell]
	return ok
}

func (cs *CellSelectionController) Len() int {
	return len(cs.selected)
}

// Selected returns the current cell set.
func (cs *CellSelectionController) Selected() []Cell {
	out := make([]Cell, 0, len(cs.selected))
	for c := range cs.selected {
		out = append(out, c)
	}
	return out
}

func (cs *CellSelectionController) Anchor() (Cell, bool) {
	if cs.anchor == nil {
		return Cell{}, false
	}
	return *cs.anchor, true
}

// PurgeForPersons drops selected cells (and the anchor) belonging to rows
// that left the grid.
func (cs *CellSelectionController) PurgeForPersons(personKeys []string) {
	if len(personKeys) == 0 {
		return
	}
	gone := make(map[string]struct{}, len(personKeys))
	for _, k := range personKeys {
		gone[k] = struct{}{}
	}
	for c := range cs.selected {
		if _, ok := gone[c.PersonKey]; ok {
			delete(cs.selected, c)
		}
	}
	if cs.anchor != nil {
		if _, ok := gone[cs.anchor.PersonKey]; ok {
			cs.anchor = nil
		}
	}
}

func (cs *CellSelectionController) Clear() {
	cs.selected = make(map[Cell]struct{})
	cs.anchor = nil
}
