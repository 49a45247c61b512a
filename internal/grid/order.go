package grid

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/agendap83/rosterboard/internal/domain"
)

// Sortable columns.
const (
	ColumnName       = "name"
	ColumnKey        = "key"
	ColumnEmployeeNo = "employee_no"
	ColumnRole       = "role"
)

type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// SortSpec is the transient column-sort overlay. Direction SortNone means
// manual order is authoritative.
type SortSpec struct {
	Column    string
	Direction SortDirection
}

func (s SortSpec) Active() bool {
	return s.Column != "" && s.Direction != SortNone
}

// RowOrderController keeps the durable manual row sequence and the sort
// overlay on top of it. Manual order is superset-tolerant: it may hold keys
// that are not in the grid right now (they are filtered at render time) and
// it is appended to, never pruned, so a row keeps its position across
// searches. Sort is a view; a drag is the mutation that makes it stick.
type RowOrderController struct {
	order    []string
	seen     map[string]struct{}
	sort     SortSpec
	collator *collate.Collator
	lookup   func(key string) (domain.Person, bool)
}

func NewRowOrderController(lookup func(key string) (domain.Person, bool)) *RowOrderController {
	return &RowOrderController{
		seen:     make(map[string]struct{}),
		collator: collate.New(language.BrazilianPortuguese, collate.Loose),
		lookup:   lookup,
	}
}

// Append adds keys the controller has not seen yet at the end, keeping every
// previously known position stable.
func (rc *RowOrderController) Append(keys []string) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := rc.seen[k]; ok {
			continue
		}
		rc.seen[k] = struct{}{}
		rc.order = append(rc.order, k)
	}
}

func (rc *RowOrderController) Order() []string {
	out := make([]string, len(rc.order))
	copy(out, rc.order)
	return out
}

func (rc *RowOrderController) Sort() SortSpec {
	return rc.sort
}

// RenderOrder is the sequence actually shown: manual order restricted to the
// visible set, with any visible key the controller never saw appended.
func (rc *RowOrderController) RenderOrder(visible map[string]struct{}) []string {
	out := make([]string, 0, len(visible))
	for _, k := range rc.order {
		if _, ok := visible[k]; ok {
			out = append(out, k)
		}
	}
	if len(out) < len(visible) {
		inOrder := make(map[string]struct{}, len(out))
		for _, k := range out {
			inOrder[k] = struct{}{}
		}
		for k := range visible {
			if _, ok := inOrder[k]; !ok {
				out = append(out, k)
			}
		}
	}
	return out
}

// ApplySort cycles none → asc → desc → none on repeated clicks of the same
// column; any other column starts fresh at asc. Entering a sort freezes the
// sorted arrangement of the visible subset into the manual order, so a
// following drag starts from what the user sees.
func (rc *RowOrderController) ApplySort(column string, visible map[string]struct{}) SortSpec {
	switch {
	case rc.sort.Column != column:
		rc.sort = SortSpec{Column: column, Direction: SortAsc}
	case rc.sort.Direction == SortAsc:
		rc.sort = SortSpec{Column: column, Direction: SortDesc}
	default:
		rc.sort = SortSpec{}
	}

	if rc.sort.Active() {
		rc.freezeSorted(visible)
	}
	return rc.sort
}

// ClearSort drops the overlay without touching the manual order.
func (rc *RowOrderController) ClearSort() {
	rc.sort = SortSpec{}
}

// DragReorder moves fromKey to toKey's position within the rendered subset.
// A drag always wins over sorting: the overlay is exited first and the moved
// arrangement becomes the manual order.
func (rc *RowOrderController) DragReorder(fromKey, toKey string, visible map[string]struct{}) {
	rc.sort = SortSpec{}

	rendered := rc.RenderOrder(visible)
	fromIdx, toIdx := -1, -1
	for i, k := range rendered {
		if k == fromKey {
			fromIdx = i
		}
		if k == toKey {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 || fromIdx == toIdx {
		return
	}

	moved := make([]string, 0, len(rendered))
	moved = append(moved, rendered[:fromIdx]...)
	moved = append(moved, rendered[fromIdx+1:]...)
	moved = append(moved[:toIdx], append([]string{fromKey}, moved[toIdx:]...)...)

	rc.commit(moved, visible)
}

// freezeSorted sorts the visible subset by the active column and commits it
// to the front of the manual order. The sort is stable: equal values keep
// their prior relative order.
func (rc *RowOrderController) freezeSorted(visible map[string]struct{}) {
	rendered := rc.RenderOrder(visible)

	dir := 1
	if rc.sort.Direction == SortDesc {
		dir = -1
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		va := rc.columnValue(rendered[i])
		vb := rc.columnValue(rendered[j])
		return rc.collator.CompareString(va, vb)*dir < 0
	})

	rc.commit(rendered, visible)
}

// commit writes the rearranged visible subset to the front of the manual
// order; keys outside the render set keep their relative order behind it.
func (rc *RowOrderController) commit(rendered []string, visible map[string]struct{}) {
	rest := make([]string, 0, len(rc.order))
	for _, k := range rc.order {
		if _, ok := visible[k]; !ok {
			rest = append(rest, k)
		}
	}

	rc.order = append(append([]string{}, rendered...), rest...)
	rc.seen = make(map[string]struct{}, len(rc.order))
	for _, k := range rc.order {
		rc.seen[k] = struct{}{}
	}
}

func (rc *RowOrderController) columnValue(key string) string {
	if rc.sort.Column == ColumnKey {
		return key
	}
	p, ok := rc.lookup(key)
	if !ok {
		return ""
	}
	switch rc.sort.Column {
	case ColumnName:
		return p.Name
	case ColumnEmployeeNo:
		return p.EmployeeNo
	case ColumnRole:
		return p.Role
	default:
		return ""
	}
}
