package grid

import (
	"context"
	"sort"

	"github.com/agendap83/rosterboard/internal/domain"
)

// Period expands an edit over a date span for every person in the selection.
// Reversed bounds are swapped, never rejected.
type Period struct {
	From             string
	To               string
	BusinessDaysOnly bool
}

// BatchEditCoordinator turns a cell selection plus a chosen code and note
// into one transactional batch: blank code clears cells, anything else sets
// them. The local store is reconciled optimistically from the values just
// sent; the server's upsert is deterministic, so no re-read is needed.
type BatchEditCoordinator struct {
	gateway   Gateway
	store     *ScheduleCellStore
	selection *CellSelectionController
	source    string

	legend map[string]domain.LegendCode
}

func NewBatchEditCoordinator(gateway Gateway, store *ScheduleCellStore, selection *CellSelectionController, source string) *BatchEditCoordinator {
	return &BatchEditCoordinator{
		gateway:   gateway,
		store:     store,
		selection: selection,
		source:    source,
		legend:    make(map[string]domain.LegendCode),
	}
}

// SetLegend installs the day-code catalog used to validate edits.
func (b *BatchEditCoordinator) SetLegend(codes []domain.LegendCode) {
	b.legend = make(map[string]domain.LegendCode, len(codes))
	for _, lc := range codes {
		b.legend[domain.NormalizeCode(lc.Code)] = lc
	}
}

// ApplyCode validates and persists one batch edit. The whole batch is
// validated before any write; on success the store is reconciled and the
// selection cleared, on failure both are left untouched so the user can
// amend and retry. An empty expanded cell set resolves immediately with no
// network call.
func (b *BatchEditCoordinator) ApplyCode(ctx context.Context, cells []Cell, code, note string, period *Period) (domain.SaveResult, error) {
	expanded := expandCells(cells, period)
	if len(expanded) == 0 {
		return domain.SaveResult{}, nil
	}

	code = domain.NormalizeCode(code)
	if err := b.validate(expanded, code); err != nil {
		return domain.SaveResult{}, err
	}

	items := make([]domain.ScheduleCell, 0, len(expanded))
	for _, c := range expanded {
		items = append(items, domain.ScheduleCell{
			PersonKey: c.PersonKey,
			Date:      c.Date,
			Code:      code,
			Source:    b.source,
			Note:      note,
		})
	}

	res, err := b.gateway.SaveScheduleCells(ctx, items)
	if err != nil {
		return domain.SaveResult{}, &WriteError{Op: "save schedule cells", Err: err}
	}

	for _, item := range items {
		if item.Code == "" {
			b.store.Delete(item.PersonKey, item.Date)
		} else {
			b.store.Put(item)
		}
	}

	b.selection.Clear()
	return res, nil
}

func (b *BatchEditCoordinator) validate(cells []Cell, code string) error {
	for _, c := range cells {
		if c.PersonKey == "" {
			return validationErrorf("cell %s is missing its person key", c.Date)
		}
		if !domain.IsISODate(c.Date) {
			return validationErrorf("cell for %s has a malformed date %q", c.PersonKey, c.Date)
		}
	}

	// blank means "clear", which needs no catalog entry
	if code == "" {
		return nil
	}

	lc, ok := b.legend[code]
	if !ok {
		return validationErrorf("unknown day code %q", code)
	}
	if !lc.Active {
		return validationErrorf("day code %q is inactive", code)
	}
	return nil
}

// expandCells unions the selected cells with the period expansion: one cell
// per date per person present in the selection. The result is deduplicated
// and deterministic.
func expandCells(cells []Cell, period *Period) []Cell {
	set := make(map[Cell]struct{}, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}

	if period != nil {
		rng := domain.DateRange{From: period.From, To: period.To}.Normalized()
		days := rng.Days()

		persons := make(map[string]struct{})
		for _, c := range cells {
			persons[c.PersonKey] = struct{}{}
		}

		for pk := range persons {
			for _, d := range days {
				if period.BusinessDaysOnly && !domain.IsBusinessDay(d) {
					continue
				}
				set[Cell{PersonKey: pk, Date: d}] = struct{}{}
			}
		}
	}

	out := make([]Cell, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PersonKey != out[j].PersonKey {
			return out[i].PersonKey < out[j].PersonKey
		}
		return out[i].Date < out[j].Date
	})
	return out
}
