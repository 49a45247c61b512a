package grid

import (
	"context"
	"strings"

	"github.com/agendap83/rosterboard/internal/domain"
)

// fakeGateway is an in-memory Gateway with per-method failure injection and
// call counters. onListCells runs mid-fetch so tests can race local mutations
// against an in-flight sync.
type fakeGateway struct {
	persons []domain.Person
	legend  []domain.LegendCode
	cells   map[string]domain.ScheduleCell

	personsErr  error
	calendarErr error
	legendErr   error
	cellsErr    error
	saveErr     error

	onListCells func()

	listCellsCalls int
	saveCalls      int
	lastSaved      []domain.ScheduleCell
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		cells: make(map[string]domain.ScheduleCell),
	}
}

func (f *fakeGateway) putCell(personKey, date, code string) {
	c := domain.ScheduleCell{PersonKey: personKey, Date: date, Code: code, Source: "TEST"}
	f.cells[c.Key()] = c
}

func (f *fakeGateway) ListPersons(ctx context.Context, filter string) ([]domain.Person, error) {
	if f.personsErr != nil {
		return nil, f.personsErr
	}
	return Filter(f.persons, filter), nil
}

func (f *fakeGateway) ListCalendarDays(ctx context.Context, from, to string) ([]string, error) {
	if f.calendarErr != nil {
		return nil, f.calendarErr
	}
	return domain.DateRange{From: from, To: to}.Days(), nil
}

func (f *fakeGateway) ListLegendCodes(ctx context.Context) ([]domain.LegendCode, error) {
	if f.legendErr != nil {
		return nil, f.legendErr
	}
	return f.legend, nil
}

func (f *fakeGateway) ListScheduleCells(ctx context.Context, personKeys []string, from, to string) ([]domain.ScheduleCell, error) {
	f.listCellsCalls++
	if f.cellsErr != nil {
		return nil, f.cellsErr
	}
	if f.onListCells != nil {
		f.onListCells()
	}

	wanted := make(map[string]struct{}, len(personKeys))
	for _, k := range personKeys {
		wanted[k] = struct{}{}
	}

	out := []domain.ScheduleCell{}
	for _, c := range f.cells {
		if _, ok := wanted[c.PersonKey]; !ok {
			continue
		}
		if c.Date < from || c.Date > to {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeGateway) SaveScheduleCells(ctx context.Context, items []domain.ScheduleCell) (domain.SaveResult, error) {
	f.saveCalls++
	if f.saveErr != nil {
		return domain.SaveResult{}, f.saveErr
	}
	f.lastSaved = items

	res := domain.SaveResult{}
	for _, item := range items {
		key := item.Key()
		if strings.TrimSpace(item.Code) == "" {
			if _, ok := f.cells[key]; ok {
				delete(f.cells, key)
				res.Deleted++
			}
			continue
		}
		f.cells[key] = item
		res.Upserted++
	}
	return res, nil
}

func (f *fakeGateway) DeleteScheduleCell(ctx context.Context, personKey, date string) (int, error) {
	key := domain.CellKey(personKey, date)
	if _, ok := f.cells[key]; !ok {
		return 0, nil
	}
	delete(f.cells, key)
	return 1, nil
}
