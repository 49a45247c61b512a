// Package grid implements the schedule synchronization and editing engine:
// the session state behind the interactive roster grid. It tracks which
// people are in the grid, incrementally fetches and purges their day codes,
// reconciles manual row order with transient column sorts, and turns cell
// selections into transactional batch edits against a remote store.
package grid

import (
	"context"

	"github.com/agendap83/rosterboard/internal/domain"
)

// Gateway is the full inventory of remote requests the engine issues. The
// HTTP client in internal/gateway implements it against the API; tests plug
// in a scripted fake.
type Gateway interface {
	ListPersons(ctx context.Context, filter string) ([]domain.Person, error)
	ListCalendarDays(ctx context.Context, from, to string) ([]string, error)
	ListLegendCodes(ctx context.Context) ([]domain.LegendCode, error)
	// ListScheduleCells returns the cells for exactly the given person keys
	// over the inclusive range. An empty key set yields an empty list.
	ListScheduleCells(ctx context.Context, personKeys []string, from, to string) ([]domain.ScheduleCell, error)
	// SaveScheduleCells applies the batch all-or-nothing: blank codes delete
	// by natural key, everything else upserts.
	SaveScheduleCells(ctx context.Context, items []domain.ScheduleCell) (domain.SaveResult, error)
	DeleteScheduleCell(ctx context.Context, personKey, date string) (int, error)
}
