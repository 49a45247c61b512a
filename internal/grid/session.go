package grid

import (
	"context"
	"log/slog"

	"github.com/agendap83/rosterboard/internal/domain"
)

// Session owns one editor's grid state and funnels every mutation through
// the component contracts. All state is per-session: nothing here survives
// the process, and there is no cross-session locking — the store assumes a
// single active editor.
type Session struct {
	gateway Gateway
	logger  *slog.Logger

	Roster    *RosterCache
	Selection *SelectionSet
	Cells     *ScheduleCellStore
	Order     *RowOrderController
	CellSel   *CellSelectionController
	Batch     *BatchEditCoordinator

	calendar []string
	legend   []domain.LegendCode

	pending []SelectionChange
}

func NewSession(gateway Gateway, logger *slog.Logger, source string) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		gateway: gateway,
		logger:  logger,
	}

	s.Roster = NewRosterCache(gateway)
	s.Selection = NewSelectionSet(func(c SelectionChange) {
		s.pending = append(s.pending, c)
	})
	s.Cells = NewScheduleCellStore(gateway, logger)
	s.Order = NewRowOrderController(s.Roster.Lookup)
	s.CellSel = NewCellSelectionController()
	s.Batch = NewBatchEditCoordinator(gateway, s.Cells, s.CellSel, source)

	return s
}

// SearchRoster runs a sidebar search. Every person seen is merged into the
// roster cache and appended to the manual order, so rows keep their position
// when the search term changes.
func (s *Session) SearchRoster(ctx context.Context, filter string) ([]domain.Person, error) {
	persons, err := s.Roster.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(persons))
	for _, p := range persons {
		keys = append(keys, p.Key)
	}
	s.Order.Append(keys)

	return persons, nil
}

// SetRange moves the calendar window. No partial-range invalidation is
// attempted: the whole selection is re-synced, which keeps the store simple
// and always consistent with the new window.
func (s *Session) SetRange(ctx context.Context, from, to string) error {
	rng := domain.DateRange{From: from, To: to}
	s.Cells.SetRange(rng)

	remote, err := s.gateway.ListCalendarDays(ctx, rng.From, rng.To)
	if err != nil {
		// the grid can still render from the locally enumerated range
		s.logger.Warn("calendar read failed, enumerating locally", "error", err)
		remote = nil
	}
	s.calendar = domain.NormalizeCalendar(remote, rng)

	keys := make([]string, 0, s.Selection.Len())
	for k := range s.Selection.Snapshot() {
		keys = append(keys, k)
	}
	return s.Cells.SyncForKeys(ctx, keys)
}

// LoadLegend refreshes the day-code catalog used for validation and display.
func (s *Session) LoadLegend(ctx context.Context) error {
	codes, err := s.gateway.ListLegendCodes(ctx)
	if err != nil {
		return &ReadError{Op: "list legend codes", Err: err}
	}
	s.legend = codes
	s.Batch.SetLegend(codes)
	return nil
}

func (s *Session) Calendar() []string {
	return s.calendar
}

func (s *Session) Legend() []domain.LegendCode {
	return s.legend
}

// ToggleSelect flips one person in or out of the grid and settles the
// resulting fetch/purge.
func (s *Session) ToggleSelect(ctx context.Context, key string) error {
	s.Selection.Toggle(key)
	return s.settle(ctx)
}

// AddAllToSelection puts a whole sidebar page into the grid at once.
func (s *Session) AddAllToSelection(ctx context.Context, keys []string) error {
	s.Selection.AddAll(keys)
	return s.settle(ctx)
}

// RemoveFromGrid drops one row.
func (s *Session) RemoveFromGrid(ctx context.Context, key string) error {
	s.Selection.Remove(key)
	return s.settle(ctx)
}

// ClearSelection empties the grid.
func (s *Session) ClearSelection(ctx context.Context) error {
	s.Selection.Clear()
	return s.settle(ctx)
}

// Reset returns the session to its initial grid state. The roster cache and
// the manual order survive a reset on purpose: they are the durable parts.
func (s *Session) Reset(ctx context.Context) error {
	s.Selection.Clear()
	err := s.settle(ctx)
	s.CellSel.Clear()
	s.Order.ClearSort()
	s.calendar = nil
	s.legend = nil
	s.Batch.SetLegend(nil)
	return err
}

// RenderOrder is the row sequence to draw: manual order filtered down to the
// current selection.
func (s *Session) RenderOrder() []string {
	return s.Order.RenderOrder(s.Selection.Snapshot())
}

// ClickCell forwards one cell click. The returned flag asks the caller to
// open the batch editor.
func (s *Session) ClickCell(cell Cell, mods Modifiers) bool {
	return s.CellSel.Click(cell, mods)
}

// ApplyCode persists the current selection with the chosen code and note.
func (s *Session) ApplyCode(ctx context.Context, code, note string, period *Period) (domain.SaveResult, error) {
	return s.Batch.ApplyCode(ctx, s.CellSel.Selected(), code, note, period)
}

// settle drains the queued selection diffs in order: purges first, then the
// incremental fetch for the added keys. Processing strictly from snapshot
// diffs (never from a held reference to a stale set) is what lets a quick
// remove-then-readd net out correctly.
func (s *Session) settle(ctx context.Context) error {
	for len(s.pending) > 0 {
		change := s.pending[0]
		s.pending = s.pending[1:]

		removed := change.Removed()
		if len(removed) > 0 {
			s.Cells.PurgeForKeys(removed)
			s.CellSel.PurgeForPersons(removed)
		}

		added := change.Added()
		if len(added) > 0 {
			if err := s.Cells.SyncForKeys(ctx, added); err != nil {
				return err
			}
		}
	}
	return nil
}
