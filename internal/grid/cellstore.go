package grid

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/agendap83/rosterboard/internal/domain"
)

// ScheduleCellStore holds the loaded grid cells keyed by "personKey|date".
// It is filled incrementally: only keys newly added to the selection are
// fetched, only removed keys are purged. Merges are idempotent per key, so a
// failed partial sync is repaired by simply re-running it.
//
// Rapid toggling can make a purge and a sync for the same person race. Each
// person key carries a generation counter: purges and local writes bump it,
// a sync only applies rows whose generation still matches the one it started
// from. A range change bumps a store-wide generation with the same rule, so
// results for an abandoned range are discarded wholesale.
type ScheduleCellStore struct {
	gateway Gateway
	logger  *slog.Logger

	mu       sync.Mutex
	cells    map[string]domain.ScheduleCell
	keyGen   map[string]uint64
	rangeGen uint64
	rng      domain.DateRange
}

func NewScheduleCellStore(gateway Gateway, logger *slog.Logger) *ScheduleCellStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleCellStore{
		gateway: gateway,
		logger:  logger,
		cells:   make(map[string]domain.ScheduleCell),
		keyGen:  make(map[string]uint64),
	}
}

// SetRange switches the calendar window. In-flight syncs for the previous
// range will find the generation moved and drop their results.
func (st *ScheduleCellStore) SetRange(rng domain.DateRange) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.rng = rng
	st.rangeGen++
}

func (st *ScheduleCellStore) Range() domain.DateRange {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.rng
}

// SyncForKeys fetches the cells of exactly the given person keys over the
// current range and merges them in.
func (st *ScheduleCellStore) SyncForKeys(ctx context.Context, addedKeys []string) error {
	if len(addedKeys) == 0 {
		return nil
	}

	st.mu.Lock()
	rng := st.rng
	rangeGen := st.rangeGen
	startGen := make(map[string]uint64, len(addedKeys))
	for _, k := range addedKeys {
		startGen[k] = st.keyGen[k]
	}
	st.mu.Unlock()

	if rng.IsEmpty() {
		return nil
	}

	rows, err := st.gateway.ListScheduleCells(ctx, addedKeys, rng.From, rng.To)
	if err != nil {
		return &ReadError{Op: "list schedule cells", Err: err}
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.rangeGen != rangeGen {
		// range moved while we were fetching; the newer sync owns the store
		return nil
	}

	for _, row := range rows {
		gen, wanted := startGen[row.PersonKey]
		if !wanted || st.keyGen[row.PersonKey] != gen {
			continue
		}
		st.cells[row.Key()] = row
	}

	if len(rows) == 0 {
		// non-fatal: selection may legitimately have no codes in range, but
		// it is worth a trace when hunting sync issues
		st.logger.Warn("schedule sync returned no rows",
			"keys", len(addedKeys), "from", rng.From, "to", rng.To)
	}

	return nil
}

// PurgeForKeys drops every cell belonging to the removed person keys.
// Re-purging an already purged key is a no-op.
func (st *ScheduleCellStore) PurgeForKeys(removedKeys []string) {
	if len(removedKeys) == 0 {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	for _, k := range removedKeys {
		st.keyGen[k]++
		prefix := k + "|"
		for cellKey := range st.cells {
			if strings.HasPrefix(cellKey, prefix) {
				delete(st.cells, cellKey)
			}
		}
	}
}

func (st *ScheduleCellStore) Get(personKey, date string) (domain.ScheduleCell, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	c, ok := st.cells[domain.CellKey(personKey, date)]
	return c, ok
}

// Put records a locally confirmed write and invalidates older in-flight
// syncs for the same person.
func (st *ScheduleCellStore) Put(cell domain.ScheduleCell) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.keyGen[cell.PersonKey]++
	st.cells[cell.Key()] = cell
}

// Delete removes one cell after a confirmed remote delete.
func (st *ScheduleCellStore) Delete(personKey, date string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.keyGen[personKey]++
	delete(st.cells, domain.CellKey(personKey, date))
}

func (st *ScheduleCellStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.cells)
}
