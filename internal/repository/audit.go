package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agendap83/rosterboard/internal/domain"
)

// CreateAuditEntry persists one schedule-change event consumed from the
// queue. The event ID is the natural key, so redelivered messages collapse
// into one row.
func (r *Repository) CreateAuditEntry(event *domain.ScheduleChangedEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	items, err := json.Marshal(event.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO schedule_audit (event_id, source, occurred_at, upserted, deleted, items)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING
	`

	args := []any{event.ID, event.Source, event.OccurredAt, event.Upserted, event.Deleted, items}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}
