package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agendap83/rosterboard/internal/domain"
)

func (r *Repository) GetScheduleCells(personKeys []string, from, to string) ([]*domain.ScheduleCell, error) {
	// an empty key set is a valid request and an empty answer
	if len(personKeys) == 0 {
		return []*domain.ScheduleCell{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	placeholders := make([]string, 0, len(personKeys))
	args := []any{from, to}
	for i, key := range personKeys {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+3))
		args = append(args, key)
	}

	query := fmt.Sprintf(`
		SELECT person_key, to_char(day, 'YYYY-MM-DD'), code, source, note
		FROM schedule_cells
		WHERE day BETWEEN $1 AND $2
		  AND person_key IN (%s)
		ORDER BY person_key, day
	`, strings.Join(placeholders, ","))

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cells := make([]*domain.ScheduleCell, 0)
	for rows.Next() {
		c := &domain.ScheduleCell{}
		dst := []any{&c.PersonKey, &c.Date, &c.Code, &c.Source, &c.Note}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cells, nil
}

// SaveScheduleCells applies one batch in a single transaction: items with a
// blank code delete the row for their natural key, every other item upserts.
// Either the whole batch commits or none of it does.
func (r *Repository) SaveScheduleCells(items []domain.ScheduleCell) (domain.SaveResult, error) {
	res := domain.SaveResult{}
	if len(items) == 0 {
		return res, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return res, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery := `
		DELETE FROM schedule_cells WHERE person_key = $1 AND day = $2
	`
	upsertQuery := `
		INSERT INTO schedule_cells (person_key, day, code, source, note)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (person_key, day) DO UPDATE
		SET code = EXCLUDED.code,
			source = EXCLUDED.source,
			note = EXCLUDED.note
	`

	for _, item := range items {
		if domain.NormalizeCode(item.Code) == "" {
			result, err := tx.ExecContext(ctx, deleteQuery, item.PersonKey, item.Date)
			if err != nil {
				return domain.SaveResult{}, err
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return domain.SaveResult{}, err
			}
			res.Deleted += int(affected)
			continue
		}

		args := []any{item.PersonKey, item.Date, domain.NormalizeCode(item.Code), item.Source, item.Note}
		if _, err := tx.ExecContext(ctx, upsertQuery, args...); err != nil {
			return domain.SaveResult{}, err
		}
		res.Upserted++
	}

	if err := tx.Commit(); err != nil {
		return domain.SaveResult{}, err
	}

	return res, nil
}

func (r *Repository) DeleteScheduleCell(personKey, date string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM schedule_cells WHERE person_key = $1 AND day = $2
	`

	result, err := r.dbpool.ExecContext(ctx, query, personKey, date)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(affected), nil
}
