package repository

import (
	"context"
	"time"
)

// GetCalendarDays reads the site calendar for the inclusive range. The grid
// tolerates an empty answer by enumerating the range locally, so a missing
// calendar table window is not an error here.
func (r *Repository) GetCalendarDays(from, to string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT to_char(day, 'YYYY-MM-DD')
		FROM calendar_days
		WHERE day BETWEEN $1 AND $2
		ORDER BY day
	`

	rows, err := r.dbpool.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]string, 0)
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return days, nil
}

func (r *Repository) CreateCalendarDay(day string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO calendar_days (day)
		VALUES ($1)
		ON CONFLICT (day) DO NOTHING
	`

	if _, err := r.dbpool.ExecContext(ctx, query, day); err != nil {
		return err
	}

	return nil
}
