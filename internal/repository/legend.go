package repository

import (
	"context"
	"time"

	"github.com/agendap83/rosterboard/internal/domain"
)

func (r *Repository) GetAllLegendCodes() ([]*domain.LegendCode, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT code, description, active
		FROM legend_codes
		ORDER BY code
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := make([]*domain.LegendCode, 0)
	for rows.Next() {
		lc := &domain.LegendCode{}
		if err := rows.Scan(&lc.Code, &lc.Description, &lc.Active); err != nil {
			return nil, err
		}
		codes = append(codes, lc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return codes, nil
}

func (r *Repository) CreateLegendCode(lc *domain.LegendCode) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO legend_codes (code, description, active)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE
		SET description = EXCLUDED.description,
			active = EXCLUDED.active
	`

	if _, err := r.dbpool.ExecContext(ctx, query, lc.Code, lc.Description, lc.Active); err != nil {
		return err
	}

	return nil
}
