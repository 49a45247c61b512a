package repository

import (
	"context"
	"time"

	"github.com/agendap83/rosterboard/internal/domain"
)

func (r *Repository) GetAllPersons(filter string) ([]*domain.Person, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT key, name, employee_no, role, active
		FROM persons
		WHERE $1 = ''
		   OR name ILIKE '%' || $1 || '%'
		   OR key ILIKE '%' || $1 || '%'
		   OR employee_no ILIKE '%' || $1 || '%'
		   OR role ILIKE '%' || $1 || '%'
		ORDER BY name
	`

	rows, err := r.dbpool.QueryContext(ctx, query, filter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	persons := make([]*domain.Person, 0)
	for rows.Next() {
		p := &domain.Person{}
		dst := []any{&p.Key, &p.Name, &p.EmployeeNo, &p.Role, &p.Active}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return persons, nil
}

func (r *Repository) GetPersonByKey(key string) (*domain.Person, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT name, employee_no, role, active
		FROM persons WHERE key = $1
	`

	p := &domain.Person{
		Key: key,
	}

	dst := []any{&p.Name, &p.EmployeeNo, &p.Role, &p.Active}
	if err := r.dbpool.QueryRowContext(ctx, query, key).Scan(dst...); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repository) CreatePerson(p *domain.Person) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO persons (key, name, employee_no, role, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE
		SET name = EXCLUDED.name,
			employee_no = EXCLUDED.employee_no,
			role = EXCLUDED.role,
			active = EXCLUDED.active
	`

	args := []any{p.Key, p.Name, p.EmployeeNo, p.Role, p.Active}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}
