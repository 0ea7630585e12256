package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"petclinic/internal/domain/visits"
	"petclinic/internal/pagination"
)

type VisitsRepo struct {
	db *sql.DB
}

func NewVisitsRepo(db *sql.DB) *VisitsRepo {
	return &VisitsRepo{db: db}
}

func (r *VisitsRepo) Create(ctx context.Context, v visits.Visit) (visits.Visit, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO visits (pet_id, visit_date, description, visited_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, v.PetID, v.Date, v.Description, toNullTime(v.Visited)).Scan(&v.ID)
	if err != nil {
		return visits.Visit{}, err
	}
	return v, nil
}

func (r *VisitsRepo) Update(ctx context.Context, v visits.Visit) (visits.Visit, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE visits
		SET visit_date = $2, description = $3, visited_at = $4
		WHERE id = $1
	`, v.ID, v.Date, v.Description, toNullTime(v.Visited))
	if err != nil {
		return visits.Visit{}, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return visits.Visit{}, visits.ErrNotFound
	}
	return v, nil
}

func (r *VisitsRepo) GetByID(ctx context.Context, id int) (visits.Visit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, pet_id, visit_date, description, visited_at
		FROM visits
		WHERE id = $1
	`, id)
	return scanVisit(row)
}

func (r *VisitsRepo) FirstForPet(ctx context.Context, petID int) (visits.Visit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, pet_id, visit_date, description, visited_at
		FROM visits
		WHERE pet_id = $1
		ORDER BY id ASC
		LIMIT 1
	`, petID)
	return scanVisit(row)
}

func (r *VisitsRepo) ListForPet(ctx context.Context, petID int) ([]visits.Visit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, visit_date, description, visited_at
		FROM visits
		WHERE pet_id = $1
		ORDER BY id ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVisits(rows)
}

func (r *VisitsRepo) ListScheduled(ctx context.Context, date time.Time) ([]visits.Visit, error) {
	// match exacto de fecha; visited asc y los NULL donde Postgres los deja
	// por defecto para ASC (al final)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, visit_date, description, visited_at
		FROM visits
		WHERE visit_date = $1
		ORDER BY visited_at ASC, id ASC
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVisits(rows)
}

func (r *VisitsRepo) List(ctx context.Context, req pagination.Request) ([]visits.Visit, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visits`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, visit_date, description, visited_at
		FROM visits
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`, req.Limit(), req.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectVisits(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanVisit(row rowScanner) (visits.Visit, error) {
	var v visits.Visit
	var visited sql.NullTime
	err := row.Scan(&v.ID, &v.PetID, &v.Date, &v.Description, &visited)
	if errors.Is(err, sql.ErrNoRows) {
		return visits.Visit{}, visits.ErrNotFound
	}
	if err != nil {
		return visits.Visit{}, err
	}
	if visited.Valid {
		t := visited.Time
		v.Visited = &t
	}
	return v, nil
}

func collectVisits(rows *sql.Rows) ([]visits.Visit, error) {
	out := make([]visits.Visit, 0)
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
