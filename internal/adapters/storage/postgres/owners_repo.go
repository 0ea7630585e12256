package postgres

import (
	"context"
	"database/sql"
	"errors"

	"petclinic/internal/domain/owners"
	"petclinic/internal/pagination"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO owners (first_name, last_name, address, city, telephone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		o.FirstName,
		o.LastName,
		o.Address,
		o.City,
		o.Telephone,
	).Scan(&o.ID)
	if err != nil {
		return owners.Owner{}, err
	}
	return o, nil
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE owners
		SET first_name = $2, last_name = $3, address = $4, city = $5, telephone = $6
		WHERE id = $1
	`,
		o.ID,
		o.FirstName,
		o.LastName,
		o.Address,
		o.City,
		o.Telephone,
	)
	if err != nil {
		return owners.Owner{}, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id int) (owners.Owner, error) {
	var o owners.Owner
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, address, city, telephone
		FROM owners
		WHERE id = $1
	`, id).Scan(&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone)
	if errors.Is(err, sql.ErrNoRows) {
		return owners.Owner{}, owners.ErrNotFound
	}
	if err != nil {
		return owners.Owner{}, err
	}
	return o, nil
}

func (r *OwnersRepo) FindByLastName(ctx context.Context, prefix string, req pagination.Request) ([]owners.Owner, int, error) {
	// prefix match case-sensitive; prefijo vacío matchea todo
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM owners WHERE last_name LIKE $1 || '%'
	`, prefix).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, address, city, telephone
		FROM owners
		WHERE last_name LIKE $1 || '%'
		ORDER BY id ASC
		LIMIT $2 OFFSET $3
	`, prefix, req.Limit(), req.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		var o owners.Owner
		if err := rows.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}
