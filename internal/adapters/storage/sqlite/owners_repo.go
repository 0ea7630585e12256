package sqlite

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
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (first_name, last_name, address, city, telephone)
		VALUES (?, ?, ?, ?, ?)
	`, o.FirstName, o.LastName, o.Address, o.City, o.Telephone)
	if err != nil {
		return owners.Owner{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return owners.Owner{}, err
	}
	o.ID = int(id)
	return o, nil
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE owners
		SET first_name = ?, last_name = ?, address = ?, city = ?, telephone = ?
		WHERE id = ?
	`, o.FirstName, o.LastName, o.Address, o.City, o.Telephone, o.ID)
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
		WHERE id = ?
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
	// substr en vez de LIKE: el LIKE de SQLite es case-insensitive para ASCII
	// y el contrato del prefijo es case-sensitive
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM owners WHERE substr(last_name, 1, length(?1)) = ?1
	`, prefix).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, address, city, telephone
		FROM owners
		WHERE substr(last_name, 1, length(?1)) = ?1
		ORDER BY id ASC
		LIMIT ?2 OFFSET ?3
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
