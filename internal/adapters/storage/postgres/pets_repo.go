package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"petclinic/internal/domain/pets"
	"petclinic/internal/pagination"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	p.id, p.owner_id, p.name, p.birth_date, t.id, t.name
`

func (r *PetsRepo) CreateForOwner(ctx context.Context, ownerID int, p pets.Pet) (pets.Pet, error) {
	// chequeo de duplicado + insert en una transacción: si rechaza, no queda nada
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return pets.Pet{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM pets WHERE owner_id = $1 AND name = $2)
	`, ownerID, p.Name).Scan(&exists)
	if err != nil {
		return pets.Pet{}, err
	}
	if exists {
		return pets.Pet{}, pets.ErrDuplicate
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO pets (owner_id, name, birth_date, type_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, ownerID, p.Name, toNullDate(p.BirthDate), p.Type.ID).Scan(&p.ID)
	if err != nil {
		return pets.Pet{}, err
	}

	if err := tx.Commit(); err != nil {
		return pets.Pet{}, err
	}

	p.OwnerID = ownerID
	return p, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET name = $2, birth_date = $3, type_id = $4
		WHERE id = $1
	`, p.ID, p.Name, toNullDate(p.BirthDate), p.Type.ID)
	if err != nil {
		return pets.Pet{}, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets p JOIN types t ON t.id = p.type_id
		WHERE p.id = $1
	`, id)
	return scanPet(row)
}

func (r *PetsRepo) GetForOwner(ctx context.Context, ownerID, petID int) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets p JOIN types t ON t.id = p.type_id
		WHERE p.id = $1 AND p.owner_id = $2
	`, petID, ownerID)
	return scanPet(row)
}

func (r *PetsRepo) List(ctx context.Context, req pagination.Request) ([]pets.Pet, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pets`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets p JOIN types t ON t.id = p.type_id
		ORDER BY p.id ASC
		LIMIT $1 OFFSET $2
	`, req.Limit(), req.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PetsRepo) ListTypes(ctx context.Context) ([]pets.PetType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM types ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.PetType, 0)
	for rows.Next() {
		var t pets.PetType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PetsRepo) GetType(ctx context.Context, id int) (pets.PetType, error) {
	var t pets.PetType
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM types WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.PetType{}, pets.ErrTypeNotFound
	}
	if err != nil {
		return pets.PetType{}, err
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var bd sql.NullTime
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &bd, &p.Type.ID, &p.Type.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, err
	}
	if bd.Valid {
		t := bd.Time
		p.BirthDate = &t
	}
	return p, nil
}

// birth_date es DATE; lo pasamos como NullTime para permitir NULL
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
