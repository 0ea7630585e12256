package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
)

// Open abre un pool a Postgres usando pgx (database/sql) y verifica con ping.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema crea las tablas si faltan y siembra el catálogo de tipos.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS types (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS owners (
			id SERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			telephone TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS owners_last_name_idx ON owners (last_name)`,
		`CREATE TABLE IF NOT EXISTS pets (
			id SERIAL PRIMARY KEY,
			owner_id INTEGER NOT NULL REFERENCES owners(id),
			name TEXT NOT NULL,
			birth_date DATE,
			type_id INTEGER NOT NULL REFERENCES types(id)
		)`,
		`CREATE TABLE IF NOT EXISTS visits (
			id SERIAL PRIMARY KEY,
			pet_id INTEGER NOT NULL REFERENCES pets(id),
			visit_date DATE NOT NULL,
			description TEXT NOT NULL,
			visited_at TIMESTAMPTZ
		)`,
		`INSERT INTO types (name) VALUES
			('cat'), ('dog'), ('lizard'), ('snake'), ('bird'), ('hamster')
			ON CONFLICT (name) DO NOTHING`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
