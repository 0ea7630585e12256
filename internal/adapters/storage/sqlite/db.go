package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Open abre la base SQLite (archivo o :memory:). Una sola conexión: el
// driver no banca escritores concurrentes y el pool de database/sql abriría
// varios.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema crea las tablas si faltan y siembra el catálogo de tipos.
// Los decltypes DATE/TIMESTAMP importan: el driver los usa para devolver
// time.Time al escanear.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS types (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS owners (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			telephone TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS owners_last_name_idx ON owners (last_name)`,
		`CREATE TABLE IF NOT EXISTS pets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id INTEGER NOT NULL REFERENCES owners(id),
			name TEXT NOT NULL,
			birth_date DATE,
			type_id INTEGER NOT NULL REFERENCES types(id)
		)`,
		`CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pet_id INTEGER NOT NULL REFERENCES pets(id),
			visit_date DATE NOT NULL,
			description TEXT NOT NULL,
			visited_at TIMESTAMP
		)`,
		`INSERT OR IGNORE INTO types (name) VALUES
			('cat'), ('dog'), ('lizard'), ('snake'), ('bird'), ('hamster')`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
