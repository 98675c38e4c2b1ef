package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // driver sqlite3
)

// schema de la tabla de dominios: un nombre es único dentro de su scope.
const schema = `
CREATE TABLE IF NOT EXISTS domains (
	scope      TEXT NOT NULL,
	name       TEXT NOT NULL,
	source     TEXT NOT NULL,
	first_seen TIMESTAMP NOT NULL,
	PRIMARY KEY (scope, name)
);
CREATE INDEX IF NOT EXISTS idx_domains_scope ON domains(scope);
`

// SQLiteStore es el DomainStore durable, respaldado por sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) la base de datos en path y asegura el schema.
// Acepta ":memory:" para una base efímera.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// sqlite no soporta escritores concurrentes sobre una conexión.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// ListDomains retorna los dominios conocidos de un scope, ordenados.
func (s *SQLiteStore) ListDomains(ctx context.Context, scope string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM domains WHERE scope = ? ORDER BY name`, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan domain row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate domain rows: %w", err)
	}

	return names, nil
}

// AddDomains inserta dominios con su etiqueta de origen y retorna cuántos
// eran realmente nuevos. Los ya existentes se ignoran (INSERT OR IGNORE).
func (s *SQLiteStore) AddDomains(ctx context.Context, scope string, domains []string, sourceTag string) (int, error) {
	if len(domains) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO domains (scope, name, source, first_seen) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	added := 0
	for _, name := range domains {
		res, err := stmt.ExecContext(ctx, scope, name, sourceTag, now)
		if err != nil {
			return 0, fmt.Errorf("failed to insert domain %s: %w", name, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read rows affected: %w", err)
		}
		added += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return added, nil
}

// Close cierra la conexión con la base de datos.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
