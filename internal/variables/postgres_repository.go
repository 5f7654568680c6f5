package variables

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modeshift/modeshift/internal/calc"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// Tables are stored as JSONB documents keyed by their table key:
//
//	CREATE TABLE variable_tables (
//	    key        TEXT PRIMARY KEY,
//	    rows       JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL variable repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// storedRow is the JSONB document shape of one variable row.
type storedRow struct {
	Name         string  `json:"name"`
	UserInput    float64 `json:"userInput"`
	DefaultValue float64 `json:"defaultValue"`
}

// Get retrieves the table stored under key.
func (r *PostgresRepository) Get(ctx context.Context, key string) ([]calc.VariableRow, error) {
	query := `SELECT rows FROM variable_tables WHERE key = $1`

	var doc []byte
	err := r.pool.QueryRow(ctx, query, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("get variable table %q: %w", key, err)
	}
	return decodeRows(doc)
}

// Save stores the table under key, replacing any previous version.
func (r *PostgresRepository) Save(ctx context.Context, key string, rows []calc.VariableRow) error {
	doc, err := encodeRows(rows)
	if err != nil {
		return fmt.Errorf("encode variable table %q: %w", key, err)
	}

	query := `
		INSERT INTO variable_tables (key, rows, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET rows = EXCLUDED.rows, updated_at = now()
	`
	if _, err := r.pool.Exec(ctx, query, key, doc); err != nil {
		return fmt.Errorf("save variable table %q: %w", key, err)
	}
	return nil
}

// ListPrefix retrieves all stored tables under a key prefix.
func (r *PostgresRepository) ListPrefix(ctx context.Context, prefix string) (map[string][]calc.VariableRow, error) {
	query := `SELECT key, rows FROM variable_tables WHERE key LIKE $1 || '%'`

	pgRows, err := r.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("list variable tables %q: %w", prefix, err)
	}
	defer pgRows.Close()

	out := make(map[string][]calc.VariableRow)
	for pgRows.Next() {
		var key string
		var doc []byte
		if err := pgRows.Scan(&key, &doc); err != nil {
			return nil, err
		}
		rows, err := decodeRows(doc)
		if err != nil {
			return nil, err
		}
		out[key[len(prefix):]] = rows
	}
	return out, pgRows.Err()
}

func encodeRows(rows []calc.VariableRow) ([]byte, error) {
	stored := make([]storedRow, len(rows))
	for i, row := range rows {
		stored[i] = storedRow(row)
	}
	return json.Marshal(stored)
}

func decodeRows(doc []byte) ([]calc.VariableRow, error) {
	var stored []storedRow
	if err := json.Unmarshal(doc, &stored); err != nil {
		return nil, fmt.Errorf("decode variable table: %w", err)
	}
	rows := make([]calc.VariableRow, len(stored))
	for i, s := range stored {
		rows[i] = calc.VariableRow(s)
	}
	return rows, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
