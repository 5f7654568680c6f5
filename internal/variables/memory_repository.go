package variables

import (
	"context"
	"strings"
	"sync"

	"github.com/modeshift/modeshift/internal/calc"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing and single-instance deployments without
// a database. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	tables map[string][]calc.VariableRow
}

// NewInMemoryRepository creates a new in-memory variable repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		tables: make(map[string][]calc.VariableRow),
	}
}

// Get retrieves the table stored under key.
func (r *InMemoryRepository) Get(_ context.Context, key string) ([]calc.VariableRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, ok := r.tables[key]
	if !ok {
		return nil, ErrTableNotFound
	}
	return copyRows(rows), nil
}

// Save stores the table under key.
func (r *InMemoryRepository) Save(_ context.Context, key string, rows []calc.VariableRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tables[key] = copyRows(rows)
	return nil
}

// ListPrefix retrieves all stored tables under a key prefix.
func (r *InMemoryRepository) ListPrefix(_ context.Context, prefix string) (map[string][]calc.VariableRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]calc.VariableRow)
	for key, rows := range r.tables {
		if strings.HasPrefix(key, prefix) {
			out[strings.TrimPrefix(key, prefix)] = copyRows(rows)
		}
	}
	return out, nil
}

func copyRows(rows []calc.VariableRow) []calc.VariableRow {
	cpy := make([]calc.VariableRow, len(rows))
	copy(cpy, rows)
	return cpy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
