package variables

import (
	"context"

	"github.com/modeshift/modeshift/internal/calc"
)

// Repository defines the interface for variable table persistence.
// Keys are opaque to implementations; the service owns the key scheme.
type Repository interface {
	// Get retrieves the table stored under key.
	// Returns ErrTableNotFound if nothing is stored.
	Get(ctx context.Context, key string) ([]calc.VariableRow, error)

	// Save stores the table under key, replacing any previous version.
	Save(ctx context.Context, key string, rows []calc.VariableRow) error

	// ListPrefix retrieves all stored tables whose key starts with
	// prefix, keyed by the remainder of the key.
	ListPrefix(ctx context.Context, prefix string) (map[string][]calc.VariableRow, error)
}
