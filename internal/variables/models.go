// Package variables stores the editable emission variable tables shown
// on the dashboard: one general table, one table per traditional mode
// and one per shared-service category. Tables that were never saved
// resolve to their literal defaults.
package variables

import "errors"

var (
	// ErrTableNotFound is returned by repositories when no table is
	// stored under the requested key.
	ErrTableNotFound = errors.New("variable table not found")
)

// Storage key prefixes per table group.
const (
	keyGeneral           = "general"
	keyTraditionalPrefix = "traditional/"
	keySharedPrefix      = "shared/"
)
