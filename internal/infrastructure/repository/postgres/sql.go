package postgres

import (
	"database/sql"

	"github.com/cockroachdb/errors"
)

// isNotFound reports whether err is the driver's empty-result sentinel,
// including when it arrives wrapped.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
