package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
)

// storeError wraps a database error with the given message. Connection-class
// failures additionally wrap domain.ErrStoreUnavailable so callers can map
// them to a retryable status instead of a generic write failure.
func storeError(msg string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, msg, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// isUnavailable reports whether err indicates the store cannot currently be
// reached, as opposed to a statement-level failure.
func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Postgres error classes: 08 connection exception, 53 insufficient
	// resources, 57 operator intervention (e.g. shutdown in progress).
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08") ||
			strings.HasPrefix(pgErr.Code, "53") ||
			strings.HasPrefix(pgErr.Code, "57")
	}

	return false
}
