package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
)

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"connection failure class", &pgconn.PgError{Code: "08006"}, true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"shutdown in progress", &pgconn.PgError{Code: "57P01"}, true},
		{"network error", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"generic error", errors.New("something else"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnavailable(tt.err))
		})
	}
}

func TestStoreError_ConnectionClassWrapsUnavailable(t *testing.T) {
	err := storeError(ErrMsgFailedToInsertRoll, &pgconn.PgError{Code: "08006"})

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), ErrMsgFailedToInsertRoll)
}

func TestStoreError_StatementFailureStaysGeneric(t *testing.T) {
	inner := &pgconn.PgError{Code: "23505"}
	err := storeError(ErrMsgFailedToInsertRoll, inner)

	assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, inner)
}
