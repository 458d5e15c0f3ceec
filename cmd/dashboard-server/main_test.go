// cmd/dashboard-server/main_test.go
package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==========================
// RETRY TESTS
// ==========================

func TestRetryWithBackoff_SucceedsFirstAttempt(t *testing.T) {
	attempts := 0

	err := retryWithBackoff(func() error {
		attempts++
		return nil
	}, 5, time.Millisecond, zap.NewNop(), "test operation")

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_RetriesUntilSuccess(t *testing.T) {
	attempts := 0

	err := retryWithBackoff(func() error {
		attempts++
		if attempts < 3 {
			return errors.New("not yet")
		}
		return nil
	}, 5, time.Millisecond, zap.NewNop(), "test operation")

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	dialErr := errors.New("connection refused")

	err := retryWithBackoff(func() error {
		attempts++
		return dialErr
	}, 4, time.Millisecond, zap.NewNop(), "test operation")

	require.Error(t, err)
	assert.ErrorIs(t, err, dialErr)
	assert.Contains(t, err.Error(), "test operation failed after 4 attempts")
	assert.Equal(t, 4, attempts)
}

// ==========================
// CONNECTION RETRY CLEANUP TESTS
// ==========================

// fakeConn stands in for a connection pool dialed inside a retry closure.
type fakeConn struct {
	closed bool
}

func (c *fakeConn) Close() { c.closed = true }

// Each failed dial attempt must release its pool before the next one is
// constructed, leaving only the final connection open.
func TestRetryWithBackoff_ClosesStaleConnectionBetweenAttempts(t *testing.T) {
	var dialed []*fakeConn
	var conn *fakeConn
	attempts := 0

	err := retryWithBackoff(func() error {
		if conn != nil {
			conn.Close()
			conn = nil
		}
		conn = &fakeConn{}
		dialed = append(dialed, conn)

		attempts++
		if attempts < 3 {
			return errors.New("ping failed")
		}
		return nil
	}, 5, time.Millisecond, zap.NewNop(), "test connection")

	require.NoError(t, err)
	require.Len(t, dialed, 3)
	assert.True(t, dialed[0].closed)
	assert.True(t, dialed[1].closed)
	assert.False(t, dialed[2].closed, "surviving connection stays open")
}
