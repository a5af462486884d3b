package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyDB fails the first `failures` pings.
type flakyDB struct {
	failures int
	pings    int
}

func (f *flakyDB) Ping(context.Context) error {
	f.pings++
	if f.pings <= f.failures {
		return errors.New("connection refused")
	}
	return nil
}

func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var slept []time.Duration
	orig := sleep
	sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	t.Cleanup(func() { sleep = orig })
	return &slept
}

func TestWaitForDB_ReadyImmediately(t *testing.T) {
	slept := stubSleep(t)
	db := &flakyDB{}

	require.NoError(t, WaitForDB(context.Background(), db, 0, time.Second, nil))

	assert.Equal(t, 1, db.pings)
	assert.Empty(t, *slept)
}

func TestWaitForDB_RetriesUntilReady(t *testing.T) {
	slept := stubSleep(t)
	db := &flakyDB{failures: 5}

	require.NoError(t, WaitForDB(context.Background(), db, 0, time.Second, nil))

	assert.Equal(t, 6, db.pings)
	assert.Len(t, *slept, 5)
	for _, d := range *slept {
		assert.Equal(t, time.Second, d)
	}
}

func TestWaitForDB_GivesUp(t *testing.T) {
	stubSleep(t)
	db := &flakyDB{failures: 10}

	err := WaitForDB(context.Background(), db, 3, time.Millisecond, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gave up after 3 attempts")
	assert.Equal(t, 3, db.pings)
}

func TestWaitForDB_ContextCancelled(t *testing.T) {
	stubSleep(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitForDB(ctx, &flakyDB{failures: 1}, 0, time.Second, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
