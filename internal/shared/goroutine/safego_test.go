package goroutine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

type ctxKey struct{}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("background task did not finish")
	}
}

func TestDetach_SurvivesParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "req-1"))
	cancel()

	var gotErr error
	var gotVal any
	done := Detach(parent, logger.NewNopLogger(), "notify", 0, func(ctx context.Context) error {
		gotErr = ctx.Err()
		gotVal = ctx.Value(ctxKey{})
		return errors.New("ignored")
	})
	wait(t, done)

	assert.NoError(t, gotErr)
	assert.Equal(t, "req-1", gotVal)
}

func TestDetach_AppliesTimeout(t *testing.T) {
	var deadlineSet bool
	done := Detach(context.Background(), logger.NewNopLogger(), "slow", 50*time.Millisecond, func(ctx context.Context) error {
		_, deadlineSet = ctx.Deadline()
		<-ctx.Done()
		return ctx.Err()
	})
	wait(t, done)

	require.True(t, deadlineSet)
}

func TestDetach_RecoversPanic(t *testing.T) {
	done := Detach(context.Background(), logger.NewNopLogger(), "panicky", 0, func(context.Context) error {
		panic("boom")
	})
	wait(t, done)
}
