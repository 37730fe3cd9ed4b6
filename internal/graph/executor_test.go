package graph

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFactory hands out bare scopes and counts acquires/releases.
type stubFactory struct {
	acquired atomic.Int64
	released atomic.Int64
}

func (f *stubFactory) Acquire(ctx context.Context) (*Scope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.acquired.Add(1)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return &Scope{
		Logger:  logger.WithField("component", "test"),
		release: func() { f.released.Add(1) },
	}, nil
}

func stubSchema(ops ...Operation) *Schema {
	m := make(map[string]Operation, len(ops))
	for _, op := range ops {
		m[op.Name] = op
	}
	return &Schema{operations: m}
}

func TestExecuteReleasesScopeOnClose(t *testing.T) {
	factory := &stubFactory{}
	executor := NewExecutor(stubSchema(Operation{
		Name: "ping",
		Kind: KindQuery,
		Resolve: func(context.Context, *Scope, Variables) (any, error) {
			return "pong", nil
		},
	}), factory)

	result, err := executor.Execute(context.Background(), Request{Operation: "ping"})
	require.NoError(t, err)
	assert.Equal(t, "pong", result.Data)

	// The scope outlives Execute: consumers may still be reading the result.
	assert.Equal(t, int64(1), factory.acquired.Load())
	assert.Equal(t, int64(0), factory.released.Load())

	result.Close()
	assert.Equal(t, int64(1), factory.released.Load())

	// Close is idempotent.
	result.Close()
	result.Close()
	assert.Equal(t, int64(1), factory.released.Load())
}

func TestExecuteReleasesScopeOnResolverError(t *testing.T) {
	factory := &stubFactory{}
	boom := errors.New("store unreachable")
	executor := NewExecutor(stubSchema(Operation{
		Name: "broken",
		Kind: KindQuery,
		Resolve: func(context.Context, *Scope, Variables) (any, error) {
			return nil, boom
		},
	}), factory)

	_, err := executor.Execute(context.Background(), Request{Operation: "broken"})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), factory.acquired.Load())
	assert.Equal(t, int64(1), factory.released.Load())
}

func TestExecuteReleasesScopeOnResolverPanic(t *testing.T) {
	factory := &stubFactory{}
	executor := NewExecutor(stubSchema(Operation{
		Name: "explosive",
		Kind: KindQuery,
		Resolve: func(context.Context, *Scope, Variables) (any, error) {
			panic("resolver went sideways")
		},
	}), factory)

	_, err := executor.Execute(context.Background(), Request{Operation: "explosive"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal fault")
	assert.Equal(t, int64(1), factory.released.Load(), "panic must still tear the scope down")
}

func TestExecuteUnknownOperationAcquiresNoScope(t *testing.T) {
	factory := &stubFactory{}
	executor := NewExecutor(stubSchema(), factory)

	_, err := executor.Execute(context.Background(), Request{Operation: "nope"})
	require.ErrorIs(t, err, ErrUnknownOperation)
	assert.Equal(t, int64(0), factory.acquired.Load())
}

func TestExecuteRequiresAuth(t *testing.T) {
	factory := &stubFactory{}
	executor := NewExecutor(stubSchema(Operation{
		Name:         "private",
		Kind:         KindQuery,
		RequiresAuth: true,
		Resolve: func(context.Context, *Scope, Variables) (any, error) {
			return "data", nil
		},
	}), factory)

	_, err := executor.Execute(context.Background(), Request{Operation: "private"})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int64(0), factory.acquired.Load())

	result, err := executor.Execute(context.Background(), Request{Operation: "private", UserID: 5})
	require.NoError(t, err)
	result.Close()
}

func TestExecuteReleasesScopeOnCancellation(t *testing.T) {
	factory := &stubFactory{}
	ctx, cancel := context.WithCancel(context.Background())
	executor := NewExecutor(stubSchema(Operation{
		Name: "slow",
		Kind: KindQuery,
		Resolve: func(context.Context, *Scope, Variables) (any, error) {
			// Caller cancels mid-resolution.
			cancel()
			return "partial", nil
		},
	}), factory)

	_, err := executor.Execute(ctx, Request{Operation: "slow"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(1), factory.acquired.Load())
	assert.Equal(t, int64(1), factory.released.Load(), "cancellation is not a license to leak")
}

func TestExecuteCancelledBeforeAcquire(t *testing.T) {
	factory := &stubFactory{}
	executor := NewExecutor(stubSchema(Operation{
		Name: "ping",
		Kind: KindQuery,
		Resolve: func(context.Context, *Scope, Variables) (any, error) {
			return "pong", nil
		},
	}), factory)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := executor.Execute(ctx, Request{Operation: "ping"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), factory.acquired.Load())
}

func TestConcurrentExecutionsGetIndependentScopes(t *testing.T) {
	h := newTestHarness(t)
	h.seedUser(t)

	const workers = 8
	done := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			result, err := h.executor.Execute(context.Background(), loginRequest("a@b.com", "secret"))
			if err == nil {
				result.Close()
			}
			done <- err
		}()
	}
	for i := 0; i < workers; i++ {
		require.NoError(t, <-done)
	}
	assert.Equal(t, int64(workers), h.releases.Load())
}

func TestScopeCloseIsIdempotent(t *testing.T) {
	var released atomic.Int64
	scope := &Scope{release: func() { released.Add(1) }}

	assert.False(t, scope.Closed())
	scope.Close()
	scope.Close()
	assert.True(t, scope.Closed())
	assert.Equal(t, int64(1), released.Load())
}
