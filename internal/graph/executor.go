package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownOperation is returned before any scope is acquired.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrUnauthorized is returned when an operation requires an authenticated
	// caller and the request carries none.
	ErrUnauthorized = errors.New("authentication required")
)

// Variables are the already-deserialized operation arguments.
type Variables map[string]any

// Request names an operation and supplies its variables. UserID is the
// authenticated subject (0 for anonymous), established by the transport.
type Request struct {
	Operation string
	Variables Variables
	UserID    int64
}

// Result owns the scope its data was resolved in. Callers must Close it when
// they are done with Data; teardown is tied to the result's lifetime, not to
// Execute returning.
type Result struct {
	Data any

	scope *Scope
	once  sync.Once
}

// Close releases the result's scope. Safe to call more than once.
func (r *Result) Close() {
	r.once.Do(func() {
		if r.scope != nil {
			r.scope.Close()
		}
	})
}

// Executor runs operations against the schema. It holds no mutable state
// between calls: the schema and factory are immutable, and every call works
// in its own scope.
type Executor struct {
	schema *Schema
	scopes ScopeFactory
}

func NewExecutor(schema *Schema, scopes ScopeFactory) *Executor {
	return &Executor{schema: schema, scopes: scopes}
}

// Execute resolves one operation. Every path that acquires a scope releases
// it: resolver errors and panics close it here, success hands ownership to
// the Result, and cancellation mid-flight discards the data and closes it.
func (e *Executor) Execute(ctx context.Context, req Request) (*Result, error) {
	op, ok := e.schema.Lookup(req.Operation)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, req.Operation)
	}
	if op.RequiresAuth && req.UserID == 0 {
		return nil, ErrUnauthorized
	}

	scope, err := e.scopes.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	ctx = withCaller(ctx, req.UserID)

	data, err := e.resolve(ctx, op, scope, req.Variables)
	if err != nil {
		scope.Close()
		return nil, err
	}
	if cerr := ctx.Err(); cerr != nil {
		// Cancelled while resolving: the partial result is discarded, the
		// scope still comes down.
		scope.Close()
		return nil, cerr
	}

	return &Result{Data: data, scope: scope}, nil
}

func (e *Executor) resolve(ctx context.Context, op Operation, scope *Scope, vars Variables) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			scope.Logger.WithField("operation", op.Name).Errorf("resolver panic: %v", r)
			err = fmt.Errorf("operation %s: internal fault: %v", op.Name, r)
		}
	}()
	return op.Resolve(ctx, scope, vars)
}
