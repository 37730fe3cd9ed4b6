package graph

import (
	"context"
	"database/sql"
	"sync"

	"github.com/sirupsen/logrus"

	"adboard/internal/auth"
	"adboard/internal/repository"
	"adboard/internal/repository/sqlite"
	"adboard/internal/service"
	"adboard/internal/storage"
)

// Scope is the set of per-request service instances. Each Execute call gets
// its own; nothing in a Scope is shared with a concurrent request. Close
// releases everything exactly once, no matter how often it is called.
type Scope struct {
	Users       service.UserService
	Listings    service.ListingService
	Orders      service.OrderService
	Connections service.ConnectionService
	Platforms   repository.PlatformRepository
	Types       repository.ListingTypeRepository
	Issuer      *auth.Issuer
	Logger      *logrus.Entry

	release   func()
	closeOnce sync.Once
	closed    bool
	mu        sync.Mutex
}

// Close tears the scope down. Idempotent.
func (s *Scope) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		if s.release != nil {
			s.release()
		}
	})
}

// Closed reports whether teardown has run.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// ScopeFactory builds a fresh Scope per request.
type ScopeFactory interface {
	Acquire(ctx context.Context) (*Scope, error)
}

// Deps are the process-wide immutables a scope factory closes over: the
// connection pool, the token issuer, the OAuth exchanger, the asset store.
type Deps struct {
	DB        *sql.DB
	Issuer    *auth.Issuer
	Exchanger service.CodeExchanger
	Assets    storage.Service
	Bucket    string
	KeyPrefix string
	Logger    *logrus.Logger

	// OnRelease, when set, runs at scope teardown. Tests use it to assert
	// release happened exactly once.
	OnRelease func()
}

type scopeFactory struct {
	deps Deps
}

// NewScopeFactory returns the default factory. Repositories and services are
// constructed fresh for every Acquire; only the pool and configuration are
// shared, and both are safe for concurrent use.
func NewScopeFactory(deps Deps) ScopeFactory {
	return &scopeFactory{deps: deps}
}

func (f *scopeFactory) Acquire(ctx context.Context) (*Scope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repos := sqlite.NewRepositories(f.deps.DB)
	return &Scope{
		Users:       service.NewUserService(repos.Users),
		Listings:    service.NewListingService(repos.Listings, repos.ListingTypes, f.deps.Assets, f.deps.Bucket, f.deps.KeyPrefix),
		Orders:      service.NewOrderService(repos.Orders, repos.Listings),
		Connections: service.NewConnectionService(repos.Connections, repos.Platforms, f.deps.Exchanger),
		Platforms:   repos.Platforms,
		Types:       repos.ListingTypes,
		Issuer:      f.deps.Issuer,
		Logger:      f.deps.Logger.WithField("component", "graph"),
		release:     f.deps.OnRelease,
	}, nil
}
