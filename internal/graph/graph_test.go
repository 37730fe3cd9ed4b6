package graph

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"adboard/internal/auth"
	"adboard/internal/repository/sqlite"
	"adboard/internal/service"
)

// testHarness is a fully wired executor over an in-memory database, with a
// release counter on the scope factory.
type testHarness struct {
	executor *Executor
	issuer   *auth.Issuer
	users    service.UserService
	releases *atomic.Int64
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := sqlite.NewRepositories(db)
	require.NoError(t, repos.Init(ctx))
	require.NoError(t, repos.Seed(ctx))

	issuer, err := auth.NewIssuer(auth.Options{
		SigningKey: []byte("test-signing-key"),
		Issuer:     "adboard-test",
		Audience:   "adboard-test-clients",
		TokenTTL:   time.Hour,
	})
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	var releases atomic.Int64
	scopes := NewScopeFactory(Deps{
		DB:        db,
		Issuer:    issuer,
		Exchanger: fakeExchanger{},
		Logger:    logger,
		OnRelease: func() { releases.Add(1) },
	})

	return &testHarness{
		executor: NewExecutor(NewSchema(), scopes),
		issuer:   issuer,
		users:    service.NewUserService(repos.Users),
		releases: &releases,
	}
}

type fakeExchanger struct{}

func (fakeExchanger) ExchangeCode(_ context.Context, code string) (*service.OAuthToken, error) {
	return &service.OAuthToken{AccessToken: "token-for-" + code, UserID: "acct-1"}, nil
}

// seedUser registers the baseline credential record used across tests.
func (h *testHarness) seedUser(t *testing.T) int64 {
	t.Helper()
	user, err := h.users.Register(context.Background(), "a@b.com", "secret", "Ada", "Burke")
	require.NoError(t, err)
	return user.ID
}

// execute runs an operation and closes the result after fn inspected it.
func (h *testHarness) execute(t *testing.T, req Request, fn func(data any)) {
	t.Helper()
	result, err := h.executor.Execute(context.Background(), req)
	require.NoError(t, err)
	defer result.Close()
	fn(result.Data)
}
