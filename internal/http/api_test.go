package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adboard/internal/auth"
	"adboard/internal/graph"
	"adboard/internal/repository/sqlite"
	"adboard/internal/service"
)

type testServer struct {
	router *gin.Engine
	issuer *auth.Issuer
	userID int64
}

func newTestServer(t *testing.T) *testServer {
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

	users := service.NewUserService(repos.Users)
	user, err := users.Register(ctx, "a@b.com", "secret", "Ada", "Burke")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	scopes := graph.NewScopeFactory(graph.Deps{
		DB:     db,
		Issuer: issuer,
		Logger: logger,
	})
	executor := graph.NewExecutor(graph.NewSchema(), scopes)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(executor, issuer, logger).RegisterRoutes(router)

	return &testServer{router: router, issuer: issuer, userID: user.ID}
}

func (s *testServer) post(t *testing.T, body map[string]any, token string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginOverHTTP(t *testing.T) {
	s := newTestServer(t)

	rec := s.post(t, map[string]any{
		"operation": "login",
		"variables": map[string]any{"email": "a@b.com", "password": "secret"},
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	user, ok := data["user"].(map[string]any)
	require.True(t, ok, "success response populates user")
	assert.Equal(t, "a@b.com", user["email"])
	assert.NotEmpty(t, data["token"])
	assert.Nil(t, data["errors"])
}

func TestLoginFailureIsStillHTTP200(t *testing.T) {
	s := newTestServer(t)

	rec := s.post(t, map[string]any{
		"operation": "login",
		"variables": map[string]any{"email": "a@b.com", "password": "wrong"},
	}, "")
	// errors-in-payload is the failure signal, not the status code
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	assert.Nil(t, data["user"])
	errs, ok := data["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	first := errs[0].(map[string]any)
	assert.Equal(t, "InvalidCredentialsError", first["typename"])
}

func TestUnknownOperation(t *testing.T) {
	s := newTestServer(t)

	rec := s.post(t, map[string]any{"operation": "fullTableScan"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedQueryInputIsBadRequest(t *testing.T) {
	s := newTestServer(t)

	// Paging variables of the wrong type are a client error, not a fault.
	rec := s.post(t, map[string]any{
		"operation": "listings",
		"variables": map[string]any{"limit": "ten"},
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthRequiredOperation(t *testing.T) {
	s := newTestServer(t)

	rec := s.post(t, map[string]any{"operation": "users"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthorizedQuery(t *testing.T) {
	s := newTestServer(t)

	// A real token from the login flow authorizes protected queries.
	rec := s.post(t, map[string]any{
		"operation": "login",
		"variables": map[string]any{"email": "a@b.com", "password": "secret"},
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeData(t, rec)["token"].(string)

	rec = s.post(t, map[string]any{"operation": "users"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGarbageTokenRejected(t *testing.T) {
	s := newTestServer(t)

	rec := s.post(t, map[string]any{"operation": "users"}, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
