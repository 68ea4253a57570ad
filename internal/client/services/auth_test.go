package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/parishportal/parishportal/internal/client/client"
	"github.com/parishportal/parishportal/internal/client/repositories/state"
	"github.com/parishportal/parishportal/internal/common"
	"github.com/parishportal/parishportal/internal/logging"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupState(t *testing.T) state.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE client_state (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return state.NewSQLiteRepository(db)
}

func storedToken(t *testing.T, repo state.Repository) string {
	t.Helper()
	b, err := repo.Get(context.Background(), common.AuthTokenKey)
	require.NoError(t, err)
	return string(b)
}

func storedProfile(t *testing.T, repo state.Repository) string {
	t.Helper()
	b, err := repo.Get(context.Background(), common.AuthUserKey)
	require.NoError(t, err)
	return string(b)
}

// authEnv bundles an AuthService wired against an httptest backend.
type authEnv struct {
	auth  AuthService
	repo  state.Repository
	calls *atomic.Int64
}

func newAuthEnv(t *testing.T, handler http.HandlerFunc) *authEnv {
	t.Helper()
	repo := setupState(t)

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL, NewStateTokenSource(repo), testLogger())
	return &authEnv{
		auth:  NewAuthService(c, repo, testLogger()),
		repo:  repo,
		calls: &calls,
	}
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// ---- CheckAuth ----

func TestCheckAuth_NoToken_NoNetworkCall(t *testing.T) {
	env := newAuthEnv(t, jsonHandler(http.StatusOK, `{"success":true}`))
	ctx := context.Background()

	assert.True(t, env.auth.Loading())
	env.auth.CheckAuth(ctx)

	assert.False(t, env.auth.Loading())
	assert.Nil(t, env.auth.CurrentUser())
	assert.False(t, env.auth.IsAuthenticated())
	assert.Zero(t, env.calls.Load(), "no persisted token must mean no profile fetch")
}

func TestCheckAuth_RestoresUser(t *testing.T) {
	env := newAuthEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/profile", r.URL.Path)
		assert.Equal(t, "Bearer tok-keep", r.Header.Get(common.AuthHeaderName))
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":1,"email":"jane@parish.org","role":"member"}}`))
	})
	ctx := context.Background()
	require.NoError(t, env.repo.Set(ctx, common.AuthTokenKey, []byte("tok-keep")))

	env.auth.CheckAuth(ctx)

	assert.False(t, env.auth.Loading())
	require.NotNil(t, env.auth.CurrentUser())
	assert.Equal(t, "jane@parish.org", env.auth.CurrentUser().Email)
	assert.Equal(t, "tok-keep", storedToken(t, env.repo), "valid token stays persisted")
}

func TestCheckAuth_RejectedToken_DeletesIt(t *testing.T) {
	env := newAuthEnv(t, jsonHandler(http.StatusUnauthorized, `{"success":false,"message":"token expired"}`))
	ctx := context.Background()
	require.NoError(t, env.repo.Set(ctx, common.AuthTokenKey, []byte("tok-stale")))

	env.auth.CheckAuth(ctx)

	assert.False(t, env.auth.Loading())
	assert.Nil(t, env.auth.CurrentUser())
	assert.Empty(t, storedToken(t, env.repo), "rejected token must be deleted")
	assert.Empty(t, storedProfile(t, env.repo), "cached profile goes with it")
}

func TestCheckAuth_TransportError_DeletesToken(t *testing.T) {
	repo := setupState(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, common.AuthTokenKey, []byte("tok")))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection refused

	c := client.New(srv.URL, NewStateTokenSource(repo), testLogger())
	auth := NewAuthService(c, repo, testLogger())

	auth.CheckAuth(ctx)

	assert.False(t, auth.Loading())
	assert.Nil(t, auth.CurrentUser())
	assert.Empty(t, storedToken(t, repo))
}

func TestCheckAuth_SecondCallIsNoOp(t *testing.T) {
	env := newAuthEnv(t, jsonHandler(http.StatusOK, `{"success":true,"data":{"id":1,"role":"member"}}`))
	ctx := context.Background()
	require.NoError(t, env.repo.Set(ctx, common.AuthTokenKey, []byte("tok")))

	env.auth.CheckAuth(ctx)
	first := env.calls.Load()
	env.auth.CheckAuth(ctx)

	assert.Equal(t, first, env.calls.Load(), "repeat CheckAuth must not refetch")
}

// ---- Login ----

func TestLogin_Success_PersistsTokenAndUser(t *testing.T) {
	env := newAuthEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"token":"tok-new","user":{"id":7,"email":"jane@parish.org","role":"admin"}}`))
	})

	res := env.auth.Login(context.Background(), "jane@parish.org", []byte("secret"))

	assert.True(t, res.Success)
	require.NotNil(t, res.User)
	assert.Equal(t, int64(7), res.User.ID)
	assert.Equal(t, "tok-new", storedToken(t, env.repo))
	assert.Contains(t, storedProfile(t, env.repo), `"jane@parish.org"`, "profile is cached alongside the token")
	assert.True(t, env.auth.IsAuthenticated())
}

func TestLogin_FailureShapes_DoNotTouchStore(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "success false", body: `{"success":false,"message":"invalid credentials"}`},
		{name: "missing token", body: `{"success":true,"user":{"id":7,"role":"member"}}`},
		{name: "missing user", body: `{"success":true,"token":"tok-x"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newAuthEnv(t, jsonHandler(http.StatusOK, tc.body))

			res := env.auth.Login(context.Background(), "jane@parish.org", []byte("secret"))

			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Message)
			assert.Empty(t, storedToken(t, env.repo), "failed login must not write the token store")
			assert.False(t, env.auth.IsAuthenticated())
		})
	}
}

func TestLogin_NetworkError_GenericFailureResult(t *testing.T) {
	repo := setupState(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := client.New(srv.URL, NewStateTokenSource(repo), testLogger())
	auth := NewAuthService(c, repo, testLogger())

	res := auth.Login(context.Background(), "jane@parish.org", []byte("secret"))

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
	assert.Empty(t, storedToken(t, repo))
}

// ---- Logout ----

func TestLogout_ClearsTokenAndUser_Idempotent(t *testing.T) {
	env := newAuthEnv(t, jsonHandler(http.StatusOK,
		`{"success":true,"token":"tok-z","user":{"id":3,"role":"member"}}`))
	ctx := context.Background()

	res := env.auth.Login(ctx, "jane@parish.org", []byte("secret"))
	require.True(t, res.Success)
	require.NotEmpty(t, storedToken(t, env.repo))

	require.NoError(t, env.auth.Logout(ctx))
	assert.Empty(t, storedToken(t, env.repo))
	assert.Empty(t, storedProfile(t, env.repo))
	assert.False(t, env.auth.IsAuthenticated())

	// Logging out again is harmless.
	require.NoError(t, env.auth.Logout(ctx))
}

// ---- Profile mutations ----

func TestUpdateProfile_RefreshesCachedUser(t *testing.T) {
	env := newAuthEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/login":
			_, _ = w.Write([]byte(`{"success":true,"token":"t","user":{"id":3,"first_name":"Jane","role":"member"}}`))
		case r.URL.Path == "/auth/profile" && r.Method == http.MethodPut:
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":3,"first_name":"Janet","role":"member"}}`))
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()
	require.True(t, env.auth.Login(ctx, "jane@parish.org", []byte("pw")).Success)

	res, err := env.auth.UpdateProfile(ctx, ProfileInput{FirstName: "Janet"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Janet", env.auth.CurrentUser().FirstName)
}

func TestChangePassword_PassesEnvelopeThrough(t *testing.T) {
	env := newAuthEnv(t, jsonHandler(http.StatusBadRequest,
		`{"success":false,"message":"current password incorrect"}`))

	envl, err := env.auth.ChangePassword(context.Background(), []byte("old"), []byte("new"))
	require.NoError(t, err)
	assert.False(t, envl.Success)
	assert.Equal(t, "current password incorrect", envl.Message)
}

// ---- Register ----

func TestRegister(t *testing.T) {
	t.Run("success does not log in", func(t *testing.T) {
		env := newAuthEnv(t, jsonHandler(http.StatusCreated, `{"success":true,"message":"account created"}`))

		res := env.auth.Register(context.Background(), RegisterInput{
			Username: "jane", Email: "jane@parish.org", Password: "pw",
		})

		assert.True(t, res.Success)
		assert.False(t, env.auth.IsAuthenticated())
		assert.Empty(t, storedToken(t, env.repo))
	})

	t.Run("failure carries message", func(t *testing.T) {
		env := newAuthEnv(t, jsonHandler(http.StatusConflict, `{"success":false,"message":"email taken"}`))

		res := env.auth.Register(context.Background(), RegisterInput{Email: "jane@parish.org"})

		assert.False(t, res.Success)
		assert.Equal(t, "email taken", res.Message)
	})
}
