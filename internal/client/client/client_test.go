package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishportal/parishportal/internal/common"
)

// ---- helpers ----

// staticTokens is a TokenSource returning a fixed value.
type staticTokens struct {
	token string
	err   error
	calls int
}

func (s *staticTokens) Token(ctx context.Context) (string, error) {
	s.calls++
	return s.token, s.err
}

// recorded captures the parts of an incoming request the tests assert on.
type recorded struct {
	method      string
	path        string
	query       string
	contentType string
	authz       string
	requestID   string
}

func newEchoServer(t *testing.T, status int, body string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.contentType = r.Header.Get("Content-Type")
		rec.authz = r.Header.Get(common.AuthHeaderName)
		rec.requestID = r.Header.Get(common.RequestIDHeaderName)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

// ---- content-type selection ----

func TestDo_JSONBody_SetsJSONContentType(t *testing.T) {
	srv, rec := newEchoServer(t, http.StatusOK, `{"success":true}`)
	c := New(srv.URL, nil, nil)

	env, err := c.Post(context.Background(), "/events", map[string]string{"title": "Easter"})
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, "application/json", rec.contentType)
}

func TestDo_FormBody_UsesMultipartBoundary(t *testing.T) {
	srv, rec := newEchoServer(t, http.StatusOK, `{"success":true}`)
	c := New(srv.URL, nil, nil)

	form := NewFormBody()
	require.NoError(t, form.AddField("title", "Picnic"))
	require.NoError(t, form.AddFile("image", "picnic.jpg", strings.NewReader("jpegbytes")))
	require.NoError(t, form.Close())

	_, err := c.Post(context.Background(), "/gallery", form)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rec.contentType, "multipart/form-data; boundary="),
		"content type %q should be multipart with boundary", rec.contentType)
	assert.NotContains(t, rec.contentType, "application/json")
}

// ---- bearer token handling ----

func TestDo_AttachesBearerWhenTokenPresent(t *testing.T) {
	srv, rec := newEchoServer(t, http.StatusOK, `{"success":true}`)
	tokens := &staticTokens{token: "tok-123"}
	c := New(srv.URL, tokens, nil)

	_, err := c.Get(context.Background(), "/auth/profile", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", rec.authz)
	assert.Equal(t, 1, tokens.calls, "token store is read once per request")
}

func TestDo_OmitsAuthorizationWhenNoToken(t *testing.T) {
	srv, rec := newEchoServer(t, http.StatusOK, `{"success":true}`)
	c := New(srv.URL, &staticTokens{}, nil)

	_, err := c.Get(context.Background(), "/events", nil)
	require.NoError(t, err)
	assert.Empty(t, rec.authz)
}

func TestDo_SetsRequestID(t *testing.T) {
	srv, rec := newEchoServer(t, http.StatusOK, `{"success":true}`)
	c := New(srv.URL, nil, nil)
	c.newRequestID = func() string { return "fixed-id" }

	_, err := c.Get(context.Background(), "/events", nil)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", rec.requestID)
}

// ---- error taxonomy ----

func TestDo_SuccessFalse_IsDataNotError(t *testing.T) {
	srv, _ := newEchoServer(t, http.StatusBadRequest,
		`{"success":false,"message":"title is required","errors":[{"field":"title","message":"required"}]}`)
	c := New(srv.URL, nil, nil)

	env, err := c.Post(context.Background(), "/events", map[string]string{})
	require.NoError(t, err, "application-level failure must not reject")
	assert.False(t, env.Success)
	assert.Equal(t, "title is required", env.Message)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "title", env.Errors[0].Field)
}

func TestDo_NetworkFailure_ErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, nil, nil)
	_, err := c.Get(context.Background(), "/events", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_NonJSONBody_ErrMalformedResponse(t *testing.T) {
	srv, _ := newEchoServer(t, http.StatusOK, `<html>gateway error</html>`)
	c := New(srv.URL, nil, nil)

	_, err := c.Get(context.Background(), "/events", nil)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDo_TokenSourceFailure_Rejects(t *testing.T) {
	srv, _ := newEchoServer(t, http.StatusOK, `{"success":true}`)
	c := New(srv.URL, &staticTokens{err: assert.AnError}, nil)

	_, err := c.Get(context.Background(), "/events", nil)
	assert.ErrorIs(t, err, assert.AnError)
}

// ---- misc ----

func TestAbsoluteURL(t *testing.T) {
	c := New("http://api.local/api/", nil, nil)
	assert.Equal(t, "http://api.local/api/events/42/image", c.AbsoluteURL("/events/42/image"))
	assert.Equal(t, "http://api.local/api/events", c.AbsoluteURL("events"))
}

func TestPing(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		srv, rec := newEchoServer(t, http.StatusOK, `{"success":true}`)
		c := New(srv.URL, nil, nil)
		require.NoError(t, c.Ping(context.Background()))
		assert.Equal(t, "/health", rec.path)
	})

	t.Run("unhealthy envelope", func(t *testing.T) {
		srv, _ := newEchoServer(t, http.StatusServiceUnavailable, `{"success":false,"message":"db down"}`)
		c := New(srv.URL, nil, nil)
		assert.ErrorContains(t, c.Ping(context.Background()), "db down")
	})
}
