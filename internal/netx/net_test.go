package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishportal/parishportal/internal/common"
)

func TestFetchBinary_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	t.Cleanup(srv.Close)

	data, err := FetchBinary(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)
}

func TestFetchBinary_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := FetchBinary(context.Background(), srv.Client(), srv.URL)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFetchBinary_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, err := FetchBinary(context.Background(), srv.Client(), srv.URL)
	assert.ErrorContains(t, err, "500")
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestDownloadToFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("bulletin"))
	}))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "bulletin.pdf")
	require.NoError(t, DownloadToFile(context.Background(), srv.Client(), srv.URL, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bulletin", string(data))
}
