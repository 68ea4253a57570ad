package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishportal/parishportal/internal/client/client"
)

func newGalleryService(t *testing.T, handler http.HandlerFunc) *GalleryService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewGalleryService(client.New(srv.URL, nil, testLogger()))
}

func TestGalleryService_Upload_SendsMultipart(t *testing.T) {
	svc := newGalleryService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Baptism Sunday", r.FormValue("title"))
		assert.Equal(t, "3", r.FormValue("collection_id"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "baptism.jpg", header.Filename)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":15,"title":"Baptism Sunday","collection_id":3}}`))
	})

	res, err := svc.Upload(context.Background(), "Baptism Sunday", 3, "baptism.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(15), res.Data.ID)
}

func TestGalleryService_Upload_OmitsZeroCollection(t *testing.T) {
	svc := newGalleryService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, ok := r.MultipartForm.Value["collection_id"]
		assert.False(t, ok, "collection_id must be absent when zero")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":16}}`))
	})

	_, err := svc.Upload(context.Background(), "Loose photo", 0, "p.jpg", strings.NewReader("x"))
	require.NoError(t, err)
}

func TestGalleryService_Collections(t *testing.T) {
	svc := newGalleryService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gallery/collections", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Easter 2026","item_count":24}]}`))
	})

	res, err := svc.Collections(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Easter 2026", res.Data[0].Name)
}

func TestGalleryService_ImageURL(t *testing.T) {
	svc := NewGalleryService(client.New("http://api.local/api", nil, nil))
	assert.Equal(t, "http://api.local/api/gallery/8/image", svc.ImageURL(8))
}
