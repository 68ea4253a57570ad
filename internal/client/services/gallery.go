package services

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/parishportal/parishportal/internal/client/client"
	"github.com/parishportal/parishportal/internal/client/models"
)

// GalleryService is the typed facade over the /gallery endpoints. Photo
// uploads travel as multipart form payloads.
type GalleryService struct {
	client *client.Client
}

func NewGalleryService(c *client.Client) *GalleryService {
	return &GalleryService{client: c}
}

func (s *GalleryService) List(ctx context.Context, opts *client.ListOptions) (*client.Result[[]models.GalleryItem], error) {
	env, err := s.client.Get(ctx, "/gallery", opts)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[[]models.GalleryItem](env)
}

func (s *GalleryService) Collections(ctx context.Context, opts *client.ListOptions) (*client.Result[[]models.GalleryCollection], error) {
	env, err := s.client.Get(ctx, "/gallery/collections", opts)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[[]models.GalleryCollection](env)
}

// Upload adds a photo via a multipart form. collectionID 0 means
// "no collection".
func (s *GalleryService) Upload(ctx context.Context, title string, collectionID int64, fileName string, image io.Reader) (*client.Result[models.GalleryItem], error) {
	form := client.NewFormBody()
	if err := form.AddField("title", title); err != nil {
		return nil, err
	}
	if collectionID > 0 {
		if err := form.AddField("collection_id", strconv.FormatInt(collectionID, 10)); err != nil {
			return nil, err
		}
	}
	if err := form.AddFile("image", fileName, image); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	env, err := s.client.Post(ctx, "/gallery", form)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[models.GalleryItem](env)
}

func (s *GalleryService) Delete(ctx context.Context, id int64) (*client.Envelope, error) {
	return s.client.Delete(ctx, fmt.Sprintf("/gallery/%d", id))
}

// ImageURL builds the retrieval URL for a gallery photo.
func (s *GalleryService) ImageURL(id int64) string {
	return s.client.AbsoluteURL(fmt.Sprintf("/gallery/%d/image", id))
}
