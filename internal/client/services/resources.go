package services

import (
	"context"
	"fmt"
	"io"

	"github.com/parishportal/parishportal/internal/client/client"
	"github.com/parishportal/parishportal/internal/client/models"
	"github.com/parishportal/parishportal/internal/netx"
)

// ResourcesService is the typed facade over the /resources endpoints.
// Resource uploads travel as multipart form payloads; the stored file is
// fetched back from the raw file URL, outside the JSON envelope.
type ResourcesService struct {
	client *client.Client
}

func NewResourcesService(c *client.Client) *ResourcesService {
	return &ResourcesService{client: c}
}

func (s *ResourcesService) List(ctx context.Context, opts *client.ListOptions) (*client.Result[[]models.Resource], error) {
	env, err := s.client.Get(ctx, "/resources", opts)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[[]models.Resource](env)
}

// Upload creates a resource from a file stream via a multipart form.
func (s *ResourcesService) Upload(ctx context.Context, title string, rType models.ResourceType, fileName string, file io.Reader) (*client.Result[models.Resource], error) {
	form := client.NewFormBody()
	if err := form.AddField("title", title); err != nil {
		return nil, err
	}
	if err := form.AddField("type", string(rType)); err != nil {
		return nil, err
	}
	if err := form.AddFile("file", fileName, file); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	env, err := s.client.Post(ctx, "/resources", form)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[models.Resource](env)
}

func (s *ResourcesService) Delete(ctx context.Context, id int64) (*client.Envelope, error) {
	return s.client.Delete(ctx, fmt.Sprintf("/resources/%d", id))
}

// FileURL builds the raw download URL for a resource file.
func (s *ResourcesService) FileURL(id int64) string {
	return s.client.AbsoluteURL(fmt.Sprintf("/resources/%d", id))
}

// Download fetches the raw file bytes for a resource.
func (s *ResourcesService) Download(ctx context.Context, id int64) ([]byte, error) {
	return netx.FetchBinary(ctx, s.client.HTTPClient(), s.FileURL(id))
}

// SaveTo downloads the raw file for a resource and writes it to path.
func (s *ResourcesService) SaveTo(ctx context.Context, id int64, path string) error {
	return netx.DownloadToFile(ctx, s.client.HTTPClient(), s.FileURL(id), path)
}
