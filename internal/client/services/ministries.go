package services

import (
	"context"
	"fmt"

	"github.com/parishportal/parishportal/internal/client/client"
	"github.com/parishportal/parishportal/internal/client/models"
)

// MinistriesService is the typed facade over the /ministries endpoints.
type MinistriesService struct {
	client *client.Client
}

func NewMinistriesService(c *client.Client) *MinistriesService {
	return &MinistriesService{client: c}
}

func (s *MinistriesService) List(ctx context.Context, opts *client.ListOptions) (*client.Result[[]models.Ministry], error) {
	env, err := s.client.Get(ctx, "/ministries", opts)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[[]models.Ministry](env)
}

func (s *MinistriesService) Get(ctx context.Context, id int64) (*client.Result[models.Ministry], error) {
	env, err := s.client.Get(ctx, fmt.Sprintf("/ministries/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[models.Ministry](env)
}

func (s *MinistriesService) Create(ctx context.Context, in models.MinistryInput) (*client.Result[models.Ministry], error) {
	env, err := s.client.Post(ctx, "/ministries", in)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[models.Ministry](env)
}

func (s *MinistriesService) Update(ctx context.Context, id int64, in models.MinistryInput) (*client.Result[models.Ministry], error) {
	env, err := s.client.Put(ctx, fmt.Sprintf("/ministries/%d", id), in)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[models.Ministry](env)
}

func (s *MinistriesService) Delete(ctx context.Context, id int64) (*client.Envelope, error) {
	return s.client.Delete(ctx, fmt.Sprintf("/ministries/%d", id))
}

// ImageURL builds the retrieval URL for a ministry image.
func (s *MinistriesService) ImageURL(id int64) string {
	return s.client.AbsoluteURL(fmt.Sprintf("/ministries/%d/image", id))
}
