package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/parishportal/parishportal/internal/client/client"
	"github.com/parishportal/parishportal/internal/client/models"
)

// PostsService is the typed facade over the /posts endpoints. Posts are
// addressable by numeric id (admin flows) and by slug (public pages).
type PostsService struct {
	client *client.Client
}

func NewPostsService(c *client.Client) *PostsService {
	return &PostsService{client: c}
}

func (s *PostsService) List(ctx context.Context, opts *client.ListOptions) (*client.Result[[]models.Post], error) {
	env, err := s.client.Get(ctx, "/posts", opts)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[[]models.Post](env)
}

func (s *PostsService) Get(ctx context.Context, id int64) (*client.Result[models.Post], error) {
	env, err := s.client.Get(ctx, fmt.Sprintf("/posts/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[models.Post](env)
}

func (s *PostsService) GetBySlug(ctx context.Context, slug string) (*client.Result[models.Post], error) {
	env, err := s.client.Get(ctx, "/posts/"+url.PathEscape(slug), nil)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[models.Post](env)
}

func (s *PostsService) Create(ctx context.Context, in models.PostInput) (*client.Result[models.Post], error) {
	env, err := s.client.Post(ctx, "/posts", in)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[models.Post](env)
}

func (s *PostsService) Update(ctx context.Context, id int64, in models.PostInput) (*client.Result[models.Post], error) {
	env, err := s.client.Put(ctx, fmt.Sprintf("/posts/%d", id), in)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[models.Post](env)
}

func (s *PostsService) Delete(ctx context.Context, id int64) (*client.Envelope, error) {
	return s.client.Delete(ctx, fmt.Sprintf("/posts/%d", id))
}

// ImageURL builds the retrieval URL for a post cover image.
func (s *PostsService) ImageURL(id int64) string {
	return s.client.AbsoluteURL(fmt.Sprintf("/posts/%d/image", id))
}
