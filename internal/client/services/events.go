package services

import (
	"context"
	"fmt"

	"github.com/parishportal/parishportal/internal/client/client"
	"github.com/parishportal/parishportal/internal/client/models"
)

// EventsService is the typed facade over the /events endpoints. Event
// images travel base64-embedded inside the JSON payload (EventInput
// ImageData/ImageName); retrieval goes through the raw image URL.
type EventsService struct {
	client *client.Client
}

func NewEventsService(c *client.Client) *EventsService {
	return &EventsService{client: c}
}

// List fetches events with optional pagination/filtering.
func (s *EventsService) List(ctx context.Context, opts *client.ListOptions) (*client.Result[[]models.Event], error) {
	env, err := s.client.Get(ctx, "/events", opts)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[[]models.Event](env)
}

// Get fetches a single event by id.
func (s *EventsService) Get(ctx context.Context, id int64) (*client.Result[models.Event], error) {
	env, err := s.client.Get(ctx, fmt.Sprintf("/events/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[models.Event](env)
}

// Create adds an event.
func (s *EventsService) Create(ctx context.Context, in models.EventInput) (*client.Result[models.Event], error) {
	env, err := s.client.Post(ctx, "/events", in)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[models.Event](env)
}

// Update replaces an event.
func (s *EventsService) Update(ctx context.Context, id int64, in models.EventInput) (*client.Result[models.Event], error) {
	env, err := s.client.Put(ctx, fmt.Sprintf("/events/%d", id), in)
	if err != nil {
		return nil, err
	}
	return client.DecodeResult[models.Event](env)
}

// Delete removes an event. The envelope is returned verbatim.
func (s *EventsService) Delete(ctx context.Context, id int64) (*client.Envelope, error) {
	return s.client.Delete(ctx, fmt.Sprintf("/events/%d", id))
}

// ImageURL deterministically builds the retrieval URL for an event image.
// Pure string work: no I/O, no assumption the asset exists.
func (s *EventsService) ImageURL(id int64) string {
	return s.client.AbsoluteURL(fmt.Sprintf("/events/%d/image", id))
}
