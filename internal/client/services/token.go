package services

import (
	"context"

	"github.com/parishportal/parishportal/internal/client/repositories/state"
	"github.com/parishportal/parishportal/internal/common"
)

// StateTokenSource adapts the durable state repository to the API client's
// read-only TokenSource. The token lives under the fixed authToken key;
// a missing key yields the empty token.
type StateTokenSource struct {
	repo state.Repository
}

func NewStateTokenSource(repo state.Repository) *StateTokenSource {
	return &StateTokenSource{repo: repo}
}

func (s *StateTokenSource) Token(ctx context.Context) (string, error) {
	b, err := s.repo.Get(ctx, common.AuthTokenKey)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
