package service

import (
	"context"
	"fmt"

	"github.com/pkordes/tourcal/internal/domain"
)

// SelectionStore parks a Selection under an opaque token and returns it once.
// selection.RedisStore and selection.TokenStore both satisfy it.
type SelectionStore interface {
	Put(ctx context.Context, sel domain.Selection) (string, error)
	Take(ctx context.Context, token string) (domain.Selection, error)
}

// SelectionService carries a committed Selection across the login redirect.
type SelectionService struct {
	store SelectionStore
}

// NewSelectionService constructs a SelectionService backed by store.
func NewSelectionService(store SelectionStore) *SelectionService {
	return &SelectionService{store: store}
}

// Park stores sel and returns the token the client carries through login.
func (s *SelectionService) Park(ctx context.Context, sel domain.Selection) (string, error) {
	token, err := s.store.Put(ctx, sel)
	if err != nil {
		return "", fmt.Errorf("service.SelectionService.Park: %w", err)
	}
	return token, nil
}

// Resume returns the Selection parked under token.
// Returns domain.ErrNotFound if the token is unknown, expired or already used.
func (s *SelectionService) Resume(ctx context.Context, token string) (domain.Selection, error) {
	sel, err := s.store.Take(ctx, token)
	if err != nil {
		return domain.Selection{}, fmt.Errorf("service.SelectionService.Resume: %w", err)
	}
	return sel, nil
}
