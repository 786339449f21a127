package service

import (
	"context"

	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/deppfellow/dogwalk/internal/repository"
)

type WalkService struct {
	requests repository.WalkRequestRepositoryI
	walkers  repository.WalkerRepositoryI
}

func NewWalkService(requests repository.WalkRequestRepositoryI, walkers repository.WalkerRepositoryI) *WalkService {
	return &WalkService{requests: requests, walkers: walkers}
}

// ListOpen returns walk requests still awaiting a walker.
func (s *WalkService) ListOpen(ctx context.Context) ([]model.OpenWalkRequest, error) {
	requests, err := s.requests.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(requests), nil
}

// WalkerSummaries returns rating and completed-walk statistics per walker.
func (s *WalkService) WalkerSummaries(ctx context.Context) ([]model.WalkerSummary, error) {
	summaries, err := s.walkers.Summaries(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(summaries), nil
}
