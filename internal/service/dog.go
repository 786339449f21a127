package service

import (
	"context"

	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/deppfellow/dogwalk/internal/repository"
)

type DogService struct {
	dogs repository.DogRepositoryI
}

func NewDogService(dogs repository.DogRepositoryI) *DogService {
	return &DogService{dogs: dogs}
}

func (s *DogService) List(ctx context.Context) ([]model.DogWithOwner, error) {
	dogs, err := s.dogs.ListWithOwners(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(dogs), nil
}
