package repository

import (
	"context"

	"github.com/deppfellow/dogwalk/internal/model"
)

// BookRepositoryI reads the demo books table.
type BookRepositoryI interface {
	List(ctx context.Context) ([]model.Book, error)
}

// UserRepositoryI looks users up for authentication.
type UserRepositoryI interface {
	FindByCredentials(ctx context.Context, username, password string) (*model.User, error)
}

// DogRepositoryI reads dogs with their owners.
type DogRepositoryI interface {
	ListWithOwners(ctx context.Context) ([]model.DogWithOwner, error)
}

// WalkRequestRepositoryI reads walk requests.
type WalkRequestRepositoryI interface {
	ListOpen(ctx context.Context) ([]model.OpenWalkRequest, error)
}

// WalkerRepositoryI aggregates walker statistics.
type WalkerRepositoryI interface {
	Summaries(ctx context.Context) ([]model.WalkerSummary, error)
}
