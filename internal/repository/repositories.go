package repository

import (
	"github.com/deppfellow/dogwalk/internal/database"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Books        BookRepositoryI
	Users        UserRepositoryI
	Dogs         DogRepositoryI
	WalkRequests WalkRequestRepositoryI
	Walkers      WalkerRepositoryI
}

// NewRepositories builds every repository over the same Querier.
func NewRepositories(db database.Querier) *Repositories {
	return &Repositories{
		Books:        NewBookRepository(db),
		Users:        NewUserRepository(db),
		Dogs:         NewDogRepository(db),
		WalkRequests: NewWalkRequestRepository(db),
		Walkers:      NewWalkerRepository(db),
	}
}
