package service

import (
	"github.com/deppfellow/dogwalk/internal/repository"
)

type Services struct {
	Auth  *AuthService
	Books *BookService
	Dogs  *DogService
	Walks *WalkService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Auth:  NewAuthService(repos.Users),
		Books: NewBookService(repos.Books),
		Dogs:  NewDogService(repos.Dogs),
		Walks: NewWalkService(repos.WalkRequests, repos.Walkers),
	}
}
