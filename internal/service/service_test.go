package service

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/deppfellow/dogwalk/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[string]model.User
	err   error
}

func (f fakeUsers) FindByCredentials(_ context.Context, username, password string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[username]
	if !ok || u.PasswordHash != password {
		return nil, nil
	}
	return &u, nil
}

type fakeBooks struct {
	books []model.Book
	err   error
}

func (f fakeBooks) List(context.Context) ([]model.Book, error) { return f.books, f.err }

type fakeDogs struct{ err error }

func (f fakeDogs) ListWithOwners(context.Context) ([]model.DogWithOwner, error) { return nil, f.err }

type fakeRequests struct{ requests []model.OpenWalkRequest }

func (f fakeRequests) ListOpen(context.Context) ([]model.OpenWalkRequest, error) {
	return f.requests, nil
}

type fakeWalkers struct{ err error }

func (f fakeWalkers) Summaries(context.Context) ([]model.WalkerSummary, error) { return nil, f.err }

func TestAuthService_Login(t *testing.T) {
	users := fakeUsers{users: map[string]model.User{
		"alice": {UserID: 1, Username: "alice", PasswordHash: "pw", Role: model.RoleOwner},
		"bob":   {UserID: 2, Username: "bob", PasswordHash: "secret", Role: model.RoleWalker},
	}}
	svc := NewAuthService(users)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantRole model.Role
		wantErr  error
	}{
		{name: "owner", username: "alice", password: "pw", wantRole: model.RoleOwner},
		{name: "walker", username: "bob", password: "secret", wantRole: model.RoleWalker},
		{name: "wrong password", username: "alice", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "carol", password: "pw", wantErr: ErrInvalidCredentials},
		{name: "empty", wantErr: ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, user.Role)
		})
	}
}

func TestAuthService_LoginQueryFailure(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewAuthService(fakeUsers{err: boom})

	_, err := svc.Login(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestServices_EmptyResultsAreNotNil(t *testing.T) {
	svcs := NewServices(&repository.Repositories{
		Books:        fakeBooks{},
		Users:        fakeUsers{},
		Dogs:         fakeDogs{},
		WalkRequests: fakeRequests{},
		Walkers:      fakeWalkers{},
	})
	ctx := context.Background()

	books, err := svcs.Books.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)

	dogs, err := svcs.Dogs.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, dogs)

	open, err := svcs.Walks.ListOpen(ctx)
	require.NoError(t, err)
	assert.NotNil(t, open)

	summaries, err := svcs.Walks.WalkerSummaries(ctx)
	require.NoError(t, err)
	assert.NotNil(t, summaries)
}

func TestServices_PropagateErrors(t *testing.T) {
	boom := errors.New("boom")
	svcs := NewServices(&repository.Repositories{
		Books:        fakeBooks{err: boom},
		Users:        fakeUsers{},
		Dogs:         fakeDogs{err: boom},
		WalkRequests: fakeRequests{},
		Walkers:      fakeWalkers{err: boom},
	})
	ctx := context.Background()

	_, err := svcs.Books.List(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = svcs.Dogs.List(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = svcs.Walks.WalkerSummaries(ctx)
	assert.ErrorIs(t, err, boom)
}
