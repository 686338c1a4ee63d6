package user

import (
	"context"
	"testing"

	"github.com/rajdevullash/lms-task-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users []*domain.UserModel
}

func (r *fakeUserRepo) FindByCredential(ctx context.Context, post *domain.UserModel) (*domain.UserModel, error) {
	for _, u := range r.users {
		if u.Username == post.Username || u.Email == post.Email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.UserModel, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SaveUser(ctx context.Context, post *domain.UserModel) error {
	post.ID = "user-1"
	r.users = append(r.users, post)
	return nil
}

func (r *fakeUserRepo) UpdateLogin(ctx context.Context, post *domain.UserModel) error {
	return nil
}

func TestSignUp(t *testing.T) {
	uc := NewUserUseCase(&fakeUserRepo{})

	created, err := uc.SignUp(context.Background(), &domain.UserModel{
		Name:     "Jane",
		Username: "jane",
		Email:    "jane@example.com",
		Password: "hashed",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestSignUp_Duplicate(t *testing.T) {
	repo := &fakeUserRepo{users: []*domain.UserModel{
		{ID: "user-1", Username: "jane", Email: "jane@example.com"},
	}}
	uc := NewUserUseCase(repo)

	_, err := uc.SignUp(context.Background(), &domain.UserModel{
		Username: "jane",
		Email:    "jane@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestExists(t *testing.T) {
	repo := &fakeUserRepo{users: []*domain.UserModel{
		{ID: "user-1", Username: "jane", Email: "jane@example.com"},
	}}
	uc := NewUserUseCase(repo)

	found, err := uc.Exists(context.Background(), &domain.UserModel{Username: "jane"})
	require.NoError(t, err)
	assert.True(t, found)

	missing, err := uc.Exists(context.Background(), &domain.UserModel{Username: "nobody", Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.False(t, missing)
}
