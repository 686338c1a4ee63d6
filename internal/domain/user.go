package domain

import "context"

// user roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type UserModel struct {
	ID         string `json:"id"`
	Name       string `json:"name" validate:"required"`
	Username   string `json:"username" validate:"required,min=3,max=32"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password,omitempty" validate:"required,min=8"`
	Role       string `json:"role"`
	LoginRetry int    `json:"-"`
	LastLogin  int64  `json:"-"`
}

type UserRepository interface {
	FindByCredential(ctx context.Context, post *UserModel) (*UserModel, error)
	FindByID(ctx context.Context, id string) (*UserModel, error)
	SaveUser(ctx context.Context, post *UserModel) error
	UpdateLogin(ctx context.Context, post *UserModel) error
}

type UserUseCase interface {
	SignUp(ctx context.Context, post *UserModel) (*UserModel, error)
	Exists(ctx context.Context, post *UserModel) (bool, error)
}
