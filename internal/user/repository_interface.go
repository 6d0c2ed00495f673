package user

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	RoleExists(ctx context.Context, role string) (bool, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int, name, role string) (*User, error)
	SetActive(ctx context.Context, id int, active bool) (*User, error)
}
