package user

import (
	"context"
)

type Repository interface {
	FetchAccountByEmail(ctx context.Context, email string) (*Account, error)
}
