package account

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("account not found")
	ErrEmailTaken = errors.New("email already in use")
)

// Repo persists accounts. GetByEmail is an equality query on the email
// field; GetManyByIDs is a set-membership query on the id field.
type Repo interface {
	Create(ctx context.Context, a Account) error
	GetByID(ctx context.Context, id string) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetManyByIDs(ctx context.Context, ids []string) (map[string]Account, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
