package auth

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// RepositoryManager is what the auth package needs from the application
// repository layer, repository.Manager implements it.
type RepositoryManager interface {
	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Users() Users
}
