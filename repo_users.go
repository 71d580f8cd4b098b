package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the bun backed CredentialStore
type Users interface {
	CredentialStore
	CreateTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	FindByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error)
}

type users struct {
	repo             repository.Repository[*User]
	db               *bun.DB
	deterministicIDs bool
}

var _ Users = (*users)(nil)

type UsersOption func(*users)

// WithDeterministicIDs derives user IDs from the email address instead
// of generating random UUIDs.
func WithDeterministicIDs(enabled bool) UsersOption {
	return func(u *users) {
		u.deterministicIDs = enabled
	}
}

func NewUsersRepository(db *bun.DB, opts ...UsersOption) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	repoUsers := &users{
		repo: repo,
		db:   db,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(repoUsers)
		}
	}

	return repoUsers
}

func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	if record == nil {
		return nil, errors.New("user record must not be nil")
	}

	a.prepareUserDefaults(record)

	created, err := a.repo.CreateTx(ctx, tx, record)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

func (a *users) FindByUsername(ctx context.Context, username string) (*User, error) {
	return a.FindByUsernameTx(ctx, a.db, username)
}

func (a *users) FindByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", strings.TrimSpace(username)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return record, nil
}

func (a *users) prepareUserDefaults(record *User) {
	if record.ID != uuid.Nil {
		return
	}

	if a.deterministicIDs && record.Email != "" {
		if id, err := hashid.NewUUID(record.Email); err == nil {
			record.ID = id
			return
		}
	}

	record.ID = uuid.New()
}
