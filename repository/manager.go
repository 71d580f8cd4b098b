package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"

	auth "github.com/goliatone/go-auth-api"
	"github.com/goliatone/go-auth-api/audit"
	"github.com/goliatone/go-auth-api/company"
)

// Manager exposes every repository of the application
type Manager struct {
	db           *bun.DB
	users        auth.Users
	audits       audit.Store
	companies    company.Store[*company.Company]
	companyTypes company.Store[*company.CompanyType]
}

var _ auth.RepositoryManager = (*Manager)(nil)

func NewRepositoryManager(db *bun.DB, opts ...auth.UsersOption) *Manager {
	return &Manager{
		db:           db,
		users:        auth.NewUsersRepository(db, opts...),
		audits:       audit.NewRepository(db),
		companies:    company.NewCompaniesRepository(db),
		companyTypes: company.NewTypesRepository(db),
	}
}

func (m *Manager) Validate() error {
	if m.db == nil {
		return errors.New("repository db should be initialized")
	}

	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.audits == nil {
		return errors.New("repository audits should be initialized")
	}

	if m.companies == nil || m.companyTypes == nil {
		return errors.New("repository companies should be initialized")
	}

	return nil
}

func (m *Manager) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m *Manager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m *Manager) DB() *bun.DB {
	return m.db
}

func (m *Manager) Users() auth.Users {
	return m.users
}

func (m *Manager) Audits() audit.Store {
	return m.audits
}

func (m *Manager) Companies() company.Store[*company.Company] {
	return m.companies
}

func (m *Manager) CompanyTypes() company.Store[*company.CompanyType] {
	return m.companyTypes
}
