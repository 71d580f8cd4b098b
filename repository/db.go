package repository

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"

	auth "github.com/goliatone/go-auth-api"
	"github.com/goliatone/go-auth-api/audit"
	"github.com/goliatone/go-auth-api/company"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to dsn with the bun dialect matching driver
func Open(driver, dsn string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite:
		sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if isMemoryDSN(dsn) {
			// every connection to a private memory database is a new database
			sqldb.SetMaxOpenConns(1)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case DriverPostgres, "pg", "pgx":
		sqldb, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// DialectName returns the migrations directory matching db
func DialectName(db *bun.DB) string {
	if db.Dialect().Name() == dialect.PG {
		return DriverPostgres
	}
	return DriverSQLite
}

// Migrate applies the migrations of every package that owns tables
func Migrate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	name := DialectName(db)

	sources := []func(string) (fs.FS, error){
		auth.DialectMigrationsFS,
		audit.DialectMigrationsFS,
		company.DialectMigrationsFS,
	}

	migrations := migrate.NewMigrations()
	for _, source := range sources {
		fsys, err := source(name)
		if err != nil {
			return nil, err
		}
		if err := migrations.Discover(fsys); err != nil {
			return nil, fmt.Errorf("discover migrations: %w", err)
		}
	}

	migrator := migrate.NewMigrator(db, migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}

	if err := migrator.Lock(ctx); err != nil {
		return nil, fmt.Errorf("lock migrations: %w", err)
	}
	defer migrator.Unlock(ctx) //nolint:errcheck

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return group, nil
}
