package company

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// Store persists one model type keyed by an int64 id. FindByID returns
// (nil, nil) when no record matches.
type Store[T any] interface {
	Create(ctx context.Context, record T) (T, error)
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int64) (T, error)
}

type table[T any] struct {
	db        bun.IDB
	newRecord func() T
}

func newTable[T any](db bun.IDB, newRecord func() T) *table[T] {
	return &table[T]{db: db, newRecord: newRecord}
}

// NewTypesRepository returns the bun backed company type Store
func NewTypesRepository(db bun.IDB) Store[*CompanyType] {
	return newTable(db, func() *CompanyType { return &CompanyType{} })
}

// NewCompaniesRepository returns the bun backed company Store
func NewCompaniesRepository(db bun.IDB) Store[*Company] {
	return newTable(db, func() *Company { return &Company{} })
}

func (t *table[T]) Create(ctx context.Context, record T) (T, error) {
	if _, err := t.db.NewInsert().Model(record).Returning("*").Exec(ctx); err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

func (t *table[T]) FindAll(ctx context.Context) ([]T, error) {
	records := make([]T, 0)
	if err := t.db.NewSelect().Model(&records).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func (t *table[T]) FindByID(ctx context.Context, id int64) (T, error) {
	var zero T
	record := t.newRecord()
	err := t.db.NewSelect().Model(record).Where("?TableAlias.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, nil
		}
		return zero, err
	}
	return record, nil
}
