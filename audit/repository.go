package audit

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// Store persists audit entries
type Store interface {
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	FindAll(ctx context.Context) ([]*Entry, error)
	FindByID(ctx context.Context, id int64) (*Entry, error)
}

type entries struct {
	db bun.IDB
}

var _ Store = (*entries)(nil)

// NewRepository returns the bun backed Store
func NewRepository(db bun.IDB) Store {
	return &entries{db: db}
}

func (r *entries) Create(ctx context.Context, entry *Entry) (*Entry, error) {
	if _, err := r.db.NewInsert().Model(entry).Returning("*").Exec(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *entries) FindAll(ctx context.Context) ([]*Entry, error) {
	records := make([]*Entry, 0)
	if err := r.db.NewSelect().Model(&records).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID returns (nil, nil) when no entry has the id
func (r *entries) FindByID(ctx context.Context, id int64) (*Entry, error) {
	record := &Entry{}
	err := r.db.NewSelect().Model(record).Where("?TableAlias.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}
