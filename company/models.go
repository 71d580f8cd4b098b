package company

import (
	"time"

	"github.com/uptrace/bun"
)

// CompanyType classifies companies
type CompanyType struct {
	bun.BaseModel `bun:"table:company_types,alias:ct"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Type          string     `bun:"type,notnull" json:"type"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Company is a tenant of the application
type Company struct {
	bun.BaseModel `bun:"table:companies,alias:cmp"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	CompanyTypeID int64      `bun:"company_type_id,notnull" json:"company_typeId"`
	Name          string     `bun:"name,notnull" json:"name"`
	Address       string     `bun:"address" json:"address"`
	Phone         string     `bun:"phone" json:"phone"`
	CIF           string     `bun:"cif" json:"cif"`
	Active        bool       `bun:"active" json:"active"`
	Admin         bool       `bun:"admin" json:"admin"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
