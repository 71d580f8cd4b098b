package audit

import (
	"time"

	"github.com/uptrace/bun"
)

// Entry is a single audit log record
type Entry struct {
	bun.BaseModel `bun:"table:audits,alias:aud"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Message       string     `bun:"message,notnull" json:"message"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
