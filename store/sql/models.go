package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

// recordRow keeps the range columns as unix nanoseconds so filtering and
// ordering behave the same on sqlite and postgres.
type recordRow struct {
	bun.BaseModel `bun:"table:health_records,alias:hr"`

	ID         string    `bun:"id,pk"`
	PlatformID string    `bun:"platform_id,notnull"`
	DataType   string    `bun:"data_type,notnull"`
	StartNS    int64     `bun:"start_ns,notnull"`
	EndNS      int64     `bun:"end_ns,notnull"`
	Value      float64   `bun:"value,notnull"`
	Payload    string    `bun:"payload,notnull"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type grantRow struct {
	bun.BaseModel `bun:"table:health_grants,alias:hg"`

	ID         string    `bun:"id,pk"`
	PlatformID string    `bun:"platform_id,notnull"`
	Access     string    `bun:"access,notnull"`
	DataType   string    `bun:"data_type,notnull"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
