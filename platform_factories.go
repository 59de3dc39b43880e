package health

import (
	sqlstore "github.com/goliatone/go-health/store/sql"
	"github.com/uptrace/bun"
)

// SQLPlatform wraps an open bun database. The health tables must already
// exist, see the migrations package.
func SQLPlatform(db *bun.DB, opts ...sqlstore.Option) (*sqlstore.Platform, error) {
	return sqlstore.New(db, opts...)
}

// SQLPlatformFromPersistence accepts a go-persistence-bun client or anything
// exposing DB() *bun.DB.
func SQLPlatformFromPersistence(client any, opts ...sqlstore.Option) (*sqlstore.Platform, error) {
	return sqlstore.NewFromPersistence(client, opts...)
}

// OpenSQLPlatform opens driver ("postgres" or "sqlite3") at dsn.
func OpenSQLPlatform(driver, dsn string, opts ...sqlstore.Option) (*sqlstore.Platform, error) {
	db, err := sqlstore.OpenDB(driver, dsn)
	if err != nil {
		return nil, err
	}
	platform, err := sqlstore.New(db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return platform, nil
}
