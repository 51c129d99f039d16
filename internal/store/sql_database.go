package store

import (
	"database/sql"

	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/migrations"
)

// DB wraps the shared *sql.DB handle together with the driver name it was
// opened with, so that migrations can pick the matching goose dialect.
type DB struct {
	*sql.DB
	driver string
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
