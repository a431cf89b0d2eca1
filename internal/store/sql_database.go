package store

import (
	"database/sql"

	"github.com/limitclean/limitclean/internal/logger"
	"github.com/limitclean/limitclean/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
