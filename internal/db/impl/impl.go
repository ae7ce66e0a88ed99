package impl

import (
	"database/sql"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/db"
)

type dbImpl struct {
	db *sql.DB
}

func New(d *sql.DB) db.DB {
	return &dbImpl{db: d}
}

// HandleError takes a database error and returns a higher level error that
// hides the implementation details, so callers can compare against the
// sentinels in the db package instead of inspecting driver errors.
func (d *dbImpl) HandleError(err error) error {
	switch err {
	case nil:
		return nil
	case sql.ErrNoRows:
		return db.ErrNotFound
	default:
		log.Error().Err(err).Msg("database error")
		return err
	}
}
