// Package db defines the store contracts the rest of the application depends
// on. The sqlite implementation lives in db/impl; tests substitute fakes.
package db

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal database error")
)

// DB is the full persistence surface: the durable account store and the
// transient upload staging store, both backed by the same database file.
type DB interface {
	Accounts
	Uploads
}
