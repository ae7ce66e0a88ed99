package domain

import "time"

// Account is a stored, authenticated identity on one network, usable as a
// publish target. Credentials is an opaque JSON blob whose shape depends on
// Network; see credentials.go. Accounts are created by a successful auth flow
// and destroyed by logout, never edited in place.
type Account struct {
	ID          int64
	Network     Network
	Username    string
	Credentials string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Upload is a media file staged for the next publish. The whole staging buffer
// is broadcast to every target of the next post and cleared after the attempt.
type Upload struct {
	ID          int64
	Filename    string
	ContentType string
	Body        []byte
	CreatedAt   time.Time
}
