package storage

import (
	"errors"
	"io"
)

var (
	ErrNotDir   = errors.New("given root is not a directory")
	ErrInternal = errors.New("internal error")
	ErrCreate   = errors.New("failed to create file")
	ErrNotExist = errors.New("file does not exist")
)

// Spool writes transient files to disk for code that can only consume local
// paths, such as the browser automation feeding a native file input. Every
// written file must be removed again by the caller; the publish path does so
// on success and failure alike.
type Spool interface {
	// Write stores content under a unique name derived from the given one and
	// returns the absolute path of the created file.
	Write(name string, content io.Reader) (path string, err error)
	Remove(path string) error
}
