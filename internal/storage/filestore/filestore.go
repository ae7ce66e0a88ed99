package filestore

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/storage"
)

type FileStore struct {
	Root string
}

func New(root string) (sp storage.Spool, err error) {
	sp = &FileStore{
		Root: root,
	}

	info, err := os.Stat(root)
	if err == nil {
		if !info.IsDir() {
			log.Error().Str("root", root).Msg("not a directory")
			err = storage.ErrNotDir
		}
		return
	}

	if errors.Is(err, os.ErrNotExist) {
		err = os.MkdirAll(root, os.ModePerm)
	}

	if err != nil {
		log.Error().Err(err).Msg("internal error when setting up spool")
		err = storage.ErrInternal
	}

	return
}

func (s *FileStore) Write(name string, content io.Reader) (string, error) {
	file, err := os.CreateTemp(s.Root, "spool-*-"+sanitize(name))
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("failed to create spool file")
		return "", storage.ErrCreate
	}
	defer file.Close()

	if _, err = io.Copy(file, content); err != nil {
		log.Error().Err(err).Msg("failed to copy into spool file")
		os.Remove(file.Name())
		return "", storage.ErrInternal
	}

	return filepath.Abs(file.Name())
}

func (s *FileStore) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotExist
		}
		log.Error().Err(err).Msg("spool file deletion error")
		return storage.ErrInternal
	}

	return nil
}

// sanitize strips path separators so a staged filename cannot escape the root.
func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	if name == "." || name == "" {
		return "upload"
	}
	return name
}
