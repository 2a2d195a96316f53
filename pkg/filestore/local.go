package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps uploaded files in a single directory on disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, r io.Reader, size int64, originalName, contentType string) (*File, error) {
	resolvedType, err := checkAllowed(originalName, contentType)
	if err != nil {
		return nil, err
	}

	name := storedName(originalName)
	out, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, r)
	if err != nil {
		os.Remove(out.Name())
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &File{
		Path:         name,
		OriginalName: originalName,
		ContentType:  resolvedType,
		Size:         written,
	}, nil
}

func (s *LocalStore) Open(ctx context.Context, path string) (io.ReadCloser, int64, error) {
	f, err := os.Open(s.resolve(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, ErrFileNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat file: %w", err)
	}

	return f, info.Size(), nil
}

func (s *LocalStore) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(s.resolve(path))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *LocalStore) Remove(ctx context.Context, path string) error {
	err := os.Remove(s.resolve(path))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrFileNotFound
	}
	return err
}

// resolve strips any directory components so stored paths cannot escape
// the upload directory.
func (s *LocalStore) resolve(path string) string {
	return filepath.Join(s.dir, filepath.Base(path))
}
