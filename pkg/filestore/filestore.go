// Package filestore stores uploaded submission files and hands back an
// opaque path/name/type reference. Two drivers are provided: local disk
// (default) and a MinIO/S3 bucket.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrFileTypeNotAllowed = errors.New("file type not supported")
	ErrFileNotFound       = errors.New("file not found in storage")
)

// File is the stored reference returned by Save.
type File struct {
	Path         string
	OriginalName string
	ContentType  string
	Size         int64
}

// Store abstracts the storage backend. Open returns the content reader
// and its size; callers own closing the reader.
type Store interface {
	Save(ctx context.Context, r io.Reader, size int64, originalName, contentType string) (*File, error)
	Open(ctx context.Context, path string) (io.ReadCloser, int64, error)
	Exists(ctx context.Context, path string) (bool, error)
	Remove(ctx context.Context, path string) error
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".txt":  true,
	".docx": true,
}

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// checkAllowed enforces the upload allow-list on both extension and content
// type, resolving the content type from the extension when none is declared.
func checkAllowed(originalName, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrFileTypeNotAllowed
	}

	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}

	switch {
	case contentType == "text/plain",
		contentType == "application/pdf",
		contentType == docxContentType,
		strings.HasPrefix(contentType, "image/"):
		return contentType, nil
	}

	return "", ErrFileTypeNotAllowed
}

// storedName builds the stored object name: file-<millis><ext>.
func storedName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("file-%d%s", time.Now().UnixMilli(), ext)
}
