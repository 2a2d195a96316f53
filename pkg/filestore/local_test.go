package filestore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveAndOpen(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	content := "hello submission"
	file, err := store.Save(context.Background(), strings.NewReader(content), int64(len(content)), "report.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "report.pdf", file.OriginalName)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, int64(len(content)), file.Size)
	assert.True(t, strings.HasPrefix(file.Path, "file-"))
	assert.True(t, strings.HasSuffix(file.Path, ".pdf"))

	rc, size, err := store.Open(context.Background(), file.Path)
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, int64(len(content)), size)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestLocalStoreRejectsDisallowedType(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), strings.NewReader("#!/bin/sh"), 9, "payload.sh", "application/x-sh")
	assert.ErrorIs(t, err, ErrFileTypeNotAllowed)

	// Extension may be allowed while the declared content type is not.
	_, err = store.Save(context.Background(), strings.NewReader("x"), 1, "page.txt", "text/html")
	assert.ErrorIs(t, err, ErrFileTypeNotAllowed)
}

func TestLocalStoreExistsAndRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	file, err := store.Save(context.Background(), strings.NewReader("data"), 4, "notes.txt", "text/plain")
	require.NoError(t, err)

	exists, err := store.Exists(context.Background(), file.Path)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Remove(context.Background(), file.Path))

	exists, err = store.Exists(context.Background(), file.Path)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, store.Remove(context.Background(), file.Path), ErrFileNotFound)
}

func TestLocalStoreOpenMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Open(context.Background(), "file-123.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestCheckAllowedResolvesContentType(t *testing.T) {
	resolved, err := checkAllowed("photo.PNG", "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", resolved)

	resolved, err = checkAllowed("thesis.docx", docxContentType)
	require.NoError(t, err)
	assert.Equal(t, docxContentType, resolved)
}
