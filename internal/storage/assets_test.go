package storage

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *AssetStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAssetStore(t.TempDir(), logger)
}

func uploadedFile(t *testing.T, field, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	fh := req.MultipartForm.File[field][0]
	fh.Header.Set("Content-Type", contentType)
	return fh
}

func TestSaveAndRemove(t *testing.T) {
	store := newTestStore(t)

	fh := uploadedFile(t, "image", "cat.jpg", "image/jpeg", []byte("fake-jpeg"))
	filename, err := store.Save(fh, CollectionPosts)
	require.NoError(t, err)
	assert.True(t, filepath.Ext(filename) == ".jpg")

	path := filepath.Join(store.Root(), CollectionPosts, filename)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-jpeg"), data)

	require.NoError(t, store.Remove(CollectionPosts, filename))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRejectsUnknownType(t *testing.T) {
	store := newTestStore(t)

	fh := uploadedFile(t, "image", "doc.pdf", "application/pdf", []byte("%PDF"))
	_, err := store.Save(fh, CollectionPosts)
	assert.Error(t, err)
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Remove(CollectionPosts, "does-not-exist.jpg"))
	assert.NoError(t, store.Remove(CollectionPosts, ""))
}

func TestPublicURLAndFilename(t *testing.T) {
	url := PublicURL("http://localhost:8080", CollectionPosts, "abc.jpg")
	assert.Equal(t, "http://localhost:8080/posts/abc.jpg", url)
	assert.Equal(t, "abc.jpg", FilenameFromURI(url))

	avatar := DefaultAvatarURL("http://localhost:8080/")
	assert.Equal(t, "http://localhost:8080/avatars/default-avatar.svg", avatar)
	assert.True(t, IsDefaultAvatar(avatar))
	assert.False(t, IsDefaultAvatar("http://localhost:8080/avatars/custom.jpg"))
}
