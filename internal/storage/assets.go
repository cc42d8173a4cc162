// Package storage persists uploaded image assets on the local filesystem
// and maps them to public URIs served by the static file handler.
package storage

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Collections under which assets are stored. The collection name doubles
// as the directory under the upload root and as the public URL prefix.
const (
	CollectionPosts   = "posts"
	CollectionAvatars = "avatars"
)

// DefaultAvatarFile is the shared avatar asset assigned at registration.
// It is never deleted by cascades.
const DefaultAvatarFile = "default-avatar.svg"

var extensionByMIME = map[string]string{
	"image/jpg":  "jpg",
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

// AssetStore stores uploaded files under a root directory, one
// subdirectory per collection.
type AssetStore struct {
	root   string
	logger *slog.Logger
}

// NewAssetStore creates an AssetStore rooted at dir.
func NewAssetStore(dir string, logger *slog.Logger) *AssetStore {
	return &AssetStore{root: dir, logger: logger}
}

// Root returns the upload root directory.
func (s *AssetStore) Root() string {
	return s.root
}

// Save writes an uploaded file into the given collection under a generated
// filename and returns that filename. Unknown image types are rejected.
func (s *AssetStore) Save(file *multipart.FileHeader, collection string) (string, error) {
	ext, ok := extensionByMIME[file.Header.Get("Content-Type")]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", file.Header.Get("Content-Type"))
	}

	dir := filepath.Join(s.root, collection)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s.%s", uuid.New().String(), ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer func() { _ = dst.Close() }()

	if _, err := dst.ReadFrom(src); err != nil {
		return "", err
	}

	return filename, nil
}

// Remove deletes a stored asset. A missing file is not an error; other
// failures are logged and returned so cascades can continue best-effort.
func (s *AssetStore) Remove(collection, filename string) error {
	if filename == "" {
		return nil
	}
	path := filepath.Join(s.root, collection, filepath.Base(filename))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		s.logger.Error("failed to remove asset",
			slog.String("collection", collection),
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// RemoveByURI deletes the asset referenced by a public URI, resolving the
// stored filename from the URI's final path segment.
func (s *AssetStore) RemoveByURI(uri, collection string) error {
	return s.Remove(collection, FilenameFromURI(uri))
}

// PublicURL builds the public URI for a stored asset.
func PublicURL(baseURL, collection, filename string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(baseURL, "/"), collection, filename)
}

// DefaultAvatarURL builds the default avatar URI for the given base URL.
func DefaultAvatarURL(baseURL string) string {
	return PublicURL(baseURL, CollectionAvatars, DefaultAvatarFile)
}

// IsDefaultAvatar reports whether the URI points at the shared default
// avatar asset.
func IsDefaultAvatar(uri string) bool {
	return FilenameFromURI(uri) == DefaultAvatarFile
}

// FilenameFromURI extracts the stored filename from a public asset URI.
func FilenameFromURI(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return filepath.Base(uri)
	}
	return filepath.Base(parsed.Path)
}
