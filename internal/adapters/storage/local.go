package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	storagePort "yatube/internal/ports/storage"

	"github.com/gofrs/uuid"
)

// LocalStorage keeps uploads under Root and serves them from BaseURL.
type LocalStorage struct {
	Root    string
	BaseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{Root: root, BaseURL: baseURL}
}

func (s *LocalStorage) Save(ctx context.Context, prefix string, obj *storagePort.Object) (string, error) {
	name := objectName(prefix, obj.Name)
	full := filepath.Join(s.Root, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, obj.Body); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("write media file: %w", err)
	}
	return name, nil
}

func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	if name == "" || strings.Contains(name, "..") {
		return fmt.Errorf("invalid media name %q", name)
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

func (s *LocalStorage) URL(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimRight(s.BaseURL, "/") + "/" + name
}

// objectName builds "<prefix>/<uuid>-<base name>" from a client file name.
func objectName(prefix, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%s/%s-%s", strings.Trim(prefix, "/"), uuid.Must(uuid.NewV4()), base)
}
