package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"yatube/internal/config"
	storagePort "yatube/internal/ports/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSave(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root, "/media/")

	name, err := s.Save(context.Background(), "posts", &storagePort.Object{
		Name: "cat.gif",
		Body: strings.NewReader("GIF89a"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "posts/"))
	assert.True(t, strings.HasSuffix(name, "-cat.gif"))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err)
	assert.Equal(t, "GIF89a", string(data))

	assert.Equal(t, "/media/"+name, s.URL(name))
	assert.Equal(t, "", s.URL(""))
}

func TestLocalStorageDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewLocalStorage(root, "/media/")

	name, err := s.Save(ctx, "posts", &storagePort.Object{Name: "cat.gif", Body: strings.NewReader("GIF89a")})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, name))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(name)))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, s.Delete(ctx, name))
	assert.Error(t, s.Delete(ctx, "../outside.gif"))
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		filename string
		suffix   string
	}{
		{"photo.png", "-photo.png"},
		{"../../etc/passwd", "-passwd"},
		{`C:\Users\me\pic.jpg`, "-pic.jpg"},
		{"", "-upload"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name := objectName("/posts/", tt.filename)
			assert.True(t, strings.HasPrefix(name, "posts/"), name)
			assert.True(t, strings.HasSuffix(name, tt.suffix), name)
			assert.NotContains(t, name, "..")
		})
	}
}

func TestS3StorageURL(t *testing.T) {
	s, err := NewS3Storage(config.S3Settings{
		Region:         "us-east-1",
		Endpoint:       "http://localhost:9000",
		PublicEndpoint: "https://cdn.example.com/",
		Bucket:         "media",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/media/posts/a.png", s.URL("posts/a.png"))
	assert.Equal(t, "", s.URL(""))
}
