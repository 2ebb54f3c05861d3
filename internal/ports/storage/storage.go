package storage

import (
	"context"
	"io"
)

// Object is an uploaded file on its way to storage.
type Object struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Storage keeps uploaded media as opaque blobs.
type Storage interface {
	// Save stores obj under prefix and returns the name to persist.
	Save(ctx context.Context, prefix string, obj *Object) (string, error)
	// URL is the public address of a saved name.
	URL(name string) string
	// Delete removes a saved name. A missing name is not an error.
	Delete(ctx context.Context, name string) error
}
