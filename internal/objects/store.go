package objects

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound indicates the requested object does not exist in the store.
var ErrObjectNotFound = errors.New("objects: object not found")

// Object is a stored blob opened for streaming.
type Object struct {
	Reader      io.ReadCloser
	ContentType string
	Size        int64
}

// Store abstracts the object backend. Uploads return an opaque object path
// ("/objects/...") that doubles as the public download route.
type Store interface {
	Put(ctx context.Context, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, objectPath string) (*Object, error)
}
