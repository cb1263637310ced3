package objects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const objectPathPrefix = "/objects/uploads/"

// DiskStore keeps objects on the local filesystem. Each object is a blob file
// plus a small JSON sidecar holding the content type.
type DiskStore struct {
	root string
}

// NewDiskStore creates the storage directory if needed.
func NewDiskStore(root string) (*DiskStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("objects: storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("objects: create storage root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

type objectMeta struct {
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Put writes the blob and returns its object path.
func (s *DiskStore) Put(ctx context.Context, contentType string, r io.Reader) (string, error) {
	if s == nil {
		return "", errors.New("objects: store not initialised")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	blobPath := filepath.Join(s.root, id)

	f, err := os.Create(blobPath)
	if err != nil {
		return "", fmt.Errorf("objects: create blob: %w", err)
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(blobPath)
		return "", fmt.Errorf("objects: write blob: %w", err)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	meta, err := json.Marshal(objectMeta{ContentType: contentType, Size: size})
	if err == nil {
		err = os.WriteFile(blobPath+".meta", meta, 0o644)
	}
	if err != nil {
		_ = os.Remove(blobPath)
		return "", fmt.Errorf("objects: write metadata: %w", err)
	}

	return objectPathPrefix + id, nil
}

// Open streams a stored object by its object path.
func (s *DiskStore) Open(ctx context.Context, objectPath string) (*Object, error) {
	if s == nil {
		return nil, errors.New("objects: store not initialised")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := strings.TrimPrefix(objectPath, objectPathPrefix)
	// Reject anything that is not a bare object id to keep reads inside root.
	if id == objectPath || id == "" || id != path.Base(id) || strings.Contains(id, "..") {
		return nil, ErrObjectNotFound
	}

	blobPath := filepath.Join(s.root, id)
	f, err := os.Open(blobPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("objects: open blob: %w", err)
	}

	meta := objectMeta{ContentType: "application/octet-stream"}
	if raw, err := os.ReadFile(blobPath + ".meta"); err == nil {
		_ = json.Unmarshal(raw, &meta)
	}
	if meta.Size == 0 {
		if info, err := f.Stat(); err == nil {
			meta.Size = info.Size()
		}
	}

	return &Object{Reader: f, ContentType: meta.ContentType, Size: meta.Size}, nil
}
