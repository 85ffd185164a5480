// Package filestore keeps uploaded profile images and payment slips behind
// one interface with a local (afero) and an S3 backend.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("file not found")
	ErrInvalidName     = errors.New("invalid file name")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrEmpty           = errors.New("file is empty")
)

type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

type Store interface {
	Save(ctx context.Context, key, contentType string, r io.Reader, size int64) error
	Open(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

var (
	ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	SlipExtensions  = []string{".jpg", ".jpeg", ".png", ".pdf"}
)

// Stored names are always <uuid><ext>; anything else is rejected before it
// reaches a backend.
var reStoredName = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.[a-z0-9]{2,5}$`)

func ValidName(name string) bool {
	return reStoredName.MatchString(name)
}

func ContentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Bucket is a prefix inside a Store with its own upload rules.
type Bucket struct {
	store    Store
	prefix   string
	allowed  map[string]struct{}
	maxBytes int64
}

func NewBucket(store Store, prefix string, allowed []string, maxBytes int64) *Bucket {
	set := make(map[string]struct{}, len(allowed))
	for _, ext := range allowed {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return &Bucket{store: store, prefix: strings.Trim(prefix, "/"), allowed: set, maxBytes: maxBytes}
}

func (b *Bucket) key(name string) string {
	if b.prefix == "" {
		return name
	}
	return path.Join(b.prefix, name)
}

// Put stores r under a fresh name derived from the original filename's
// extension and returns that name.
func (b *Bucket) Put(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	if size <= 0 {
		return "", ErrEmpty
	}
	if b.maxBytes > 0 && size > b.maxBytes {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := b.allowed[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	name := uuid.NewString() + ext
	if err := b.store.Save(ctx, b.key(name), ContentType(name), r, size); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	return name, nil
}

func (b *Bucket) Open(ctx context.Context, name string) (*Object, error) {
	if !ValidName(name) {
		return nil, ErrInvalidName
	}
	return b.store.Open(ctx, b.key(name))
}

// Remove ignores missing files.
func (b *Bucket) Remove(ctx context.Context, name string) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	if err := b.store.Delete(ctx, b.key(name)); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
