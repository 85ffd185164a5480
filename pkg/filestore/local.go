package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Local stores files under root on an afero filesystem.
type Local struct {
	fs   afero.Fs
	root string
}

func NewLocal(fs afero.Fs, root string) *Local {
	return &Local{fs: fs, root: root}
}

// NewOSLocal roots a Local store on the host filesystem.
func NewOSLocal(root string) *Local {
	return NewLocal(afero.NewOsFs(), root)
}

func (l *Local) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}

func (l *Local) Save(_ context.Context, key, _ string, r io.Reader, _ int64) error {
	p := l.path(key)
	if err := l.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	f, err := l.fs.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = l.fs.Remove(p)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return f.Close()
}

func (l *Local) Open(_ context.Context, key string) (*Object, error) {
	p := l.path(key)
	f, err := l.fs.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", key, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", key, err)
	}

	return &Object{Body: f, ContentType: ContentType(key), Size: info.Size()}, nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	if err := l.fs.Remove(l.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
