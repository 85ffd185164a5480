package filestore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBucket(t *testing.T) (*Bucket, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewBucket(NewLocal(fs, "/data"), "images", ImageExtensions, 1024), fs
}

func TestBucket_PutOpenRemove(t *testing.T) {
	ctx := context.Background()
	b, fs := newTestBucket(t)

	name, err := b.Put(ctx, "Avatar.PNG", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)
	assert.True(t, ValidName(name))
	assert.True(t, strings.HasSuffix(name, ".png"))

	exists, err := afero.Exists(fs, "/data/images/"+name)
	require.NoError(t, err)
	assert.True(t, exists)

	obj, err := b.Open(ctx, name)
	require.NoError(t, err)
	data, err := io.ReadAll(obj.Body)
	require.NoError(t, obj.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", obj.ContentType)
	assert.EqualValues(t, 9, obj.Size)

	require.NoError(t, b.Remove(ctx, name))
	_, err = b.Open(ctx, name)
	assert.ErrorIs(t, err, ErrNotFound)

	// removing twice is fine
	assert.NoError(t, b.Remove(ctx, name))
}

func TestBucket_PutRejects(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBucket(t)

	_, err := b.Put(ctx, "script.sh", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = b.Put(ctx, "big.jpg", strings.NewReader("x"), 4096)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = b.Put(ctx, "empty.jpg", strings.NewReader(""), 0)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestBucket_OpenRejectsTraversal(t *testing.T) {
	b, _ := newTestBucket(t)

	for _, name := range []string{"../config.yaml", "a/b.png", "photo.png", ""} {
		_, err := b.Open(context.Background(), name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}
