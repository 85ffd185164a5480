package filestore

import (
	"context"
	"errors"
	"io"

	s3pkg "github.com/Alijeyrad/hms_backend/pkg/s3"
)

// S3 adapts the S3 client to Store.
type S3 struct {
	client *s3pkg.Client
}

func NewS3(client *s3pkg.Client) *S3 {
	return &S3{client: client}
}

func (s *S3) Save(ctx context.Context, key, contentType string, r io.Reader, size int64) error {
	return s.client.Upload(ctx, key, contentType, r, size)
}

func (s *S3) Open(ctx context.Context, key string) (*Object, error) {
	body, ct, size, err := s.client.Download(ctx, key)
	if err != nil {
		if errors.Is(err, s3pkg.ErrNoSuchKey) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ct == "" {
		ct = ContentType(key)
	}
	return &Object{Body: body, ContentType: ct, Size: size}, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	return s.client.Delete(ctx, key)
}
