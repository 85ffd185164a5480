package reqctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeClaims struct{ id string }

func (f fakeClaims) UserID() string { return f.id }
func (f fakeClaims) IsAdmin() bool  { return false }

func TestRequestMeta(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))

	ctx = WithRequestMeta(ctx, &RequestMeta{RequestID: "rid-1"})
	assert.Equal(t, "rid-1", RequestIDFromContext(ctx))
}

func TestClaims(t *testing.T) {
	ctx := context.Background()
	_, ok := UserIDFromContext(ctx)
	assert.False(t, ok)

	ctx = WithClaims(ctx, fakeClaims{id: "u1"})
	id, ok := UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", id)
	assert.NotNil(t, Logger(ctx))
}
