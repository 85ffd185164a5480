package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Alijeyrad/hms_backend/config"
)

func TestOptions_Defaults(t *testing.T) {
	opts := Options(config.RedisConfig{Addr: "cache:6379"})

	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, defaultPoolSize, opts.PoolSize)
	assert.Equal(t, defaultMinIdleConns, opts.MinIdleConns)
	assert.Equal(t, 5*time.Second, opts.DialTimeout)
	assert.Equal(t, 3*time.Second, opts.ReadTimeout)
}

func TestOptions_Overrides(t *testing.T) {
	opts := Options(config.RedisConfig{
		Addr:               "cache:6379",
		DB:                 2,
		PoolSize:           50,
		DialTimeoutSeconds: 1,
	})

	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 50, opts.PoolSize)
	assert.Equal(t, time.Second, opts.DialTimeout)
}

func TestNew_EmptyAddr(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{})
	assert.Error(t, err)
}
