package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Alijeyrad/hms_backend/config"
)

func TestNew_RequiresURIAndDatabase(t *testing.T) {
	_, err := New(context.Background(), config.MongoConfig{Database: "hms"})
	assert.ErrorContains(t, err, "uri is empty")

	_, err = New(context.Background(), config.MongoConfig{URI: "mongodb://localhost"})
	assert.ErrorContains(t, err, "database is empty")
}

func TestConnectTimeout(t *testing.T) {
	assert.Equal(t, defaultConnectTimeout, connectTimeout(config.MongoConfig{}))
	assert.Equal(t, 3*time.Second, connectTimeout(config.MongoConfig{ConnectTimeoutSeconds: 3}))
}
