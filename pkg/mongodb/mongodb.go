// Package mongodb opens the document store connection used by internal/repo.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/Alijeyrad/hms_backend/config"
)

const defaultConnectTimeout = 10 * time.Second

type DB struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    config.MongoConfig
}

func connectTimeout(cfg config.MongoConfig) time.Duration {
	if cfg.ConnectTimeoutSeconds > 0 {
		return time.Duration(cfg.ConnectTimeoutSeconds) * time.Second
	}
	return defaultConnectTimeout
}

// New connects and pings the primary. The returned DB must be closed.
func New(ctx context.Context, cfg config.MongoConfig) (*DB, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongodb: uri is empty")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongodb: database is empty")
	}

	timeout := connectTimeout(cfg)
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &DB{client: client, db: client.Database(cfg.Database), cfg: cfg}, nil
}

func (d *DB) Database() *mongo.Database { return d.db }

func (d *DB) Client() *mongo.Client { return d.client }

func (d *DB) Config() config.MongoConfig { return d.cfg }

// Ping checks if the connection is alive.
func (d *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return d.client.Ping(ctx, readpref.Primary())
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
