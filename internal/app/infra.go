package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/fx"

	"github.com/Alijeyrad/hms_backend/config"
	"github.com/Alijeyrad/hms_backend/internal/events"
	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/pkg/authorize"
	"github.com/Alijeyrad/hms_backend/pkg/email"
	"github.com/Alijeyrad/hms_backend/pkg/filestore"
	"github.com/Alijeyrad/hms_backend/pkg/jwttoken"
	"github.com/Alijeyrad/hms_backend/pkg/mongodb"
	"github.com/Alijeyrad/hms_backend/pkg/observability"
	redispkg "github.com/Alijeyrad/hms_backend/pkg/redis"
	s3pkg "github.com/Alijeyrad/hms_backend/pkg/s3"
	"github.com/Alijeyrad/hms_backend/pkg/sms"
	"github.com/Alijeyrad/hms_backend/pkg/util/password"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideMongo),
	fx.Provide(ProvideDatabase),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideAuthorization),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideSMSClient),
	fx.Provide(ProvideBuckets),
	fx.Provide(ProvideJWTManager),
	fx.Provide(ProvidePasswordHasher),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideDomainMetrics),
	fx.Provide(ProvideNatsClient),
	fx.Provide(ProvidePublisher),
)

func ProvideMongo(lc fx.Lifecycle, cfg *config.Config) (*mongodb.DB, error) {
	db, err := mongodb.New(context.Background(), cfg.Mongo)
	if err != nil {
		return nil, err
	}
	if cfg.Mongo.AutoMigrate {
		if err := repo.EnsureIndexes(context.Background(), db.Database()); err != nil {
			_ = db.Close(context.Background())
			return nil, err
		}
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing MongoDB connection")
			return db.Close(ctx)
		},
	})
	return db, nil
}

func ProvideDatabase(db *mongodb.DB) *mongo.Database {
	return db.Database()
}

func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.New(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideAuthorization(cfg *config.Config) (authorize.IAuthorization, error) {
	return authorize.New(
		context.Background(),
		cfg.Authorization.CasbinModelPath,
		cfg.Authorization.EnableAudit,
		slog.Default(),
	)
}

func ProvideEmailClient(cfg *config.Config) email.Sender {
	return email.NewFromCentral(cfg)
}

func ProvideSMSClient(cfg *config.Config) (sms.Sender, error) {
	return sms.NewFromConfig(cfg.SMS)
}

// Buckets holds the upload areas for profile images and payment slips.
type Buckets struct {
	Images *filestore.Bucket
	Slips  *filestore.Bucket
}

func ProvideBuckets(cfg *config.Config) (Buckets, error) {
	var store filestore.Store
	switch cfg.Storage.Driver {
	case "s3":
		client, err := s3pkg.New(context.Background(), cfg.Storage.S3)
		if err != nil {
			return Buckets{}, err
		}
		store = filestore.NewS3(client)
	case "local":
		store = filestore.NewOSLocal(cfg.Storage.Local.Dir)
	default:
		return Buckets{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	maxBytes := int64(cfg.Storage.MaxUploadMB) << 20
	return Buckets{
		Images: filestore.NewBucket(store, cfg.Storage.ImagePrefix, filestore.ImageExtensions, maxBytes),
		Slips:  filestore.NewBucket(store, cfg.Storage.SlipPrefix, filestore.SlipExtensions, maxBytes),
	}, nil
}

func ProvideJWTManager(cfg *config.Config) (*jwttoken.Manager, error) {
	return jwttoken.New(cfg.Authentication.JWT)
}

func ProvidePasswordHasher(cfg *config.Config) *password.Hasher {
	return password.NewHasherFromConfig(cfg.Password)
}

// ProvideOTel returns a nil provider when observability is disabled.
func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.ConfigFromCentral(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}

// ProvideDomainMetrics takes the provider so the global meter provider is
// installed before the instruments are created.
func ProvideDomainMetrics(_ *observability.Provider) *observability.DomainMetrics {
	return observability.NewDomainMetrics()
}

// ProvideNatsClient returns a nil connection when nats.url is empty.
func ProvideNatsClient(lc fx.Lifecycle, cfg *config.Config) (*nats.Conn, error) {
	if cfg.Nats.URL == "" {
		slog.Info("NATS disabled; domain events will not be published")
		return nil, nil
	}
	nc, err := nats.Connect(cfg.Nats.URL, nats.Name("hms_backend"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("draining NATS connection")
			return nc.Drain()
		},
	})
	return nc, nil
}

func ProvidePublisher(nc *nats.Conn, metrics *observability.DomainMetrics) events.Publisher {
	if nc == nil {
		return events.Noop{}
	}
	return events.NewNATSPublisher(nc, metrics)
}
