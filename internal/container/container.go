package container

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mesto-api/config"
	"github.com/oksasatya/mesto-api/internal/infrastructure/postgres"
	"github.com/oksasatya/mesto-api/pkg/helpers"
)

// Container holds the app-level clients constructed once at startup.
// Optional clients are nil when their integration is disabled.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	PG     *pgxpool.Pool
	JWT    *helpers.JWTManager

	Redis     *redis.Client
	GCS       *storage.Client
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher
	Metrics   *prometheus.Registry
}

// New connects the required store and every configured integration.
// Failures of optional integrations are logged and the integration is left off.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	c := &Container{
		Config: cfg,
		Logger: logger,
		PG:     pool,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret(), cfg.JWTTTL),
	}

	if cfg.RedisEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unavailable; signout revocation and rate limiting disabled")
			_ = rdb.Close()
		} else {
			c.Redis = rdb
		}
	}

	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs client init failed; avatar upload disabled")
		} else {
			c.GCS = gcs
		}
	}

	if cfg.SearchEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client init failed; user search disabled")
		} else {
			c.ES = es
		}
	}

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; welcome emails disabled")
		} else {
			c.RabbitPub = pub
		}
	}

	if cfg.DebugMetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		c.Metrics = reg
	}

	return c, nil
}

// Close releases every client in reverse order of construction.
func (c *Container) Close() {
	c.RabbitPub.Close()
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	c.PG.Close()
}
