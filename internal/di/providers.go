package di

import (
	"fmt"
	"time"

	"CropAdvisor/internal/domain/repository"
	"CropAdvisor/internal/handler/api"
	internalrepo "CropAdvisor/internal/repository"
	"CropAdvisor/internal/service/agmarknet"
	"CropAdvisor/internal/service/ratelimit"
	"CropAdvisor/internal/usecase"
	"CropAdvisor/pkg/cache"
	"CropAdvisor/pkg/config"
	xhttp "CropAdvisor/pkg/http"
	pkgkafka "CropAdvisor/pkg/kafka"
	applogger "CropAdvisor/pkg/logger"
	"CropAdvisor/pkg/metrics"
	"CropAdvisor/pkg/server"
)

// layeredL1TTL bounds how long a replica serves a snapshot from its own memory
// before going back to Redis.
const layeredL1TTL = 30 * time.Second

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the snapshot cache backend selected in config.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (cache.Service, error) {
	memory := func() *cache.MemoryCache {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize))
	}
	redis := func() (*cache.RedisCache, error) {
		rc, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
			cache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return rc, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		rc, err := redis()
		if err != nil {
			return nil, err
		}
		l.Info("cache backend ready", applogger.String("backend", "redis"))
		return rc, nil
	case "layered":
		rc, err := redis()
		if err != nil {
			return nil, err
		}
		l.Info("cache backend ready", applogger.String("backend", "layered"))
		return cache.NewLayeredCache(memory(), rc, layeredL1TTL), nil
	default:
		l.Info("cache backend ready", applogger.String("backend", "memory"))
		return memory(), nil
	}
}

// ProvidePriceSource creates the data.gov.in upstream client.
func ProvidePriceSource(cfg *config.Config, l *applogger.Logger, m repository.Metrics) (repository.PriceSource, error) {
	c, err := agmarknet.New(agmarknet.Config{
		BaseURL:          cfg.Upstream.BaseURL,
		APIKey:           cfg.Upstream.APIKey,
		PageSize:         cfg.Upstream.PageSize,
		MaxRecords:       cfg.Upstream.MaxRecords,
		StateSearchLimit: cfg.Upstream.StateSearchLimit,
		Timeout:          cfg.Upstream.Timeout,
	}, l, m)
	if err != nil {
		return nil, fmt.Errorf("upstream client: %w", err)
	}
	return c, nil
}

// ProvideSnapshotPublisher creates the Kafka snapshot publisher, or a no-op
// publisher when Kafka is disabled.
func ProvideSnapshotPublisher(cfg *config.Config, l *applogger.Logger) (repository.SnapshotPublisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NewNoopSnapshotPublisher(), nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithTopic(cfg.Kafka.Topic),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	l.Info("kafka snapshot publisher ready",
		applogger.Strings("brokers", cfg.Kafka.Brokers),
		applogger.String("topic", cfg.Kafka.Topic),
	)
	return internalrepo.NewKafkaSnapshotPublisher(producer), nil
}

// ProvidePriceAggregator creates the price aggregation use case.
func ProvidePriceAggregator(
	src repository.PriceSource,
	c cache.Service,
	pub repository.SnapshotPublisher,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.PriceAggregator {
	return usecase.NewPriceAggregator(src, c, pub, m, l, usecase.AggregatorConfig{
		CacheTTL:      cfg.Cache.TTL,
		CacheDisabled: cfg.Cache.Disabled,
	})
}

// ProvideHTTPHandler creates the Echo route handler.
func ProvideHTTPHandler(l *applogger.Logger, agg *usecase.PriceAggregator) xhttp.Handler {
	return api.NewPricesEchoHandler(l, agg)
}

// ProvideRateLimiter creates the per-client token-bucket limiter.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideHTTPServer creates the Echo server with middleware configured from config.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *applogger.Logger, lim *ratelimit.Limiter) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(!cfg.Server.CORSDisabled),
		xhttp.WithLogger(l, cfg.Server.SlowRequest),
	}
	if !cfg.Server.RateLimit.Disabled {
		opts = append(opts, xhttp.WithRateLimit(lim, cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.RefillPerSec))
	}
	return xhttp.NewServer(h, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	c cache.Service,
	pub repository.SnapshotPublisher,
) *server.App {
	return server.New(cfg, l, srv, c, pub)
}
