package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"CropAdvisor/internal/domain/models"
	domrepo "CropAdvisor/internal/domain/repository"
	"CropAdvisor/pkg/cache"
	applogger "CropAdvisor/pkg/logger"
	"CropAdvisor/pkg/util"
)

const (
	keyPrefix     = "snapshot"
	scopeAll      = "all"
	scopeStatePfx = "state"
)

// AggregatorConfig controls snapshot memoization.
type AggregatorConfig struct {
	CacheTTL      time.Duration
	CacheDisabled bool
}

// PriceAggregator serves every mandi price view from a cached upstream
// snapshot. Upstream failures never surface as errors; they become failure
// results or empty views.
type PriceAggregator struct {
	source    domrepo.PriceSource
	cache     cache.Service
	publisher domrepo.SnapshotPublisher
	metrics   domrepo.Metrics
	log       *applogger.Logger
	cfg       AggregatorConfig
	rnd       util.Random
	now       func() time.Time
	group     singleflight.Group
}

// AggregatorOption customizes a PriceAggregator.
type AggregatorOption func(*PriceAggregator)

// WithTrendRandom sets the noise source for synthetic trends.
func WithTrendRandom(r util.Random) AggregatorOption {
	return func(a *PriceAggregator) { a.rnd = r }
}

// WithNow overrides the aggregator clock.
func WithNow(now func() time.Time) AggregatorOption {
	return func(a *PriceAggregator) { a.now = now }
}

// NewPriceAggregator wires the aggregator. cache and publisher may be nil.
func NewPriceAggregator(
	source domrepo.PriceSource,
	c cache.Service,
	publisher domrepo.SnapshotPublisher,
	m domrepo.Metrics,
	l *applogger.Logger,
	cfg AggregatorConfig,
	opts ...AggregatorOption,
) *PriceAggregator {
	if l == nil {
		l = applogger.Nop()
	}
	if m == nil {
		m = nopMetrics{}
	}
	a := &PriceAggregator{
		source:    source,
		cache:     c,
		publisher: publisher,
		metrics:   m,
		log:       l.Component("price_aggregator"),
		cfg:       cfg,
		rnd:       util.NewRandom(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FetchAll returns the full normalized snapshot.
func (a *PriceAggregator) FetchAll(ctx context.Context) models.AggregateResult {
	key := cache.GenerateKeyWithParams(keyPrefix, scopeAll)

	var cached models.AggregateResult
	if a.getCached(ctx, key, &cached) {
		return cached
	}

	// The shared fetch outlives any single caller so that one client going
	// away does not fail the others; each caller still stops waiting on its
	// own ctx.
	ch := a.group.DoChan(key, func() (interface{}, error) {
		fctx := context.WithoutCancel(ctx)
		records, err := a.source.FetchAll(fctx)
		if err != nil {
			a.log.Warn("upstream fetch failed", applogger.Error(err))
			a.metrics.RecordError("upstream")
			return models.Failed(models.SourceUpstreamError, a.now()), nil
		}
		if len(records) == 0 {
			a.log.Warn("upstream returned no usable rows")
			return models.Failed(models.SourceGovernmentNoData, a.now()), nil
		}

		res := models.AggregateResult{
			Success:     true,
			Data:        records,
			LastUpdated: a.now(),
			Source:      models.SourceGovernment,
		}
		a.setCached(fctx, key, res)
		a.announce(fctx, scopeAll, records)
		return res, nil
	})
	select {
	case r := <-ch:
		return r.Val.(models.AggregateResult)
	case <-ctx.Done():
		a.log.Debug("caller left before snapshot fetch finished", applogger.Error(ctx.Err()))
		return models.Failed(models.SourceUpstreamError, a.now())
	}
}

// CropPrices returns the records whose crop contains name.
func (a *PriceAggregator) CropPrices(ctx context.Context, name string) []models.PriceRecord {
	return FilterByCrop(a.FetchAll(ctx).Data, name)
}

// StatePrices returns the records whose state contains name.
func (a *PriceAggregator) StatePrices(ctx context.Context, name string) []models.PriceRecord {
	return FilterByState(a.FetchAll(ctx).Data, name)
}

// TrendingPrices returns the five largest movers by |changePercent|.
func (a *PriceAggregator) TrendingPrices(ctx context.Context) []models.PriceRecord {
	return Trending(a.FetchAll(ctx).Data, TrendingLimit)
}

// AvailableStates lists the distinct states in the snapshot.
func (a *PriceAggregator) AvailableStates(ctx context.Context) []string {
	return States(a.FetchAll(ctx).Data)
}

// AvailableCrops lists the distinct crops in the snapshot.
func (a *PriceAggregator) AvailableCrops(ctx context.Context) []string {
	return Crops(a.FetchAll(ctx).Data)
}

// SearchTable applies the price table filters to the snapshot.
func (a *PriceAggregator) SearchTable(ctx context.Context, q TableQuery) []models.PriceRecord {
	return SearchTable(a.FetchAll(ctx).Data, q)
}

// SearchState queries the upstream filtered by state. When that query fails
// it falls back to the local by-state view of the full snapshot.
func (a *PriceAggregator) SearchState(ctx context.Context, state string) []models.PriceRecord {
	scope := scopeStatePfx + ":" + strings.ToLower(strings.TrimSpace(state))
	key := cache.GenerateKeyWithParams(keyPrefix, scopeStatePfx, state)

	var cached []models.PriceRecord
	if a.getCached(ctx, key, &cached) {
		return cached
	}

	ch := a.group.DoChan(key, func() (interface{}, error) {
		fctx := context.WithoutCancel(ctx)
		records, err := a.source.FetchByState(fctx, state)
		if err != nil {
			return nil, err
		}
		if records == nil {
			records = []models.PriceRecord{}
		}
		a.setCached(fctx, key, records)
		if len(records) > 0 {
			a.announce(fctx, scope, records)
		}
		return records, nil
	})

	var r singleflight.Result
	select {
	case r = <-ch:
	case <-ctx.Done():
		return []models.PriceRecord{}
	}
	if r.Err != nil {
		a.log.Warn("state query failed, using local view",
			applogger.String("state", state),
			applogger.Error(r.Err),
		)
		a.metrics.RecordError("state_search")
		return a.StatePrices(ctx, state)
	}
	return r.Val.([]models.PriceRecord)
}

// CropTrends synthesizes a days-long series for the crop. See GenerateTrend.
func (a *PriceAggregator) CropTrends(ctx context.Context, crop string, days int) []models.TrendPoint {
	if days <= 0 {
		return []models.TrendPoint{}
	}
	return GenerateTrend(a.CropPrices(ctx, crop), days, a.now(), a.rnd)
}

// MarketInsights summarizes movements across the snapshot.
func (a *PriceAggregator) MarketInsights(ctx context.Context) models.MarketInsights {
	return BuildInsights(a.FetchAll(ctx).Data)
}

func (a *PriceAggregator) getCached(ctx context.Context, key string, dest interface{}) bool {
	if a.cache == nil || a.cfg.CacheDisabled {
		return false
	}
	err := a.cache.Get(ctx, key, dest)
	switch {
	case err == nil:
		a.metrics.RecordCache("hit")
		return true
	case errors.Is(err, cache.ErrCacheMiss):
		a.metrics.RecordCache("miss")
	default:
		a.metrics.RecordCache("error")
		a.log.Warn("cache get failed", applogger.String("key", key), applogger.Error(err))
	}
	return false
}

func (a *PriceAggregator) setCached(ctx context.Context, key string, value interface{}) {
	if a.cache == nil || a.cfg.CacheDisabled {
		return
	}
	if err := a.cache.Set(ctx, key, value, a.cfg.CacheTTL); err != nil {
		a.metrics.RecordCache("error")
		a.log.Warn("cache set failed", applogger.String("key", key), applogger.Error(err))
	}
}

func (a *PriceAggregator) announce(ctx context.Context, scope string, records []models.PriceRecord) {
	kind, _, _ := strings.Cut(scope, ":")
	a.metrics.RecordSnapshot(kind, len(records))
	if a.publisher == nil {
		return
	}
	ev := &models.SnapshotEvent{
		ID:        uuid.NewString(),
		Scope:     scope,
		Source:    models.SourceGovernment,
		FetchedAt: a.now().UTC(),
		Records:   len(records),
		States:    len(States(records)),
		Summary:   Summarize(records),
	}
	if err := a.publisher.PublishSnapshot(ctx, ev); err != nil {
		a.log.Warn("publish snapshot failed", applogger.String("scope", scope), applogger.Error(err))
		a.metrics.RecordError("publish")
	}
}

type nopMetrics struct{}

func (nopMetrics) RecordUpstreamRequest(string, string, float64) {}
func (nopMetrics) RecordRowsDropped(int)                         {}
func (nopMetrics) RecordSnapshot(string, int)                    {}
func (nopMetrics) RecordCache(string)                            {}
func (nopMetrics) RecordError(string)                            {}
