package websearch

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/akudrin/websearch-bot/internal/metrics"
	"github.com/akudrin/websearch-bot/internal/search"
	"github.com/akudrin/websearch-bot/internal/search/registry"
)

// Augmenter is the single entry point for the conversation-turn handler.
// It decides whether to search, runs the configured provider, and splices
// the results into the prompt context. A search failure of any kind is
// contained here: the caller always gets a usable context back.
type Augmenter struct {
	registry *registry.Registry
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func New(reg *registry.Registry, logger *zap.Logger, m *metrics.Metrics) *Augmenter {
	return &Augmenter{
		registry: reg,
		logger:   logger,
		metrics:  m,
	}
}

// Augment returns baseContext extended with a web-search section, or
// baseContext unchanged when no search is warranted or anything fails.
// It never returns an error: the conversation turn must proceed either way.
func (a *Augmenter) Augment(ctx context.Context, utterance string, cfg search.ProviderConfig, baseContext string) string {
	query, triggered := Classify(utterance)
	a.recordTrigger(triggered)
	if !triggered {
		return baseContext
	}

	provider, err := a.registry.Provider(cfg)
	if err != nil {
		a.logger.Warn("search provider unavailable",
			zap.String("kind", string(cfg.Kind)),
			zap.Error(err),
		)
		a.recordSearch(cfg.Kind, "invalid_config", 0)
		return baseContext
	}

	query.MaxResults = search.ClampResults(cfg.ResultCount)

	start := time.Now()
	results, err := provider.Search(ctx, query)
	elapsed := time.Since(start)

	if err != nil {
		a.logSearchFailure(cfg.Kind, err)
		a.recordSearch(cfg.Kind, errorStatus(err), elapsed)
		return baseContext
	}

	a.recordSearch(cfg.Kind, "ok", elapsed)

	if len(results) == 0 {
		a.logger.Debug("search returned no results",
			zap.String("kind", string(cfg.Kind)),
		)
		return baseContext
	}

	a.logger.Debug("search results injected",
		zap.String("kind", string(cfg.Kind)),
		zap.Int("count", len(results)),
	)

	return MergeContext(baseContext, FormatResults(results))
}

func (a *Augmenter) logSearchFailure(kind search.Kind, err error) {
	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.Error(err),
	}
	if be, ok := search.AsBackendError(err); ok {
		fields = append(fields, zap.Int("status", be.StatusCode))
	}
	a.logger.Warn("search failed, continuing without augmentation", fields...)
}

func errorStatus(err error) string {
	switch {
	case errors.Is(err, search.ErrInvalidConfig):
		return "invalid_config"
	case errors.Is(err, search.ErrTimeout):
		return "timeout"
	case errors.Is(err, search.ErrMalformedResponse):
		return "malformed"
	default:
		if _, ok := search.AsBackendError(err); ok {
			return "backend_error"
		}
		return "error"
	}
}

func (a *Augmenter) recordTrigger(triggered bool) {
	if a.metrics != nil {
		a.metrics.RecordTrigger(triggered)
	}
}

func (a *Augmenter) recordSearch(kind search.Kind, status string, elapsed time.Duration) {
	if a.metrics != nil {
		a.metrics.RecordSearch(string(kind), status, elapsed)
	}
}
