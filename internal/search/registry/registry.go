package registry

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akudrin/websearch-bot/internal/cache/memory"
	"github.com/akudrin/websearch-bot/internal/search"
	"github.com/akudrin/websearch-bot/internal/search/bing"
	"github.com/akudrin/websearch-bot/internal/search/custom"
	"github.com/akudrin/websearch-bot/internal/search/duckduckgo"
	"github.com/akudrin/websearch-bot/internal/search/google"
	"github.com/akudrin/websearch-bot/internal/search/searxng"
	"github.com/akudrin/websearch-bot/internal/search/wikipedia"
)

const instanceTTL = time.Hour

// Registry constructs providers from configuration, validating required
// fields up front so misconfiguration surfaces without a network call.
// Constructed instances are reused across turns for identical configs;
// the config itself is immutable during a turn, so reuse is safe.
type Registry struct {
	logger    *zap.Logger
	instances *memory.Cache
}

func New(logger *zap.Logger) *Registry {
	return &Registry{
		logger:    logger,
		instances: memory.New(),
	}
}

func (r *Registry) Close() {
	r.instances.Stop()
}

func (r *Registry) Provider(cfg search.ProviderConfig) (search.Provider, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	key := fingerprint(cfg)
	if cached, ok := r.instances.Get(key); ok {
		return cached.(search.Provider), nil
	}

	provider := build(cfg, r.logger)
	r.instances.Set(key, provider, instanceTTL)

	return provider, nil
}

func validate(cfg search.ProviderConfig) error {
	if !cfg.Kind.IsValid() {
		return fmt.Errorf("%w: unknown provider kind %q", search.ErrInvalidConfig, cfg.Kind)
	}

	switch cfg.Kind {
	case search.KindSearXNG, search.KindCustom:
		if cfg.BaseURL == "" {
			return fmt.Errorf("%w: %s requires a base url", search.ErrInvalidConfig, cfg.Kind)
		}
	case search.KindGoogle:
		if cfg.BaseURL == "" {
			return fmt.Errorf("%w: google requires a base url", search.ErrInvalidConfig)
		}
		if cfg.APIKey == "" {
			return fmt.Errorf("%w: google requires an api key", search.ErrInvalidConfig)
		}
	case search.KindBing:
		if cfg.BaseURL == "" {
			return fmt.Errorf("%w: bing requires a base url", search.ErrInvalidConfig)
		}
		if cfg.APIKey == "" {
			return fmt.Errorf("%w: bing requires an api key", search.ErrInvalidConfig)
		}
	}

	return nil
}

func build(cfg search.ProviderConfig, logger *zap.Logger) search.Provider {
	switch cfg.Kind {
	case search.KindSearXNG:
		return searxng.New(searxng.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}, logger)
	case search.KindDuckDuckGo:
		return duckduckgo.New(duckduckgo.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}, logger)
	case search.KindGoogle:
		return google.New(google.Config{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey, Timeout: cfg.Timeout}, logger)
	case search.KindBing:
		return bing.New(bing.Config{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey, Timeout: cfg.Timeout}, logger)
	case search.KindWikipedia:
		return wikipedia.New(wikipedia.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}, logger)
	default:
		return custom.New(custom.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}, logger)
	}
}

func fingerprint(cfg search.ProviderConfig) string {
	return fmt.Sprintf("%s|%s|%s|%d", cfg.Kind, cfg.BaseURL, cfg.APIKey, cfg.Timeout)
}
