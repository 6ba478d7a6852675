package source

import (
	"time"

	"go.uber.org/zap"
)

const defaultDebounce = 100 * time.Millisecond

type config struct {
	logger   *zap.Logger
	debounce time.Duration
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		logger:   zap.NewNop(),
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

type Option func(c *config)

// Logger sets the logger used to report loads and reloads.
func Logger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Debounce sets how long Watch waits for a burst of file events to settle before reloading.
func Debounce(debounce time.Duration) Option {
	return func(c *config) {
		c.debounce = debounce
	}
}
