package config

import "context"

type contextKey struct{}

// WithContext attaches the loaded configuration to ctx.
func WithContext(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the configuration attached to ctx, or the
// defaults when none was attached.
func FromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(contextKey{}).(Config); ok {
		return cfg
	}
	return Default()
}
