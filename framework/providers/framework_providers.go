package providers

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
)

// ── ServiceProvider ───────────────────────────────────────────────────────────

// Binder accepts pre-built beans. The injector implements it.
type Binder interface {
	// Instance caches instance as a bean of its runtime type and maps it to
	// contracts (or to itself when none are given).
	Instance(instance any, contracts ...reflect.Type) error
}

// ServiceProvider contributes pre-built beans before discovery runs, so that
// discovered components can inject them.
//
//	type MetricsProvider struct{ Registry *prometheus.Registry }
//
//	func (p *MetricsProvider) Register(b providers.Binder) error {
//	    return b.Instance(p.Registry)
//	}
type ServiceProvider interface {
	Register(b Binder) error
}

// ProviderFunc adapts a function to ServiceProvider.
type ProviderFunc func(b Binder) error

func (f ProviderFunc) Register(b Binder) error { return f(b) }

// RegisterAll runs every provider against b, stopping at the first error.
func RegisterAll(b Binder, providers ...ServiceProvider) error {
	for _, p := range providers {
		if p == nil {
			continue
		}
		if err := p.Register(b); err != nil {
			return err
		}
	}
	return nil
}

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Bound beans:
//   - *config.Config
type ConfigServiceProvider struct {
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(b Binder) error {
	if p.Config == nil {
		return nil
	}
	return b.Instance(p.Config)
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the framework logger, so components can
// declare `Log *zap.Logger `inject:""``.
//
// Bound beans:
//   - *zap.Logger
type LoggingServiceProvider struct {
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(b Binder) error {
	if p.Logger == nil {
		return nil
	}
	return b.Instance(p.Logger)
}

// Framework returns the providers every injector registers first.
func Framework(cfg *config.Config, log *zap.Logger) []ServiceProvider {
	return []ServiceProvider{
		&ConfigServiceProvider{Config: cfg},
		&LoggingServiceProvider{Logger: log},
	}
}
