package app

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/logging"
)

var (
	globalMu sync.Mutex
	global   *Injector
)

// StartApplication creates and starts the process container for root's
// package. Concurrent and repeated calls collapse into the first one and
// wait for its bootstrap to finish. Failures are logged, never returned; use
// New and Start to handle them.
//
// Unless overridden by options, configuration comes from config.Load() and
// the logger from logging.New.
//
// Bean code may call GetBean while the bootstrap runs.
func StartApplication(root any, opts ...Option) {
	globalMu.Lock()
	in, first := global, global == nil
	if first {
		in = New(processDefaults(opts)...)
		global = in
	}
	globalMu.Unlock()

	// Start is serialized and idempotent; later callers block here until the
	// first bootstrap is done.
	if err := in.Start(root); err != nil && first {
		in.log.Error("could not init dependency framework", zap.Error(err))
	}
}

// Default returns the process container, or nil before StartApplication.
func Default() *Injector {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global
}

// GetBean returns the process container's bean for contract T, or the zero
// value of T when it is missing, ambiguous or cannot be built. The failure is
// logged.
//
//	logger := app.GetBean[*shop.Logger]()
func GetBean[T any]() T {
	var zero T
	in := Default()
	if in == nil {
		zap.L().Error("could not get required bean: application not started",
			zap.Stringer("contract", reflect.TypeFor[T]()))
		return zero
	}
	v, err := Get[T](in)
	if err != nil {
		in.logLookupFailure(reflect.TypeFor[T](), err)
		return zero
	}
	return v
}

func processDefaults(opts []Option) []Option {
	var given Injector
	for _, opt := range opts {
		opt(&given)
	}
	cfg := given.cfg
	if cfg == nil {
		cfg = config.Load()
	}
	defaults := []Option{WithConfig(cfg)}
	if given.log == nil {
		defaults = append(defaults, WithLogger(logging.MustNew(cfg.Log, cfg.App.Env)))
	}
	return append(defaults, opts...)
}
