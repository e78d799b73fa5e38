package app_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/app"
	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/discovery"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type Logger struct {
	container.Component
}

type IService interface{ Serve() string }

type Service struct {
	container.Component

	logger *Logger `inject:""`
}

func (s *Service) Serve() string { return "service" }

type BackupService struct {
	container.Component

	logger *Logger `inject:""`
}

func (s *BackupService) Serve() string { return "backup" }

type Consumer struct {
	container.Component

	Svc     IService `inject:"" qualifier:"backup"`
	service IService `inject:""`
}

type Store interface{ Load() string }

type Broken struct {
	container.Component

	Store Store `inject:""`
}

type Ambient struct {
	container.Component

	Log *zap.Logger    `inject:""`
	Cfg *config.Config `inject:""`
	Inj *app.Injector  `inject:""`
}

// Lazy has no marker: it is only built when looked up.
type Lazy struct {
	Logger *Logger `inject:""`
}

type Clock struct{ started int64 }

type Ticker interface{ Tick() int }

type Metronome struct{ n int }

func (m *Metronome) Tick() int { m.n++; return m.n }

type Report struct {
	Clock  *Clock
	Logger *Logger
	Extra  *Unlisted
}

// Unlisted is never added to a catalog.
type Unlisted struct {
	Logger *Logger `inject:""`
}

type Settings struct {
	container.Configuration

	Logger *Logger `inject:""`
	calls  int
}

func (s *Settings) ProvideClock() *Clock {
	s.calls++
	return &Clock{}
}

func (s *Settings) ProvideTicker() (Ticker, error) { return &Metronome{n: 100}, nil }

func (s *Settings) ProvideReport(c *Clock, l *Logger, u *Unlisted) *Report {
	return &Report{Clock: c, Logger: l, Extra: u}
}

type Cache struct{ Store Store }

// StoreSettings needs a Store nobody provides.
type StoreSettings struct {
	container.Configuration
}

func (s *StoreSettings) ProvideCache(store Store) *Cache { return &Cache{Store: store} }

// Pair is looked up lazily; its walk injects First before Second.
type Pair struct {
	First  *Logger `inject:""`
	Second *Second `inject:""`
}

type Second struct{ n int }

// Greeting is built by a factory that uses the process container.
type Greeting struct{ Logger *Logger }

type BootSettings struct {
	container.Configuration
}

func (s *BootSettings) ProvideGreeting() *Greeting {
	return &Greeting{Logger: app.GetBean[*Logger]()}
}

// Bag is comparable by type but not by value when Items holds a slice.
type Bag struct{ Items any }

var (
	loggerType  = reflect.TypeFor[*Logger]()
	serviceType = reflect.TypeFor[IService]()
)

// catalog builds a fresh catalog holding defs.
func catalog(t *testing.T, defs ...*discovery.Builder) *discovery.Catalog {
	t.Helper()
	c := discovery.NewCatalog()
	for _, d := range defs {
		require.NoError(t, d.Register(c))
	}
	return c
}

// scenario is the logger / service / backup / consumer application.
func scenario(t *testing.T) *discovery.Catalog {
	return catalog(t,
		discovery.Type[*Logger](),
		discovery.Type[*Service]().As(serviceType),
		discovery.Type[*BackupService]().As(serviceType).Named("backup"),
		discovery.Type[*Consumer](),
	)
}

func start(t *testing.T, c *discovery.Catalog, opts ...app.Option) *app.Injector {
	t.Helper()
	inj := app.New(append([]app.Option{app.WithCatalog(c)}, opts...)...)
	require.NoError(t, inj.Start(&Logger{}))
	return inj
}
