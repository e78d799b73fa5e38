package container_test

import (
	"reflect"

	"github.com/km-arc/go-inject/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type Greeter interface{ Greet() string }

type English struct{}

func (*English) Greet() string { return "hello" }

type French struct{}

func (*French) Greet() string { return "bonjour" }

type Logger struct {
	container.Component
}

type Service struct {
	container.Component

	Logger *Logger `inject:""`
}

type Consumer struct {
	container.Component

	english  Greeter `inject:""`
	Greeter  Greeter `inject:"" qualifier:"french"`
	Untagged *Logger
}

// Base is embedded by value, Audit by pointer.
type Base struct {
	Logger *Logger `inject:""`
}

type Audit struct {
	Service *Service `inject:""`
}

type Handler struct {
	Base
	*Audit

	name string
}

// Ping and Pong point at each other.
type Ping struct {
	Pong *Pong `inject:""`
}

type Pong struct {
	Ping *Ping `inject:""`
}

type Broken struct {
	Missing Greeter `inject:""`
}

type AppConfig struct {
	container.Configuration

	Calls int
}

func (c *AppConfig) ProvideGreeter() Greeter {
	c.Calls++
	return &English{}
}

func (c *AppConfig) ProvideService(l *Logger) (*Service, error) {
	return &Service{Logger: l}, nil
}

func (c *AppConfig) NotAFactory() *Logger { return nil }

type BadConfig struct {
	container.Configuration
}

func (c *BadConfig) ProvideNothing() {}

func (c *BadConfig) ProvideMany(names ...string) *Logger { return nil }

func (c *BadConfig) ProvideNil() *Logger { return nil }

func (c *BadConfig) ProvideErr() (*Logger, error) { return nil, errBoom }

func (c *BadConfig) ProvidePanic() *Logger { panic("boom") }

var (
	greeterType  = reflect.TypeFor[Greeter]()
	englishType  = reflect.TypeFor[*English]()
	frenchType   = reflect.TypeFor[*French]()
	loggerType   = reflect.TypeFor[*Logger]()
	serviceType  = reflect.TypeFor[*Service]()
	consumerType = reflect.TypeFor[*Consumer]()
)

// wiring builds a registry, context and injector around the fixtures.
func wiring() (*container.Registry, *container.ApplicationContext, *container.FieldInjector) {
	reg := container.NewRegistry()
	reg.Register(englishType, greeterType)
	reg.Register(frenchType, greeterType)
	reg.Register(loggerType)
	reg.Register(serviceType)
	reg.Register(consumerType)
	ctx := container.NewApplicationContext()
	return reg, ctx, container.NewFieldInjector(container.NewResolver(reg), ctx, nil)
}
