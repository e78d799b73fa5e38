// Package shop is a small application wired by the container: a logger, two
// implementations of one service contract and a consumer that picks between
// them.
package shop

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/discovery"
)

func init() {
	discovery.Register[*Logger]()
	discovery.Type[*Service]().As(discovery.Contract[IService]()).MustRegister()
	discovery.Type[*BackupService]().As(discovery.Contract[IService]()).Named("backup").MustRegister()
	discovery.Register[*Checkout]()
	discovery.Register[*Settings]()
}

// Logger keeps the lines written by the shop's services.
type Logger struct {
	container.Component

	Log *zap.Logger `inject:""`

	mu    sync.Mutex
	lines []string
}

// Printf records a line and forwards it to the framework logger.
func (l *Logger) Printf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()
	if l.Log != nil {
		l.Log.Info(line)
	}
}

// Lines returns every recorded line.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// IService places orders.
type IService interface {
	Order(item string) string
}

// Service is the primary order service.
type Service struct {
	container.Component

	logger *Logger `inject:""`
}

func (s *Service) Order(item string) string {
	s.logger.Printf("order placed: %s", item)
	return "ordered " + item
}

// BackupService takes orders when the primary service is unavailable. It can
// be selected with qualifier "backup" or "backupService".
type BackupService struct {
	container.Component

	logger *Logger `inject:""`
}

func (s *BackupService) Order(item string) string {
	s.logger.Printf("order queued: %s", item)
	return "queued " + item
}

// Checkout uses both services: the qualifier selects the backup, the field
// name selects the primary.
type Checkout struct {
	container.Component

	Svc     IService `inject:"" qualifier:"backup"`
	service IService `inject:""`
}

// Buy orders every item through the primary service, falling back to the
// backup for items the primary refuses.
func (c *Checkout) Buy(items ...string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.HasPrefix(item, "!") {
			out = append(out, c.Svc.Order(strings.TrimPrefix(item, "!")))
			continue
		}
		out = append(out, c.service.Order(item))
	}
	return out
}

// Primary returns the service selected by field name.
func (c *Checkout) Primary() IService { return c.service }
