package shop

import (
	"time"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
)

// Clock reports the time the shop runs on.
type Clock struct {
	now func() time.Time
}

func (c *Clock) Now() time.Time { return c.now() }

// Report summarizes a shop run.
type Report struct {
	Shop    string
	Started time.Time
	Logger  *Logger
}

// Settings provides the beans that need more than a zero value.
type Settings struct {
	container.Configuration

	Config *config.Config `inject:""`
}

func (s *Settings) ProvideClock() *Clock {
	return &Clock{now: time.Now}
}

func (s *Settings) ProvideReport(clock *Clock, logger *Logger) (*Report, error) {
	return &Report{Shop: s.Config.App.Name, Started: clock.Now(), Logger: logger}, nil
}
