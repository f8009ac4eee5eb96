package app

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nathankoerschner/threecoins/internal/ports"
)

// UUIDv7Generator produces time-ordered identifiers.
type UUIDv7Generator struct{}

func (UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

type options struct {
	now    func() time.Time
	ids    ports.IDGenerator
	logger *slog.Logger
}

// Option configures a service.
type Option func(*options)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides how session and reading ids are produced.
func WithIDGenerator(g ports.IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{
		now:    time.Now,
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
