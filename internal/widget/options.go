// Package widget implements the board widgets: the lane lists that act as
// drop targets, the item cards that act as drag sources, and the input form.
package widget

import (
	"io"

	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/lanes/internal/app"
	"github.com/hylla/lanes/internal/domain"
)

// Board is the store surface widgets depend on.
type Board interface {
	Create(title, description string, people int) string
	Move(id string, lane domain.Lane)
	Subscribe(fn app.Listener)
}

// Option configures widget construction.
type Option func(*options)

// options holds shared widget settings.
type options struct {
	logger *charmLog.Logger
}

// WithLogger sets the logger used for drag diagnostics.
func WithLogger(logger *charmLog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// buildOptions applies opts over defaults.
func buildOptions(opts []Option) options {
	o := options{logger: charmLog.New(io.Discard)}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
