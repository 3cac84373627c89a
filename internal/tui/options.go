package tui

import (
	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/lanes/internal/app"
)

// BoardConfig holds card display settings.
type BoardConfig struct {
	ShowDescription  bool
	WrapDescriptions bool
}

// Option configures a Model.
type Option func(*Model)

// DefaultBoardConfig returns the default card display settings.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		ShowDescription:  true,
		WrapDescriptions: false,
	}
}

// WithBoardConfig sets card display settings.
func WithBoardConfig(cfg BoardConfig) Option {
	return func(m *Model) {
		m.boardCfg = cfg
	}
}

// WithKeyConfig applies key overrides.
func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyConfig(cfg)
	}
}

// WithActivityReader enables the activity log overlay.
func WithActivityReader(reader app.ActivityReader) Option {
	return func(m *Model) {
		m.activity = reader
	}
}

// WithClipboard replaces the function used to copy item ids.
func WithClipboard(copyText func(string) error) Option {
	return func(m *Model) {
		if copyText != nil {
			m.copyText = copyText
		}
	}
}

// WithLogger sets the logger for drag and form diagnostics.
func WithLogger(logger *charmLog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMarkdownStyle selects the glamour style for the info overlay.
func WithMarkdownStyle(style string) Option {
	return func(m *Model) {
		if style != "" {
			m.markdown = &markdownRenderer{style: style}
		}
	}
}
