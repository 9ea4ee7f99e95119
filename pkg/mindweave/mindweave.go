// Package mindweave provides an embeddable terminal mindmap editor for
// Bubble Tea applications.
//
// The editor hosts an interactive canvas: an infinite zoomable surface with
// draggable nodes, polyline edges, gesture-driven selection and layout
// algorithms with tunable parameters.
//
// # Basic Usage
//
// Create an editor with default options and run it:
//
//	model := mindweave.New()
//	p := tea.NewProgram(model)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
// Use options to customize behavior:
//
//	model := mindweave.New(
//		mindweave.WithAnimations(false),
//		mindweave.WithUserConfig(cfg),
//	)
package mindweave

import (
	log "charm.land/log/v2"

	"github.com/mindweave/mindweave/internal/app"
	"github.com/mindweave/mindweave/internal/config"
)

// Model is the editor model implementing tea.Model.
type Model = app.Model

// Options configures a mindweave instance.
type Options struct {
	// UserConfig is a custom user configuration. If nil, defaults are used.
	UserConfig *config.UserConfig

	// Logger receives structured engine logs. If nil, logging is kept at
	// the library default.
	Logger *log.Logger

	// Animations enables or disables animated view transitions.
	Animations bool
}

// Option is a functional option for configuring mindweave.
type Option func(*Options)

// WithUserConfig supplies a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithAnimations toggles animated transitions. When disabled, zoom and fit
// operations apply instantly.
func WithAnimations(enabled bool) Option {
	return func(o *Options) {
		o.Animations = enabled
	}
}

// New creates a mindweave editor model with the given options.
func New(opts ...Option) *Model {
	options := &Options{Animations: true}
	for _, opt := range opts {
		opt(options)
	}

	config.AnimationsEnabled = options.Animations
	return app.New(options.UserConfig, options.Logger)
}
