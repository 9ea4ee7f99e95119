package layoutparams

import (
	"context"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/mindweave/mindweave/internal/geom"
	"github.com/mindweave/mindweave/internal/scene"
)

// Computer is the async layout collaborator: it derives new node centers
// from a snapshot and a cloned configuration. Implementations must honor
// ctx cancellation and must not touch the live document.
type Computer interface {
	Compute(ctx context.Context, cfg *Configuration, snap scene.Snapshot) (map[string]geom.Vector2, error)
}

// Listener observes parameter changes.
type Listener func(layoutID, param string)

type registration struct {
	defaults func() *Configuration
	computer Computer
	cfg      *Configuration
}

// Registry holds the known layouts, their live configurations, and change
// listeners. Configurations are created lazily from defaults on first
// access. Mutating methods are called from the canvas thread only;
// RequestApply works on clones and may run inside a worker.
type Registry struct {
	layouts   map[string]*registration
	order     []string
	listeners []Listener
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{layouts: make(map[string]*registration)}
}

// Register adds a layout under id. defaults builds its fresh configuration;
// computer performs the actual layout.
func (r *Registry) Register(id string, defaults func() *Configuration, computer Computer) {
	if _, exists := r.layouts[id]; !exists {
		r.order = append(r.order, id)
	}
	r.layouts[id] = &registration{defaults: defaults, computer: computer}
}

// LayoutIDs returns the registered layout ids in registration order.
func (r *Registry) LayoutIDs() []string {
	return r.order
}

// Configuration returns the live configuration for a layout, seeding it
// from the defaults on first access.
func (r *Registry) Configuration(id string) (*Configuration, error) {
	reg, ok := r.layouts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, id)
	}
	if reg.cfg == nil {
		reg.cfg = reg.defaults()
	}
	return reg.cfg, nil
}

// SetParameter validates and applies one parameter edit, notifying
// listeners on success. A rejected value leaves the configuration exactly
// as it was.
func (r *Registry) SetParameter(layoutID, name string, value any) error {
	cfg, err := r.Configuration(layoutID)
	if err != nil {
		return err
	}
	if err := cfg.Set(name, value); err != nil {
		return err
	}
	for _, l := range r.listeners {
		l(layoutID, name)
	}
	return nil
}

// Subscribe registers a change listener. Listeners run synchronously inside
// SetParameter.
func (r *Registry) Subscribe(l Listener) {
	r.listeners = append(r.listeners, l)
}

// RequestApply computes new positions for snap using the layout's current
// configuration. The configuration is cloned first, so this is safe to call
// from a worker goroutine while the UI keeps editing. Collaborator failures
// wrap ErrLayoutFailed and leave the document untouched; applying the
// returned positions is the caller's job, back on the canvas thread.
func (r *Registry) RequestApply(ctx context.Context, layoutID string, snap scene.Snapshot) (map[string]geom.Vector2, error) {
	reg, ok := r.layouts[layoutID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, layoutID)
	}
	cfg, err := r.Configuration(layoutID)
	if err != nil {
		return nil, err
	}
	positions, err := reg.computer.Compute(ctx, cfg.Clone(), snap)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutFailed, layoutID, err)
	}
	return positions, nil
}

// SaveValues writes the current parameter values of every seeded layout to
// a TOML file, keyed by layout id.
func (r *Registry) SaveValues(path string) error {
	values := make(map[string]map[string]any)
	for id, reg := range r.layouts {
		if reg.cfg == nil {
			continue
		}
		section := make(map[string]any)
		for _, p := range reg.cfg.Parameters() {
			section[p.Name] = p.Value()
		}
		values[id] = section
	}
	data, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal layout values: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadValues reads a TOML file written by SaveValues and applies every
// value that still validates. Unknown layouts, unknown parameters, and
// out-of-range values are skipped rather than failing the load.
func (r *Registry) LoadValues(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var values map[string]map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parse layout values: %w", err)
	}
	for id, section := range values {
		cfg, err := r.Configuration(id)
		if err != nil {
			continue
		}
		for name, value := range section {
			_ = cfg.Set(name, value) // best effort
		}
	}
	return nil
}
