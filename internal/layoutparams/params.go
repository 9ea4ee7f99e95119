// Package layoutparams holds the tunable parameters of layout algorithms
// and the registry that validates edits, notifies listeners, and drives
// layout computation through the async collaborator contract.
package layoutparams

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors for parameter edits and layout application.
var (
	ErrInvalidParameter = errors.New("invalid parameter value")
	ErrUnknownLayout    = errors.New("unknown layout")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrLayoutFailed     = errors.New("layout computation failed")
)

// Kind is the value type of a parameter.
type Kind int

const (
	Range Kind = iota
	Choice
	Boolean
)

// Parameter is one named, validated layout setting. Range parameters hold a
// float64 within [Min, Max] snapped to Step; Choice parameters hold one of
// Choices; Boolean parameters hold a bool.
type Parameter struct {
	Name    string
	Label   string
	Kind    Kind
	Min     float64
	Max     float64
	Step    float64
	Choices []string

	value any
}

// RangeParam constructs a numeric parameter. def is clamped into [min, max].
func RangeParam(name, label string, min, max, def, step float64) Parameter {
	if def < min {
		def = min
	}
	if def > max {
		def = max
	}
	return Parameter{Name: name, Label: label, Kind: Range, Min: min, Max: max, Step: step, value: def}
}

// ChoiceParam constructs an enumerated parameter. def must be one of choices;
// otherwise the first choice is used.
func ChoiceParam(name, label string, choices []string, def string) Parameter {
	if !slices.Contains(choices, def) && len(choices) > 0 {
		def = choices[0]
	}
	return Parameter{Name: name, Label: label, Kind: Choice, Choices: choices, value: def}
}

// BoolParam constructs a boolean parameter.
func BoolParam(name, label string, def bool) Parameter {
	return Parameter{Name: name, Label: label, Kind: Boolean, value: def}
}

// Value returns the current value as its natural type.
func (p *Parameter) Value() any { return p.value }

// Float returns the value of a Range parameter.
func (p *Parameter) Float() float64 {
	v, _ := p.value.(float64)
	return v
}

// StringValue returns the value of a Choice parameter. It is deliberately
// not named String: that would make Parameter a fmt.Stringer and render
// Range and Boolean parameters as the empty string under %v.
func (p *Parameter) StringValue() string {
	v, _ := p.value.(string)
	return v
}

// Bool returns the value of a Boolean parameter.
func (p *Parameter) Bool() bool {
	v, _ := p.value.(bool)
	return v
}

// validate checks a candidate value against the parameter's constraints and
// returns the normalized form. The stored value is untouched.
func (p *Parameter) validate(value any) (any, error) {
	switch p.Kind {
	case Range:
		f, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s wants a number, got %T", ErrInvalidParameter, p.Name, value)
		}
		if f < p.Min || f > p.Max {
			return nil, fmt.Errorf("%w: %s=%v outside [%v, %v]", ErrInvalidParameter, p.Name, f, p.Min, p.Max)
		}
		return f, nil
	case Choice:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s wants a string, got %T", ErrInvalidParameter, p.Name, value)
		}
		if !slices.Contains(p.Choices, s) {
			return nil, fmt.Errorf("%w: %s=%q not in %v", ErrInvalidParameter, p.Name, s, p.Choices)
		}
		return s, nil
	case Boolean:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %s wants a bool, got %T", ErrInvalidParameter, p.Name, value)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %s has unknown kind", ErrInvalidParameter, p.Name)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Configuration is an ordered set of parameters for one layout.
type Configuration struct {
	params []*Parameter
	index  map[string]*Parameter
}

// NewConfiguration builds a configuration preserving declaration order.
func NewConfiguration(params ...Parameter) *Configuration {
	c := &Configuration{index: make(map[string]*Parameter, len(params))}
	for i := range params {
		p := params[i]
		c.params = append(c.params, &p)
		c.index[p.Name] = &p
	}
	return c
}

// Parameters returns the parameters in declaration order.
func (c *Configuration) Parameters() []*Parameter {
	return c.params
}

// Get returns the named parameter.
func (c *Configuration) Get(name string) (*Parameter, bool) {
	p, ok := c.index[name]
	return p, ok
}

// Set validates and stores a value. On failure the current value is
// unchanged.
func (c *Configuration) Set(name string, value any) error {
	p, ok := c.index[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	normalized, err := p.validate(value)
	if err != nil {
		return err
	}
	p.value = normalized
	return nil
}

// Clone deep-copies the configuration so layout computation can read a
// stable set of values off the UI thread.
func (c *Configuration) Clone() *Configuration {
	out := &Configuration{index: make(map[string]*Parameter, len(c.params))}
	for _, p := range c.params {
		cp := *p
		out.params = append(out.params, &cp)
		out.index[cp.Name] = &cp
	}
	return out
}

// Float is shorthand for reading a Range parameter's value.
func (c *Configuration) Float(name string) float64 {
	if p, ok := c.index[name]; ok {
		return p.Float()
	}
	return 0
}

// String is shorthand for reading a Choice parameter's value.
func (c *Configuration) String(name string) string {
	if p, ok := c.index[name]; ok {
		return p.StringValue()
	}
	return ""
}

// Bool is shorthand for reading a Boolean parameter's value.
func (c *Configuration) Bool(name string) bool {
	if p, ok := c.index[name]; ok {
		return p.Bool()
	}
	return false
}
