// Package demo assembles the binding patterns from package bind into
// the three example behaviors this module ships: a checkbox panel with
// derived styling, cascading multiplier outputs, and a group of
// mirrored inputs.
//
// A demo owns its cells and bindings; the host owns the rendering. Sink
// writes leave a demo through an Emit callback as (target, value)
// pairs, and the host mutates cells through Apply. Everything in
// between is the reactive wiring under test.
package demo

import (
	"errors"
	"fmt"
)

// Emit publishes one sink write to the host: target names the rendering
// slot, value is its new content.
type Emit func(target, value string)

// Op is one host-driven mutation of a demo's cells. Kind selects the
// operation; Index addresses a cell; Value carries the new content for
// set operations.
type Op struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	Value string `json:"value,omitempty"`
}

// Op kinds understood by Apply.
const (
	OpSet    = "set"
	OpToggle = "toggle"
	OpIncr   = "incr"
)

// Demo is a live example instance driven by a host.
type Demo interface {
	// Name returns the demo's registry name.
	Name() string

	// Apply performs one cell mutation. Changed cells notify their
	// bindings synchronously, so every resulting sink write has been
	// emitted by the time Apply returns.
	Apply(op Op) error

	// Close drops every binding the demo registered. The demo must not
	// emit after Close returns.
	Close()
}

var (
	// ErrUnknownDemo is returned by New for an unregistered name.
	ErrUnknownDemo = errors.New("demo: unknown demo")

	// ErrUnknownOp is returned by Apply for an op kind the demo does
	// not support.
	ErrUnknownOp = errors.New("demo: unsupported operation")

	// ErrIndexRange is returned by Apply when Index addresses no cell.
	ErrIndexRange = errors.New("demo: cell index out of range")
)

// Names lists the registered demos in presentation order.
var Names = []string{"checkboxes", "multipliers", "synchro"}

// Config sizes the demo instances a host constructs.
type Config struct {
	// CheckboxCount is the number of checkboxes in the panel.
	CheckboxCount int

	// SynchroWidth is the number of mirrored inputs.
	SynchroWidth int

	// MultiplierFields is the ordered field layout of the multipliers
	// page. Factor fields bind to the nearest preceding shared field.
	MultiplierFields []Field
}

// DefaultConfig returns the stock demo layout.
func DefaultConfig() Config {
	return Config{
		CheckboxCount: 3,
		SynchroWidth:  3,
		MultiplierFields: []Field{
			{Role: RoleShared, Value: "5"},
			{Role: RoleFactor, Value: "2"},
			{Role: RoleFactor, Value: "3"},
			{Role: RoleFactor, Value: "4"},
		},
	}
}

// New constructs the named demo. Sink writes for the demo's initial
// state are emitted before New returns.
func New(name string, cfg Config, emit Emit) (Demo, error) {
	switch name {
	case "checkboxes":
		return NewCheckboxPanel(cfg.CheckboxCount, emit)
	case "multipliers":
		return NewMultipliers(cfg.MultiplierFields, emit)
	case "synchro":
		return NewSynchro(cfg.SynchroWidth, emit)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDemo, name)
	}
}
