package demo

import (
	"errors"
	"fmt"

	"github.com/arkenidar/dhtml/pkg/bind"
	"github.com/arkenidar/dhtml/pkg/reactive"
)

// Role marks a multiplier field as the shared multiplier or a factor.
type Role int

const (
	// RoleShared marks a field whose value multiplies every following
	// factor until the next shared field.
	RoleShared Role = iota

	// RoleFactor marks a field with its own output, multiplied by the
	// nearest preceding shared field.
	RoleFactor
)

// Field is one slot in the multipliers page layout.
type Field struct {
	Role  Role
	Value string
}

// ErrOrphanFactor is returned when a factor field has no preceding
// shared field to bind to.
var ErrOrphanFactor = errors.New("demo: factor field with no preceding shared field")

// Multipliers is the cascading-dependency example: factor fields each
// produce an output line "factor*shared=product", and editing a shared
// field recomputes every output in its section in one sweep. Unparsable
// text flows through as the NaN marker instead of failing.
//
// Which shared cell a factor binds to is resolved once here, by
// scanning backwards through the layout; the bindings themselves only
// ever see resolved cell references.
type Multipliers struct {
	fields []*reactive.Cell[string]
	layout []Field
	stops  []reactive.Unsubscribe
}

// NewMultipliers builds cells for the layout and one fan-out binding
// per shared section. Factor i writes to target "out<i>" (layout
// index).
func NewMultipliers(layout []Field, emit Emit) (*Multipliers, error) {
	fields := make([]*reactive.Cell[string], len(layout))
	for i, f := range layout {
		fields[i] = reactive.NewCell(f.Value)
	}

	// Group factors by the nearest preceding shared field.
	sections := make(map[int][]int) // shared index -> factor indexes, in order
	var order []int                 // shared indexes, first-seen order
	for i, f := range layout {
		if f.Role != RoleFactor {
			continue
		}
		shared := -1
		for j := i - 1; j >= 0; j-- {
			if layout[j].Role == RoleShared {
				shared = j
				break
			}
		}
		if shared < 0 {
			return nil, fmt.Errorf("%w: field %d", ErrOrphanFactor, i)
		}
		if _, seen := sections[shared]; !seen {
			order = append(order, shared)
		}
		sections[shared] = append(sections[shared], i)
	}

	m := &Multipliers{fields: fields, layout: layout}
	for _, sharedIdx := range order {
		factorIdxs := sections[sharedIdx]
		dependents := make([]*reactive.Cell[string], len(factorIdxs))
		sinks := make([]bind.Sink[string], len(factorIdxs))
		for k, fi := range factorIdxs {
			dependents[k] = fields[fi]
			target := fmt.Sprintf("out%d", fi)
			sinks[k] = func(v string) { emit(target, v) }
		}

		stop, err := bind.FanOut(dependents, fields[sharedIdx], combineProduct, sinks)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.stops = append(m.stops, stop)
	}
	return m, nil
}

// combineProduct formats one output line, propagating the NaN marker
// from either side.
func combineProduct(own, shared string) string {
	a, b := bind.ParseNum(own), bind.ParseNum(shared)
	return fmt.Sprintf("%s*%s=%s", a, b, a.Mul(b))
}

// Name implements Demo.
func (m *Multipliers) Name() string { return "multipliers" }

// Len returns the number of fields in the layout.
func (m *Multipliers) Len() int { return len(m.fields) }

// Layout returns the field layout the demo was built from.
func (m *Multipliers) Layout() []Field { return m.layout }

// Values returns the current text of every field.
func (m *Multipliers) Values() []string {
	values := make([]string, len(m.fields))
	for i, f := range m.fields {
		values[i] = f.Get()
	}
	return values
}

// Apply implements Demo. Supported ops: set (new field text) and incr
// (add one through the same write path a manual edit takes). Both work
// on shared and factor fields alike.
func (m *Multipliers) Apply(op Op) error {
	if op.Index < 0 || op.Index >= len(m.fields) {
		return fmt.Errorf("%w: %d", ErrIndexRange, op.Index)
	}
	switch op.Kind {
	case OpSet:
		m.fields[op.Index].Set(op.Value)
	case OpIncr:
		bind.Increment(m.fields[op.Index])
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, op.Kind)
	}
	return nil
}

// Close implements Demo.
func (m *Multipliers) Close() {
	for _, stop := range m.stops {
		stop()
	}
}
