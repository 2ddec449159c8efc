package demo

import (
	"fmt"

	"github.com/arkenidar/dhtml/pkg/bind"
	"github.com/arkenidar/dhtml/pkg/reactive"
)

// CheckboxPanel is the derived-state example: a row of checkboxes whose
// combined state drives one style sink. All boxes checked renders the
// panel active; any box unchecked resets it to the default style.
type CheckboxPanel struct {
	boxes []*reactive.Cell[bool]
	stop  reactive.Unsubscribe
}

// NewCheckboxPanel builds a panel of n checkboxes, all initially
// checked, and binds their conjunction to the "panel" style target.
func NewCheckboxPanel(n int, emit Emit) (*CheckboxPanel, error) {
	boxes := make([]*reactive.Cell[bool], n)
	for i := range boxes {
		boxes[i] = reactive.NewCell(true)
	}

	stop, err := bind.Bind(boxes, bind.All, bind.StyleActive, bind.StyleDefault, func(s bind.Style) {
		emit("panel", string(s))
	})
	if err != nil {
		return nil, err
	}

	return &CheckboxPanel{boxes: boxes, stop: stop}, nil
}

// Name implements Demo.
func (p *CheckboxPanel) Name() string { return "checkboxes" }

// Len returns the number of checkboxes.
func (p *CheckboxPanel) Len() int { return len(p.boxes) }

// Values returns the current checked state of every box.
func (p *CheckboxPanel) Values() []bool {
	values := make([]bool, len(p.boxes))
	for i, b := range p.boxes {
		values[i] = b.Get()
	}
	return values
}

// Apply implements Demo. Supported ops: set (value "true"/"false") and
// toggle.
func (p *CheckboxPanel) Apply(op Op) error {
	if op.Index < 0 || op.Index >= len(p.boxes) {
		return fmt.Errorf("%w: %d", ErrIndexRange, op.Index)
	}
	switch op.Kind {
	case OpSet:
		p.boxes[op.Index].Set(op.Value == "true")
	case OpToggle:
		p.boxes[op.Index].Update(func(b bool) bool { return !b })
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, op.Kind)
	}
	return nil
}

// Close implements Demo.
func (p *CheckboxPanel) Close() {
	p.stop()
}
