package demo

import (
	"fmt"

	"github.com/arkenidar/dhtml/pkg/bind"
	"github.com/arkenidar/dhtml/pkg/reactive"
)

// Synchro is the peer-synchronization example: n text inputs mirroring
// each other with no designated primary. Editing any one rewrites them
// all; the propagation writes cannot re-enter the group, so one edit is
// one sweep.
type Synchro struct {
	members []*reactive.Cell[string]
	stops   []reactive.Unsubscribe
}

// NewSynchro builds n empty mirrored inputs. Member i repaints through
// target "in<i>"; the sync binding is registered before the repaint
// bindings so a sweep's writes repaint every member.
func NewSynchro(n int, emit Emit) (*Synchro, error) {
	members := make([]*reactive.Cell[string], n)
	for i := range members {
		members[i] = reactive.NewCell("")
	}

	s := &Synchro{members: members}

	stop, err := bind.SyncGroup(members)
	if err != nil {
		return nil, err
	}
	s.stops = append(s.stops, stop)

	for i, m := range members {
		target := fmt.Sprintf("in%d", i)
		repaint, err := bind.Derive([]*reactive.Cell[string]{m}, func(values []string) string {
			return values[0]
		}, func(v string) { emit(target, v) })
		if err != nil {
			s.Close()
			return nil, err
		}
		s.stops = append(s.stops, repaint)
	}
	return s, nil
}

// Name implements Demo.
func (s *Synchro) Name() string { return "synchro" }

// Len returns the number of mirrored inputs.
func (s *Synchro) Len() int { return len(s.members) }

// Values returns the current text of every member.
func (s *Synchro) Values() []string {
	values := make([]string, len(s.members))
	for i, m := range s.members {
		values[i] = m.Get()
	}
	return values
}

// Apply implements Demo. Supported op: set.
func (s *Synchro) Apply(op Op) error {
	if op.Index < 0 || op.Index >= len(s.members) {
		return fmt.Errorf("%w: %d", ErrIndexRange, op.Index)
	}
	switch op.Kind {
	case OpSet:
		s.members[op.Index].Set(op.Value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, op.Kind)
	}
	return nil
}

// Close implements Demo.
func (s *Synchro) Close() {
	for _, stop := range s.stops {
		stop()
	}
}
