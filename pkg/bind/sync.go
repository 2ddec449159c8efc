package bind

import (
	"sync/atomic"

	"github.com/arkenidar/dhtml/pkg/reactive"
)

// syncGroup mirrors a set of peer cells. The propagating flag tags
// writes performed by the group's own sweep so they cannot re-enter
// the observers and cascade.
type syncGroup[T any] struct {
	members     []*reactive.Cell[T]
	propagating atomic.Bool
}

// SyncGroup keeps every member cell equal to whichever member changed
// last. There is no designated primary: any member may originate a
// change, and its value is written to all members (the originator's own
// rewrite is a value-equal no-op).
//
// Termination is guaranteed twice over: the sweep's writes are tagged
// and skipped by the group's observers, and a write that matches the
// target's current value does not notify at all. One external edit
// therefore produces exactly len(members)-1 effective outbound writes.
//
// Separate SyncGroup calls are fully independent; a change in one
// group's members is never observed by another group's.
func SyncGroup[T any](members []*reactive.Cell[T]) (reactive.Unsubscribe, error) {
	const op = "bind.SyncGroup"

	if len(members) == 0 {
		return nil, configErr(op, ErrEmptyGroup)
	}
	for _, m := range members {
		if m == nil {
			return nil, configErr(op, ErrNilCell)
		}
	}

	g := &syncGroup[T]{members: members}

	unsubs := make([]reactive.Unsubscribe, len(members))
	for i, m := range members {
		m := m
		unsubs[i] = m.Observe(func() { g.propagate(m) })
	}
	return unsubscribeAll(unsubs), nil
}

// propagate copies the origin's value into every member. Writes made
// here fire the receiving cells' other observers (the host repaints
// from them) but not this group's own, so the sweep never recurses.
func (g *syncGroup[T]) propagate(origin *reactive.Cell[T]) {
	if g.propagating.Load() {
		return
	}
	g.propagating.Store(true)
	defer g.propagating.Store(false)

	v := origin.Get()
	for _, m := range g.members {
		m.Set(v)
	}
}
