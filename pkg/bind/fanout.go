package bind

import "github.com/arkenidar/dhtml/pkg/reactive"

// FanOut binds each dependent cell, combined with one shared cell, to
// its paired sink.
//
// dependents[i] pairs with sinks[i]; all pairs read the same shared
// cell. A change to dependents[i] recomputes only pair i. A change to
// the shared cell recomputes every pair in order: a full fan-out
// sweep, so no output is stale after the shared-cell observer returns.
// Every pair is also computed once at construction.
func FanOut[T, R any](dependents []*reactive.Cell[T], shared *reactive.Cell[T], combine func(own, shared T) R, sinks []Sink[R]) (reactive.Unsubscribe, error) {
	const op = "bind.FanOut"

	if len(dependents) == 0 {
		return nil, configErr(op, ErrEmptyGroup)
	}
	if len(dependents) != len(sinks) {
		return nil, configErr(op, ErrLengthMismatch)
	}
	if shared == nil {
		return nil, configErr(op, ErrNilCell)
	}
	for _, c := range dependents {
		if c == nil {
			return nil, configErr(op, ErrNilCell)
		}
	}
	if combine == nil {
		return nil, configErr(op, ErrNilFunc)
	}
	for _, s := range sinks {
		if s == nil {
			return nil, configErr(op, ErrNilFunc)
		}
	}

	recomputeOne := func(i int) {
		sinks[i](combine(dependents[i].Get(), shared.Get()))
	}
	recomputeAll := func() {
		for i := range dependents {
			recomputeOne(i)
		}
	}

	recomputeAll()

	unsubs := make([]reactive.Unsubscribe, 0, len(dependents)+1)
	for i, c := range dependents {
		i := i
		unsubs = append(unsubs, c.Observe(func() { recomputeOne(i) }))
	}
	unsubs = append(unsubs, shared.Observe(recomputeAll))
	return unsubscribeAll(unsubs), nil
}
