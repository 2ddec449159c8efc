package bind

import (
	"sync"

	"github.com/arkenidar/dhtml/pkg/reactive"
)

// Sink is a write target receiving a derivation's output. A sink write
// is the only externally observable effect of a binding firing.
type Sink[T any] func(T)

// Style is a rendering state written by style sinks.
type Style string

const (
	// StyleActive is the rendering state for a satisfied predicate.
	StyleActive Style = "active"

	// StyleDefault is the reset rendering state.
	StyleDefault Style = "default"
)

// Derive binds a group of cells to a sink through a pure derivation.
//
// The derivation is evaluated once immediately and its result written
// to the sink; afterwards a change to any cell in the group re-reads
// all current values, re-evaluates, and rewrites the sink. Exactly one
// sink write happens per triggering change. The derivation must be
// pure: recomputation is always from scratch, never incremental.
//
// The returned Unsubscribe drops every observer the binding registered.
// It is idempotent.
func Derive[T, R any](group []*reactive.Cell[T], derivation func([]T) R, sink Sink[R]) (reactive.Unsubscribe, error) {
	const op = "bind.Derive"

	if len(group) == 0 {
		return nil, configErr(op, ErrEmptyGroup)
	}
	for _, c := range group {
		if c == nil {
			return nil, configErr(op, ErrNilCell)
		}
	}
	if derivation == nil || sink == nil {
		return nil, configErr(op, ErrNilFunc)
	}

	recompute := func() {
		values := make([]T, len(group))
		for i, c := range group {
			values[i] = c.Get()
		}
		sink(derivation(values))
	}

	// Initial evaluation at registration time.
	recompute()

	unsubs := make([]reactive.Unsubscribe, len(group))
	for i, c := range group {
		unsubs[i] = c.Observe(recompute)
	}
	return unsubscribeAll(unsubs), nil
}

// Bind is the boolean/style specialization of Derive: evaluate the
// predicate over the group's current values and write the active style
// when it holds, the fallback style when it does not.
func Bind(group []*reactive.Cell[bool], predicate func([]bool) bool, active, fallback Style, sink Sink[Style]) (reactive.Unsubscribe, error) {
	if predicate == nil {
		return nil, configErr("bind.Bind", ErrNilFunc)
	}
	return Derive(group, func(values []bool) Style {
		if predicate(values) {
			return active
		}
		return fallback
	}, sink)
}

// All reports whether every value in the slice is true. It is the
// predicate of the checkbox-panel pattern.
func All(values []bool) bool {
	for _, v := range values {
		if !v {
			return false
		}
	}
	return true
}

// unsubscribeAll folds a set of unsubscribe handles into one idempotent
// handle.
func unsubscribeAll(unsubs []reactive.Unsubscribe) reactive.Unsubscribe {
	var once sync.Once
	return func() {
		once.Do(func() {
			for _, u := range unsubs {
				u()
			}
		})
	}
}
