package reactive

import (
	"reflect"
	"sync"
)

// Unsubscribe detaches a previously registered observer. It is safe to
// call more than once; repeat calls are no-ops. Calling it after the
// cell has been dropped by its owner is also safe: the observer entry
// is simply gone and nothing fires.
type Unsubscribe func()

// observerEntry pairs an observer callback with its registration ID so
// removal can be done without comparing function values.
type observerEntry struct {
	id uint64
	fn func()
}

// Cell is an externally owned mutable value slot with change
// notification. The zero value is not usable; create cells with
// NewCell.
//
// Cell does not own its observers' lifecycles: whoever registers an
// observer holds the Unsubscribe handle and is responsible for calling
// it when the observation should stop.
type Cell[T any] struct {
	id uint64

	// value is the current cell content.
	value T

	// mu protects value and obs.
	mu sync.RWMutex

	// obs are the registered observers, in registration order.
	// Notification walks this slice front to back; removal preserves
	// order so later registrations never fire before earlier ones.
	obs []observerEntry

	// equal decides whether a write changed the value.
	// If nil, uses default equality checking.
	equal func(T, T) bool
}

// NewCell creates a new cell holding the given initial value.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		id:    nextID(),
		value: initial,
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set writes a new value and notifies observers. If the new value
// compares equal to the current one the write is a no-op and no
// observer fires.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	changed := !c.equals(c.value, value)
	if changed {
		c.value = value
	}
	c.mu.Unlock()

	if changed {
		c.notify()
	}
}

// Update atomically reads and rewrites the value. The function receives
// the current value and returns the new one. Observers fire only if the
// result differs from the current value.
func (c *Cell[T]) Update(fn func(T) T) {
	c.mu.Lock()
	oldValue := c.value
	newValue := fn(oldValue)
	changed := !c.equals(oldValue, newValue)
	if changed {
		c.value = newValue
	}
	c.mu.Unlock()

	if changed {
		c.notify()
	}
}

// Observe registers a callback that fires after every effective write.
// Callbacks receive no arguments: consumers re-read whatever cells they
// care about, so a recompute always sees all current values.
//
// The returned Unsubscribe is idempotent and removes only this
// registration, even if the same function was registered twice.
func (c *Cell[T]) Observe(fn func()) Unsubscribe {
	if fn == nil {
		return func() {}
	}

	entry := observerEntry{id: nextID(), fn: fn}

	c.mu.Lock()
	c.obs = append(c.obs, entry)
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.removeObserver(entry.id)
		})
	}
}

// removeObserver deletes the entry with the given ID, preserving the
// registration order of the remaining observers.
func (c *Cell[T]) removeObserver(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, entry := range c.obs {
		if entry.id == id {
			c.obs = append(c.obs[:i], c.obs[i+1:]...)
			return
		}
	}
}

// notify fires every observer in registration order. Uses the
// copy-before-notify pattern so callbacks may register or unsubscribe
// observers (including themselves) without holding the lock.
func (c *Cell[T]) notify() {
	c.mu.RLock()
	obs := make([]observerEntry, len(c.obs))
	copy(obs, c.obs)
	c.mu.RUnlock()

	for _, entry := range obs {
		entry.fn()
	}
}

// WithEquals returns the cell configured with a custom equality
// function. Useful for value types where reflect.DeepEqual is too
// expensive or has the wrong semantics.
func (c *Cell[T]) WithEquals(fn func(T, T) bool) *Cell[T] {
	c.equal = fn
	return c
}

// ID returns the unique identifier for this cell.
func (c *Cell[T]) ID() uint64 {
	return c.id
}

// ObserverCount returns the number of currently registered observers.
func (c *Cell[T]) ObserverCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.obs)
}

// equals checks two values using the configured equality function.
func (c *Cell[T]) equals(a, b T) bool {
	if c.equal != nil {
		return c.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals provides type-appropriate equality checking.
// Uses == for the common primitive types and reflect.DeepEqual for others.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		// Fall back to reflect.DeepEqual for slices, maps, structs, etc.
		return reflect.DeepEqual(a, b)
	}
}
