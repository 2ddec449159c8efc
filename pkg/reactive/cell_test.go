package reactive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// counter is a test observer that counts its own firings.
type counter struct {
	n int
}

func (c *counter) fn() func() {
	return func() { c.n++ }
}

func TestCellBasic(t *testing.T) {
	count := NewCell(0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	count.Update(func(n int) int { return n * 2 })
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}
}

func TestCellNotifyOnChange(t *testing.T) {
	count := NewCell(0)
	obs := &counter{}
	count.Observe(obs.fn())

	count.Set(1)
	if obs.n != 1 {
		t.Errorf("expected 1 notification, got %d", obs.n)
	}

	// Same value should not notify
	count.Set(1)
	if obs.n != 1 {
		t.Errorf("same value should not notify, got %d", obs.n)
	}

	count.Set(2)
	if obs.n != 2 {
		t.Errorf("expected 2 notifications, got %d", obs.n)
	}

	// Update to an equal value should not notify either
	count.Update(func(n int) int { return n })
	if obs.n != 2 {
		t.Errorf("no-op update should not notify, got %d", obs.n)
	}
}

func TestCellObserverOrder(t *testing.T) {
	cell := NewCell("")

	var order []string
	cell.Observe(func() { order = append(order, "first") })
	second := cell.Observe(func() { order = append(order, "second") })
	cell.Observe(func() { order = append(order, "third") })

	cell.Set("a")
	want := []string{"first", "second", "third"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("firing order mismatch (-want +got):\n%s", diff)
	}

	// Removing the middle observer must preserve the order of the rest.
	second()
	order = nil
	cell.Set("b")
	want = []string{"first", "third"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("firing order after removal mismatch (-want +got):\n%s", diff)
	}
}

func TestCellUnsubscribeIdempotent(t *testing.T) {
	cell := NewCell(0)
	obs := &counter{}
	other := &counter{}

	stop := cell.Observe(obs.fn())
	cell.Observe(other.fn())

	stop()
	stop() // repeat call is a no-op
	stop()

	cell.Set(1)
	if obs.n != 0 {
		t.Errorf("unsubscribed observer fired %d times", obs.n)
	}
	if other.n != 1 {
		t.Errorf("unrelated observer should still fire once, got %d", other.n)
	}
	if cell.ObserverCount() != 1 {
		t.Errorf("expected 1 remaining observer, got %d", cell.ObserverCount())
	}
}

func TestCellDuplicateObserverRegistrations(t *testing.T) {
	cell := NewCell(0)
	obs := &counter{}
	fn := obs.fn()

	stopA := cell.Observe(fn)
	cell.Observe(fn)

	cell.Set(1)
	if obs.n != 2 {
		t.Errorf("both registrations should fire, got %d", obs.n)
	}

	// Unsubscribing one registration must not remove the other.
	stopA()
	cell.Set(2)
	if obs.n != 3 {
		t.Errorf("remaining registration should still fire, got %d", obs.n)
	}
}

func TestCellObserverMayUnsubscribeDuringNotify(t *testing.T) {
	cell := NewCell(0)
	obs := &counter{}

	var stop Unsubscribe
	stop = cell.Observe(func() {
		obs.n++
		stop()
	})

	cell.Set(1)
	cell.Set(2)
	if obs.n != 1 {
		t.Errorf("self-removing observer should fire once, got %d", obs.n)
	}
}

func TestCellNilObserver(t *testing.T) {
	cell := NewCell(0)
	stop := cell.Observe(nil)
	stop() // must not panic

	cell.Set(1)
	if cell.ObserverCount() != 0 {
		t.Errorf("nil observer should not be registered, got %d", cell.ObserverCount())
	}
}

func TestCellWithEquals(t *testing.T) {
	// Length-based equality: rewrites that keep the length are no-ops.
	cell := NewCell("go").WithEquals(func(a, b string) bool {
		return len(a) == len(b)
	})
	obs := &counter{}
	cell.Observe(obs.fn())

	cell.Set("GO")
	if obs.n != 0 {
		t.Errorf("equal-by-custom-fn write should not notify, got %d", obs.n)
	}

	cell.Set("gopher")
	if obs.n != 1 {
		t.Errorf("expected 1 notification, got %d", obs.n)
	}
}

func TestCellIDsUnique(t *testing.T) {
	a := NewCell(0)
	b := NewCell(0)
	if a.ID() == b.ID() {
		t.Errorf("cells should have distinct IDs, both got %d", a.ID())
	}
}

func TestCellSliceValueUsesDeepEqual(t *testing.T) {
	cell := NewCell([]int{1, 2})
	obs := &counter{}
	cell.Observe(obs.fn())

	cell.Set([]int{1, 2})
	if obs.n != 0 {
		t.Errorf("deep-equal slice write should not notify, got %d", obs.n)
	}

	cell.Set([]int{1, 2, 3})
	if obs.n != 1 {
		t.Errorf("expected 1 notification, got %d", obs.n)
	}
}
