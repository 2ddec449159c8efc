package reactive

import "testing"

func TestBoolCell(t *testing.T) {
	c := NewBoolCell(false)

	c.Toggle()
	if !c.Get() {
		t.Error("expected true after Toggle")
	}

	c.SetFalse()
	if c.Get() {
		t.Error("expected false after SetFalse")
	}

	c.SetTrue()
	if !c.Get() {
		t.Error("expected true after SetTrue")
	}
}

func TestIntCell(t *testing.T) {
	c := NewIntCell(10)

	c.Inc()
	if c.Get() != 11 {
		t.Errorf("expected 11 after Inc, got %d", c.Get())
	}

	c.Dec()
	c.Dec()
	if c.Get() != 9 {
		t.Errorf("expected 9 after two Dec, got %d", c.Get())
	}

	c.Add(5)
	if c.Get() != 14 {
		t.Errorf("expected 14 after Add(5), got %d", c.Get())
	}
}

func TestIntCellIncNotifies(t *testing.T) {
	c := NewIntCell(0)
	obs := &counter{}
	c.Observe(obs.fn())

	c.Inc()
	c.Inc()
	if obs.n != 2 {
		t.Errorf("expected 2 notifications, got %d", obs.n)
	}
}

func TestStringCell(t *testing.T) {
	c := NewStringCell("hello")

	if c.IsEmpty() {
		t.Error("expected non-empty")
	}

	c.Clear()
	if !c.IsEmpty() {
		t.Errorf("expected empty after Clear, got %q", c.Get())
	}
}
