package demo

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// emitRecorder captures (target, value) sink writes, keeping both the
// full sequence and the latest value per target.
type emitRecorder struct {
	mu     sync.Mutex
	seq    []string
	latest map[string]string
}

func newEmitRecorder() *emitRecorder {
	return &emitRecorder{latest: make(map[string]string)}
}

func (r *emitRecorder) emit(target, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq = append(r.seq, target+"="+value)
	r.latest[target] = value
}

func (r *emitRecorder) get(target string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest[target]
}

func (r *emitRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seq)
}

func TestNewKnownDemos(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			d, err := New(name, cfg, newEmitRecorder().emit)
			if err != nil {
				t.Fatalf("New(%q): %v", name, err)
			}
			if d.Name() != name {
				t.Errorf("Name() = %q, want %q", d.Name(), name)
			}
			d.Close()
		})
	}
}

func TestNewUnknownDemo(t *testing.T) {
	_, err := New("nosuch", DefaultConfig(), newEmitRecorder().emit)
	if !errors.Is(err, ErrUnknownDemo) {
		t.Errorf("expected ErrUnknownDemo, got %v", err)
	}
}

func TestCheckboxPanelStyle(t *testing.T) {
	rec := newEmitRecorder()
	p, err := NewCheckboxPanel(3, rec.emit)
	if err != nil {
		t.Fatalf("NewCheckboxPanel: %v", err)
	}
	defer p.Close()

	// All boxes start checked: initial emission is the active style.
	if rec.get("panel") != "active" {
		t.Errorf("initial panel = %q, want active", rec.get("panel"))
	}

	if err := p.Apply(Op{Kind: OpToggle, Index: 1}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec.get("panel") != "default" {
		t.Errorf("after toggle off: panel = %q, want default", rec.get("panel"))
	}

	if err := p.Apply(Op{Kind: OpSet, Index: 1, Value: "true"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec.get("panel") != "active" {
		t.Errorf("after re-check: panel = %q, want active", rec.get("panel"))
	}

	want := []string{"panel=active", "panel=default", "panel=active"}
	if diff := cmp.Diff(want, rec.seq); diff != "" {
		t.Errorf("emission sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckboxPanelApplyErrors(t *testing.T) {
	p, err := NewCheckboxPanel(2, newEmitRecorder().emit)
	if err != nil {
		t.Fatalf("NewCheckboxPanel: %v", err)
	}
	defer p.Close()

	if err := p.Apply(Op{Kind: OpToggle, Index: 5}); !errors.Is(err, ErrIndexRange) {
		t.Errorf("expected ErrIndexRange, got %v", err)
	}
	if err := p.Apply(Op{Kind: OpIncr, Index: 0}); !errors.Is(err, ErrUnknownOp) {
		t.Errorf("expected ErrUnknownOp, got %v", err)
	}
}

func TestMultipliersOutputs(t *testing.T) {
	rec := newEmitRecorder()
	m, err := NewMultipliers(DefaultConfig().MultiplierFields, rec.emit)
	if err != nil {
		t.Fatalf("NewMultipliers: %v", err)
	}
	defer m.Close()

	// Layout: shared "5" at 0, factors "2","3","4" at 1..3.
	if rec.get("out1") != "2*5=10" || rec.get("out2") != "3*5=15" || rec.get("out3") != "4*5=20" {
		t.Errorf("initial outputs: %q %q %q", rec.get("out1"), rec.get("out2"), rec.get("out3"))
	}

	// Shared edit: every output recomputed in one pass.
	if err := m.Apply(Op{Kind: OpSet, Index: 0, Value: "10"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec.get("out1") != "2*10=20" || rec.get("out2") != "3*10=30" || rec.get("out3") != "4*10=40" {
		t.Errorf("after shared edit: %q %q %q", rec.get("out1"), rec.get("out2"), rec.get("out3"))
	}

	// Factor edit touches only its own output.
	before := rec.get("out2")
	if err := m.Apply(Op{Kind: OpSet, Index: 1, Value: "6"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec.get("out1") != "6*10=60" {
		t.Errorf("out1 = %q, want 6*10=60", rec.get("out1"))
	}
	if rec.get("out2") != before {
		t.Errorf("out2 changed on unrelated factor edit: %q", rec.get("out2"))
	}
}

func TestMultipliersIncrement(t *testing.T) {
	recA := newEmitRecorder()
	a, err := NewMultipliers(DefaultConfig().MultiplierFields, recA.emit)
	if err != nil {
		t.Fatalf("NewMultipliers: %v", err)
	}
	defer a.Close()

	recB := newEmitRecorder()
	b, err := NewMultipliers(DefaultConfig().MultiplierFields, recB.emit)
	if err != nil {
		t.Fatalf("NewMultipliers: %v", err)
	}
	defer b.Close()

	// Programmatic increment and a manual edit to old+1 are the same
	// notification path and the same sink output.
	if err := a.Apply(Op{Kind: OpIncr, Index: 1}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := b.Apply(Op{Kind: OpSet, Index: 1, Value: "3"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if diff := cmp.Diff(recB.seq, recA.seq); diff != "" {
		t.Errorf("increment and manual edit diverged (-manual +increment):\n%s", diff)
	}

	// Incrementing the shared field sweeps every output.
	if err := a.Apply(Op{Kind: OpIncr, Index: 0}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if recA.get("out1") != "3*6=18" {
		t.Errorf("out1 = %q, want 3*6=18", recA.get("out1"))
	}
}

func TestMultipliersMarker(t *testing.T) {
	rec := newEmitRecorder()
	m, err := NewMultipliers(DefaultConfig().MultiplierFields, rec.emit)
	if err != nil {
		t.Fatalf("NewMultipliers: %v", err)
	}
	defer m.Close()

	if err := m.Apply(Op{Kind: OpSet, Index: 2, Value: "oops"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec.get("out2") != "NaN*5=NaN" {
		t.Errorf("out2 = %q, want NaN*5=NaN", rec.get("out2"))
	}
	// Other outputs unharmed.
	if rec.get("out1") != "2*5=10" {
		t.Errorf("out1 = %q, want 2*5=10", rec.get("out1"))
	}
}

func TestMultipliersSections(t *testing.T) {
	// Two shared fields: factors bind to the nearest preceding one.
	layout := []Field{
		{Role: RoleShared, Value: "2"},
		{Role: RoleFactor, Value: "10"},
		{Role: RoleShared, Value: "3"},
		{Role: RoleFactor, Value: "10"},
	}
	rec := newEmitRecorder()
	m, err := NewMultipliers(layout, rec.emit)
	if err != nil {
		t.Fatalf("NewMultipliers: %v", err)
	}
	defer m.Close()

	if rec.get("out1") != "10*2=20" {
		t.Errorf("out1 = %q, want 10*2=20", rec.get("out1"))
	}
	if rec.get("out3") != "10*3=30" {
		t.Errorf("out3 = %q, want 10*3=30", rec.get("out3"))
	}

	// Editing the first shared field leaves the second section alone.
	if err := m.Apply(Op{Kind: OpSet, Index: 0, Value: "4"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec.get("out1") != "10*4=40" {
		t.Errorf("out1 = %q, want 10*4=40", rec.get("out1"))
	}
	if rec.get("out3") != "10*3=30" {
		t.Errorf("out3 = %q, want 10*3=30 (untouched)", rec.get("out3"))
	}
}

func TestMultipliersOrphanFactor(t *testing.T) {
	layout := []Field{
		{Role: RoleFactor, Value: "2"},
		{Role: RoleShared, Value: "5"},
	}
	_, err := NewMultipliers(layout, newEmitRecorder().emit)
	if !errors.Is(err, ErrOrphanFactor) {
		t.Errorf("expected ErrOrphanFactor, got %v", err)
	}
}

func TestSynchroMirrors(t *testing.T) {
	rec := newEmitRecorder()
	s, err := NewSynchro(3, rec.emit)
	if err != nil {
		t.Fatalf("NewSynchro: %v", err)
	}
	defer s.Close()

	if err := s.Apply(Op{Kind: OpSet, Index: 1, Value: "x"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := []string{"x", "x", "x"}
	if diff := cmp.Diff(want, s.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	for _, target := range []string{"in0", "in1", "in2"} {
		if rec.get(target) != "x" {
			t.Errorf("%s = %q, want x", target, rec.get(target))
		}
	}
}

func TestSynchroBoundedEmissions(t *testing.T) {
	rec := newEmitRecorder()
	s, err := NewSynchro(3, rec.emit)
	if err != nil {
		t.Fatalf("NewSynchro: %v", err)
	}
	defer s.Close()

	initial := rec.count() // one repaint per member at construction
	if initial != 3 {
		t.Fatalf("expected 3 initial emissions, got %d", initial)
	}

	if err := s.Apply(Op{Kind: OpSet, Index: 0, Value: "q"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// One repaint per member and nothing more: the sweep terminated.
	if got := rec.count() - initial; got != 3 {
		t.Errorf("expected 3 emissions for one edit, got %d", got)
	}
}

func TestSynchroGroupsIndependent(t *testing.T) {
	recA := newEmitRecorder()
	a, err := NewSynchro(2, recA.emit)
	if err != nil {
		t.Fatalf("NewSynchro: %v", err)
	}
	defer a.Close()

	recB := newEmitRecorder()
	b, err := NewSynchro(2, recB.emit)
	if err != nil {
		t.Fatalf("NewSynchro: %v", err)
	}
	defer b.Close()

	if err := a.Apply(Op{Kind: OpSet, Index: 0, Value: "only-a"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if diff := cmp.Diff([]string{"only-a", "only-a"}, a.Values()); diff != "" {
		t.Errorf("group a mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", ""}, b.Values()); diff != "" {
		t.Errorf("group b must be untouched (-want +got):\n%s", diff)
	}
}

func TestDemoCloseStopsEmissions(t *testing.T) {
	rec := newEmitRecorder()
	s, err := NewSynchro(2, rec.emit)
	if err != nil {
		t.Fatalf("NewSynchro: %v", err)
	}

	s.Close()
	before := rec.count()
	if err := s.Apply(Op{Kind: OpSet, Index: 0, Value: "after"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec.count() != before {
		t.Errorf("expected no emissions after Close, got %d new", rec.count()-before)
	}
	// The write itself still lands in the cell, but no longer mirrors.
	if s.Values()[1] != "" {
		t.Errorf("expected no mirroring after Close, got %q", s.Values()[1])
	}
}
