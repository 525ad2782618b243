package binding

import "testing"

func TestSignalConnectEmitDispose(t *testing.T) {
	var s Signal[int]
	var got []int

	d := s.Connect(func(v int) { got = append(got, v) })
	s.Emit(1)
	d()
	d() // second call must be harmless
	s.Emit(2)

	if len(got) != 1 || got[0] != 1 {
		t.Errorf("got %v, want [1]", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSignalDisposeDuringEmit(t *testing.T) {
	var s Signal[string]
	calls := 0

	var second Disposer
	s.Connect(func(string) {
		calls++
		second()
	})
	second = s.Connect(func(string) { calls++ })

	s.Emit("x")

	if calls != 1 {
		t.Errorf("calls = %d, want 1 (second handler disposed before its turn)", calls)
	}
}

func TestScopeClosesOnceInReverse(t *testing.T) {
	var order []int
	var sc Scope

	sc.Add(func() { order = append(order, 1) })
	sc.Add(func() { order = append(order, 2) })
	sc.Add(nil)

	if sc.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sc.Len())
	}

	sc.Close()
	sc.Close()

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("order = %v, want [2 1]", order)
	}
	if !sc.Closed() {
		t.Error("Closed() = false after Close")
	}

	late := false
	sc.Add(func() { late = true })
	if !late {
		t.Error("Add on closed scope should dispose immediately")
	}
}

func TestCellNotifiesOnEverySet(t *testing.T) {
	c := NewCell(false)
	n := 0
	c.Observe(func(bool) { n++ })

	c.Set(true)
	c.Set(true)

	if n != 2 {
		t.Errorf("notifications = %d, want 2", n)
	}
}

func TestBindInitialSync(t *testing.T) {
	b := NewBinder[string](nil)
	src := NewCell("model")
	dst := NewCell("")

	b.Bind(dst, "k", src)

	if dst.Get() != "model" {
		t.Errorf("target = %q, want %q", dst.Get(), "model")
	}
}

func TestBindSuppressesEcho(t *testing.T) {
	b := NewBinder[bool](nil)
	model := NewCell(false)
	row := NewCell(false)
	b.Bind(row, "feature", model)

	modelSets, rowSets := 0, 0
	model.Observe(func(bool) { modelSets++ })
	row.Observe(func(bool) { rowSets++ })

	row.Set(true)

	if !model.Get() {
		t.Fatal("model not updated from row")
	}
	if modelSets != 1 {
		t.Errorf("model notifications = %d, want 1", modelSets)
	}
	if rowSets != 1 {
		t.Errorf("row notifications = %d, want 1 (no echo back into row)", rowSets)
	}

	model.Set(false)

	if row.Get() {
		t.Error("row not updated from model")
	}
	if rowSets != 2 {
		t.Errorf("row notifications = %d, want 2", rowSets)
	}
	if modelSets != 2 {
		t.Errorf("model notifications = %d, want 2 (no echo back into model)", modelSets)
	}
}

func TestRebindReleasesPrevious(t *testing.T) {
	b := NewBinder[int](nil)
	first := NewCell(1)
	second := NewCell(2)
	row := NewCell(0)

	b.Bind(row, "n", first)
	b.Bind(row, "n", second)

	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
	if row.Observers() != 1 {
		t.Errorf("row observers = %d, want 1", row.Observers())
	}
	if first.Observers() != 0 {
		t.Errorf("old source observers = %d, want 0", first.Observers())
	}

	first.Set(10)
	if row.Get() != 2 {
		t.Errorf("row followed released source: got %d", row.Get())
	}

	second.Set(20)
	if row.Get() != 20 {
		t.Errorf("row = %d, want 20", row.Get())
	}
}

func TestUnbindAndClose(t *testing.T) {
	b := NewBinder[int](nil)
	src := NewCell(0)
	a, c := NewCell(0), NewCell(0)

	b.Bind(a, "x", src)
	b.Bind(c, "x", src)
	b.Unbind(a, "x")

	src.Set(5)
	if a.Get() != 0 {
		t.Errorf("unbound target updated to %d", a.Get())
	}
	if c.Get() != 5 {
		t.Errorf("bound target = %d, want 5", c.Get())
	}

	b.Close()
	if b.Len() != 0 || src.Observers() != 0 {
		t.Errorf("after Close: links=%d observers=%d", b.Len(), src.Observers())
	}
}

func TestWatch(t *testing.T) {
	c := NewCell(3)
	var seen []int

	d := Watch[int](c, func(v int) { seen = append(seen, v) })
	c.Set(4)
	d()
	c.Set(5)

	if len(seen) != 2 || seen[0] != 3 || seen[1] != 4 {
		t.Errorf("seen = %v, want [3 4]", seen)
	}
}
