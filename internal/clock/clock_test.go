package clock

import "testing"

type countingListener struct{ n int }

func (c *countingListener) Tick() { c.n++ }

func TestListenersTickInRegistrationOrder(t *testing.T) {
	var order []string
	record := func(name string) Listener {
		return listenerFunc(func() { order = append(order, name) })
	}

	c := New(nil)
	c.Register(record("cpu"))
	c.Register(record("memory"))
	c.Register(record("interrupt"))

	c.Tick()

	want := []string{"cpu", "memory", "interrupt"}
	if len(order) != len(want) {
		t.Fatalf("order=%v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order=%v, want %v", order, want)
		}
	}
}

func TestOnPulseRunsBeforeListeners(t *testing.T) {
	var hookRan bool
	var listenerSawHook bool

	c := New(func() { hookRan = true })
	c.Register(listenerFunc(func() { listenerSawHook = hookRan }))

	c.Tick()

	if !listenerSawHook {
		t.Fatalf("listener ran before the onPulse housekeeping hook")
	}
}

func TestPulsesCounts(t *testing.T) {
	c := New(nil)
	l := &countingListener{}
	c.Register(l)

	for i := 0; i < 5; i++ {
		c.Tick()
	}

	if c.Pulses() != 5 {
		t.Fatalf("Pulses()=%d, want 5", c.Pulses())
	}
	if l.n != 5 {
		t.Fatalf("listener ticked %d times, want 5", l.n)
	}
}

type listenerFunc func()

func (f listenerFunc) Tick() { f() }
