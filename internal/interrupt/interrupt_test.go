package interrupt

import "testing"

type fakeSink struct {
	got *Interrupt
}

func (f *fakeSink) SetPendingInterrupt(i *Interrupt) { f.got = i }

func TestTickDeliversHighestPriority(t *testing.T) {
	sink := &fakeSink{}
	c := New(sink)

	c.Accept(Interrupt{DeviceName: "A", Priority: 1})
	c.Accept(Interrupt{DeviceName: "B", Priority: 5})
	c.Accept(Interrupt{DeviceName: "C", Priority: 3})

	c.Tick()

	if sink.got == nil || sink.got.DeviceName != "B" {
		t.Fatalf("got %+v, want device B (priority 5) to win", sink.got)
	}
}

func TestTickTiesBreakByArrivalOrder(t *testing.T) {
	sink := &fakeSink{}
	c := New(sink)

	c.Accept(Interrupt{DeviceName: "first", Priority: 2})
	c.Accept(Interrupt{DeviceName: "second", Priority: 2})

	c.Tick()

	if sink.got == nil || sink.got.DeviceName != "first" {
		t.Fatalf("got %+v, want first-arrival to win a tie", sink.got)
	}
}

func TestTickWithNothingWaitingDoesNotTouchSink(t *testing.T) {
	sink := &fakeSink{}
	c := New(sink)

	c.Tick()

	if sink.got != nil {
		t.Fatalf("got %+v, want nil: an empty tick must not disturb a prior pending interrupt", sink.got)
	}
}

func TestTickEmptiesWaitingQueue(t *testing.T) {
	sink := &fakeSink{}
	c := New(sink)

	c.Accept(Interrupt{DeviceName: "A", Priority: 1})
	c.Tick()
	sink.got = nil
	c.Tick()

	if sink.got != nil {
		t.Fatalf("got %+v, want nil: the queue must be empty after the first Tick arbitrated it", sink.got)
	}
}

func TestClear(t *testing.T) {
	sink := &fakeSink{}
	c := New(sink)

	c.Accept(Interrupt{DeviceName: "A", Priority: 1})
	c.Clear()
	c.Tick()

	if sink.got != nil {
		t.Fatalf("got %+v, want nil after Clear", sink.got)
	}
}
