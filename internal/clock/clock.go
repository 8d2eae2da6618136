// Package clock is the simulator's periodic tick source.
//
// Grounded on main.go's implicit engine loop (commented-out wiring calls
// cpu.Execute() once per host iteration, with the bus trailing behind it),
// generalized into an explicit fixed-order listener chain: CPU, Memory,
// InterruptController.
package clock

import (
	"context"
	"time"
)

// Listener is ticked once per clock pulse, in registration order.
type Listener interface {
	Tick()
}

// Clock holds an ordered list of listeners and a housekeeping hook that
// runs before them on every pulse.
type Clock struct {
	listeners []Listener
	onPulse   func()
	pulses    uint64
}

// New returns a Clock with no listeners registered. onPulse, if non-nil,
// is invoked once per Tick before any listener: it is System's
// "advance all hardware ticks" housekeeping hook.
func New(onPulse func()) *Clock {
	return &Clock{onPulse: onPulse}
}

// Register appends a listener to the fixed tick order. Registration
// order is the scheduling contract: callers must register CPU, then
// Memory, then the InterruptController.
func (c *Clock) Register(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Pulses returns the number of completed ticks.
func (c *Clock) Pulses() uint64 {
	return c.pulses
}

// Tick fires one clock pulse: the housekeeping hook, then every
// listener in registration order. Used directly by tests that need
// deterministic single-stepping.
func (c *Clock) Tick() {
	c.pulses++
	if c.onPulse != nil {
		c.onPulse()
	}
	for _, l := range c.listeners {
		l.Tick()
	}
}

// Run fires Tick every period until ctx is cancelled. Intended for the
// interactive CLI; tests drive the clock with Tick directly instead.
func (c *Clock) Run(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}
