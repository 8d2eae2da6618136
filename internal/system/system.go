// Package system is the top-level coordinator: it wires Memory, MMU,
// CPU, Clock, and InterruptController into the fixed tick order, owns
// program start/stop, and validates a finished run's registers against
// an optional oracle.
//
// Grounded on main.go's commented-out wiring (bus → CPU → chips → GUI,
// guarded by explicit Stop/error handling) and cpu_6502_runner.go's
// LoadProgram/Reset shape, both generalized from "one free-running 6502"
// into a clocked multi-component assembly.
package system

import (
	"context"
	"time"

	"github.com/veridian-systems/sixtick/internal/clock"
	"github.com/veridian-systems/sixtick/internal/cpu"
	"github.com/veridian-systems/sixtick/internal/diag"
	"github.com/veridian-systems/sixtick/internal/hostio"
	"github.com/veridian-systems/sixtick/internal/interrupt"
	"github.com/veridian-systems/sixtick/internal/memory"
	"github.com/veridian-systems/sixtick/internal/mmu"
)

// Config enumerates the startup options: whether to emit diagnostics and
// whether ADC folds the carry flag into its sum. ClockPeriod only
// matters to RunInteractive; RunProgram steps the clock directly and
// ignores it.
type Config struct {
	Debug       bool
	UseCarry    bool
	ClockPeriod time.Duration
}

// Program is an ordered sequence of bytes plus an optional expected
// register snapshot. The producer (menu, file, test) is a collaborator
// outside the core.
type Program struct {
	Name     string
	Code     []byte
	Expected *cpu.Snapshot
}

// RunResult reports what a finished program left behind: its console
// output, its final registers, whether it matched its oracle (vacuously
// true when there is none), and how many ticks the run consumed.
type RunResult struct {
	Output    string
	Snapshot  cpu.Snapshot
	Passed    bool
	TicksUsed uint64
}

// System owns Memory, MMU, CPU, Clock, and InterruptController for its
// entire lifetime; nothing else constructs or destroys them. The
// keyboard is attached separately since it only exists for interactive
// runs.
type System struct {
	mem   *memory.Memory
	mmu   *mmu.MMU
	cpu   *cpu.CPU
	clock *clock.Clock
	intc  *interrupt.Controller
	kbd   *hostio.Keyboard

	log *diag.Logger

	running bool
	ticks   uint64
	cancel  context.CancelFunc
}

// New builds a fully wired, stopped System. Listener registration order
// is fixed at CPU, then Memory, then InterruptController; this is the
// scheduling contract the rest of the package relies on.
func New(cfg Config) *System {
	log := diag.New(cfg.Debug)

	mem := memory.New()
	mmuInst := mmu.New(mem)

	s := &System{mem: mem, mmu: mmuInst, log: log}

	s.cpu = cpu.New(mmuInst, s, cfg.UseCarry, log)
	s.intc = interrupt.New(s.cpu)
	s.clock = clock.New(s.tickHousekeeping)

	s.clock.Register(s.cpu)
	s.clock.Register(s.mem)
	s.clock.Register(s.intc)

	return s
}

func (s *System) tickHousekeeping() {
	s.ticks++
}

// Running implements cpu.Host: the pipeline is a no-op on any tick where
// this reports false.
func (s *System) Running() bool { return s.running }

// Stop implements cpu.Host's cancellation contract: it halts the
// pipeline, silences the keyboard, clears the interrupt queue, and
// cancels any running interactive clock. An in-flight tick always
// completes; only the next scheduled tick becomes a no-op.
func (s *System) Stop() {
	s.running = false
	s.intc.Clear()
	if s.kbd != nil {
		s.kbd.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
}

// AttachKeyboard wires a keyboard reader as the interrupt controller's
// inbound source and starts it. Only used by the interactive CLI; tests
// inject interrupts directly via Controller().Accept.
func (s *System) AttachKeyboard() error {
	kbd := hostio.New(s.intc)
	if err := kbd.Start(); err != nil {
		return err
	}
	s.kbd = kbd
	return nil
}

// Controller exposes the interrupt controller so callers such as tests
// can feed it interrupts directly. The keyboard reader is wired to it by
// AttachKeyboard instead.
func (s *System) Controller() *interrupt.Controller { return s.intc }

// Memory exposes the wired memory for direct peek/poke access that does
// not go through the MAR/MDR protocol.
func (s *System) Memory() *memory.Memory { return s.mem }

// CPU exposes the wired CPU for introspection (pipeline stage, register
// snapshot) without duplicating accessors on System.
func (s *System) CPU() *cpu.CPU { return s.cpu }

// Ticks returns the number of completed clock pulses since construction.
func (s *System) Ticks() uint64 { return s.ticks }

// Tick advances the system by exactly one clock pulse. Exposed for
// tests that need to single-step and assert invariants between ticks.
func (s *System) Tick() { s.clock.Tick() }

// Load resets the CPU and queues program for loading starting at
// address 0x0000, then marks the system running. The pipeline stays
// idle until the MMU reports the load has drained.
func (s *System) Load(program []byte) {
	s.running = true
	s.cpu.Reset()
	s.mmu.SetProgram(program)
}

// IsLoading reports whether the MMU is still draining the program-load
// queue.
func (s *System) IsLoading() bool {
	return s.mmu.IsProgramLoading()
}

// RunProgram loads and runs p to completion (or until maxTicks is
// exhausted as a safety bound against a program that never executes
// BRK or receives the quit key), then reports its result against
// p.Expected.
func (s *System) RunProgram(p Program, maxTicks uint64) RunResult {
	s.Load(p.Code)

	var i uint64
	for ; i < maxTicks && s.Running(); i++ {
		s.clock.Tick()
	}

	snap := s.cpu.Snapshot()
	passed := p.Expected == nil || snap == *p.Expected
	return RunResult{
		Output:    s.cpu.Output(),
		Snapshot:  snap,
		Passed:    passed,
		TicksUsed: i,
	}
}

// RunInteractive loads program, attaches the real keyboard, and drives
// the clock on a real timer at period until Stop is called or ctx is
// cancelled.
func (s *System) RunInteractive(ctx context.Context, program []byte, period time.Duration) error {
	s.Load(program)
	if err := s.AttachKeyboard(); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.clock.Run(runCtx, period)
	return nil
}
