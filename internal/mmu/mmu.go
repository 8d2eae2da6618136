// Package mmu implements the stateless memory-access façade the CPU
// drives, plus the program-load queue that feeds bytes into memory one
// tick at a time.
//
// Grounded on cpu_6502_runner.go's LoadProgram (which copies a byte slice
// into the bus ahead of execution) generalized into a tick-at-a-time
// load queue, since this simulator's CPU never runs concurrently with a
// load; the MMU institutes that rule by reporting IsLoading until the
// queue drains.
package mmu

import "github.com/veridian-systems/sixtick/internal/memory"

// MMU is a non-owning façade over Memory. It never duplicates memory
// state; every accessor forwards to the wired Memory.
type MMU struct {
	mem *memory.Memory

	programQueue []byte
	loadAddress  uint16
	isLoading    bool
}

// New wires an MMU to the given memory and registers itself as that
// memory's program-load driver.
func New(mem *memory.Memory) *MMU {
	m := &MMU{mem: mem}
	mem.SetLoader(m)
	return m
}

// TriggerRead latches addr into MAR and arms a read, to complete on the
// memory's next Tick.
func (m *MMU) TriggerRead(addr uint16) {
	m.mem.SetMAR(addr)
	m.mem.QueueRead()
}

// TriggerWrite latches value into MDR and arms a write against whatever
// address is currently in MAR (the caller is responsible for having set
// it), to complete on the memory's next Tick.
func (m *MMU) TriggerWrite(value byte) {
	m.mem.SetMDR(value)
	m.mem.QueueWrite()
}

// WriteImmediate latches both MAR and MDR and arms a write in one call.
func (m *MMU) WriteImmediate(addr uint16, value byte) {
	m.mem.SetMAR(addr)
	m.mem.SetMDR(value)
	m.mem.QueueWrite()
}

// MDR forwards to the underlying memory's data latch.
func (m *MMU) MDR() byte {
	return m.mem.MDR()
}

// SetProgram resets the MMU's load state, queues the given bytes for
// loading starting at address 0x0000, and primes the first write so the
// load makes progress on the very next memory tick. Memory cells beyond
// the program keep whatever they held before.
func (m *MMU) SetProgram(program []byte) {
	m.programQueue = append([]byte(nil), program...)
	m.loadAddress = 0
	m.isLoading = len(m.programQueue) > 0
	if m.isLoading {
		m.AdvanceLoad()
	}
}

// AdvanceLoad pops the next queued byte and writes it to the next load
// address, or clears IsLoading once the queue is empty.
func (m *MMU) AdvanceLoad() {
	if len(m.programQueue) == 0 {
		m.isLoading = false
		return
	}
	b := m.programQueue[0]
	m.programQueue = m.programQueue[1:]
	m.WriteImmediate(m.loadAddress, b)
	m.loadAddress++
}

// IsProgramLoading reports whether a program load is still draining.
func (m *MMU) IsProgramLoading() bool {
	return m.isLoading
}

// IsLoading satisfies memory's loader interface.
func (m *MMU) IsLoading() bool {
	return m.isLoading
}

// Reset clears the load queue and load address and resets memory.
func (m *MMU) Reset() {
	m.programQueue = nil
	m.loadAddress = 0
	m.isLoading = false
	m.mem.Reset()
}
