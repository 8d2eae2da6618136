// Package memory implements the simulator's 64 KiB byte-addressable RAM.
//
// Grounded on memory_bus.go's latch-then-commit shape (SystemBus commits
// a 32-bit value to a contiguous slice under a mutex there); this module
// trims that down to a simpler single-threaded two-register (MAR/MDR)
// latch protocol, since the scheduling model here is cooperative
// single-threaded ticking, not a multi-goroutine bus.
package memory

// Size is the number of addressable bytes: the full 16-bit address space.
const Size = 65536

// Memory is 65536 bytes of RAM fronted by an address latch (MAR) and a
// data latch (MDR). A queued read or write is only performed on Tick.
type Memory struct {
	cells [Size]byte

	mar uint16
	mdr byte

	readPending  bool
	writePending bool

	loader Loader
}

// Loader is the sliver of the MMU's interface Memory needs in order to
// drive the program-load queue after committing a write, without Memory
// importing the mmu package.
type Loader interface {
	IsLoading() bool
	AdvanceLoad()
}

// New returns a zeroed Memory.
func New() *Memory {
	return &Memory{}
}

// SetLoader wires the MMU (or any Loader) whose AdvanceLoad is invoked
// after every committed write made while IsLoading reports true.
func (m *Memory) SetLoader(l Loader) {
	m.loader = l
}

// SetMAR latches the address used by the next queued operation.
func (m *Memory) SetMAR(addr uint16) { m.mar = addr }

// MAR returns the currently latched address.
func (m *Memory) MAR() uint16 { return m.mar }

// SetMDR latches the byte a queued write will commit.
func (m *Memory) SetMDR(b byte) { m.mdr = b }

// MDR returns the most recently latched or read byte.
func (m *Memory) MDR() byte { return m.mdr }

// QueueRead arms a read of cells[MAR] to complete on the next Tick.
func (m *Memory) QueueRead() { m.readPending = true }

// QueueWrite arms a write of MDR into cells[MAR] to complete on the next
// Tick.
func (m *Memory) QueueWrite() { m.writePending = true }

// Tick commits at most one pending write and one pending read. Writes
// commit before reads so a write-then-read of the same address observes
// the new value within a single tick.
func (m *Memory) Tick() {
	if m.writePending {
		m.cells[m.mar] = m.mdr
		m.writePending = false
		if m.loader != nil && m.loader.IsLoading() {
			m.loader.AdvanceLoad()
		}
	}
	if m.readPending {
		m.mdr = m.cells[m.mar]
		m.readPending = false
	}
}

// Peek reads a byte directly, bypassing the MAR/MDR protocol. Used by
// tests to inspect memory state without modelling a bus transaction.
func (m *Memory) Peek(addr uint16) byte {
	return m.cells[addr]
}

// Poke writes a byte directly, bypassing the MAR/MDR protocol. Used by
// tests to seed memory state before running a program.
func (m *Memory) Poke(addr uint16, value byte) {
	m.cells[addr] = value
}

// Reset zeroes every cell and clears both latches and pending flags.
func (m *Memory) Reset() {
	for i := range m.cells {
		m.cells[i] = 0
	}
	m.mar = 0
	m.mdr = 0
	m.readPending = false
	m.writePending = false
}
