// Package cpu implements the five-stage pipeline state machine: Fetch,
// Decode, Execute, Writeback, InterruptCheck.
//
// Grounded on cpu_six5go2.go's register layout and flag-bit idiom
// (setFlag/getFlag, the nzTable-style flag constants) and on
// cpu_6502_opcode_table_gen.go's decode-table-as-data shape, both
// generalized from a free-running execute-to-completion 6502 core into
// an explicit tick-by-tick pipeline with an operand-fetch stall.
package cpu

import (
	"strconv"

	"github.com/veridian-systems/sixtick/internal/ascii"
	"github.com/veridian-systems/sixtick/internal/diag"
	"github.com/veridian-systems/sixtick/internal/interrupt"
)

// Step names one of the five pipeline stages. The CPU is in exactly one
// of these between ticks.
type Step int

const (
	Fetch Step = iota
	Decode
	Execute
	Writeback
	InterruptCheck
)

func (s Step) String() string {
	switch s {
	case Fetch:
		return "Fetch"
	case Decode:
		return "Decode"
	case Execute:
		return "Execute"
	case Writeback:
		return "Writeback"
	case InterruptCheck:
		return "InterruptCheck"
	default:
		return "Unknown"
	}
}

// MemoryUnit is the slice of the MMU's surface the pipeline drives.
type MemoryUnit interface {
	TriggerRead(addr uint16)
	WriteImmediate(addr uint16, value byte)
	MDR() byte
	IsProgramLoading() bool
}

// Host is the slice of System's surface the pipeline needs: whether it
// should tick at all, and how to ask for a shutdown (BRK, or 'q'/'Q' on
// the keyboard device).
type Host interface {
	Running() bool
	Stop()
}

// Snapshot is the register/flag oracle comparison point used by the
// test harness and the CLI's PASS/FAIL report.
type Snapshot struct {
	A, X, Y byte
	Z, C    bool
}

// CPU is the pipeline state machine.
type CPU struct {
	A, X, Y byte
	Z, C    bool

	PC      uint16
	IR      string
	opcode  byte
	operand [2]byte

	step         Step
	pulseInStep  int
	fetchCount   int
	currentFetch int

	writePending bool
	writeAddr    uint16
	writeVal     byte

	executeFn func() bool

	pendingInterrupt *interrupt.Interrupt
	useCarry         bool

	mem  MemoryUnit
	host Host
	log  *diag.Logger

	output    []rune
	sysCursor uint16

	lastError error
}

// New builds a CPU wired to mem and host. useCarry selects whether ADC
// folds the carry flag into its sum.
func New(mem MemoryUnit, host Host, useCarry bool, log *diag.Logger) *CPU {
	return &CPU{mem: mem, host: host, useCarry: useCarry, log: log}
}

// Reset returns every register, flag, and pipeline register to its
// power-on state. PC starts at 0x0000, matching the convention that
// programs load starting at address 0.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.Z, c.C = false, false
	c.PC = 0
	c.IR = ""
	c.opcode = 0
	c.operand = [2]byte{}
	c.step = Fetch
	c.pulseInStep = 0
	c.fetchCount = 0
	c.currentFetch = 0
	c.writePending = false
	c.writeAddr = 0
	c.writeVal = 0
	c.executeFn = nil
	c.pendingInterrupt = nil
	c.output = nil
	c.sysCursor = 0
	c.lastError = nil
}

// Step reports the pipeline stage the CPU is currently in.
func (c *CPU) Step() Step { return c.step }

// Output returns everything SYS has printed so far, as accumulated
// runes joined into a string.
func (c *CPU) Output() string { return string(c.output) }

// Snapshot captures the register/flag state the test oracle and CLI
// report compare against.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{A: c.A, X: c.X, Y: c.Y, Z: c.Z, C: c.C}
}

// SetPendingInterrupt implements interrupt.Sink: it latches the
// controller's arbitration winner for service at the next
// InterruptCheck stage, overwriting whatever was pending (the
// controller only calls this once per tick, with at most one winner).
func (c *CPU) SetPendingInterrupt(i *interrupt.Interrupt) {
	c.pendingInterrupt = i
}

// Tick advances the pipeline by exactly one clock pulse. It implements
// clock.Listener.
func (c *CPU) Tick() {
	if !c.host.Running() {
		return
	}
	if c.mem.IsProgramLoading() {
		return
	}

	if c.fetchCount > 0 && c.currentFetch < c.fetchCount {
		c.tickOperandFetch()
		return
	}

	switch c.step {
	case Fetch:
		c.tickFetch()
	case Decode:
		c.tickDecode()
	case Execute:
		c.tickExecute()
	case Writeback:
		c.tickWriteback()
	case InterruptCheck:
		c.tickInterruptCheck()
	}
}

func (c *CPU) tickFetch() {
	switch c.pulseInStep {
	case 0:
		c.mem.TriggerRead(c.PC)
		c.pulseInStep = 1
	default:
		c.opcode = c.mem.MDR()
		c.PC++
		c.step = Decode
		c.pulseInStep = 0
	}
}

func (c *CPU) tickOperandFetch() {
	switch c.pulseInStep {
	case 0:
		c.mem.TriggerRead(c.PC)
		c.pulseInStep = 1
	default:
		c.operand[c.currentFetch] = c.mem.MDR()
		c.PC++
		c.currentFetch++
		c.pulseInStep = 0
		if c.currentFetch >= c.fetchCount {
			c.fetchCount = 0
			c.currentFetch = 0
		}
	}
}

func (c *CPU) tickDecode() {
	entry, ok := decodeTable[c.opcode]
	if !ok {
		// Never reaches Execute, so nothing will consume lastError; clear
		// it here instead of leaking it into the next instruction's check.
		c.fail(ErrUnknownOpcode)
		c.lastError = nil
		c.step = Fetch
		c.pulseInStep = 0
		return
	}

	c.fetchCount = entry.operandBytes(c)
	c.currentFetch = 0
	c.IR = entry.tag
	c.executeFn = entry.microOp(c)
	c.step = Execute
	c.pulseInStep = 0
}

func (c *CPU) tickExecute() {
	more := c.executeFn()

	if c.lastError != nil {
		c.lastError = nil
		c.abandonInstruction()
		return
	}

	if more {
		c.pulseInStep++
		return
	}

	if c.writePending {
		c.step = Writeback
	} else {
		c.step = InterruptCheck
	}
	c.pulseInStep = 0
}

func (c *CPU) abandonInstruction() {
	c.fetchCount = 0
	c.currentFetch = 0
	c.writePending = false
	c.executeFn = nil
	c.step = Fetch
	c.pulseInStep = 0
}

func (c *CPU) tickWriteback() {
	if c.writePending {
		c.mem.WriteImmediate(c.writeAddr, c.writeVal)
		c.writePending = false
	}
	c.step = InterruptCheck
	c.pulseInStep = 0
}

func (c *CPU) tickInterruptCheck() {
	if c.pendingInterrupt != nil {
		iv := c.pendingInterrupt
		c.pendingInterrupt = nil
		if iv.DeviceName == interrupt.KeyboardDevice && ascii.IsQuit(iv.Data) {
			c.host.Stop()
		} else {
			c.log.Printf("interrupt device=%s data=0x%02X serviced at pc=0x%04X", iv.DeviceName, iv.Data, c.PC)
		}
	}
	c.step = Fetch
	c.pulseInStep = 0
}

func (c *CPU) fail(err error) {
	c.lastError = err
	c.log.Printf("fault: %v pc=0x%04X opcode=0x%02X step=%s", err, c.PC, c.opcode, c.step)
}

// effectiveAddr forms the little-endian 16-bit absolute address from
// the two fetched operand bytes: operand[0] is the low byte, operand[1]
// is the high byte.
func (c *CPU) effectiveAddr() uint16 {
	return uint16(c.operand[1])<<8 | uint16(c.operand[0])
}

func (c *CPU) updateOutputDecimal(v byte) {
	c.output = append(c.output, []rune(strconv.Itoa(int(v)))...)
}
