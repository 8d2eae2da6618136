package cpu

import "github.com/veridian-systems/sixtick/internal/ascii"

// decodeEntry is the per-opcode decode-table row: how many operand
// bytes follow, the instruction tag recorded into IR, and the micro-op
// bound to this CPU for the Execute stage. operandBytes is a function
// rather than a constant solely for SYS (0xFF), whose operand size
// depends on the X register's value at decode time.
type decodeEntry struct {
	tag          string
	operandBytes func(c *CPU) int
	microOp      func(c *CPU) func() bool
}

func fixedOperand(n int) func(c *CPU) int {
	return func(*CPU) int { return n }
}

var decodeTable = map[byte]decodeEntry{
	0xA9: {"LDA", fixedOperand(1), func(c *CPU) func() bool { return c.execLDAImmediate }},
	0xAD: {"LDA", fixedOperand(2), func(c *CPU) func() bool { return c.execLDAAbsolute }},
	0x8D: {"STA", fixedOperand(2), func(c *CPU) func() bool { return c.execSTA }},
	0x8A: {"TXA", fixedOperand(0), func(c *CPU) func() bool { return c.execTXA }},
	0x98: {"TYA", fixedOperand(0), func(c *CPU) func() bool { return c.execTYA }},
	0x6D: {"ADC", fixedOperand(2), func(c *CPU) func() bool { return c.execADC }},
	0xA2: {"LDX", fixedOperand(1), func(c *CPU) func() bool { return c.execLDXImmediate }},
	0xAE: {"LDX", fixedOperand(2), func(c *CPU) func() bool { return c.execLDXAbsolute }},
	0xAA: {"TAX", fixedOperand(0), func(c *CPU) func() bool { return c.execTAX }},
	0xA0: {"LDY", fixedOperand(1), func(c *CPU) func() bool { return c.execLDYImmediate }},
	0xAC: {"LDY", fixedOperand(2), func(c *CPU) func() bool { return c.execLDYAbsolute }},
	0xA8: {"TAY", fixedOperand(0), func(c *CPU) func() bool { return c.execTAY }},
	0xEA: {"NOP", fixedOperand(0), func(c *CPU) func() bool { return c.execNOP }},
	0x00: {"BRK", fixedOperand(0), func(c *CPU) func() bool { return c.execBRK }},
	0xEC: {"CPX", fixedOperand(2), func(c *CPU) func() bool { return c.execCPX }},
	0xD0: {"BNE", fixedOperand(1), func(c *CPU) func() bool { return c.execBNE }},
	0xEE: {"INC", fixedOperand(2), func(c *CPU) func() bool { return c.execINC }},
	0xFF: {"SYS", sysOperandBytes, func(c *CPU) func() bool { return c.execSYS }},
}

// sysOperandBytes decides SYS's operand size at decode time by
// inspecting X: two bytes for the X=0x03 (absolute-address string
// print) form, none otherwise.
func sysOperandBytes(c *CPU) int {
	if c.X == 0x03 {
		return 2
	}
	return 0
}

func (c *CPU) execLDAImmediate() bool {
	c.A = c.operand[0]
	return false
}

func (c *CPU) execLDAAbsolute() bool {
	if c.pulseInStep == 0 {
		c.mem.TriggerRead(c.effectiveAddr())
		return true
	}
	c.A = c.mem.MDR()
	return false
}

func (c *CPU) execLDXImmediate() bool {
	c.X = c.operand[0]
	return false
}

func (c *CPU) execLDXAbsolute() bool {
	if c.pulseInStep == 0 {
		c.mem.TriggerRead(c.effectiveAddr())
		return true
	}
	c.X = c.mem.MDR()
	return false
}

func (c *CPU) execLDYImmediate() bool {
	c.Y = c.operand[0]
	return false
}

func (c *CPU) execLDYAbsolute() bool {
	if c.pulseInStep == 0 {
		c.mem.TriggerRead(c.effectiveAddr())
		return true
	}
	c.Y = c.mem.MDR()
	return false
}

// execSTA triggers the write on its first sub-pulse and idles on the
// second: one sub-pulse to trigger the write, one to let it land.
func (c *CPU) execSTA() bool {
	if c.pulseInStep == 0 {
		c.mem.WriteImmediate(c.effectiveAddr(), c.A)
		return true
	}
	return false
}

func (c *CPU) execTXA() bool { c.A = c.X; return false }
func (c *CPU) execTYA() bool { c.A = c.Y; return false }
func (c *CPU) execTAX() bool { c.X = c.A; return false }
func (c *CPU) execTAY() bool { c.Y = c.A; return false }
func (c *CPU) execNOP() bool { return false }

func (c *CPU) execBRK() bool {
	c.host.Stop()
	return false
}

// execADC sums A, the addressed memory operand, and, if useCarry was
// selected at startup, the carry flag. Z is deliberately left untouched,
// unlike a real 6502's ADC.
func (c *CPU) execADC() bool {
	if c.pulseInStep == 0 {
		c.mem.TriggerRead(c.effectiveAddr())
		return true
	}
	carry := 0
	if c.useCarry && c.C {
		carry = 1
	}
	sum := int(c.A) + int(c.mem.MDR()) + carry
	c.C = sum > 0xFF
	c.A = byte(sum & 0xFF)
	return false
}

func (c *CPU) execCPX() bool {
	if c.pulseInStep == 0 {
		c.mem.TriggerRead(c.effectiveAddr())
		return true
	}
	m := c.mem.MDR()
	c.Z = c.X == m
	c.C = c.X >= m
	return false
}

// execBNE takes its offset from operand[0], sign-extended, measured from
// PC as it stands once both opcode and operand have been fetched.
func (c *CPU) execBNE() bool {
	if !c.Z {
		offset := int8(c.operand[0])
		c.PC = uint16(int32(c.PC) + int32(offset))
	}
	return false
}

// execINC only reads and computes; it latches writeAddr/writeVal for the
// Writeback stage to commit.
func (c *CPU) execINC() bool {
	if c.pulseInStep == 0 {
		c.mem.TriggerRead(c.effectiveAddr())
		return true
	}
	v := c.mem.MDR() + 1
	c.writeAddr = c.effectiveAddr()
	c.writeVal = v
	c.writePending = true
	return false
}

// execSYS dispatches on X: 0x01 prints Y as a decimal string, 0x02/0x03
// stream a null-terminated string from zero-page (Y) or the 16-bit
// operand respectively.
func (c *CPU) execSYS() bool {
	switch c.X {
	case 0x01:
		c.updateOutputDecimal(c.Y)
		return false
	case 0x02, 0x03:
		return c.execSYSPrintString()
	default:
		c.fail(ErrInvalidSyscall)
		return false
	}
}

func (c *CPU) execSYSPrintString() bool {
	if c.pulseInStep == 0 {
		if c.X == 0x02 {
			c.sysCursor = uint16(c.Y)
		} else {
			c.sysCursor = c.effectiveAddr()
		}
	}

	if c.pulseInStep%2 == 0 {
		c.mem.TriggerRead(c.sysCursor)
		return true
	}

	b := c.mem.MDR()
	if b == 0x00 {
		return false
	}
	c.output = append(c.output, ascii.Decode(b))
	c.sysCursor++
	return true
}
