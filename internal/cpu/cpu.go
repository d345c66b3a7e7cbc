package cpu

import (
	"io"
	"log"

	"github.com/quentik/gbcore/internal/bus"
	"github.com/quentik/gbcore/internal/interrupt"
)

// CPU is the instruction interpreter. Step executes one instruction (or
// one interrupt dispatch, or one halted no-op) and returns the elapsed
// clock cycles; the session forwards that count to the peripherals.
type CPU struct {
	Regs Registers
	IME  bool

	halted    bool
	eiPending bool

	bus    *bus.Bus
	ic     *interrupt.Controller
	logger *log.Logger
}

func New(b *bus.Bus, ic *interrupt.Controller) *CPU {
	return &CPU{
		Regs:   NewRegisters(),
		bus:    b,
		ic:     ic,
		logger: log.New(io.Discard, "", 0),
	}
}

// SetLogger routes CPU diagnostics (illegal opcodes, STOP) to l.
func (c *CPU) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// Bus exposes the underlying bus for tools and tests.
func (c *CPU) Bus() *bus.Bus { return c.bus }

// Halted reports whether the CPU is parked on a HALT.
func (c *CPU) Halted() bool { return c.halted }

// Step runs the CPU for one instruction boundary:
//
//  1. a halted CPU with nothing pending idles for one quantum;
//  2. any pending line ends HALT, whatever IME says;
//  3. with IME set, a pending+enabled line is dispatched;
//  4. otherwise fetch, decode (CB-prefixed or not) and execute.
func (c *CPU) Step() int {
	if c.halted {
		if _, ok := c.ic.Peek(); !ok {
			return 4
		}
		c.halted = false
	}

	if c.IME {
		if vec, ok := c.ic.Consume(); ok {
			c.IME = false
			c.eiPending = false
			c.push16(c.Regs.PC)
			c.Regs.PC = vec
			return 20
		}
	}

	// An EI from the previous instruction lands after this one.
	enableAfter := c.eiPending

	op := c.fetch8()
	var inst *instruction
	if op == 0xCB {
		op = c.fetch8()
		inst = cbTable[op]
	} else {
		inst = unprefixed[op]
	}
	if inst == nil {
		// Hard-illegal encodings lock up real silicon; here they idle.
		c.logger.Printf("cpu: illegal opcode %02X at %04X", op, c.Regs.PC-1)
		inst = &illegalNop
	}

	t := inst.exec(c)

	if enableAfter && c.eiPending {
		c.IME = true
		c.eiPending = false
	}

	if t == conditional && inst.condClocks != 0 {
		return inst.condClocks
	}
	return inst.clocks
}

func (c *CPU) fetch8() byte {
	v := c.bus.Read(c.Regs.PC)
	c.Regs.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return hi<<8 | lo
}

// push16 stores high then low at decreasing SP.
func (c *CPU) push16(v uint16) {
	c.Regs.SP--
	c.bus.Write(c.Regs.SP, byte(v>>8))
	c.Regs.SP--
	c.bus.Write(c.Regs.SP, byte(v))
}

// pop16 reads low then high at increasing SP.
func (c *CPU) pop16() uint16 {
	lo := uint16(c.bus.Read(c.Regs.SP))
	c.Regs.SP++
	hi := uint16(c.bus.Read(c.Regs.SP))
	c.Regs.SP++
	return hi<<8 | lo
}
