package timer

import (
	"github.com/quentik/gbcore/internal/bus"
	"github.com/quentik/gbcore/internal/interrupt"
)

const divPeriod = 256

// TIMA clocks per increment, indexed by TAC[1:0].
var rates = [4]uint32{1024, 16, 64, 256}

// Timer is the divider/timer unit at 0xFF04–0xFF07. It is stepped with
// the clock count of each CPU instruction; TIMA overflow reloads from
// TMA one step later and only then raises the timer interrupt.
type Timer struct {
	irq *interrupt.Request

	div  byte // 0xFF04
	tima byte // 0xFF05
	tma  byte // 0xFF06
	tac  byte // 0xFF07, lower 3 bits

	divClocks       uint16
	timaClocks      uint32
	overflowPending bool
}

func New(irq *interrupt.Request) *Timer {
	return &Timer{irq: irq}
}

// Step advances the unit by the given number of clock cycles.
func (t *Timer) Step(clocks uint32) {
	t.divClocks += uint16(clocks)
	for t.divClocks >= divPeriod {
		t.div++
		t.divClocks -= divPeriod
	}

	// A wrapped TIMA sits at 0x00 for one step before the reload.
	if t.overflowPending {
		t.tima = t.tma
		t.overflowPending = false
		t.irq.Timer(true)
	}

	if t.tac&0x04 == 0 {
		return
	}

	t.timaClocks += clocks
	rate := rates[t.tac&0x03]
	for t.timaClocks >= rate {
		t.timaClocks -= rate
		t.tima++
		if t.tima == 0 {
			t.overflowPending = true
		}
	}
}

func (t *Timer) Read(_ *bus.Bus, addr uint16) bus.ReadResult {
	switch addr {
	case 0xFF04:
		return bus.ReadReplace(t.div)
	case 0xFF05:
		return bus.ReadReplace(t.tima)
	case 0xFF06:
		return bus.ReadReplace(t.tma)
	case 0xFF07:
		return bus.ReadReplace(0xF8 | t.tac)
	}
	return bus.ReadPass()
}

func (t *Timer) Write(_ *bus.Bus, addr uint16, value byte) bus.WriteResult {
	switch addr {
	case 0xFF04:
		// Any write resets the divider.
		t.div = 0
		t.divClocks = 0
	case 0xFF05:
		t.tima = value
		t.overflowPending = false
	case 0xFF06:
		t.tma = value
	case 0xFF07:
		old := t.tac
		t.tac = value & 0x07
		// A new input rate restarts the sub-divider.
		if old&0x03 != t.tac&0x03 {
			t.timaClocks = 0
		}
	default:
		return bus.WritePass()
	}
	return bus.WriteBlock()
}
