package serial

import (
	"io"

	"github.com/quentik/gbcore/internal/bus"
	"github.com/quentik/gbcore/internal/interrupt"
)

// A full byte is 8 bits at 512 clocks each on the normal 8192 Hz clock.
const clocksPerByte = 512 * 8

// idleLine is what an unconnected link partner shifts in.
const idleLine = 0xFF

// Port is the serial link at 0xFF01 (SB) / 0xFF02 (SC). With the
// internal clock selected it acts as master and completes a transfer
// after clocksPerByte; with the external clock selected and no partner
// driving the line, the transfer never completes.
type Port struct {
	irq *interrupt.Request

	sb             byte // outgoing/incoming shift register
	recv           byte // next byte shifted in from the partner
	transferEnable bool // SC bit 7
	clockSpeed     bool // SC bit 1, CGB fast mode
	clockSelect    bool // SC bit 0, true = internal clock (master)

	clocks uint32
	sink   io.Writer // receives outgoing bytes on completion
}

func New(irq *interrupt.Request) *Port {
	return &Port{irq: irq, recv: idleLine, clockSelect: true}
}

// SetWriter attaches a sink for bytes leaving the port. Test ROMs print
// their results this way.
func (p *Port) SetWriter(w io.Writer) { p.sink = w }

// Step advances the link by the given number of clock cycles.
func (p *Port) Step(clocks uint32) {
	if !p.transferEnable || !p.clockSelect {
		// Slave mode waits for an external clock that never comes.
		return
	}
	p.clocks += clocks
	if p.clocks < clocksPerByte {
		return
	}
	if p.sink != nil {
		p.sink.Write([]byte{p.sb})
	}
	p.sb = p.recv
	p.recv = idleLine
	p.transferEnable = false
	p.clocks = 0
	p.irq.Serial(true)
}

func (p *Port) sc() byte {
	var v byte
	if p.transferEnable {
		v |= 0x80
	}
	if p.clockSpeed {
		v |= 0x02
	}
	if p.clockSelect {
		v |= 0x01
	}
	return v
}

func (p *Port) setSC(v byte) {
	p.transferEnable = v&0x80 != 0
	p.clockSpeed = v&0x02 != 0
	p.clockSelect = v&0x01 != 0
	if p.transferEnable {
		p.clocks = 0
	}
}

func (p *Port) Read(_ *bus.Bus, addr uint16) bus.ReadResult {
	switch addr {
	case 0xFF01:
		return bus.ReadReplace(p.sb)
	case 0xFF02:
		return bus.ReadReplace(0x7E | p.sc())
	}
	return bus.ReadPass()
}

func (p *Port) Write(_ *bus.Bus, addr uint16, value byte) bus.WriteResult {
	switch addr {
	case 0xFF01:
		p.sb = value
	case 0xFF02:
		p.setSC(value)
	default:
		return bus.WritePass()
	}
	return bus.WriteBlock()
}
