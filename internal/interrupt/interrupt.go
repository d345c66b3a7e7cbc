package interrupt

import "github.com/quentik/gbcore/internal/bus"

// Interrupt lines in priority order, bit positions in IE/IF.
const (
	VBlank = 0
	LCD    = 1
	Timer  = 2
	Serial = 3
	Joypad = 4
)

// Vectors indexed by line.
var vectors = [5]uint16{0x40, 0x48, 0x50, 0x58, 0x60}

// lines is one 5-line mask. The reserved upper bits of the register byte
// are stored as written and read back, with no effect on dispatch.
type lines struct {
	vblank, lcd, timer, serial, joypad bool
	reserved                           byte
}

func (l *lines) set(v byte) {
	l.vblank = v&(1<<VBlank) != 0
	l.lcd = v&(1<<LCD) != 0
	l.timer = v&(1<<Timer) != 0
	l.serial = v&(1<<Serial) != 0
	l.joypad = v&(1<<Joypad) != 0
	l.reserved = v & 0xE0
}

func (l *lines) get() byte {
	var v byte
	if l.vblank {
		v |= 1 << VBlank
	}
	if l.lcd {
		v |= 1 << LCD
	}
	if l.timer {
		v |= 1 << Timer
	}
	if l.serial {
		v |= 1 << Serial
	}
	if l.joypad {
		v |= 1 << Joypad
	}
	return v | l.reserved
}

// Controller holds the IE and IF registers and answers the CPU's
// "anything pending and enabled?" question. It serves 0xFF0F and 0xFFFF
// as a bus handler.
type Controller struct {
	enable lines
	flags  lines
}

func NewController() *Controller {
	return &Controller{}
}

// Request returns the capability peripherals use to raise their line.
// Every Request mutates the one IF register this controller owns.
func (c *Controller) Request() *Request {
	return &Request{flags: &c.flags}
}

// Peek reports the highest-priority pending+enabled vector without
// clearing the flag.
func (c *Controller) Peek() (uint16, bool) {
	return c.check(false)
}

// Consume clears the highest-priority pending+enabled flag and returns
// its vector.
func (c *Controller) Consume() (uint16, bool) {
	return c.check(true)
}

func (c *Controller) check(consume bool) (uint16, bool) {
	e, f := &c.enable, &c.flags
	switch {
	case e.vblank && f.vblank:
		f.vblank = !consume
		return vectors[VBlank], true
	case e.lcd && f.lcd:
		f.lcd = !consume
		return vectors[LCD], true
	case e.timer && f.timer:
		f.timer = !consume
		return vectors[Timer], true
	case e.serial && f.serial:
		f.serial = !consume
		return vectors[Serial], true
	case e.joypad && f.joypad:
		f.joypad = !consume
		return vectors[Joypad], true
	}
	return 0, false
}

func (c *Controller) Read(_ *bus.Bus, addr uint16) bus.ReadResult {
	switch addr {
	case 0xFF0F:
		return bus.ReadReplace(c.flags.get())
	case 0xFFFF:
		return bus.ReadReplace(c.enable.get())
	}
	return bus.ReadPass()
}

func (c *Controller) Write(_ *bus.Bus, addr uint16, value byte) bus.WriteResult {
	switch addr {
	case 0xFF0F:
		c.flags.set(value)
		return bus.WriteBlock()
	case 0xFFFF:
		c.enable.set(value)
		return bus.WriteBlock()
	}
	return bus.WritePass()
}

// Request is the interrupt-request port handed to peripherals. Each
// setter is idempotent; raising an already-raised line is harmless.
type Request struct {
	flags *lines
}

func (r *Request) VBlank(v bool) { r.flags.vblank = v }
func (r *Request) LCD(v bool)    { r.flags.lcd = v }
func (r *Request) Timer(v bool)  { r.flags.timer = v }
func (r *Request) Serial(v bool) { r.flags.serial = v }
func (r *Request) Joypad(v bool) { r.flags.joypad = v }
