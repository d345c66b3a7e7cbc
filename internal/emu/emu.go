package emu

import (
	"fmt"
	"io"
	"log"

	"github.com/quentik/gbcore/internal/bus"
	"github.com/quentik/gbcore/internal/cart"
	"github.com/quentik/gbcore/internal/cpu"
	"github.com/quentik/gbcore/internal/interrupt"
	"github.com/quentik/gbcore/internal/serial"
	"github.com/quentik/gbcore/internal/timer"
)

// Session owns one whole machine: bus, cartridge, interrupt controller,
// peripherals and CPU. Handlers are registered once at construction and
// live for the session.
type Session struct {
	cfg Config

	bus    *bus.Bus
	ic     *interrupt.Controller
	timer  *timer.Timer
	serial *serial.Port
	cpu    *cpu.CPU

	header *cart.Header
	boot   *cart.BootROM
	spy    *ResultSpy

	logger *log.Logger
}

// New wires a session around the given cartridge ROM. bootROM may be
// nil; without one the CPU starts from the post-boot state at 0x0100.
func New(cfg Config, rom, bootROM []byte) (*Session, error) {
	c, err := cart.New(rom)
	if err != nil {
		return nil, fmt.Errorf("emu: %w", err)
	}

	s := &Session{
		cfg:    cfg,
		bus:    bus.New(),
		ic:     interrupt.NewController(),
		boot:   cart.NewBootROM(bootROM),
		logger: log.New(io.Discard, "", 0),
	}
	s.header, _ = cart.ParseHeader(rom)
	s.timer = timer.New(s.ic.Request())
	s.serial = serial.New(s.ic.Request())
	if cfg.SerialOut != nil {
		s.serial.SetWriter(cfg.SerialOut)
	}

	// The boot overlay shadows low ROM, so it registers ahead of the
	// cartridge. Everything not claimed below (VRAM, WRAM, OAM, HRAM)
	// falls through to the bus backing array.
	if cfg.WatchResults {
		s.spy = &ResultSpy{logger: s.logger}
		s.bus.Register(0xA000, 0xA000, s.spy)
	}
	s.bus.Register(0x0000, 0x08FF, s.boot)
	s.bus.Register(0xFF50, 0xFF50, s.boot)
	s.bus.Register(0x0000, 0x7FFF, c)
	s.bus.Register(0xA000, 0xBFFF, c)
	s.bus.Register(0xFF0F, 0xFF0F, s.ic)
	s.bus.Register(0xFFFF, 0xFFFF, s.ic)
	s.bus.Register(0xFF01, 0xFF02, s.serial)
	s.bus.Register(0xFF04, 0xFF07, s.timer)

	s.cpu = cpu.New(s.bus, s.ic)
	if s.boot.Enabled() {
		s.cpu.Regs.PC = 0x0000
	}
	return s, nil
}

// SetLogger routes session, bus and CPU diagnostics to l.
func (s *Session) SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	s.logger = l
	s.bus.SetLogger(l)
	s.cpu.SetLogger(l)
	if s.spy != nil {
		s.spy.logger = l
	}
}

// Step runs one CPU instruction and advances the peripherals by the
// same clock budget. Interrupts a peripheral raises here are seen by
// the very next CPU step.
func (s *Session) Step() int {
	if s.cfg.Trace {
		pc := s.cpu.Regs.PC
		s.logger.Printf("PC=%04X OP=%02X A=%02X F=%02X SP=%04X",
			pc, s.bus.Read(pc), s.cpu.Regs.A, s.cpu.Regs.F.Byte(), s.cpu.Regs.SP)
	}
	clocks := s.cpu.Step()
	s.timer.Step(uint32(clocks))
	s.serial.Step(uint32(clocks))
	return clocks
}

func (s *Session) CPU() *cpu.CPU        { return s.cpu }
func (s *Session) Bus() *bus.Bus        { return s.bus }
func (s *Session) Header() *cart.Header { return s.header }
