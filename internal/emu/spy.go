package emu

import (
	"log"
	"strings"

	"github.com/quentik/gbcore/internal/bus"
)

// ResultSpy watches the external-RAM result convention many test ROMs
// use: 0xA000 holds 0x80 while the test runs and the final status when
// it finishes, with a NUL-terminated message at 0xA004. It registers at
// 0xA000 only, so reading the message back does not re-enter it.
type ResultSpy struct {
	logger *log.Logger
	status byte
	seen   bool
}

func (s *ResultSpy) Read(_ *bus.Bus, _ uint16) bus.ReadResult {
	return bus.ReadPass()
}

func (s *ResultSpy) Write(b *bus.Bus, addr uint16, value byte) bus.WriteResult {
	if addr != 0xA000 {
		return bus.WritePass()
	}
	running := s.seen && s.status == 0x80
	s.status, s.seen = value, true
	if running && value != 0x80 {
		var msg strings.Builder
		for a := uint16(0xA004); a < 0xB000; a++ {
			ch := b.Read(a)
			if ch == 0 {
				break
			}
			msg.WriteByte(ch)
		}
		s.logger.Printf("test result: status=%02X %q", value, strings.TrimSpace(msg.String()))
	}
	return bus.WritePass()
}
