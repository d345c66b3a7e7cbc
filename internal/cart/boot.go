package cart

import "github.com/quentik/gbcore/internal/bus"

// Boot ROM sizes: the 256-byte DMG image and the 2304-byte CGB image
// (which skips the header window at 0x0100–0x01FF).
const (
	bootSizeDMG = 0x100
	bootSizeCGB = 0x900
)

// BootROM overlays low ROM until unmapped through 0xFF50. The unmap is
// permanent: once latched, further 0xFF50 writes are ignored.
type BootROM struct {
	data    []byte
	enabled bool
}

func NewBootROM(data []byte) *BootROM {
	return &BootROM{data: data, enabled: len(data) >= bootSizeDMG}
}

// Enabled reports whether the overlay is still mapped.
func (b *BootROM) Enabled() bool { return b.enabled }

func (b *BootROM) covers(addr uint16) bool {
	if addr < bootSizeDMG {
		return true
	}
	return len(b.data) == bootSizeCGB && addr >= 0x0200 && addr < bootSizeCGB
}

func (b *BootROM) Read(_ *bus.Bus, addr uint16) bus.ReadResult {
	if addr == 0xFF50 {
		return bus.ReadReplace(0xFF)
	}
	if b.enabled && b.covers(addr) {
		return bus.ReadReplace(b.data[addr])
	}
	return bus.ReadPass()
}

func (b *BootROM) Write(_ *bus.Bus, addr uint16, value byte) bus.WriteResult {
	if addr == 0xFF50 {
		if b.enabled && value != 0 {
			b.enabled = false
		}
		return bus.WriteBlock()
	}
	if b.enabled && b.covers(addr) {
		return bus.WriteBlock()
	}
	return bus.WritePass()
}
