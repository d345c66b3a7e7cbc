package cart

import "github.com/quentik/gbcore/internal/bus"

// ROMOnly is a cartridge without a bank controller: ROM fixed at
// 0x0000–0x7FFF, plus external RAM at 0xA000–0xBFFF when the header
// declares any.
type ROMOnly struct {
	rom []byte
	ram []byte
}

func NewROMOnly(rom []byte, ramSize int) *ROMOnly {
	c := &ROMOnly{rom: rom}
	if ramSize > 0 {
		if ramSize > 0x2000 {
			ramSize = 0x2000
		}
		c.ram = make([]byte, ramSize)
	}
	return c
}

func (c *ROMOnly) Read(_ *bus.Bus, addr uint16) bus.ReadResult {
	switch {
	case addr < 0x8000:
		if int(addr) < len(c.rom) {
			return bus.ReadReplace(c.rom[addr])
		}
		return bus.ReadReplace(0xFF)
	case addr >= 0xA000 && addr <= 0xBFFF:
		if i := int(addr - 0xA000); i < len(c.ram) {
			return bus.ReadReplace(c.ram[i])
		}
		return bus.ReadReplace(0xFF)
	}
	return bus.ReadPass()
}

func (c *ROMOnly) Write(_ *bus.Bus, addr uint16, value byte) bus.WriteResult {
	switch {
	case addr < 0x8000:
		// No MBC registers behind ROM writes; ignore.
		return bus.WriteBlock()
	case addr >= 0xA000 && addr <= 0xBFFF:
		if i := int(addr - 0xA000); i < len(c.ram) {
			c.ram[i] = value
		}
		return bus.WriteBlock()
	}
	return bus.WritePass()
}
