package cart

import (
	"fmt"

	"github.com/quentik/gbcore/internal/bus"
)

// Cartridge is the bus-facing side of a cartridge: the ROM window at
// 0x0000–0x7FFF and external RAM at 0xA000–0xBFFF.
type Cartridge interface {
	bus.Handler
}

// New picks an implementation from the ROM header. Bank controllers are
// not supported here; anything beyond ROM-only is a construction error
// the loader must surface. ROMs too small to carry a header are treated
// as ROM-only to keep homebrew and test fragments runnable.
func New(rom []byte) (Cartridge, error) {
	h, err := ParseHeader(rom)
	if err != nil {
		return NewROMOnly(rom, 0), nil
	}
	switch h.CartType {
	case 0x00, 0x08, 0x09:
		return NewROMOnly(rom, h.RAMSizeBytes), nil
	default:
		return nil, fmt.Errorf("cart: unsupported mapper %#02x (%s)", h.CartType, h.CartTypeStr)
	}
}
