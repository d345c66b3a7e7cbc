package bus

import (
	"fmt"
	"io"
	"log"
)

// ReadResult is a handler's answer to a read probe. A handler either
// replaces the value the CPU sees or passes to the next handler in
// registration order.
type ReadResult struct {
	value   byte
	replace bool
}

// ReadReplace makes the bus return v for this read.
func ReadReplace(v byte) ReadResult { return ReadResult{value: v, replace: true} }

// ReadPass defers to the next handler (or the backing byte).
func ReadPass() ReadResult { return ReadResult{} }

type writeKind int

const (
	writePass writeKind = iota
	writeReplace
	writeBlock
)

// WriteResult is a handler's answer to a write. Replace stores a
// (possibly rewritten) value into the backing byte, Block swallows the
// write entirely, Pass defers to the next handler.
type WriteResult struct {
	value byte
	kind  writeKind
}

func WriteReplace(v byte) WriteResult { return WriteResult{value: v, kind: writeReplace} }
func WritePass() WriteResult          { return WriteResult{kind: writePass} }
func WriteBlock() WriteResult         { return WriteResult{kind: writeBlock} }

// Handler observes or overrides accesses to a registered address range.
// Handlers may read back through the bus, but a handler re-entered for
// an address it is already serving is skipped on reads and blocked on
// writes.
type Handler interface {
	Read(b *Bus, addr uint16) ReadResult
	Write(b *Bus, addr uint16, value byte) WriteResult
}

// entry is shared across every address of one registration, so the
// reentry guard covers the registration as a whole.
type entry struct {
	h    Handler
	busy bool
}

// Bus is the 64 KiB CPU-visible address space: an ordered handler list
// per address in front of a flat backing array. Echo RAM at
// 0xE000–0xFDFF aliases 0xC000–0xDDFF for both reads and writes.
// Addresses no handler claims fall through to the backing array.
type Bus struct {
	handlers map[uint16][]*entry
	mem      [0x10000]byte
	logger   *log.Logger
}

func New() *Bus {
	return &Bus{
		handlers: make(map[uint16][]*entry),
		logger:   log.New(io.Discard, "", 0),
	}
}

// SetLogger routes bus diagnostics (handler reentry) to l.
func (b *Bus) SetLogger(l *log.Logger) {
	if l != nil {
		b.logger = l
	}
}

// Register attaches h to the inclusive range [lo, hi]. Handlers stack:
// the first registered gets the first look at every access.
func (b *Bus) Register(lo, hi uint16, h Handler) error {
	if lo > hi {
		return fmt.Errorf("bus: invalid handler range %04X-%04X", lo, hi)
	}
	e := &entry{h: h}
	for addr := uint32(lo); addr <= uint32(hi); addr++ {
		b.handlers[uint16(addr)] = append(b.handlers[uint16(addr)], e)
	}
	return nil
}

// mirror folds echo-RAM addresses onto work RAM.
func mirror(addr uint16) uint16 {
	if addr >= 0xE000 && addr <= 0xFDFF {
		return addr - 0x2000
	}
	return addr
}

func (b *Bus) Read(addr uint16) byte {
	for _, e := range b.handlers[addr] {
		if e.busy {
			b.logger.Printf("bus: recursive read at %04X, skipping handler", addr)
			continue
		}
		e.busy = true
		r := e.h.Read(b, addr)
		e.busy = false
		if r.replace {
			return r.value
		}
	}
	return b.mem[mirror(addr)]
}

func (b *Bus) Write(addr uint16, value byte) {
	for _, e := range b.handlers[addr] {
		if e.busy {
			b.logger.Printf("bus: recursive write at %04X, blocking", addr)
			return
		}
		e.busy = true
		w := e.h.Write(b, addr, value)
		e.busy = false
		switch w.kind {
		case writeReplace:
			b.mem[mirror(addr)] = w.value
			return
		case writeBlock:
			return
		}
	}
	b.mem[mirror(addr)] = value
}
