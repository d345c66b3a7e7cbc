package cpu

// Addressing modes. Every operand of the opcode tables is one of the
// types below, bound at table-build time; the read/write contracts run
// against the CPU and its bus.

type byteSrc interface {
	readByte(c *CPU) byte
}

type byteDst interface {
	writeByte(c *CPU, v byte)
}

// byteLoc is a read-modify-write operand (INC/DEC, rotates, RES/SET).
type byteLoc interface {
	byteSrc
	byteDst
}

type wordSrc interface {
	readWord(c *CPU) uint16
}

type wordDst interface {
	writeWord(c *CPU, v uint16)
}

func (r Reg8) readByte(c *CPU) byte     { return c.Regs.Read8(r) }
func (r Reg8) writeByte(c *CPU, v byte) { c.Regs.Write8(r, v) }

func (r Reg16) readWord(c *CPU) uint16     { return c.Regs.Read16(r) }
func (r Reg16) writeWord(c *CPU, v uint16) { c.Regs.Write16(r, v) }

// imm8 fetches the byte following the opcode.
type imm8 struct{}

func (imm8) readByte(c *CPU) byte { return c.fetch8() }

// imm16 fetches the little-endian word following the opcode.
type imm16 struct{}

func (imm16) readWord(c *CPU) uint16 { return c.fetch16() }

// mem addresses memory through a register pair.
type mem struct {
	r Reg16
}

func (m mem) readByte(c *CPU) byte     { return c.bus.Read(c.Regs.Read16(m.r)) }
func (m mem) writeByte(c *CPU, v byte) { c.bus.Write(c.Regs.Read16(m.r), v) }

// memImm addresses memory at an immediate 16-bit address. Word writes
// land little-endian (LD (nn),SP).
type memImm struct{}

func (memImm) readByte(c *CPU) byte { return c.bus.Read(c.fetch16()) }

func (memImm) writeByte(c *CPU, v byte) { c.bus.Write(c.fetch16(), v) }

func (memImm) writeWord(c *CPU, v uint16) {
	addr := c.fetch16()
	c.bus.Write(addr, byte(v))
	c.bus.Write(addr+1, byte(v>>8))
}

// zmem addresses the 0xFF00 page through register C.
type zmem struct {
	r Reg8
}

func (z zmem) readByte(c *CPU) byte     { return c.bus.Read(0xFF00 + uint16(c.Regs.Read8(z.r))) }
func (z zmem) writeByte(c *CPU, v byte) { c.bus.Write(0xFF00+uint16(c.Regs.Read8(z.r)), v) }

// zimm addresses the 0xFF00 page through an immediate byte (LDH).
type zimm struct{}

func (zimm) readByte(c *CPU) byte     { return c.bus.Read(0xFF00 + uint16(c.fetch8())) }
func (zimm) writeByte(c *CPU, v byte) { c.bus.Write(0xFF00+uint16(c.fetch8()), v) }
