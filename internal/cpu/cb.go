package cpu

import "fmt"

// The CB page is fully regular: the low three bits select the operand,
// bits 3–5 select the operation (or the bit number), bits 6–7 select
// the group. The table is built from that structure instead of being
// written out row by row.

var cbOperands = [8]byteLoc{RegB, RegC, RegD, RegE, RegH, RegL, mHL, RegA}
var cbOperandNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

type cbShiftOp struct {
	name string
	exec func(c *CPU, loc byteLoc) timing
}

var cbShiftOps = [8]cbShiftOp{
	{"RLC", rlc},
	{"RRC", rrc},
	{"RL", rl},
	{"RR", rr},
	{"SLA", sla},
	{"SRA", sra},
	{"SWAP", swap},
	{"SRL", srl},
}

var cbTable [256]*instruction

func init() {
	for op := 0; op < 256; op++ {
		loc := cbOperands[op&0x07]
		locName := cbOperandNames[op&0x07]
		n := uint(op>>3) & 0x07
		indirect := op&0x07 == 6

		clocks := 8
		if indirect {
			clocks = 16
		}

		var inst instruction
		switch op >> 6 {
		case 0:
			sh := cbShiftOps[n]
			inst = instruction{
				mnemonic: fmt.Sprintf("%s %s", sh.name, locName),
				clocks:   clocks,
				exec:     func(c *CPU) timing { return sh.exec(c, loc) },
			}
		case 1:
			// BIT reads but never writes, so (HL) costs 12, not 16.
			if indirect {
				clocks = 12
			}
			inst = instruction{
				mnemonic: fmt.Sprintf("BIT %d,%s", n, locName),
				clocks:   clocks,
				exec:     func(c *CPU) timing { return bit(c, n, loc) },
			}
		case 2:
			inst = instruction{
				mnemonic: fmt.Sprintf("RES %d,%s", n, locName),
				clocks:   clocks,
				exec:     func(c *CPU) timing { return res(c, n, loc) },
			}
		case 3:
			inst = instruction{
				mnemonic: fmt.Sprintf("SET %d,%s", n, locName),
				clocks:   clocks,
				exec:     func(c *CPU) timing { return set(c, n, loc) },
			}
		}
		cbTable[op] = &inst
	}
}
