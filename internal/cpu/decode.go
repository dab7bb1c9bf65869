package cpu

// opcode is a raw instruction byte, decomposed per the standard SM83
// bit-field scheme: xxyyyzzz, with p/q further splitting y as p=y>>1,
// q=y&1. Every instruction table in this package is built by iterating
// this decomposition, rather than by hand-transcribing 256 entries.
type opcode uint8

func (o opcode) x() uint8 { return uint8(o&0b1100_0000) >> 6 }
func (o opcode) y() uint8 { return uint8(o&0b0011_1000) >> 3 }
func (o opcode) z() uint8 { return uint8(o & 0b0000_0111) }
func (o opcode) p() uint8 { return o.y() >> 1 }
func (o opcode) q() uint8 { return o.y() & 1 }

// R returns the value of r[index]: B,C,D,E,H,L,(HL),A. Index 6 is the
// indirect memory operand through HL; reading it costs one memory
// access cycle, same as any other MMU read.
func (c *CPU) R(index uint8) uint8 {
	switch index {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.Read8(c.HL())
	case 7:
		return c.A
	}
	panic("cpu: invalid r[] index")
}

// SetR stores value into r[index]; index 6 writes through HL via the
// MMU, costing one memory access cycle.
func (c *CPU) SetR(index uint8, value uint8) {
	switch index {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.Write8(c.HL(), value)
	case 7:
		c.A = value
	default:
		panic("cpu: invalid r[] index")
	}
}

// RP returns rp[index]: BC, DE, HL, SP.
func (c *CPU) RP(index uint8) uint16 {
	switch index {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	case 3:
		return c.SP
	}
	panic("cpu: invalid rp[] index")
}

// SetRP stores value into rp[index].
func (c *CPU) SetRP(index uint8, value uint16) {
	switch index {
	case 0:
		c.SetBC(value)
	case 1:
		c.SetDE(value)
	case 2:
		c.SetHL(value)
	case 3:
		c.SP = value
	default:
		panic("cpu: invalid rp[] index")
	}
}

// RP2 returns rp2[index]: BC, DE, HL, AF.
func (c *CPU) RP2(index uint8) uint16 {
	if index == 3 {
		return c.AF()
	}
	return c.RP(index)
}

// SetRP2 stores value into rp2[index]; index 3 (AF) masks F's low
// nibble to zero.
func (c *CPU) SetRP2(index uint8, value uint16) {
	if index == 3 {
		c.SetAF(value)
		return
	}
	c.SetRP(index, value)
}

// condition evaluates cc[index]: NZ, Z, NC, C.
func (c *CPU) condition(index uint8) bool {
	switch index {
	case 0:
		return !c.Flag(flagZ)
	case 1:
		return c.Flag(flagZ)
	case 2:
		return !c.Flag(flagC)
	case 3:
		return c.Flag(flagC)
	}
	panic("cpu: invalid cc[] index")
}
