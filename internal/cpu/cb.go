package cpu

// executeCB dispatches a CB-prefixed opcode. The CB map reuses the
// same x/y/z bit fields as the base map, but with different meaning:
// x=0 is the rotate/shift/swap group (sub-operation selected by y),
// x=1 is BIT y,r[z], x=2 is RES y,r[z], x=3 is SET y,r[z]. z again
// selects the operand through r[z], so (HL) is handled for free by the
// same R/SetR indirection the base map uses.
func (c *CPU) executeCB(op opcode) {
	x, y, z := op.x(), op.y(), op.z()
	switch x {
	case 0:
		c.SetR(z, c.shiftRotateOp(y, c.R(z)))
	case 1:
		c.bit(y, c.R(z))
	case 2:
		c.SetR(z, c.res(y, c.R(z)))
	case 3:
		c.SetR(z, c.set(y, c.R(z)))
	}
}

// shiftRotateOp applies CB rotate/shift group member y: RLC, RRC, RL,
// RR, SLA, SRA, SWAP, SRL.
func (c *CPU) shiftRotateOp(y uint8, v uint8) uint8 {
	switch y {
	case 0:
		return c.rlc(v, true)
	case 1:
		return c.rrc(v, true)
	case 2:
		return c.rl(v, true)
	case 3:
		return c.rr(v, true)
	case 4:
		return c.sla(v)
	case 5:
		return c.sra(v)
	case 6:
		return c.swap(v)
	case 7:
		return c.srl(v)
	}
	panic("cpu: invalid CB rotate/shift selector")
}
