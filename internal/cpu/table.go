package cpu

// execute dispatches a fetched, non-CB opcode by its bit-field
// decomposition. Each of the four blocks below corresponds to one
// quadrant of the opcode map (x = op>>6): block 0 misc/16-bit forms,
// block 1 register-to-register loads, block 2 ALU-on-r, block 3
// control flow and immediate-operand forms.
func (c *CPU) execute(op opcode) {
	switch op.x() {
	case 0:
		c.executeBlock0(op)
	case 1:
		c.executeBlock1(op)
	case 2:
		c.executeBlock2(op)
	case 3:
		c.executeBlock3(op)
	}
}

func (c *CPU) executeBlock0(op opcode) {
	y, z := op.y(), op.z()
	switch z {
	case 0:
		switch y {
		case 0: // NOP
		case 1: // LD (nn),SP
			addr := c.pcRead16()
			lo := uint8(c.SP)
			hi := uint8(c.SP >> 8)
			c.Write8(addr, lo)
			c.Write8(addr+1, hi)
		case 2: // STOP
			c.stop()
		case 3: // JR d
			d := int8(c.pcRead8())
			c.addClock(4)
			c.AddPC(int16(d))
		default: // JR cc[y-4],d
			d := int8(c.pcRead8())
			if c.condition(y - 4) {
				c.addClock(4)
				c.AddPC(int16(d))
			}
		}
	case 1:
		if op.q() == 0 { // LD rp[p],nn
			c.SetRP(op.p(), c.pcRead16())
		} else { // ADD HL,rp[p]
			c.addClock(4)
			c.addHL(c.RP(op.p()))
		}
	case 2:
		c.executeIndirectLoad(op)
	case 3:
		c.addClock(4)
		if op.q() == 0 { // INC rp[p]
			c.SetRP(op.p(), c.RP(op.p())+1)
		} else { // DEC rp[p]
			c.SetRP(op.p(), c.RP(op.p())-1)
		}
	case 4: // INC r[y]
		c.SetR(y, c.inc8(c.R(y)))
	case 5: // DEC r[y]
		c.SetR(y, c.dec8(c.R(y)))
	case 6: // LD r[y],n
		c.SetR(y, c.pcRead8())
	case 7:
		c.executeAccumulatorOp(y)
	}
}

// executeIndirectLoad implements block 0's z=2 group: LD (BC/DE),A,
// LD A,(BC/DE), and the HL+/HL- forms, selected by p and q.
func (c *CPU) executeIndirectLoad(op opcode) {
	p, q := op.p(), op.q()
	switch p {
	case 0:
		if q == 0 {
			c.Write8(c.BC(), c.A)
		} else {
			c.A = c.Read8(c.BC())
		}
	case 1:
		if q == 0 {
			c.Write8(c.DE(), c.A)
		} else {
			c.A = c.Read8(c.DE())
		}
	case 2:
		hl := c.HL()
		if q == 0 {
			c.Write8(hl, c.A)
		} else {
			c.A = c.Read8(hl)
		}
		c.SetHL(hl + 1)
	case 3:
		hl := c.HL()
		if q == 0 {
			c.Write8(hl, c.A)
		} else {
			c.A = c.Read8(hl)
		}
		c.SetHL(hl - 1)
	}
}

// executeAccumulatorOp implements block 0's z=7 group: the single-byte
// accumulator rotates and flag instructions, selected by y.
func (c *CPU) executeAccumulatorOp(y uint8) {
	switch y {
	case 0:
		c.A = c.rlc(c.A, false)
	case 1:
		c.A = c.rrc(c.A, false)
	case 2:
		c.A = c.rl(c.A, false)
	case 3:
		c.A = c.rr(c.A, false)
	case 4:
		c.daa()
	case 5:
		c.cpl()
	case 6:
		c.scf()
	case 7:
		c.ccf()
	}
}

// executeBlock1 implements LD r[y],r[z], the 8x8 register-copy grid,
// with the one irregularity that r=6,r'=6 (opcode 0x76) is HALT
// instead of LD (HL),(HL).
func (c *CPU) executeBlock1(op opcode) {
	y, z := op.y(), op.z()
	if y == 6 && z == 6 {
		c.halt()
		return
	}
	c.SetR(y, c.R(z))
}

// executeBlock2 implements the 8 ALU ops applied to r[z], selected by
// y: ADD, ADC, SUB, SBC, AND, XOR, OR, CP.
func (c *CPU) executeBlock2(op opcode) {
	c.aluOp(op.y(), c.R(op.z()))
}

// aluOp applies ALU operation index y to operand against A, storing
// the result back into A (except CP, which only sets flags).
func (c *CPU) aluOp(y uint8, operand uint8) {
	switch y {
	case 0:
		c.A = c.add8(c.A, operand, false)
	case 1:
		c.A = c.add8(c.A, operand, c.Flag(flagC))
	case 2:
		c.A = c.sub8(c.A, operand, false)
	case 3:
		c.A = c.sub8(c.A, operand, c.Flag(flagC))
	case 4:
		c.A = c.and8(c.A, operand)
	case 5:
		c.A = c.xor8(c.A, operand)
	case 6:
		c.A = c.or8(c.A, operand)
	case 7:
		c.cp8(c.A, operand)
	}
}

func (c *CPU) executeBlock3(op opcode) {
	y, z, q, p := op.y(), op.z(), op.q(), op.p()
	switch z {
	case 0:
		c.executeBlock3Z0(y)
	case 1:
		c.executeBlock3Z1(q, p)
	case 2:
		c.executeBlock3Z2(y)
	case 3:
		c.executeBlock3Z3(y)
	case 4: // CALL cc[y],nn (y must be 0-3; 4-7 are illegal, caught below)
		if y > 3 {
			c.freeze()
			return
		}
		addr := c.pcRead16()
		if c.condition(y) {
			c.addClock(4)
			c.push16(c.PC)
			c.PC = addr
		}
	case 5:
		if q == 0 { // PUSH rp2[p]
			c.addClock(4)
			c.push16(c.RP2(p))
		} else if p == 0 { // CALL nn
			addr := c.pcRead16()
			c.addClock(4)
			c.push16(c.PC)
			c.PC = addr
		} else {
			c.freeze() // illegal: 0xDD/0xED/0xFD
		}
	case 6: // ALU op on n
		c.aluOp(y, c.pcRead8())
	case 7: // RST y*8
		c.addClock(4)
		c.push16(c.PC)
		c.PC = uint16(y) * 8
	}
}

func (c *CPU) executeBlock3Z0(y uint8) {
	switch {
	case y <= 3: // RET cc[y]
		c.addClock(4)
		if c.condition(y) {
			c.PC = c.pop16()
			c.addClock(4)
		}
	case y == 4: // LDH (n),A
		addr := 0xFF00 + uint16(c.pcRead8())
		c.Write8(addr, c.A)
	case y == 5: // ADD SP,d
		result := c.addSPSigned()
		c.addClock(8)
		c.SP = result
	case y == 6: // LDH A,(n)
		addr := 0xFF00 + uint16(c.pcRead8())
		c.A = c.Read8(addr)
	case y == 7: // LD HL,SP+d
		result := c.addSPSigned()
		c.addClock(4)
		c.SetHL(result)
	}
}

func (c *CPU) executeBlock3Z1(q, p uint8) {
	if q == 0 { // POP rp2[p]
		c.SetRP2(p, c.pop16())
		return
	}
	switch p {
	case 0: // RET
		c.PC = c.pop16()
		c.addClock(4)
	case 1: // RETI
		c.PC = c.pop16()
		c.addClock(4)
		c.ime = true
		c.imePending = false
	case 2: // JP HL
		c.PC = c.HL()
	case 3: // LD SP,HL
		c.addClock(4)
		c.SP = c.HL()
	}
}

func (c *CPU) executeBlock3Z2(y uint8) {
	switch {
	case y <= 3: // JP cc[y],nn
		addr := c.pcRead16()
		if c.condition(y) {
			c.addClock(4)
			c.PC = addr
		}
	case y == 4: // LD (C),A
		c.Write8(0xFF00+uint16(c.C), c.A)
	case y == 5: // LD (nn),A
		c.Write8(c.pcRead16(), c.A)
	case y == 6: // LD A,(C)
		c.A = c.Read8(0xFF00 + uint16(c.C))
	case y == 7: // LD A,(nn)
		c.A = c.Read8(c.pcRead16())
	}
}

func (c *CPU) executeBlock3Z3(y uint8) {
	switch y {
	case 0: // JP nn
		addr := c.pcRead16()
		c.addClock(4)
		c.PC = addr
	case 1:
		// CB prefix: handled in fetchAndExecute before reaching here.
		panic("cpu: 0xCB reached executeBlock3Z3")
	case 6: // DI
		c.di()
	case 7: // EI
		c.ei()
	default: // 2,3,4,5: illegal opcodes (0xD3,0xDB,0xE3,0xEB)
		c.freeze()
	}
}
