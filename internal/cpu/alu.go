package cpu

// setFlags writes Z, N, H, C in one call; used by every ALU helper
// below so the flag-assignment order in each is unambiguous.
func (c *CPU) setFlags(z, n, h, cy bool) {
	c.SetFlag(flagZ, z)
	c.SetFlag(flagN, n)
	c.SetFlag(flagH, h)
	c.SetFlag(flagC, cy)
}

// add8 adds b (+ carryIn, for ADC) to a.
//
// Flags: Z set if result is 0. N reset. H set on carry out of bit 3.
// C set on carry out of bit 7.
func (c *CPU) add8(a, b uint8, carryIn bool) uint8 {
	var cin uint8
	if carryIn {
		cin = 1
	}
	sum := uint16(a) + uint16(b) + uint16(cin)
	result := uint8(sum)
	c.setFlags(result == 0, false, (a&0xF)+(b&0xF)+cin > 0xF, sum > 0xFF)
	return result
}

// sub8 subtracts b (+ carryIn, for SBC) from a.
//
// Flags: Z set if result is 0. N set. H set on borrow out of bit 4.
// C set on borrow (b+carryIn > a).
func (c *CPU) sub8(a, b uint8, carryIn bool) uint8 {
	var cin uint8
	if carryIn {
		cin = 1
	}
	result := a - b - cin
	halfBorrow := int(a&0xF) - int(b&0xF) - int(cin) < 0
	borrow := int(a) - int(b) - int(cin) < 0
	c.setFlags(result == 0, true, halfBorrow, borrow)
	return result
}

// and8 ANDs b into a. Flags: Z from result, N reset, H set, C reset.
func (c *CPU) and8(a, b uint8) uint8 {
	result := a & b
	c.setFlags(result == 0, false, true, false)
	return result
}

// xor8 XORs b into a. Flags: Z from result, N/H/C reset.
func (c *CPU) xor8(a, b uint8) uint8 {
	result := a ^ b
	c.setFlags(result == 0, false, false, false)
	return result
}

// or8 ORs b into a. Flags: Z from result, N/H/C reset.
func (c *CPU) or8(a, b uint8) uint8 {
	result := a | b
	c.setFlags(result == 0, false, false, false)
	return result
}

// cp8 compares a against b without storing a result: same flags as
// sub8(a, b, false), used by CP r and CP n.
func (c *CPU) cp8(a, b uint8) {
	c.sub8(a, b, false)
}

// inc8 increments v. Flags: Z/H as usual, N reset, C preserved (INC
// never touches carry, unlike ADD).
func (c *CPU) inc8(v uint8) uint8 {
	result := v + 1
	c.SetFlag(flagZ, result == 0)
	c.SetFlag(flagN, false)
	c.SetFlag(flagH, v&0xF == 0xF)
	return result
}

// dec8 decrements v. Flags: Z/H as usual, N set, C preserved.
func (c *CPU) dec8(v uint8) uint8 {
	result := v - 1
	c.SetFlag(flagZ, result == 0)
	c.SetFlag(flagN, true)
	c.SetFlag(flagH, v&0xF == 0)
	return result
}

// addHL adds value to HL.
//
// Flags: Z not affected. N reset. H set on carry out of bit 11. C set
// on carry out of bit 15.
func (c *CPU) addHL(value uint16) {
	hl := c.HL()
	sum := uint32(hl) + uint32(value)
	c.SetFlag(flagN, false)
	c.SetFlag(flagH, (hl&0xFFF)+(value&0xFFF) > 0xFFF)
	c.SetFlag(flagC, sum > 0xFFFF)
	c.SetHL(uint16(sum))
}

// addSPSigned computes SP + the signed 8-bit immediate at PC, costing
// one pc_read and leaving the internal-cycle accounting to the two
// callers (ADD SP,d and LD HL,SP+d), whose costs differ.
//
// Flags: Z and N reset. H and C are computed as if the addition were
// an 8-bit unsigned add of the low byte of SP and the immediate byte
// (the documented, if surprising, hardware behavior: both flags derive
// from the bottom byte regardless of the immediate's sign).
func (c *CPU) addSPSigned() uint16 {
	d := int8(c.pcRead8())
	result := uint16(int32(c.SP) + int32(d))
	tmp := c.SP ^ uint16(d) ^ result
	c.setFlags(false, false, tmp&0x10 != 0, tmp&0x100 != 0)
	return result
}

// daa adjusts A after a BCD addition or subtraction, per the standard
// SM83 correction table: N selects add-mode vs subtract-mode
// correction, H/C (or the post-op range of A, in add-mode) select how
// much to apply.
//
// Flags: Z from the corrected A. N unchanged. H always reset. C set if
// the correction itself produced a carry (add-mode) or preserved if
// the input carry was already set (subtract-mode).
func (c *CPU) daa() {
	a := c.A
	var correction uint8
	carry := c.Flag(flagC)

	if c.Flag(flagN) {
		if c.Flag(flagH) {
			correction += 0x06
		}
		if carry {
			correction += 0x60
		}
		a -= correction
	} else {
		if c.Flag(flagH) || a&0xF > 0x9 {
			correction += 0x06
		}
		if carry || a > 0x99 {
			correction += 0x60
			carry = true
		}
		a += correction
	}

	c.A = a
	c.SetFlag(flagZ, a == 0)
	c.SetFlag(flagH, false)
	c.SetFlag(flagC, carry)
}

// cpl flips every bit of A. Flags: Z/C unaffected, N and H set.
func (c *CPU) cpl() {
	c.A = ^c.A
	c.SetFlag(flagN, true)
	c.SetFlag(flagH, true)
}

// scf sets the carry flag. Flags: Z unaffected, N/H reset, C set.
func (c *CPU) scf() {
	c.SetFlag(flagN, false)
	c.SetFlag(flagH, false)
	c.SetFlag(flagC, true)
}

// ccf complements the carry flag. Flags: Z unaffected, N/H reset, C
// flipped.
func (c *CPU) ccf() {
	c.SetFlag(flagN, false)
	c.SetFlag(flagH, false)
	c.SetFlag(flagC, !c.Flag(flagC))
}

// rlc rotates v left by one bit, bit 7 into both bit 0 and carry.
// zFlag selects whether Z is computed (false for RLCA, true for the
// CB-prefixed RLC r form; RLCA always clears Z).
func (c *CPU) rlc(v uint8, zFlag bool) uint8 {
	carry := v&0x80 != 0
	result := v<<1 | v>>7
	c.setFlags(zFlag && result == 0, false, false, carry)
	return result
}

// rrc rotates v right by one bit, bit 0 into both bit 7 and carry.
func (c *CPU) rrc(v uint8, zFlag bool) uint8 {
	carry := v&0x01 != 0
	result := v>>1 | v<<7
	c.setFlags(zFlag && result == 0, false, false, carry)
	return result
}

// rl rotates v left through the carry flag: carry into bit 0, bit 7
// into carry.
func (c *CPU) rl(v uint8, zFlag bool) uint8 {
	var cin uint8
	if c.Flag(flagC) {
		cin = 1
	}
	carry := v&0x80 != 0
	result := v<<1 | cin
	c.setFlags(zFlag && result == 0, false, false, carry)
	return result
}

// rr rotates v right through the carry flag: carry into bit 7, bit 0
// into carry.
func (c *CPU) rr(v uint8, zFlag bool) uint8 {
	var cin uint8
	if c.Flag(flagC) {
		cin = 0x80
	}
	carry := v&0x01 != 0
	result := v>>1 | cin
	c.setFlags(zFlag && result == 0, false, false, carry)
	return result
}

// sla shifts v left by one bit, 0 into bit 0, bit 7 into carry.
func (c *CPU) sla(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v << 1
	c.setFlags(result == 0, false, false, carry)
	return result
}

// sra shifts v right by one bit, bit 7 preserved (arithmetic shift),
// bit 0 into carry.
func (c *CPU) sra(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v>>1 | v&0x80
	c.setFlags(result == 0, false, false, carry)
	return result
}

// srl shifts v right by one bit, 0 into bit 7, bit 0 into carry.
func (c *CPU) srl(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v >> 1
	c.setFlags(result == 0, false, false, carry)
	return result
}

// swap exchanges the high and low nibbles of v.
//
// Flags: Z from result, N/H/C reset.
func (c *CPU) swap(v uint8) uint8 {
	result := v<<4 | v>>4
	c.setFlags(result == 0, false, false, false)
	return result
}

// bit tests bit n of v.
//
// Flags: Z set if the bit is clear, N reset, H set, C unaffected.
func (c *CPU) bit(n, v uint8) {
	c.SetFlag(flagZ, v&(1<<n) == 0)
	c.SetFlag(flagN, false)
	c.SetFlag(flagH, true)
}

// res clears bit n of v. No flags affected.
func (c *CPU) res(n, v uint8) uint8 {
	return v &^ (1 << n)
}

// set sets bit n of v. No flags affected.
func (c *CPU) set(n, v uint8) uint8 {
	return v | 1<<n
}
