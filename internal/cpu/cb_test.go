package cpu

import "testing"

func TestCBBitZeroOnB(t *testing.T) {
	c, _ := newTestCPU(0xCB, 0x40) // BIT 0,B
	c.B = 0x01
	c.Step()
	if c.Flag(flagZ) {
		t.Error("expected Z clear: bit 0 of B is set")
	}
	if c.Flag(flagN) {
		t.Error("expected N clear")
	}
	if !c.Flag(flagH) {
		t.Error("expected H set")
	}
	if c.Cycles() != 8 {
		t.Errorf("cycles: got %d, want 8", c.Cycles())
	}
}

func TestCBBitOnIndirectHL(t *testing.T) {
	c, _ := newTestCPU(0xCB, 0x46) // BIT 0,(HL)
	c.SetHL(0xC000)
	c.mem.Write8(0xC000, 0x00)
	c.Step()
	if !c.Flag(flagZ) {
		t.Error("expected Z set: bit 0 of 0x00 is clear")
	}
	if c.Cycles() != 12 {
		t.Errorf("cycles: got %d, want 12", c.Cycles())
	}
}

func TestCBResSetIndirectHL(t *testing.T) {
	c, _ := newTestCPU(0xCB, 0x86, 0xCB, 0xC6) // RES 0,(HL) ; SET 0,(HL)
	c.SetHL(0xC000)
	c.mem.Write8(0xC000, 0xFF)
	c.Step() // RES 0,(HL)
	if got := c.mem.Read8(0xC000); got != 0xFE {
		t.Errorf("after RES 0: got %#02x, want 0xFE", got)
	}
	if c.Cycles() != 16 {
		t.Errorf("cycles: got %d, want 16", c.Cycles())
	}
	c.Step() // SET 0,(HL)
	if got := c.mem.Read8(0xC000); got != 0xFF {
		t.Errorf("after SET 0: got %#02x, want 0xFF", got)
	}
}

func TestCBSwapRegister(t *testing.T) {
	c, _ := newTestCPU(0xCB, 0x37) // SWAP A
	c.A = 0xA5
	c.Step()
	if c.A != 0x5A {
		t.Errorf("SWAP A: got %#02x, want 0x5A", c.A)
	}
	if c.Cycles() != 8 {
		t.Errorf("cycles: got %d, want 8", c.Cycles())
	}
}
