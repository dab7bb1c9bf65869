package mmu

// Mode is the PPU's current scan phase, as observed by the MMU for
// VRAM/OAM access gating. The pixel pipeline that produces it is out
// of scope for this core; the MMU only ever reads it.
type Mode uint8

const (
	// HBlank is the horizontal blanking phase; VRAM and OAM are both
	// accessible.
	HBlank Mode = 0
	// VBlank is the vertical blanking phase; VRAM and OAM are both
	// accessible.
	VBlank Mode = 1
	// ScanOAM is the phase in which the PPU reads OAM to build the
	// scanline's sprite list; OAM is inaccessible to the CPU.
	ScanOAM Mode = 2
	// ScanVRAM is the phase in which the PPU reads VRAM to render the
	// scanline; both VRAM and OAM are inaccessible to the CPU.
	ScanVRAM Mode = 3
)

// gpuState is the snapshot of PPU-owned state the MMU needs in order
// to gate VRAM/OAM access and answer LCDC/STAT/LY/LYC/SCX/SCY reads.
// An external GPU drives it through the setters below between CPU
// steps; the MMU never advances it on its own.
type gpuState struct {
	mode Mode
	line uint8

	lcdc uint8
	stat uint8 // only bits 3-6 (interrupt-enable selects) are stored; bits 0-2 are derived
	scy  uint8
	scx  uint8
	lyc  uint8
}

const lcdPower = 1 << 7

func (g *gpuState) lcdOn() bool {
	return g.lcdc&lcdPower != 0
}

// SetMode is called by the external GPU when it changes scan phase.
func (m *MMU) SetMode(mode Mode) {
	m.gpu.mode = mode
}

// SetLine is called by the external GPU when it advances LY.
func (m *MMU) SetLine(line uint8) {
	m.gpu.line = line
}

// Mode returns the GPU phase currently gating VRAM/OAM access.
func (m *MMU) Mode() Mode {
	return m.gpu.mode
}
