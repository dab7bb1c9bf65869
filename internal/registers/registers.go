// Package registers implements the SM83 register file: eight 8-bit
// registers with paired 16-bit views, the four condition flags packed
// into the high nibble of F, and the program counter / stack pointer.
package registers

// Flag is a bit position within the F register. Only the upper nibble
// of F is meaningful; the lower nibble reads and writes as zero.
type Flag = uint8

const (
	// FlagZero (Z) is set when the result of an operation is 0.
	FlagZero Flag = 1 << 7
	// FlagSubtract (N) is set when the last ALU operation was a subtraction.
	// DAA reads it to decide whether to add or subtract its correction.
	FlagSubtract Flag = 1 << 6
	// FlagHalfCarry (H) is set on a carry out of bit 3 (8-bit ops) or
	// bit 11 (16-bit ADD HL).
	FlagHalfCarry Flag = 1 << 5
	// FlagCarry (C) is set on a carry out of bit 7 (8-bit ops) or
	// bit 15 (16-bit ops).
	FlagCarry Flag = 1 << 4
)

// Model identifies which physical Game Boy variant the register file
// was reset for. The reset values of A/B/C/D/E/H/L and the initial F
// flags depend on it.
type Model uint8

const (
	// GB is the original DMG (dot-matrix) Game Boy.
	GB Model = iota
	// GBP is the Game Boy Pocket / Game Boy Light (also MGB).
	GBP
	// SGB is the Super Game Boy.
	SGB
	// SGB2 is the Super Game Boy 2.
	SGB2
	// GBC is the Game Boy Color.
	GBC
	// GBA is the Game Boy Advance, running in Game Boy compatibility mode.
	GBA
	// GBASP is the Game Boy Advance SP, running in Game Boy compatibility mode.
	GBASP
)

// Seed is the eight-byte power-on value of A, F, B, C, D, E, H, L.
type Seed [8]uint8

// seeds gives the reset register values per model. A GBC-family device
// (GBC, GBA, GBASP) seeds differently depending on whether it is
// actually running a color-aware title (gbcMode) or a DMG title in
// compatibility mode; SeedFor selects between the two tables below.
var seeds = map[Model]Seed{
	GB:    {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	GBP:   {0xFF, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	SGB:   {0x01, 0x00, 0x00, 0x14, 0x00, 0x00, 0xC0, 0x60},
	SGB2:  {0xFF, 0x00, 0x00, 0x14, 0x00, 0x00, 0xC0, 0x60},
	GBC:   {0x11, 0xB0, 0x00, 0x00, 0x00, 0x08, 0x00, 0x7C},
	GBA:   {0x11, 0xB0, 0x01, 0x00, 0x00, 0x08, 0x00, 0x7C},
	GBASP: {0x11, 0xB0, 0x01, 0x00, 0x00, 0x08, 0x00, 0x7C},
}

var seedsGBCMode = map[Model]Seed{
	GBC:   {0x11, 0x80, 0x00, 0x00, 0x00, 0x08, 0x00, 0x7C},
	GBA:   {0x11, 0x80, 0x01, 0x00, 0x00, 0x08, 0x00, 0x7C},
	GBASP: {0x11, 0x80, 0x01, 0x00, 0x00, 0x08, 0x00, 0x7C},
}

// HasBankedRAM reports whether model m exposes banked WRAM (8x4 KiB,
// switchable via SVBK) and VRAM (2x8 KiB, switchable via VBK). Only
// GBC-family hardware running in color mode does; DMG-family hardware
// and any GBC-family device running a DMG title always uses bank 1 of
// WRAM and bank 0 of VRAM.
func (m Model) HasBankedRAM(gbcMode bool) bool {
	if !gbcMode {
		return false
	}
	switch m {
	case GBC, GBA, GBASP:
		return true
	default:
		return false
	}
}

// SeedFor returns the power-on register seed for model m. gbcMode only
// affects the GBC-family models, selecting between DMG-compatibility
// and native color initialization.
func SeedFor(m Model, gbcMode bool) Seed {
	if gbcMode {
		if s, ok := seedsGBCMode[m]; ok {
			return s
		}
	}
	if s, ok := seeds[m]; ok {
		return s
	}
	return seeds[GB]
}

// File is the SM83 register file: A, F, B, C, D, E, H, L plus the
// 16-bit SP and PC. The paired accessors (AF, BC, DE, HL) compose the
// two halves as (high<<8)|low; nothing in File aliases the same byte
// twice, so there is no separate storage for the pairs.
type File struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8

	SP uint16
	PC uint16
}

// Init assigns A/F/B/C/D/E/H/L from seed and resets SP/PC to their
// fixed post-boot-ROM values. F's low nibble is masked to zero even if
// the seed has it set.
func (f *File) Init(seed Seed) {
	f.A = seed[0]
	f.SetF(seed[1])
	f.B = seed[2]
	f.C = seed[3]
	f.D = seed[4]
	f.E = seed[5]
	f.H = seed[6]
	f.L = seed[7]
	f.SP = 0xFFFE
	f.PC = 0x0100
}

// SetF sets the F register, masking the low nibble to zero — on real
// hardware those four bits do not exist.
func (f *File) SetF(value uint8) {
	f.F = value & 0xF0
}

// AF returns the paired A/F view.
func (f *File) AF() uint16 { return uint16(f.A)<<8 | uint16(f.F) }

// SetAF sets A and F from a 16-bit value, masking F's low nibble.
func (f *File) SetAF(value uint16) {
	f.A = uint8(value >> 8)
	f.SetF(uint8(value))
}

// BC returns the paired B/C view.
func (f *File) BC() uint16 { return uint16(f.B)<<8 | uint16(f.C) }

// SetBC sets B and C from a 16-bit value.
func (f *File) SetBC(value uint16) {
	f.B = uint8(value >> 8)
	f.C = uint8(value)
}

// DE returns the paired D/E view.
func (f *File) DE() uint16 { return uint16(f.D)<<8 | uint16(f.E) }

// SetDE sets D and E from a 16-bit value.
func (f *File) SetDE(value uint16) {
	f.D = uint8(value >> 8)
	f.E = uint8(value)
}

// HL returns the paired H/L view.
func (f *File) HL() uint16 { return uint16(f.H)<<8 | uint16(f.L) }

// SetHL sets H and L from a 16-bit value.
func (f *File) SetHL(value uint16) {
	f.H = uint8(value >> 8)
	f.L = uint8(value)
}

// AddPC adds a signed delta to PC, wrapping modulo 2^16.
func (f *File) AddPC(delta int16) {
	f.PC = uint16(int32(f.PC) + int32(delta))
}

// AddSP adds a signed delta to SP, wrapping modulo 2^16.
func (f *File) AddSP(delta int16) {
	f.SP = uint16(int32(f.SP) + int32(delta))
}

// Flag reports whether the given flag bit is set in F.
func (f *File) Flag(flag Flag) bool {
	return f.F&flag != 0
}

// SetFlag sets or clears the given flag bit in F.
func (f *File) SetFlag(flag Flag, set bool) {
	if set {
		f.F |= flag
	} else {
		f.F &^= flag
	}
}
