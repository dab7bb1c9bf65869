// Package mmu decodes the SM83's 16-bit address space into its
// constituent regions (ROM0/ROMX/VRAM/SRAM/WRAM0/WRAMX/ECHO/OAM/
// UNUSED/IO/HRAM/IE), routes reads and writes to the owning store, and
// gates VRAM/OAM on the GPU's reported scan phase. The GPU pixel
// pipeline itself, the timer, and the joypad are external collaborators
// that only ever call into the MMU (SetMode/SetLine/RequestInterrupt);
// none of their internals live here.
package mmu

import (
	"github.com/claude/gbcore/internal/cartridge"
	"github.com/claude/gbcore/internal/interrupts"
	"github.com/claude/gbcore/internal/registers"
)

const (
	rom0Start, rom0End   = 0x0000, 0x3FFF
	romXStart, romXEnd   = 0x4000, 0x7FFF
	vramStart, vramEnd   = 0x8000, 0x9FFF
	sramStart, sramEnd   = 0xA000, 0xBFFF
	wram0Start, wram0End = 0xC000, 0xCFFF
	wramXStart, wramXEnd = 0xD000, 0xDFFF
	echoStart, echoEnd   = 0xE000, 0xFDFF
	oamStart, oamEnd     = 0xFE00, 0xFE9F
	unusedStart, unusedEnd = 0xFEA0, 0xFEFF
	ioStart, ioEnd       = 0xFF00, 0xFF7F
	hramStart, hramEnd   = 0xFF80, 0xFFFE
	ieAddr               = 0xFFFF
)

const (
	wramBankSize = 0x1000 // 4 KiB
	vramBankSize = 0x2000 // 8 KiB
	hramSize     = 127
	oamSize      = 160
)

// MMU is the Game Boy address-space decoder. It owns WRAM, VRAM, HRAM,
// OAM and the IE/IF registers directly, and delegates the ROM/SRAM
// windows to a cartridge.Mapper.
type MMU struct {
	cart         cartridge.Mapper
	cartInserted bool

	wramBank uint8
	wram     [8][wramBankSize]byte
	vramBank uint8
	vram     [2][vramBankSize]byte
	hram     [hramSize]byte
	oam      [oamSize]byte

	ie uint8
	if_ uint8

	model   registers.Model
	gbcMode bool

	// duplicateMode replicates the legacy behavior where the unused
	// echo-RAM mirror also dual-drove cartridge SRAM; off by default.
	duplicateMode bool

	gpu gpuState

	// Serial is called with each byte written to SB (0xFF01); it is the
	// hook ROM test suites use to report PASS/FAIL over "serial".
	Serial func(b byte)
}

// New builds an MMU wrapping cart for the given model. gbcMode selects
// whether WRAM/VRAM banking is actually active for GBC-family models.
func New(cart cartridge.Mapper, model registers.Model, gbcMode bool) *MMU {
	return &MMU{
		cart:         cart,
		cartInserted: cart != nil,
		wramBank:     1,
		vramBank:     0,
		model:        model,
		gbcMode:      gbcMode,
		gpu:          gpuState{mode: ScanOAM, lcdc: lcdPower},
	}
}

// Read8 returns the byte at addr, applying VRAM/OAM gating and ECHO
// mirroring. Reads of an unmapped address are a programmer error: the
// ranges above are exhaustive over uint16, so this is unreachable.
func (m *MMU) Read8(addr uint16) uint8 {
	switch {
	case addr <= rom0End:
		if !m.cartInserted {
			return 0xFF
		}
		return m.cart.Read(addr)
	case addr <= romXEnd:
		if !m.cartInserted {
			return 0xFF
		}
		return m.cart.Read(addr)
	case addr <= vramEnd:
		if m.gpu.lcdOn() && m.gpu.mode == ScanVRAM {
			return 0xFF
		}
		return m.vram[m.vramBankIndex()][addr-vramStart]
	case addr <= sramEnd:
		if !m.cartInserted {
			return 0xFF
		}
		return m.cart.ReadSRAM(addr - sramStart)
	case addr <= wram0End:
		return m.wram[0][addr-wram0Start]
	case addr <= wramXEnd:
		return m.wram[m.wramBankIndex()][addr-wramXStart]
	case addr <= echoEnd:
		return m.readEcho(addr)
	case addr <= oamEnd:
		off := addr - oamStart
		if int(off) >= len(m.oam) {
			return 0xFF
		}
		if m.gpu.lcdOn() && (m.gpu.mode == ScanOAM || m.gpu.mode == ScanVRAM) {
			return 0xFF
		}
		return m.oam[off]
	case addr <= unusedEnd:
		return 0x00
	case addr <= ioEnd:
		return m.ioRead(addr)
	case addr <= hramEnd:
		return m.hram[addr-hramStart]
	case addr == ieAddr:
		return m.ie
	}
	panic("mmu: unreachable address decode")
}

// Write8 stores value at addr, applying the same region gating as
// Read8.
func (m *MMU) Write8(addr uint16, value uint8) {
	switch {
	case addr <= rom0End, addr <= romXEnd:
		if m.cartInserted {
			m.cart.Write(addr, value)
		}
	case addr <= vramEnd:
		if !(m.gpu.lcdOn() && m.gpu.mode == ScanVRAM) {
			m.vram[m.vramBankIndex()][addr-vramStart] = value
		}
	case addr <= sramEnd:
		if m.cartInserted {
			m.cart.WriteSRAM(addr-sramStart, value)
		}
	case addr <= wram0End:
		m.wram[0][addr-wram0Start] = value
	case addr <= wramXEnd:
		m.wram[m.wramBankIndex()][addr-wramXStart] = value
	case addr <= echoEnd:
		m.writeEcho(addr, value)
	case addr <= oamEnd:
		off := addr - oamStart
		if int(off) < len(m.oam) {
			if !(m.gpu.lcdOn() && (m.gpu.mode == ScanOAM || m.gpu.mode == ScanVRAM)) {
				m.oam[off] = value
			}
		}
	case addr <= unusedEnd:
		// discarded
	case addr <= ioEnd:
		m.ioWrite(addr, value)
	case addr <= hramEnd:
		m.hram[addr-hramStart] = value
	case addr == ieAddr:
		m.ie = value
	default:
		panic("mmu: unreachable address decode")
	}
}

func (m *MMU) vramBankIndex() uint8 {
	if m.model.HasBankedRAM(m.gbcMode) {
		return m.vramBank % uint8(len(m.vram))
	}
	return 0
}

func (m *MMU) wramBankIndex() uint8 {
	bank := uint8(1)
	if m.model.HasBankedRAM(m.gbcMode) {
		bank = m.wramBank
		if bank == 0 {
			bank = 1
		}
	}
	return bank % uint8(len(m.wram))
}

func (m *MMU) readEcho(addr uint16) uint8 {
	wram := m.Read8(addr - echoStart + wram0Start)
	if !m.duplicateMode {
		return wram
	}
	sram := m.Read8(addr - echoStart + sramStart)
	return wram & sram
}

func (m *MMU) writeEcho(addr uint16, value uint8) {
	m.Write8(addr-echoStart+wram0Start, value)
	if m.duplicateMode {
		m.Write8(addr-echoStart+sramStart, value)
	}
}

// Read16 returns the little-endian word at addr and addr+1.
func (m *MMU) Read16(addr uint16) uint16 {
	lo := m.Read8(addr)
	hi := m.Read8(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// Write16 stores value little-endian at addr and addr+1.
func (m *MMU) Write16(addr uint16, value uint16) {
	m.Write8(addr, uint8(value))
	m.Write8(addr+1, uint8(value>>8))
}

// RequestInterrupt sets bit in IF, as an external GPU/timer/serial/
// joypad collaborator would when its condition fires.
func (m *MMU) RequestInterrupt(bit interrupts.Bit) {
	m.if_ |= 1 << bit
}

// PendingInterrupts returns the set of interrupt bits that are both
// enabled (IE) and requested (IF).
func (m *MMU) PendingInterrupts() uint8 {
	return m.ie & m.if_ & interrupts.Mask
}

// ClearInterrupt clears bit in IF; called by the CPU once it has
// begun servicing that interrupt.
func (m *MMU) ClearInterrupt(bit uint8) {
	m.if_ &^= 1 << bit
}

// SetDuplicateMode toggles the legacy echo/SRAM dual-drive behavior.
// Off by default.
func (m *MMU) SetDuplicateMode(on bool) {
	m.duplicateMode = on
}
