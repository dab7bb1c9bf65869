package cpu

import (
	"github.com/claude/gbcore/internal/mmu"
	"github.com/claude/gbcore/internal/registers"
)

// flatMapper is a cartridge.Mapper stand-in that exposes 32 KiB of ROM
// directly, with no bank switching, so tests can poke arbitrary
// opcodes at arbitrary addresses.
type flatMapper struct {
	rom  [0x8000]byte
	sram [0x2000]byte
}

func (f *flatMapper) Read(offset uint16) uint8            { return f.rom[offset] }
func (f *flatMapper) Write(offset uint16, value uint8)     {}
func (f *flatMapper) ReadSRAM(offset uint16) uint8         { return f.sram[offset] }
func (f *flatMapper) WriteSRAM(offset uint16, value uint8) { f.sram[offset] = value }

// newTestCPU returns a CPU over a writable 32 KiB ROM image loaded at
// 0x0000, reset for plain DMG (GB) at PC=0x0100.
func newTestCPU(program ...uint8) (*CPU, *flatMapper) {
	cart := &flatMapper{}
	copy(cart.rom[0x0100:], program)
	mem := mmu.New(cart, registers.GB, false)
	return New(mem, registers.GB, false), cart
}
