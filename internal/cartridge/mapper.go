// Package cartridge owns the cartridge ROM image and battery-backed
// SRAM, and interprets writes to 0x0000-0x7FFF as bank-select commands
// per the memory bank controller (MBC) the cartridge declares in its
// header. Loading ROM bytes from a file is the host's job; everything
// from "bytes in hand" onward is core.
package cartridge

import "github.com/claude/gbcore/pkg/log"

// bankSize is the fixed 16 KiB ROM bank granularity shared by every
// MBC this package supports.
const bankSize = 0x4000

// sramBankSize is the fixed 8 KiB SRAM bank granularity.
const sramBankSize = 0x2000

// Mapper is the contract the MMU drives for the 0x0000-0x7FFF and
// 0xA000-0xBFFF windows. offset is always relative to the start of the
// window it names (0 for ROM0, 0 for the SRAM window at 0xA000, etc).
type Mapper interface {
	// Read returns the byte at offset within the combined 0x0000-0x7FFF
	// ROM window (offset < 0x4000 is bank 0; offset >= 0x4000 is the
	// currently selected ROMX bank, local offset offset-0x4000).
	Read(offset uint16) uint8
	// Write decodes a bank-select command written to the ROM window.
	Write(offset uint16, value uint8)
	// ReadSRAM returns the byte at offsetInWindow within 0xA000-0xBFFF,
	// or 0xFF if SRAM is disabled.
	ReadSRAM(offsetInWindow uint16) uint8
	// WriteSRAM stores a byte at offsetInWindow within 0xA000-0xBFFF;
	// discarded if SRAM is disabled.
	WriteSRAM(offsetInWindow uint16, value uint8)
}

// NewMapper builds the Mapper appropriate for header.Type from rom. An
// unrecognized cart_type downgrades to ROM-only behavior with a
// logged warning rather than aborting: cartridge errors never abort
// the run.
func NewMapper(rom []byte, header *Header, logger log.Logger) Mapper {
	switch header.Type {
	case ROM, ROMRAM, ROMRAMBATT:
		return newROMOnly(rom)
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return newMBC1(rom, header)
	case MBC2, MBC2RAMBATT:
		return newMBC2(rom)
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3RAMTIMERBATT:
		return newMBC3(rom, header)
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return newMBC5(rom, header)
	default:
		if logger != nil {
			logger.Errorf("cartridge: unsupported type %s, downgrading to ROM-only", header.Type)
		}
		return newROMOnly(rom)
	}
}

// bankOf returns the byte at localOffset within the rom bank at index
// bank (0-based, wrapped modulo the number of 16 KiB banks present).
func bankOf(rom []byte, bank int, localOffset uint16) uint8 {
	count := len(rom) / bankSize
	if count == 0 {
		return 0xFF
	}
	bank %= count
	idx := bank*bankSize + int(localOffset)
	if idx < 0 || idx >= len(rom) {
		return 0xFF
	}
	return rom[idx]
}
