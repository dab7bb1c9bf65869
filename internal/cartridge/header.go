package cartridge

import "fmt"

// Type identifies the memory bank controller (if any) a cartridge was
// built with, as read from the cart_type byte at 0x0147.
type Type uint8

const (
	ROM                Type = 0x00
	MBC1               Type = 0x01
	MBC1RAM            Type = 0x02
	MBC1RAMBATT        Type = 0x03
	MBC2               Type = 0x05
	MBC2RAMBATT        Type = 0x06
	ROMRAM             Type = 0x08
	ROMRAMBATT         Type = 0x09
	MMM01              Type = 0x0B
	MMM01RAM           Type = 0x0C
	MMM01RAMBATT       Type = 0x0D
	MBC3TIMERBATT      Type = 0x0F
	MBC3RAMTIMERBATT   Type = 0x10
	MBC3               Type = 0x11
	MBC3RAM            Type = 0x12
	MBC3RAMBATT        Type = 0x13
	MBC5               Type = 0x19
	MBC5RAM            Type = 0x1A
	MBC5RAMBATT        Type = 0x1B
	MBC5RUMBLE         Type = 0x1C
	MBC5RUMBLERAM      Type = 0x1D
	MBC5RUMBLERAMBATT  Type = 0x1E
	MBC6RAMBATT        Type = 0x20
	MBC7RAMBATTACCEL   Type = 0x22
	POCKETCAM          Type = 0xFC
	BANDAITAMA5        Type = 0xFD
	HUC3               Type = 0xFE
	HUC1RAMBATT        Type = 0xFF
)

// String names the cartridge Type for diagnostics.
func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM"
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return "MBC1"
	case MBC2, MBC2RAMBATT:
		return "MBC2"
	case ROMRAM, ROMRAMBATT:
		return "ROM+RAM"
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3RAMTIMERBATT:
		return "MBC3"
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return "MBC5"
	default:
		return fmt.Sprintf("unsupported(%#02x)", uint8(t))
	}
}

// romBankCount maps the ROM size code at 0x0148 to a bank count; every
// defined code is bankCount = 2 << code, 16 KiB per bank.
func romBankCount(code uint8) int {
	if code > 8 {
		return 2
	}
	return 2 << code
}

// ramBankSizes maps the RAM size code at 0x0149 to a total SRAM size in
// bytes. Code 1 (2 KiB) is historically unused by any real cartridge;
// it is treated as a single partial bank here.
var ramBankSizes = [6]int{0, 2 * 1024, 8 * 1024, 32 * 1024, 128 * 1024, 64 * 1024}

func ramSize(code uint8) int {
	if int(code) >= len(ramBankSizes) {
		return 0
	}
	return ramBankSizes[code]
}

// Header is the subset of the 0x0100-0x014F cartridge header this core
// needs to select and size a mapper. Fields with no behavioral effect
// on CPU/MMU/mapper semantics (the Nintendo logo bitmap, manufacturer
// code, licensee codes) are not kept.
type Header struct {
	Title            string
	CGBFlag          uint8
	Type             Type
	ROMBanks         int
	RAMSize          int
	HeaderChecksum   uint8
	GlobalChecksum   uint16
}

// ParseHeader reads a Header out of a full ROM image. rom must be at
// least 0x150 bytes; shorter images are a loader-level error (ROM byte
// loading is external to this package, per the CORE/host split).
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("cartridge: image too short to contain a header: %d bytes", len(rom))
	}

	title := make([]byte, 0, 11)
	for i := 0x134; i <= 0x13E; i++ {
		if rom[i] == 0 {
			break
		}
		title = append(title, rom[i])
	}

	cartType := Type(rom[0x147])
	h := &Header{
		Title:          string(title),
		CGBFlag:        rom[0x143],
		Type:           cartType,
		ROMBanks:       romBankCount(rom[0x148]),
		RAMSize:        ramSize(rom[0x149]),
		HeaderChecksum: rom[0x14D],
		// Stored big-endian on the cartridge wire, materialized
		// little-endian in memory for convenience.
		GlobalChecksum: uint16(rom[0x14E])<<8 | uint16(rom[0x14F]),
	}

	// MBC2 always carries exactly 512x4-bit of built-in RAM, not sized
	// by the RAM size code.
	if cartType == MBC2 || cartType == MBC2RAMBATT {
		h.RAMSize = 512
	}

	return h, nil
}
