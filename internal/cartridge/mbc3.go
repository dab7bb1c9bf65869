package cartridge

// mbc3 implements the MBC3 mapper: a 7-bit ROM bank register, a
// combined SRAM-bank/RTC-register select, and an RTC latch command.
// The RTC's actual timekeeping is a host concern and is stubbed here;
// the latch and register-select commands are still decoded so that
// writes to 0x6000-0x7FFF and values 0x08-0x0C written to the
// bank-select range don't corrupt SRAM banking.
type mbc3 struct {
	rom []byte
	ram []byte

	sramEnabled bool
	romBank     uint8 // 7-bit, never 0
	bankSelect  uint8 // 0-3 selects an SRAM bank; 0x08-0x0C selects an RTC register
	latchState  uint8 // tracks the 0x00-then-0x01 latch sequence
}

func newMBC3(rom []byte, header *Header) *mbc3 {
	ramSize := header.RAMSize
	if ramSize == 0 {
		ramSize = sramBankSize
	}
	return &mbc3{rom: rom, ram: make([]byte, ramSize), romBank: 1}
}

func (m *mbc3) Read(offset uint16) uint8 {
	if offset < bankSize {
		return bankOf(m.rom, 0, offset)
	}
	return bankOf(m.rom, int(m.romBank), offset-bankSize)
}

func (m *mbc3) Write(offset uint16, value uint8) {
	switch {
	case offset < 0x2000:
		m.sramEnabled = value&0x0F == 0x0A
	case offset < 0x4000:
		bank := value & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case offset < 0x6000:
		m.bankSelect = value
	default:
		// latch sequence: write 0x00 then 0x01 to snapshot the RTC.
		if m.latchState == 0x00 && value == 0x01 {
			// no-op: RTC timekeeping is out of scope for this core.
		}
		m.latchState = value
	}
}

func (m *mbc3) ReadSRAM(offset uint16) uint8 {
	if !m.sramEnabled {
		return 0xFF
	}
	if m.bankSelect >= 0x08 {
		// RTC register read: stubbed at 0, no clock is kept.
		return 0
	}
	if len(m.ram) == 0 {
		return 0xFF
	}
	base := int(m.bankSelect%4) * sramBankSize
	return m.ram[(base+int(offset))%len(m.ram)]
}

func (m *mbc3) WriteSRAM(offset uint16, value uint8) {
	if !m.sramEnabled || m.bankSelect >= 0x08 || len(m.ram) == 0 {
		return
	}
	base := int(m.bankSelect%4) * sramBankSize
	m.ram[(base+int(offset))%len(m.ram)] = value
}
