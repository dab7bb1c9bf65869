package cartridge

import (
	"fmt"

	"github.com/claude/gbcore/pkg/log"
)

// Cartridge couples a parsed Header to the Mapper its cart_type
// selects. It is the unit the MMU routes 0x0000-0x7FFF and
// 0xA000-0xBFFF accesses through.
type Cartridge struct {
	Mapper
	header *Header
}

// New parses rom's header and builds the matching Mapper. logger
// receives a warning (never a fatal error) if the header names an
// unsupported cart_type; pass log.NewNullLogger() to silence it.
func New(rom []byte, logger log.Logger) (*Cartridge, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, fmt.Errorf("cartridge: %w", err)
	}
	return &Cartridge{
		Mapper: NewMapper(rom, header, logger),
		header: header,
	}, nil
}

// Header returns the cartridge's parsed header.
func (c *Cartridge) Header() *Header {
	return c.header
}
