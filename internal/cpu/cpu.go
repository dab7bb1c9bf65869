// Package cpu implements the SM83 instruction interpreter: the
// register file wiring, the interrupt/HALT/STOP/freeze state machine,
// and the opcode + CB-prefixed decode tables. It owns no peripheral
// state; every memory access goes through the mmu.MMU it is
// constructed with.
package cpu

import (
	"fmt"

	"github.com/claude/gbcore/internal/interrupts"
	"github.com/claude/gbcore/internal/mmu"
	"github.com/claude/gbcore/internal/registers"
)

// local aliases onto the registers package's flag bits, so the rest of
// this package can write flagZ instead of registers.FlagZero.
const (
	flagZ = registers.FlagZero
	flagN = registers.FlagSubtract
	flagH = registers.FlagHalfCarry
	flagC = registers.FlagCarry
)

// StopPolicy selects what STOP actually does once decoded. Real
// hardware's STOP behavior (halt the CPU and LCD until a button press,
// or reset DIV under other conditions) depends on details this core
// does not model (serial, speed-switch controller); callers pick one
// of the two documented, total policies instead.
type StopPolicy uint8

const (
	// StopFreeze parks the CPU permanently, identically to an illegal
	// opcode. This is the default: it is simple, total, and correct for
	// the common case of a ROM using STOP only to enter CGB double-speed
	// mode switching (which this core does not implement) or to halt
	// cleanly at the end of a test ROM.
	StopFreeze StopPolicy = iota
	// StopResetDiv treats STOP as a two-byte NOP that also resets the
	// timer's DIV register, matching the DMG's documented STOP
	// behavior when no button is held.
	StopResetDiv
)

// CPU is the SM83 interpreter. registers.File is embedded so callers and
// this package's own instruction bodies can write c.A, c.SetHL(...)
// directly.
type CPU struct {
	registers.File

	mem *mmu.MMU

	ime        bool
	imePending bool

	halted  bool
	haltBug bool
	frozen  bool

	stopPolicy StopPolicy

	cycles uint64

	// resetDIV is called when StopResetDiv fires; nil if the caller
	// never wired a timer.
	resetDIV func()
}

// New builds a CPU around mem, seeded for model at power-on. gbcMode
// only affects models in the GBC family.
func New(mem *mmu.MMU, model registers.Model, gbcMode bool) *CPU {
	c := &CPU{mem: mem}
	c.Init(registers.SeedFor(model, gbcMode))
	return c
}

// SetStopPolicy selects the behavior of the STOP instruction.
func (c *CPU) SetStopPolicy(p StopPolicy) { c.stopPolicy = p }

// SetResetDIV wires the callback StopResetDiv invokes on STOP.
func (c *CPU) SetResetDIV(fn func()) { c.resetDIV = fn }

// IME reports whether the interrupt master enable flag is set.
func (c *CPU) IME() bool { return c.ime }

// Halted reports whether the CPU is parked in HALT, waiting for an
// interrupt.
func (c *CPU) Halted() bool { return c.halted }

// Frozen reports whether the CPU has permanently stopped: either an
// illegal opcode was executed, or STOP fired under StopFreeze.
// Nothing but a hard reset recovers from this state.
func (c *CPU) Frozen() bool { return c.frozen }

// Cycles returns the running total of T-states (1/4194304 s each)
// this CPU has consumed since construction.
func (c *CPU) Cycles() uint64 { return c.cycles }

// addClock accounts n T-cycles of elapsed time. Every memory access
// helper below calls it; instructions that also spend cycles with no
// associated memory access call it directly.
func (c *CPU) addClock(n uint64) {
	c.cycles += n
}

// Read8 reads a byte through the MMU, costing 4 T-cycles.
func (c *CPU) Read8(addr uint16) uint8 {
	c.addClock(4)
	return c.mem.Read8(addr)
}

// Write8 writes a byte through the MMU, costing 4 T-cycles.
func (c *CPU) Write8(addr uint16, value uint8) {
	c.addClock(4)
	c.mem.Write8(addr, value)
}

// pcRead8 fetches the byte at PC and advances PC, costing 4 T-cycles.
// Used for both the opcode byte itself and 8-bit immediate operands.
func (c *CPU) pcRead8() uint8 {
	v := c.Read8(c.PC)
	c.PC++
	return v
}

// pcRead16 fetches the little-endian word at PC and advances PC by 2,
// costing 8 T-cycles.
func (c *CPU) pcRead16() uint16 {
	lo := c.pcRead8()
	hi := c.pcRead8()
	return uint16(lo) | uint16(hi)<<8
}

// push16 decrements SP by 2 and stores value there, high byte first,
// matching the SM83's actual write order (observable when SP wraps
// into the interrupt vector region mid-push). Costs 8 T-cycles.
func (c *CPU) push16(value uint16) {
	c.SP--
	c.Write8(c.SP, uint8(value>>8))
	c.SP--
	c.Write8(c.SP, uint8(value))
}

// pop16 reads a little-endian word off the stack and increments SP by
// 2, costing 8 T-cycles.
func (c *CPU) pop16() uint16 {
	lo := c.Read8(c.SP)
	c.SP++
	hi := c.Read8(c.SP)
	c.SP++
	return uint16(lo) | uint16(hi)<<8
}

// Step executes exactly one instruction (or one HALT/frozen tick) and
// returns the number of T-cycles it consumed.
func (c *CPU) Step() uint64 {
	before := c.cycles

	if c.frozen {
		c.addClock(4)
		return c.cycles - before
	}

	// A delayed EI takes effect only after the instruction that follows
	// it finishes. The flag armed by an EI in a *previous* Step is
	// consumed and promoted here, before this Step's own instruction
	// runs — so a DI executed right after EI still wins (it clears IME
	// again within the same Step), while an EI executed here arms a
	// fresh flag for the Step after this one instead of firing early.
	if c.imePending {
		c.imePending = false
		c.ime = true
	}

	if c.halted {
		// halted ticks in place; a pending interrupt (regardless of
		// IME) is what wakes it. Whether the interrupt is actually
		// serviced is decided below, same as a normal instruction.
		c.addClock(4)
		if c.mem.PendingInterrupts() != 0 {
			c.halted = false
		}
	} else {
		c.fetchAndExecute()
	}

	if c.ime && c.mem.PendingInterrupts() != 0 {
		c.serviceInterrupt()
	}

	return c.cycles - before
}

// fetchAndExecute fetches one opcode at PC and dispatches it,
// implementing the HALT-bug's PC-freeze: the instruction after HALT is
// read and executed, but PC is walked back afterward so it is fetched
// a second time.
func (c *CPU) fetchAndExecute() {
	op := opcode(c.pcRead8())
	if c.haltBug {
		c.haltBug = false
		c.PC--
	}
	if op == 0xCB {
		c.executeCB(opcode(c.pcRead8()))
		return
	}
	c.execute(op)
}

// serviceInterrupt runs the standard SM83 interrupt-acknowledge
// sequence: two internal cycles, push PC, one internal cycle to load
// the vector, clearing IME and the serviced IF bit along the way. The
// lowest-numbered pending bit wins (VBlank highest priority). Total
// cost is 20 T-cycles, regardless of which interrupt fires.
func (c *CPU) serviceInterrupt() {
	c.addClock(8) // two internal cycles deciding to service

	pending := c.mem.PendingInterrupts()
	bit := lowestSetBit(pending)

	c.ime = false
	c.halted = false
	c.mem.ClearInterrupt(bit)
	c.push16(c.PC)

	c.PC = interrupts.VectorForBit(bit)
	c.addClock(4) // internal cycle loading the vector into PC
}

func lowestSetBit(v uint8) uint8 {
	for i := uint8(0); i < 5; i++ {
		if v&(1<<i) != 0 {
			return i
		}
	}
	panic("cpu: serviceInterrupt called with no pending interrupt")
}

// halt enters HALT, applying the documented IME=0-with-pending-
// interrupt glitch: instead of actually halting, the CPU sets halt_bug
// and falls through to execute the next opcode immediately (with its
// PC left unadvanced, so it is fetched twice).
func (c *CPU) halt() {
	if !c.ime && c.mem.PendingInterrupts() != 0 {
		c.haltBug = true
		return
	}
	c.halted = true
}

// stop applies the configured StopPolicy. STOP is a two-byte
// instruction on real hardware (the second byte is conventionally
// 0x00); this core does not model a variable opcode length, so the
// second byte is simply fetched and discarded here.
func (c *CPU) stop() {
	c.pcRead8()
	switch c.stopPolicy {
	case StopResetDiv:
		if c.resetDIV != nil {
			c.resetDIV()
		}
	default:
		c.freeze()
	}
}

// freeze parks the CPU permanently: IE and IF are both cleared, so no
// interrupt can ever wake it again, matching the illegal-opcode
// freeze described for the hardware's undefined opcodes.
func (c *CPU) freeze() {
	c.frozen = true
	c.halted = false
	c.ime = false
	c.mem.Write8(0xFFFF, 0x00) // IE
	c.mem.ClearInterrupt(interrupts.VBlankBit)
	c.mem.ClearInterrupt(interrupts.LCDBit)
	c.mem.ClearInterrupt(interrupts.TimerBit)
	c.mem.ClearInterrupt(interrupts.SerialBit)
	c.mem.ClearInterrupt(interrupts.JoypadBit)
}

// ei arms the one-instruction-delayed interrupt enable: IME does not
// actually become true until after the instruction following EI has
// run.
func (c *CPU) ei() {
	c.imePending = true
}

// di disables interrupts immediately, canceling any pending EI.
func (c *CPU) di() {
	c.ime = false
	c.imePending = false
}

// State renders a Gameboy-Doctor-compatible trace line: the full
// register file plus the four bytes at PC, used to cross-check this
// core's execution against a known-good trace log instruction by
// instruction.
func (c *CPU) State() string {
	pcMem := [4]uint8{
		c.mem.Read8(c.PC),
		c.mem.Read8(c.PC + 1),
		c.mem.Read8(c.PC + 2),
		c.mem.Read8(c.PC + 3),
	}
	return fmt.Sprintf(
		"A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X PCMEM:%02X,%02X,%02X,%02X",
		c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP, c.PC,
		pcMem[0], pcMem[1], pcMem[2], pcMem[3],
	)
}
