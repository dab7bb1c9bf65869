// Command gbcore drives the CPU core against a ROM image with no
// display, audio, or input attached: it is useful for running
// instruction/timing test ROMs (such as Blargg's cpu_instrs and
// instr_timing suites) that report PASS/FAIL over the serial port
// rather than the screen.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/claude/gbcore/internal/cartridge"
	"github.com/claude/gbcore/internal/cpu"
	"github.com/claude/gbcore/internal/mmu"
	"github.com/claude/gbcore/internal/registers"
	"github.com/claude/gbcore/pkg/log"
)

func main() {
	romPath := flag.String("rom", "", "the ROM file to load")
	asModel := flag.String("model", "dmg", "model to emulate: dmg or cgb")
	maxSteps := flag.Uint64("max-steps", 50_000_000, "stop after this many instructions if the ROM never freezes")
	trace := flag.Bool("trace", false, "print a Gameboy-Doctor-style trace line per instruction")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "gbcore: -rom is required")
		os.Exit(2)
	}

	rom, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gbcore: %v\n", err)
		os.Exit(1)
	}

	model := registers.GB
	gbcMode := false
	if *asModel == "cgb" {
		model = registers.GBC
		gbcMode = true
	}

	logger := log.New()
	cart, err := cartridge.New(rom, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gbcore: %v\n", err)
		os.Exit(1)
	}
	logger.Infof("loaded %s (%s)", cart.Header().Title, cart.Header().Type)

	mem := mmu.New(cart, model, gbcMode)
	var serialOut []byte
	mem.Serial = func(b byte) { serialOut = append(serialOut, b) }

	c := cpu.New(mem, model, gbcMode)

	for steps := uint64(0); steps < *maxSteps; steps++ {
		if *trace {
			fmt.Println(c.State())
		}
		c.Step()
		if c.Frozen() {
			break
		}
	}

	if len(serialOut) > 0 {
		fmt.Printf("serial: %s\n", serialOut)
	}
}
