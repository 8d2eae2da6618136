// Command microsim runs the five-stage pipeline simulator against a
// bundled sample program, a file, or hand-entered hex bytes, either as a
// single batch run with a register oracle or interactively against a real
// clock and the keyboard.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/veridian-systems/sixtick/internal/system"
)

func main() {
	debug := flag.Bool("debug", false, "emit diagnostic logging to stderr")
	useCarry := flag.Bool("carry", false, "fold the carry flag into ADC")
	programPath := flag.String("program", "", "path to a raw program file (skips the menu)")
	interactive := flag.Bool("interactive", false, "run against a real clock and the keyboard instead of a batch run")
	period := flag.Duration("period", 2*time.Millisecond, "clock pulse period for -interactive")
	maxTicks := flag.Uint64("maxticks", 2_000_000, "safety bound on ticks for a batch run")
	flag.Parse()

	if err := run(*debug, *useCarry, *programPath, *interactive, *period, *maxTicks); err != nil {
		fmt.Fprintln(os.Stderr, "microsim:", err)
		os.Exit(1)
	}
}

func run(debug, useCarry bool, programPath string, interactive bool, period time.Duration, maxTicks uint64) error {
	prog, err := resolveProgram(programPath)
	if err != nil {
		return err
	}

	sys := system.New(system.Config{Debug: debug, UseCarry: useCarry, ClockPeriod: period})

	if interactive {
		return runInteractive(sys, prog, period)
	}
	return runBatch(sys, prog, maxTicks)
}

func resolveProgram(programPath string) (system.Program, error) {
	if programPath != "" {
		code, err := os.ReadFile(programPath)
		if err != nil {
			return system.Program{}, fmt.Errorf("reading %s: %w", programPath, err)
		}
		return system.Program{Name: programPath, Code: code}, nil
	}
	return chooseProgram(bufio.NewReader(os.Stdin))
}

func runBatch(sys *system.System, prog system.Program, maxTicks uint64) error {
	result := sys.RunProgram(prog, maxTicks)

	if result.Output != "" {
		fmt.Println(result.Output)
	}
	snap := result.Snapshot
	fmt.Printf("A=0x%02X X=0x%02X Y=0x%02X Z=%v C=%v ticks=%d\n",
		snap.A, snap.X, snap.Y, snap.Z, snap.C, result.TicksUsed)

	if prog.Expected != nil {
		if result.Passed {
			fmt.Println("PASS")
		} else {
			fmt.Println("FAIL")
		}
	}
	return nil
}

// runInteractive supervises the clock-driven run and a status monitor with
// an errgroup: the first goroutine to return an error cancels the other
// via the shared context, and the monitor also returns as soon as the run
// ends.
func runInteractive(sys *system.System, prog system.Program, period time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	runDone := make(chan struct{})

	g.Go(func() error {
		defer close(runDone)
		return sys.RunInteractive(gctx, prog.Code, period)
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-runDone:
				return nil
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				fmt.Fprintf(os.Stderr, "ticks=%d\n", sys.Ticks())
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Println(sys.CPU().Output())
	snap := sys.CPU().Snapshot()
	fmt.Printf("A=0x%02X X=0x%02X Y=0x%02X Z=%v C=%v ticks=%d\n",
		snap.A, snap.X, snap.Y, snap.Z, snap.C, sys.Ticks())
	return nil
}
