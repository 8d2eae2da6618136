//go:build !windows

// Package hostio wires the real terminal's raw stdin into the
// simulator's interrupt controller, one byte per keystroke.
//
// Grounded almost directly on terminal_host.go's raw-mode stdin reader:
// the same x/term.MakeRaw/Restore pair, the same non-blocking
// syscall.Read loop with a short sleep on EAGAIN. This module trims its
// line-mode/char-mode MMIO routing down to a simpler "every byte becomes
// one interrupt" contract.
package hostio

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/veridian-systems/sixtick/internal/interrupt"
)

// Sink accepts interrupts: keystroke injection is funneled through a
// queue drained by the controller on its own tick rather than mutating
// CPU state directly.
type Sink interface {
	Accept(i interrupt.Interrupt)
}

// Keyboard reads raw bytes from stdin and publishes each one as a
// priority-1 interrupt on the Keyboard device.
type Keyboard struct {
	sink Sink

	fd           int
	oldTermState *term.State
	nonblockSet  bool

	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once
}

// New returns a Keyboard that will publish keystrokes to sink once
// Start is called.
func New(sink Sink) *Keyboard {
	return &Keyboard{
		sink:   sink,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start puts stdin into raw mode and begins reading in a goroutine.
// Raw mode turns off the terminal's own Ctrl-C handling, so Ctrl-C
// (0x03) raises no signal: it is published like any other byte, and this
// reader does not end the process on it.
func (k *Keyboard) Start() error {
	k.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		close(k.done)
		return fmt.Errorf("hostio: failed to set raw mode: %w", err)
	}
	k.oldTermState = oldState

	if err := syscall.SetNonblock(k.fd, true); err != nil {
		_ = term.Restore(k.fd, k.oldTermState)
		k.oldTermState = nil
		close(k.done)
		return fmt.Errorf("hostio: failed to set nonblocking stdin: %w", err)
	}
	k.nonblockSet = true

	go k.readLoop()
	return nil
}

func (k *Keyboard) readLoop() {
	defer close(k.done)
	buf := make([]byte, 1)

	for {
		select {
		case <-k.stopCh:
			return
		default:
		}

		n, err := syscall.Read(k.fd, buf)
		if n > 0 {
			k.sink.Accept(interrupt.Interrupt{
				IRQNumber:  1,
				Priority:   1,
				DeviceName: interrupt.KeyboardDevice,
				Data:       buf[0],
			})
		}
		switch {
		case err == syscall.EAGAIN || err == syscall.EWOULDBLOCK:
			time.Sleep(5 * time.Millisecond)
		case err != nil:
			return
		case n == 0:
			time.Sleep(5 * time.Millisecond)
		}
	}
}

// Stop terminates the reader goroutine and restores stdin to its
// original (cooked) mode.
func (k *Keyboard) Stop() {
	k.stopped.Do(func() {
		close(k.stopCh)
	})
	<-k.done
	if k.nonblockSet {
		_ = syscall.SetNonblock(k.fd, false)
		k.nonblockSet = false
	}
	if k.oldTermState != nil {
		_ = term.Restore(k.fd, k.oldTermState)
		k.oldTermState = nil
	}
}
