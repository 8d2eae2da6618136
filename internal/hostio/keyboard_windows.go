//go:build windows

package hostio

import (
	"fmt"
	"os"
	"sync"
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
// priority-1 interrupt on the Keyboard device. This build has no
// non-blocking-read syscall available, so it uses a plain blocking
// os.Stdin.Read the way terminal_host_windows.go does.
type Keyboard struct {
	sink Sink

	fd           int
	oldTermState *term.State

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
func (k *Keyboard) Start() error {
	k.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		close(k.done)
		return fmt.Errorf("hostio: failed to set raw mode: %w", err)
	}
	k.oldTermState = oldState

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

		n, err := os.Stdin.Read(buf)
		if n > 0 {
			k.sink.Accept(interrupt.Interrupt{
				IRQNumber:  1,
				Priority:   1,
				DeviceName: interrupt.KeyboardDevice,
				Data:       buf[0],
			})
		}
		if err != nil {
			return
		}
		if n == 0 {
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
	if k.oldTermState != nil {
		_ = term.Restore(k.fd, k.oldTermState)
		k.oldTermState = nil
	}
}
