// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// edgePollInterval bounds how long Detach waits for the watcher to notice it
// was stopped, for host pins whose WaitForEdge is not woken up by In().
const edgePollInterval = 50 * time.Millisecond

// Interrupt wires the INT output of the expander to a host GPIO.
//
// The chip pulls INT low when an input changes, so the default edge is
// FallingEdge.
type Interrupt struct {
	// Line is the host pin connected to INT. It is set as input with pull-up.
	Line gpio.PinIn
	// Edge defaults to gpio.FallingEdge.
	Edge gpio.Edge
	// Handler is called from a dedicated goroutine for each edge. It may call
	// the Dev read and write methods but must not call Detach, Reattach or
	// ReadEncoderValue, which wait for the handler to return.
	Handler func(line gpio.PinIn)
}

// interruptBridge runs one watcher goroutine per attachment and remembers the
// last attachment so it can be replayed.
type interruptBridge struct {
	log Logger

	mu       sync.Mutex
	last     *Interrupt
	attached bool
	stop     chan struct{}
	done     chan struct{}
}

func (b *interruptBridge) attach(irq Interrupt) error {
	if irq.Line == nil || irq.Handler == nil {
		return errors.New("pcf8574: interrupt needs a line and a handler")
	}
	if irq.Edge == gpio.NoEdge {
		irq.Edge = gpio.FallingEdge
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.detachLocked()
	if err := irq.Line.In(gpio.PullUp, irq.Edge); err != nil {
		return fmt.Errorf("pcf8574: setting up interrupt on %s: %w", irq.Line, err)
	}
	b.last = &irq
	b.attached = true
	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	go watch(irq, b.stop, b.done)
	b.log.Infof("pcf8574: interrupt attached to %s on %s", irq.Line, irq.Edge)
	return nil
}

// detach stops the watcher and waits for it to exit. It reports whether an
// interrupt was attached.
func (b *interruptBridge) detach() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.detachLocked()
}

func (b *interruptBridge) detachLocked() (bool, error) {
	if !b.attached {
		return false, nil
	}
	close(b.stop)
	// Wakes up WaitForEdge on host drivers and stops edge generation.
	err := b.last.Line.In(gpio.PullUp, gpio.NoEdge)
	<-b.done
	b.attached = false
	b.log.Infof("pcf8574: interrupt detached from %s", b.last.Line)
	if err != nil {
		return true, fmt.Errorf("pcf8574: releasing interrupt on %s: %w", b.last.Line, err)
	}
	return true, nil
}

// reattach replays the last attachment, if any.
func (b *interruptBridge) reattach() error {
	b.mu.Lock()
	last := b.last
	b.mu.Unlock()
	if last == nil {
		return nil
	}
	return b.attach(*last)
}

func watch(irq Interrupt, stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}
		if !irq.Line.WaitForEdge(edgePollInterval) {
			continue
		}
		select {
		case <-stop:
			return
		default:
		}
		irq.Handler(irq.Line)
	}
}

// Attach registers irq, replacing any previous registration.
func (d *Dev) Attach(irq Interrupt) error {
	return d.irq.attach(irq)
}

// Detach removes the interrupt registration. Once it returns the handler is
// not running and will not be called. It is a no-op if nothing is attached.
func (d *Dev) Detach() error {
	_, err := d.irq.detach()
	return err
}

// Reattach registers again the parameters of the last Attach. It is a no-op
// if Attach was never called.
func (d *Dev) Reattach() error {
	return d.irq.reattach()
}
