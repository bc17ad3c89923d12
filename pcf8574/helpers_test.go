// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"errors"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

const addr = DefaultAddress

// presenceOp is the read done by New to find the chip.
var presenceOp = i2ctest.IO{Addr: addr, R: []byte{0xff}}

// newPlayback returns a device on a Playback bus scripted with presenceOp
// followed by ops. Any other transaction panics and all ops must be consumed
// by the end of the test.
func newPlayback(t *testing.T, clock clockwork.Clock, ops ...i2ctest.IO) (*Dev, *i2ctest.Playback) {
	t.Helper()
	bus := &i2ctest.Playback{Ops: append([]i2ctest.IO{presenceOp}, ops...)}
	dev, err := New(bus, &Opts{Clock: clock})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := dev.Halt(); err != nil {
			t.Error(err)
		}
		if err := bus.Close(); err != nil {
			t.Error(err)
		}
	})
	return dev, bus
}

// port simulates the expander: reads return level, writes are recorded.
type port struct {
	mu      sync.Mutex
	level   uint8
	fail    bool
	reads   int
	written []uint8
}

func (p *port) String() string {
	return "port"
}

func (p *port) Tx(addr uint16, w, r []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("port: nack")
	}
	if len(w) != 0 && len(r) == 0 {
		p.written = append(p.written, w[0])
	}
	if len(r) != 0 {
		p.reads++
		r[0] = p.level
	}
	return nil
}

func (p *port) SetSpeed(f physic.Frequency) error {
	return nil
}

func (p *port) set(level uint8) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *port) setFail(fail bool) {
	p.mu.Lock()
	p.fail = fail
	p.mu.Unlock()
}

func (p *port) readCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reads
}

func (p *port) writes() []uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]uint8(nil), p.written...)
}

func newPort(t *testing.T, clock clockwork.Clock, level uint8) (*Dev, *port) {
	t.Helper()
	bus := &port{level: level}
	dev, err := New(bus, &Opts{Clock: clock})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := dev.Halt(); err != nil {
			t.Error(err)
		}
	})
	// Forget the presence check.
	bus.reads = 0
	return dev, bus
}

var _ i2c.Bus = &port{}
