// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package reefpi

import (
	"errors"
	"fmt"

	rpii2c "github.com/reef-pi/rpi/i2c"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// busPort exposes a reef-pi I²C bus as a periph i2c.Bus.
//
// The chip has no registers so only the raw byte methods are used. A
// transaction with both w and r is a write followed by a separate read.
type busPort struct {
	bus rpii2c.Bus
}

func (b *busPort) String() string {
	return "reef-pi i2c"
}

func (b *busPort) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7f {
		return fmt.Errorf("reefpi: address 0x%x is not 7 bit", addr)
	}
	if len(w) != 0 {
		if err := b.bus.WriteBytes(byte(addr), w); err != nil {
			return err
		}
	}
	if len(r) != 0 {
		got, err := b.bus.ReadBytes(byte(addr), len(r))
		if err != nil {
			return err
		}
		if len(got) < len(r) {
			return fmt.Errorf("reefpi: short read from 0x%02x: got %d bytes, want %d", addr, len(got), len(r))
		}
		copy(r, got)
	}
	return nil
}

// SetSpeed is not supported, reef-pi configures the bus itself.
func (b *busPort) SetSpeed(f physic.Frequency) error {
	return errors.New("reefpi: bus speed is managed by reef-pi")
}

var _ i2c.Bus = &busPort{}
