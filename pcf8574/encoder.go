// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"periph.io/x/conn/v3/gpio"
)

// quadratureStep decodes one Gray code transition between the previous and
// current (A, B) phases into -1, 0 or +1. Skipped or invalid transitions
// decode as 0.
func quadratureStep(prevA, prevB, curA, curB gpio.Level) int {
	var combined uint8
	if prevA {
		combined |= 1 << 3
	}
	if prevB {
		combined |= 1 << 2
	}
	if curA {
		combined |= 1 << 1
	}
	if curB {
		combined |= 1
	}
	switch combined {
	case 0b1101, 0b0010:
		return 1
	case 0b1110, 0b0001:
		return -1
	default:
		return 0
	}
}

// ReadEncoderValue polls a rotary encoder wired to pinA and pinB and returns
// position updated by the transition since the previous poll. reverse flips
// the sign of the step.
//
// Both pins are read with forceNow so no transition is lost to the debounce
// window. An attached interrupt is detached for the duration of the poll and
// attached again afterwards. Bus errors are not reported; they read as no
// movement.
func (d *Dev) ReadEncoderValue(pinA, pinB Pin, position int, reverse bool) (changed bool, updated int) {
	if !pinA.valid() || !pinB.valid() {
		return false, position
	}
	wasAttached, err := d.irq.detach()
	if err != nil {
		d.log.Errorf("pcf8574: encoder poll: %v", err)
	}

	d.mu.Lock()
	curA := d.digitalRead(pinA, true)
	curB := d.digitalRead(pinB, true)
	prevA := d.phases.level(pinA)
	prevB := d.phases.level(pinB)
	step := quadratureStep(prevA, prevB, curA, curB)
	if prevA != curA {
		d.phases ^= pinA.bit()
	}
	if prevB != curB {
		d.phases ^= pinB.bit()
	}
	d.mu.Unlock()

	if step != 0 {
		if reverse {
			step = -step
		}
		position += step
		changed = true
	}

	if wasAttached {
		if err := d.irq.reattach(); err != nil {
			d.log.Errorf("pcf8574: encoder poll: %v", err)
		}
	}
	return changed, position
}

// Encoder tracks the position of a rotary encoder wired to two expander pins.
type Encoder struct {
	dev      *Dev
	a, b     Pin
	reverse  bool
	position int
}

// Encoder configures pinA and pinB as InputPullUp and returns an Encoder
// polling them. Begin must be called afterwards for the configuration to reach
// the chip.
func (d *Dev) Encoder(pinA, pinB Pin, reverse bool) (*Encoder, error) {
	if err := d.Configure(pinA, InputPullUp, gpio.Low); err != nil {
		return nil, err
	}
	if err := d.Configure(pinB, InputPullUp, gpio.Low); err != nil {
		return nil, err
	}
	return &Encoder{dev: d, a: pinA, b: pinB, reverse: reverse}, nil
}

// Poll samples the encoder and reports whether the position changed.
func (e *Encoder) Poll() (bool, int) {
	changed, pos := e.dev.ReadEncoderValue(e.a, e.b, e.position, e.reverse)
	e.position = pos
	return changed, pos
}

// Position returns the accumulated position.
func (e *Encoder) Position() int {
	return e.position
}

// Reset sets the accumulated position.
func (e *Encoder) Reset(position int) {
	e.position = position
}
