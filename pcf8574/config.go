// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Pin identifies one of the eight I/O lines of the expander.
type Pin uint8

const (
	P0 Pin = iota
	P1
	P2
	P3
	P4
	P5
	P6
	P7
)

// NumPins is the number of I/O lines on the chip.
const NumPins = 8

func (p Pin) valid() bool {
	return p < NumPins
}

// bit returns the mask with only p set.
func (p Pin) bit() Mask {
	return Mask(1) << p
}

func (p Pin) check() error {
	if !p.valid() {
		return fmt.Errorf("%w: pin %d out of range", ErrInvalidConfiguration, p)
	}
	return nil
}

// Mask holds one bit per pin, bit n being pin n.
//
// All bitwise negation is done with &^ or ^ on the 8 bit type, so there is no
// sign extension to worry about.
type Mask uint8

func (m Mask) has(p Pin) bool {
	return m&p.bit() != 0
}

func (m Mask) with(p Pin) Mask {
	return m | p.bit()
}

func (m Mask) without(p Pin) Mask {
	return m &^ p.bit()
}

func (m Mask) level(p Pin) gpio.Level {
	return gpio.Level(m.has(p))
}

func (m Mask) setLevel(p Pin, l gpio.Level) Mask {
	if l {
		return m.with(p)
	}
	return m.without(p)
}

func (m Mask) String() string {
	return fmt.Sprintf("0b%08b", uint8(m))
}

// Direction is the role of a pin.
type Direction int

const (
	// Unconfigured is reported for pins that were never configured.
	Unconfigured Direction = iota
	// Output drives the pin.
	Output
	// InputPullDown reads the pin, idle level is low. It is the default input
	// mode.
	InputPullDown
	// InputPullUp reads the pin, idle level is high.
	InputPullUp
)

func (d Direction) String() string {
	switch d {
	case Unconfigured:
		return "Unconfigured"
	case Output:
		return "Output"
	case InputPullDown:
		return "InputPullDown"
	case InputPullUp:
		return "InputPullUp"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// registry tracks per pin direction and pull policy.
//
// For every configured pin exactly one of writeMode and readMode has its bit
// set, and a pin in readMode has exactly one of readModePullDown and
// readModePullUp set.
type registry struct {
	writeMode        Mask
	writeModeUp      Mask
	readMode         Mask
	readModePullDown Mask
	readModePullUp   Mask
}

// configure only touches the masks.
func (r *registry) configure(p Pin, dir Direction, start gpio.Level) error {
	if err := p.check(); err != nil {
		return err
	}
	switch dir {
	case Output:
		r.writeMode = r.writeMode.with(p)
		r.writeModeUp = r.writeModeUp.setLevel(p, start)
		r.readMode = r.readMode.without(p)
		r.readModePullDown = r.readModePullDown.without(p)
		r.readModePullUp = r.readModePullUp.without(p)
	case InputPullDown:
		r.writeMode = r.writeMode.without(p)
		r.readMode = r.readMode.with(p)
		r.readModePullDown = r.readModePullDown.with(p)
		r.readModePullUp = r.readModePullUp.without(p)
	case InputPullUp:
		r.writeMode = r.writeMode.without(p)
		r.readMode = r.readMode.with(p)
		r.readModePullDown = r.readModePullDown.without(p)
		r.readModePullUp = r.readModePullUp.with(p)
	default:
		return fmt.Errorf("%w: pin %d direction %s", ErrInvalidConfiguration, p, dir)
	}
	return nil
}

func (r *registry) direction(p Pin) Direction {
	switch {
	case r.writeMode.has(p):
		return Output
	case r.readModePullUp.has(p):
		return InputPullUp
	case r.readModePullDown.has(p):
		return InputPullDown
	default:
		return Unconfigured
	}
}

// configured reports whether any pin has a direction.
func (r *registry) configured() bool {
	return r.writeMode != 0 || r.readMode != 0
}

// idle is the level every pin rests at: outputs and former outputs at their
// start level, pull-up inputs high.
func (r *registry) idle() Mask {
	return r.writeModeUp | r.readModePullUp
}

// edge reports whether in shows any input away from its idle level.
func (r *registry) edge(in Mask) bool {
	return r.readModePullDown&in != 0 || r.readModePullUp&^in != 0
}

func (r *registry) String() string {
	return fmt.Sprintf("write=%s up=%s read=%s pd=%s pu=%s",
		r.writeMode, r.writeModeUp, r.readMode, r.readModePullDown, r.readModePullUp)
}
