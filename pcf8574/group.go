// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
)

// Group is a set of expander pins read and written in a single bus
// transaction.
type Group struct {
	dev  *Dev
	pins []*pcfPin
}

// Group returns a gpio.Group comprised of the specified pin numbers.
func (d *Dev) Group(pinNumbers ...int) (*Group, error) {
	gr := &Group{dev: d, pins: make([]*pcfPin, len(pinNumbers))}
	for ix, number := range pinNumbers {
		if number < 0 || number >= NumPins {
			return nil, fmt.Errorf("%w: pin %d out of range", ErrInvalidConfiguration, number)
		}
		gr.pins[ix] = d.Pins[number].(*pcfPin)
	}
	return gr, nil
}

// Pins returns the set of pins that make up this group.
func (gr *Group) Pins() []pin.Pin {
	pins := make([]pin.Pin, len(gr.pins))
	for ix, p := range gr.pins {
		pins[ix] = p
	}
	return pins
}

// ByOffset returns the pin at offset within the group.
func (gr *Group) ByOffset(offset int) pin.Pin {
	return gr.pins[offset]
}

// ByName returns the pin named name, or nil.
func (gr *Group) ByName(name string) pin.Pin {
	for _, p := range gr.pins {
		if p.name == name {
			return p
		}
	}
	return nil
}

// ByNumber returns the pin by its number on the device, or nil.
func (gr *Group) ByNumber(number int) pin.Pin {
	for _, p := range gr.pins {
		if p.Number() == number {
			return p
		}
	}
	return nil
}

func (gr *Group) defaultMask() gpio.GPIOValue {
	return gpio.GPIOValue(1)<<len(gr.pins) - 1
}

// Out writes the bits of value selected by mask, bit n of value being the
// pin at offset n. Pins that are not outputs are reconfigured as outputs.
// The port is written once.
func (gr *Group) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = gr.defaultMask()
	}
	d := gr.dev
	d.mu.Lock()
	defer d.mu.Unlock()
	wr := d.buf.writeBuffered
	for ix, p := range gr.pins {
		bit := gpio.GPIOValue(1) << ix
		if mask&bit == 0 {
			continue
		}
		l := gpio.Level(value&bit != 0)
		if !d.reg.writeMode.has(p.number) {
			if err := d.reg.configure(p.number, Output, l); err != nil {
				return err
			}
		}
		wr = wr.setLevel(p.number, l)
	}
	d.buf.writeBuffered = wr
	d.buf.buffered = (d.buf.buffered &^ d.reg.writeMode) | (wr & d.reg.writeMode)
	return d.buf.flush(&d.reg)
}

// Read returns the pins of the group selected by mask, from a single
// DigitalReadAll.
func (gr *Group) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	if mask == 0 {
		mask = gr.defaultMask()
	}
	in := gr.dev.DigitalReadAll()
	result := gpio.GPIOValue(0)
	for ix, p := range gr.pins {
		bit := gpio.GPIOValue(1) << ix
		if mask&bit != 0 && in[p.number] {
			result |= bit
		}
	}
	return result, nil
}

// WaitForEdge is not supported, the chip doesn't tell which pin changed.
func (gr *Group) WaitForEdge(timeout time.Duration) (number int, edge gpio.Edge, err error) {
	return -1, gpio.NoEdge, gpio.ErrGroupFeatureNotImplemented
}

// Halt releases the group. It cannot be used after this call.
func (gr *Group) Halt() error {
	gr.pins = nil
	return nil
}

func (gr *Group) String() string {
	s := gr.dev.String() + "[ "
	for _, p := range gr.pins {
		s += fmt.Sprintf("%d ", p.Number())
	}
	s += "]"
	return s
}

var _ gpio.Group = &Group{}
