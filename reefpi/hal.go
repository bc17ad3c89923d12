// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package reefpi

import (
	"fmt"
	"sync"

	"github.com/GermanBionicSystems/expander/pcf8574"
	"github.com/reef-pi/hal"
	"periph.io/x/conn/v3/gpio"
)

type pin struct {
	driver *driver
	number pcf8574.Pin
}

func (p *pin) Name() string { return fmt.Sprintf("PCF8574:%d", p.number) }
func (p *pin) Number() int  { return int(p.number) }
func (p *pin) Close() error { return nil }

func (p *pin) Read() (bool, error) {
	return p.driver.read(p.number)
}

func (p *pin) Write(b bool) error {
	return p.driver.write(p.number, b)
}

// LastState returns the last level written, regardless of the direction the
// line has now.
func (p *pin) LastState() bool {
	p.driver.mu.Lock()
	defer p.driver.mu.Unlock()
	return p.driver.last&(1<<p.number) != 0
}

// driver serializes access to one expander.
type driver struct {
	dev  *pcf8574.Dev
	addr byte
	meta hal.Metadata
	pins []*pin

	mu      sync.Mutex
	last    uint8
	outputs uint8
}

func (d *driver) Metadata() hal.Metadata { return d.meta }

func (d *driver) Close() error { return d.dev.Halt() }

func (d *driver) DigitalInputPins() []hal.DigitalInputPin {
	out := make([]hal.DigitalInputPin, len(d.pins))
	for i, p := range d.pins {
		out[i] = p
	}
	return out
}

func (d *driver) DigitalOutputPins() []hal.DigitalOutputPin {
	out := make([]hal.DigitalOutputPin, len(d.pins))
	for i, p := range d.pins {
		out[i] = p
	}
	return out
}

func (d *driver) DigitalInputPin(n int) (hal.DigitalInputPin, error) {
	if n < 0 || n >= len(d.pins) {
		return nil, fmt.Errorf("reefpi: 0x%02x: invalid pin %d", d.addr, n)
	}
	return d.pins[n], nil
}

func (d *driver) DigitalOutputPin(n int) (hal.DigitalOutputPin, error) {
	if n < 0 || n >= len(d.pins) {
		return nil, fmt.Errorf("reefpi: 0x%02x: invalid pin %d", d.addr, n)
	}
	return d.pins[n], nil
}

func (d *driver) Pins(c hal.Capability) ([]hal.Pin, error) {
	switch c {
	case hal.DigitalInput, hal.DigitalOutput:
		pins := make([]hal.Pin, len(d.pins))
		for i, p := range d.pins {
			pins[i] = p
		}
		return pins, nil
	default:
		return nil, fmt.Errorf("reefpi: 0x%02x: unsupported capability: %s", d.addr, c.String())
	}
}

// read samples the live level of n.
//
// Configuring n again drops an edge latched for it by an earlier read, so the
// forced read below always reaches the bus. Reading releases every input,
// which also pulls outputs low, so the outputs are sent again afterwards.
func (d *driver) read(n pcf8574.Pin) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.dev.Configure(n, pcf8574.InputPullUp, gpio.Low); err != nil {
		return false, err
	}
	d.outputs &^= 1 << n
	l, err := d.dev.DigitalRead(n, true)
	if err != nil {
		return false, err
	}
	if d.outputs != 0 {
		if err := d.dev.DigitalWriteAllByte(d.last); err != nil {
			return false, err
		}
	}
	return bool(l), nil
}

// write drives n to b. Other outputs keep their level and inputs stay
// released.
func (d *driver) write(n pcf8574.Pin, b bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dev.Direction(n) != pcf8574.Output {
		if err := d.dev.Configure(n, pcf8574.Output, gpio.Level(b)); err != nil {
			return err
		}
		d.outputs |= 1 << n
	}
	if b {
		d.last |= 1 << n
	} else {
		d.last &^= 1 << n
	}
	return d.dev.DigitalWriteAllByte(d.last)
}

var (
	_ hal.DigitalInputDriver  = &driver{}
	_ hal.DigitalOutputDriver = &driver{}
)
