// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf8574 provides a driver for the NXP/TI PCF8574 and PCF8574A I²C
// I/O expanders. These devices provide 8 "quasi-bidirectional" pins.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// # Notes
//
// The chip has no registers. A one byte write sets the latch of all pins and a
// one byte read returns the level of all pins. To read a pin it must have been
// written high first.
//
// The driver keeps the last known port state in memory so that most calls do
// not reach the bus. Each pin is configured as Output, InputPullDown or
// InputPullUp. An input pin has an idle level (low for pull-down, high for
// pull-up); when a read shows an input away from its idle level, the
// transition is latched and reported once by DigitalRead, after which the pin
// reports its idle level again until the next transition is sensed. Reads
// that are not forced reach the bus at most once per debounce window.
//
// The INT output of the chip can be wired to a host GPIO, see Interrupt. The
// chip doesn't tell which pin changed.
package pcf8574

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// Opts holds the configuration options.
type Opts struct {
	// Variant selects the address block. Defaults to PCF8574.
	Variant Variant
	// Addr is the I²C address. Defaults to the first address of Variant.
	Addr uint16
	// BusName is used to open the bus with i2creg when New is given a nil bus.
	// The bus is then closed by Halt.
	BusName string
	// Debounce is the minimum interval between unforced physical reads.
	// Defaults to DebounceWindow.
	Debounce time.Duration
	// Clock defaults to the real clock.
	Clock clockwork.Clock
	// Logger defaults to discarding everything.
	Logger Logger
	// Interrupt, when set, is attached by Begin.
	Interrupt *Interrupt
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Variant:  PCF8574,
	Addr:     DefaultAddress,
	Debounce: DebounceWindow,
}

// Dev is a handle to a PCF8574 expander.
type Dev struct {
	// Pins exposes each line as a gpio.PinIO, registered in gpioreg.
	Pins [NumPins]gpio.PinIO

	variant Variant
	owned   i2c.BusCloser
	log     Logger

	mu      sync.Mutex
	reg     registry
	buf     ioBuffer
	phases  Mask
	irq     interruptBridge
	initIRQ *Interrupt
}

// New opens a handle to the expander on bus. If bus is nil, opts.BusName is
// opened with i2creg.
//
// The address is probed once and ErrDeviceNotFound is returned if nothing
// answers.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	variantName := opts.Variant
	if variantName == "" {
		variantName = PCF8574
	}
	v, found := variants[variantName]
	if !found {
		return nil, fmt.Errorf("%w: unsupported variant %q", ErrInvalidConfiguration, variantName)
	}
	addr := opts.Addr
	if addr == 0 {
		addr = v.defaultAddr()
	}
	if v.isAddrInvalid(addr) {
		return nil, fmt.Errorf("%w: address 0x%x not supported by %s", ErrInvalidConfiguration, addr, variantName)
	}

	var owned i2c.BusCloser
	if bus == nil {
		if opts.BusName == "" {
			return nil, ErrConfigurationMissing
		}
		b, err := i2creg.Open(opts.BusName)
		if err != nil {
			return nil, fmt.Errorf("pcf8574: opening %q: %w", opts.BusName, err)
		}
		bus = b
		owned = b
	}

	if err := probe(bus, addr); err != nil {
		if owned != nil {
			_ = owned.Close()
		}
		return nil, fmt.Errorf("%w at address 0x%x: %w", ErrDeviceNotFound, addr, err)
	}

	l := opts.Logger
	if l == nil {
		l = nopLogger{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	debounce := opts.Debounce
	if debounce == 0 {
		debounce = DebounceWindow
	}

	dev := &Dev{
		variant: variantName,
		owned:   owned,
		log:     l,
		buf: ioBuffer{
			d:        &i2c.Dev{Bus: bus, Addr: addr},
			clock:    clock,
			debounce: debounce,
			log:      l,
			lastRead: clock.Now(),
		},
		irq:     interruptBridge{log: l},
		initIRQ: opts.Interrupt,
	}
	sDev := dev.String()
	for ix := range NumPins {
		dev.Pins[ix] = &pcfPin{dev: dev, number: Pin(ix), name: fmt.Sprintf("%s_GPIO%d", sDev, ix)}
		// Ignore registration failure.
		_ = gpioreg.Register(dev.Pins[ix])
	}
	return dev, nil
}

// Configure sets the direction of p. start is the level an Output pin is
// driven to by Begin and is ignored for inputs.
//
// The bus is not touched; the configuration takes effect on the next write.
func (d *Dev) Configure(p Pin, dir Direction, start gpio.Level) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.reg.configure(p, dir, start); err != nil {
		return err
	}
	// Inputs rest at their idle level until a read says otherwise.
	switch dir {
	case InputPullUp:
		d.buf.buffered = d.buf.buffered.with(p)
	case InputPullDown:
		d.buf.buffered = d.buf.buffered.without(p)
	}
	d.log.Debugf("pcf8574: pin %d %s start %s; %s", p, dir, start, &d.reg)
	return nil
}

// Direction returns the configured direction of p.
func (d *Dev) Direction(p Pin) Direction {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reg.direction(p)
}

// Begin brings the port to its idle state: outputs at their start level and
// pull-up inputs high. Former outputs keep their last start level, as on every
// later write. It is a no-op on the bus when no pin is configured.
//
// On failure the error wraps ErrDeviceUnreachable; Begin may be called again.
// The interrupt from Opts is attached on success.
func (d *Dev) Begin() error {
	d.mu.Lock()
	err := d.begin()
	d.mu.Unlock()
	if err != nil {
		return err
	}
	if d.initIRQ != nil {
		return d.Attach(*d.initIRQ)
	}
	return nil
}

func (d *Dev) begin() error {
	if d.reg.configured() {
		initial := d.reg.idle()
		d.log.Debugf("pcf8574: begin with %s, sending %s", &d.reg, initial)
		if err := d.buf.send(initial); err != nil {
			return err
		}
		d.buf.idle = initial
		d.buf.buffered = initial
		d.buf.writeBuffered = initial & d.reg.writeMode
	}
	d.buf.lastRead = d.buf.clock.Now()
	return nil
}

// DigitalRead returns the level of p.
//
// Output pins return the last written level without bus traffic. For input
// pins, a latched transition is returned first and consumed, even when
// forceNow is set. Otherwise the bus is read if forceNow is set or the
// debounce window has passed.
//
// A failed bus read is not an error; the cached state is returned. The error
// is only non-nil for pins outside P0..P7.
func (d *Dev) DigitalRead(p Pin, forceNow bool) (gpio.Level, error) {
	if err := p.check(); err != nil {
		return gpio.Low, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.digitalRead(p, forceNow), nil
}

func (d *Dev) digitalRead(p Pin, forceNow bool) gpio.Level {
	r := &d.reg
	if r.writeMode.has(p) {
		return d.buf.writeBuffered.level(p)
	}
	v := d.buf.buffered.level(p)
	if !d.buf.latched(r, p) && (forceNow || d.buf.due()) {
		if ok, changed := d.buf.sample(r); ok {
			if changed {
				v = d.buf.buffered.level(p)
			} else {
				v = r.readModePullUp.level(p)
			}
		}
	}
	d.buf.consume(r, p, v)
	return v
}

// DigitalWrite sets the pending level of p and sends the port. Pins that are
// not outputs are sent at their configured start level.
func (d *Dev) DigitalWrite(p Pin, l gpio.Level) error {
	if err := p.check(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buf.writeBuffered = d.buf.writeBuffered.setLevel(p, l)
	if d.reg.writeMode.has(p) {
		d.buf.buffered = d.buf.buffered.setLevel(p, l)
	}
	return d.buf.flush(&d.reg)
}

// DigitalWriteAllArray sets the pending level of all pins, levels[n] being pin
// n, and sends the port in one write.
//
// Values are expected to be 0 or 1. Larger values are shifted into place
// unchecked, so 2 for pin n also sets pin n+1.
func (d *Dev) DigitalWriteAllArray(levels [NumPins]uint8) error {
	var m Mask
	for p, v := range levels {
		m |= Mask(v << p)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buf.writeBuffered = m
	d.buf.buffered = (d.buf.buffered &^ d.reg.writeMode) | (m & d.reg.writeMode)
	return d.buf.flush(&d.reg)
}

// DigitalWriteAllByte drives the output pins from b in one write. Input pins
// are sent at the idle level recorded by Begin.
func (d *Dev) DigitalWriteAllByte(b uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeAll(Mask(b))
}

// DigitalWriteAll drives the output pins from in in one write.
func (d *Dev) DigitalWriteAll(in DigitalInput) error {
	return d.DigitalWriteAllByte(in.Byte())
}

func (d *Dev) writeAll(m Mask) error {
	r := &d.reg
	d.buf.writeBuffered = m
	if err := d.buf.send((m & r.writeMode) | (d.buf.idle & r.readMode)); err != nil {
		return err
	}
	d.buf.buffered = (m & r.writeMode) | (d.buf.idle & r.readMode)
	return nil
}

// DigitalReadAll reads the port once and returns every pin.
//
// Input pins report a latched or freshly sensed transition, output pins the
// last written level, unconfigured pins Low. All input latches are re-armed.
func (d *Dev) DigitalReadAll() DigitalInput {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := &d.reg
	d.buf.sample(r)
	var in DigitalInput
	for ix := range NumPins {
		p := Pin(ix)
		switch {
		case r.readMode.has(p):
			in[p] = d.buf.buffered.level(p)
		case r.writeMode.has(p):
			in[p] = d.buf.writeBuffered.level(p)
		}
	}
	d.buf.buffered = (r.readModePullUp & r.readMode) | (d.buf.buffered &^ r.readMode)
	return in
}

// DigitalReadAllByte is DigitalReadAll packed in a byte.
func (d *Dev) DigitalReadAllByte() uint8 {
	return d.DigitalReadAll().Byte()
}

// DigitalReadAllArray is DigitalReadAll as 0/1 values.
func (d *Dev) DigitalReadAllArray() [NumPins]uint8 {
	return d.DigitalReadAll().Array()
}

// Halt detaches the interrupt, unregisters the pins from gpioreg and closes
// the bus if it was opened by New.
func (d *Dev) Halt() error {
	if err := d.Detach(); err != nil {
		return err
	}
	for _, p := range d.Pins {
		// Another device at the same address may own the name.
		if p != nil && gpioreg.ByName(p.Name()) == p {
			_ = gpioreg.Unregister(p.Name())
		}
	}
	if d.owned != nil {
		err := d.owned.Close()
		d.owned = nil
		return err
	}
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s_%x", d.variant, d.buf.d.Addr)
}
