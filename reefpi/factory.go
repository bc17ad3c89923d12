// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package reefpi plugs the PCF8574 driver into reef-pi as a HAL driver.
//
// The eight lines are offered both as digital inputs and digital outputs. A
// line changes direction on first use: Write turns it into an output and Read
// turns it back into a pull-up input.
package reefpi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/GermanBionicSystems/expander/pcf8574"
	"github.com/reef-pi/hal"
	rpii2c "github.com/reef-pi/rpi/i2c"
	"periph.io/x/conn/v3/gpio"
)

const (
	paramAddress = "Address" // string, "0x20" or "32"
	paramDebug   = "Debug"   // bool
)

type factory struct {
	meta       hal.Metadata
	parameters []hal.ConfigParameter
}

var (
	f    *factory
	once sync.Once
)

// Factory returns the reef-pi driver factory for the PCF8574.
func Factory() hal.DriverFactory {
	once.Do(func() {
		f = &factory{
			meta: hal.Metadata{
				Name:        "pcf8574",
				Description: "PCF8574/PCF8574A 8-bit I2C GPIO expander",
				Capabilities: []hal.Capability{
					hal.DigitalInput,
					hal.DigitalOutput,
				},
			},
			parameters: []hal.ConfigParameter{
				{Name: paramAddress, Type: hal.String, Order: 0, Default: "0x20"},
				{Name: paramDebug, Type: hal.Boolean, Order: 1, Default: false},
			},
		}
	})
	return f
}

func (f *factory) Metadata() hal.Metadata               { return f.meta }
func (f *factory) GetParameters() []hal.ConfigParameter { return f.parameters }

// parseAddr accepts "0x20" style hex or "32" style decimal.
func parseAddr(s string) (byte, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, errors.New("empty address")
	}
	if strings.HasPrefix(s, "0x") {
		v, err := strconv.ParseUint(s[2:], 16, 8)
		return byte(v), err
	}
	v, err := strconv.ParseUint(s, 10, 8)
	return byte(v), err
}

// variantOf picks the address block addr belongs to.
func variantOf(addr byte) pcf8574.Variant {
	if uint16(addr)&^7 == pcf8574.DefaultAddressA {
		return pcf8574.PCF8574A
	}
	return pcf8574.PCF8574
}

func (f *factory) ValidateParameters(params map[string]interface{}) (bool, map[string][]string) {
	errs := make(map[string][]string)

	addrStr, _ := params[paramAddress].(string)
	if strings.TrimSpace(addrStr) == "" {
		errs[paramAddress] = append(errs[paramAddress], "is required (e.g. 0x20)")
	} else if addr, err := parseAddr(addrStr); err != nil {
		errs[paramAddress] = append(errs[paramAddress], "must be a valid I2C address like 0x20..0x27 or 0x38..0x3f")
	} else if addr > 0x7f {
		errs[paramAddress] = append(errs[paramAddress], "must be a 7-bit address (0..127)")
	}

	if v, ok := params[paramDebug]; ok {
		if _, ok := v.(bool); !ok {
			errs[paramDebug] = append(errs[paramDebug], "must be boolean")
		}
	}

	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

func (f *factory) NewDriver(params map[string]interface{}, bus interface{}) (hal.Driver, error) {
	if ok, failures := f.ValidateParameters(params); !ok {
		return nil, errors.New(hal.ToErrorString(failures))
	}
	rbus, ok := bus.(rpii2c.Bus)
	if !ok {
		return nil, fmt.Errorf("reefpi: expected i2c.Bus, got %T", bus)
	}
	addr, _ := parseAddr(params[paramAddress].(string))
	debug, _ := params[paramDebug].(bool)

	opts := pcf8574.Opts{Variant: variantOf(addr), Addr: uint16(addr)}
	if debug {
		opts.Logger = pcf8574.NewStdLogger(nil)
	}
	dev, err := pcf8574.New(&busPort{bus: rbus}, &opts)
	if err != nil {
		return nil, err
	}
	// All lines released, the power-on state of the chip.
	for p := pcf8574.P0; p <= pcf8574.P7; p++ {
		if err := dev.Configure(p, pcf8574.InputPullUp, gpio.Low); err != nil {
			_ = dev.Halt()
			return nil, err
		}
	}
	if err := dev.Begin(); err != nil {
		_ = dev.Halt()
		return nil, fmt.Errorf("reefpi: initializing 0x%02x: %w", addr, err)
	}

	d := &driver{dev: dev, addr: addr, meta: f.meta}
	for i := 0; i < pcf8574.NumPins; i++ {
		d.pins = append(d.pins, &pin{driver: d, number: pcf8574.Pin(i)})
	}
	return d, nil
}
