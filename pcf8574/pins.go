// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

type pcfPin struct {
	dev    *Dev
	number Pin
	name   string
}

// DefaultPull returns PullDown, the direction of an input configured without
// an explicit pull.
func (p *pcfPin) DefaultPull() gpio.Pull {
	return gpio.PullDown
}

func (p *pcfPin) Function() string {
	return string(p.Func())
}

func (p *pcfPin) Func() pin.Func {
	if p.dev.Direction(p.number) == Output {
		return gpio.OUT
	}
	return gpio.IN
}

func (p *pcfPin) SupportedFuncs() []pin.Func {
	return supportedFuncs[:]
}

func (p *pcfPin) SetFunc(f pin.Func) error {
	switch f {
	case gpio.IN:
		return p.In(gpio.PullNoChange, gpio.NoEdge)
	case gpio.OUT:
		return p.Out(p.Read())
	default:
		return errors.New("pcf8574: Function not supported: " + string(f))
	}
}

func (p *pcfPin) Halt() error {
	return nil
}

// In configures the pin as input. PullUp selects InputPullUp, anything else
// InputPullDown.
//
// Edges can't be detected on a specific pin; use Dev.Attach on the host pin
// wired to INT instead.
func (p *pcfPin) In(pull gpio.Pull, edge gpio.Edge) error {
	if edge != gpio.NoEdge {
		return errors.New("pcf8574: edge detection not supported, use Dev.Attach")
	}
	dir := InputPullDown
	if pull == gpio.PullUp {
		dir = InputPullUp
	}
	return p.dev.Configure(p.number, dir, gpio.Low)
}

func (p *pcfPin) Name() string {
	return p.name
}

func (p *pcfPin) Number() int {
	return int(p.number)
}

// Out configures the pin as output if needed and writes l.
func (p *pcfPin) Out(l gpio.Level) error {
	if p.dev.Direction(p.number) != Output {
		if err := p.dev.Configure(p.number, Output, l); err != nil {
			return err
		}
	}
	return p.dev.DigitalWrite(p.number, l)
}

func (p *pcfPin) Pull() gpio.Pull {
	switch p.dev.Direction(p.number) {
	case InputPullUp:
		return gpio.PullUp
	case InputPullDown:
		return gpio.PullDown
	default:
		return gpio.Float
	}
}

func (p *pcfPin) Read() gpio.Level {
	// The error is only for out of range pins, which this can't be.
	l, _ := p.dev.DigitalRead(p.number, false)
	return l
}

func (p *pcfPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (p *pcfPin) String() string {
	return p.name
}

// The chip has an interrupt output but it doesn't tell which pin changed.
func (p *pcfPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

var supportedFuncs = [...]pin.Func{gpio.IN, gpio.OUT}

var _ gpio.PinIO = &pcfPin{}
var _ pin.PinFunc = &pcfPin{}
