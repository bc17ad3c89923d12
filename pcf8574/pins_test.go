// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

func TestPins_registered(t *testing.T) {
	dev, _ := newPort(t, clockwork.NewFakeClock(), 0xff)
	for ix, p := range dev.Pins {
		want := "PCF8574_20_GPIO" + string(rune('0'+ix))
		if p.Name() != want {
			t.Errorf("Name() = %q, want %q", p.Name(), want)
		}
		if gpioreg.ByName(want) != p {
			t.Errorf("gpioreg.ByName(%q) is not the device pin", want)
		}
		if p.String() != want {
			t.Errorf("String() = %q", p.String())
		}
	}
}

func TestPin_Out(t *testing.T) {
	dev, bus := newPort(t, clockwork.NewFakeClock(), 0xff)
	p := dev.Pins[3]
	must(t, p.Out(gpio.High))
	must(t, p.Out(gpio.Low))
	if diff := cmp.Diff([]uint8{0x08, 0x00}, bus.writes()); diff != "" {
		t.Errorf("writes mismatch (-want +got):\n%s", diff)
	}
	if d := dev.Direction(P3); d != Output {
		t.Errorf("Direction() = %s, want Output", d)
	}
	if f := p.(pin.PinFunc).Func(); f != gpio.OUT {
		t.Errorf("Func() = %s, want OUT", f)
	}
	if f := p.Function(); f != string(gpio.OUT) {
		t.Errorf("Function() = %s", f)
	}
	if l := p.Read(); l != gpio.Low {
		t.Errorf("Read() = %s, want Low", l)
	}
	if n := bus.readCount(); n != 0 {
		t.Errorf("%d reads, want 0", n)
	}
}

func TestPin_In(t *testing.T) {
	clock := clockwork.NewFakeClock()
	dev, bus := newPort(t, clock, 0xff)
	p := dev.Pins[3]
	must(t, p.In(gpio.PullUp, gpio.NoEdge))
	if pull := p.Pull(); pull != gpio.PullUp {
		t.Errorf("Pull() = %s, want PullUp", pull)
	}
	if f := p.(pin.PinFunc).Func(); f != gpio.IN {
		t.Errorf("Func() = %s, want IN", f)
	}
	must(t, dev.Begin())
	clock.Advance(afterWindow)
	bus.set(0xf7)
	if l := p.Read(); l != gpio.Low {
		t.Errorf("Read() = %s, want Low", l)
	}

	must(t, p.In(gpio.Float, gpio.NoEdge))
	if pull := p.Pull(); pull != gpio.PullDown {
		t.Errorf("Pull() = %s, want PullDown", pull)
	}
	if err := p.In(gpio.PullUp, gpio.FallingEdge); err == nil {
		t.Error("expected error for edge detection")
	}
}

func TestPin_unsupported(t *testing.T) {
	dev, _ := newPort(t, clockwork.NewFakeClock(), 0xff)
	p := dev.Pins[0]
	if err := p.PWM(gpio.DutyHalf, physic.KiloHertz); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("PWM() = %v", err)
	}
	if p.WaitForEdge(time.Millisecond) {
		t.Error("WaitForEdge() = true")
	}
	if pull := p.Pull(); pull != gpio.Float {
		t.Errorf("Pull() of unconfigured pin = %s, want Float", pull)
	}
	if pull := p.DefaultPull(); pull != gpio.PullDown {
		t.Errorf("DefaultPull() = %s", pull)
	}
	if p.Number() != 0 {
		t.Errorf("Number() = %d", p.Number())
	}
	must(t, p.Halt())
}

func TestPin_SetFunc(t *testing.T) {
	dev, _ := newPort(t, clockwork.NewFakeClock(), 0xff)
	pf := dev.Pins[1].(*pcfPin)
	if diff := cmp.Diff([]string{"IN", "OUT"}, []string{string(pf.SupportedFuncs()[0]), string(pf.SupportedFuncs()[1])}); diff != "" {
		t.Errorf("SupportedFuncs() mismatch (-want +got):\n%s", diff)
	}
	must(t, pf.SetFunc(gpio.OUT))
	if d := dev.Direction(P1); d != Output {
		t.Errorf("Direction() = %s, want Output", d)
	}
	must(t, pf.SetFunc(gpio.IN))
	if d := dev.Direction(P1); d != InputPullDown {
		t.Errorf("Direction() = %s, want InputPullDown", d)
	}
	if err := pf.SetFunc("I2C_SDA"); err == nil {
		t.Error("expected error")
	}
}
