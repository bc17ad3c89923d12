// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
)

func TestDigitalInput(t *testing.T) {
	in := DigitalInputFromByte(0xa5)
	want := DigitalInput{gpio.High, gpio.Low, gpio.High, gpio.Low, gpio.Low, gpio.High, gpio.Low, gpio.High}
	if diff := cmp.Diff(want, in); diff != "" {
		t.Errorf("DigitalInputFromByte() mismatch (-want +got):\n%s", diff)
	}
	if b := in.Byte(); b != 0xa5 {
		t.Errorf("Byte() = %#x", b)
	}
	if diff := cmp.Diff([NumPins]uint8{1, 0, 1, 0, 0, 1, 0, 1}, in.Array()); diff != "" {
		t.Errorf("Array() mismatch (-want +got):\n%s", diff)
	}
	if s := in.String(); s != "P0=1 P1=0 P2=1 P3=0 P4=0 P5=1 P6=0 P7=1" {
		t.Errorf("String() = %q", s)
	}
}

func TestDigitalInput_getSet(t *testing.T) {
	var in DigitalInput
	in.Set(P6, gpio.High)
	in.Set(12, gpio.High)
	if !in.Get(P6) {
		t.Error("Get(P6) = Low")
	}
	if in.Get(12) {
		t.Error("Get(12) = High")
	}
	if b := in.Byte(); b != 0x40 {
		t.Errorf("Byte() = %#x", b)
	}
	in.SetAll([NumPins]uint8{0, 3})
	if b := in.Byte(); b != 0x02 {
		t.Errorf("Byte() after SetAll = %#x", b)
	}
	if b := DigitalInputFromArray([NumPins]uint8{7: 1}).Byte(); b != 0x80 {
		t.Errorf("DigitalInputFromArray().Byte() = %#x", b)
	}
}
