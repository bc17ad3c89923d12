// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"strings"

	"periph.io/x/conn/v3/gpio"
)

// DigitalInput is the level of all eight pins, index n being pin n.
type DigitalInput [NumPins]gpio.Level

// DigitalInputFromByte unpacks b, bit n being pin n.
func DigitalInputFromByte(b uint8) DigitalInput {
	var in DigitalInput
	for p := range in {
		in[p] = Mask(b).level(Pin(p))
	}
	return in
}

// DigitalInputFromArray converts 0/1 values. Any non-zero value is High.
func DigitalInputFromArray(a [NumPins]uint8) DigitalInput {
	var in DigitalInput
	in.SetAll(a)
	return in
}

// Get returns the level of pin p. It returns Low for pins outside P0..P7.
func (in *DigitalInput) Get(p Pin) gpio.Level {
	if !p.valid() {
		return gpio.Low
	}
	return in[p]
}

// Set changes the level of pin p. Pins outside P0..P7 are ignored.
func (in *DigitalInput) Set(p Pin, l gpio.Level) {
	if p.valid() {
		in[p] = l
	}
}

// SetAll replaces every level from a 0/1 array.
func (in *DigitalInput) SetAll(a [NumPins]uint8) {
	for p, v := range a {
		in[p] = v != 0
	}
}

// Byte packs the levels, bit n being pin n.
func (in DigitalInput) Byte() uint8 {
	var m Mask
	for p, l := range in {
		m = m.setLevel(Pin(p), l)
	}
	return uint8(m)
}

// Array returns the levels as 0/1 values.
func (in DigitalInput) Array() [NumPins]uint8 {
	var a [NumPins]uint8
	for p, l := range in {
		if l {
			a[p] = 1
		}
	}
	return a
}

func (in DigitalInput) String() string {
	var b strings.Builder
	for p, l := range in {
		if p != 0 {
			b.WriteByte(' ')
		}
		b.WriteString("P")
		b.WriteByte('0' + byte(p))
		b.WriteByte('=')
		if l {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
