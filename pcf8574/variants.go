// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

// Variant is the type denoting a specific variant of the chip.
type Variant string

const (
	PCF8574  Variant = "PCF8574"  // PCF8574  8-bit I²C expander. Datasheet: https://www.ti.com/lit/ds/symlink/pcf8574.pdf
	PCF8574A Variant = "PCF8574A" // PCF8574A 8-bit I²C expander, alternate address block.
)

const (
	// DefaultAddress is the address of a PCF8574 with A0..A2 tied low.
	DefaultAddress uint16 = 0x20
	// DefaultAddressA is the address of a PCF8574A with A0..A2 tied low.
	DefaultAddressA uint16 = 0x38
)

type variant struct {
	addStart uint16
	addEnd   uint16
}

var variants = map[Variant]variant{
	PCF8574:  {addStart: 0x20, addEnd: 0x27},
	PCF8574A: {addStart: 0x38, addEnd: 0x3f},
}

// isAddrInvalid checks to see if the address is used by the chip.
func (v variant) isAddrInvalid(addr uint16) bool {
	return addr < v.addStart || v.addEnd < addr
}

func (v variant) defaultAddr() uint16 {
	return v.addStart
}
