// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import "periph.io/x/conn/v3/i2c"

// Range of non-reserved 7 bit addresses.
const (
	firstAddr uint16 = 0x08
	lastAddr  uint16 = 0x77
)

// probe reads one byte from addr. Reading the port has no side effect on the
// chip.
func probe(bus i2c.Bus, addr uint16) error {
	var r [1]byte
	return bus.Tx(addr, nil, r[:])
}

// Scan returns the addresses on bus that answer a one byte read.
func Scan(bus i2c.Bus) []uint16 {
	var found []uint16
	for addr := firstAddr; addr <= lastAddr; addr++ {
		if probe(bus, addr) == nil {
			found = append(found, addr)
		}
	}
	return found
}
