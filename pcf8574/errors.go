// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import "errors"

var (
	// ErrConfigurationMissing is returned by New when neither a bus nor a bus
	// name was supplied.
	ErrConfigurationMissing = errors.New("pcf8574: no I²C bus and no bus name")
	// ErrDeviceNotFound is returned by New when nothing answers at the
	// configured address.
	ErrDeviceNotFound = errors.New("pcf8574: device not found")
	// ErrInvalidConfiguration is returned for unknown directions, pins outside
	// P0..P7 and addresses outside the variant's range.
	ErrInvalidConfiguration = errors.New("pcf8574: invalid configuration")
	// ErrDeviceUnreachable is returned when a write to the device fails.
	ErrDeviceUnreachable = errors.New("pcf8574: device unreachable")
	// ErrNotImplemented is returned by the gpio facade for features the chip
	// lacks.
	ErrNotImplemented = errors.New("pcf8574: not implemented")
)
