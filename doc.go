// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package expander is a container for the PCF8574 I/O expander driver and
// its integrations.
//
// The driver itself lives in package pcf8574. Package pinview renders pin
// snapshots to a terminal and package reefpi plugs the driver into the
// reef-pi hardware abstraction layer.
package expander
