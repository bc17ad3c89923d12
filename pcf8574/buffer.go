// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// DebounceWindow is the default minimum interval between two physical reads
// that are not forced.
const DebounceWindow = 100 * time.Millisecond

// ioBuffer caches the port so most reads and writes need no bus traffic.
//
// buffered is the last known composite state: input bits come from the last
// qualifying read (and may hold a latched edge), output bits from the last
// write. writeBuffered holds pending output levels only.
type ioBuffer struct {
	d        *i2c.Dev
	clock    clockwork.Clock
	debounce time.Duration
	log      Logger

	buffered      Mask
	writeBuffered Mask
	idle          Mask
	lastRead      time.Time
}

// send writes one byte to the port.
func (b *ioBuffer) send(v Mask) error {
	if err := b.d.Tx([]byte{byte(v)}, nil); err != nil {
		b.log.Errorf("pcf8574: writing %s to 0x%x: %v", v, b.d.Addr, err)
		return fmt.Errorf("%w: %w", ErrDeviceUnreachable, err)
	}
	return nil
}

// due reports whether the debounce window has passed since the last read.
func (b *ioBuffer) due() bool {
	return b.clock.Since(b.lastRead) > b.debounce
}

// readPort writes the read mask so inputs are released, then reads the port
// back. The read timestamp is updated on every attempt. ok is false when the
// transport returned nothing.
func (b *ioBuffer) readPort(readMode Mask) (in Mask, ok bool) {
	var r [1]byte
	err := b.d.Tx([]byte{byte(readMode)}, r[:])
	b.lastRead = b.clock.Now()
	if err != nil {
		b.log.Debugf("pcf8574: read from 0x%x ignored: %v", b.d.Addr, err)
		return 0, false
	}
	in = Mask(r[0])
	b.log.Debugf("pcf8574: read %s", in)
	return in, true
}

// merge replaces the input bits of buffered with those of in.
func (b *ioBuffer) merge(in, readMode Mask) {
	b.buffered = (b.buffered &^ readMode) | (in & readMode)
}

// sample performs a physical read and merges it when it shows an input away
// from its idle level. It reports whether the read succeeded and whether it
// was merged.
func (b *ioBuffer) sample(r *registry) (ok, changed bool) {
	in, ok := b.readPort(r.readMode)
	if !ok {
		return false, false
	}
	if r.edge(in) {
		b.log.Debugf("pcf8574: change detected, buffered %s -> %s", b.buffered, (b.buffered&^r.readMode)|(in&r.readMode))
		b.merge(in, r.readMode)
		return true, true
	}
	return true, false
}

// latched reports whether buffered holds an unreported transition on p.
func (b *ioBuffer) latched(r *registry, p Pin) bool {
	return (r.readModePullDown.has(p) && b.buffered.has(p)) ||
		(r.readModePullUp.has(p) && !b.buffered.has(p))
}

// consume re-arms the latch of p once v, a level away from the idle level,
// has been reported for it.
func (b *ioBuffer) consume(r *registry, p Pin, v gpio.Level) {
	if v == r.readModePullUp.level(p) || !b.latched(r, p) {
		return
	}
	b.buffered ^= p.bit()
}

// flush sends the pending output levels. Pins that are not outputs rest at
// their configured start level.
func (b *ioBuffer) flush(r *registry) error {
	return b.send((b.writeBuffered & r.writeMode) | (r.writeModeUp &^ r.writeMode))
}
