// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pinview renders the levels of an expander port to a terminal using
// ANSI color codes, one block per pin, P0 first.
//
// Useful to watch inputs while wiring a board.
package pinview

import (
	"bytes"
	"image/color"
	"io"
	"sync"

	"github.com/GermanBionicSystems/expander/pcf8574"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for this view.
type Opts struct {
	Palette *ansi256.Palette
	// High and Low are the colors of pins at each level. The zero value
	// selects green and dark red respectively.
	High color.NRGBA
	Low  color.NRGBA

	_ struct{}
}

var (
	defaultHigh = color.NRGBA{0, 255, 0, 255}
	defaultLow  = color.NRGBA{96, 0, 0, 255}
)

// Source is anything that can snapshot the port, like *pcf8574.Dev.
type Source interface {
	DigitalReadAll() pcf8574.DigitalInput
}

// Dev writes port snapshots on a single terminal line.
type Dev struct {
	w    io.Writer
	high string
	low  string

	mu  sync.Mutex
	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// NewWriter returns a Dev that writes to w.
func NewWriter(w io.Writer, opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	high, low := opts.High, opts.Low
	if high == (color.NRGBA{}) {
		high = defaultHigh
	}
	if low == (color.NRGBA{}) {
		low = defaultLow
	}
	return &Dev{
		w:    w,
		high: p.Block(high),
		low:  p.Block(low),
	}
}

func (d *Dev) String() string {
	return "PinView"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes and moves to the next line.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show redraws the line with in.
func (d *Dev) Show(in pcf8574.DigitalInput) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for _, l := range in {
		if l {
			_, _ = d.buf.WriteString(d.high)
		} else {
			_, _ = d.buf.WriteString(d.low)
		}
	}
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return err
}

// Refresh snapshots src and shows it.
func (d *Dev) Refresh(src Source) error {
	return d.Show(src.DigitalReadAll())
}
