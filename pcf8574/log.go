// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"log"

	"github.com/golang/glog"
)

// Logger receives the driver's diagnostics.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// StdLogger writes to a standard library logger with a level prefix.
type StdLogger struct {
	l *log.Logger
}

// NewStdLogger returns a Logger printing to l, or to the standard logger if l
// is nil.
func NewStdLogger(l *log.Logger) *StdLogger {
	if l == nil {
		l = log.Default()
	}
	return &StdLogger{l: l}
}

func (s *StdLogger) Debugf(format string, args ...interface{}) {
	s.l.Printf("DEBUG "+format, args...)
}

func (s *StdLogger) Infof(format string, args ...interface{}) {
	s.l.Printf("INFO "+format, args...)
}

func (s *StdLogger) Errorf(format string, args ...interface{}) {
	s.l.Printf("ERROR "+format, args...)
}

// GlogLogger forwards to glog. Debug messages are emitted at verbosity 2.
type GlogLogger struct{}

func (GlogLogger) Debugf(format string, args ...interface{}) {
	glog.V(2).Infof(format, args...)
}

func (GlogLogger) Infof(format string, args ...interface{}) {
	glog.Infof(format, args...)
}

func (GlogLogger) Errorf(format string, args ...interface{}) {
	glog.Errorf(format, args...)
}

var (
	_ Logger = nopLogger{}
	_ Logger = &StdLogger{}
	_ Logger = GlogLogger{}
)
