/*
NAME
  options.go

DESCRIPTION
  options.go provides functional options for configuring the PPM decoder
  constructor, following the same pattern used by the teacher's
  container/mts.NewEncoder.

LICENSE
  Copyright (c) 2026 para contributors
  SPDX-License-Identifier: MIT
*/

package ppm

import (
	"github.com/ausocean/utils/logging"
)

// Option configures a Decoder at construction time.
type Option func(*Decoder)

// WithLogger configures the decoder to emit debug-level traces of its load
// stages and of each frame index requested from FramePixels through l. The
// preceding frames decoded during a dependency walk are not logged
// individually. Decode failures are always
// returned as errors regardless of whether a logger is configured; logging
// is purely diagnostic.
func WithLogger(l logging.Logger) Option {
	return func(d *Decoder) {
		d.log = l
	}
}

// noopLogger discards everything. It is the default when WithLogger is not
// supplied, so library use requires no logging setup.
type noopLogger struct{}

func (noopLogger) Log(int8, string, ...interface{}) {}
func (noopLogger) SetLevel(int8)                    {}
func (noopLogger) Debug(string, ...interface{})     {}
func (noopLogger) Info(string, ...interface{})      {}
func (noopLogger) Warning(string, ...interface{})   {}
func (noopLogger) Error(string, ...interface{})     {}
func (noopLogger) Fatal(string, ...interface{})     {}
