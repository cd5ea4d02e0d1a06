/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel error values returned by the PPM decoder.
  Call sites wrap these with github.com/pkg/errors to add positional
  context; callers can still match with errors.Is.

LICENSE
  Copyright (c) 2026 para contributors
  SPDX-License-Identifier: MIT
*/

package ppm

import "errors"

// Sentinel errors corresponding to the failure kinds enumerated in the
// decoder's error handling design. Errors surfaced by this package wrap one
// of these, except the error for an animation offset table whose length
// does not match the frame count, which wraps none of them.
var (
	// ErrTruncated indicates a read went past the end of the input buffer.
	ErrTruncated = errors.New("ppm: truncated input")

	// ErrBadMagic indicates the first four bytes were not "PARA".
	ErrBadMagic = errors.New("ppm: bad magic")

	// ErrInvalidSpeed indicates a decoded frame or BGM speed byte did not
	// fall in the range 1..=8 after the 8-minus-stored-value transform.
	ErrInvalidSpeed = errors.New("ppm: invalid speed value")

	// ErrInvalidFrame indicates a frame index was out of range for the
	// container's frame count.
	ErrInvalidFrame = errors.New("ppm: invalid frame index")

	// ErrInvalidPenIndex indicates a palette pen lookup resolved to the
	// reserved "no pen" index 0 for a layer slot.
	ErrInvalidPenIndex = errors.New("ppm: invalid pen index")

	// ErrInvalidText indicates an author-name buffer was not valid UTF-8
	// after NUL-stripping.
	ErrInvalidText = errors.New("ppm: invalid text encoding")
)
