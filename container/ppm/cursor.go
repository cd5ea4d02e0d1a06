/*
NAME
  cursor.go

DESCRIPTION
  cursor.go provides a positioned reader over an in-memory byte buffer for
  decoding the little-endian and big-endian integer fields used throughout
  the PPM container.

LICENSE
  Copyright (c) 2026 para contributors
  SPDX-License-Identifier: MIT
*/

package ppm

import (
	"github.com/pkg/errors"
)

// Cursor reads little-endian and big-endian integers and raw byte slices
// from a fixed in-memory buffer at an absolute, explicitly-set position.
// Unlike an io.Reader, a Cursor can jump to any absolute offset, which the
// PPM format requires for its offset table and its sound-header alignment
// rule.
//
// A Cursor is not safe for concurrent use.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a Cursor reading from buf starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Pos returns the current absolute offset.
func (c *Cursor) Pos() int { return c.pos }

// Seek sets the absolute offset for the next read.
func (c *Cursor) Seek(pos int) { c.pos = pos }

// require checks that n bytes are available starting at the current
// position, returning ErrTruncated wrapped with context otherwise.
func (c *Cursor) require(n int) error {
	if c.pos < 0 || n < 0 || c.pos+n > len(c.buf) {
		return errors.Wrapf(ErrTruncated, "need %d bytes at offset 0x%x, have %d", n, c.pos, len(c.buf))
	}
	return nil
}

// ReadBytes reads and returns the next n bytes, advancing the cursor.
// The returned slice aliases the underlying buffer and must not be
// retained past further decoding if the buffer may be reused.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadUint8 reads one byte as an unsigned 8-bit integer.
func (c *Cursor) ReadUint8() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

// ReadInt8 reads one byte as a signed 8-bit integer.
func (c *Cursor) ReadInt8() (int8, error) {
	v, err := c.ReadUint8()
	return int8(v), err
}

// ReadUint16LE reads two bytes as a little-endian unsigned 16-bit integer.
func (c *Cursor) ReadUint16LE() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := uint16(c.buf[c.pos]) | uint16(c.buf[c.pos+1])<<8
	c.pos += 2
	return v, nil
}

// ReadUint32LE reads four bytes as a little-endian unsigned 32-bit integer.
func (c *Cursor) ReadUint32LE() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := uint32(c.buf[c.pos]) | uint32(c.buf[c.pos+1])<<8 |
		uint32(c.buf[c.pos+2])<<16 | uint32(c.buf[c.pos+3])<<24
	c.pos += 4
	return v, nil
}

// ReadUint32BE reads four bytes as a big-endian unsigned 32-bit integer.
// Only the chunk-usage mask in the frame line decoder uses this byte order.
func (c *Cursor) ReadUint32BE() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := uint32(c.buf[c.pos])<<24 | uint32(c.buf[c.pos+1])<<16 |
		uint32(c.buf[c.pos+2])<<8 | uint32(c.buf[c.pos+3])
	c.pos += 4
	return v, nil
}
