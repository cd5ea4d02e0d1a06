/*
NAME
  header.go

DESCRIPTION
  header.go decodes the 16-byte PPM file header at offset 0: magic,
  section sizes, and frame count.

LICENSE
  Copyright (c) 2026 para contributors
  SPDX-License-Identifier: MIT
*/

package ppm

import (
	"github.com/pkg/errors"
)

// magic is the expected first four bytes of a well-formed PPM container.
var magic = [4]byte{'P', 'A', 'R', 'A'}

// fileHeader is the decoded form of the 16-byte container header at
// offset 0x000.
type fileHeader struct {
	animationDataSize uint32
	soundDataSize     uint32
	frameCount        uint16 // raw header value + 1, per spec.
	version           uint16 // decoded but not otherwise used.
}

// readHeader decodes the file header from c. It seeks c to offset 0 first,
// so the cursor's position on entry does not matter.
func readHeader(c *Cursor) (fileHeader, error) {
	c.Seek(0)

	m, err := c.ReadBytes(4)
	if err != nil {
		return fileHeader{}, errors.Wrap(err, "reading magic")
	}
	if m[0] != magic[0] || m[1] != magic[1] || m[2] != magic[2] || m[3] != magic[3] {
		return fileHeader{}, errors.Wrapf(ErrBadMagic, "got %q", m)
	}

	animSize, err := c.ReadUint32LE()
	if err != nil {
		return fileHeader{}, errors.Wrap(err, "reading animation data size")
	}

	soundSize, err := c.ReadUint32LE()
	if err != nil {
		return fileHeader{}, errors.Wrap(err, "reading sound data size")
	}

	rawCount, err := c.ReadUint16LE()
	if err != nil {
		return fileHeader{}, errors.Wrap(err, "reading frame count")
	}

	version, err := c.ReadUint16LE()
	if err != nil {
		return fileHeader{}, errors.Wrap(err, "reading version")
	}

	return fileHeader{
		animationDataSize: animSize,
		soundDataSize:     soundSize,
		frameCount:        rawCount + 1,
		version:           version,
	}, nil
}
