/*
NAME
  animation.go

DESCRIPTION
  animation.go decodes the animation header: the visibility/loop flags and
  the per-frame offset table.

LICENSE
  Copyright (c) 2026 para contributors
  SPDX-License-Identifier: MIT
*/

package ppm

import (
	"github.com/pkg/errors"
)

// animationHeaderOffset is the fixed absolute offset of the animation
// header.
const animationHeaderOffset = 0x06A0

// Bit positions within the animation header's packed flags word.
const (
	loopBit         = 1
	layer2VisibleBit = 10
	layer1VisibleBit = 11
)

// animationHeader is the decoded animation table header: visibility/loop
// flags plus the absolute byte offset of each frame's encoded data.
type animationHeader struct {
	layer1Visible bool
	layer2Visible bool
	loop          bool
	offsetTable   []uint32
}

// readAnimationHeader decodes the animation header at animationHeaderOffset.
// frameCount is used only to size-check the resulting offset table against
// spec.md's invariant that len(offsetTable) == frameCount.
func readAnimationHeader(c *Cursor, frameCount uint16) (animationHeader, error) {
	c.Seek(animationHeaderOffset)

	tableSize, err := c.ReadUint16LE()
	if err != nil {
		return animationHeader{}, errors.Wrap(err, "reading animation table size")
	}
	if _, err := c.ReadUint16LE(); err != nil { // reserved
		return animationHeader{}, errors.Wrap(err, "reading reserved animation header field")
	}
	flags, err := c.ReadUint32LE()
	if err != nil {
		return animationHeader{}, errors.Wrap(err, "reading animation flags")
	}

	h := animationHeader{
		layer1Visible: flags>>layer1VisibleBit&1 != 0,
		layer2Visible: flags>>layer2VisibleBit&1 != 0,
		loop:          flags>>loopBit&1 != 0,
	}

	raw, err := c.ReadBytes(int(tableSize))
	if err != nil {
		return animationHeader{}, errors.Wrap(err, "reading animation offset table")
	}

	base := uint32(animationHeaderOffset) + 8 + uint32(tableSize)
	h.offsetTable = make([]uint32, tableSize/4)
	for i := range h.offsetTable {
		off := i * 4
		v := uint32(raw[off]) | uint32(raw[off+1])<<8 | uint32(raw[off+2])<<16 | uint32(raw[off+3])<<24
		h.offsetTable[i] = v + base
	}

	if len(h.offsetTable) != int(frameCount) {
		return animationHeader{}, errors.Errorf("ppm: offset table has %d entries, want %d (frame count)", len(h.offsetTable), frameCount)
	}

	return h, nil
}
