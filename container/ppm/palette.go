/*
NAME
  palette.go

DESCRIPTION
  palette.go derives a frame's 3-entry RGB palette (paper, layer-1 pen,
  layer-2 pen) from the same one-byte frame header read by the frame
  decoder. It holds no decode state of its own.

LICENSE
  Copyright (c) 2026 para contributors
  SPDX-License-Identifier: MIT
*/

package ppm

import (
	"image/color"

	"github.com/pkg/errors"
)

// Frame RGB colors. black is deliberately 0x0E0E0E, not 0x000000 — this
// matches the original source and must not be "corrected" to pure black.
var (
	black = color.RGBA{R: 0x0E, G: 0x0E, B: 0x0E, A: 0xFF}
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	red   = color.RGBA{R: 0xFF, G: 0x2A, B: 0x2A, A: 0xFF}
	blue  = color.RGBA{R: 0x0A, G: 0x39, B: 0xFF, A: 0xFF}
)

// framePalette resolves the header byte at offset into the three colors
// [paper, layer-1 pen, layer-2 pen]. Pen index 0 ("no pen") is reserved and
// must not be selected for either layer slot in a well-formed container;
// if it is, ErrInvalidPenIndex is returned.
func framePalette(c *Cursor, offset uint32) ([3]color.RGBA, error) {
	c.Seek(int(offset))
	hb, err := c.ReadUint8()
	if err != nil {
		return [3]color.RGBA{}, errors.Wrap(err, "reading frame header for palette")
	}
	hdr := decodeFrameHeaderByte(hb)

	paper := black
	penPaper := white
	if hdr.paperWhite {
		paper = white
		penPaper = black
	}
	pen := [4]*color.RGBA{nil, &penPaper, &red, &blue}

	l1 := pen[hdr.layer1Pen]
	if l1 == nil {
		return [3]color.RGBA{}, errors.Wrapf(ErrInvalidPenIndex, "layer 1 pen index is 0 at offset 0x%x", offset)
	}
	l2 := pen[hdr.layer2Pen]
	if l2 == nil {
		return [3]color.RGBA{}, errors.Wrapf(ErrInvalidPenIndex, "layer 2 pen index is 0 at offset 0x%x", offset)
	}

	return [3]color.RGBA{paper, *l1, *l2}, nil
}
