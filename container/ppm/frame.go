/*
NAME
  frame.go

DESCRIPTION
  frame.go implements the per-frame line-type decompression and the
  previous-frame XOR compositing that reconstructs each two-layer 1-bit
  raster frame. It maintains the rolling two-frame state described in
  spec.md §3 and §4.5.

LICENSE
  Copyright (c) 2026 para contributors
  SPDX-License-Identifier: MIT
*/

package ppm

import (
	"github.com/pkg/errors"
)

const (
	frameWidth  = 256
	frameHeight = 192
)

// plane is one 256x192 single-bit layer, stored row-major with cell values
// 0 or 1.
type plane [frameHeight][frameWidth]uint8

// layers holds both layer planes (layer 0, layer 1) for a single frame.
type layers [2]plane

// frameHeader is the decoded form of a frame's one-byte header: bit 7 is
// isNewFrame, bits 5..6 (nonzero) mean isTranslated, bits 1..2 are the
// layer-1 pen index, bits 3..4 are the layer-2 pen index, and bit 0 is the
// paper color flag.
type frameHeader struct {
	isNewFrame   bool
	isTranslated bool
	layer1Pen    uint8
	layer2Pen    uint8
	paperWhite   bool
}

func decodeFrameHeaderByte(b uint8) frameHeader {
	return frameHeader{
		isNewFrame:   b>>7&0x1 != 0,
		isTranslated: b>>5&0x3 != 0,
		layer1Pen:    b >> 1 & 0x3,
		layer2Pen:    b >> 3 & 0x3,
		paperWhite:   b&0x1 != 0,
	}
}

// frameDecoder reconstructs frames into a rolling pair of "current" and
// "previous" layer states, per spec.md §4.5. It is not safe for concurrent
// use: read calls mutate shared bitmap state and the cursor's position.
type frameDecoder struct {
	c           *Cursor
	offsetTable []uint32

	cur, prev *layers
	// prevFrameIndex is the index of the most recently fully-decoded frame,
	// or -1 if no frame has been decoded yet.
	prevFrameIndex int
}

func newFrameDecoder(c *Cursor, offsetTable []uint32) *frameDecoder {
	return &frameDecoder{
		c:              c,
		offsetTable:    offsetTable,
		cur:            &layers{},
		prev:           &layers{},
		prevFrameIndex: -1,
	}
}

// headerByteAt reads the one-byte frame header at the offset table entry
// for index i without otherwise mutating decoder state.
func (d *frameDecoder) headerByteAt(i int) (uint8, error) {
	d.c.Seek(int(d.offsetTable[i]))
	b, err := d.c.ReadUint8()
	if err != nil {
		return 0, errors.Wrapf(err, "reading frame header byte for frame %d", i)
	}
	return b, nil
}

// readFrame decodes frame i into d.cur, resolving any chain of preceding
// non-new frames it depends on first. The dependency walk is iterative
// (not recursive, per spec.md §9) to avoid stack depth proportional to
// animation length: it walks backward from i collecting a contiguous run of
// frames that must be (re-)decoded, then decodes that run forward.
func (d *frameDecoder) readFrame(i int) error {
	// Build the list of frame indices that must be decoded, in descending
	// order, stopping at frame 0, a new frame, or a frame whose predecessor
	// is already the decoder's current state.
	var chain []int
	idx := i
	for {
		chain = append(chain, idx)
		if idx == 0 {
			break
		}
		hb, err := d.headerByteAt(idx)
		if err != nil {
			return err
		}
		if decodeFrameHeaderByte(hb).isNewFrame {
			break
		}
		if d.prevFrameIndex == idx-1 {
			break
		}
		idx--
	}

	// Decode in ascending order.
	for k := len(chain) - 1; k >= 0; k-- {
		if err := d.decodeOne(chain[k]); err != nil {
			return errors.Wrapf(err, "decoding frame %d", chain[k])
		}
	}
	return nil
}

// decodeOne decodes a single frame, assuming its predecessor (if any) is
// already reflected in d.prev via the roll below.
func (d *frameDecoder) decodeOne(i int) error {
	// Roll state: swap current into previous by reference, then clear
	// current. No large buffer copy is needed.
	d.cur, d.prev = d.prev, d.cur
	*d.cur = layers{}
	d.prevFrameIndex = i

	d.c.Seek(int(d.offsetTable[i]))

	hb, err := d.c.ReadUint8()
	if err != nil {
		return errors.Wrap(err, "reading frame header")
	}
	hdr := decodeFrameHeaderByte(hb)

	var tx, ty int8
	if hdr.isTranslated {
		if tx, err = d.c.ReadInt8(); err != nil {
			return errors.Wrap(err, "reading x translation")
		}
		if ty, err = d.c.ReadInt8(); err != nil {
			return errors.Wrap(err, "reading y translation")
		}
	}

	var lineTypes [2][]byte
	for layer := range lineTypes {
		lineTypes[layer], err = d.c.ReadBytes(48)
		if err != nil {
			return errors.Wrapf(err, "reading line-type table for layer %d", layer)
		}
	}

	for layer := 0; layer < 2; layer++ {
		for line := 0; line < frameHeight; line++ {
			lt := lineTypes[layer][line/4] >> uint((line%4)*2) & 0x3
			if err := decodeLine(d.c, lt, &d.cur[layer][line]); err != nil {
				return errors.Wrapf(err, "decoding layer %d line %d", layer, line)
			}
		}
	}

	if !hdr.isNewFrame {
		compositeXOR(d.cur, d.prev, int(tx), int(ty))
	}

	return nil
}

// decodeLine decodes a single 256-pixel row according to its 2-bit line
// type:
//
//	0: the row is all zero (dst is left untouched, already zeroed by the
//	   caller's per-frame clear).
//	1: chunked, starting from zero.
//	2: chunked, starting from all-ones.
//	3: raw, fully specified by 32 bytes.
//
// Chunked rows are split into 32 groups of 8 pixels gated by one bit each
// of a 32-bit big-endian usage mask, consumed from its most-significant
// bit. A set bit means the following byte is read and expanded LSB-first
// into that group of 8 pixels; a clear bit means the group is skipped
// (left at its starting value).
func decodeLine(c *Cursor, lineType uint8, dst *[frameWidth]uint8) error {
	switch lineType {
	case 0:
		return nil
	case 1, 2:
		if lineType == 2 {
			for i := range dst {
				dst[i] = 1
			}
		}
		mask, err := c.ReadUint32BE()
		if err != nil {
			return errors.Wrap(err, "reading chunk usage mask")
		}
		for pixel := 0; pixel < frameWidth; {
			if mask&0x8000_0000 == 0 {
				pixel += 8
			} else {
				b, err := c.ReadUint8()
				if err != nil {
					return errors.Wrap(err, "reading chunk byte")
				}
				for bit := 0; bit < 8; bit++ {
					dst[pixel] = b >> uint(bit) & 0x1
					pixel++
				}
			}
			mask <<= 1
		}
		return nil
	case 3:
		for pixel := 0; pixel < frameWidth; {
			b, err := c.ReadUint8()
			if err != nil {
				return errors.Wrap(err, "reading raw byte")
			}
			for bit := 0; bit < 8; bit++ {
				dst[pixel] = b >> uint(bit) & 0x1
				pixel++
			}
		}
		return nil
	default:
		// Unreachable: lt is masked to 2 bits by the caller.
		return errors.Errorf("ppm: impossible line type %d", lineType)
	}
}

// compositeXOR XORs cur in place with prev, sampling prev at (x-tx, y-ty).
// The row loop stops early once y-ty reaches 192 and the column loop stops
// early once x-tx reaches 256, per spec.md §4.5. Rows and columns whose
// source coordinate would be negative are skipped rather than wrapping,
// resolving the ambiguity spec.md §9 flags in the original source's
// unsigned wrap-around arithmetic.
func compositeXOR(cur, prev *layers, tx, ty int) {
	for y := 0; y < frameHeight; y++ {
		sy := y - ty
		if sy >= frameHeight {
			break
		}
		if sy < 0 {
			continue
		}
		for x := 0; x < frameWidth; x++ {
			sx := x - tx
			if sx >= frameWidth {
				break
			}
			if sx < 0 {
				continue
			}
			cur[0][y][x] ^= prev[0][sy][sx]
			cur[1][y][x] ^= prev[1][sy][sx]
		}
	}
}
