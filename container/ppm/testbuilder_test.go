/*
NAME
  testbuilder_test.go

DESCRIPTION
  testbuilder_test.go assembles synthetic PPM byte buffers in-test, the way
  container/mts/mpegts_test.go assembles synthetic MPEG-TS clips, so that
  the decoder's behavior can be checked against hand-built inputs without
  binary fixture files.

LICENSE
  Copyright (c) 2026 para contributors
  SPDX-License-Identifier: MIT
*/

package ppm

import (
	"bytes"
	"encoding/binary"
)

// ppmBuilder assembles a synthetic PPM container byte-by-byte.
type ppmBuilder struct {
	lock, thumbIndex          uint16
	rootName, parentName, cur string
	parentID, currentID       [8]byte
	rootID, partial           [8]byte
	parentMAC, currentMAC     [3]byte
	parentIdent, currentIdent [13]byte
	parentEdits, currentEdits uint16
	timestampSecs             uint32
	flags                     uint32
	bgmSize, se1, se2, se3    uint32
	rawFrameSpeed, rawBGMSpeed uint8
	frames                    [][]byte
}

// newPPMBuilder returns a builder with innocuous defaults and the given
// per-frame encoded byte sequences (header byte + translation + line-type
// tables + line data, exactly as a real frame's bytes appear at its offset
// table entry).
func newPPMBuilder(frames [][]byte) *ppmBuilder {
	return &ppmBuilder{
		rawFrameSpeed: 5, // -> frame_speed 3 -> framerate 2.0
		rawBGMSpeed:   5,
		frames:        frames,
	}
}

func put22(s string) []byte {
	b := make([]byte, 22)
	copy(b, s)
	return b
}

func putFilename(mac [3]byte, ident [13]byte, edits uint16) []byte {
	var buf bytes.Buffer
	buf.Write(mac[:])
	buf.Write(ident[:])
	binary.Write(&buf, binary.LittleEndian, edits)
	return buf.Bytes()
}

// build assembles the full container buffer.
func (b *ppmBuilder) build() []byte {
	frameCount := uint16(len(b.frames))
	tableSize := uint32(len(b.frames)) * 4

	var animBuf bytes.Buffer
	base := animationHeaderOffset + 8 + int(tableSize)
	offsets := make([]uint32, len(b.frames))
	pos := base
	for i, f := range b.frames {
		offsets[i] = uint32(pos - base)
		pos += len(f)
	}
	for _, f := range b.frames {
		animBuf.Write(f)
	}
	animationDataSize := uint32(animBuf.Len()) + tableSize + 8

	var buf bytes.Buffer

	// Header.
	buf.WriteString("PARA")
	binary.Write(&buf, binary.LittleEndian, animationDataSize)
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // soundDataSize placeholder, patched below.
	binary.Write(&buf, binary.LittleEndian, frameCount-1)
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // version

	// Metadata.
	binary.Write(&buf, binary.LittleEndian, b.lock)
	binary.Write(&buf, binary.LittleEndian, b.thumbIndex)
	buf.Write(put22(b.rootName))
	buf.Write(put22(b.parentName))
	buf.Write(put22(b.cur))
	buf.Write(b.parentID[:])
	buf.Write(b.currentID[:])
	buf.Write(putFilename(b.parentMAC, b.parentIdent, b.parentEdits))
	buf.Write(putFilename(b.currentMAC, b.currentIdent, b.currentEdits))
	buf.Write(b.rootID[:])
	buf.Write(b.partial[:])
	binary.Write(&buf, binary.LittleEndian, b.timestampSecs)

	// Pad to the thumbnail offset, then the thumbnail bitmap, so that the
	// animation header lands exactly at animationHeaderOffset.
	for buf.Len() < thumbnailOffset {
		buf.WriteByte(0)
	}
	buf.Write(make([]byte, thumbnailBytes))
	if buf.Len() != animationHeaderOffset {
		panic("ppm test builder: layout drift before animation header")
	}

	// Animation header.
	binary.Write(&buf, binary.LittleEndian, uint16(tableSize))
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(&buf, binary.LittleEndian, b.flags)
	for _, off := range offsets {
		binary.Write(&buf, binary.LittleEndian, off)
	}
	buf.Write(animBuf.Bytes())

	full := buf.Bytes()
	soundPos := soundHeaderOffsetForBuild(animationDataSize, frameCount)
	for len(full) < soundPos {
		full = append(full, 0)
	}

	var soundBuf bytes.Buffer
	binary.Write(&soundBuf, binary.LittleEndian, b.bgmSize)
	binary.Write(&soundBuf, binary.LittleEndian, b.se1)
	binary.Write(&soundBuf, binary.LittleEndian, b.se2)
	binary.Write(&soundBuf, binary.LittleEndian, b.se3)
	soundBuf.WriteByte(b.rawFrameSpeed)
	soundBuf.WriteByte(b.rawBGMSpeed)

	full = append(full, soundBuf.Bytes()...)

	soundDataSize := uint32(soundBuf.Len())
	binary.LittleEndian.PutUint32(full[8:12], soundDataSize)

	return full
}

// soundHeaderOffsetForBuild mirrors soundHeaderOffset exactly; duplicated
// under a distinct name so the builder does not depend on decoder internals
// changing shape.
func soundHeaderOffsetForBuild(animationDataSize uint32, frameCount uint16) int {
	offset := uint32(animationHeaderOffset) + animationDataSize + uint32(frameCount)
	if offset%2 != 0 {
		offset += 4 - (offset % 4)
	}
	return int(offset)
}

// simpleFrame builds the byte encoding for a frame whose two 48-byte
// line-type tables are all zero (every line empty) and which carries no
// translation or additional line data, i.e. the minimal "all zero pixels"
// frame.
func simpleFrame(header byte) []byte {
	f := make([]byte, 1+48+48)
	f[0] = header
	return f
}

// rawLineFrame builds a frame with a single raw-encoded (type 3) line at
// lineIdx for the given layer (0 or 1) carrying the given 32 raw bytes, all
// other lines empty (type 0).
func rawLineFrame(header byte, layer, lineIdx int, raw [32]byte) []byte {
	var lineTypes [2][48]byte
	lineTypes[layer][lineIdx/4] = 3 << uint((lineIdx%4)*2)

	var buf bytes.Buffer
	buf.WriteByte(header)
	buf.Write(lineTypes[0][:])
	buf.Write(lineTypes[1][:])
	buf.Write(raw[:])
	return buf.Bytes()
}
