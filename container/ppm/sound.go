/*
NAME
  sound.go

DESCRIPTION
  sound.go locates the audio section following the animation data and
  decodes its four section sizes and the frame/BGM speed bytes.

LICENSE
  Copyright (c) 2026 para contributors
  SPDX-License-Identifier: MIT
*/

package ppm

import (
	"github.com/pkg/errors"
)

// framerates maps a decoded speed value (1..=8) to frames per second.
var framerates = map[uint8]float64{
	1: 0.5,
	2: 1.0,
	3: 2.0,
	4: 4.0,
	5: 6.0,
	6: 12.0,
	7: 20.0,
	8: 30.0,
}

// soundHeader is the decoded audio section header: the four audio payload
// sizes (parsed but not decoded, per spec.md's non-goals) and the derived
// frame/BGM speeds and framerates.
type soundHeader struct {
	bgmSize, se1Size, se2Size, se3Size uint32
	frameSpeed, bgmSpeed               uint8
	framerate, bgmFramerate            float64
}

// soundHeaderOffset computes the absolute offset of the audio section
// header. The alignment rule is asymmetric by design (or by bug) in the
// original source: only odd offsets are rounded up, and they are rounded up
// to the next multiple of 4 rather than 2. This is reproduced verbatim; see
// SPEC_FULL.md §9.
func soundHeaderOffset(animationDataSize uint32, frameCount uint16) uint32 {
	offset := uint32(animationHeaderOffset) + animationDataSize + uint32(frameCount)
	if offset%2 != 0 {
		offset += 4 - (offset % 4)
	}
	return offset
}

// readSoundHeader decodes the audio section header.
func readSoundHeader(c *Cursor, animationDataSize uint32, frameCount uint16) (soundHeader, error) {
	c.Seek(int(soundHeaderOffset(animationDataSize, frameCount)))

	var h soundHeader
	var err error
	if h.bgmSize, err = c.ReadUint32LE(); err != nil {
		return soundHeader{}, errors.Wrap(err, "reading BGM size")
	}
	if h.se1Size, err = c.ReadUint32LE(); err != nil {
		return soundHeader{}, errors.Wrap(err, "reading SE1 size")
	}
	if h.se2Size, err = c.ReadUint32LE(); err != nil {
		return soundHeader{}, errors.Wrap(err, "reading SE2 size")
	}
	if h.se3Size, err = c.ReadUint32LE(); err != nil {
		return soundHeader{}, errors.Wrap(err, "reading SE3 size")
	}

	rawFrameSpeed, err := c.ReadUint8()
	if err != nil {
		return soundHeader{}, errors.Wrap(err, "reading frame speed")
	}
	rawBGMSpeed, err := c.ReadUint8()
	if err != nil {
		return soundHeader{}, errors.Wrap(err, "reading BGM speed")
	}

	h.frameSpeed = 8 - rawFrameSpeed
	h.bgmSpeed = 8 - rawBGMSpeed

	h.framerate, err = lookupFramerate(h.frameSpeed)
	if err != nil {
		return soundHeader{}, errors.Wrap(err, "resolving frame speed")
	}
	h.bgmFramerate, err = lookupFramerate(h.bgmSpeed)
	if err != nil {
		return soundHeader{}, errors.Wrap(err, "resolving BGM speed")
	}

	return h, nil
}

// lookupFramerate resolves a decoded speed value to frames per second,
// returning ErrInvalidSpeed if speed does not fall in 1..=8.
func lookupFramerate(speed uint8) (float64, error) {
	rate, ok := framerates[speed]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidSpeed, "speed %d not in 1..=8", speed)
	}
	return rate, nil
}
