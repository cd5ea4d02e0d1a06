/*
NAME
  decoder.go

DESCRIPTION
  decoder.go is the package's facade: it drives the header -> meta ->
  animation -> sound load sequence once, then exposes frame count,
  framerate, thumbnail index, metadata, per-frame pixels and per-frame
  palette to callers.

LICENSE
  Copyright (c) 2026 para contributors
  SPDX-License-Identifier: MIT
*/

// Package ppm decodes the Flipnote Studio "PPM" animation container: a
// sequence of two-layer 256x192 1-bit raster frames compressed by a
// line-type scheme and optionally diffed against the previous frame via an
// XOR delta with integer translation.
package ppm

import (
	"image"
	"image/color"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

// Decoder holds a fully-parsed PPM container's state: its metadata, its
// animation offset table, and the rolling two-frame decode state used to
// reconstruct pixels on demand.
//
// A Decoder is constructed once from an immutable byte buffer via New,
// which performs the full load, and is then queried any number of times.
// It is not safe for concurrent use from multiple goroutines: FramePixels
// mutates shared bitmap state and the underlying cursor's position.
type Decoder struct {
	meta Metadata
	anim animationHeader
	c    *Cursor

	frames *frameDecoder

	log logging.Logger
}

// New loads a PPM container from data: header, metadata, animation header
// and sound header, in that order, per spec.md §3's lifecycle. It returns
// the first error encountered, wrapped with positional context.
func New(data []byte, opts ...Option) (*Decoder, error) {
	d := &Decoder{log: noopLogger{}}
	for _, opt := range opts {
		opt(d)
	}

	d.c = NewCursor(data)

	hdr, err := readHeader(d.c)
	if err != nil {
		return nil, errors.Wrap(err, "reading file header")
	}
	d.log.Debug("decoded file header", "frame_count", hdr.frameCount, "animation_data_size", hdr.animationDataSize, "sound_data_size", hdr.soundDataSize)

	d.meta = Metadata{
		AnimationDataSize: hdr.animationDataSize,
		SoundDataSize:     hdr.soundDataSize,
		FrameCount:        hdr.frameCount,
	}

	if err := readMeta(d.c, &d.meta); err != nil {
		return nil, errors.Wrap(err, "reading metadata")
	}
	d.log.Debug("decoded metadata", "current_author", d.meta.CurrentAuthorName, "timestamp", d.meta.Timestamp)

	d.anim, err = readAnimationHeader(d.c, d.meta.FrameCount)
	if err != nil {
		return nil, errors.Wrap(err, "reading animation header")
	}
	d.meta.Layer1Visible = d.anim.layer1Visible
	d.meta.Layer2Visible = d.anim.layer2Visible
	d.meta.Loop = d.anim.loop
	d.log.Debug("decoded animation header", "offsets", len(d.anim.offsetTable), "loop", d.anim.loop)

	sound, err := readSoundHeader(d.c, d.meta.AnimationDataSize, d.meta.FrameCount)
	if err != nil {
		return nil, errors.Wrap(err, "reading sound header")
	}
	d.meta.FrameSpeed = sound.frameSpeed
	d.meta.BGMSpeed = sound.bgmSpeed
	d.meta.Framerate = sound.framerate
	d.meta.BGMFramerate = sound.bgmFramerate
	d.log.Debug("decoded sound header", "framerate", sound.framerate, "bgm_framerate", sound.bgmFramerate)

	d.frames = newFrameDecoder(d.c, d.anim.offsetTable)

	return d, nil
}

// FrameCount returns the number of frames in the container (the raw header
// value plus one).
func (d *Decoder) FrameCount() uint16 { return d.meta.FrameCount }

// Framerate returns the frames-per-second rate derived from the stored
// frame speed.
func (d *Decoder) Framerate() float64 { return d.meta.Framerate }

// BGMFramerate returns the frames-per-second rate derived from the stored
// BGM speed.
func (d *Decoder) BGMFramerate() float64 { return d.meta.BGMFramerate }

// ThumbIndex returns the index of the frame used as the container's
// thumbnail.
func (d *Decoder) ThumbIndex() uint16 { return d.meta.ThumbIndex }

// Metadata returns a copy of the container's decoded metadata record.
func (d *Decoder) Metadata() Metadata { return d.meta }

func (d *Decoder) checkIndex(i int) error {
	if i < 0 || i >= int(d.meta.FrameCount) {
		return errors.Wrapf(ErrInvalidFrame, "index %d, frame count %d", i, d.meta.FrameCount)
	}
	return nil
}

// FramePixels decodes frame i and returns it as a 192x256 array of indexed
// pixel values: 0 where both layers are clear (paper), 1 where layer 0 is
// set (layer 0 takes precedence over layer 1), 2 where only layer 1 is
// set. Layer visibility flags are exposed as metadata only and do not
// affect this result, per spec.md §4.7.
func (d *Decoder) FramePixels(i int) ([192][256]uint8, error) {
	var out [192][256]uint8
	if err := d.checkIndex(i); err != nil {
		return out, err
	}

	d.log.Debug("decoding frame", "index", i)
	if err := d.frames.readFrame(i); err != nil {
		return out, errors.Wrapf(err, "decoding frame %d", i)
	}

	cur := d.frames.cur
	for y := 0; y < frameHeight; y++ {
		for x := 0; x < frameWidth; x++ {
			switch {
			case cur[0][y][x] != 0:
				out[y][x] = 1
			case cur[1][y][x] != 0:
				out[y][x] = 2
			}
		}
	}
	return out, nil
}

// FramePalette returns the frame's resolved 3-entry RGB palette: [paper,
// layer-1 pen, layer-2 pen].
func (d *Decoder) FramePalette(i int) ([3]color.RGBA, error) {
	if err := d.checkIndex(i); err != nil {
		return [3]color.RGBA{}, err
	}
	pal, err := framePalette(d.c, d.anim.offsetTable[i])
	if err != nil {
		return [3]color.RGBA{}, errors.Wrapf(err, "resolving palette for frame %d", i)
	}
	return pal, nil
}

// Thumbnail decodes the container's embedded 64x48 4-bit thumbnail bitmap.
func (d *Decoder) Thumbnail() (*image.Paletted, error) {
	img, err := decodeThumbnail(d.c)
	if err != nil {
		return nil, errors.Wrap(err, "decoding thumbnail")
	}
	return img, nil
}
