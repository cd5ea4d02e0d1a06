/*
NAME
  thumbnail.go

DESCRIPTION
  thumbnail.go decodes the 1536-byte 4-bit tiled thumbnail bitmap that
  follows the metadata block. This component is promoted from optional (in
  spec.md) to implemented, since it reuses the same Cursor machinery as
  frame decoding and is self-contained. Raster *encoding* (to BMP/GIF/PNG)
  remains an external collaborator's job, per spec.md's non-goals — this
  returns a standard library image.Paletted for callers to encode with
  whatever format they need.

LICENSE
  Copyright (c) 2026 para contributors
  SPDX-License-Identifier: MIT
*/

package ppm

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

const (
	thumbnailOffset = 0x0A0
	thumbnailBytes  = 1536
	thumbnailWidth  = 64
	thumbnailHeight = 48
	tilesPerRow     = 8
	tileSize        = 8
)

// thumbnailPalette is the fixed 16-entry RGB palette indexed by the 4-bit
// nibbles of the thumbnail bitmap, taken from the original source's
// THUMBNAIL_PALETTE table.
var thumbnailPalette = color.Palette{
	color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	color.RGBA{0x52, 0x52, 0x52, 0xFF},
	color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	color.RGBA{0x9C, 0x9C, 0x9C, 0xFF},
	color.RGBA{0xFF, 0x48, 0x44, 0xFF},
	color.RGBA{0xC8, 0x51, 0x4F, 0xFF},
	color.RGBA{0xFF, 0xAD, 0xAC, 0xFF},
	color.RGBA{0x00, 0xFF, 0x00, 0xFF},
	color.RGBA{0x48, 0x40, 0xFF, 0xFF},
	color.RGBA{0x51, 0x4F, 0xB8, 0xFF},
	color.RGBA{0xAD, 0xAB, 0xFF, 0xFF},
	color.RGBA{0x00, 0xFF, 0x00, 0xFF},
	color.RGBA{0xB6, 0x57, 0xB7, 0xFF},
	color.RGBA{0x00, 0xFF, 0x00, 0xFF},
	color.RGBA{0x00, 0xFF, 0x00, 0xFF},
	color.RGBA{0x00, 0xFF, 0x00, 0xFF},
}

// decodeThumbnail decodes the 64x48 4-bit tiled thumbnail bitmap into an
// image.Paletted. Tiles are 8x8 pixels, 48 of them in row-major order at 8
// tiles per tile-row; within a tile, each byte packs two horizontally
// adjacent pixels, low nibble first.
func decodeThumbnail(c *Cursor) (*image.Paletted, error) {
	c.Seek(thumbnailOffset)
	raw, err := c.ReadBytes(thumbnailBytes)
	if err != nil {
		return nil, errors.Wrap(err, "reading thumbnail bitmap")
	}

	img := image.NewPaletted(image.Rect(0, 0, thumbnailWidth, thumbnailHeight), thumbnailPalette)

	pos := 0
	for tile := 0; tile < 48; tile++ {
		tileX := (tile % tilesPerRow) * tileSize
		tileY := (tile / tilesPerRow) * tileSize
		for line := 0; line < tileSize; line++ {
			for px := 0; px < tileSize; px += 2 {
				b := raw[pos]
				pos++
				img.SetColorIndex(tileX+px, tileY+line, b&0x0F)
				img.SetColorIndex(tileX+px+1, tileY+line, (b>>4)&0x0F)
			}
		}
	}

	return img, nil
}
