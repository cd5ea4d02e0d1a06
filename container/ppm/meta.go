/*
NAME
  meta.go

DESCRIPTION
  meta.go decodes the authorship, filename, lock, thumbnail-index and
  timestamp fields from the PPM metadata block that follows the file
  header.

LICENSE
  Copyright (c) 2026 para contributors
  SPDX-License-Identifier: MIT
*/

package ppm

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// metaOffset is the absolute offset of the metadata block.
const metaOffset = 0x10

// epochOffset converts a PPM timestamp (seconds since 2000-01-01T00:00:00Z)
// into a Unix timestamp (seconds since 1970-01-01T00:00:00Z).
const epochOffset = 946_684_800

// Metadata is the decoded form of a PPM container's authorship chain,
// filenames, lock state, thumbnail index, timestamp and layer/loop flags.
// It is the Go projection of the "metadata record" named in spec.md; callers
// that want a JSON dump can call json.Marshal on it directly.
type Metadata struct {
	AnimationDataSize uint32 `json:"animation_data_size"`
	SoundDataSize     uint32 `json:"sound_data_size"`
	FrameCount        uint16 `json:"frame_count"`
	Lock              uint16 `json:"lock"`
	ThumbIndex        uint16 `json:"thumb_index"`

	RootAuthorName    string `json:"root_author_name"`
	ParentAuthorName  string `json:"parent_author_name"`
	CurrentAuthorName string `json:"current_author_name"`

	RootAuthorID    string `json:"root_author_id"`
	ParentAuthorID  string `json:"parent_author_id"`
	CurrentAuthorID string `json:"current_author_id"`

	ParentFilename  string `json:"parent_filename"`
	CurrentFilename string `json:"current_filename"`
	PartialFilename string `json:"partial_filename"`

	Timestamp time.Time `json:"timestamp"`

	Layer1Visible bool `json:"layer_1_visible"`
	Layer2Visible bool `json:"layer_2_visible"`
	Loop          bool `json:"loop"`

	FrameSpeed    uint8   `json:"frame_speed"`
	BGMSpeed      uint8   `json:"bgm_speed"`
	Framerate     float64 `json:"framerate"`
	BGMFramerate  float64 `json:"bgm_framerate"`
}

// reverseHex renders b as uppercase hexadecimal with byte order reversed,
// i.e. the last stored byte appears first in the string. Used for author
// and filename IDs.
func reverseHex(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for i := len(b) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%02X", b[i])
	}
	return sb.String()
}

// forwardHex renders b as uppercase hexadecimal in stored order. Used for
// the MAC-address prefix of a filename.
func forwardHex(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, v := range b {
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}

// decodeName strips NUL bytes from a raw name buffer and validates the
// remainder as UTF-8. The source treats the buffer as raw UTF-8 bytes after
// NUL-stripping rather than decoding it as UTF-16LE; this reproduces that
// behavior byte-for-byte for compatibility with downstream JSON dumps (see
// SPEC_FULL.md §4.2).
func decodeName(raw []byte) (string, error) {
	stripped := make([]byte, 0, len(raw))
	for _, b := range raw {
		if b == 0 {
			continue
		}
		stripped = append(stripped, b)
	}
	if !utf8.Valid(stripped) {
		return "", errors.Wrapf(ErrInvalidText, "name buffer %x is not valid UTF-8 after NUL-stripping", raw)
	}
	return string(stripped), nil
}

// latin1ToString decodes raw as Latin-1 (each byte is its own code point),
// matching the original source's `byte as char` conversion rather than
// treating the bytes as UTF-8. This always produces well-formed text, even
// for identifier bytes >= 0x80 that would otherwise not be valid UTF-8.
func latin1ToString(raw []byte) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, b := range raw {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

// readFilename decodes an 18-byte filename field: a 3-byte MAC suffix
// (uppercase hex, stored order), a 13-byte identifier (Latin-1 text) and a
// little-endian u16 edit counter, rendered as MAC_IDENT_EDITS with EDITS
// zero-padded to width 3.
func readFilename(c *Cursor) (string, error) {
	mac, err := c.ReadBytes(3)
	if err != nil {
		return "", errors.Wrap(err, "reading filename MAC")
	}
	ident, err := c.ReadBytes(13)
	if err != nil {
		return "", errors.Wrap(err, "reading filename identifier")
	}
	edits, err := c.ReadUint16LE()
	if err != nil {
		return "", errors.Wrap(err, "reading filename edit counter")
	}
	return fmt.Sprintf("%s_%s_%03d", forwardHex(mac), latin1ToString(ident), edits), nil
}

// readMeta decodes the metadata block starting at metaOffset into m.
func readMeta(c *Cursor, m *Metadata) error {
	c.Seek(metaOffset)

	var err error
	if m.Lock, err = c.ReadUint16LE(); err != nil {
		return errors.Wrap(err, "reading lock")
	}
	if m.ThumbIndex, err = c.ReadUint16LE(); err != nil {
		return errors.Wrap(err, "reading thumb index")
	}

	rootName, err := c.ReadBytes(22)
	if err != nil {
		return errors.Wrap(err, "reading root author name")
	}
	if m.RootAuthorName, err = decodeName(rootName); err != nil {
		return err
	}

	parentName, err := c.ReadBytes(22)
	if err != nil {
		return errors.Wrap(err, "reading parent author name")
	}
	if m.ParentAuthorName, err = decodeName(parentName); err != nil {
		return err
	}

	currentName, err := c.ReadBytes(22)
	if err != nil {
		return errors.Wrap(err, "reading current author name")
	}
	if m.CurrentAuthorName, err = decodeName(currentName); err != nil {
		return err
	}

	parentID, err := c.ReadBytes(8)
	if err != nil {
		return errors.Wrap(err, "reading parent author id")
	}
	m.ParentAuthorID = reverseHex(parentID)

	currentID, err := c.ReadBytes(8)
	if err != nil {
		return errors.Wrap(err, "reading current author id")
	}
	m.CurrentAuthorID = reverseHex(currentID)

	if m.ParentFilename, err = readFilename(c); err != nil {
		return errors.Wrap(err, "reading parent filename")
	}
	if m.CurrentFilename, err = readFilename(c); err != nil {
		return errors.Wrap(err, "reading current filename")
	}

	rootID, err := c.ReadBytes(8)
	if err != nil {
		return errors.Wrap(err, "reading root author id")
	}
	m.RootAuthorID = reverseHex(rootID)

	partial, err := c.ReadBytes(8)
	if err != nil {
		return errors.Wrap(err, "reading partial filename")
	}
	m.PartialFilename = reverseHex(partial)

	stamp, err := c.ReadUint32LE()
	if err != nil {
		return errors.Wrap(err, "reading timestamp")
	}
	m.Timestamp = time.Unix(int64(stamp)+epochOffset, 0).UTC()

	return nil
}
