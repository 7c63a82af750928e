/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// ULID recognizes the 26-character Crockford base32 ULID layout: a
// 48-bit millisecond timestamp followed by 80 bits of randomness.
type ULID struct{}

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func (ULID) ID() string        { return "ulid" }
func (ULID) Name() string      { return "ULID" }
func (ULID) Aliases() []string { return nil }
func (ULID) Info() format.Info {
	return format.Info{
		Category:    "identifier",
		Description: "Universally unique lexicographically sortable identifier",
		Examples:    []string{"01ARZ3NDEKTSV4RRFFQ69G5FAV"},
	}
}

func (ULID) Parse(input string) []format.Interpretation {
	s := strings.ToUpper(strings.TrimSpace(input))
	if len(s) != 26 {
		return nil
	}
	var decoded [16]byte
	var acc uint64
	bits := 0
	pos := 0
	for i, r := range s {
		idx := strings.IndexRune(crockford, r)
		if idx < 0 {
			return nil
		}
		if i == 0 {
			// 26*5 = 130 bits carry 128: the first character holds only the
			// top 3 bits, its 2 high bits are padding and must be zero.
			if idx > 7 {
				return nil
			}
			acc, bits = uint64(idx), 3
			continue
		}
		acc = acc<<5 | uint64(idx)
		bits += 5
		if bits >= 8 {
			bits -= 8
			if pos >= 16 {
				// 3 + 25*5 = 128 bits fill exactly 16 bytes, so this never
				// trips.
				break
			}
			decoded[pos] = byte(acc >> uint(bits))
			pos++
		}
	}
	if pos < 16 {
		return nil
	}
	msBuf := append([]byte{0, 0}, decoded[:6]...)
	ms := binary.BigEndian.Uint64(msBuf)
	t := time.UnixMilli(int64(ms)).UTC()
	if t.Year() < 1970 || t.Year() > 10000 {
		return nil
	}
	return []format.Interpretation{{
		Value:       value.Bytes(decoded[:]),
		Confidence:  0.93,
		Description: "ULID minted " + t.Format(time.RFC3339),
	}}
}

func (ULID) CanFormat(v value.Value) bool {
	return v.Kind == value.KindBytes && len(v.Bytes) == 16
}

func (ULID) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindBytes || len(v.Bytes) != 16 {
		return "", false
	}
	// Start with the 2 zero padding bits so the first character carries the
	// top 3 bits and the 26 characters end exactly on the last byte.
	var acc uint64
	bits := 2
	var sb strings.Builder
	bytesIn := v.Bytes
	idx := 0
	for sb.Len() < 26 {
		for bits < 5 && idx < len(bytesIn) {
			acc = acc<<8 | uint64(bytesIn[idx])
			bits += 8
			idx++
		}
		if bits < 5 {
			acc <<= uint(5 - bits)
			bits = 5
		}
		bits -= 5
		sb.WriteByte(crockford[(acc>>uint(bits))&0x1F])
	}
	return sb.String(), true
}

func (ULID) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindBytes || len(v.Bytes) != 16 {
		return nil
	}
	msBuf := append([]byte{0, 0}, v.Bytes[:6]...)
	ms := binary.BigEndian.Uint64(msBuf)
	t := time.UnixMilli(int64(ms)).UTC()
	return []format.Conversion{{
		Value:        value.DateTime(t),
		TargetFormat: "datetime",
		Display:      t.Format(time.RFC3339),
		Priority:     format.PrioritySemantic,
		Kind:         format.KindConversion,
	}, {
		Value:        v,
		TargetFormat: "hex",
		Display:      "(raw hex)",
		Priority:     format.PriorityEncoding,
		Kind:         format.KindConversion,
	}}
}
