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
	"encoding/hex"
	"strings"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// Hex recognizes hex-encoded byte sequences, with or without a 0x prefix,
// and converts a decoded byte slice into its big-endian integer and hex
// re-encoding.
type Hex struct{}

func (Hex) ID() string       { return "hex" }
func (Hex) Name() string     { return "Hex" }
func (Hex) Aliases() []string { return []string{"hexadecimal"} }
func (Hex) Info() format.Info {
	return format.Info{
		Category:    "encoding",
		Description: "Hexadecimal byte sequence, optionally 0x-prefixed",
		Examples:    []string{"691E01B8", "0xDEADBEEF"},
	}
}

func (Hex) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	hadPrefix := strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
	if hadPrefix {
		s = s[2:]
	}
	if len(s) == 0 || len(s)%2 != 0 {
		return nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}

	conf := float32(0.60)
	if hadPrefix {
		conf = 0.92
	} else if isAllDecimalDigits(s) {
		// a run of pure digits is ambiguous with decimal; keep it weak
		conf = 0.45
	} else {
		conf = 0.65
	}

	return []format.Interpretation{{
		Value:       value.Bytes(b),
		Confidence:  conf,
		Description: "Hex byte sequence (" + itoa(len(b)) + " bytes)",
	}}
}

func isAllDecimalDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (Hex) CanFormat(v value.Value) bool {
	switch v.Kind {
	case value.KindBytes:
		return true
	case value.KindInt:
		_, ok := v.Int.Uint64()
		return ok
	}
	return false
}

func (Hex) Format(v value.Value) (string, bool) {
	switch v.Kind {
	case value.KindBytes:
		return "0x" + strings.ToUpper(hex.EncodeToString(v.Bytes)), true
	case value.KindInt:
		if u, ok := v.Int.Uint64(); ok {
			return "0x" + strings.ToUpper(hex.EncodeToString(bigEndianTrim(u))), true
		}
	}
	return "", false
}

func bigEndianTrim(u uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], u)
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	return buf[i:]
}

func (Hex) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindBytes {
		return nil
	}
	var out []format.Conversion
	if len(v.Bytes) > 0 && len(v.Bytes) <= 8 {
		u := padToUint64BE(v.Bytes)
		out = append(out, format.Conversion{
			Value:        value.IntWithBytes(int64(u), v.Bytes),
			TargetFormat: "decimal",
			Display:      itoa64(int64(u)),
			Priority:     format.PriorityPrimary,
			Kind:         format.KindConversion,
		})
	}
	out = append(out, format.Conversion{
		Value:        value.Bytes(v.Bytes),
		TargetFormat: "base64",
		Display:      "(base64 of bytes)",
		Priority:     format.PriorityEncoding,
		Kind:         format.KindConversion,
	})
	out = append(out, format.Conversion{
		Value:        value.Bytes(v.Bytes),
		TargetFormat: "utf8",
		Display:      "(utf8 of bytes)",
		Priority:     format.PriorityEncoding,
		Kind:         format.KindConversion,
	})
	return out
}

func padToUint64BE(b []byte) uint64 {
	var buf [8]byte
	copy(buf[8-len(b):], b)
	return binary.BigEndian.Uint64(buf[:])
}

func itoa(i int) string {
	return itoa64(int64(i))
}

func itoa64(i int64) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	u := uint64(i)
	if neg {
		u = uint64(-i)
	}
	var buf [20]byte
	pos := len(buf)
	for u > 0 {
		pos--
		buf[pos] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
