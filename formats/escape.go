/*************************************************************************
 * Copyright 2020 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"strings"
	"unicode/utf8"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// Escape recognizes C-style escape-encoded strings (\xNN, \uNNNN,
// \UNNNNNNNN, \NNN octal, \n\t\r and friends) and decodes them. Plain text
// that merely contains an occasional backslash is filtered by an
// escape-density gate so long prose with one "\n" doesn't read as encoded
// data.
type Escape struct{}

func (Escape) ID() string        { return "escape" }
func (Escape) Name() string      { return "Escaped string" }
func (Escape) Aliases() []string { return []string{"esc", "escaped", "cstring"} }
func (Escape) Info() format.Info {
	return format.Info{
		Category:    "encoding",
		Description: `C-style escape sequences (\x, \u, \n, octal)`,
		Examples:    []string{`\x48\x65\x6c\x6c\x6f`, `Hello\nWorld`},
	}
}

func (e Escape) Parse(input string) []format.Interpretation {
	n := countEscapes(input)
	if n == 0 {
		return nil
	}
	// A \xNN sequence is 4 chars for 1 byte; requiring escapes to cover
	// ~10% of a long input keeps ordinary text with a stray escape out.
	if len(input) > 20 && float64(n*4)/float64(len(input)) < 0.10 {
		return nil
	}
	decoded, ok := decodeEscapes(input)
	if !ok {
		return nil
	}

	var v value.Value
	var desc string
	if utf8.Valid(decoded) {
		s := string(decoded)
		v = value.String(s)
		if len([]rune(s)) > 50 {
			desc = "Decoded: \"" + string([]rune(s)[:47]) + `..." (` + itoa(len([]rune(s))) + " chars)"
		} else {
			desc = "Decoded: \"" + s + "\""
		}
	} else {
		v = value.Bytes(decoded)
		desc = "Decoded: " + itoa(len(decoded)) + " bytes"
	}

	return []format.Interpretation{{
		Value:       v,
		Confidence:  0.90,
		Description: desc,
	}}
}

// countEscapes counts backslashes introducing a recognized escape.
func countEscapes(s string) int {
	count := 0
	for i := 0; i+1 < len(s); i++ {
		if s[i] != '\\' {
			continue
		}
		switch c := s[i+1]; {
		case c == 'x' || c == 'u' || c == 'U' || c == 'n' || c == 't' || c == 'r' ||
			c == '\\' || c == '"' || c == '\'' || c == 'a' || c == 'b' || c == 'f' || c == 'v':
			count++
			i++
		case c >= '0' && c <= '7':
			count++
			i++
		}
	}
	return count
}

func decodeEscapes(s string) ([]byte, bool) {
	var out []byte
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			// copy the raw (possibly multi-byte) rune through
			r, size := utf8.DecodeRuneInString(s[i:])
			var buf [4]byte
			out = append(out, buf[:utf8.EncodeRune(buf[:], r)]...)
			i += size
			continue
		}
		if i+1 >= len(s) {
			return nil, false
		}
		i++
		switch e := s[i]; {
		case e == 'x':
			if i+2 >= len(s) {
				return nil, false
			}
			b, ok := hexByte(s[i+1], s[i+2])
			if !ok {
				return nil, false
			}
			out = append(out, b)
			i += 3
		case e == 'u' || e == 'U':
			digits := 4
			if e == 'U' {
				digits = 8
			}
			if i+digits >= len(s) {
				return nil, false
			}
			cp := uint32(0)
			for _, d := range []byte(s[i+1 : i+1+digits]) {
				h, ok := hexNibble(d)
				if !ok {
					return nil, false
				}
				cp = cp<<4 | uint32(h)
			}
			if !utf8.ValidRune(rune(cp)) {
				return nil, false
			}
			var buf [4]byte
			out = append(out, buf[:utf8.EncodeRune(buf[:], rune(cp))]...)
			i += 1 + digits
		case e >= '0' && e <= '7':
			oct := uint32(e - '0')
			j := i + 1
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				oct = oct<<3 | uint32(s[j]-'0')
				j++
			}
			if oct > 0xFF {
				return nil, false
			}
			out = append(out, byte(oct))
			i = j
		case e == 'n':
			out = append(out, '\n')
			i++
		case e == 't':
			out = append(out, '\t')
			i++
		case e == 'r':
			out = append(out, '\r')
			i++
		case e == '\\':
			out = append(out, '\\')
			i++
		case e == '"':
			out = append(out, '"')
			i++
		case e == '\'':
			out = append(out, '\'')
			i++
		case e == 'a':
			out = append(out, 0x07)
			i++
		case e == 'b':
			out = append(out, 0x08)
			i++
		case e == 'f':
			out = append(out, 0x0C)
			i++
		case e == 'v':
			out = append(out, 0x0B)
			i++
		default:
			return nil, false
		}
	}
	return out, true
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func hexByte(hi, lo byte) (byte, bool) {
	h, ok1 := hexNibble(hi)
	l, ok2 := hexNibble(lo)
	return h<<4 | l, ok1 && ok2
}

// The escape leaf only decodes; re-encoding goes through the dedicated
// escape-hex / escape-unicode conversion targets below.
func (Escape) CanFormat(v value.Value) bool        { return false }
func (Escape) Format(v value.Value) (string, bool) { return "", false }

func (e Escape) Conversions(v value.Value) []format.Conversion {
	switch v.Kind {
	case value.KindBytes:
		if len(v.Bytes) == 0 || len(v.Bytes) > 64 {
			return nil
		}
		var sb strings.Builder
		for _, b := range v.Bytes {
			sb.WriteString(`\x`)
			sb.WriteByte(hexUpper(b >> 4))
			sb.WriteByte(hexUpper(b & 0x0F))
		}
		escaped := sb.String()
		return []format.Conversion{{
			Value:        value.String(escaped),
			TargetFormat: "escape-hex",
			Display:      escaped,
			Priority:     format.PriorityEncoding,
			Kind:         format.KindRepresentation,
			DisplayOnly:  true,
		}}
	case value.KindString:
		if v.Str == "" || len(v.Str) > 64 {
			return nil
		}
		var sb strings.Builder
		for _, r := range v.Str {
			top := 12
			if r > 0xFFFF {
				sb.WriteString(`\U`)
				top = 28
			} else {
				sb.WriteString(`\u`)
			}
			for shift := top; shift >= 0; shift -= 4 {
				sb.WriteByte(hexUpper(byte(r >> uint(shift) & 0x0F)))
			}
		}
		escaped := sb.String()
		return []format.Conversion{{
			Value:        value.String(escaped),
			TargetFormat: "escape-unicode",
			Display:      escaped,
			Priority:     format.PriorityEncoding,
			Kind:         format.KindRepresentation,
			DisplayOnly:  true,
		}}
	}
	return nil
}

func hexUpper(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + n - 10
}
