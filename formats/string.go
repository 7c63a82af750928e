/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"unicode/utf8"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// UTF8 is the plain-text leaf: the terminal representation most other
// formats fall back to for raw bytes. It deliberately offers the lowest
// confidence in the catalog since every input string also "is" a string.
type UTF8 struct{}

func (UTF8) ID() string        { return "utf8" }
func (UTF8) Name() string      { return "Text" }
func (UTF8) Aliases() []string { return []string{"string", "text"} }
func (UTF8) Info() format.Info {
	return format.Info{
		Category:    "text",
		Description: "Plain UTF-8 text",
	}
}

func (UTF8) Parse(input string) []format.Interpretation {
	if input == "" || !utf8.ValidString(input) {
		return nil
	}
	return []format.Interpretation{{
		Value:       value.String(input),
		Confidence:  0.40,
		Description: "Plain text",
	}}
}

func (UTF8) CanFormat(v value.Value) bool {
	switch v.Kind {
	case value.KindString:
		return true
	case value.KindBytes:
		return utf8.Valid(v.Bytes)
	}
	return false
}

func (UTF8) Format(v value.Value) (string, bool) {
	switch v.Kind {
	case value.KindString:
		return v.Str, true
	case value.KindBytes:
		if !utf8.Valid(v.Bytes) {
			return "", false
		}
		return string(v.Bytes), true
	}
	return "", false
}

func (UTF8) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindString {
		return nil
	}
	return []format.Conversion{{
		Value:        value.Bytes([]byte(v.Str)),
		TargetFormat: "hex",
		Display:      "(hex of utf8 bytes)",
		Priority:     format.PriorityEncoding,
		Kind:         format.KindConversion,
	}}
}
