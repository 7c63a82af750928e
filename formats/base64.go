/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"encoding/base64"
	"strings"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// Base64 recognizes standard and URL-safe base64 text.
type Base64 struct{}

func (Base64) ID() string        { return "base64" }
func (Base64) Name() string      { return "Base64" }
func (Base64) Aliases() []string { return []string{"b64"} }
func (Base64) Info() format.Info {
	return format.Info{
		Category:    "encoding",
		Description: "Base64-encoded byte sequence (standard or URL-safe)",
		Examples:    []string{"aGVsbG8=", "aGVsbG8"},
	}
}

func (Base64) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	if len(s) < 4 {
		return nil
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		b, err := enc.DecodeString(s)
		if err == nil && len(b) > 0 {
			return []format.Interpretation{{
				Value:       value.Bytes(b),
				Confidence:  0.55,
				Description: "Base64 (" + itoa(len(b)) + " decoded bytes)",
			}}
		}
	}
	return nil
}

func (Base64) CanFormat(v value.Value) bool { return v.Kind == value.KindBytes }

func (Base64) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindBytes {
		return "", false
	}
	return base64.StdEncoding.EncodeToString(v.Bytes), true
}

func (Base64) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindBytes {
		return nil
	}
	return []format.Conversion{{
		Value:        v,
		TargetFormat: "hex",
		Display:      "(hex of bytes)",
		Priority:     format.PriorityEncoding,
		Kind:         format.KindConversion,
	}, {
		Value:        v,
		TargetFormat: "utf8",
		Display:      "(utf8 of bytes)",
		Priority:     format.PriorityEncoding,
		Kind:         format.KindConversion,
	}}
}
