/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// Color recognizes #RRGGBB and #RGB hex color literals. The three decoded
// channel bytes are carried as a Bytes value; there is no dedicated color
// kind in the core algebra since RGB-as-three-bytes round-trips cleanly
// through the same representation hex already uses.
type Color struct{}

func (Color) ID() string        { return "color" }
func (Color) Name() string      { return "Color" }
func (Color) Aliases() []string { return []string{"rgb", "hexcolor"} }
func (Color) Info() format.Info {
	return format.Info{
		Category:    "display",
		Description: "RGB hex color literal",
		Examples:    []string{"#1E90FF", "#fff"},
	}
}

func (Color) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	if !strings.HasPrefix(s, "#") {
		return nil
	}
	s = s[1:]
	if len(s) == 3 {
		expanded := make([]byte, 0, 6)
		for _, r := range s {
			expanded = append(expanded, byte(r), byte(r))
		}
		s = string(expanded)
	}
	if len(s) != 6 {
		return nil
	}
	rgb, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return []format.Interpretation{{
		Value:      value.Bytes(rgb),
		Confidence: 0.90,
		Description: fmt.Sprintf("RGB(%d, %d, %d)", rgb[0], rgb[1], rgb[2]),
		RichDisplay: []format.RichDisplay{{
			Kind:  format.DisplayColor,
			Color: "#" + s,
		}},
	}}
}

func (Color) CanFormat(v value.Value) bool {
	return v.Kind == value.KindBytes && len(v.Bytes) == 3
}

func (Color) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindBytes || len(v.Bytes) != 3 {
		return "", false
	}
	return "#" + strings.ToUpper(hex.EncodeToString(v.Bytes)), true
}

func (Color) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindBytes || len(v.Bytes) != 3 {
		return nil
	}
	display := fmt.Sprintf("rgb(%d, %d, %d)", v.Bytes[0], v.Bytes[1], v.Bytes[2])
	return []format.Conversion{{
		Value:        value.String(display),
		TargetFormat: "utf8",
		Display:      display,
		Priority:     format.PriorityRaw,
		Kind:         format.KindRepresentation,
		DisplayOnly:  true,
	}}
}
