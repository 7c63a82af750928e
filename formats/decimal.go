/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"strconv"
	"strings"
	"time"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// Decimal recognizes plain base-10 integers. It is a low-confidence,
// most-general numeric leaf: almost anything numeric also parses as
// decimal, so it sits near the end of the catalog's tie-break order,
// ahead of only the UTF8 text leaf.
type Decimal struct{}

func (Decimal) ID() string        { return "decimal" }
func (Decimal) Name() string      { return "Decimal" }
func (Decimal) Aliases() []string { return []string{"int", "integer"} }
func (Decimal) Info() format.Info {
	return format.Info{
		Category:    "number",
		Description: "Base-10 signed integer",
		Examples:    []string{"1753900800", "-42"},
	}
}

func (Decimal) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return []format.Interpretation{{
		Value:       value.Int(i),
		Confidence:  0.50,
		Description: "Decimal integer",
	}}
}

func (Decimal) CanFormat(v value.Value) bool { return v.Kind == value.KindInt }

func (Decimal) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindInt {
		return "", false
	}
	i, ok := v.Int.Int64()
	if !ok {
		return v.Int.Big().String(), true
	}
	return itoa64(i), true
}

func (Decimal) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindInt {
		return nil
	}
	var out []format.Conversion
	out = append(out, format.Conversion{
		Value:        v,
		TargetFormat: "hex",
		Display:      "(hex of value)",
		Priority:     format.PriorityEncoding,
		Kind:         format.KindConversion,
	}, format.Conversion{
		Value:        v,
		TargetFormat: "binary",
		Display:      "(binary of value)",
		Priority:     format.PriorityEncoding,
		Kind:         format.KindConversion,
	})
	// Epoch readings only fire inside the plausible range per unit, and the
	// edge carries the resolved instant so downstream datetime conversions
	// have a DateTime to work with rather than the raw integer.
	if i, ok := v.Int.Int64(); ok && i >= 0 {
		for _, u := range []struct {
			id    string
			scale int64
			to    func(int64) time.Time
		}{
			{"epoch-seconds", 1, func(n int64) time.Time { return time.Unix(n, 0).UTC() }},
			{"epoch-millis", 1_000, func(n int64) time.Time { return time.UnixMilli(n).UTC() }},
			{"epoch-micros", 1_000_000, func(n int64) time.Time { return time.UnixMicro(n).UTC() }},
			{"epoch-nanos", 1_000_000_000, func(n int64) time.Time { return time.Unix(0, n).UTC() }},
		} {
			if i < minEpochSeconds*u.scale || i > maxEpochSeconds*u.scale {
				continue
			}
			t := u.to(i)
			out = append(out, format.Conversion{
				Value:        value.DateTime(t),
				TargetFormat: u.id,
				Display:      t.Format(time.RFC3339),
				Priority:     format.PrioritySemantic,
				Kind:         format.KindConversion,
			})
		}
	}
	return out
}
