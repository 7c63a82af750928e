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

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// Binary recognizes 0b-prefixed base-2 integer literals.
type Binary struct{}

func (Binary) ID() string        { return "binary" }
func (Binary) Name() string      { return "Binary" }
func (Binary) Aliases() []string { return []string{"base2"} }
func (Binary) Info() format.Info {
	return format.Info{
		Category:    "encoding",
		Description: "Base-2 integer literal",
		Examples:    []string{"0b1010", "0b11111111"},
	}
}

func (Binary) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	if !strings.HasPrefix(s, "0b") && !strings.HasPrefix(s, "0B") {
		return nil
	}
	digits := s[2:]
	if digits == "" {
		return nil
	}
	u, err := strconv.ParseUint(digits, 2, 64)
	if err != nil {
		return nil
	}
	return []format.Interpretation{{
		Value:       value.Int(int64(u)),
		Confidence:  0.93,
		Description: "Binary literal",
	}}
}

func (Binary) CanFormat(v value.Value) bool {
	if v.Kind != value.KindInt {
		return false
	}
	_, ok := v.Int.Uint64()
	return ok
}

func (Binary) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindInt {
		return "", false
	}
	u, ok := v.Int.Uint64()
	if !ok {
		return "", false
	}
	return "0b" + strconv.FormatUint(u, 2), true
}

func (Binary) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindInt {
		return nil
	}
	i, _ := v.Int.Int64()
	return []format.Conversion{{
		Value:        v,
		TargetFormat: "decimal",
		Display:      itoa64(i),
		Priority:     format.PriorityPrimary,
		Kind:         format.KindConversion,
	}, {
		Value:        v,
		TargetFormat: "hex",
		Display:      "(hex of value)",
		Priority:     format.PriorityEncoding,
		Kind:         format.KindConversion,
	}}
}
