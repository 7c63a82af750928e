/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"strings"

	"github.com/google/uuid"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// UUID recognizes RFC 4122 UUID text in any of the google/uuid-accepted
// forms (hyphenated, braced, URN-prefixed).
type UUID struct{}

func (UUID) ID() string        { return "uuid" }
func (UUID) Name() string      { return "UUID" }
func (UUID) Aliases() []string { return []string{"guid"} }
func (UUID) Info() format.Info {
	return format.Info{
		Category:    "identifier",
		Description: "RFC 4122 universally unique identifier",
		Examples:    []string{"550e8400-e29b-41d4-a716-446655440000"},
	}
}

func (UUID) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	b, _ := id.MarshalBinary()
	desc := "UUID v" + itoa(int(id.Version()))
	return []format.Interpretation{{
		Value:       value.Bytes(b),
		Confidence:  0.97,
		Description: desc,
	}}
}

func (UUID) CanFormat(v value.Value) bool {
	return v.Kind == value.KindBytes && len(v.Bytes) == 16
}

func (UUID) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindBytes || len(v.Bytes) != 16 {
		return "", false
	}
	id, err := uuid.FromBytes(v.Bytes)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func (UUID) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindBytes || len(v.Bytes) != 16 {
		return nil
	}
	return []format.Conversion{{
		Value:        v,
		TargetFormat: "hex",
		Display:      "(raw hex)",
		Priority:     format.PriorityEncoding,
		Kind:         format.KindConversion,
	}}
}
