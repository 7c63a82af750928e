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

	bytesize "github.com/inhies/go-bytesize"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// DataSize recognizes human-readable byte-count literals ("10MB", "1.5 GiB")
// via go-bytesize and normalizes them to a raw byte count.
type DataSize struct{}

func (DataSize) ID() string        { return "datasize" }
func (DataSize) Name() string      { return "Data size" }
func (DataSize) Aliases() []string { return []string{"bytesize", "filesize"} }
func (DataSize) Info() format.Info {
	return format.Info{
		Category:    "unit",
		Description: "Human-readable byte count",
		Examples:    []string{"10MB", "1.5GiB", "512B"},
	}
}

func (DataSize) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}
	bs, err := bytesize.Parse(s)
	if err != nil {
		return nil
	}
	return []format.Interpretation{{
		Value:       value.Float(float64(bs)),
		Confidence:  0.72,
		Description: bs.String() + " (" + itoa64(int64(bs)) + " bytes)",
		RichDisplay: []format.RichDisplay{{Kind: format.DisplaySize}},
	}}
}

func (DataSize) CanFormat(v value.Value) bool { return v.Kind == value.KindFloat }

func (DataSize) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindFloat {
		return "", false
	}
	return bytesize.New(v.Float).String(), true
}

func (DataSize) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindFloat {
		return nil
	}
	return []format.Conversion{{
		Value:        value.Int(int64(v.Float)),
		TargetFormat: "decimal",
		Display:      "(raw byte count)",
		Priority:     format.PrioritySemantic,
		Kind:         format.KindConversion,
	}}
}
