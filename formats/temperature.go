/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// Temperature recognizes a numeric literal suffixed with C, F or K and
// normalizes it to kelvin, the core algebra's canonical unit for the
// domain.
type Temperature struct{}

func (Temperature) ID() string        { return "temperature" }
func (Temperature) Name() string      { return "Temperature" }
func (Temperature) Aliases() []string { return nil }
func (Temperature) Info() format.Info {
	return format.Info{
		Category:    "unit",
		Description: "Temperature with a Celsius, Fahrenheit or Kelvin suffix",
		Examples:    []string{"98.6F", "37C", "310K"},
	}
}

func (Temperature) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}
	unit := s[len(s)-1]
	var kelvin float64
	switch unit {
	case 'C', 'c':
		f, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
		if err != nil {
			return nil
		}
		kelvin = f + 273.15
	case 'F', 'f':
		f, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
		if err != nil {
			return nil
		}
		kelvin = (f-32)*5/9 + 273.15
	case 'K', 'k':
		f, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
		if err != nil {
			return nil
		}
		kelvin = f
	default:
		return nil
	}
	v, ok := value.Temperature(kelvin)
	if !ok {
		return nil
	}
	return []format.Interpretation{{
		Value:       v,
		Confidence:  0.70,
		Description: fmt.Sprintf("%.2f K", kelvin),
	}}
}

func (Temperature) CanFormat(v value.Value) bool { return v.Kind == value.KindTemperature }

func (Temperature) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindTemperature {
		return "", false
	}
	return fmt.Sprintf("%.2fK", v.Temperature), true
}

// Conversions offers the same Kelvin value displayed in Celsius and
// Fahrenheit. The domain tag never changes here -- Value stays the
// original Temperature, unconverted; only Display differs per edge, per
// the core algebra's invariant that a unit conversion changes display, not
// the value's domain.
func (Temperature) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindTemperature {
		return nil
	}
	c := v.Temperature - 273.15
	f := c*9/5 + 32
	return []format.Conversion{{
		Value:        v,
		TargetFormat: "temperature-celsius",
		Display:      fmt.Sprintf("%.2f °C", c),
		Priority:     format.PrioritySemantic,
		Kind:         format.KindRepresentation,
		DisplayOnly:  true,
	}, {
		Value:        v,
		TargetFormat: "temperature-fahrenheit",
		Display:      fmt.Sprintf("%.2f °F", f),
		Priority:     format.PrioritySemantic,
		Kind:         format.KindRepresentation,
		DisplayOnly:  true,
	}}
}
