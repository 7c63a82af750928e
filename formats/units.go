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
	"sort"
	"strconv"
	"strings"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// unitDef is one recognized suffix for a domain and its multiplier into the
// domain's canonical base unit (meters, grams, milliliters, ...).
type unitDef struct {
	suffix string
	toBase float64
}

// byLongestSuffix orders unitDefs so Parse tries "km" before "m" and never
// matches a unit's suffix as a prefix of a longer one.
func byLongestSuffix(defs []unitDef) []unitDef {
	out := append([]unitDef(nil), defs...)
	sort.Slice(out, func(i, j int) bool { return len(out[i].suffix) > len(out[j].suffix) })
	return out
}

func parseUnitSuffix(s string, defs []unitDef) (amount float64, def unitDef, ok bool) {
	s = strings.TrimSpace(s)
	for _, d := range defs {
		if !strings.HasSuffix(strings.ToLower(s), d.suffix) {
			continue
		}
		numPart := strings.TrimSpace(s[:len(s)-len(d.suffix)])
		f, err := strconv.ParseFloat(numPart, 64)
		if err != nil {
			continue
		}
		return f, d, true
	}
	return 0, unitDef{}, false
}

// formatUnit renders base in whichever of defs' units is closest to 1 <=
// magnitude < 1000, falling back to the base unit itself.
func formatUnit(base float64, baseSuffix string, defs []unitDef) string {
	best := unitDef{suffix: baseSuffix, toBase: 1}
	bestMag := base
	for _, d := range defs {
		mag := base / d.toBase
		if mag == 0 {
			continue
		}
		abs := mag
		if abs < 0 {
			abs = -abs
		}
		if abs >= 1 && abs < 1000 {
			best, bestMag = d, mag
		}
	}
	return fmt.Sprintf("%.4g%s", bestMag, best.suffix)
}

var lengthUnits = byLongestSuffix([]unitDef{
	{"km", 1000}, {"cm", 0.01}, {"mm", 0.001}, {"mi", 1609.344},
	{"yd", 0.9144}, {"ft", 0.3048}, {"in", 0.0254}, {"m", 1},
})

var weightUnits = byLongestSuffix([]unitDef{
	{"kg", 1000}, {"mg", 0.001}, {"lb", 453.59237}, {"oz", 28.349523125}, {"g", 1},
})

var volumeUnits = byLongestSuffix([]unitDef{
	{"gal", 3785.411784}, {"qt", 946.352946}, {"floz", 29.5735295625},
	{"l", 1000}, {"ml", 1},
})

var speedUnits = byLongestSuffix([]unitDef{
	{"kmh", 1.0 / 3.6}, {"kn", 0.514444}, {"mph", 0.44704}, {"mps", 1},
})

var pressureUnits = byLongestSuffix([]unitDef{
	{"kpa", 1000}, {"bar", 100000}, {"atm", 101325}, {"psi", 6894.757293168}, {"pa", 1},
})

var energyUnits = byLongestSuffix([]unitDef{
	{"kwh", 3600000}, {"kcal", 4184}, {"kj", 1000}, {"wh", 3600}, {"cal", 4.184}, {"j", 1},
})

var areaUnits = byLongestSuffix([]unitDef{
	{"km2", 1000000}, {"ha", 10000}, {"acre", 4046.8564224}, {"ft2", 0.09290304}, {"m2", 1},
})

// domainUnit is the common shape shared by Length, Weight, Volume, Speed,
// Pressure, Energy and Area: a single numeric literal with a recognized
// unit suffix, normalized to the domain's canonical base unit. Angle gets
// its own type below since degrees/radians is a conversion, not a suffix
// table lookup, and it has no canonical-unit ambiguity to normalize away.
type domainUnit struct {
	id, name, baseSuffix string
	kind                 value.Kind
	defs                 []unitDef
	examples             []string
	confidence           float32
}

func (d domainUnit) ID() string        { return d.id }
func (d domainUnit) Name() string      { return d.name }
func (d domainUnit) Aliases() []string { return nil }
func (d domainUnit) Info() format.Info {
	return format.Info{Category: "unit", Description: d.name + " with a unit suffix", Examples: d.examples}
}

func (d domainUnit) Parse(input string) []format.Interpretation {
	amount, def, ok := parseUnitSuffix(input, d.defs)
	if !ok {
		return nil
	}
	base := amount * def.toBase
	return []format.Interpretation{{
		Value:       newDomainValue(d.kind, base),
		Confidence:  d.confidence,
		Description: fmt.Sprintf("%g%s", amount, def.suffix),
	}}
}

func (d domainUnit) CanFormat(v value.Value) bool { return v.Kind == d.kind }

func (d domainUnit) Format(v value.Value) (string, bool) {
	if v.Kind != d.kind {
		return "", false
	}
	return formatUnit(domainValueMagnitude(v), d.baseSuffix, d.defs), true
}

// Conversions offers the same canonical-unit value displayed under every
// other recognized suffix. The domain tag never changes -- Value stays the
// original domain value, unconverted; only Display differs per edge, per
// the core algebra's invariant that a unit conversion changes display, not
// the value's domain. Each suffix gets its own TargetFormat id (distinct
// from d.id itself) so the graph doesn't mistake these for a self-loop.
func (d domainUnit) Conversions(v value.Value) []format.Conversion {
	if v.Kind != d.kind {
		return nil
	}
	base := domainValueMagnitude(v)
	var out []format.Conversion
	for _, u := range d.defs {
		if u.suffix == d.baseSuffix {
			continue
		}
		disp := fmt.Sprintf("%.4g%s", base/u.toBase, u.suffix)
		out = append(out, format.Conversion{
			Value:        v,
			TargetFormat: d.id + "-" + u.suffix,
			Display:      disp,
			Priority:     format.PrioritySemantic,
			Kind:         format.KindRepresentation,
			DisplayOnly:  true,
		})
	}
	return out
}

func newDomainValue(k value.Kind, base float64) value.Value {
	switch k {
	case value.KindLength:
		return value.Length(base)
	case value.KindWeight:
		return value.Weight(base)
	case value.KindVolume:
		return value.Volume(base)
	case value.KindSpeed:
		return value.Speed(base)
	case value.KindPressure:
		return value.Pressure(base)
	case value.KindEnergy:
		return value.Energy(base)
	case value.KindArea:
		return value.Area(base)
	}
	return value.Empty()
}

func domainValueMagnitude(v value.Value) float64 {
	switch v.Kind {
	case value.KindLength:
		return v.Length
	case value.KindWeight:
		return v.Weight
	case value.KindVolume:
		return v.Volume
	case value.KindSpeed:
		return v.Speed
	case value.KindPressure:
		return v.Pressure
	case value.KindEnergy:
		return v.Energy
	case value.KindArea:
		return v.Area
	}
	return 0
}

func Length() format.Format {
	return domainUnit{id: "length", name: "Length", baseSuffix: "m", kind: value.KindLength,
		defs: lengthUnits, examples: []string{"5km", "12ft", "3mi"}, confidence: 0.55}
}

func Weight() format.Format {
	return domainUnit{id: "weight", name: "Weight", baseSuffix: "g", kind: value.KindWeight,
		defs: weightUnits, examples: []string{"2kg", "5lb", "16oz"}, confidence: 0.55}
}

func Volume() format.Format {
	return domainUnit{id: "volume", name: "Volume", baseSuffix: "ml", kind: value.KindVolume,
		defs: volumeUnits, examples: []string{"2l", "1gal", "500ml"}, confidence: 0.55}
}

func Speed() format.Format {
	return domainUnit{id: "speed", name: "Speed", baseSuffix: "mps", kind: value.KindSpeed,
		defs: speedUnits, examples: []string{"60mph", "100kmh", "10kn"}, confidence: 0.55}
}

func Pressure() format.Format {
	return domainUnit{id: "pressure", name: "Pressure", baseSuffix: "pa", kind: value.KindPressure,
		defs: pressureUnits, examples: []string{"1atm", "30psi", "1013hpa"}, confidence: 0.55}
}

func Energy() format.Format {
	return domainUnit{id: "energy", name: "Energy", baseSuffix: "j", kind: value.KindEnergy,
		defs: energyUnits, examples: []string{"500cal", "1kwh", "250kj"}, confidence: 0.55}
}

func Area() format.Format {
	return domainUnit{id: "area", name: "Area", baseSuffix: "m2", kind: value.KindArea,
		defs: areaUnits, examples: []string{"5ha", "2acre", "100m2"}, confidence: 0.55}
}

// Angle recognizes a numeric literal suffixed "deg" or "rad" and
// normalizes to degrees, the core algebra's canonical unit for the domain.
type Angle struct{}

func (Angle) ID() string        { return "angle" }
func (Angle) Name() string      { return "Angle" }
func (Angle) Aliases() []string { return nil }
func (Angle) Info() format.Info {
	return format.Info{
		Category:    "unit",
		Description: "Angle in degrees or radians",
		Examples:    []string{"90deg", "1.5708rad"},
	}
}

func (Angle) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	var deg float64
	switch {
	case strings.HasSuffix(strings.ToLower(s), "rad"):
		f, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-3]), 64)
		if err != nil {
			return nil
		}
		deg = f * 180 / 3.14159265358979323846
	case strings.HasSuffix(strings.ToLower(s), "deg"):
		f, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-3]), 64)
		if err != nil {
			return nil
		}
		deg = f
	default:
		return nil
	}
	return []format.Interpretation{{
		Value:       value.Angle(deg),
		Confidence:  0.55,
		Description: fmt.Sprintf("%g deg", deg),
	}}
}

func (Angle) CanFormat(v value.Value) bool { return v.Kind == value.KindAngle }

func (Angle) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindAngle {
		return "", false
	}
	return fmt.Sprintf("%gdeg", v.Angle), true
}

// Conversions offers the same angle displayed in radians. The domain tag
// never changes -- Value stays the original Angle, unconverted; only
// Display differs.
func (Angle) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindAngle {
		return nil
	}
	rad := v.Angle * 3.14159265358979323846 / 180
	disp := fmt.Sprintf("%.6g rad", rad)
	return []format.Conversion{{
		Value:        v,
		TargetFormat: "angle-radians",
		Display:      disp,
		Priority:     format.PrioritySemantic,
		Kind:         format.KindRepresentation,
		DisplayOnly:  true,
	}}
}
