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

// Coordinates recognizes "lat,lon" decimal-degree pairs, optionally with
// cardinal suffixes (N/S/E/W).
type Coordinates struct{}

func (Coordinates) ID() string        { return "coordinates" }
func (Coordinates) Name() string      { return "Coordinates" }
func (Coordinates) Aliases() []string { return []string{"latlon", "geo"} }
func (Coordinates) Info() format.Info {
	return format.Info{
		Category:    "geo",
		Description: "Latitude/longitude decimal-degree pair",
		Examples:    []string{"40.7128,-74.0060", "40.7128 N, 74.0060 W"},
	}
}

func (Coordinates) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil
	}
	lat, okLat := parseCoordComponent(parts[0], "N", "S")
	lon, okLon := parseCoordComponent(parts[1], "E", "W")
	if !okLat || !okLon {
		return nil
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil
	}
	return []format.Interpretation{{
		Value:       value.CoordinatesValue(lat, lon),
		Confidence:  0.80,
		Description: fmt.Sprintf("Coordinates (%.4f, %.4f)", lat, lon),
	}}
}

func parseCoordComponent(s, pos, neg string) (float64, bool) {
	s = strings.TrimSpace(s)
	sign := 1.0
	upper := strings.ToUpper(s)
	if strings.HasSuffix(upper, pos) {
		s = strings.TrimSpace(s[:len(s)-1])
	} else if strings.HasSuffix(upper, neg) {
		s = strings.TrimSpace(s[:len(s)-1])
		sign = -1
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f * sign, true
}

func (Coordinates) CanFormat(v value.Value) bool { return v.Kind == value.KindCoordinates }

func (Coordinates) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindCoordinates {
		return "", false
	}
	return fmt.Sprintf("%.6f,%.6f", v.Coordinates.Lat, v.Coordinates.Lon), true
}

func (Coordinates) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindCoordinates {
		return nil
	}
	url := fmt.Sprintf("https://maps.google.com/?q=%.6f,%.6f", v.Coordinates.Lat, v.Coordinates.Lon)
	return []format.Conversion{{
		Value:        value.String(url),
		TargetFormat: "utf8",
		Display:      url,
		Priority:     format.PriorityRaw,
		Kind:         format.KindRepresentation,
		DisplayOnly:  true,
	}}
}
