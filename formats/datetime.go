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

	"github.com/gravwell/formatorbit/v3/calibrate"
	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/timefmt"
	"github.com/gravwell/formatorbit/v3/value"
)

// DateTime recognizes textual timestamps against timefmt's ordered layout
// catalog and scores them by proximity to now via the shared calibrator.
type DateTime struct {
	Calibrator calibrate.Calibrator
	Location   *time.Location
}

func (d DateTime) ID() string        { return "datetime" }
func (d DateTime) Name() string      { return "Date/time" }
func (d DateTime) Aliases() []string { return []string{"timestamp"} }
func (d DateTime) Info() format.Info {
	return format.Info{
		Category:    "time",
		Description: "Textual calendar timestamp",
		Examples:    []string{"2026-07-31T12:00:00Z", "Jul 31 12:00:00"},
	}
}

func (d DateTime) loc() *time.Location {
	if d.Location != nil {
		return d.Location
	}
	return time.UTC
}

func (d DateTime) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	t, layout, ok := timefmt.Recognize(s, d.loc())
	if !ok {
		return nil
	}
	return []format.Interpretation{{
		Value:       value.DateTime(t),
		Confidence:  d.Calibrator.Confidence(t),
		Description: layout + " timestamp",
		RichDisplay: []format.RichDisplay{{Kind: format.DisplayDateTime, Title: layout}},
	}}
}

func (d DateTime) CanFormat(v value.Value) bool { return v.Kind == value.KindDateTime }

func (d DateTime) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindDateTime {
		return "", false
	}
	return v.DateTime.Format(time.RFC3339), true
}

func (d DateTime) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindDateTime {
		return nil
	}
	sec := v.DateTime.Unix()
	return []format.Conversion{
		{Value: value.Int(sec), TargetFormat: "epoch-seconds", Display: itoa64(sec), Priority: format.PrioritySemantic, Kind: format.KindConversion},
		{Value: value.Int(v.DateTime.UnixMilli()), TargetFormat: "epoch-millis", Display: itoa64(v.DateTime.UnixMilli()), Priority: format.PriorityEncoding, Kind: format.KindConversion},
		{Value: value.String(v.DateTime.Format(time.RFC1123)), TargetFormat: "utf8", Display: v.DateTime.Format(time.RFC1123), Priority: format.PriorityRaw, Kind: format.KindRepresentation, DisplayOnly: true},
	}
}

// minEpochSeconds/maxEpochSeconds bound the plausible range for a Unix
// epoch-seconds value: 2000-01-01 to 2100-01-01. The floor above zero keeps
// small integers (an IP octet, a short counter) from being mistaken for a
// 1970s timestamp; the ceiling keeps runaway magnitudes out.
const (
	minEpochSeconds = 946_684_800
	maxEpochSeconds = 4_102_444_800
)

// epochUnit is shared plumbing for the four fixed-point epoch leaves.
type epochUnit struct {
	id         string
	name       string
	step       float64
	unitScale  int64
	toTime     func(i int64) time.Time
	fromTime   func(t time.Time) int64
	minDigits  int
	maxDigits  int
	calibrator calibrate.Calibrator
}

func (e epochUnit) ID() string        { return e.id }
func (e epochUnit) Name() string      { return e.name }
func (e epochUnit) Aliases() []string { return nil }
func (e epochUnit) Info() format.Info {
	return format.Info{
		Category:    "time",
		Description: "Unix epoch timestamp (" + e.name + ")",
	}
}

func (e epochUnit) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}
	neg := strings.HasPrefix(s, "-")
	digits := s
	if neg {
		digits = s[1:]
	}
	if len(digits) < e.minDigits || len(digits) > e.maxDigits || !isAllDecimalDigits(digits) {
		return nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	if i < minEpochSeconds*e.unitScale || i > maxEpochSeconds*e.unitScale {
		return nil
	}
	t := e.toTime(i)
	conf := e.calibrator.Confidence(t)
	if e.step > 0 {
		conf = calibrate.StepDown(conf, e.step)
	}
	return []format.Interpretation{{
		Value:       value.DateTime(t),
		Confidence:  conf,
		Description: e.name + " epoch -> " + t.Format(time.RFC3339),
	}}
}

func (e epochUnit) CanFormat(v value.Value) bool { return v.Kind == value.KindDateTime }

func (e epochUnit) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindDateTime {
		return "", false
	}
	return itoa64(e.fromTime(v.DateTime)), true
}

func (e epochUnit) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindDateTime {
		return nil
	}
	return []format.Conversion{{
		Value:        v,
		TargetFormat: "datetime",
		Display:      v.DateTime.Format(time.RFC3339),
		Priority:     format.PrioritySemantic,
		Kind:         format.KindConversion,
	}}
}

// NewEpochSeconds, NewEpochMillis, NewEpochMicros and NewEpochNanos build
// the four epoch leaves sharing one calibrator so their confidence bands
// stay consistent with each other and with DateTime.
func NewEpochSeconds(c calibrate.Calibrator) format.Format {
	return epochUnit{
		id: "epoch-seconds", name: "seconds", step: 0, unitScale: 1, minDigits: 9, maxDigits: 10,
		toTime:     func(i int64) time.Time { return time.Unix(i, 0).UTC() },
		fromTime:   func(t time.Time) int64 { return t.Unix() },
		calibrator: c,
	}
}

func NewEpochMillis(c calibrate.Calibrator) format.Format {
	return epochUnit{
		id: "epoch-millis", name: "milliseconds", step: calibrate.StepMillis, unitScale: 1_000, minDigits: 12, maxDigits: 13,
		toTime:     func(i int64) time.Time { return time.UnixMilli(i).UTC() },
		fromTime:   func(t time.Time) int64 { return t.UnixMilli() },
		calibrator: c,
	}
}

func NewEpochMicros(c calibrate.Calibrator) format.Format {
	return epochUnit{
		id: "epoch-micros", name: "microseconds", step: calibrate.StepMicros, unitScale: 1_000_000, minDigits: 15, maxDigits: 16,
		toTime:     func(i int64) time.Time { return time.UnixMicro(i).UTC() },
		fromTime:   func(t time.Time) int64 { return t.UnixMicro() },
		calibrator: c,
	}
}

func NewEpochNanos(c calibrate.Calibrator) format.Format {
	return epochUnit{
		id: "epoch-nanos", name: "nanoseconds", step: calibrate.StepNanos, unitScale: 1_000_000_000, minDigits: 18, maxDigits: 19,
		toTime:     func(i int64) time.Time { return time.Unix(0, i).UTC() },
		fromTime:   func(t time.Time) int64 { return t.UnixNano() },
		calibrator: c,
	}
}
