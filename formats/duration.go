/*************************************************************************
 * Copyright 2020 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// Duration recognizes time durations in compact ("1h30m", "1.5h"), ISO-8601
// ("PT2H30M"), clock ("1:30:00") and human ("5 days", "2 hours 30 minutes")
// notations. The parsed value is the span in whole seconds; Now anchors the
// "now + duration" annotation on conversions.
type Duration struct {
	Now func() time.Time
}

func (Duration) ID() string        { return "duration" }
func (Duration) Name() string      { return "Duration" }
func (Duration) Aliases() []string { return []string{"dur", "timespan"} }
func (Duration) Info() format.Info {
	return format.Info{
		Category:    "time",
		Description: "Time durations (1h30m, 5 days, 1.5h, PT2H30M, 1:30:00)",
		Examples:    []string{"1h30m", "5 days", "PT2H30M", "1:30:00"},
	}
}

func (d Duration) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Duration) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	dur, ok := parseDuration(s)
	if !ok || dur < time.Second {
		return nil
	}
	secs := int64(dur / time.Second)
	return []format.Interpretation{{
		Value:       value.Int(secs),
		Confidence:  0.90,
		Description: s + " = " + strconv.FormatInt(secs, 10) + " seconds (" + secondsToHuman(secs) + ")",
	}}
}

// parseDuration tries each supported notation in order of distinctiveness.
func parseDuration(s string) (time.Duration, bool) {
	if s == "" {
		return 0, false
	}
	if dur, ok := parseISO8601(s); ok {
		return dur, true
	}
	if dur, ok := parseClock(s); ok {
		return dur, true
	}
	// Go's own notation covers "1h30m", "1.5h", "90s" and the like, but a
	// bare number has no unit and never parses here.
	if dur, err := time.ParseDuration(s); err == nil {
		return dur, true
	}
	return parseHuman(s)
}

var iso8601Re = regexp.MustCompile(`^[Pp](?:(\d+)[Ww])?(?:(\d+)[Dd])?(?:[Tt](?:(\d+)[Hh])?(?:(\d+)[Mm])?(?:(\d+(?:\.\d+)?)[Ss])?)?$`)

func parseISO8601(s string) (time.Duration, bool) {
	m := iso8601Re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	var total time.Duration
	add := func(lit string, unit time.Duration) {
		if lit == "" {
			return
		}
		n, _ := strconv.ParseFloat(lit, 64)
		total += time.Duration(n * float64(unit))
	}
	add(m[1], 7*24*time.Hour)
	add(m[2], 24*time.Hour)
	add(m[3], time.Hour)
	add(m[4], time.Minute)
	add(m[5], time.Second)
	return total, total > 0
}

// parseClock handles H:MM:SS; two-field clock strings are left to the
// datetime leaf, which reads them as a time of day.
func parseClock(s string) (time.Duration, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	sec, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	if h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return 0, false
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, true
}

var humanTokenRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-zA-Z]+)$`)

func parseHuman(s string) (time.Duration, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	// re-join number/unit pairs split by whitespace ("5 days" -> "5days")
	var tokens []string
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if strings.EqualFold(f, "and") {
			continue
		}
		if isAllDecimalOrDot(f) && i+1 < len(fields) {
			tokens = append(tokens, f+fields[i+1])
			i++
			continue
		}
		tokens = append(tokens, f)
	}
	if len(tokens) == 0 {
		return 0, false
	}
	var total time.Duration
	for _, tok := range tokens {
		m := humanTokenRe.FindStringSubmatch(tok)
		if m == nil {
			return 0, false
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		unit, ok := durationUnit(m[2])
		if !ok {
			return 0, false
		}
		total += time.Duration(n * float64(unit))
	}
	return total, total > 0
}

func isAllDecimalOrDot(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

func durationUnit(s string) (time.Duration, bool) {
	switch strings.ToLower(s) {
	case "ms", "millisecond", "milliseconds":
		return time.Millisecond, true
	case "s", "sec", "secs", "second", "seconds":
		return time.Second, true
	case "m", "min", "mins", "minute", "minutes":
		return time.Minute, true
	case "h", "hr", "hrs", "hour", "hours":
		return time.Hour, true
	case "d", "day", "days":
		return 24 * time.Hour, true
	case "w", "week", "weeks":
		return 7 * 24 * time.Hour, true
	case "mo", "month", "months":
		return 30 * 24 * time.Hour, true
	case "y", "yr", "year", "years":
		return 365 * 24 * time.Hour, true
	}
	return 0, false
}

func secondsToHuman(secs int64) string {
	if secs <= 0 {
		return "0s"
	}
	var parts []string
	for _, u := range []struct {
		n    int64
		name string
	}{
		{7 * 24 * 3600, "w"},
		{24 * 3600, "d"},
		{3600, "h"},
		{60, "m"},
		{1, "s"},
	} {
		if secs >= u.n {
			parts = append(parts, strconv.FormatInt(secs/u.n, 10)+u.name)
			secs %= u.n
		}
	}
	return strings.Join(parts, " ")
}

func (d Duration) CanFormat(v value.Value) bool {
	if v.Kind != value.KindInt {
		return false
	}
	i, ok := v.Int.Int64()
	return ok && i >= 0
}

func (d Duration) Format(v value.Value) (string, bool) {
	if !d.CanFormat(v) {
		return "", false
	}
	i, _ := v.Int.Int64()
	return secondsToHuman(i), true
}

// Conversions annotates plausible duration magnitudes on integer nodes:
// values of a minute or more read as seconds, values of a second or more
// read as milliseconds. Both edges are terminal; a rendered duration string
// is not a useful further input.
func (d Duration) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindInt {
		return nil
	}
	i, ok := v.Int.Int64()
	if !ok || i <= 0 || i > 10_000_000_000_000 {
		return nil
	}

	var out []format.Conversion
	if i >= 60 && i < 1_000_000_000 {
		human := secondsToHuman(i)
		abs := d.now().Add(time.Duration(i) * time.Second).UTC().Format(time.RFC3339)
		out = append(out, format.Conversion{
			Value:        value.String(human),
			TargetFormat: "duration",
			Display:      human + " (now + " + human + " = " + abs + ")",
			Priority:     format.PrioritySemantic,
			Kind:         format.KindConversion,
			DisplayOnly:  true,
		})
	}
	if i >= 1000 {
		secs := i / 1000
		if secs >= 1 {
			human := secondsToHuman(secs)
			abs := d.now().Add(time.Duration(secs) * time.Second).UTC().Format(time.RFC3339)
			out = append(out, format.Conversion{
				Value:        value.String(human),
				TargetFormat: "duration-ms",
				Display:      human + " (now + " + human + " = " + abs + ")",
				Priority:     format.PrioritySemantic,
				Kind:         format.KindConversion,
				DisplayOnly:  true,
			})
		}
	}
	return out
}
