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

// Cron recognizes standard five-field cron expressions (minute hour
// day-of-month month day-of-week) and, as a SourceConverter, exposes the
// next scheduled firing relative to the calibrator's clock.
//
// No cron-expression library appears anywhere in the retrieved pack, so
// this is hand-rolled against the standard library; see DESIGN.md.
type Cron struct {
	Now func() time.Time
}

func (c Cron) ID() string        { return "cron" }
func (c Cron) Name() string      { return "Cron expression" }
func (c Cron) Aliases() []string { return []string{"crontab"} }
func (c Cron) Info() format.Info {
	return format.Info{
		Category:    "schedule",
		Description: "Five-field cron schedule expression",
		Examples:    []string{"*/5 * * * *", "0 9 * * 1-5"},
	}
}

type cronField struct {
	values map[int]bool
	all    bool

	// step and stepOnly describe a field that was written as a single
	// "*/N" component: step is N, stepOnly is true. describeCron uses
	// this to render "Every N minutes" instead of falling back to the
	// generic description for step schedules.
	step     int
	stepOnly bool
}

func parseCronField(f string, min, max int) (cronField, bool) {
	cf := cronField{values: map[int]bool{}}
	parts := strings.Split(f, ",")
	for _, part := range parts {
		step := 1
		rng := part
		if i := strings.IndexByte(part, '/'); i >= 0 {
			rng = part[:i]
			s, err := strconv.Atoi(part[i+1:])
			if err != nil || s <= 0 {
				return cf, false
			}
			step = s
		}
		if len(parts) == 1 && rng == "*" && step > 1 {
			cf.step, cf.stepOnly = step, true
		}
		lo, hi := min, max
		if rng == "*" {
			// full range, already set
		} else if i := strings.IndexByte(rng, '-'); i >= 0 {
			a, err1 := strconv.Atoi(rng[:i])
			b, err2 := strconv.Atoi(rng[i+1:])
			if err1 != nil || err2 != nil || a > b {
				return cf, false
			}
			lo, hi = a, b
		} else {
			v, err := strconv.Atoi(rng)
			if err != nil {
				return cf, false
			}
			lo, hi = v, v
		}
		if lo < min || hi > max {
			return cf, false
		}
		for v := lo; v <= hi; v += step {
			cf.values[v] = true
		}
	}
	if len(cf.values) == max-min+1 {
		cf.all = true
	}
	return cf, true
}

func (cf cronField) has(v int) bool { return cf.all || cf.values[v] }

type cronSchedule struct {
	minute, hour, dom, month, dow cronField
}

func parseCronExpr(s string) (cronSchedule, bool) {
	fields := strings.Fields(s)
	if len(fields) != 5 {
		return cronSchedule{}, false
	}
	var sched cronSchedule
	var ok bool
	if sched.minute, ok = parseCronField(fields[0], 0, 59); !ok {
		return sched, false
	}
	if sched.hour, ok = parseCronField(fields[1], 0, 23); !ok {
		return sched, false
	}
	if sched.dom, ok = parseCronField(fields[2], 1, 31); !ok {
		return sched, false
	}
	if sched.month, ok = parseCronField(fields[3], 1, 12); !ok {
		return sched, false
	}
	if sched.dow, ok = parseCronField(fields[4], 0, 6); !ok {
		return sched, false
	}
	return sched, true
}

func (sched cronSchedule) matches(t time.Time) bool {
	return sched.minute.has(t.Minute()) && sched.hour.has(t.Hour()) &&
		sched.dom.has(t.Day()) && sched.month.has(int(t.Month())) &&
		sched.dow.has(int(t.Weekday()))
}

func (sched cronSchedule) next(from time.Time) time.Time {
	t := from.Truncate(time.Minute).Add(time.Minute)
	for limit := 0; limit < 366*24*60; limit++ {
		if sched.matches(t) {
			return t
		}
		t = t.Add(time.Minute)
	}
	return time.Time{}
}

func (c Cron) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	sched, ok := parseCronExpr(s)
	if !ok {
		return nil
	}
	return []format.Interpretation{{
		Value:       value.String(s),
		Confidence:  0.80,
		Description: describeCron(sched),
	}}
}

func describeCron(sched cronSchedule) string {
	rest := sched.hour.all && sched.dom.all && sched.month.all && sched.dow.all
	switch {
	case sched.minute.all && rest:
		return "Every minute"
	case sched.minute.stepOnly && rest:
		return "Every " + strconv.Itoa(sched.minute.step) + " minutes"
	case sched.hour.stepOnly && sched.minute.all == false && len(sched.minute.values) == 1 && sched.dom.all && sched.month.all && sched.dow.all:
		return "Every " + strconv.Itoa(sched.hour.step) + " hours"
	case !sched.minute.all && len(sched.minute.values) == 1 && rest:
		return "Hourly at a fixed minute"
	default:
		return "Custom cron schedule"
	}
}

func (c Cron) CanFormat(v value.Value) bool {
	if v.Kind != value.KindString {
		return false
	}
	_, ok := parseCronExpr(v.Str)
	return ok
}

func (c Cron) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindString {
		return "", false
	}
	if _, ok := parseCronExpr(v.Str); !ok {
		return "", false
	}
	return v.Str, true
}

func (c Cron) Conversions(v value.Value) []format.Conversion { return nil }

// SourceConversions exposes the next scheduled firing; it only makes sense
// when the value is known to have come from this format.
func (c Cron) SourceConversions(v value.Value, sourceFormat string) []format.Conversion {
	if sourceFormat != c.ID() || v.Kind != value.KindString {
		return nil
	}
	sched, ok := parseCronExpr(v.Str)
	if !ok {
		return nil
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	next := sched.next(now())
	if next.IsZero() {
		return nil
	}
	return []format.Conversion{{
		Value:        value.DateTime(next),
		TargetFormat: "cron-next",
		Display:      "next run: " + next.Format(time.RFC3339),
		Priority:     format.PrioritySemantic,
		Kind:         format.KindConversion,
		DisplayOnly:  true,
	}}
}
