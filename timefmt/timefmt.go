/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package timefmt is a small, ordered catalog of textual datetime layouts,
// adapted from a log-line timestamp extractor into a whole-string matcher
// for the datetime format: given an input string, try each known layout in
// turn and report the first one that parses it completely.
//
// The order mirrors the original extractor's ordering: ANSIC-family and
// RFC-numbered layouts first (most distinctive), looser unpadded and
// zoneless variants last, since those are the ones most likely to also
// match a stray numeric string that some other format should claim instead.
package timefmt

import "time"

// Layout names a known textual datetime format. Name is surfaced in
// Interpretation.Description; Pattern is the time.Parse reference layout.
type Layout struct {
	Name    string
	Pattern string
}

// Layouts is the ordered list consulted by Recognize.
var Layouts = []Layout{
	{"AnsiC", time.ANSIC},
	{"UnixDate", time.UnixDate},
	{"RubyDate", time.RubyDate},
	{"RFC822", time.RFC822},
	{"RFC822Z", time.RFC822Z},
	{"RFC850", time.RFC850},
	{"RFC1123", time.RFC1123},
	{"RFC1123Z", time.RFC1123Z},
	{"RFC3339", time.RFC3339},
	{"RFC3339Nano", time.RFC3339Nano},
	{"Apache", "02/Jan/2006:15:04:05 -0700"},
	{"ApacheNoTZ", "02/Jan/2006:15:04:05"},
	{"Syslog", "Jan _2 15:04:05"},
	{"SyslogFile", "2006-01-02T15:04:05.000000Z07:00"},
	{"DPKG", "2006-01-02 15:04:05"},
	{"NGINX", "2006/01/02 15:04:05"},
	{"ZonelessRFC3339", "2006-01-02T15:04:05"},
	{"UnpaddedDateTime", "2006-1-2 15:4:5"},
	{"UnpaddedMilliDateTime", "2006-1-2 15:4:5.000"},
	{"UK", "02/01/2006 15:04:05"},
	{"LDAP", "20060102150405Z"},
}

// Recognize tries every layout in order against s and returns the first
// full-string match, normalized to UTC. A layout lacking explicit zone
// information is interpreted in loc.
func Recognize(s string, loc *time.Location) (t time.Time, layout string, ok bool) {
	for _, l := range Layouts {
		if v, err := time.ParseInLocation(l.Pattern, s, loc); err == nil {
			return v.UTC(), l.Name, true
		}
	}
	return time.Time{}, "", false
}
