/*************************************************************************
 * Copyright 2020 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"net/url"
	"strings"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// URL recognizes http/https/ftp/mailto URLs, breaking them into components
// and offering a tracking-parameter-stripped rendition. A bare domain
// without a scheme is accepted at reduced confidence with https:// assumed.
type URL struct{}

func (URL) ID() string        { return "url" }
func (URL) Name() string      { return "URL" }
func (URL) Aliases() []string { return []string{"uri", "link"} }
func (URL) Info() format.Info {
	return format.Info{
		Category:    "network",
		Description: "URL with component breakdown and tracking-parameter removal",
		Examples:    []string{"https://example.com/path?q=1", "example.com/page"},
	}
}

var urlSchemes = map[string]bool{"http": true, "https": true, "ftp": true, "mailto": true}

// trackingParams are query keys that identify campaign/click tracking and
// carry no addressing information.
var trackingParams = map[string]bool{
	"utm_source": true, "utm_medium": true, "utm_campaign": true,
	"utm_term": true, "utm_content": true,
	"fbclid": true, "gclid": true, "msclkid": true, "mc_eid": true,
	"igshid": true, "ref": true, "ref_src": true,
}

func (u URL) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	hadScheme := strings.Contains(s, "://") || strings.HasPrefix(s, "mailto:")
	candidate := s
	if !hadScheme {
		if !looksLikeBareURL(s) {
			return nil
		}
		candidate = "https://" + s
	}

	parsed, err := url.Parse(candidate)
	if err != nil || !urlSchemes[parsed.Scheme] {
		return nil
	}
	if parsed.Scheme != "mailto" && parsed.Host == "" {
		return nil
	}

	conf := float32(0.70)
	switch {
	case hadScheme:
		conf = 0.95
	case hasTrackingParams(parsed):
		conf = 0.85
	case strings.Contains(parsed.Path, "/") && parsed.Path != "":
		conf = 0.75
	}

	desc := parsed.Scheme + " URL, host " + parsed.Host
	if parsed.Fragment != "" {
		desc += " (has fragment)"
	}

	table := []format.KeyValue{
		{Key: "Scheme", Value: parsed.Scheme},
		{Key: "Host", Value: parsed.Host},
	}
	if parsed.Path != "" && parsed.Path != "/" {
		table = append(table, format.KeyValue{Key: "Path", Value: parsed.Path})
	}
	for k, vs := range parsed.Query() {
		for _, qv := range vs {
			table = append(table, format.KeyValue{Key: "? " + k, Value: qv})
		}
	}
	if parsed.Fragment != "" {
		table = append(table, format.KeyValue{Key: "Fragment", Value: parsed.Fragment})
	}
	if !hadScheme {
		table = append(table, format.KeyValue{Key: "Note", Value: "https:// scheme assumed"})
	}

	return []format.Interpretation{{
		Value:       value.String(parsed.String()),
		Confidence:  conf,
		Description: desc,
		RichDisplay: []format.RichDisplay{{Kind: format.DisplayKeyValue, Title: "URL", Table: table}},
	}}
}

// looksLikeBareURL is the scheme-less gate: a dotted host shape with a
// plausible TLD, no whitespace, and no userinfo-style @ (those are emails).
func looksLikeBareURL(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t") || strings.Contains(s, "@") {
		return false
	}
	host := s
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		host = s[:i]
	}
	dot := strings.LastIndex(host, ".")
	if dot <= 0 || dot == len(host)-1 {
		return false
	}
	tld := host[dot+1:]
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if r < 'a' || r > 'z' {
			if r < 'A' || r > 'Z' {
				return false
			}
		}
	}
	return true
}

func hasTrackingParams(u *url.URL) bool {
	for k := range u.Query() {
		if trackingParams[strings.ToLower(k)] {
			return true
		}
	}
	return false
}

func (URL) CanFormat(v value.Value) bool        { return false }
func (URL) Format(v value.Value) (string, bool) { return "", false }

// Conversions offers a tracking-stripped rendition of URL-shaped string
// values. The cleaned URL is terminal; re-walking it would only rediscover
// itself.
func (u URL) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindString {
		return nil
	}
	parsed, err := url.Parse(v.Str)
	if err != nil || !urlSchemes[parsed.Scheme] || parsed.Host == "" {
		return nil
	}
	if !hasTrackingParams(parsed) {
		return nil
	}
	q := parsed.Query()
	for k := range q {
		if trackingParams[strings.ToLower(k)] {
			q.Del(k)
		}
	}
	parsed.RawQuery = q.Encode()
	cleaned := parsed.String()
	return []format.Conversion{{
		Value:        value.String(cleaned),
		TargetFormat: "url-cleaned",
		Display:      cleaned,
		Priority:     format.PrioritySemantic,
		Kind:         format.KindConversion,
		DisplayOnly:  true,
	}}
}
