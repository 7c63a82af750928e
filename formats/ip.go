/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"net"
	"strings"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// IP recognizes dotted-decimal IPv4 and colon-hex IPv6 addresses. No
// IP-address library appears in the retrieved pack; net.ParseIP is the
// standard library's own battle-tested parser, so it is used directly
// rather than hand-rolling octet parsing. See DESIGN.md.
type IP struct{}

func (IP) ID() string        { return "ip" }
func (IP) Name() string      { return "IP address" }
func (IP) Aliases() []string { return []string{"ipv4", "ipv6"} }
func (IP) Info() format.Info {
	return format.Info{
		Category:    "network",
		Description: "IPv4 or IPv6 address",
		Examples:    []string{"192.168.1.1", "::1"},
	}
}

func (IP) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	ip := net.ParseIP(s)
	if ip == nil {
		return nil
	}
	conf := float32(0.85)
	desc := "IPv6 address"
	if v4 := ip.To4(); v4 != nil {
		ip = v4
		desc = "IPv4 address"
		conf = 0.88
	}
	return []format.Interpretation{{
		Value:       value.Bytes(ip),
		Confidence:  conf,
		Description: desc,
	}}
}

func (IP) CanFormat(v value.Value) bool {
	return v.Kind == value.KindBytes && (len(v.Bytes) == 4 || len(v.Bytes) == 16)
}

func (ip IP) Format(v value.Value) (string, bool) {
	if !ip.CanFormat(v) {
		return "", false
	}
	return net.IP(v.Bytes).String(), true
}

func (IP) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindBytes {
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
