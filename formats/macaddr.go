/*************************************************************************
 * Copyright 2020 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"encoding/hex"
	"net"
	"strings"

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// MacAddress recognizes 48-bit hardware addresses in colon, hyphen, Cisco
// dot, space-separated and raw-hex notations. Separator notations are
// distinctive; raw hex is weak since any 12 hex characters qualify.
type MacAddress struct{}

func (MacAddress) ID() string        { return "mac-address" }
func (MacAddress) Name() string      { return "MAC Address" }
func (MacAddress) Aliases() []string { return []string{"mac", "ethernet", "hw-address"} }
func (MacAddress) Info() format.Info {
	return format.Info{
		Category:      "network",
		Description:   "48-bit hardware (MAC) address",
		Examples:      []string{"00:1A:2B:3C:4D:5E", "001A.2B3C.4D5E"},
		HasValidation: true,
	}
}

func (m MacAddress) Parse(input string) []format.Interpretation {
	b, notation, conf, ok := parseMac(strings.TrimSpace(input))
	if !ok {
		return nil
	}
	colon := formatMacColon(b)
	return []format.Interpretation{{
		Value:       value.Bytes(b),
		Confidence:  conf,
		Description: colon + " (" + macAddressType(b) + ")",
		RichDisplay: []format.RichDisplay{{
			Kind:  format.DisplayKeyValue,
			Title: "MAC address",
			Table: []format.KeyValue{
				{Key: "OUI", Value: formatMacColon(b[:3])},
				{Key: "NIC", Value: formatMacColon(b[3:])},
				{Key: "Notation", Value: notation},
				{Key: "Type", Value: macAddressType(b)},
			},
		}},
	}}
}

// parseMac accepts the five notations and reports which one matched. The
// colon, hyphen and Cisco dot notations go through net.ParseMAC; the
// space-separated and bare-hex shapes are handled directly since the
// standard parser doesn't know them.
func parseMac(s string) (b []byte, notation string, conf float32, ok bool) {
	if hw, err := net.ParseMAC(s); err == nil && len(hw) == 6 {
		switch {
		case strings.Contains(s, ":"):
			return hw, "colon-separated", 0.95, true
		case strings.Contains(s, "-"):
			return hw, "hyphen-separated", 0.95, true
		case strings.Contains(s, "."):
			return hw, "Cisco dot", 0.95, true
		}
	}
	if parts := strings.Split(s, " "); len(parts) == 6 {
		out := make([]byte, 0, 6)
		for _, p := range parts {
			if len(p) != 2 {
				return nil, "", 0, false
			}
			d, err := hex.DecodeString(p)
			if err != nil {
				return nil, "", 0, false
			}
			out = append(out, d[0])
		}
		return out, "space-separated", 0.85, true
	}
	if len(s) == 12 {
		if d, err := hex.DecodeString(s); err == nil {
			return d, "raw hex", 0.65, true
		}
	}
	return nil, "", 0, false
}

func formatMacColon(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = strings.ToUpper(hex.EncodeToString([]byte{c}))
	}
	return strings.Join(parts, ":")
}

// macAddressType classifies by the first octet's multicast and
// locally-administered bits, with broadcast and all-zero special-cased.
func macAddressType(b []byte) string {
	allFF, allZero := true, true
	for _, c := range b {
		if c != 0xFF {
			allFF = false
		}
		if c != 0x00 {
			allZero = false
		}
	}
	switch {
	case allFF:
		return "broadcast"
	case allZero:
		return "unspecified"
	case b[0]&0x01 != 0:
		return "multicast"
	case b[0]&0x02 != 0:
		return "locally administered"
	}
	return "unicast"
}

func (m MacAddress) CanFormat(v value.Value) bool {
	return v.Kind == value.KindBytes && len(v.Bytes) == 6
}

func (m MacAddress) Format(v value.Value) (string, bool) {
	if !m.CanFormat(v) {
		return "", false
	}
	return formatMacColon(v.Bytes), true
}

// Conversions renders any 6-byte value as a MAC address annotation. The
// edge is terminal: the rendered address string is a display form, not a
// further input.
func (m MacAddress) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindBytes || len(v.Bytes) != 6 {
		return nil
	}
	colon := formatMacColon(v.Bytes)
	return []format.Conversion{{
		Value:        value.String(colon),
		TargetFormat: "mac-address",
		Display:      colon + " (" + macAddressType(v.Bytes) + ")",
		Priority:     format.PrioritySemantic,
		Kind:         format.KindConversion,
		DisplayOnly:  true,
	}}
}

func (m MacAddress) Validate(input string) (string, bool) {
	s := strings.TrimSpace(input)
	if _, _, _, ok := parseMac(s); ok {
		return "", true
	}
	stripped := strings.Map(func(r rune) rune {
		if r == ':' || r == '-' || r == '.' || r == ' ' {
			return -1
		}
		return r
	}, s)
	if len(stripped) != 12 {
		return "a MAC address needs 12 hex digits, got " + itoa(len(stripped)), false
	}
	return "not a valid MAC address: unrecognized separator layout or non-hex digit", false
}
