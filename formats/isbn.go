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

	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// ISBN recognizes ISBN-10 and ISBN-13 literals (hyphenated or bare) and
// validates their check digit.
type ISBN struct{}

func (ISBN) ID() string        { return "isbn" }
func (ISBN) Name() string      { return "ISBN" }
func (ISBN) Aliases() []string { return []string{"isbn10", "isbn13"} }
func (ISBN) Info() format.Info {
	return format.Info{
		Category:    "identifier",
		Description: "Book identifier (ISBN-10 or ISBN-13)",
		Examples:    []string{"0-306-40615-2", "978-3-16-148410-0"},
	}
}

func stripISBN(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(s), "-", ""), " ", "")
}

func (ISBN) Parse(input string) []format.Interpretation {
	digits := stripISBN(input)
	switch len(digits) {
	case 10:
		if !validISBN10(digits) {
			return nil
		}
		return []format.Interpretation{{
			Value:       value.String(digits),
			Confidence:  isbn10Confidence(input, digits),
			Description: "ISBN-10",
		}}
	case 13:
		if !validISBN13(digits) {
			return nil
		}
		return []format.Interpretation{{
			Value:       value.String(digits),
			Confidence:  0.90,
			Description: "ISBN-13",
		}}
	default:
		return nil
	}
}

// isbn10Confidence grades a valid ISBN-10 the way the original does: a
// terminal check-digit X is the strongest signal, hyphenated/spaced input is
// next, a bare numeric string that also looks like a 10-digit Unix epoch
// (2001-09-09 to 2036-07-18) is penalized as likely ambiguous, and a plain
// numeric ISBN-10 otherwise falls in between.
func isbn10Confidence(rawInput, digits string) float32 {
	if digits[len(digits)-1] == 'X' || digits[len(digits)-1] == 'x' {
		return 0.95
	}
	if strings.ContainsAny(rawInput, "- ") {
		return 0.90
	}
	if looksLikeEpoch10(digits) {
		return 0.40
	}
	return 0.70
}

// looksLikeEpoch10 reports whether a 10-digit numeric string falls in the
// Unix-epoch-seconds range 1,000,000,000 to 2,100,000,000, narrower than
// the bounds the epoch leaves accept, to avoid mistaking a timestamp for a
// book identifier.
func looksLikeEpoch10(digits string) bool {
	if len(digits) != 10 {
		return false
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return false
	}
	return n >= 1_000_000_000 && n <= 2_100_000_000
}

func validISBN10(d string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		var v int
		if i == 9 && (d[i] == 'X' || d[i] == 'x') {
			v = 10
		} else {
			c := int(d[i] - '0')
			if c < 0 || c > 9 {
				return false
			}
			v = c
		}
		sum += (10 - i) * v
	}
	return sum%11 == 0
}

func validISBN13(d string) bool {
	sum := 0
	for i := 0; i < 13; i++ {
		c := int(d[i] - '0')
		if c < 0 || c > 9 {
			return false
		}
		if i%2 == 0 {
			sum += c
		} else {
			sum += c * 3
		}
	}
	return sum%10 == 0
}

func (ISBN) CanFormat(v value.Value) bool {
	return v.Kind == value.KindString && (len(v.Str) == 10 || len(v.Str) == 13)
}

func (ISBN) Format(v value.Value) (string, bool) {
	if !(ISBN{}).CanFormat(v) {
		return "", false
	}
	return v.Str, true
}

func (ISBN) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindString {
		return nil
	}
	if len(v.Str) == 10 {
		if isbn13, ok := isbn10To13(v.Str); ok {
			return []format.Conversion{{
				Value:        value.String(isbn13),
				TargetFormat: "isbn13",
				Display:      isbn13,
				Priority:     format.PrioritySemantic,
				Kind:         format.KindRepresentation,
				DisplayOnly:  true,
			}}
		}
	}
	return nil
}

func isbn10To13(d string) (string, bool) {
	if len(d) != 10 {
		return "", false
	}
	core := "978" + d[:9]
	sum := 0
	for i := 0; i < 12; i++ {
		c := int(core[i] - '0')
		if i%2 == 0 {
			sum += c
		} else {
			sum += c * 3
		}
	}
	check := (10 - sum%10) % 10
	return core + strconv.Itoa(check), true
}
