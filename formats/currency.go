/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package formats

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gravwell/formatorbit/v3/currency"
	"github.com/gravwell/formatorbit/v3/format"
	"github.com/gravwell/formatorbit/v3/value"
)

// Currency recognizes "<amount><code>" and "<symbol><amount>" monetary
// literals and, given a rate cache, converts between currencies live.
// Without a cache it still recognizes and round-trips the literal; only
// cross-currency conversions require one.
type Currency struct {
	Cache   *currency.Cache
	Targets []string
}

var symbolCodes = map[string]string{"$": "USD", "€": "EUR", "£": "GBP", "¥": "JPY"}

// siMultiplier maps the SI-prefix letters gravwell's own leaf formats
// recognize elsewhere (datasize, etc.) onto a plain numeric multiplier, so
// "5k" ahead of a currency code parses as 5000.
var siMultiplier = map[byte]float64{
	'k': 1e3, 'K': 1e3,
	'M': 1e6,
	'G': 1e9,
}

// splitSIPrefix strips a trailing SI-prefix letter from numPart and returns
// the multiplier to apply, or 1 if none is present.
func splitSIPrefix(numPart string) (string, float64) {
	if numPart == "" {
		return numPart, 1
	}
	last := numPart[len(numPart)-1]
	if mult, ok := siMultiplier[last]; ok {
		return numPart[:len(numPart)-1], mult
	}
	return numPart, 1
}

func (Currency) ID() string        { return "currency" }
func (Currency) Name() string      { return "Currency" }
func (Currency) Aliases() []string { return []string{"money"} }
func (Currency) Info() format.Info {
	return format.Info{
		Category:    "unit",
		Description: "Monetary amount tagged with a currency code or symbol",
		Examples:    []string{"100USD", "$100", "€49.99"},
	}
}

func (c Currency) Parse(input string) []format.Interpretation {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}
	for sym, code := range symbolCodes {
		if strings.HasPrefix(s, sym) {
			amt, err := strconv.ParseFloat(strings.TrimSpace(s[len(sym):]), 64)
			if err != nil {
				return nil
			}
			return []format.Interpretation{{
				Value:       value.CurrencyValue(amt, code),
				Confidence:  0.78,
				Description: fmt.Sprintf("%.2f %s", amt, code),
			}}
		}
	}
	// trailing three-letter ISO code, e.g. "100USD" or "100 USD"
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 4 {
		return nil
	}
	code := strings.ToUpper(trimmed[len(trimmed)-3:])
	if !isAlpha3(code) {
		return nil
	}
	numPart := strings.TrimSpace(trimmed[:len(trimmed)-3])
	if numPart == "" {
		return nil
	}
	numPart, mult := splitSIPrefix(numPart)
	amt, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return nil
	}
	amt *= mult

	confidence := float32(0.70)
	if mult != 1 {
		// SI-prefixed literals ("5kUSD") carry a more distinctive marker
		// than a bare trailing code, so they score higher -- and USD gets
		// a further bump as the default locale's currency.
		confidence = 0.85
		if code == "USD" {
			confidence = 0.90
		}
	}
	return []format.Interpretation{{
		Value:       value.CurrencyValue(amt, code),
		Confidence:  confidence,
		Description: fmt.Sprintf("%.2f %s", amt, code),
	}}
}

func isAlpha3(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func (Currency) CanFormat(v value.Value) bool { return v.Kind == value.KindCurrency }

func (Currency) Format(v value.Value) (string, bool) {
	if v.Kind != value.KindCurrency {
		return "", false
	}
	return fmt.Sprintf("%.2f %s", v.Currency.Amount, v.Currency.Code), true
}

// defaultTargets is used when the Currency format has no explicit Targets,
// keeping the conversion edge count bounded without a plugin-contributed or
// user-configured currency list.
var defaultTargets = []string{"USD", "EUR", "GBP", "JPY", "SEK"}

func (c Currency) Conversions(v value.Value) []format.Conversion {
	if v.Kind != value.KindCurrency || c.Cache == nil {
		return nil
	}
	targets := c.Targets
	if len(targets) == 0 {
		targets = defaultTargets
	}
	var out []format.Conversion
	for _, target := range targets {
		if target == v.Currency.Code {
			continue
		}
		converted, err := c.Cache.Convert(context.Background(), v.Currency.Amount, v.Currency.Code, target)
		if err != nil {
			continue
		}
		out = append(out, format.Conversion{
			Value:        value.CurrencyValue(converted, target),
			TargetFormat: "currency-" + strings.ToLower(target),
			Display:      fmt.Sprintf("%.2f %s", converted, target),
			Priority:     format.PrioritySemantic,
			Kind:         format.KindRepresentation,
			DisplayOnly:  true,
		})
	}
	return out
}
