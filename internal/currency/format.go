// Package currency renders money amounts for display.
package currency

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultCode   = "USD"
	DefaultLocale = "en-US"
)

const nbsp = "\u00a0"

// placement is where a locale puts the currency symbol.
type placement int

const (
	prefix placement = iota
	prefixSpaced
	suffixSpaced
)

// Languages that write "1.234,56 €" style amounts.
var suffixLanguages = map[string]bool{
	"de": true, "fr": true, "it": true, "ru": true, "pl": true, "cs": true,
	"sv": true, "fi": true, "da": true, "nb": true, "no": true, "sk": true,
	"hu": true, "ro": true, "bg": true, "uk": true, "lt": true, "lv": true,
}

func placementFor(tag language.Tag) placement {
	base, _ := tag.Base()
	region, _ := tag.Region()
	switch b := base.String(); {
	case suffixLanguages[b]:
		return suffixSpaced
	case b == "es" && region.String() == "ES", b == "pt" && region.String() == "PT":
		return suffixSpaced
	case b == "es", b == "pt", b == "nl":
		return prefixSpaced
	}
	return prefix
}

// Format renders amount in the currency identified by the ISO 4217 code for
// the given BCP 47 locale. Empty code and locale default to USD and en-US.
//
// The number of fraction digits follows the currency (none for JPY, two for
// USD). Negative amounts carry a leading minus sign.
func Format(amount decimal.Decimal, code, locale string) (string, error) {
	if code == "" {
		code = DefaultCode
	}
	if locale == "" {
		locale = DefaultLocale
	}

	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return "", fmt.Errorf("invalid currency code %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	scale, _ := currency.Standard.Rounding(unit)
	rounded := amount.Round(int32(scale))

	p := message.NewPrinter(tag)
	digits, err := formatDigits(p, rounded.Abs(), scale)
	if err != nil {
		return "", err
	}
	symbol := p.Sprint(currency.Symbol(unit))

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	switch placementFor(tag) {
	case suffixSpaced:
		return sign + digits + nbsp + symbol, nil
	case prefixSpaced:
		return sign + symbol + nbsp + digits, nil
	default:
		return sign + symbol + digits, nil
	}
}

// formatDigits renders a non-negative amount with the locale's grouping and
// decimal separator. The integer part goes through x/text as an int64 and the
// fraction is copied digit by digit, so no precision is lost to float64.
func formatDigits(p *message.Printer, abs decimal.Decimal, scale int) (string, error) {
	if abs.GreaterThan(maxAmount) {
		return "", fmt.Errorf("amount %s is too large to format", abs)
	}
	out := p.Sprint(number.Decimal(abs.IntPart()))
	if scale == 0 {
		return out, nil
	}

	fixed := abs.StringFixed(int32(scale))
	frac := fixed[strings.IndexByte(fixed, '.')+1:]

	var b strings.Builder
	b.WriteString(out)
	b.WriteString(decimalSeparator(p))
	for _, c := range frac {
		b.WriteString(p.Sprint(number.Decimal(int(c - '0'))))
	}
	return b.String(), nil
}

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// decimalSeparator is whatever the locale prints between 1 and 5 in 1.5.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprint(number.Decimal(1.5, number.Scale(1)))
	s = strings.TrimPrefix(s, p.Sprint(number.Decimal(1)))
	return strings.TrimSuffix(s, p.Sprint(number.Decimal(5)))
}

// ValidCode reports whether code is a recognized ISO 4217 currency code.
func ValidCode(code string) bool {
	_, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	return err == nil
}

// FormatOrPlain is Format for display paths that must not fail. It falls back
// to the plain decimal string on error.
func FormatOrPlain(amount decimal.Decimal, code, locale string) string {
	s, err := Format(amount, code, locale)
	if err != nil {
		return amount.StringFixed(2)
	}
	return s
}
