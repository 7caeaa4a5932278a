// Package validate provides shared validation functions for forms and
// configuration.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"

	"github.com/colonyops/folio/internal/core/styles"
)

// PartyName validates a party name is non-empty after trimming whitespace.
func PartyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// PartyNameField returns a criterio validator for party names.
func PartyNameField(field, name string) error {
	return criterio.Run(field, name, PartyName)
}

// Currency validates a currency symbol or ISO code: one to three characters
// without spaces.
func Currency(s string) error {
	n := utf8.RuneCountInString(s)
	if n == 0 || n > 3 {
		return fmt.Errorf("currency must be 1 to 3 characters")
	}
	if strings.ContainsAny(s, " \t") {
		return fmt.Errorf("currency cannot contain spaces")
	}
	return nil
}

// TaxRate validates a tax rate percentage typed as text.
func TaxRate(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("tax rate must be a number")
	}
	return TaxRateValue(v)
}

// TaxRateValue validates a tax rate percentage is within [0, 100].
func TaxRateValue(v float64) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("tax rate must be between 0 and 100")
	}
	return nil
}

// HexColor validates a "#rrggbb" or "#rgb" color.
func HexColor(s string) error {
	if _, ok := styles.ParseHex(s); !ok {
		return fmt.Errorf("%q is not a hex color", s)
	}
	return nil
}

// Amount parses a quantity or price typed as text. Empty input is zero.
// Values beyond the float64 range are rejected.
func Amount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is too large", s)
	}
	return f, nil
}

// AmountText validates text accepted by Amount.
func AmountText(s string) error {
	_, err := Amount(s)
	return err
}

// Date parses a calendar date in YYYY-MM-DD form.
func Date(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("date must look like 2006-01-02")
	}
	return t, nil
}

// DateText validates text accepted by Date.
func DateText(s string) error {
	_, err := Date(s)
	return err
}

// Phone returns a validator for phone numbers. Numbers without a leading
// "+" are parsed for region (an ISO 3166 code such as "DE"). Empty input is
// valid.
func Phone(region string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		p, err := libphonenumber.Parse(s, strings.ToUpper(region))
		if err != nil {
			return fmt.Errorf("%q is not a phone number", s)
		}
		if !libphonenumber.IsValidNumber(p) {
			return fmt.Errorf("%q is not a valid phone number", s)
		}
		return nil
	}
}

// FormatPhone formats a valid phone number in international form. Anything
// else is returned unchanged.
func FormatPhone(s, region string) string {
	p, err := libphonenumber.Parse(s, strings.ToUpper(region))
	if err != nil || !libphonenumber.IsValidNumber(p) {
		return s
	}
	return libphonenumber.Format(p, libphonenumber.INTERNATIONAL)
}
