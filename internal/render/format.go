package render

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"

	"github.com/colonyops/folio/internal/core/document"
)

const notANumber = "n/a"

// Money formats v with two decimals, grouped thousands and the currency
// symbol. Non-finite values print as "n/a".
func Money(v float64, currency string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notANumber
	}
	s := groupThousands(decimal.NewFromFloat(v).StringFixed(2))
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// Quantity formats a quantity without trailing zeros.
func Quantity(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notANumber
	}
	return decimal.NewFromFloat(v).String()
}

// Percent formats a rate given in percent.
func Percent(v float64) string {
	return Quantity(v) + "%"
}

// Date formats a calendar date; the zero time prints as a dash.
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return sign + s
	}

	var sb strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		sb.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(intPart[i : i+3])
	}
	if frac != "" {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sign + sb.String()
}

// fit truncates or pads s to exactly w cells using align.
func fit(s string, w int, align document.Align) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "…")
	gap := w - ansi.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case document.AlignRight:
		return strings.Repeat(" ", gap) + s
	case document.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// wrap breaks plain text into lines of at most w cells.
func wrap(s string, w int) []string {
	if w <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		wrapped := ansi.Wordwrap(para, w, "")
		for _, l := range strings.Split(wrapped, "\n") {
			out = append(out, ansi.Truncate(l, w, ""))
		}
	}
	return out
}
