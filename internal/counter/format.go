package counter

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// above this every float64 is an integer and int64 conversion stops being exact
const maxExactInt = 1 << 53

// Formatter renders display values with the digits, grouping and decimal
// separator of its locale.
type Formatter struct {
	p *message.Printer
}

// NewFormatter returns a formatter grouping digits the way tag does.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag)}
}

// ParseLocale resolves a BCP 47 tag such as "en" or "en-IN".
func ParseLocale(s string) (language.Tag, error) {
	if s == "" {
		return language.English, nil
	}
	return language.Parse(s)
}

var defaultFormatter = NewFormatter(language.English)

// Format renders v with the default English grouping.
func Format(v float64) string {
	return defaultFormatter.Format(v)
}

// Format renders integer-valued numbers as grouped integers and everything else
// rounded to one decimal. A value that rounds to an integer loses its ".0".
func (f *Formatter) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v == math.Trunc(v) {
		return f.integer(v)
	}
	r := math.Round(v*10) / 10
	if r == math.Trunc(r) {
		return f.integer(r)
	}
	return f.p.Sprint(number.Decimal(r, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}

func (f *Formatter) integer(v float64) string {
	if math.Abs(v) >= maxExactInt {
		return humanize.Commaf(v)
	}
	return f.p.Sprint(number.Decimal(int64(v)))
}
