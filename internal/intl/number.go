package intl

import (
	"math"

	"fluentkit/internal/memo"
	"fluentkit/internal/value"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NumberFormatter renders value.Number with locale digits, separators and
// percent style.
type NumberFormatter struct {
	locale  language.Tag
	printer *message.Printer
}

// Construct implements memo.Memoizable; it takes no arguments.
func (*NumberFormatter) Construct(locale language.Tag, _ memo.Key) (*NumberFormatter, error) {
	return &NumberFormatter{locale: locale, printer: message.NewPrinter(locale)}, nil
}

func (nf *NumberFormatter) Locale() language.Tag { return nf.locale }

// Format renders n. Currency style prints the amount followed by the ISO code,
// since CLDR currency data is outside x/text's number package.
func (nf *NumberFormatter) Format(n value.Number) string {
	opts := n.Options
	var fo []number.Option
	if !opts.UseGrouping {
		fo = append(fo, number.NoSeparator())
	}
	if opts.MinimumIntegerDigits > 0 {
		fo = append(fo, number.MinIntegerDigits(opts.MinimumIntegerDigits))
	}
	if opts.MinimumFractionDigits > 0 {
		fo = append(fo, number.MinFractionDigits(opts.MinimumFractionDigits))
	}
	if opts.HasMaximumFractionDigits {
		fo = append(fo, number.MaxFractionDigits(max(opts.MaximumFractionDigits, opts.MinimumFractionDigits)))
	} else if opts.Style != value.StylePercent {
		// без явного ограничения показываем все значащие знаки
		fo = append(fo, number.MaxFractionDigits(max(fractionDigits(n.Value), opts.MinimumFractionDigits)))
	}

	switch opts.Style {
	case value.StylePercent:
		return nf.printer.Sprint(number.Percent(n.Value, fo...))
	case value.StyleCurrency:
		s := nf.printer.Sprint(number.Decimal(n.Value, fo...))
		if opts.Currency != "" {
			s += " " + opts.Currency
		}
		return s
	}
	return nf.printer.Sprint(number.Decimal(n.Value, fo...))
}

// fractionDigits: сколько знаков после точки нужно, чтобы не потерять значение.
func fractionDigits(f float64) int {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	s := value.NewNumber(f).String()
	for i := range len(s) {
		if s[i] == '.' {
			return len(s) - i - 1
		}
	}
	return 0
}
