package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumberStyle: стиль форматирования NUMBER().
type NumberStyle uint8

const (
	StyleDecimal NumberStyle = iota
	StyleCurrency
	StylePercent
)

// ParseNumberStyle maps "decimal", "currency" and "percent"; anything else is decimal.
func ParseNumberStyle(s string) NumberStyle {
	switch s {
	case "currency":
		return StyleCurrency
	case "percent":
		return StylePercent
	}
	return StyleDecimal
}

func (s NumberStyle) String() string {
	switch s {
	case StyleCurrency:
		return "currency"
	case StylePercent:
		return "percent"
	}
	return "decimal"
}

// NumberOptions mirror the NUMBER() named arguments. The zero value means
// "print as is".
type NumberOptions struct {
	Style                    NumberStyle
	Currency                 string
	UseGrouping              bool
	MinimumIntegerDigits     int
	MinimumFractionDigits    int
	MaximumFractionDigits    int
	HasMaximumFractionDigits bool
}

// Merge applies NUMBER()-style named arguments. Unknown names and values of
// the wrong type are ignored.
func (o *NumberOptions) Merge(named Args) {
	for name, v := range named.All() {
		switch v := v.(type) {
		case String:
			switch name {
			case "style":
				o.Style = ParseNumberStyle(string(v))
			case "currency":
				o.Currency = string(v)
			case "useGrouping":
				switch v {
				case "true":
					o.UseGrouping = true
				case "false":
					o.UseGrouping = false
				}
			}
		case Number:
			n := digits(v.Value)
			switch name {
			case "minimumIntegerDigits":
				o.MinimumIntegerDigits = n
			case "minimumFractionDigits":
				o.MinimumFractionDigits = n
			case "maximumFractionDigits":
				o.MaximumFractionDigits, o.HasMaximumFractionDigits = n, true
			}
		}
	}
}

// digits: количество цифр из аргумента; отрицательные и огромные значения обрезаем.
func digits(f float64) int {
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > 20:
		return 20
	}
	return int(f)
}

// Number: числовое значение с опциями форматирования.
type Number struct {
	Value   float64
	Options NumberOptions
}

// NewNumber is a number without formatting options.
func NewNumber(f float64) Number {
	return Number{Value: f}
}

// ParseNumber parses a number literal such as "-1.50". The count of written
// fraction digits becomes MinimumFractionDigits, so "1.50" prints as "1.50".
func ParseNumber(s string) (Number, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	n := Number{Value: f}
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		n.Options.MinimumFractionDigits = len(s) - dot - 1
	}
	return n, nil
}

// String prints the number honoring the fraction digit options only. Locale
// aware output (grouping, percent, currency) is the job of a formatter.
func (n Number) String() string {
	var s string
	if n.Options.HasMaximumFractionDigits {
		s = strconv.FormatFloat(n.Value, 'f', n.Options.MaximumFractionDigits, 64)
		if strings.IndexByte(s, '.') >= 0 {
			s = strings.TrimRight(s, "0")
			s = strings.TrimSuffix(s, ".")
		}
	} else {
		s = strconv.FormatFloat(n.Value, 'f', -1, 64)
	}

	if minfd := n.Options.MinimumFractionDigits; minfd > 0 {
		dot := strings.IndexByte(s, '.')
		if dot < 0 {
			s += "." + strings.Repeat("0", minfd)
		} else if have := len(s) - dot - 1; have < minfd {
			s += strings.Repeat("0", minfd-have)
		}
	}

	if mid := n.Options.MinimumIntegerDigits; mid > 0 {
		sign := ""
		if strings.HasPrefix(s, "-") {
			sign, s = "-", s[1:]
		}
		intLen := strings.IndexByte(s, '.')
		if intLen < 0 {
			intLen = len(s)
		}
		if intLen < mid {
			s = strings.Repeat("0", mid-intLen) + s
		}
		s = sign + s
	}
	return s
}
