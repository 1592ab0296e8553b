// Package intl provides locale-bound helpers built on golang.org/x/text.
// Both helpers are memo.Memoizable and are meant to be fetched through a
// memo.Memoizer rather than built per call.
package intl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fluentkit/internal/memo"
	"fluentkit/internal/value"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// PluralType: cardinal ("1 file") или ordinal ("1st").
type PluralType uint8

const (
	Cardinal PluralType = iota
	Ordinal
)

func (t PluralType) Key() string {
	if t == Ordinal {
		return "ordinal"
	}
	return "cardinal"
}

// Category is a CLDR plural category name.
type Category string

const (
	Zero  Category = "zero"
	One   Category = "one"
	Two   Category = "two"
	Few   Category = "few"
	Many  Category = "many"
	Other Category = "other"
)

// ParseCategory reports whether s names a plural category.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(s); c {
	case Zero, One, Two, Few, Many, Other:
		return c, true
	}
	return "", false
}

var formNames = map[plural.Form]Category{
	plural.Other: Other,
	plural.Zero:  Zero,
	plural.One:   One,
	plural.Two:   Two,
	plural.Few:   Few,
	plural.Many:  Many,
}

// PluralRules selects CLDR plural categories for one locale.
type PluralRules struct {
	locale language.Tag
	typ    PluralType
	rules  *plural.Rules
}

// Construct implements memo.Memoizable. args must be a PluralType.
func (*PluralRules) Construct(locale language.Tag, args memo.Key) (*PluralRules, error) {
	typ, ok := args.(PluralType)
	if !ok {
		return nil, fmt.Errorf("plural rules: unexpected args %T", args)
	}
	pr := &PluralRules{locale: locale, typ: typ, rules: plural.Cardinal}
	if typ == Ordinal {
		pr.rules = plural.Ordinal
	}
	return pr, nil
}

func (pr *PluralRules) Locale() language.Tag { return pr.locale }

// Select classifies a number. The operands come from the number's plain
// rendering, so "1.0" (MinimumFractionDigits=1) and "1" may differ.
// Infinities and NaN are always Other.
func (pr *PluralRules) Select(n value.Number) Category {
	if math.IsInf(n.Value, 0) || math.IsNaN(n.Value) {
		return Other
	}
	return pr.SelectString(n.String())
}

// SelectString classifies a decimal string such as "-12.50".
func (pr *PluralRules) SelectString(s string) Category {
	i, v, w, f, t := operands(s)
	return formNames[pr.rules.MatchPlural(pr.locale, i, v, w, f, t)]
}

const (
	// operandMod: MatchPlural допускает операнды по модулю 10^7, если они не влезают в int.
	operandMod = 10_000_000
	// operandBase поднимает усечённый операнд выше любого "i = x", не меняя остатков.
	operandBase = operandMod * 100
	// maxOperandDigits: столько цифр гарантированно влезает в int64.
	maxOperandDigits = 18
)

// operands splits a decimal into CLDR operands i, v, w, f, t.
func operands(s string) (i, v, w, f, t int) {
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	i = operandInt(intPart)
	v = len(frac)
	f = operandInt(frac)
	trimmed := strings.TrimRight(frac, "0")
	w = len(trimmed)
	t = operandInt(trimmed)
	return i, v, w, f, t
}

// operandInt parses a run of digits. Values that do not fit keep their last
// seven digits on top of operandBase.
func operandInt(s string) int {
	if s == "" {
		return 0
	}
	if len(s) <= maxOperandDigits {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	if len(s) > 7 {
		s = s[len(s)-7:]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return operandBase + n%operandMod
}
