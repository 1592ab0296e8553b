package bundle

import (
	"fluentkit/internal/intl"
	"fluentkit/internal/memo"
	"fluentkit/internal/value"
)

// AddBuiltins registers NUMBER. It fails only when the name is taken.
func (b *Bundle) AddBuiltins() error {
	return b.AddFunction("NUMBER", Number)
}

// Number implements NUMBER($n, minimumFractionDigits: 2, style: "percent"...).
// Grouping is on unless useGrouping: "false" is passed.
func Number(positional []value.Value, named value.Args) value.Value {
	if len(positional) == 0 {
		return value.Error{Node: "NUMBER()"}
	}
	var n value.Number
	switch v := positional[0].(type) {
	case value.Number:
		n = v
	case value.String:
		parsed, err := value.ParseNumber(string(v))
		if err != nil {
			return value.Error{Node: "NUMBER()"}
		}
		n = parsed
	default:
		return value.Error{Node: "NUMBER()"}
	}
	n.Options.UseGrouping = true
	n.Options.Merge(named)
	return n
}

// IntlFormatter formats numbers with the locale rules of intl.NumberFormatter,
// cached per locale in the bundle memoizer.
func IntlFormatter(v value.Value, lm *memo.LangMemoizer) (string, bool) {
	n, ok := v.(value.Number)
	if !ok {
		return "", false
	}
	nf, err := memo.GetLang[*intl.NumberFormatter](lm, nil)
	if err != nil {
		return "", false
	}
	return nf.Format(n), true
}
