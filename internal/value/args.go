package value

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

type arg struct {
	name  string
	value Value
}

// Args: упорядоченный по имени набор аргументов. Нулевое значение готово к работе.
type Args struct {
	list []arg
}

// NewArgs builds Args from alternating name/value pairs; values go through From.
func NewArgs(pairs ...any) Args {
	var a Args
	for i := 0; i+1 < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			continue
		}
		a.Set(name, From(pairs[i+1]))
	}
	return a
}

func (a *Args) search(name string) (int, bool) {
	return slices.BinarySearchFunc(a.list, name, func(e arg, n string) int {
		return strings.Compare(e.name, n)
	})
}

// Set adds or replaces the argument.
func (a *Args) Set(name string, v Value) {
	i, found := a.search(name)
	if found {
		a.list[i].value = v
		return
	}
	a.list = slices.Insert(a.list, i, arg{name: name, value: v})
}

// Get returns the argument value.
func (a Args) Get(name string) (Value, bool) {
	i, found := a.search(name)
	if !found {
		return nil, false
	}
	return a.list[i].value, true
}

func (a Args) Len() int { return len(a.list) }

// All iterates arguments in name order.
func (a Args) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, e := range a.list {
			if !yield(e.name, e.value) {
				return
			}
		}
	}
}

// From converts a Go value to a Value. Integers and floats become numbers,
// strings and Stringers become strings, nil becomes None.
func From(v any) Value {
	switch v := v.(type) {
	case nil:
		return None{}
	case Value:
		return v
	case Type:
		return Custom{Value: v}
	case string:
		return String(v)
	case int:
		return NewNumber(float64(v))
	case int8:
		return NewNumber(float64(v))
	case int16:
		return NewNumber(float64(v))
	case int32:
		return NewNumber(float64(v))
	case int64:
		return NewNumber(float64(v))
	case uint:
		return NewNumber(float64(v))
	case uint8:
		return NewNumber(float64(v))
	case uint16:
		return NewNumber(float64(v))
	case uint32:
		return NewNumber(float64(v))
	case uint64:
		return NewNumber(float64(v))
	case float32:
		return NewNumber(float64(v))
	case float64:
		return NewNumber(v)
	case bool:
		if v {
			return String("true")
		}
		return String("false")
	case fmt.Stringer:
		return String(v.String())
	}
	return String(fmt.Sprint(v))
}
