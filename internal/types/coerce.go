package types

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/tobsdb/reldb/internal/relerr"
)

// Coerce converts a loose Go value into the Value variant of domain d.
// Integers of any width are accepted for integer domains when they fit,
// float64 is accepted for integer domains when it is integral (JSON
// numbers), and single-rune strings are accepted for Character.
func Coerce(d Domain, input any) (Value, error) {
	if v, ok := input.(Value); ok {
		if v.Domain() == d {
			return v, nil
		}
		// a tagged value of another domain is widened like a plain number
		input = plain(v)
	}

	switch d {
	case DomainLong, DomainInteger, DomainShort, DomainByte:
		return coerceInt(d, input)
	case DomainDouble, DomainFloat:
		return coerceReal(d, input)
	case DomainCharacter:
		return coerceChar(input)
	case DomainString:
		if s, ok := input.(string); ok {
			return String(s), nil
		}
	default:
		return nil, relerr.Newf(relerr.KindTypeMismatch, "unsupported domain %s", d)
	}
	return nil, invalidValueError(d, input)
}

func plain(v Value) any {
	switch v := v.(type) {
	case Long:
		return int64(v)
	case Integer:
		return int64(v)
	case Short:
		return int64(v)
	case Byte:
		return int64(v)
	case Double:
		return float64(v)
	case Float:
		return float64(v)
	case Char:
		return rune(v)
	case String:
		return string(v)
	}
	return v
}

func toInt64(input any) (int64, bool) {
	switch n := input.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func coerceInt(d Domain, input any) (Value, error) {
	n, ok := toInt64(input)
	if !ok {
		return nil, invalidValueError(d, input)
	}

	switch d {
	case DomainLong:
		return Long(n), nil
	case DomainInteger:
		if n >= math.MinInt32 && n <= math.MaxInt32 {
			return Integer(n), nil
		}
	case DomainShort:
		if n >= math.MinInt16 && n <= math.MaxInt16 {
			return Short(n), nil
		}
	case DomainByte:
		if n >= math.MinInt8 && n <= math.MaxInt8 {
			return Byte(n), nil
		}
	}
	return nil, relerr.Newf(relerr.KindTypeMismatch, "value %v overflows domain %s", input, d)
}

func coerceReal(d Domain, input any) (Value, error) {
	var f float64
	switch n := input.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	default:
		i, ok := toInt64(input)
		if !ok {
			return nil, invalidValueError(d, input)
		}
		f = float64(i)
	}

	if d == DomainFloat {
		if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
			return nil, relerr.Newf(relerr.KindTypeMismatch, "value %v overflows domain %s", input, d)
		}
		return Float(f), nil
	}
	return Double(f), nil
}

func coerceChar(input any) (Value, error) {
	switch c := input.(type) {
	case rune:
		return Char(c), nil
	case byte:
		return Char(c), nil
	case string:
		if utf8.RuneCountInString(c) == 1 {
			r, _ := utf8.DecodeRuneInString(c)
			return Char(r), nil
		}
	}
	return nil, invalidValueError(DomainCharacter, input)
}

func invalidValueError(d Domain, input any) error {
	return relerr.Newf(relerr.KindTypeMismatch, "invalid value for domain %s: %v (%T)", d, input, input)
}

// MustCoerce is Coerce for literals in tests and examples.
func MustCoerce(d Domain, input any) Value {
	v, err := Coerce(d, input)
	if err != nil {
		panic(fmt.Sprintf("types.MustCoerce: %v", err))
	}
	return v
}
