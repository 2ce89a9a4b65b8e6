package vm

import (
	"math"
	"strconv"
	"strings"
)

// ecmaWhitespace is the ECMAScript WhiteSpace and LineTerminator set used by
// string-to-number trimming.
const ecmaWhitespace = " \t\n\r\v\f\u00A0\u1680\u2000\u2001\u2002\u2003\u2004\u2005\u2006\u2007\u2008\u2009\u200A\u2028\u2029\u202F\u205F\u3000\uFEFF"

// ToNumber coerces a value to a number. Objects cannot be coerced at this
// layer (ToPrimitive belongs to the full conversion collaborator), so an
// object input produces a thrown TypeError completion that callers must
// propagate.
func ToNumber(v Value) (Value, error) {
	switch v.Type() {
	case TypeNumber:
		return v, nil
	case TypeUndefined:
		return NumberValue(math.NaN()), nil
	case TypeNull:
		return NumberValue(0), nil
	case TypeBoolean:
		if v.AsBoolean() {
			return NumberValue(1), nil
		}
		return NumberValue(0), nil
	case TypeString:
		return NumberValue(stringToNumber(v.AsString())), nil
	case TypeObject:
		return Undefined, Throw(StringValue("TypeError: cannot convert object to number"))
	default:
		panic("vm: ToNumber on internal value")
	}
}

// stringToNumber implements the ToNumber string grammar subset the engine
// needs: whitespace trimming, optional sign, Infinity, hex literals, and
// decimal literals. Anything else is NaN.
func stringToNumber(s string) float64 {
	s = strings.Trim(s, ecmaWhitespace)
	if s == "" {
		return 0
	}

	sign := 1.0
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	if s == "Infinity" {
		return sign * math.Inf(1)
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		// Hex literals admit no sign in the ES grammar.
		if sign < 0 {
			return math.NaN()
		}
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return sign * f
}

// ToString coerces a value to a string. Object inputs render through their
// class tag; full ToPrimitive dispatch is outside this core.
func ToString(v Value) string {
	switch v.Type() {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		if v.AsBoolean() {
			return "true"
		}
		return "false"
	case TypeNumber:
		return FormatNumber(v.AsNumber())
	case TypeString:
		return v.AsString()
	case TypeObject:
		return "[object " + v.AsObject().Class().String() + "]"
	default:
		panic("vm: ToString on internal value")
	}
}

// ToBoolean coerces a value to a boolean.
func ToBoolean(v Value) bool {
	switch v.Type() {
	case TypeUndefined, TypeNull:
		return false
	case TypeBoolean:
		return v.AsBoolean()
	case TypeNumber:
		f := v.AsNumber()
		return f != 0 && !math.IsNaN(f)
	case TypeString:
		return v.AsString() != ""
	case TypeObject:
		return true
	default:
		panic("vm: ToBoolean on internal value")
	}
}

// FormatNumber renders a number the way ECMAScript ToString does for the
// common cases: integral values without a decimal point, NaN/Infinity by
// name, and exponents without zero padding.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return cleanExponent(strconv.FormatFloat(f, 'g', -1, 64))
}

// cleanExponent strips leading zeros from an exponent so "1e-07" reads
// "1e-7", matching JS number formatting.
func cleanExponent(s string) string {
	i := strings.IndexAny(s, "eE")
	if i < 0 || i+1 >= len(s) {
		return s
	}
	exp := s[i+1:]
	signText := ""
	if exp[0] == '+' || exp[0] == '-' {
		signText = string(exp[0])
		exp = exp[1:]
	}
	trimmed := strings.TrimLeft(exp, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return s[:i+1] + signText + trimmed
}
