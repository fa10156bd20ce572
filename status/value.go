package status

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Value is a single cell or scalar of the status report. It holds either an
// integer or a string.
type Value struct {
	str   string
	num   int
	isInt bool
}

// Int returns an integer Value.
func Int(n int) Value {
	return Value{num: n, isInt: true}
}

// Str returns a string Value.
func Str(s string) Value {
	return Value{str: s}
}

// IsInt reports whether the value was coerced to an integer.
func (v Value) IsInt() bool {
	return v.isInt
}

// Int returns the integer value. ok is false for string values.
func (v Value) Int() (n int, ok bool) {
	return v.num, v.isInt
}

// String returns the value as the device printed it, minus padding and with
// IP-shaped values normalized.
func (v Value) String() string {
	if v.isInt {
		return strconv.Itoa(v.num)
	}
	return v.str
}

// Is reports whether the value equals s, ignoring case. Used for the
// device's On/Off flags.
func (v Value) Is(s string) bool {
	return !v.isInt && strings.EqualFold(v.str, s)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isInt {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

func (v Value) MarshalYAML() (any, error) {
	if v.isInt {
		return v.num, nil
	}
	return v.str, nil
}

// Coerce converts a raw table token:
//
//   - decimal digits only become an integer,
//   - four dot separated numeric groups become a canonical dotted quad
//     ("192.168.001.010)" -> "192.168.1.10"),
//   - anything else stays a trimmed string.
func Coerce(token string) Value {
	token = strings.TrimSpace(token)
	if v, ok := coerceDigits(token); ok {
		return v
	}
	if ip, ok := dottedQuad(token); ok {
		return Str(ip)
	}
	return Str(token)
}

// CoerceDigits only applies the integer rule. Single key scalars use it.
func CoerceDigits(token string) Value {
	token = strings.TrimSpace(token)
	if v, ok := coerceDigits(token); ok {
		return v
	}
	return Str(token)
}

func coerceDigits(token string) (Value, bool) {
	if !isDigits(token) {
		return Value{}, false
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		// overflow
		return Value{}, false
	}
	return Int(n), true
}

func dottedQuad(token string) (string, bool) {
	groups := strings.Split(token, ".")
	if len(groups) != 4 {
		return "", false
	}
	for i, g := range groups {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, g)
		if digits == "" {
			return "", false
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return "", false
		}
		groups[i] = strconv.Itoa(n)
	}
	return strings.Join(groups, "."), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
