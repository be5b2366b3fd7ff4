package submission

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Value is a single loosely typed submission field
type Value struct {
	present bool
	text    string
	num     float64
	truthy  bool
}

// Missing is the zero Value: a field that was not sent at all
var Missing = Value{}

// NumberValue returns a present numeric Value
func NumberValue(f float64) Value {
	return Value{
		present: true,
		text:    FormatNumber(f),
		num:     f,
		truthy:  f != 0 && !math.IsNaN(f),
	}
}

// TextValue returns a present string Value
func TextValue(s string) Value {
	return Value{
		present: true,
		text:    s,
		num:     coerceString(s),
		truthy:  s != "",
	}
}

// fromResult converts a gjson lookup into a Value
func fromResult(r gjson.Result) Value {
	if !r.Exists() {
		return Missing
	}

	switch r.Type {
	case gjson.Null:
		return Value{present: true, text: "null"}
	case gjson.False:
		return Value{present: true, text: "false"}
	case gjson.True:
		return Value{present: true, text: "true", num: 1, truthy: true}
	case gjson.Number:
		return NumberValue(r.Num)
	case gjson.String:
		return TextValue(r.Str)
	default:
		// arrays render as their joined elements and coerce through that text,
		// so [95] behaves like 95; objects never coerce to a number
		text := renderText(r)
		num := math.NaN()
		if r.IsArray() {
			num = coerceString(text)
		}
		return Value{present: true, text: text, num: num, truthy: true}
	}
}

// renderText renders a structured value the way string interpolation does:
// array elements joined with commas, null elements empty, objects opaque.
func renderText(r gjson.Result) string {
	switch {
	case r.IsArray():
		elems := r.Array()
		parts := make([]string, len(elems))
		for i, e := range elems {
			if e.Type != gjson.Null {
				parts[i] = renderText(e)
			}
		}
		return strings.Join(parts, ",")
	case r.IsObject():
		return "[object Object]"
	case r.Type == gjson.Number:
		return FormatNumber(r.Num)
	case r.Type == gjson.String:
		return r.Str
	default:
		return r.String()
	}
}

// Present reports whether the field was sent, including an explicit null
func (v Value) Present() bool {
	return v.present
}

// Truthy reports whether the value counts as set: not absent, null, false, 0, NaN or ""
func (v Value) Truthy() bool {
	return v.truthy
}

// Float returns the numeric coercion of the value. Non-numeric strings,
// objects and arrays of more than one element yield NaN, which compares false
// against every threshold.
func (v Value) Float() float64 {
	return v.num
}

// String returns the value as it should appear in a message
func (v Value) String() string {
	return v.text
}

// FormatNumber renders a float the shortest way that round-trips, so 95
// prints as "95". Magnitudes from 1e21 up and below 1e-6 use exponent
// notation ("1e+21", "1e-7"); NaN and infinities print as NaN and Infinity.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func coerceString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
