package fixedn

import (
	"encoding/json"
	"math/big"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
)

const decimals = 100000000
const precision = 8

// Fixed8 represents a fixed-point number scaled by 10^8, the format GAS
// and similarly denominated quantities use on the wire.
type Fixed8 int64

// Fixed8FromInt64 converts an integral value to Fixed8.
func Fixed8FromInt64(val int64) Fixed8 {
	return Fixed8(val * decimals)
}

// Fixed8FromFloat converts a float64 to Fixed8.
func Fixed8FromFloat(val float64) Fixed8 {
	return Fixed8(int64(val * decimals))
}

// Fixed8FromString parses a decimal string into a Fixed8.
func Fixed8FromString(s string) (Fixed8, error) {
	bi, err := FromString(s, precision)
	if err != nil {
		return 0, err
	}
	return Fixed8(bi.Int64()), nil
}

// Satoshi returns the smallest representable positive Fixed8 value.
func Satoshi() Fixed8 {
	return Fixed8(1)
}

// IntegralValue returns the integer part of f.
func (f Fixed8) IntegralValue() int64 {
	return int64(f) / decimals
}

// FractionalValue returns the fractional part of f, scaled by 10^8.
func (f Fixed8) FractionalValue() int32 {
	i := int64(f)
	if i < 0 {
		i = -i
	}
	return int32(i % decimals)
}

// FloatValue returns f as a float64.
func (f Fixed8) FloatValue() float64 {
	return float64(f) / decimals
}

// String renders f as a decimal string with minimal fractional digits.
func (f Fixed8) String() string {
	return ToString(big.NewInt(int64(f)), precision)
}

// Add returns f+g.
func (f Fixed8) Add(g Fixed8) Fixed8 {
	return f + g
}

// Sub returns f-g.
func (f Fixed8) Sub(g Fixed8) Fixed8 {
	return f - g
}

// Div returns f divided by the integer i (truncating).
func (f Fixed8) Div(i int64) Fixed8 {
	return Fixed8(int64(f) / i)
}

// LessThan reports whether f < g.
func (f Fixed8) LessThan(g Fixed8) bool {
	return f < g
}

// GreaterThan reports whether f > g.
func (f Fixed8) GreaterThan(g Fixed8) bool {
	return f > g
}

// Equal reports whether f == g.
func (f Fixed8) Equal(g Fixed8) bool {
	return f == g
}

// CompareTo returns a negative, zero, or positive number depending on
// whether f is less than, equal to, or greater than g.
func (f Fixed8) CompareTo(g Fixed8) int {
	switch {
	case f < g:
		return -1
	case f > g:
		return 1
	default:
		return 0
	}
}

// Size returns the number of bytes Fixed8 occupies on the wire.
func (Fixed8) Size() int {
	return 8
}

// EncodeBinary implements the io.Serializable interface.
func (f Fixed8) EncodeBinary(w *io.BinWriter) {
	w.WriteU64LE(uint64(f))
}

// DecodeBinary implements the io.Serializable interface.
func (f *Fixed8) DecodeBinary(r *io.BinReader) {
	*f = Fixed8(r.ReadU64LE())
}

// MarshalJSON implements the json.Marshaler interface, always rendering as
// a quoted decimal string.
func (f Fixed8) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface, accepting both
// quoted strings and bare JSON numbers.
func (f *Fixed8) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n, err := Fixed8FromString(s)
		if err != nil {
			return err
		}
		*f = n
		return nil
	}
	var fl float64
	if err := json.Unmarshal(data, &fl); err != nil {
		return err
	}
	n, err := Fixed8FromString(strconv.FormatFloat(fl, 'g', -1, 64))
	if err != nil {
		return err
	}
	*f = n
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (f Fixed8) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (f *Fixed8) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	s = strings.Trim(s, `"`)
	n, err := Fixed8FromString(s)
	if err != nil {
		return err
	}
	*f = n
	return nil
}
