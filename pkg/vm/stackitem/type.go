package stackitem

import "fmt"

// Type represents a type tag for a stack item, matching Neo VM's own
// type byte values.
type Type byte

// Type values mirror the Neo VM's type tags exactly.
const (
	AnyT       Type = 0x00
	PointerT   Type = 0x10
	BooleanT   Type = 0x20
	IntegerT   Type = 0x21
	ByteArrayT Type = 0x28
	BufferT    Type = 0x30
	ArrayT     Type = 0x40
	StructT    Type = 0x41
	MapT       Type = 0x48
	InteropT   Type = 0x60
)

var typeStrings = map[Type]string{
	AnyT:       "Any",
	PointerT:   "Pointer",
	BooleanT:   "Boolean",
	IntegerT:   "Integer",
	ByteArrayT: "ByteString",
	BufferT:    "Buffer",
	ArrayT:     "Array",
	StructT:    "Struct",
	MapT:       "Map",
	InteropT:   "InteropInterface",
}

// String implements the Stringer interface.
func (t Type) String() string {
	if s, ok := typeStrings[t]; ok {
		return s
	}
	return "INVALID"
}

// FromString returns the Type matching the given type tag string.
func FromString(s string) (Type, error) {
	for t, str := range typeStrings {
		if str == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("stackitem: unknown type %q", s)
}
