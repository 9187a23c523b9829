// Package stackitem implements Neo VM's value model: a tagged union
// (Item) with binary and JSON codecs, used to describe invocation
// arguments and results exchanged with a node.
package stackitem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/encoding/bigint"
)

// Size limits enforced by the reference VM; items exceeding them cannot
// be round-tripped through a real node.
const (
	// MaxBigIntegerSizeBits bounds the magnitude of an Integer item.
	MaxBigIntegerSizeBits = 32 * 8
	// MaxByteArrayComparableSize bounds the size of a ByteString/Buffer
	// that may be used in an Equals comparison.
	MaxByteArrayComparableSize = 64
	// MaxComparableNumOfItems bounds the total number of nested items
	// visited while deep-comparing two Structs.
	MaxComparableNumOfItems = 2048
	// MaxAllowedInteger is the largest Integer value JSON encoding
	// tolerates (JSON numbers lose precision beyond this).
	MaxAllowedInteger = 2<<53 - 1
	// MaxSize is the maximum total serialized size of an item tree.
	MaxSize = 65535
)

// ErrInvalidValue is returned by the To* conversion helpers when an
// item's value cannot be interpreted as the requested Go type.
var ErrInvalidValue = errors.New("stackitem: invalid value")

// ErrTooBig is returned by Serialize when the encoded size of an item
// tree exceeds MaxSize.
var ErrTooBig = errors.New("stackitem: item is too big")

// Item is a single value on the Neo VM evaluation stack.
type Item interface {
	fmt.Stringer
	Value() interface{}
	Dup() Item
	Type() Type
	Equals(s Item) bool
}

// Null represents the VM's Any/null value.
type Null struct{}

// Value implements the Item interface.
func (i Null) Value() interface{} { return nil }

// Dup implements the Item interface.
func (i Null) Dup() Item { return i }

// Type implements the Item interface.
func (i Null) Type() Type { return AnyT }

// String implements the Item interface.
func (i Null) String() string { return "Any" }

// Equals implements the Item interface.
func (i Null) Equals(s Item) bool {
	_, ok := s.(Null)
	return ok
}

// BigInteger represents an arbitrary-precision Integer item.
type BigInteger struct {
	value *big.Int
}

// NewBigInteger creates a new Integer item, panicking if v's magnitude
// exceeds MaxBigIntegerSizeBits.
func NewBigInteger(v *big.Int) *BigInteger {
	if bs := bigint.ToBytes(v); len(bs)*8 > MaxBigIntegerSizeBits {
		panic("stackitem: integer too big")
	}
	return &BigInteger{value: v}
}

// Value implements the Item interface.
func (i *BigInteger) Value() interface{} { return i.value }

// Dup implements the Item interface.
func (i *BigInteger) Dup() Item { return &BigInteger{value: new(big.Int).Set(i.value)} }

// Type implements the Item interface.
func (i *BigInteger) Type() Type { return IntegerT }

// String implements the Item interface.
func (i *BigInteger) String() string { return "BigInteger" }

// Equals implements the Item interface.
func (i *BigInteger) Equals(s Item) bool {
	other, ok := s.(*BigInteger)
	if !ok {
		return false
	}
	return i.value.Cmp(other.value) == 0
}

// MarshalJSON implements the json.Marshaler interface, encoding the
// value as a bare JSON number.
func (i *BigInteger) MarshalJSON() ([]byte, error) {
	return []byte(i.value.String()), nil
}

// Bool represents the VM's Boolean item.
type Bool struct {
	value bool
}

// NewBool creates a new Boolean item.
func NewBool(b bool) *Bool { return &Bool{value: b} }

// Value implements the Item interface.
func (i *Bool) Value() interface{} { return i.value }

// Dup implements the Item interface.
func (i *Bool) Dup() Item { return &Bool{value: i.value} }

// Type implements the Item interface.
func (i *Bool) Type() Type { return BooleanT }

// String implements the Item interface.
func (i *Bool) String() string { return "Boolean" }

// Equals implements the Item interface.
func (i *Bool) Equals(s Item) bool {
	other, ok := s.(*Bool)
	if !ok {
		return false
	}
	return i.value == other.value
}

// MarshalJSON implements the json.Marshaler interface.
func (i *Bool) MarshalJSON() ([]byte, error) {
	if i.value {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

// ByteArray represents the VM's ByteString item, an immutable byte
// string.
type ByteArray struct {
	value []byte
}

// NewByteArray creates a new ByteString item.
func NewByteArray(b []byte) *ByteArray { return &ByteArray{value: b} }

// Value implements the Item interface.
func (i *ByteArray) Value() interface{} { return i.value }

// Dup implements the Item interface.
func (i *ByteArray) Dup() Item {
	b := make([]byte, len(i.value))
	copy(b, i.value)
	return &ByteArray{value: b}
}

// Type implements the Item interface.
func (i *ByteArray) Type() Type { return ByteArrayT }

// String implements the Item interface.
func (i *ByteArray) String() string { return "ByteString" }

// Equals implements the Item interface. It panics if either operand
// exceeds MaxByteArrayComparableSize, matching the reference VM's
// refusal to compare oversized buffers.
func (i *ByteArray) Equals(s Item) bool {
	other, ok := s.(*ByteArray)
	if !ok {
		return false
	}
	if len(i.value) > MaxByteArrayComparableSize || len(other.value) > MaxByteArrayComparableSize {
		panic("stackitem: byte strings too big to compare")
	}
	return bytes.Equal(i.value, other.value)
}

// MarshalJSON implements the json.Marshaler interface, encoding the
// value as a hex-quoted string.
func (i *ByteArray) MarshalJSON() ([]byte, error) {
	return []byte(`"` + hexEncode(i.value) + `"`), nil
}

// Buffer represents the VM's mutable Buffer item.
type Buffer struct {
	value []byte
}

// NewBuffer creates a new Buffer item.
func NewBuffer(b []byte) *Buffer { return &Buffer{value: b} }

// Value implements the Item interface.
func (i *Buffer) Value() interface{} { return i.value }

// Dup implements the Item interface.
func (i *Buffer) Dup() Item {
	b := make([]byte, len(i.value))
	copy(b, i.value)
	return &Buffer{value: b}
}

// Type implements the Item interface.
func (i *Buffer) Type() Type { return BufferT }

// String implements the Item interface.
func (i *Buffer) String() string { return "Buffer" }

// Equals implements the Item interface; Buffer is a reference type and
// only ever equal to itself.
func (i *Buffer) Equals(s Item) bool {
	other, ok := s.(*Buffer)
	return ok && i == other
}

// MarshalJSON implements the json.Marshaler interface.
func (i *Buffer) MarshalJSON() ([]byte, error) {
	return []byte(`"` + hexEncode(i.value) + `"`), nil
}

// Array represents the VM's Array item, a reference-typed ordered
// sequence of items.
type Array struct {
	value []Item
}

// NewArray creates a new Array item.
func NewArray(items []Item) *Array { return &Array{value: items} }

// Value implements the Item interface.
func (i *Array) Value() interface{} { return i.value }

// Append adds an item to the end of the array.
func (i *Array) Append(it Item) { i.value = append(i.value, it) }

// Len returns the number of elements.
func (i *Array) Len() int { return len(i.value) }

// Dup implements the Item interface. Array is a reference type, so Dup
// returns the same underlying slice wrapped in a new header; callers
// that need independent storage should use DeepCopy.
func (i *Array) Dup() Item { return &Array{value: i.value} }

// Type implements the Item interface.
func (i *Array) Type() Type { return ArrayT }

// String implements the Item interface.
func (i *Array) String() string { return "Array" }

// Equals implements the Item interface; Array is a reference type and
// only ever equal to itself.
func (i *Array) Equals(s Item) bool {
	other, ok := s.(*Array)
	return ok && i == other
}

// MarshalJSON implements the json.Marshaler interface.
func (i *Array) MarshalJSON() ([]byte, error) {
	return marshalItems(i.value)
}

// Struct represents the VM's Struct item, a value-typed ordered
// sequence of items compared and cloned structurally.
type Struct struct {
	value []Item
}

// NewStruct creates a new Struct item.
func NewStruct(items []Item) *Struct { return &Struct{value: items} }

// Value implements the Item interface.
func (i *Struct) Value() interface{} { return i.value }

// Len returns the number of elements.
func (i *Struct) Len() int { return len(i.value) }

// Dup implements the Item interface, producing a shallow copy of the
// element slice.
func (i *Struct) Dup() Item {
	arr := make([]Item, len(i.value))
	copy(arr, i.value)
	return &Struct{value: arr}
}

// Type implements the Item interface.
func (i *Struct) Type() Type { return StructT }

// String implements the Item interface.
func (i *Struct) String() string { return "Struct" }

// Equals implements the Item interface with a recursive structural
// comparison, panicking if the total number of items visited exceeds
// MaxComparableNumOfItems.
func (i *Struct) Equals(s Item) bool {
	other, ok := s.(*Struct)
	if !ok {
		return false
	}
	count := 0
	return i.equals(other, &count)
}

func (i *Struct) equals(other *Struct, count *int) bool {
	if len(i.value) != len(other.value) {
		return false
	}
	for k := range i.value {
		as, aok := i.value[k].(*Struct)
		bs, bok := other.value[k].(*Struct)
		if aok && bok {
			*count += 2
			if *count > MaxComparableNumOfItems {
				panic("stackitem: too many items to compare")
			}
			if !as.equals(bs, count) {
				return false
			}
			continue
		}
		*count += 2
		if *count > MaxComparableNumOfItems {
			panic("stackitem: too many items to compare")
		}
		if !i.value[k].Equals(other.value[k]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of i, recursively cloning nested Structs
// and sharing every other element by reference. It errors instead of
// panicking if more than limit nested Structs would need cloning.
func (i *Struct) Clone(limit int) (*Struct, error) {
	return i.clone(&limit)
}

func (i *Struct) clone(limit *int) (*Struct, error) {
	arr := make([]Item, len(i.value))
	for k, v := range i.value {
		if vs, ok := v.(*Struct); ok {
			*limit--
			if *limit < 0 {
				return nil, errors.New("stackitem: too many items to clone")
			}
			cloned, err := vs.clone(limit)
			if err != nil {
				return nil, err
			}
			arr[k] = cloned
			continue
		}
		arr[k] = v
	}
	return &Struct{value: arr}, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i *Struct) MarshalJSON() ([]byte, error) {
	return marshalItems(i.value)
}

// MapElement is a single key/value pair of a Map item.
type MapElement struct {
	Key   Item
	Value Item
}

// Map represents the VM's Map item, a reference-typed association of
// items to items.
type Map struct {
	value []MapElement
}

// NewMap creates a new, empty Map item.
func NewMap() *Map { return &Map{} }

// NewMapWithValue creates a Map item with the given backing elements.
func NewMapWithValue(elems []MapElement) *Map { return &Map{value: elems} }

// Value implements the Item interface.
func (i *Map) Value() interface{} { return i.value }

// Add inserts or updates the value for key.
func (i *Map) Add(key, value Item) {
	for k, e := range i.value {
		if e.Key.Equals(key) {
			i.value[k].Value = value
			return
		}
	}
	i.value = append(i.value, MapElement{Key: key, Value: value})
}

// Index returns the value for key, or nil if key is absent.
func (i *Map) Index(key Item) Item {
	for _, e := range i.value {
		if e.Key.Equals(key) {
			return e.Value
		}
	}
	return nil
}

// Len returns the number of key/value pairs.
func (i *Map) Len() int { return len(i.value) }

// Dup implements the Item interface. Map is a reference type, so Dup
// returns the same underlying slice wrapped in a new header.
func (i *Map) Dup() Item { return &Map{value: i.value} }

// Type implements the Item interface.
func (i *Map) Type() Type { return MapT }

// String implements the Item interface.
func (i *Map) String() string { return "Map" }

// Equals implements the Item interface; Map is a reference type and
// only ever equal to itself.
func (i *Map) Equals(s Item) bool {
	other, ok := s.(*Map)
	return ok && i == other
}

// Interop wraps an opaque host-side value (e.g. an iterator) that has
// no VM-native representation.
type Interop struct {
	value interface{}
}

// NewInterop creates a new InteropInterface item wrapping v.
func NewInterop(v interface{}) *Interop { return &Interop{value: v} }

// Value implements the Item interface.
func (i *Interop) Value() interface{} { return i.value }

// Dup implements the Item interface.
func (i *Interop) Dup() Item { return &Interop{value: i.value} }

// Type implements the Item interface.
func (i *Interop) Type() Type { return InteropT }

// String implements the Item interface.
func (i *Interop) String() string { return "Interop" }

// Equals implements the Item interface, comparing the wrapped value
// directly.
func (i *Interop) Equals(s Item) bool {
	other, ok := s.(*Interop)
	if !ok {
		return false
	}
	return i.value == other.value
}

// MarshalJSON implements the json.Marshaler interface, marshaling the
// wrapped value as-is.
func (i *Interop) MarshalJSON() ([]byte, error) {
	return marshalAny(i.value)
}

// Pointer represents the VM's CALLA target, a position in a script.
type Pointer struct {
	pos    int
	script []byte
}

// NewPointer creates a new Pointer item.
func NewPointer(pos int, script []byte) *Pointer {
	return &Pointer{pos: pos, script: script}
}

// Value implements the Item interface, returning the position.
func (i *Pointer) Value() interface{} { return i.pos }

// Position returns the pointer's offset into its script.
func (i *Pointer) Position() int { return i.pos }

// Dup implements the Item interface.
func (i *Pointer) Dup() Item { return &Pointer{pos: i.pos, script: i.script} }

// Type implements the Item interface.
func (i *Pointer) Type() Type { return PointerT }

// String implements the Item interface.
func (i *Pointer) String() string { return "Pointer" }

// Equals implements the Item interface.
func (i *Pointer) Equals(s Item) bool {
	other, ok := s.(*Pointer)
	if !ok {
		return false
	}
	return i.pos == other.pos && bytes.Equal(i.script, other.script)
}

// Make converts a Go value into the matching Item, panicking if v's
// type has no natural conversion.
func Make(v interface{}) Item {
	switch val := v.(type) {
	case int:
		return NewBigInteger(big.NewInt(int64(val)))
	case int8:
		return NewBigInteger(big.NewInt(int64(val)))
	case int16:
		return NewBigInteger(big.NewInt(int64(val)))
	case int32:
		return NewBigInteger(big.NewInt(int64(val)))
	case int64:
		return NewBigInteger(big.NewInt(val))
	case uint8:
		return NewBigInteger(new(big.Int).SetUint64(uint64(val)))
	case uint16:
		return NewBigInteger(new(big.Int).SetUint64(uint64(val)))
	case uint32:
		return NewBigInteger(new(big.Int).SetUint64(uint64(val)))
	case uint64:
		return NewBigInteger(new(big.Int).SetUint64(val))
	case *big.Int:
		return NewBigInteger(val)
	case []byte:
		return NewByteArray(val)
	case string:
		return NewByteArray([]byte(val))
	case bool:
		return NewBool(val)
	case Item:
		return val
	case []Item:
		return NewArray(val)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice {
			items := make([]Item, rv.Len())
			for k := 0; k < rv.Len(); k++ {
				items[k] = Make(rv.Index(k).Interface())
			}
			return NewArray(items)
		}
		panic(fmt.Sprintf("stackitem: can't convert %T to an Item", v))
	}
}

// DeepCopy returns a copy of item with every composite value
// recursively duplicated; cyclic Array/Struct/Map references are
// preserved rather than causing infinite recursion.
func DeepCopy(item Item) Item {
	return deepCopy(item, make(map[Item]Item))
}

func deepCopy(item Item, seen map[Item]Item) Item {
	if item == nil {
		return nil
	}
	if cp, ok := seen[item]; ok {
		return cp
	}
	switch t := item.(type) {
	case Null:
		return Null{}
	case *Array:
		cp := &Array{value: make([]Item, len(t.value))}
		seen[item] = cp
		for k, v := range t.value {
			cp.value[k] = deepCopy(v, seen)
		}
		return cp
	case *Struct:
		cp := &Struct{value: make([]Item, len(t.value))}
		seen[item] = cp
		for k, v := range t.value {
			cp.value[k] = deepCopy(v, seen)
		}
		return cp
	case *Map:
		cp := &Map{value: make([]MapElement, len(t.value))}
		seen[item] = cp
		for k, e := range t.value {
			cp.value[k] = MapElement{Key: deepCopy(e.Key, seen), Value: deepCopy(e.Value, seen)}
		}
		return cp
	default:
		return item.Dup()
	}
}

func marshalItems(items []Item) ([]byte, error) {
	buf := bytes.NewBufferString("[")
	for k, it := range items {
		if k != 0 {
			buf.WriteByte(',')
		}
		b, err := marshalAny(it)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

type jsonMarshaler interface {
	MarshalJSON() ([]byte, error)
}

func marshalAny(v interface{}) ([]byte, error) {
	if m, ok := v.(jsonMarshaler); ok {
		return m.MarshalJSON()
	}
	return jsonMarshalFallback(v)
}

func jsonMarshalFallback(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func hexEncode(b []byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hextable[c>>4]
		out[i*2+1] = hextable[c&0x0f]
	}
	return string(out)
}
