package stackitem

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
)

// EncodeBinary writes item's binary representation (the same wire
// format a node uses for stack item results) to w.
func EncodeBinary(item Item, w *io.BinWriter) {
	encodeBinary(item, w, make(map[Item]bool))
}

func encodeBinary(item Item, w *io.BinWriter, seen map[Item]bool) {
	if w.Err != nil {
		return
	}
	switch t := item.(type) {
	case Null:
		w.WriteB(byte(AnyT))
	case *Bool:
		w.WriteB(byte(BooleanT))
		w.WriteBool(t.value)
	case *BigInteger:
		w.WriteB(byte(IntegerT))
		bs := bigint.ToBytes(t.value)
		w.WriteVarBytes(bs)
	case *ByteArray:
		w.WriteB(byte(ByteArrayT))
		w.WriteVarBytes(t.value)
	case *Buffer:
		w.WriteB(byte(BufferT))
		w.WriteVarBytes(t.value)
	case *Array:
		encodeBinaryComposite(w, ArrayT, t.value, seen, item)
	case *Struct:
		encodeBinaryComposite(w, StructT, t.value, seen, item)
	case *Map:
		if seen[item] {
			w.Err = errors.New("stackitem: cycle detected")
			return
		}
		seen[item] = true
		w.WriteB(byte(MapT))
		w.WriteVarUint(uint64(len(t.value)))
		for _, e := range t.value {
			encodeBinary(e.Key, w, seen)
			encodeBinary(e.Value, w, seen)
		}
	default:
		w.Err = fmt.Errorf("stackitem: %s is not serializable", item.Type())
	}
}

func encodeBinaryComposite(w *io.BinWriter, typ Type, items []Item, seen map[Item]bool, self Item) {
	if seen[self] {
		w.Err = errors.New("stackitem: cycle detected")
		return
	}
	seen[self] = true
	w.WriteB(byte(typ))
	w.WriteVarUint(uint64(len(items)))
	for _, it := range items {
		encodeBinary(it, w, seen)
	}
}

// Serialize returns item's binary representation, failing with
// ErrTooBig if the result would exceed MaxSize or if item contains a
// value (e.g. a Pointer or Interop) that cannot be serialized.
func Serialize(item Item) ([]byte, error) {
	w := io.NewBufBinWriter()
	EncodeBinary(item, w.BinWriter)
	if w.Err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTooBig, w.Err)
	}
	b := w.Bytes()
	if len(b) > MaxSize {
		return nil, ErrTooBig
	}
	return b, nil
}

// DecodeBinary reads an item previously written by EncodeBinary from r.
func DecodeBinary(r *io.BinReader) Item {
	return decodeBinary(r)
}

func decodeBinary(r *io.BinReader) Item {
	if r.Err != nil {
		return nil
	}
	t := Type(r.ReadB())
	switch t {
	case AnyT:
		return Null{}
	case BooleanT:
		return NewBool(r.ReadBool())
	case IntegerT:
		bs := r.ReadVarBytes(bigint.MaxBytesLen)
		if r.Err != nil {
			return nil
		}
		return NewBigInteger(bigint.FromBytes(bs))
	case ByteArrayT:
		return NewByteArray(r.ReadVarBytes(MaxSize))
	case BufferT:
		return NewBuffer(r.ReadVarBytes(MaxSize))
	case ArrayT, StructT:
		n := r.ReadVarUint()
		items := make([]Item, n)
		for i := range items {
			items[i] = decodeBinary(r)
		}
		if r.Err != nil {
			return nil
		}
		if t == StructT {
			return NewStruct(items)
		}
		return NewArray(items)
	case MapT:
		n := r.ReadVarUint()
		elems := make([]MapElement, n)
		for i := range elems {
			elems[i] = MapElement{Key: decodeBinary(r), Value: decodeBinary(r)}
		}
		if r.Err != nil {
			return nil
		}
		return NewMapWithValue(elems)
	default:
		r.Err = fmt.Errorf("stackitem: unknown type byte 0x%x", byte(t))
		return nil
	}
}

// Deserialize parses data as a binary-encoded item tree.
func Deserialize(data []byte) (Item, error) {
	r := io.NewBinReaderFromBuf(data)
	item := DecodeBinary(r)
	if r.Err != nil {
		return nil, r.Err
	}
	return item, nil
}
