// Package io implements the little-endian binary codec used for every
// wire and storage format in this module: transactions, witnesses, stack
// items and NEP-6 accounts all (de)serialize through a BinReader/BinWriter
// pair rather than ad-hoc encoding/binary calls.
package io

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// Serializable defines a binary encoding contract used throughout the
// module. Unlike encoding.BinaryMarshaler, errors are not returned inline;
// they accumulate on the BinWriter/BinReader passed in, so a long chain of
// field writes/reads can be checked once at the end.
type Serializable interface {
	EncodeBinary(w *BinWriter)
	DecodeBinary(r *BinReader)
}

// BinaryWriter and BinaryReader are aliases for the concrete pointer types
// accepted by Serializable, kept around for callers that prefer to spell
// the parameter type abstractly.
type (
	BinaryWriter = *BinWriter
	BinaryReader = *BinReader
)

// MaxArraySize is the default cap on the element count accepted by ReadArray
// when the caller does not supply an explicit limit.
const MaxArraySize = 0x1000000

// MaxVarBytesSize is the default cap on the byte count accepted by
// ReadVarBytes when the caller does not supply an explicit limit.
const MaxVarBytesSize = 0x1000000

// BinWriter is a convenient wrapper around an io.Writer that tracks the
// first error it encounters; every subsequent method call becomes a no-op
// once Err is set, so callers can chain writes and check Err once.
type BinWriter struct {
	w   io.Writer
	Err error
}

// NewBinWriterFromIO creates a BinWriter writing to iow.
func NewBinWriterFromIO(iow io.Writer) *BinWriter {
	return &BinWriter{w: iow}
}

// Error returns the first error encountered, if any.
func (w *BinWriter) Error() error {
	return w.Err
}

// SetError sets the writer's error if it is not already set.
func (w *BinWriter) SetError(err error) {
	if w.Err == nil {
		w.Err = err
	}
}

func (w *BinWriter) writeLE(buf []byte) {
	if w.Err != nil {
		return
	}
	if _, err := w.w.Write(buf); err != nil {
		w.Err = err
	}
}

// WriteU64LE writes a uint64 in little-endian order.
func (w *BinWriter) WriteU64LE(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.writeLE(buf[:])
}

// WriteU32LE writes a uint32 in little-endian order.
func (w *BinWriter) WriteU32LE(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.writeLE(buf[:])
}

// WriteU16LE writes a uint16 in little-endian order.
func (w *BinWriter) WriteU16LE(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.writeLE(buf[:])
}

// WriteU16BE writes a uint16 in big-endian order.
func (w *BinWriter) WriteU16BE(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.writeLE(buf[:])
}

// WriteB writes a single byte.
func (w *BinWriter) WriteB(v byte) {
	w.writeLE([]byte{v})
}

// WriteBool writes a boolean as a single 0x00/0x01 byte.
func (w *BinWriter) WriteBool(v bool) {
	if v {
		w.WriteB(1)
	} else {
		w.WriteB(0)
	}
}

// WriteBytes writes b as-is, with no length prefix.
func (w *BinWriter) WriteBytes(b []byte) {
	w.writeLE(b)
}

// WriteVarUint writes val using Bitcoin-style variable-length encoding.
func (w *BinWriter) WriteVarUint(val uint64) {
	if w.Err != nil {
		return
	}
	switch {
	case val < 0xfd:
		w.WriteB(byte(val))
	case val <= 0xffff:
		w.WriteB(0xfd)
		w.WriteU16LE(uint16(val))
	case val <= 0xffffffff:
		w.WriteB(0xfe)
		w.WriteU32LE(uint32(val))
	default:
		w.WriteB(0xff)
		w.WriteU64LE(val)
	}
}

// WriteVarBytes writes b prefixed by its VarUint-encoded length.
func (w *BinWriter) WriteVarBytes(b []byte) {
	w.WriteVarUint(uint64(len(b)))
	w.WriteBytes(b)
}

// WriteString writes s as VarBytes of its UTF-8 encoding.
func (w *BinWriter) WriteString(s string) {
	w.WriteVarBytes([]byte(s))
}

// encoder is satisfied by any type that can write itself to a BinWriter;
// it is separate from Serializable so that write-only helper types (e.g.
// benchmark fixtures) do not need a matching DecodeBinary.
type encoder interface {
	EncodeBinary(w *BinWriter)
}

// WriteArray writes arr, a slice or array of elements implementing
// EncodeBinary (by value or by pointer), prefixed by its VarUint length.
func (w *BinWriter) WriteArray(arr interface{}) {
	switch val := reflect.ValueOf(arr); val.Kind() {
	case reflect.Slice, reflect.Array:
		w.WriteVarUint(uint64(val.Len()))
		for i := 0; i < val.Len(); i++ {
			el := val.Index(i)
			var enc encoder
			if el.Kind() != reflect.Ptr && el.CanAddr() {
				if s, ok := el.Addr().Interface().(encoder); ok {
					enc = s
				}
			}
			if enc == nil {
				s, ok := el.Interface().(encoder)
				if !ok {
					panic(fmt.Sprintf("io: type %s is not Serializable", el.Type()))
				}
				enc = s
			}
			if w.Err != nil {
				return
			}
			enc.EncodeBinary(w)
		}
	default:
		panic(fmt.Sprintf("io: %s is not a slice or array", val.Kind()))
	}
}

// WriteArray is the generic counterpart of (*BinWriter).WriteArray for
// callers that already have a concretely-typed slice; it avoids the
// reflection overhead of the method form.
func WriteArray[T encoder](w *BinWriter, arr []T) {
	w.WriteVarUint(uint64(len(arr)))
	for i := range arr {
		if w.Err != nil {
			return
		}
		arr[i].EncodeBinary(w)
	}
}

// BufBinWriter is a BinWriter writing into an in-memory buffer, with
// helpers to retrieve or reset its contents.
type BufBinWriter struct {
	*BinWriter
	buf *bytes.Buffer
}

// NewBufBinWriter creates a BufBinWriter ready for use.
func NewBufBinWriter() *BufBinWriter {
	buf := new(bytes.Buffer)
	return &BufBinWriter{BinWriter: NewBinWriterFromIO(buf), buf: buf}
}

// Bytes returns the accumulated bytes, or nil if an error occurred.
func (w *BufBinWriter) Bytes() []byte {
	if w.Err != nil {
		return nil
	}
	b := w.buf.Bytes()
	res := make([]byte, len(b))
	copy(res, b)
	return res
}

// Len returns the number of bytes currently buffered.
func (w *BufBinWriter) Len() int {
	return w.buf.Len()
}

// Grow grows the underlying buffer's capacity.
func (w *BufBinWriter) Grow(n int) {
	w.buf.Grow(n)
}

// Reset clears the buffer and any accumulated error.
func (w *BufBinWriter) Reset() {
	w.Err = nil
	w.buf.Reset()
}

// BinReader is a convenient wrapper around an io.Reader that tracks the
// first error it encounters, mirroring BinWriter's sticky-error behavior.
type BinReader struct {
	r   io.Reader
	Err error
}

// NewBinReaderFromIO creates a BinReader reading from ior.
func NewBinReaderFromIO(ior io.Reader) *BinReader {
	return &BinReader{r: ior}
}

// NewBinReaderFromBuf creates a BinReader reading from the given byte slice.
func NewBinReaderFromBuf(b []byte) *BinReader {
	return NewBinReaderFromIO(bytes.NewReader(b))
}

func (r *BinReader) readLE(buf []byte) {
	if r.Err != nil {
		return
	}
	if _, err := io.ReadFull(r.r, buf); err != nil {
		r.Err = err
	}
}

// ReadU64LE reads a little-endian uint64.
func (r *BinReader) ReadU64LE() uint64 {
	var buf [8]byte
	r.readLE(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// ReadU32LE reads a little-endian uint32.
func (r *BinReader) ReadU32LE() uint32 {
	var buf [4]byte
	r.readLE(buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

// ReadU16LE reads a little-endian uint16.
func (r *BinReader) ReadU16LE() uint16 {
	var buf [2]byte
	r.readLE(buf[:])
	return binary.LittleEndian.Uint16(buf[:])
}

// ReadU16BE reads a big-endian uint16.
func (r *BinReader) ReadU16BE() uint16 {
	var buf [2]byte
	r.readLE(buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

// ReadB reads a single byte.
func (r *BinReader) ReadB() byte {
	var buf [1]byte
	r.readLE(buf[:])
	return buf[0]
}

// ReadBool reads a single 0x00/0x01 byte as a boolean.
func (r *BinReader) ReadBool() bool {
	return r.ReadB() != 0
}

// ReadBytes reads exactly len(buf) bytes into buf.
func (r *BinReader) ReadBytes(buf []byte) {
	if len(buf) == 0 {
		return
	}
	r.readLE(buf)
}

// ReadVarUint reads a Bitcoin-style variable-length encoded uint64.
func (r *BinReader) ReadVarUint() uint64 {
	b := r.ReadB()
	switch b {
	case 0xfd:
		return uint64(r.ReadU16LE())
	case 0xfe:
		return uint64(r.ReadU32LE())
	case 0xff:
		return r.ReadU64LE()
	default:
		return uint64(b)
	}
}

// ReadVarBytes reads a VarUint-prefixed byte string. An optional maxSize
// argument overrides the default MaxVarBytesSize cap on the prefix value.
func (r *BinReader) ReadVarBytes(maxSize ...int) []byte {
	max := MaxVarBytesSize
	if len(maxSize) != 0 {
		max = maxSize[0]
	}
	n := r.ReadVarUint()
	if r.Err != nil {
		return []byte{}
	}
	if n > uint64(max) {
		r.Err = fmt.Errorf("io: byte array of size %d exceeds maximum of %d", n, max)
		return []byte{}
	}
	b := make([]byte, n)
	r.ReadBytes(b)
	if r.Err != nil {
		return []byte{}
	}
	return b
}

// ReadString reads a VarBytes-encoded UTF-8 string.
func (r *BinReader) ReadString() string {
	b := r.ReadVarBytes()
	return string(b)
}

// decoder is the read-side counterpart of encoder.
type decoder interface {
	DecodeBinary(r *BinReader)
}

var decoderType = reflect.TypeOf((*decoder)(nil)).Elem()

// ReadArray reads a VarUint-prefixed sequence of Serializable elements into
// t, a pointer to a slice. An optional maxSize argument overrides the
// default MaxArraySize cap on the element count.
func (r *BinReader) ReadArray(t interface{}, maxSize ...int) {
	max := MaxArraySize
	if len(maxSize) != 0 {
		max = maxSize[0]
	}

	val := reflect.ValueOf(t)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Slice {
		panic("io: ReadArray requires a pointer to a slice")
	}
	sliceVal := val.Elem()
	elemType := sliceVal.Type().Elem()
	isPtr := elemType.Kind() == reflect.Ptr

	var concrete reflect.Type
	if isPtr {
		concrete = elemType.Elem()
		if !elemType.Implements(decoderType) {
			panic(fmt.Sprintf("io: %s is not Serializable", elemType))
		}
	} else {
		concrete = elemType
		if !reflect.PointerTo(concrete).Implements(decoderType) {
			panic(fmt.Sprintf("io: %s is not Serializable", elemType))
		}
	}

	if r.Err != nil {
		return
	}

	l := r.ReadVarUint()
	if r.Err != nil {
		return
	}
	if l > uint64(max) {
		r.Err = fmt.Errorf("io: array of size %d exceeds maximum of %d", l, max)
		return
	}

	newSlice := reflect.MakeSlice(sliceVal.Type(), int(l), int(l))
	for i := 0; i < int(l); i++ {
		elem := newSlice.Index(i)
		if isPtr {
			newElem := reflect.New(concrete)
			newElem.Interface().(decoder).DecodeBinary(r)
			elem.Set(newElem)
		} else {
			elem.Addr().Interface().(decoder).DecodeBinary(r)
		}
		if r.Err != nil {
			break
		}
	}
	sliceVal.Set(newSlice)
}

// ReadArray is the generic counterpart of (*BinReader).ReadArray.
func ReadArray[T decoder](r *BinReader, maxSize ...int) []T {
	max := MaxArraySize
	if len(maxSize) != 0 {
		max = maxSize[0]
	}
	l := r.ReadVarUint()
	if r.Err != nil {
		return nil
	}
	if l > uint64(max) {
		r.Err = fmt.Errorf("io: array of size %d exceeds maximum of %d", l, max)
		return nil
	}
	arr := make([]T, l)
	for i := range arr {
		arr[i].DecodeBinary(r)
		if r.Err != nil {
			break
		}
	}
	return arr
}

// ErrDrained is returned when an attempt is made to read past previously
// exhausted input that had already set a sticky error.
var ErrDrained = errors.New("io: reader has no more data")
