// Package emit assembles Neo VM bytecode: opcode-level helpers for
// pushing values and building System.Contract.Call invocation scripts,
// the same instruction encoding a node's interpreter consumes.
package emit

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/opcode"
)

// Opcodes writes a sequence of bare opcodes with no operands.
func Opcodes(w *io.BinWriter, ops ...opcode.Opcode) {
	for _, op := range ops {
		w.WriteB(byte(op))
	}
}

// Instruction writes a single opcode followed by operand, raw.
func Instruction(w *io.BinWriter, op opcode.Opcode, operand []byte) {
	w.WriteB(byte(op))
	w.WriteBytes(operand)
}

// Bool pushes a boolean literal.
func Bool(w *io.BinWriter, b bool) {
	if b {
		Opcodes(w, opcode.PUSHT)
	} else {
		Opcodes(w, opcode.PUSHF)
	}
}

// Int pushes the smallest integer literal opcode that can represent n.
func Int(w *io.BinWriter, n int64) {
	if n == -1 {
		Opcodes(w, opcode.PUSHM1)
		return
	}
	if n >= 0 && n <= 16 {
		Opcodes(w, opcode.Opcode(byte(opcode.PUSH0)+byte(n)))
		return
	}
	BigInt(w, big.NewInt(n))
}

// BigInt pushes an arbitrary-precision integer literal, choosing the
// smallest PUSHINTn opcode that fits n.
func BigInt(w *io.BinWriter, n *big.Int) {
	if n.IsInt64() && n.Int64() >= -1 && n.Int64() <= 16 {
		Int(w, n.Int64())
		return
	}
	b := bigint.ToBytes(n)
	var op opcode.Opcode
	var size int
	switch {
	case len(b) <= 1:
		op, size = opcode.PUSHINT8, 1
	case len(b) <= 2:
		op, size = opcode.PUSHINT16, 2
	case len(b) <= 4:
		op, size = opcode.PUSHINT32, 4
	case len(b) <= 8:
		op, size = opcode.PUSHINT64, 8
	case len(b) <= 16:
		op, size = opcode.PUSHINT128, 16
	case len(b) <= 32:
		op, size = opcode.PUSHINT256, 32
	default:
		w.Err = fmt.Errorf("emit: integer %s is too big to push", n)
		return
	}
	padded := make([]byte, size)
	copy(padded, b)
	if n.Sign() < 0 {
		for i := len(b); i < size; i++ {
			padded[i] = 0xFF
		}
	}
	Instruction(w, op, padded)
}

// Bytes pushes a byte string literal, picking PUSHDATA1/2/4 by length.
func Bytes(w *io.BinWriter, b []byte) {
	var buf []byte
	switch {
	case len(b) <= math.MaxUint8:
		buf = append(buf, byte(len(b)))
		Instruction(w, opcode.PUSHDATA1, append(buf, b...))
	case len(b) <= math.MaxUint16:
		buf = make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(len(b)))
		Instruction(w, opcode.PUSHDATA2, append(buf, b...))
	default:
		buf = make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(len(b)))
		Instruction(w, opcode.PUSHDATA4, append(buf, b...))
	}
}

// String pushes a UTF-8 string literal.
func String(w *io.BinWriter, s string) {
	Bytes(w, []byte(s))
}

// Array pushes each element of arr (in reverse order, so that popping
// them in script order reconstructs the original sequence) followed by
// a NEWARRAY-equivalent PACK, or a bare NEWARRAY0 if arr is empty.
// Supported element types mirror smartcontract.Parameter's value set:
// nil, bool, *big.Int and the sized integers, []byte, string,
// util.Uint160/256 and nested []interface{}/[]Parameter-shaped slices.
func Array(w *io.BinWriter, arr interface{}) {
	if arr == nil {
		Opcodes(w, opcode.NEWARRAY0)
		return
	}
	rv := reflect.ValueOf(arr)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		pushParam(w, arr)
		return
	}
	n := rv.Len()
	if n == 0 {
		Opcodes(w, opcode.NEWARRAY0)
		return
	}
	for i := n - 1; i >= 0; i-- {
		pushParam(w, rv.Index(i).Interface())
	}
	Int(w, int64(n))
	Opcodes(w, opcode.PACK)
}

func pushParam(w *io.BinWriter, v interface{}) {
	if w.Err != nil {
		return
	}
	switch t := v.(type) {
	case nil:
		Opcodes(w, opcode.PUSHNULL)
	case bool:
		Bool(w, t)
	case []byte:
		Bytes(w, t)
	case string:
		String(w, t)
	case *big.Int:
		BigInt(w, t)
	case int:
		Int(w, int64(t))
	case int8:
		Int(w, int64(t))
	case int16:
		Int(w, int64(t))
	case int32:
		Int(w, int64(t))
	case int64:
		Int(w, t)
	case uint:
		Int(w, int64(t))
	case uint8:
		Int(w, int64(t))
	case uint16:
		Int(w, int64(t))
	case uint32:
		Int(w, int64(t))
	case uint64:
		BigInt(w, new(big.Int).SetUint64(t))
	default:
		if hb, ok := v.(interface{ BytesBE() []byte }); ok {
			Bytes(w, hb.BytesBE())
			return
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			Array(w, v)
			return
		}
		w.Err = fmt.Errorf("emit: can't push a value of type %T", v)
	}
}

// interopID derives the 4-byte syscall identifier a node uses for the
// named interop method (the first 4 bytes of SHA-256(name), exactly as
// a node's own syscall table is built).
func interopID(api string) uint32 {
	h := sha256.Sum256([]byte(api))
	return binary.LittleEndian.Uint32(h[:4])
}

// Syscall writes a SYSCALL instruction invoking the named interop
// method.
func Syscall(w *io.BinWriter, api string) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, interopID(api))
	Instruction(w, opcode.SYSCALL, buf)
}

// Call writes a 2-byte-offset jump/call instruction.
func Call(w *io.BinWriter, op opcode.Opcode, offset int16) {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, uint16(offset))
	Instruction(w, op, buf)
}
