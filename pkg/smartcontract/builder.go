package smartcontract

import (
	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/smartcontract/callflag"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/emit"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/opcode"
)

// Builder assembles an invocation script instruction by instruction,
// accumulating one or more contract calls into a single executable
// script.
type Builder struct {
	bw *io.BufBinWriter
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{bw: io.NewBufBinWriter()}
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return len(b.bw.Bytes())
}

// Reset discards everything written so far.
func (b *Builder) Reset() {
	b.bw.Reset()
}

// InvokeMethod appends a System.Contract.Call invocation of method on
// the contract identified by hash, passing args as its parameters,
// using the All call flag.
func (b *Builder) InvokeMethod(hash util.Uint160, method string, args ...interface{}) {
	b.InvokeMethodWithFlag(hash, method, callflag.All, args...)
}

// InvokeMethodWithFlag is like InvokeMethod but lets the caller pick
// the call flags the invocation runs with.
func (b *Builder) InvokeMethodWithFlag(hash util.Uint160, method string, flags callflag.CallFlag, args ...interface{}) {
	emit.Array(b.bw.BinWriter, args)
	emit.String(b.bw.BinWriter, method)
	emit.Int(b.bw.BinWriter, int64(flags))
	emit.Bytes(b.bw.BinWriter, hash.BytesBE())
	emit.Syscall(b.bw.BinWriter, "System.Contract.Call")
}

// InvokeWithAssert is like InvokeMethod, but additionally emits an
// ASSERT right after the call so that a falsy (or non-boolean) return
// value aborts the whole script, not just this one invocation.
func (b *Builder) InvokeWithAssert(hash util.Uint160, method string, args ...interface{}) {
	b.InvokeMethod(hash, method, args...)
	emit.Opcodes(b.bw.BinWriter, opcode.ASSERT)
}

// Script returns the assembled script, failing if any emit call along
// the way produced an error.
func (b *Builder) Script() ([]byte, error) {
	if b.bw.Err != nil {
		return nil, b.bw.Err
	}
	return b.bw.Bytes(), nil
}
