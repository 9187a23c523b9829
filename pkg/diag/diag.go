// Package diag implements the SDK's optional "last error" diagnostic
// surface: a free-form message and call-site location attached
// alongside a returned error, for host applications that want more
// context than the error's own message carries. It is never the
// primary error channel — every fallible call still returns its own
// well-typed error regardless of whether a diagnostic was recorded.
package diag

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Entry is one recorded diagnostic: a free-form message, the call site
// that recorded it, and the error it augments (if any).
type Entry struct {
	Message string
	File    string
	Line    int
	Err     error
}

func (e *Entry) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Line, e.Message, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// registry holds the last diagnostic entry recorded per key. Go has no
// true thread-local storage, so the caller supplies the key that
// stands in for "current execution context" — normally a
// context.Context passed down the same call chain as the RPC
// invocation that might fail.
type registry struct {
	mu      sync.Mutex
	entries map[interface{}]*Entry
}

var global = &registry{entries: make(map[interface{}]*Entry)}

type ctxKey struct{}

// WithKey returns a context carrying a fresh diagnostic key, so that
// Record/Last calls threaded through it observe the same slot.
func WithKey(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, new(byte))
}

func keyOf(ctx context.Context) interface{} {
	if k := ctx.Value(ctxKey{}); k != nil {
		return k
	}
	return ctx
}

// Record attaches message and err (may be nil) to ctx's diagnostic
// slot, tagging it with the caller's file and line. When logger is
// non-nil the entry is also emitted at debug level; logging is always
// optional and never required for correct operation.
func Record(ctx context.Context, logger *zap.Logger, message string, err error) {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "unknown", 0
	}
	entry := &Entry{Message: message, File: file, Line: line, Err: err}

	global.mu.Lock()
	global.entries[keyOf(ctx)] = entry
	global.mu.Unlock()

	if logger != nil {
		if err != nil {
			logger.Debug(message, zap.String("file", file), zap.Int("line", line), zap.Error(err))
		} else {
			logger.Debug(message, zap.String("file", file), zap.Int("line", line))
		}
	}
}

// Last returns the most recent diagnostic recorded against ctx's slot,
// or nil if none was ever recorded.
func Last(ctx context.Context) *Entry {
	global.mu.Lock()
	defer global.mu.Unlock()
	return global.entries[keyOf(ctx)]
}

// Clear discards ctx's diagnostic slot.
func Clear(ctx context.Context) {
	global.mu.Lock()
	delete(global.entries, keyOf(ctx))
	global.mu.Unlock()
}
