package rpcclient

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/neorpc"
)

// Internal is a Service that talks to an in-process request handler
// instead of a real network transport, letting a host embed a node
// and this SDK's client in the same process (local tooling, tests)
// without going through HTTP at all.
type Internal struct {
	mu      sync.Mutex
	handler func(*neorpc.Request) (*neorpc.Response, error)
	notify  chan<- neorpc.Notification
	err     error
	closed  bool
}

// NewInternal builds an Internal client. newHandler is invoked once
// with a channel the in-process node can use to push subscription
// notifications on, and must return the function that answers each
// request; a nil return value means the node accepts no requests
// (useful for tests that never call out).
func NewInternal(ctx context.Context, newHandler func(context.Context, chan<- neorpc.Notification) func(*neorpc.Request) (*neorpc.Response, error)) (*Internal, error) {
	ch := make(chan neorpc.Notification)
	icl := &Internal{notify: ch}
	icl.handler = newHandler(ctx, ch)
	return icl, nil
}

// PerformIO implements the Service interface.
func (icl *Internal) PerformIO(_ context.Context, request []byte) ([]byte, error) {
	icl.mu.Lock()
	defer icl.mu.Unlock()

	if icl.closed {
		return nil, errors.New("rpcclient: internal client is closed")
	}
	if icl.handler == nil {
		err := errors.New("rpcclient: internal client has no request handler")
		icl.err = err
		return nil, err
	}
	var req neorpc.Request
	if err := json.Unmarshal(request, &req); err != nil {
		icl.err = err
		return nil, err
	}
	resp, err := icl.handler(&req)
	if err != nil {
		icl.err = err
		return nil, err
	}
	return json.Marshal(resp)
}

// Close shuts the internal client down, closing its notification
// channel.
func (icl *Internal) Close() {
	icl.mu.Lock()
	defer icl.mu.Unlock()
	if !icl.closed {
		close(icl.notify)
		icl.closed = true
	}
}

// GetError returns the last error PerformIO encountered, or nil if
// none ever occurred.
func (icl *Internal) GetError() error {
	icl.mu.Lock()
	defer icl.mu.Unlock()
	return icl.err
}
