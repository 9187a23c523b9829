// Package rpcclient implements the RPC client skeleton: a Service
// abstraction that performs one JSON request/response round trip as
// opaque bytes, and a Client built on top of it offering typed method
// wrappers for the standard Neo N3 JSON-RPC surface plus the
// Neo-Express extensions.
package rpcclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/config/netmode"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/diag"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/neorpc"
)

// Options configures a Client. The zero value is usable: no dial
// timeout, no preferred network magic (fetched from the node on
// Init), no logging, no contract-state cache.
type Options struct {
	// DialTimeout bounds each individual HTTP round trip. Zero means
	// no timeout, left to the caller's context instead.
	DialTimeout time.Duration
	// Network, when non-zero, is asserted against the node's reported
	// network magic on Init instead of being discovered from it.
	Network netmode.Magic
	// Logger receives debug-level diagnostics for each RPC call, if set.
	Logger *zap.Logger
	// ContractStateCacheSize bounds how many getcontractstate results
	// the client memoizes by hash. Zero disables the cache.
	ContractStateCacheSize int
}

// LoadOptionsYAML reads Options from a YAML file, the way a host
// application keeping its node endpoint configuration alongside other
// service config typically wants to.
func LoadOptionsYAML(path string) (Options, error) {
	var raw struct {
		DialTimeout             time.Duration `yaml:"dial_timeout"`
		Network                 uint32        `yaml:"network"`
		ContractStateCacheSize  int           `yaml:"contract_state_cache_size"`
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("rpcclient: reading options file: %w", err)
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Options{}, fmt.Errorf("rpcclient: parsing options file: %w", err)
	}
	return Options{
		DialTimeout:            raw.DialTimeout,
		Network:                netmode.Magic(raw.Network),
		ContractStateCacheSize: raw.ContractStateCacheSize,
	}, nil
}

// Client is a JSON-RPC client for a single Neo N3 (or Neo-Express)
// node endpoint. It is safe for concurrent use: the request id counter
// is atomic and the cached network magic is protected by a mutex.
type Client struct {
	ctx      context.Context
	endpoint *url.URL
	service  Service
	logger   *zap.Logger

	requestID uint64

	networkMu sync.Mutex
	network   *netmode.Magic

	contractCache *lru.Cache
}

// New builds a Client backed by the default HTTP Service, talking to
// endpoint.
func New(ctx context.Context, endpoint string, opts Options) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("rpcclient: invalid endpoint: %w", err)
	}
	return NewWithService(ctx, u, newHTTPService(endpoint, opts.DialTimeout), opts)
}

// NewWithService builds a Client backed by an arbitrary Service, for
// hosts that need a transport New doesn't build (an in-process
// Internal client, a mock for tests, a non-HTTP transport).
func NewWithService(ctx context.Context, endpoint *url.URL, service Service, opts Options) (*Client, error) {
	c := &Client{
		ctx:      ctx,
		endpoint: endpoint,
		service:  service,
		logger:   opts.Logger,
	}
	if opts.Network != 0 {
		n := opts.Network
		c.network = &n
	}
	if opts.ContractStateCacheSize > 0 {
		cache, err := lru.New(opts.ContractStateCacheSize)
		if err != nil {
			return nil, fmt.Errorf("rpcclient: building contract state cache: %w", err)
		}
		c.contractCache = cache
	}
	return c, nil
}

// Endpoint returns the node endpoint this client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Init fetches the node's version and, unless a network magic was
// already pinned via Options, caches the reported one for subsequent
// signature verification and witness-scope checks.
func (c *Client) Init() error {
	ver, err := c.GetVersion()
	if err != nil {
		return err
	}
	c.networkMu.Lock()
	defer c.networkMu.Unlock()
	if c.network == nil {
		n := netmode.Magic(ver.Protocol.Network)
		c.network = &n
	}
	return nil
}

// NetworkMagic returns the network magic Init cached, or 0 if Init
// hasn't been called (or hadn't discovered one) yet.
func (c *Client) NetworkMagic() netmode.Magic {
	c.networkMu.Lock()
	defer c.networkMu.Unlock()
	if c.network == nil {
		return 0
	}
	return *c.network
}

// Ping performs a lightweight call to confirm the endpoint is
// reachable and speaking JSON-RPC.
func (c *Client) Ping() error {
	_, err := c.GetBlockCount()
	return err
}

func (c *Client) nextID() uint64 {
	return atomic.AddUint64(&c.requestID, 1)
}

// call performs one request/response round trip for method with the
// given positional params, decoding the result into out (which may be
// nil for methods with no useful result). It never retries; transport
// and protocol failures are returned as-is for the caller to handle.
func (c *Client) call(method string, params []interface{}, out interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	req := neorpc.Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID(),
	}
	reqBytes, err := json.Marshal(req)
	if err != nil {
		diag.Record(c.ctx, c.logger, "marshaling request", err)
		return fmt.Errorf("rpcclient: marshaling request: %w", err)
	}

	start := time.Now()
	respBytes, err := c.service.PerformIO(c.ctx, reqBytes)
	if c.logger != nil {
		c.logger.Debug("rpc call",
			zap.String("method", method),
			zap.Uint64("id", req.ID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
	}
	if err != nil {
		diag.Record(c.ctx, c.logger, "performing "+method, err)
		return fmt.Errorf("rpcclient: network error calling %s: %w", method, err)
	}

	var resp neorpc.Response
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		diag.Record(c.ctx, c.logger, "decoding response for "+method, err)
		return fmt.Errorf("rpcclient: decoding response for %s: %w", method, err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if len(resp.Result) == 0 {
		return fmt.Errorf("rpcclient: protocol error calling %s: response carries neither result nor error", method)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("rpcclient: decoding result for %s: %w", method, err)
	}
	return nil
}
