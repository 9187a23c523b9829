package rpcclient

import (
	"encoding/json"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// This file implements the Neo-Express RPC extensions as a single
// coherent set of typed wrappers: a client either gets a real answer
// from these or a transport/protocol error, never a silent stub (see
// spec's Open Question on express helpers in DESIGN.md).

// ExpressGetPopulatedBlocks calls expressgetpopulatedblocks, listing
// every block index carrying at least one transaction, along with the
// cache identifier a caller uses to notice the index was rebuilt.
func (c *Client) ExpressGetPopulatedBlocks() (*result.ExpressPopulatedBlocks, error) {
	var resp result.ExpressPopulatedBlocks
	if err := c.call("expressgetpopulatedblocks", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExpressGetNEP17Contracts calls expressgetnep17contracts, listing the
// NEP-17 tokens Neo-Express knows about.
func (c *Client) ExpressGetNEP17Contracts() ([]result.ExpressContractState, error) {
	var resp []result.ExpressContractState
	if err := c.call("expressgetnep17contracts", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ExpressGetContractStorage calls expressgetcontractstorage, dumping
// every key/value pair in the contract's storage.
func (c *Client) ExpressGetContractStorage(hash util.Uint160) ([]result.ExpressStorageEntry, error) {
	var resp []result.ExpressStorageEntry
	if err := c.call("expressgetcontractstorage", []interface{}{"0x" + hash.StringLE()}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ExpressListContracts calls expresslistcontracts, listing every
// contract Neo-Express has deployed, with its manifest left opaque.
func (c *Client) ExpressListContracts() ([]result.ExpressContractDetail, error) {
	var resp []result.ExpressContractDetail
	if err := c.call("expresslistcontracts", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ExpressCreateCheckpoint calls expresscreatecheckpoint, snapshotting
// the chain state to filename and returning the path it was written
// to.
func (c *Client) ExpressCreateCheckpoint(filename string) (string, error) {
	var resp string
	if err := c.call("expresscreatecheckpoint", []interface{}{filename}, &resp); err != nil {
		return "", err
	}
	return resp, nil
}

// ExpressListOracleRequests calls expresslistoraclerequests, listing
// the chain's pending oracle requests. Each request's shape is
// determined by the oracle contract's own data, so it is left opaque.
func (c *Client) ExpressListOracleRequests() ([]json.RawMessage, error) {
	var resp []json.RawMessage
	if err := c.call("expresslistoraclerequests", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ExpressCreateOracleResponseTx calls expresscreateoracleresponsetx,
// building a signed oracle response transaction for request (an
// oracle response object in the reference node's JSON shape) and
// returning its base64-encoded wire bytes.
func (c *Client) ExpressCreateOracleResponseTx(request interface{}) (string, error) {
	param, err := mustJSONParam(request)
	if err != nil {
		return "", err
	}
	var resp string
	if err := c.call("expresscreateoracleresponsetx", []interface{}{param}, &resp); err != nil {
		return "", err
	}
	return resp, nil
}

// ExpressShutdown calls expressshutdown, asking the node to exit and
// returning the process id it reported as about to stop.
func (c *Client) ExpressShutdown() (*result.ExpressShutdown, error) {
	var resp result.ExpressShutdown
	if err := c.call("expressshutdown", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
