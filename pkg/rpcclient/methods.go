package rpcclient

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/neorpc"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// parseUint256Hex decodes a "0x"-prefixed or bare little-endian hex
// string as returned by the reference node's JSON-RPC server.
func parseUint256Hex(s string) (util.Uint256, error) {
	return util.Uint256DecodeStringLE(strings.TrimPrefix(s, "0x"))
}

// GetVersion calls getversion, describing the node's protocol
// parameters and RPC-server capabilities.
func (c *Client) GetVersion() (*result.Version, error) {
	var resp result.Version
	if err := c.call("getversion", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBlockCount calls getblockcount, returning the node's current
// chain height.
func (c *Client) GetBlockCount() (uint32, error) {
	var resp uint32
	if err := c.call("getblockcount", nil, &resp); err != nil {
		return 0, err
	}
	return resp, nil
}

// GetBlockHash calls getblockhash for the block at index.
func (c *Client) GetBlockHash(index uint32) (util.Uint256, error) {
	var resp string
	if err := c.call("getblockhash", []interface{}{index}, &resp); err != nil {
		return util.Uint256{}, err
	}
	return parseUint256Hex(resp)
}

// GetBlock calls getblock for hash, with verbose=true, decoding the
// full block header and transaction list.
func (c *Client) GetBlock(hash util.Uint256) (*result.Block, error) {
	var resp result.Block
	if err := c.call("getblock", []interface{}{"0x" + hash.StringLE(), 1}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetContractState calls getcontractstate for hash, consulting the
// client's contract-state cache first when one was configured.
func (c *Client) GetContractState(hash util.Uint160) (*result.ContractState, error) {
	if c.contractCache != nil {
		if cached, ok := c.contractCache.Get(hash); ok {
			return cached.(*result.ContractState), nil
		}
	}
	var resp result.ContractState
	if err := c.call("getcontractstate", []interface{}{"0x" + hash.StringLE()}, &resp); err != nil {
		return nil, err
	}
	if c.contractCache != nil {
		c.contractCache.Add(hash, &resp)
	}
	return &resp, nil
}

// GetRawTransaction calls getrawtransaction for hash, with
// verbose=true, decoding the transaction plus its block placement.
func (c *Client) GetRawTransaction(hash util.Uint256) (*result.TransactionOutputRaw, error) {
	var resp result.TransactionOutputRaw
	if err := c.call("getrawtransaction", []interface{}{"0x" + hash.StringLE(), 1}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendRawTransaction calls sendrawtransaction, submitting tx's full
// wire encoding for relay.
func (c *Client) SendRawTransaction(tx *transaction.Transaction) (util.Uint256, error) {
	raw := base64.StdEncoding.EncodeToString(tx.Bytes())
	var resp result.RelayResult
	if err := c.call("sendrawtransaction", []interface{}{raw}, &resp); err != nil {
		return util.Uint256{}, err
	}
	return resp.Hash, nil
}

// InvokeFunction calls invokefunction, invoking method on the
// contract at scriptHash with params, authorized by signers.
func (c *Client) InvokeFunction(scriptHash util.Uint160, method string, params []smartcontract.Parameter, signers []neorpc.SignerWithWitness) (*result.Invoke, error) {
	rpcParams := []interface{}{"0x" + scriptHash.StringLE(), method, params}
	if signers != nil {
		rpcParams = append(rpcParams, signers)
	}
	var resp result.Invoke
	if err := c.call("invokefunction", rpcParams, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InvokeScript calls invokescript, running script as-is, authorized
// by signers.
func (c *Client) InvokeScript(script []byte, signers []neorpc.SignerWithWitness) (*result.Invoke, error) {
	rpcParams := []interface{}{base64.StdEncoding.EncodeToString(script)}
	if signers != nil {
		rpcParams = append(rpcParams, signers)
	}
	var resp result.Invoke
	if err := c.call("invokescript", rpcParams, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CalculateNetworkFee calls calculatenetworkfee for the given
// unsigned-or-partially-signed transaction's wire encoding, returning
// the network fee the final signed transaction will need.
func (c *Client) CalculateNetworkFee(tx *transaction.Transaction) (int64, error) {
	raw := base64.StdEncoding.EncodeToString(tx.Bytes())
	var resp result.NetworkFee
	if err := c.call("calculatenetworkfee", []interface{}{raw}, &resp); err != nil {
		return 0, err
	}
	return resp.Value, nil
}

// ValidateAddress calls validateaddress for address.
func (c *Client) ValidateAddress(address string) (*result.ValidateAddress, error) {
	var resp result.ValidateAddress
	if err := c.call("validateaddress", []interface{}{address}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPeers calls getpeers, returning the node's current view of its
// connected, known-but-unconnected and misbehaving peers.
func (c *Client) GetPeers() (*result.GetPeers, error) {
	resp := result.NewGetPeers()
	if err := c.call("getpeers", nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// jsonParam wraps an already-encoded JSON value so it passes through
// the params array verbatim, for express methods this package doesn't
// model with a strict parameter type.
type jsonParam json.RawMessage

// MarshalJSON implements the json.Marshaler interface.
func (p jsonParam) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

func mustJSONParam(v interface{}) (jsonParam, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("rpcclient: encoding parameter: %w", err)
	}
	return jsonParam(data), nil
}
