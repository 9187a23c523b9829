package result

import (
	"encoding/json"
	"strconv"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// RelayResult is the result of a sendrawtransaction RPC call: the hash
// the submitted transaction was accepted under.
type RelayResult struct {
	Hash util.Uint256
}

type relayResultAux struct {
	Hash string `json:"hash"`
}

// MarshalJSON implements the json.Marshaler interface.
func (r RelayResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(relayResultAux{Hash: "0x" + r.Hash.StringLE()})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *RelayResult) UnmarshalJSON(data []byte) error {
	var aux relayResultAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	h, err := parseUint256Hex(aux.Hash)
	if err != nil {
		return err
	}
	r.Hash = h
	return nil
}

// NetworkFee is the result of a calculatenetworkfee RPC call.
type NetworkFee struct {
	Value int64
}

type networkFeeAux struct {
	NetworkFee json.RawMessage `json:"networkfee"`
}

// MarshalJSON implements the json.Marshaler interface.
func (n NetworkFee) MarshalJSON() ([]byte, error) {
	fee, err := json.Marshal(strconv.FormatInt(n.Value, 10))
	if err != nil {
		return nil, err
	}
	return json.Marshal(networkFeeAux{NetworkFee: fee})
}

// UnmarshalJSON implements the json.Unmarshaler interface, accepting
// the fee as either a quoted string (older servers) or a bare number.
func (n *NetworkFee) UnmarshalJSON(data []byte) error {
	var aux networkFeeAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var v int64
	if len(aux.NetworkFee) != 0 && aux.NetworkFee[0] == '"' {
		var s string
		if err := json.Unmarshal(aux.NetworkFee, &s); err != nil {
			return err
		}
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		v = parsed
	} else if err := json.Unmarshal(aux.NetworkFee, &v); err != nil {
		return err
	}
	n.Value = v
	return nil
}

// ValidateAddress is the result of a validateaddress RPC call.
type ValidateAddress struct {
	Address string `json:"address"`
	IsValid bool   `json:"isvalid"`
}
