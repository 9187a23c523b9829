// Package context implements ParameterContext, the accumulator a
// multi-party signing flow uses to collect signatures for a
// transaction (or other verifiable payload) before a final witness can
// be assembled — without ever running the verification script itself.
package context

import (
	"encoding/hex"
	"encoding/json"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// Item holds one signer's progress towards a complete witness: the
// verification script it is signing for, the ordered parameters that
// script's invocation expects (populated once enough signatures are
// known to fill them), and every individual signature collected so
// far keyed by the signing public key's hex encoding.
type Item struct {
	Script     util.Uint160
	Parameters []smartcontract.Parameter
	Signatures map[string][]byte
}

type itemAux struct {
	Script     string                    `json:"script"`
	Parameters []smartcontract.Parameter `json:"parameters"`
	Signatures map[string][]byte         `json:"signatures"`
}

// AddSignature records sig as having come from pub, indexed by the
// public key's hex encoding.
func (it *Item) AddSignature(pub *keys.PublicKey, sig []byte) {
	if it.Signatures == nil {
		it.Signatures = make(map[string][]byte)
	}
	it.Signatures[hex.EncodeToString(pub.Bytes())] = sig
}

// GetSignature returns the signature recorded for pub, or nil.
func (it *Item) GetSignature(pub *keys.PublicKey) []byte {
	return it.Signatures[hex.EncodeToString(pub.Bytes())]
}

// MarshalJSON implements the json.Marshaler interface.
func (it Item) MarshalJSON() ([]byte, error) {
	params := it.Parameters
	if params == nil {
		params = []smartcontract.Parameter{}
	}
	sigs := it.Signatures
	if sigs == nil {
		sigs = map[string][]byte{}
	}
	return json.Marshal(itemAux{
		Script:     it.Script.StringLE(),
		Parameters: params,
		Signatures: sigs,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (it *Item) UnmarshalJSON(data []byte) error {
	var aux itemAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	script, err := util.Uint160DecodeStringLE(aux.Script)
	if err != nil {
		return err
	}
	it.Script = script
	it.Parameters = aux.Parameters
	it.Signatures = aux.Signatures
	return nil
}
