package wallet

import (
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// ContractParam names and types one argument of an account's
// verification script, as recorded in a NEP-6 wallet document.
type ContractParam struct {
	Name string
	Type smartcontract.ParamType
}

type contractParamAux struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// MarshalJSON implements the json.Marshaler interface.
func (p ContractParam) MarshalJSON() ([]byte, error) {
	return json.Marshal(contractParamAux{Name: p.Name, Type: p.Type.String()})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *ContractParam) UnmarshalJSON(data []byte) error {
	var aux contractParamAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	typ, err := smartcontract.ParseParamType(aux.Type)
	if err != nil {
		return err
	}
	p.Name = aux.Name
	p.Type = typ
	return nil
}

// Contract is the verification contract backing an account: its
// script, the parameters that script's invocation expects, and
// whether it was deployed on chain (as opposed to a bare signature or
// multisig account no contract state exists for).
type Contract struct {
	Script     []byte          `json:"script"`
	Parameters []ContractParam `json:"parameters"`
	Deployed   bool            `json:"deployed"`
}

type contractAux struct {
	Script     string          `json:"script"`
	Parameters []ContractParam `json:"parameters"`
	Deployed   bool            `json:"deployed"`
}

// ScriptHash returns the account identity the contract's script hashes
// to: RIPEMD-160(SHA-256(script)).
func (c *Contract) ScriptHash() util.Uint160 {
	return hash.Hash160(c.Script)
}

// MarshalJSON implements the json.Marshaler interface.
func (c Contract) MarshalJSON() ([]byte, error) {
	params := c.Parameters
	if params == nil {
		params = []ContractParam{}
	}
	return json.Marshal(contractAux{
		Script:     hex.EncodeToString(c.Script),
		Parameters: params,
		Deployed:   c.Deployed,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *Contract) UnmarshalJSON(data []byte) error {
	var aux contractAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	script, err := hex.DecodeString(aux.Script)
	if err != nil {
		return errors.New("wallet: invalid contract script encoding")
	}
	c.Script = script
	c.Parameters = aux.Parameters
	c.Deployed = aux.Deployed
	return nil
}
