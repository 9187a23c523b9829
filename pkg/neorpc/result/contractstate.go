package result

import (
	"encoding/base64"
	"encoding/json"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// ContractState is the result of a getcontractstate RPC call: the
// deployed contract's on-chain identity and its raw NEF/manifest
// payloads, carried opaquely since interpreting them is out of this
// SDK's scope.
type ContractState struct {
	ID            int32
	UpdateCounter uint16
	Hash          util.Uint160
	NEF           []byte
	Manifest      json.RawMessage
}

type contractStateAux struct {
	ID            int32           `json:"id"`
	UpdateCounter uint16          `json:"updatecounter"`
	Hash          string          `json:"hash"`
	NEF           string          `json:"nef"`
	Manifest      json.RawMessage `json:"manifest"`
}

// MarshalJSON implements the json.Marshaler interface.
func (c ContractState) MarshalJSON() ([]byte, error) {
	return json.Marshal(contractStateAux{
		ID:            c.ID,
		UpdateCounter: c.UpdateCounter,
		Hash:          "0x" + c.Hash.StringLE(),
		NEF:           base64.StdEncoding.EncodeToString(c.NEF),
		Manifest:      c.Manifest,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *ContractState) UnmarshalJSON(data []byte) error {
	var aux contractStateAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	hash, err := parseUint160Hex(aux.Hash)
	if err != nil {
		return err
	}
	nef, err := base64.StdEncoding.DecodeString(aux.NEF)
	if err != nil {
		return err
	}
	c.ID = aux.ID
	c.UpdateCounter = aux.UpdateCounter
	c.Hash = hash
	c.NEF = nef
	c.Manifest = aux.Manifest
	return nil
}
