package result

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// ExpressPopulatedBlocks is the result of an expressgetpopulatedblocks
// call: the cache identifier Neo-Express uses to invalidate a client's
// local index, plus the indexes of every block carrying at least one
// transaction.
type ExpressPopulatedBlocks struct {
	CacheID string  `json:"cacheid"`
	Blocks  []int64 `json:"blocks"`
}

// ExpressContractState is one entry of an expressgetnep17contracts
// result: a deployed NEP-17 token's identity, without the full
// manifest an expressgetcontractstate call would carry.
type ExpressContractState struct {
	Hash     util.Uint160 `json:"-"`
	Symbol   string       `json:"symbol"`
	Decimals byte         `json:"decimals"`
}

type expressContractStateAux struct {
	Hash     string `json:"scripthash"`
	Symbol   string `json:"symbol"`
	Decimals byte   `json:"decimals"`
}

// MarshalJSON implements the json.Marshaler interface.
func (e ExpressContractState) MarshalJSON() ([]byte, error) {
	return json.Marshal(expressContractStateAux{
		Hash:     "0x" + e.Hash.StringLE(),
		Symbol:   e.Symbol,
		Decimals: e.Decimals,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (e *ExpressContractState) UnmarshalJSON(data []byte) error {
	var aux expressContractStateAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	hash, err := parseUint160Hex(aux.Hash)
	if err != nil {
		return err
	}
	e.Hash = hash
	e.Symbol = aux.Symbol
	e.Decimals = aux.Decimals
	return nil
}

// ExpressStorageEntry is one key/value pair of an
// expressgetcontractstorage result, as raw contract storage bytes.
type ExpressStorageEntry struct {
	Key   []byte `json:"-"`
	Value []byte `json:"-"`
}

type expressStorageEntryAux struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MarshalJSON implements the json.Marshaler interface.
func (e ExpressStorageEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(expressStorageEntryAux{
		Key:   base64.StdEncoding.EncodeToString(e.Key),
		Value: base64.StdEncoding.EncodeToString(e.Value),
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (e *ExpressStorageEntry) UnmarshalJSON(data []byte) error {
	var aux expressStorageEntryAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	key, err := base64.StdEncoding.DecodeString(aux.Key)
	if err != nil {
		return fmt.Errorf("decoding storage key: %w", err)
	}
	value, err := base64.StdEncoding.DecodeString(aux.Value)
	if err != nil {
		return fmt.Errorf("decoding storage value: %w", err)
	}
	e.Key = key
	e.Value = value
	return nil
}

// ExpressContractDetail is one entry of an expresslistcontracts
// result. Its manifest is left as opaque raw JSON: this module
// doesn't carry a manifest model (see DESIGN.md), only a hash and the
// manifest bytes a caller that does want to parse one can use.
type ExpressContractDetail struct {
	Hash     util.Uint160    `json:"-"`
	Manifest json.RawMessage `json:"manifest"`
}

type expressContractDetailAux struct {
	Hash     string          `json:"hash"`
	Manifest json.RawMessage `json:"manifest"`
}

// MarshalJSON implements the json.Marshaler interface.
func (e ExpressContractDetail) MarshalJSON() ([]byte, error) {
	return json.Marshal(expressContractDetailAux{
		Hash:     "0x" + e.Hash.StringLE(),
		Manifest: e.Manifest,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (e *ExpressContractDetail) UnmarshalJSON(data []byte) error {
	var aux expressContractDetailAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	hash, err := parseUint160Hex(aux.Hash)
	if err != nil {
		return err
	}
	e.Hash = hash
	e.Manifest = aux.Manifest
	return nil
}

// ExpressShutdown is the result of an expressshutdown call: the
// process id of the node that is about to exit.
type ExpressShutdown struct {
	ProcessID int `json:"process-id"`
}
