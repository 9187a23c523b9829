package result

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// Block is the result of a getblock RPC call made with verbose=true:
// a block header plus its full transaction list, the way the
// reference node's JSON-RPC server renders it.
type Block struct {
	Hash              util.Uint256
	Size              int
	Version           uint32
	PrevBlockHash     util.Uint256
	MerkleRoot        util.Uint256
	Timestamp         uint64
	Nonce             uint64
	Index             uint32
	PrimaryIndex      byte
	NextConsensus     string
	Witnesses         []transaction.Witness
	Transactions      []*transaction.Transaction
	Confirmations     uint32
	NextBlockHash     *util.Uint256
}

type blockAux struct {
	Hash          string                      `json:"hash"`
	Size          int                         `json:"size"`
	Version       uint32                      `json:"version"`
	PrevBlockHash string                      `json:"previousblockhash"`
	MerkleRoot    string                      `json:"merkleroot"`
	Timestamp     uint64                      `json:"time"`
	Nonce         string                      `json:"nonce"`
	Index         uint32                      `json:"index"`
	PrimaryIndex  byte                        `json:"primary"`
	NextConsensus string                      `json:"nextconsensus"`
	Witnesses     []transaction.Witness       `json:"witnesses"`
	Transactions  []*transaction.Transaction  `json:"tx"`
	Confirmations uint32                      `json:"confirmations"`
	NextBlockHash string                      `json:"nextblockhash,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (b Block) MarshalJSON() ([]byte, error) {
	aux := blockAux{
		Hash:          "0x" + b.Hash.StringLE(),
		Size:          b.Size,
		Version:       b.Version,
		PrevBlockHash: "0x" + b.PrevBlockHash.StringLE(),
		MerkleRoot:    "0x" + b.MerkleRoot.StringLE(),
		Timestamp:     b.Timestamp,
		Nonce:         fmt.Sprintf("%016x", b.Nonce),
		Index:         b.Index,
		PrimaryIndex:  b.PrimaryIndex,
		NextConsensus: b.NextConsensus,
		Witnesses:     b.Witnesses,
		Transactions:  b.Transactions,
		Confirmations: b.Confirmations,
	}
	if b.NextBlockHash != nil {
		aux.NextBlockHash = "0x" + b.NextBlockHash.StringLE()
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (b *Block) UnmarshalJSON(data []byte) error {
	var aux blockAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	hash, err := parseUint256Hex(aux.Hash)
	if err != nil {
		return err
	}
	prev, err := parseUint256Hex(aux.PrevBlockHash)
	if err != nil {
		return err
	}
	root, err := parseUint256Hex(aux.MerkleRoot)
	if err != nil {
		return err
	}
	nonce, err := strconv.ParseUint(aux.Nonce, 16, 64)
	if err != nil {
		return err
	}
	b.Hash = hash
	b.Size = aux.Size
	b.Version = aux.Version
	b.PrevBlockHash = prev
	b.MerkleRoot = root
	b.Timestamp = aux.Timestamp
	b.Nonce = nonce
	b.Index = aux.Index
	b.PrimaryIndex = aux.PrimaryIndex
	b.NextConsensus = aux.NextConsensus
	b.Witnesses = aux.Witnesses
	b.Transactions = aux.Transactions
	b.Confirmations = aux.Confirmations
	if aux.NextBlockHash != "" {
		next, err := parseUint256Hex(aux.NextBlockHash)
		if err != nil {
			return err
		}
		b.NextBlockHash = &next
	}
	return nil
}

func parseUint256Hex(s string) (util.Uint256, error) {
	if len(s) >= 2 && s[:2] == "0x" {
		s = s[2:]
	}
	return util.Uint256DecodeStringLE(s)
}

func parseUint160Hex(s string) (util.Uint160, error) {
	if len(s) >= 2 && s[:2] == "0x" {
		s = s[2:]
	}
	return util.Uint160DecodeStringLE(s)
}
