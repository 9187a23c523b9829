package result

import (
	"encoding/json"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// TransactionOutputRaw is the result of a getrawtransaction RPC call
// made with verbose=true: the decoded transaction plus the blockchain
// placement fields the node only knows once the transaction is
// confirmed. BlockHash, Confirmations and Blocktime are nil for a
// transaction still sitting in the mempool; a port MUST NOT
// synthesize a default for them.
type TransactionOutputRaw struct {
	Transaction   *transaction.Transaction
	BlockHash     *util.Uint256
	Confirmations *uint32
	Blocktime     *uint64
	VMState       *string
}

type rawTransactionAux struct {
	BlockHash     string  `json:"blockhash,omitempty"`
	Confirmations *uint32 `json:"confirmations,omitempty"`
	Blocktime     *uint64 `json:"blocktime,omitempty"`
	VMState       *string `json:"vmstate,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface, flattening the
// placement fields alongside the embedded transaction's own fields the
// way the reference node's JSON-RPC server does.
func (t TransactionOutputRaw) MarshalJSON() ([]byte, error) {
	txData, err := json.Marshal(t.Transaction)
	if err != nil {
		return nil, err
	}
	aux := rawTransactionAux{
		Confirmations: t.Confirmations,
		Blocktime:     t.Blocktime,
		VMState:       t.VMState,
	}
	if t.BlockHash != nil {
		aux.BlockHash = "0x" + t.BlockHash.StringLE()
	}
	auxData, err := json.Marshal(aux)
	if err != nil {
		return nil, err
	}
	return mergeJSONObjects(txData, auxData)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *TransactionOutputRaw) UnmarshalJSON(data []byte) error {
	tx := new(transaction.Transaction)
	if err := json.Unmarshal(data, tx); err != nil {
		return err
	}
	var aux rawTransactionAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Transaction = tx
	t.Confirmations = aux.Confirmations
	t.Blocktime = aux.Blocktime
	t.VMState = aux.VMState
	if aux.BlockHash != "" {
		h, err := parseUint256Hex(aux.BlockHash)
		if err != nil {
			return err
		}
		t.BlockHash = &h
	}
	return nil
}

// mergeJSONObjects shallow-merges two JSON object encodings into one,
// with b's keys taking precedence over a's on conflict.
func mergeJSONObjects(a, b []byte) ([]byte, error) {
	var am, bm map[string]json.RawMessage
	if err := json.Unmarshal(a, &am); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, &bm); err != nil {
		return nil, err
	}
	for k, v := range bm {
		am[k] = v
	}
	return json.Marshal(am)
}
