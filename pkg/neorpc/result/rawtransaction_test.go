package result

import (
	"encoding/json"
	"testing"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestTransactionOutputRawConfirmed(t *testing.T) {
	tx := transaction.New([]byte{0x51}, 0)
	block := util.Uint256{7}
	confs := uint32(12)
	blocktime := uint64(1700000000)
	state := "HALT"

	out := TransactionOutputRaw{
		Transaction:   tx,
		BlockHash:     &block,
		Confirmations: &confs,
		Blocktime:     &blocktime,
		VMState:       &state,
	}

	data, err := json.Marshal(out)
	require.NoError(t, err)

	var got TransactionOutputRaw
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, tx.Hash(), got.Transaction.Hash())
	require.NotNil(t, got.BlockHash)
	require.Equal(t, block, *got.BlockHash)
	require.NotNil(t, got.Confirmations)
	require.Equal(t, confs, *got.Confirmations)
	require.NotNil(t, got.Blocktime)
	require.Equal(t, blocktime, *got.Blocktime)
	require.NotNil(t, got.VMState)
	require.Equal(t, state, *got.VMState)
}

func TestTransactionOutputRawUnconfirmed(t *testing.T) {
	tx := transaction.New([]byte{0x51}, 0)
	out := TransactionOutputRaw{Transaction: tx}

	data, err := json.Marshal(out)
	require.NoError(t, err)

	var got TransactionOutputRaw
	require.NoError(t, json.Unmarshal(data, &got))
	require.Nil(t, got.BlockHash)
	require.Nil(t, got.Confirmations)
	require.Nil(t, got.Blocktime)
	require.Nil(t, got.VMState)
}
