package transaction

import (
	"crypto/sha256"
	"testing"

	"github.com/nspcc-dev/neo3-sdk-go/internal/testserdes"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func newTestTx(t *testing.T) *Transaction {
	tx := New([]byte{1, 2, 3}, 100)
	tx.Nonce = 123
	tx.ValidUntilBlock = 1000
	tx.Signers = []Signer{{Account: util.Uint160{1, 2, 3}, Scopes: CalledByEntry}}
	tx.Attributes = []Attribute{{Type: HighPriorityT, Value: &HighPriority{}}}
	tx.Scripts = []Witness{{InvocationScript: []byte{9}, VerificationScript: []byte{8}}}
	return tx
}

func TestTransaction_EncodeDecodeBinary(t *testing.T) {
	tx := newTestTx(t)
	tx2 := &Transaction{}
	testserdes.EncodeDecodeBinary(t, tx, tx2)
}

func TestTransaction_Hash(t *testing.T) {
	tx := newTestTx(t)
	h1 := tx.Hash()
	require.NotEqual(t, util.Uint256{}, h1)

	// The witness list isn't part of the signed payload: changing it
	// must not change the hash.
	tx.Scripts = append(tx.Scripts, Witness{})
	tx.hashValid = false
	h2 := tx.Hash()
	require.Equal(t, h1, h2)
}

func TestTransaction_NoDuplicateSigners(t *testing.T) {
	raw, err := testserdes.EncodeBinary(newTestTx(t))
	require.NoError(t, err)

	tx := &Transaction{}
	require.NoError(t, testserdes.DecodeBinary(raw, tx))

	tx2 := &Transaction{}
	raw2, err := testserdes.EncodeBinary(&Transaction{
		Version:         0,
		ValidUntilBlock: 1,
		Signers: []Signer{
			{Account: util.Uint160{1}, Scopes: CalledByEntry},
			{Account: util.Uint160{1}, Scopes: CalledByEntry},
		},
		Script: []byte{1},
		Scripts: []Witness{
			{},
			{},
		},
	})
	require.NoError(t, err)
	require.Error(t, testserdes.DecodeBinary(raw2, tx2))
}

func TestTransaction_MarshalJSON(t *testing.T) {
	tx := newTestTx(t)
	data, err := tx.MarshalJSON()
	require.NoError(t, err)
	require.Contains(t, string(data), `"sysfee":"100"`)
}

func TestScenarioS4(t *testing.T) {
	var account util.Uint160
	for i := range account {
		account[i] = byte(i + 1)
	}

	tx := New([]byte{1, 2, 3}, 10)
	tx.NetworkFee = 1
	tx.Nonce = 42
	tx.ValidUntilBlock = 1000
	tx.Signers = []Signer{{Account: account, Scopes: CalledByEntry}}

	raw := tx.Bytes()
	require.NotEmpty(t, raw)

	unsigned := tx.signedPart()
	h1 := sha256.Sum256(unsigned)
	h2 := sha256.Sum256(h1[:])
	require.Equal(t, util.Uint256(h2), tx.Hash())

	tx2, err := NewTransactionFromBytes(raw)
	require.NoError(t, err)
	require.Equal(t, tx.Hash(), tx2.Hash())
	require.Equal(t, tx.Signers, tx2.Signers)
	require.Equal(t, tx.Script, tx2.Script)
}
