package transaction

import (
	"testing"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/config/netmode"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestBuilder_StateTransitions(t *testing.T) {
	b := NewBuilder()

	_, err := b.Build()
	require.ErrorIs(t, err, ErrInvalidState)

	b.SetScript([]byte{1, 2, 3})
	_, err = b.Build()
	require.ErrorIs(t, err, ErrInvalidState, "still missing a signer")

	require.NoError(t, b.AddSigner(Signer{Account: util.Uint160{1}, Scopes: CalledByEntry}))

	_, err = b.Build()
	require.Error(t, err, "still missing validUntilBlock")

	b.SetValidUntilBlock(1000)
	tx, err := b.Build()
	require.NoError(t, err)
	require.NotZero(t, tx.Nonce)
}

func TestBuilder_AddSignerRejectsDuplicate(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddSigner(Signer{Account: util.Uint160{1}, Scopes: CalledByEntry}))
	require.Error(t, b.AddSigner(Signer{Account: util.Uint160{1}, Scopes: CalledByEntry}))
}

func TestBuilder_AddAttributeRejectsSecondHighPriority(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddAttribute(Attribute{Type: HighPriorityT, Value: &HighPriority{}}))
	require.Error(t, b.AddAttribute(Attribute{Type: HighPriorityT, Value: &HighPriority{}}))
}

func TestBuilder_SignProducesVerifiableWitness(t *testing.T) {
	pk, err := keys.NewPrivateKey()
	require.NoError(t, err)

	b := NewBuilder()
	b.SetScript([]byte{1, 2, 3})
	require.NoError(t, b.AddSigner(Signer{Account: pk.GetScriptHash(), Scopes: CalledByEntry}))
	b.SetValidUntilBlock(1000)
	_, err = b.Build()
	require.NoError(t, err)

	tx, err := b.Sign(uint32(netmode.UnitTestNet), map[string]*keys.PrivateKey{
		pk.GetScriptHash().StringLE(): pk,
	})
	require.NoError(t, err)
	require.Len(t, tx.Scripts, 1)
	require.Equal(t, pk.GetScriptHash(), tx.Scripts[0].ScriptHash())
}
