package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nspcc-dev/neo3-sdk-go/internal/keytestcases"
)

func TestNEP2Encrypt(t *testing.T) {
	for _, testCase := range keytestcases.Arr {
		if testCase.Invalid {
			continue
		}
		privKey, err := NewPrivateKeyFromHex(testCase.PrivateKey)
		require.NoError(t, err)

		encryptedWif, err := NEP2Encrypt(privKey, testCase.Passphrase)
		require.NoError(t, err)
		assert.Equal(t, testCase.EncryptedWif, encryptedWif)
	}
}

func TestNEP2Decrypt(t *testing.T) {
	for _, testCase := range keytestcases.Arr {
		if testCase.Invalid {
			continue
		}
		wif, err := NEP2Decrypt(testCase.EncryptedWif, testCase.Passphrase)
		require.NoError(t, err)

		privKey, err := NewPrivateKeyFromWIF(wif)
		require.NoError(t, err)
		assert.Equal(t, testCase.PrivateKey, privKey.String())
		assert.Equal(t, testCase.Wif, privKey.WIF())
		assert.Equal(t, testCase.Address, privKey.Address())
	}
}

func TestNEP2DecryptWrongPassphrase(t *testing.T) {
	testCase := keytestcases.Arr[0]
	_, err := NEP2Decrypt(testCase.EncryptedWif, "not the right passphrase")
	require.Error(t, err)
}

func TestNEP2DecryptBadFormat(t *testing.T) {
	_, err := NEP2Decrypt("garbage", "whatever")
	require.Error(t, err)
}

// scenarioS1PrivateKey is the private key shared by scenarios S1 and S2.
const scenarioS1PrivateKey = "84180ac9d6eb6fba207ea4ef9d2200102d1ebeb4b9c07e2c6a738a42742e27a5"

func TestScenarioS1(t *testing.T) {
	privKey, err := NewPrivateKeyFromHex(scenarioS1PrivateKey)
	require.NoError(t, err)

	nep2, err := NEP2EncryptWithParams(privKey, "neo", NEP2ScryptParams())
	require.NoError(t, err)
	require.Equal(t, "6PYM7jHL4GmS8Aw2iEFpuaHTCUKjhT4mwVqdoozGU6sUE25BjV4ePXDdLz", nep2)
}

func TestScenarioS2(t *testing.T) {
	privKey, err := NewPrivateKeyFromHex(scenarioS1PrivateKey)
	require.NoError(t, err)

	nep2, err := NEP2EncryptWithParams(privKey, "neo", NEP2ScryptParamsLight())
	require.NoError(t, err)
	require.Equal(t, "6PYM7jHL3uwhP8uuHP9fMGMfJxfyQbanUZPQEh1772iyb7vRnUkbkZmdRT", nep2)
}

func TestNEP2LightParamsRoundTrip(t *testing.T) {
	privKey, err := NewPrivateKeyFromHex(keytestcases.Arr[0].PrivateKey)
	require.NoError(t, err)

	def, err := NEP2EncryptWithParams(privKey, "neo", NEP2ScryptParams())
	require.NoError(t, err)
	light, err := NEP2EncryptWithParams(privKey, "neo", NEP2ScryptParamsLight())
	require.NoError(t, err)
	assert.NotEqual(t, def, light)

	wif, err := NEP2DecryptWithParams(light, "neo", NEP2ScryptParamsLight())
	require.NoError(t, err)
	assert.Equal(t, privKey.WIF(), wif)
}
