package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWallet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")
	w, err := NewWallet(path)
	require.NoError(t, err)
	require.Equal(t, path, w.Path())
	require.Equal(t, Version, w.Version)
	require.Empty(t, w.Accounts)
}

func TestWallet_CreateAccountAddAccountSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")
	w, err := NewWallet(path)
	require.NoError(t, err)
	w.Name = "test wallet"

	require.NoError(t, w.CreateAccount("first", "pass"))
	require.Len(t, w.Accounts, 1)
	require.True(t, w.Accounts[0].Default)

	require.NoError(t, w.Save())

	loaded, err := NewWalletFromFile(path)
	require.NoError(t, err)
	require.Equal(t, w.Name, loaded.Name)
	require.Len(t, loaded.Accounts, 1)
	require.Equal(t, w.Accounts[0].Address, loaded.Accounts[0].Address)
}

func TestWallet_RemoveAccountPromotesDefault(t *testing.T) {
	w, err := NewWallet(filepath.Join(t.TempDir(), "wallet.json"))
	require.NoError(t, err)
	w.Name = "test"

	require.NoError(t, w.CreateAccount("a", "pass"))
	require.NoError(t, w.CreateAccount("b", "pass"))
	require.True(t, w.Accounts[0].Default)
	require.False(t, w.Accounts[1].Default)

	addr0 := w.Accounts[0].Address
	require.NoError(t, w.RemoveAccount(addr0))
	require.Len(t, w.Accounts, 1)
	require.True(t, w.Accounts[0].Default)

	require.Error(t, w.RemoveAccount(addr0))
}

func TestWallet_GetAccountGetDefaultAccount(t *testing.T) {
	w, err := NewWallet(filepath.Join(t.TempDir(), "wallet.json"))
	require.NoError(t, err)
	w.Name = "test"
	require.NoError(t, w.CreateAccount("a", "pass"))

	addr := w.Accounts[0].Address
	require.Equal(t, addr, w.GetAccount(addr).Address)
	require.Nil(t, w.GetAccount("not an address"))
	require.Equal(t, addr, w.GetDefaultAccount().Address)
}

func TestWallet_UnmarshalJSONRejectsMultipleDefaults(t *testing.T) {
	doc := `{
		"name":"w","version":"1.0",
		"scrypt":{"n":16384,"r":8,"p":8},
		"accounts":[
			{"address":"NUkaBmzsZq1qdgaHfKrtRUcHNhtVJ2hTpv","label":"a","isDefault":true,"lock":false,"key":null,"contract":{"script":"","parameters":[],"deployed":false}},
			{"address":"NUkaBmzsZq1qdgaHfKrtRUcHNhtVJ2hTpv","label":"b","isDefault":true,"lock":false,"key":null,"contract":{"script":"","parameters":[],"deployed":false}}
		]
	}`
	var w Wallet
	require.Error(t, json.Unmarshal([]byte(doc), &w))
}

func TestWallet_UnmarshalJSONPromotesFirstDefault(t *testing.T) {
	doc := `{
		"name":"w","version":"1.0",
		"scrypt":{"n":16384,"r":8,"p":8},
		"accounts":[
			{"address":"NUkaBmzsZq1qdgaHfKrtRUcHNhtVJ2hTpv","label":"a","isDefault":false,"lock":false,"key":null,"contract":{"script":"","parameters":[],"deployed":false}}
		]
	}`
	var w Wallet
	require.NoError(t, json.Unmarshal([]byte(doc), &w))
	require.True(t, w.Accounts[0].Default)
}

func TestWallet_SaveNoPath(t *testing.T) {
	w := &Wallet{Name: "w", Version: Version}
	require.Error(t, w.Save())
}

func TestWallet_JSONRoundTrip(t *testing.T) {
	w, err := NewWallet(filepath.Join(t.TempDir(), "wallet.json"))
	require.NoError(t, err)
	w.Name = "test"
	require.NoError(t, w.CreateAccount("a", "pass"))

	data, err := w.JSON()
	require.NoError(t, err)

	loaded := &Wallet{}
	require.NoError(t, json.Unmarshal(data, loaded))
	require.Equal(t, w.Name, loaded.Name)
	require.Equal(t, w.Accounts[0].Address, loaded.Accounts[0].Address)
	require.Equal(t, w.Accounts[0].EncryptedWIF, loaded.Accounts[0].EncryptedWIF)

	_ = os.Remove(w.Path())
}
