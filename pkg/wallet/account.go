package wallet

import (
	"encoding/json"
	"errors"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/smartcontract"
)

// Account is a single NEP-6 wallet entry: its address, an optional
// label, lock/default flags, the NEP-2 ciphertext of its private key
// (nil for a watch-only or multisig account with no local key), its
// verification contract and any wallet-specific extra data.
//
// An Account's private key is decrypted lazily and kept only in
// memory; Decrypt must be called (successfully) before PrivateKey
// returns a non-nil key.
type Account struct {
	Address      string          `json:"address"`
	EncryptedWIF string          `json:"key"`
	Label        string          `json:"label"`
	Contract     *Contract       `json:"contract"`
	Locked       bool            `json:"lock"`
	Default      bool            `json:"isDefault"`
	Extra        json.RawMessage `json:"extra,omitempty"`

	privateKey *keys.PrivateKey
}

type accountAux struct {
	Address      string          `json:"address"`
	EncryptedWIF string          `json:"key"`
	Label        *string         `json:"label"`
	Contract     *Contract       `json:"contract"`
	Locked       bool            `json:"lock"`
	Default      bool            `json:"isDefault"`
	Extra        json.RawMessage `json:"extra,omitempty"`
}

// NewAccount creates an Account around a freshly generated key-pair,
// with a single-signature verification contract and no label.
func NewAccount() (*Account, error) {
	priv, err := keys.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return newAccountFromPrivateKey(priv), nil
}

// NewAccountFromWIF creates an unencrypted Account around the
// key-pair WIF decodes to; call Encrypt before it can be part of a
// saved wallet.
func NewAccountFromWIF(wif string) (*Account, error) {
	priv, err := keys.NewPrivateKeyFromWIF(wif)
	if err != nil {
		return nil, err
	}
	return newAccountFromPrivateKey(priv), nil
}

// NewAccountFromEncryptedWIF creates an Account whose key-pair is
// recovered by NEP-2-decrypting wif under passphrase using the
// default scrypt parameters.
func NewAccountFromEncryptedWIF(wif, passphrase string) (*Account, error) {
	return NewAccountFromEncryptedWIFWithParams(wif, passphrase, keys.NEP2ScryptParams())
}

// NewAccountFromEncryptedWIFWithParams is NewAccountFromEncryptedWIF
// with explicit scrypt cost parameters.
func NewAccountFromEncryptedWIFWithParams(wif, passphrase string, params keys.ScryptParams) (*Account, error) {
	decryptedWIF, err := keys.NEP2DecryptWithParams(wif, passphrase, params)
	if err != nil {
		return nil, err
	}
	priv, err := keys.NewPrivateKeyFromWIF(decryptedWIF)
	if err != nil {
		return nil, err
	}
	acc := newAccountFromPrivateKey(priv)
	acc.EncryptedWIF = wif
	return acc, nil
}

func newAccountFromPrivateKey(priv *keys.PrivateKey) *Account {
	pub := priv.PublicKey()
	return &Account{
		Address:    priv.Address(),
		privateKey: priv,
		Contract: &Contract{
			Script: pub.GetVerificationScript(),
			Parameters: []ContractParam{{
				Name: "signature",
				Type: smartcontract.SignatureType,
			}},
		},
	}
}

// PrivateKey returns the account's decrypted key-pair, or nil if
// Decrypt has not (yet, or successfully) been called.
func (a *Account) PrivateKey() *keys.PrivateKey {
	return a.privateKey
}

// Encrypt NEP-2-encrypts the account's in-memory private key under
// passphrase using the given scrypt parameters, populating
// EncryptedWIF; the in-memory key is left untouched.
func (a *Account) Encrypt(passphrase string, params keys.ScryptParams) error {
	if a.privateKey == nil {
		return errors.New("wallet: account has no private key to encrypt")
	}
	wif, err := keys.NEP2EncryptWithParams(a.privateKey, passphrase, params)
	if err != nil {
		return err
	}
	a.EncryptedWIF = wif
	return nil
}

// Decrypt recovers the account's private key from EncryptedWIF under
// passphrase using the default scrypt parameters, caching it in
// memory for subsequent PrivateKey calls.
func (a *Account) Decrypt(passphrase string) error {
	return a.DecryptWithParams(passphrase, keys.NEP2ScryptParams())
}

// DecryptWithParams is Decrypt with explicit scrypt cost parameters.
func (a *Account) DecryptWithParams(passphrase string, params keys.ScryptParams) error {
	if a.EncryptedWIF == "" {
		return errors.New("wallet: account has no encrypted key")
	}
	if a.Locked {
		return errors.New("wallet: account is locked")
	}
	wif, err := keys.NEP2DecryptWithParams(a.EncryptedWIF, passphrase, params)
	if err != nil {
		return err
	}
	priv, err := keys.NewPrivateKeyFromWIF(wif)
	if err != nil {
		return err
	}
	a.privateKey = priv
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (a Account) MarshalJSON() ([]byte, error) {
	var label *string
	if a.Label != "" {
		label = &a.Label
	}
	return json.Marshal(accountAux{
		Address:      a.Address,
		EncryptedWIF: a.EncryptedWIF,
		Label:        label,
		Contract:     a.Contract,
		Locked:       a.Locked,
		Default:      a.Default,
		Extra:        a.Extra,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *Account) UnmarshalJSON(data []byte) error {
	var aux accountAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if _, err := address.StringToUint160(aux.Address); err != nil {
		return errors.New("wallet: invalid account address")
	}
	a.Address = aux.Address
	a.EncryptedWIF = aux.EncryptedWIF
	if aux.Label != nil {
		a.Label = *aux.Label
	}
	a.Contract = aux.Contract
	a.Locked = aux.Locked
	a.Default = aux.Default
	a.Extra = aux.Extra
	return nil
}
