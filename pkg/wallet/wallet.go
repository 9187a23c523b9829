// Package wallet implements the NEP-6 JSON wallet document: an
// ordered set of accounts, each optionally holding a NEP-2-encrypted
// key-pair and its verification contract.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
)

// Version is the NEP-6 document version this package writes.
const Version = "1.0"

// ScryptParams is the scrypt cost record embedded in a NEP-6 document.
type ScryptParams struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

func scryptParamsFromKeys(p keys.ScryptParams) ScryptParams {
	return ScryptParams{N: p.N, R: p.R, P: p.P}
}

func (s ScryptParams) toKeys() keys.ScryptParams {
	return keys.ScryptParams{N: s.N, R: s.R, P: s.P}
}

// Wallet is an in-memory NEP-6 wallet document plus the on-disk path
// it was loaded from (empty for a wallet that has never been saved).
type Wallet struct {
	Name     string          `json:"name"`
	Version  string          `json:"version"`
	Accounts []*Account      `json:"accounts"`
	Scrypt   ScryptParams    `json:"scrypt"`
	Extra    json.RawMessage `json:"extra,omitempty"`

	path string
}

// NewWallet creates an empty wallet that will be written to path on
// the first Save.
func NewWallet(path string) (*Wallet, error) {
	return &Wallet{
		Version:  Version,
		Accounts: []*Account{},
		Scrypt:   scryptParamsFromKeys(keys.NEP2ScryptParams()),
		path:     path,
	}, nil
}

// NewWalletFromFile loads and validates a NEP-6 document from path.
func NewWalletFromFile(path string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	w := &Wallet{}
	if err := json.Unmarshal(data, w); err != nil {
		return nil, err
	}
	w.path = path
	return w, nil
}

type walletAux struct {
	Name     string          `json:"name"`
	Version  string          `json:"version"`
	Accounts []*Account      `json:"accounts"`
	Scrypt   ScryptParams    `json:"scrypt"`
	Extra    json.RawMessage `json:"extra,omitempty"`
}

// UnmarshalJSON implements the json.Unmarshaler interface, validating
// that at most one account is marked default and promoting the first
// account to default when none is marked.
func (w *Wallet) UnmarshalJSON(data []byte) error {
	var aux walletAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Name == "" {
		return errors.New("wallet: missing name")
	}
	if aux.Version == "" {
		return errors.New("wallet: missing version")
	}
	defaults := 0
	for _, acc := range aux.Accounts {
		if acc.Default {
			defaults++
		}
	}
	if defaults > 1 {
		return errors.New("wallet: more than one default account")
	}
	if defaults == 0 && len(aux.Accounts) > 0 {
		aux.Accounts[0].Default = true
	}
	w.Name = aux.Name
	w.Version = aux.Version
	w.Accounts = aux.Accounts
	w.Scrypt = aux.Scrypt
	w.Extra = aux.Extra
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (w Wallet) MarshalJSON() ([]byte, error) {
	accs := w.Accounts
	if accs == nil {
		accs = []*Account{}
	}
	return json.Marshal(walletAux{
		Name:     w.Name,
		Version:  w.Version,
		Accounts: accs,
		Scrypt:   w.Scrypt,
		Extra:    w.Extra,
	})
}

// Path is the filesystem path the wallet was loaded from or will be
// written to by Save.
func (w *Wallet) Path() string {
	return w.path
}

// JSON renders the wallet's current state as its NEP-6 document.
func (w *Wallet) JSON() ([]byte, error) {
	return json.MarshalIndent(w, "", "    ")
}

// Save re-writes the wallet's document to Path.
func (w *Wallet) Save() error {
	if w.path == "" {
		return errors.New("wallet: no path to save to")
	}
	data, err := w.JSON()
	if err != nil {
		return err
	}
	return os.WriteFile(w.path, data, 0644)
}

// AddAccount appends acc to the wallet, marking it default if the
// wallet was empty.
func (w *Wallet) AddAccount(acc *Account) {
	if len(w.Accounts) == 0 {
		acc.Default = true
	}
	w.Accounts = append(w.Accounts, acc)
}

// CreateAccount generates a fresh key-pair, encrypts it under
// passphrase using the wallet's scrypt parameters, sets its label and
// adds it to the wallet.
func (w *Wallet) CreateAccount(label, passphrase string) error {
	acc, err := NewAccount()
	if err != nil {
		return err
	}
	acc.Label = label
	if err := acc.Encrypt(passphrase, w.Scrypt.toKeys()); err != nil {
		return err
	}
	w.AddAccount(acc)
	return nil
}

// RemoveAccount detaches the account with the given address, failing
// if no such account exists. If the removed account was the default,
// the first remaining account (if any) is promoted to default.
func (w *Wallet) RemoveAccount(address string) error {
	for i, acc := range w.Accounts {
		if acc.Address != address {
			continue
		}
		wasDefault := acc.Default
		w.Accounts = append(w.Accounts[:i], w.Accounts[i+1:]...)
		if wasDefault && len(w.Accounts) > 0 {
			w.Accounts[0].Default = true
		}
		return nil
	}
	return fmt.Errorf("wallet: no account with address %s", address)
}

// GetAccount returns the account with the given address, or nil.
func (w *Wallet) GetAccount(address string) *Account {
	for _, acc := range w.Accounts {
		if acc.Address == address {
			return acc
		}
	}
	return nil
}

// GetDefaultAccount returns the wallet's default account, or nil if
// the wallet has none.
func (w *Wallet) GetDefaultAccount() *Account {
	for _, acc := range w.Accounts {
		if acc.Default {
			return acc
		}
	}
	return nil
}
