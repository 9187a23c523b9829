package context

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/config/netmode"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/emit"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/wallet"
)

// Verifiable is anything a ParameterContext can collect witnesses for:
// a payload with an identifying hash that can also serialize itself to
// bytes for storage in the context document. *transaction.Transaction
// satisfies it.
type Verifiable interface {
	hash.Hashable
	io.Serializable
}

// ParameterContext accumulates the signatures a multi-party signing
// flow collects for a Verifiable payload, one Item per distinct
// verification script involved, until each has enough to produce a
// final Witness.
type ParameterContext struct {
	Type       string
	Network    netmode.Magic
	Verifiable Verifiable
	Items      map[util.Uint160]*Item

	scripts map[util.Uint160][]byte
}

// NewParameterContext creates an empty ParameterContext for signing
// verifiable under network, tagging the document with typ (the
// verifiable payload's type name, as recorded in the saved document).
func NewParameterContext(typ string, network netmode.Magic, verifiable Verifiable) *ParameterContext {
	return &ParameterContext{
		Type:       typ,
		Network:    network,
		Verifiable: verifiable,
		Items:      make(map[util.Uint160]*Item),
		scripts:    make(map[util.Uint160][]byte),
	}
}

// AddSignature records sig, produced by pub, as satisfying one
// parameter of contract's verification script (identified by
// scriptHash, contract's own script hash). It validates that contract
// has the parameter count a signature contract of its kind expects,
// that pub actually takes part in it, and that this (key, script)
// pair hasn't already been signed.
func (c *ParameterContext) AddSignature(scriptHash util.Uint160, contract *wallet.Contract, pub *keys.PublicKey, sig []byte) error {
	if single, ok := ParseSignatureContract(contract.Script); ok {
		if len(contract.Parameters) != 1 {
			return fmt.Errorf("context: signature contract must have exactly one parameter, got %d", len(contract.Parameters))
		}
		if !single.Equal(pub) {
			return errors.New("context: public key does not match the contract")
		}
		item := c.getOrCreateItem(scriptHash, contract, 1)
		if item.Parameters[0].Value != nil {
			return errors.New("context: signature already exists")
		}
		item.Parameters[0].Value = sig
		item.AddSignature(pub, sig)
		return nil
	}
	if m, pubs, ok := ParseMultiSigContract(contract.Script); ok {
		if len(contract.Parameters) != m {
			return fmt.Errorf("context: multisig contract expects %d parameters, got %d", m, len(contract.Parameters))
		}
		if !pubs.Contains(pub) {
			return errors.New("context: public key is not a member of the multisig group")
		}
		item := c.getOrCreateItem(scriptHash, contract, len(contract.Parameters))
		if item.GetSignature(pub) != nil {
			return errors.New("context: signature already exists")
		}
		item.AddSignature(pub, sig)
		return nil
	}
	return errors.New("context: unsupported contract type")
}

func (c *ParameterContext) getOrCreateItem(scriptHash util.Uint160, contract *wallet.Contract, numParams int) *Item {
	if item, ok := c.Items[scriptHash]; ok {
		return item
	}
	params := make([]smartcontract.Parameter, numParams)
	for i := range params {
		params[i] = smartcontract.Parameter{Type: smartcontract.SignatureType}
	}
	item := &Item{Script: scriptHash, Parameters: params}
	c.Items[scriptHash] = item
	c.scripts[scriptHash] = contract.Script
	return item
}

// GetWitness assembles the final Witness for scriptHash once enough
// signatures have been collected for it, failing if no AddSignature
// call has touched this script yet or too few signatures are in.
func (c *ParameterContext) GetWitness(scriptHash util.Uint160) (*transaction.Witness, error) {
	item, ok := c.Items[scriptHash]
	if !ok {
		return nil, fmt.Errorf("context: no item for script hash %s", scriptHash.StringLE())
	}
	script := c.scripts[scriptHash]
	bw := io.NewBufBinWriter()
	if _, ok := ParseSignatureContract(script); ok {
		sig, ok := item.Parameters[0].Value.([]byte)
		if !ok {
			return nil, errors.New("context: not signed yet")
		}
		emit.Bytes(bw.BinWriter, sig)
	} else if m, pubs, ok := ParseMultiSigContract(script); ok {
		var sigs [][]byte
		for _, pub := range pubs {
			if sig := item.GetSignature(pub); sig != nil {
				sigs = append(sigs, sig)
				if len(sigs) == m {
					break
				}
			}
		}
		if len(sigs) < m {
			return nil, fmt.Errorf("context: not enough signatures: have %d, need %d", len(sigs), m)
		}
		for _, sig := range sigs {
			emit.Bytes(bw.BinWriter, sig)
		}
	} else {
		return nil, errors.New("context: unsupported contract type")
	}
	if bw.Err != nil {
		return nil, bw.Err
	}
	return &transaction.Witness{
		InvocationScript:   bw.Bytes(),
		VerificationScript: script,
	}, nil
}

type parameterContextAux struct {
	Type    string           `json:"type"`
	Network netmode.Magic    `json:"network"`
	Data    string           `json:"data"`
	Items   map[string]*Item `json:"items"`
}

// MarshalJSON implements the json.Marshaler interface.
func (c ParameterContext) MarshalJSON() ([]byte, error) {
	bw := io.NewBufBinWriter()
	c.Verifiable.EncodeBinary(bw.BinWriter)
	if bw.Err != nil {
		return nil, bw.Err
	}
	data := bw.Bytes()
	items := make(map[string]*Item, len(c.Items))
	for h, it := range c.Items {
		items[h.StringLE()] = it
	}
	return json.Marshal(parameterContextAux{
		Type:    c.Type,
		Network: c.Network,
		Data:    base64.StdEncoding.EncodeToString(data),
		Items:   items,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface. The
// verifiable payload is always decoded as a *transaction.Transaction,
// the only Verifiable this SDK builds contexts for.
func (c *ParameterContext) UnmarshalJSON(data []byte) error {
	var aux parameterContextAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	raw, err := base64.StdEncoding.DecodeString(aux.Data)
	if err != nil {
		return err
	}
	tx, err := transaction.NewTransactionFromBytes(raw)
	if err != nil {
		return err
	}
	items := make(map[util.Uint160]*Item, len(aux.Items))
	for s, it := range aux.Items {
		h, err := util.Uint160DecodeStringLE(s)
		if err != nil {
			return err
		}
		items[h] = it
	}
	c.Type = aux.Type
	c.Network = aux.Network
	c.Verifiable = tx
	c.Items = items
	c.scripts = make(map[util.Uint160][]byte)
	return nil
}
