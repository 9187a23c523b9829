// Package transaction implements the Neo N3 transaction model: the
// signed payload shape, its signers and witnesses, and the attribute
// and witness-scope types that qualify them.
package transaction

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// Bounds the spec places on a transaction's variable-length fields.
const (
	MaxAttributes       = 16
	MaxSigners          = 16
	MaxScriptLength     = 65535
	MaxTransactionSize  = 102400
	DefaultValidUntilBlockIncrement = 5760
)

// Transaction is a signed Neo N3 transaction: the fields that hash to
// its identity, plus the witnesses proving every signer authorized it.
type Transaction struct {
	Version         uint8
	Nonce           uint32
	SystemFee       int64
	NetworkFee      int64
	ValidUntilBlock uint32
	Signers         []Signer
	Attributes      []Attribute
	Script          []byte
	Scripts         []Witness

	hash      util.Uint256
	hashValid bool
	size      int
}

// New creates an unsigned transaction running script, with the given
// system fee; every other field is left at its zero value for the
// caller (or a TransactionBuilder) to fill in.
func New(script []byte, systemFee int64) *Transaction {
	return &Transaction{
		Script:    script,
		SystemFee: systemFee,
	}
}

// Hash returns the transaction's identifying hash, computed over its
// signed payload (every field except Scripts) and cached after first
// use; the cache is invalidated by any call to DecodeBinary.
func (t *Transaction) Hash() util.Uint256 {
	if !t.hashValid {
		data := t.signedPart()
		t.hash = hash.DoubleSha256(data)
		t.hashValid = true
	}
	return t.hash
}

// Size returns the length in bytes of the transaction's full wire
// encoding, signers, attributes and witnesses included.
func (t *Transaction) Size() int {
	if t.size == 0 {
		bw := io.NewBufBinWriter()
		t.EncodeBinary(bw.BinWriter)
		t.size = len(bw.Bytes())
	}
	return t.size
}

func (t *Transaction) signedPart() []byte {
	bw := io.NewBufBinWriter()
	t.encodeSignedPart(bw.BinWriter)
	return bw.Bytes()
}

func (t *Transaction) encodeSignedPart(w *io.BinWriter) {
	w.WriteB(t.Version)
	w.WriteU32LE(t.Nonce)
	w.WriteU64LE(uint64(t.SystemFee))
	w.WriteU64LE(uint64(t.NetworkFee))
	w.WriteU32LE(t.ValidUntilBlock)
	w.WriteArray(t.Signers)
	w.WriteArray(t.Attributes)
	w.WriteVarBytes(t.Script)
}

// EncodeBinary implements the io.Serializable interface, writing the
// transaction's full wire form: signed fields followed by witnesses.
func (t *Transaction) EncodeBinary(w *io.BinWriter) {
	t.encodeSignedPart(w)
	w.WriteArray(t.Scripts)
}

// DecodeBinary implements the io.Serializable interface.
func (t *Transaction) DecodeBinary(r *io.BinReader) {
	t.Version = r.ReadB()
	t.Nonce = r.ReadU32LE()
	t.SystemFee = int64(r.ReadU64LE())
	t.NetworkFee = int64(r.ReadU64LE())
	t.ValidUntilBlock = r.ReadU32LE()
	r.ReadArray(&t.Signers, MaxSigners)
	r.ReadArray(&t.Attributes, MaxAttributes)
	t.Script = r.ReadVarBytes(MaxScriptLength)
	if r.Err != nil {
		return
	}
	if len(t.Script) == 0 {
		r.Err = errors.New("transaction: empty script")
		return
	}
	r.ReadArray(&t.Scripts, MaxSigners)
	if r.Err != nil {
		return
	}
	if err := t.validate(); err != nil {
		r.Err = err
		return
	}
	t.hashValid = false
}

func (t *Transaction) validate() error {
	if len(t.Signers) == 0 {
		return errors.New("transaction: at least one signer is required")
	}
	seen := make(map[util.Uint160]bool, len(t.Signers))
	for _, s := range t.Signers {
		if seen[s.Account] {
			return fmt.Errorf("transaction: duplicate signer account %s", s.Account.StringLE())
		}
		seen[s.Account] = true
	}
	highPriority := 0
	for _, a := range t.Attributes {
		if a.Type == HighPriorityT {
			highPriority++
		}
	}
	if highPriority > 1 {
		return errors.New("transaction: at most one HighPriority attribute is allowed")
	}
	if len(t.Scripts) != 0 && len(t.Scripts) != len(t.Signers) {
		return errors.New("transaction: witness count must match signer count once signed")
	}
	return nil
}

// Sender is the account of the transaction's first signer, the one
// that pays the fees.
func (t *Transaction) Sender() util.Uint160 {
	if len(t.Signers) == 0 {
		return util.Uint160{}
	}
	return t.Signers[0].Account
}

type transactionAux struct {
	Hash            string      `json:"hash"`
	Size            int         `json:"size"`
	Version         uint8       `json:"version"`
	Nonce           uint32      `json:"nonce"`
	Sender          string      `json:"sender"`
	SystemFee       string      `json:"sysfee"`
	NetworkFee      string      `json:"netfee"`
	ValidUntilBlock uint32      `json:"validuntilblock"`
	Signers         []Signer    `json:"signers"`
	Attributes      []Attribute `json:"attributes"`
	Script          string      `json:"script"`
	Witnesses       []Witness   `json:"witnesses"`
}

// MarshalJSON implements the json.Marshaler interface, matching the
// shape the reference node's JSON-RPC server returns for a
// transaction.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	h := t.Hash()
	return json.Marshal(transactionAux{
		Hash:            "0x" + h.StringLE(),
		Size:            t.Size(),
		Version:         t.Version,
		Nonce:           t.Nonce,
		Sender:          "0x" + t.Sender().StringLE(),
		SystemFee:       fmt.Sprintf("%d", t.SystemFee),
		NetworkFee:      fmt.Sprintf("%d", t.NetworkFee),
		ValidUntilBlock: t.ValidUntilBlock,
		Signers:         t.Signers,
		Attributes:      t.Attributes,
		Script:          base64.StdEncoding.EncodeToString(t.Script),
		Witnesses:       t.Scripts,
	})
}

// Bytes returns the transaction's full wire encoding, witnesses
// included, as produced by EncodeBinary.
func (t *Transaction) Bytes() []byte {
	bw := io.NewBufBinWriter()
	t.EncodeBinary(bw.BinWriter)
	if bw.Err != nil {
		return nil
	}
	return bw.Bytes()
}

// NewTransactionFromBytes decodes a Transaction from its full wire
// encoding, as produced by Bytes.
func NewTransactionFromBytes(b []byte) (*Transaction, error) {
	tx := &Transaction{}
	r := io.NewBinReaderFromBuf(b)
	tx.DecodeBinary(r)
	if r.Err != nil {
		return nil, r.Err
	}
	return tx, nil
}
