package transaction

import (
	"crypto/rand"
	"encoding/binary"
	"errors"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/emit"
)

// builderState tracks a Builder's progress through the
// Empty -> Configured -> Built -> Signed lifecycle, rejecting calls
// made out of order with ErrInvalidState.
type builderState int

const (
	stateEmpty builderState = iota
	stateConfigured
	stateBuilt
	stateSigned
)

// ErrInvalidState is returned when a Builder method is called in a
// state that doesn't support it.
var ErrInvalidState = errors.New("transaction: invalid builder state for this operation")

// Builder assembles a Transaction field by field: Empty, once a script
// and at least one signer are set, becomes Configured; Configured,
// once ValidUntilBlock and non-negative fees are set, becomes Built;
// Built, once at least one witness is attached, becomes Signed.
type Builder struct {
	tx    Transaction
	state builderState
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetVersion sets the transaction version (usually 0).
func (b *Builder) SetVersion(v uint8) *Builder {
	b.tx.Version = v
	return b
}

// SetNonce sets the transaction nonce explicitly; without a call to
// this, Build fills in a uniformly random one.
func (b *Builder) SetNonce(n uint32) *Builder {
	b.tx.Nonce = n
	return b
}

// SetSystemFee sets the GAS system fee, in fractions of 1e-8 GAS.
func (b *Builder) SetSystemFee(fee int64) *Builder {
	b.tx.SystemFee = fee
	return b
}

// SetNetworkFee sets the GAS network fee. It may be left at 0 and
// filled in later from an RPC node's calculatenetworkfee result before
// Build is called.
func (b *Builder) SetNetworkFee(fee int64) *Builder {
	b.tx.NetworkFee = fee
	return b
}

// SetValidUntilBlock sets the block height after which the
// transaction can no longer be included.
func (b *Builder) SetValidUntilBlock(height uint32) *Builder {
	b.tx.ValidUntilBlock = height
	return b
}

// SetScript sets the transaction's invocation script. Combined with at
// least one signer, this moves the builder from Empty to Configured.
func (b *Builder) SetScript(script []byte) *Builder {
	b.tx.Script = script
	b.advanceToConfigured()
	return b
}

// AddAttribute appends an attribute, failing if 16 are already
// present or a second HighPriority is added.
func (b *Builder) AddAttribute(attr Attribute) error {
	if len(b.tx.Attributes) >= MaxAttributes {
		return errors.New("transaction: too many attributes")
	}
	if attr.Type == HighPriorityT {
		for _, a := range b.tx.Attributes {
			if a.Type == HighPriorityT {
				return errors.New("transaction: HighPriority attribute already present")
			}
		}
	}
	b.tx.Attributes = append(b.tx.Attributes, attr)
	return nil
}

// AddSigner appends a signer, rejecting a duplicate account. The first
// signer added is the transaction's sender. Combined with a script,
// this moves the builder from Empty to Configured.
func (b *Builder) AddSigner(s Signer) error {
	if len(b.tx.Signers) >= MaxSigners {
		return errors.New("transaction: too many signers")
	}
	for _, existing := range b.tx.Signers {
		if existing.Account == s.Account {
			return errors.New("transaction: duplicate signer account")
		}
	}
	b.tx.Signers = append(b.tx.Signers, s)
	b.advanceToConfigured()
	return nil
}

func (b *Builder) advanceToConfigured() {
	if b.state == stateEmpty && len(b.tx.Script) > 0 && len(b.tx.Signers) > 0 {
		b.state = stateConfigured
	}
}

// Build finalizes field validation and moves the builder from
// Configured to Built, filling in a random Nonce if one was never set.
// The transaction is usable (hashable, submittable as a standalone
// invocation) once Built but carries no witnesses yet.
func (b *Builder) Build() (*Transaction, error) {
	if b.state != stateConfigured {
		return nil, ErrInvalidState
	}
	if len(b.tx.Script) == 0 {
		return nil, errors.New("transaction: script is required")
	}
	if len(b.tx.Signers) == 0 {
		return nil, errors.New("transaction: at least one signer is required")
	}
	if b.tx.ValidUntilBlock == 0 {
		return nil, errors.New("transaction: validUntilBlock is required")
	}
	if b.tx.SystemFee < 0 || b.tx.NetworkFee < 0 {
		return nil, errors.New("transaction: fees must be non-negative")
	}
	if b.tx.Nonce == 0 {
		var buf [4]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, err
		}
		b.tx.Nonce = binary.LittleEndian.Uint32(buf[:])
	}
	b.state = stateBuilt
	return &b.tx, nil
}

// Sign walks the transaction's signers in order, finds the matching
// entry in accounts (by script hash), builds a single-signature
// witness for it and appends it. It requires a Built transaction and
// leaves the builder Signed once every signer has a witness.
func (b *Builder) Sign(net uint32, accounts map[string]*keys.PrivateKey) (*Transaction, error) {
	if b.state != stateBuilt && b.state != stateSigned {
		return nil, ErrInvalidState
	}
	witnesses := make([]Witness, 0, len(b.tx.Signers))
	for _, s := range b.tx.Signers {
		priv, ok := accounts[s.Account.StringLE()]
		if !ok {
			return nil, errors.New("transaction: no account available for signer " + s.Account.StringLE())
		}
		sig := priv.SignHashable(net, &b.tx)
		bw := io.NewBufBinWriter()
		emit.Bytes(bw.BinWriter, sig)
		if bw.Err != nil {
			return nil, bw.Err
		}
		witnesses = append(witnesses, Witness{
			InvocationScript:   bw.Bytes(),
			VerificationScript: priv.PublicKey().GetVerificationScript(),
		})
	}
	b.tx.Scripts = witnesses
	b.tx.hashValid = false
	b.state = stateSigned
	return &b.tx, nil
}
