package transaction

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// MaxConditionDepth is the maximum nesting depth of a WitnessCondition
// tree (a top-level And/Or may only contain leaves or one further
// level of composites).
const MaxConditionDepth = 2

// MaxSubConditions is the maximum element count of an And/Or list.
const MaxSubConditions = 16

// ConditionType identifies the shape of a WitnessCondition.
type ConditionType byte

// Condition type tags, matching the wire encoding's leading byte.
const (
	BooleanCondition          ConditionType = 0x00
	NotCondition              ConditionType = 0x01
	AndCondition              ConditionType = 0x02
	OrCondition               ConditionType = 0x03
	ScriptHashCondition       ConditionType = 0x18
	GroupCondition            ConditionType = 0x19
	CalledByEntryCondition    ConditionType = 0x20
	CalledByContractCondition ConditionType = 0x28
	CalledByGroupCondition    ConditionType = 0x29
)

// WitnessCondition is the tagged union a WitnessRule tests an
// invocation against.
type WitnessCondition interface {
	Type() ConditionType
	EncodeBinary(w *io.BinWriter)
}

// DecodeConditionBinary reads a WitnessCondition of any shape,
// recursing at most depth times to cap the tree's nesting.
func DecodeConditionBinary(r *io.BinReader, depth int) WitnessCondition {
	if r.Err != nil {
		return nil
	}
	if depth > MaxConditionDepth {
		r.Err = errors.New("transaction: witness condition nesting too deep")
		return nil
	}
	t := ConditionType(r.ReadB())
	if r.Err != nil {
		return nil
	}
	switch t {
	case BooleanCondition:
		return &ConditionBoolean{Value: r.ReadBool()}
	case NotCondition:
		return &ConditionNot{Condition: DecodeConditionBinary(r, depth+1)}
	case AndCondition:
		return &ConditionAnd{Conditions: decodeConditionList(r, depth)}
	case OrCondition:
		return &ConditionOr{Conditions: decodeConditionList(r, depth)}
	case ScriptHashCondition:
		var h util.Uint160
		h.DecodeBinary(r)
		return &ConditionScriptHash{Hash: h}
	case GroupCondition:
		pub := &keys.PublicKey{}
		pub.DecodeBinary(r)
		return &ConditionGroup{Group: pub}
	case CalledByEntryCondition:
		return &ConditionCalledByEntry{}
	case CalledByContractCondition:
		var h util.Uint160
		h.DecodeBinary(r)
		return &ConditionCalledByContract{Hash: h}
	case CalledByGroupCondition:
		pub := &keys.PublicKey{}
		pub.DecodeBinary(r)
		return &ConditionCalledByGroup{Group: pub}
	default:
		r.Err = fmt.Errorf("transaction: unknown witness condition type 0x%x", byte(t))
		return nil
	}
}

func decodeConditionList(r *io.BinReader, depth int) []WitnessCondition {
	n := r.ReadVarUint()
	if r.Err != nil {
		return nil
	}
	if n > MaxSubConditions {
		r.Err = errors.New("transaction: too many witness sub-conditions")
		return nil
	}
	list := make([]WitnessCondition, n)
	for i := range list {
		list[i] = DecodeConditionBinary(r, depth+1)
		if r.Err != nil {
			return nil
		}
	}
	return list
}

func encodeConditionList(w *io.BinWriter, list []WitnessCondition) {
	w.WriteVarUint(uint64(len(list)))
	for _, c := range list {
		c.EncodeBinary(w)
	}
}

// ConditionBoolean is a constant true/false leaf.
type ConditionBoolean struct{ Value bool }

// Type implements WitnessCondition.
func (c *ConditionBoolean) Type() ConditionType { return BooleanCondition }

// EncodeBinary implements WitnessCondition.
func (c *ConditionBoolean) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(BooleanCondition))
	w.WriteBool(c.Value)
}

// ConditionNot negates a sub-condition.
type ConditionNot struct{ Condition WitnessCondition }

// Type implements WitnessCondition.
func (c *ConditionNot) Type() ConditionType { return NotCondition }

// EncodeBinary implements WitnessCondition.
func (c *ConditionNot) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(NotCondition))
	c.Condition.EncodeBinary(w)
}

// ConditionAnd requires every sub-condition to hold.
type ConditionAnd struct{ Conditions []WitnessCondition }

// Type implements WitnessCondition.
func (c *ConditionAnd) Type() ConditionType { return AndCondition }

// EncodeBinary implements WitnessCondition.
func (c *ConditionAnd) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(AndCondition))
	encodeConditionList(w, c.Conditions)
}

// ConditionOr requires at least one sub-condition to hold.
type ConditionOr struct{ Conditions []WitnessCondition }

// Type implements WitnessCondition.
func (c *ConditionOr) Type() ConditionType { return OrCondition }

// EncodeBinary implements WitnessCondition.
func (c *ConditionOr) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(OrCondition))
	encodeConditionList(w, c.Conditions)
}

// ConditionScriptHash matches an invocation whose calling script hash
// equals Hash.
type ConditionScriptHash struct{ Hash util.Uint160 }

// Type implements WitnessCondition.
func (c *ConditionScriptHash) Type() ConditionType { return ScriptHashCondition }

// EncodeBinary implements WitnessCondition.
func (c *ConditionScriptHash) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(ScriptHashCondition))
	c.Hash.EncodeBinary(w)
}

// ConditionGroup matches an invocation whose calling contract belongs
// to Group.
type ConditionGroup struct{ Group *keys.PublicKey }

// Type implements WitnessCondition.
func (c *ConditionGroup) Type() ConditionType { return GroupCondition }

// EncodeBinary implements WitnessCondition.
func (c *ConditionGroup) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(GroupCondition))
	c.Group.EncodeBinary(w)
}

// ConditionCalledByEntry matches when the invocation chain's entry
// equals the signer's own script (the CalledByEntry scope's condition
// form, usable inside a WitnessRule).
type ConditionCalledByEntry struct{}

// Type implements WitnessCondition.
func (c *ConditionCalledByEntry) Type() ConditionType { return CalledByEntryCondition }

// EncodeBinary implements WitnessCondition.
func (c *ConditionCalledByEntry) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(CalledByEntryCondition))
}

// ConditionCalledByContract matches an invocation directly called by
// the contract identified by Hash.
type ConditionCalledByContract struct{ Hash util.Uint160 }

// Type implements WitnessCondition.
func (c *ConditionCalledByContract) Type() ConditionType { return CalledByContractCondition }

// EncodeBinary implements WitnessCondition.
func (c *ConditionCalledByContract) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(CalledByContractCondition))
	c.Hash.EncodeBinary(w)
}

// ConditionCalledByGroup matches an invocation directly called by a
// contract belonging to Group.
type ConditionCalledByGroup struct{ Group *keys.PublicKey }

// Type implements WitnessCondition.
func (c *ConditionCalledByGroup) Type() ConditionType { return CalledByGroupCondition }

// EncodeBinary implements WitnessCondition.
func (c *ConditionCalledByGroup) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(CalledByGroupCondition))
	c.Group.EncodeBinary(w)
}
