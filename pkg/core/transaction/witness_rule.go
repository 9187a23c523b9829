package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
)

// WitnessRuleAction says whether a matching WitnessCondition allows or
// denies the witness.
type WitnessRuleAction byte

const (
	// WitnessRuleDeny rejects the witness when its condition matches.
	WitnessRuleDeny WitnessRuleAction = 0
	// WitnessRuleAllow accepts the witness when its condition matches.
	WitnessRuleAllow WitnessRuleAction = 1
)

// WitnessRule pairs an action with the condition that triggers it; a
// signer scoped by WitnessRules is authorized for an invocation if the
// first rule whose condition matches has action Allow.
type WitnessRule struct {
	Action    WitnessRuleAction
	Condition WitnessCondition
}

// EncodeBinary implements the io.Serializable interface.
func (r *WitnessRule) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(r.Action))
	r.Condition.EncodeBinary(w)
}

// DecodeBinary implements the io.Serializable interface.
func (r *WitnessRule) DecodeBinary(br *io.BinReader) {
	action := br.ReadB()
	if br.Err != nil {
		return
	}
	if action != byte(WitnessRuleDeny) && action != byte(WitnessRuleAllow) {
		br.Err = fmt.Errorf("transaction: invalid witness rule action %d", action)
		return
	}
	r.Action = WitnessRuleAction(action)
	r.Condition = DecodeConditionBinary(br, 0)
}

func (a WitnessRuleAction) String() string {
	if a == WitnessRuleAllow {
		return "Allow"
	}
	return "Deny"
}

// MarshalJSON implements the json.Marshaler interface.
func (r WitnessRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Action    string           `json:"action"`
		Condition WitnessCondition `json:"condition"`
	}{r.Action.String(), r.Condition})
}

func conditionTypeName(t ConditionType) string {
	switch t {
	case BooleanCondition:
		return "Boolean"
	case NotCondition:
		return "Not"
	case AndCondition:
		return "And"
	case OrCondition:
		return "Or"
	case ScriptHashCondition:
		return "ScriptHash"
	case GroupCondition:
		return "Group"
	case CalledByEntryCondition:
		return "CalledByEntry"
	case CalledByContractCondition:
		return "CalledByContract"
	case CalledByGroupCondition:
		return "CalledByGroup"
	default:
		return "Unknown"
	}
}

// MarshalJSON implements the json.Marshaler interface for every
// concrete WitnessCondition, each contributing its own extra field (or
// none, for the two argument-less leaves) alongside the type name.
func (c *ConditionBoolean) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value bool   `json:"value"`
	}{conditionTypeName(c.Type()), c.Value})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionNot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string           `json:"type"`
		Condition WitnessCondition `json:"expression"`
	}{conditionTypeName(c.Type()), c.Condition})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionAnd) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string             `json:"type"`
		Conditions []WitnessCondition `json:"expressions"`
	}{conditionTypeName(c.Type()), c.Conditions})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionOr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string             `json:"type"`
		Conditions []WitnessCondition `json:"expressions"`
	}{conditionTypeName(c.Type()), c.Conditions})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionScriptHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Hash string `json:"hash"`
	}{conditionTypeName(c.Type()), "0x" + c.Hash.StringLE()})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Group string `json:"group"`
	}{conditionTypeName(c.Type()), c.Group.String()})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionCalledByEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{conditionTypeName(c.Type())})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionCalledByContract) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Hash string `json:"hash"`
	}{conditionTypeName(c.Type()), "0x" + c.Hash.StringLE()})
}

// MarshalJSON implements the json.Marshaler interface.
func (c *ConditionCalledByGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Group string `json:"group"`
	}{conditionTypeName(c.Type()), c.Group.String()})
}
