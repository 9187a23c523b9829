// Package state describes the execution results a node reports after
// running a transaction or block-level trigger: emitted notifications
// and the overall outcome of a single invocation.
package state

import (
	"encoding/json"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/vmstate"
)

// NotificationEvent represents a single notification (a contract's
// call to System.Runtime.Notify) observed during an invocation.
type NotificationEvent struct {
	ScriptHash util.Uint160
	Name       string
	Item       *stackitem.Array
}

type notificationEventAux struct {
	Contract util.Uint160    `json:"contract"`
	Name     string          `json:"eventname"`
	Item     json.RawMessage `json:"state"`
}

// MarshalJSON implements the json.Marshaler interface.
func (e NotificationEvent) MarshalJSON() ([]byte, error) {
	item, err := marshalStackItem(e.Item)
	if err != nil {
		return nil, err
	}
	return json.Marshal(notificationEventAux{
		Contract: e.ScriptHash,
		Name:     e.Name,
		Item:     item,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (e *NotificationEvent) UnmarshalJSON(data []byte) error {
	var aux notificationEventAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	item, err := unmarshalStackItem(aux.Item)
	if err != nil {
		return err
	}
	arr, ok := item.(*stackitem.Array)
	if !ok {
		return errNotArrayState
	}
	e.ScriptHash = aux.Contract
	e.Name = aux.Name
	e.Item = arr
	return nil
}

// Execution carries the outcome of a single trigger invocation: which
// trigger ran, how it ended, what it left on the stack and what it
// emitted along the way.
type Execution struct {
	Trigger        trigger.Type
	VMState        vmstate.State
	GasConsumed    int64
	Stack          []stackitem.Item
	Events         []NotificationEvent
	FaultException string
}

// AppExecResult bundles an Execution with the hash of the container
// (transaction or block) it ran for, the shape the reference node's
// getapplicationlog response groups per trigger.
type AppExecResult struct {
	Container util.Uint256
	Execution
}
