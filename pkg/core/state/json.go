package state

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/vmstate"
)

var errNotArrayState = errors.New("state: notification state is not an array")

func marshalStackItem(item stackitem.Item) (json.RawMessage, error) {
	if item == nil {
		item = stackitem.Null{}
	}
	return stackitem.ToJSONWithType(item)
}

func unmarshalStackItem(data json.RawMessage) (stackitem.Item, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return stackitem.FromJSONWithType(data)
}

func marshalStack(stack []stackitem.Item) (json.RawMessage, error) {
	envs := make([]json.RawMessage, len(stack))
	for i, it := range stack {
		b, err := marshalStackItem(it)
		if err != nil {
			return nil, err
		}
		envs[i] = b
	}
	return json.Marshal(envs)
}

func unmarshalStack(data json.RawMessage) ([]stackitem.Item, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var envs []json.RawMessage
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, err
	}
	items := make([]stackitem.Item, len(envs))
	for i, env := range envs {
		it, err := unmarshalStackItem(env)
		if err != nil {
			return nil, err
		}
		items[i] = it
	}
	return items, nil
}

type appExecResultAux struct {
	Container      util.Uint256        `json:"container"`
	Trigger        trigger.Type        `json:"trigger"`
	VMState        vmstate.State       `json:"vmstate"`
	GasConsumed    string              `json:"gasconsumed"`
	Stack          json.RawMessage     `json:"stack,omitempty"`
	FaultException *string             `json:"exception"`
	Notifications  []NotificationEvent `json:"notifications"`
}

// MarshalJSON implements the json.Marshaler interface.
func (a AppExecResult) MarshalJSON() ([]byte, error) {
	stackJSON, err := marshalStack(a.Stack)
	if err != nil {
		return nil, err
	}
	var exc *string
	if a.FaultException != "" {
		exc = &a.FaultException
	}
	notifications := a.Events
	if notifications == nil {
		notifications = []NotificationEvent{}
	}
	return json.Marshal(appExecResultAux{
		Container:      a.Container,
		Trigger:        a.Trigger,
		VMState:        a.VMState,
		GasConsumed:    strconv.FormatInt(a.GasConsumed, 10),
		Stack:          stackJSON,
		FaultException: exc,
		Notifications:  notifications,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *AppExecResult) UnmarshalJSON(data []byte) error {
	var aux appExecResultAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	gas, err := strconv.ParseInt(aux.GasConsumed, 10, 64)
	if err != nil {
		return err
	}
	stack, err := unmarshalStack(aux.Stack)
	if err != nil {
		return err
	}
	a.Container = aux.Container
	a.Trigger = aux.Trigger
	a.VMState = aux.VMState
	a.GasConsumed = gas
	a.Stack = stack
	if aux.FaultException != nil {
		a.FaultException = *aux.FaultException
	}
	a.Events = aux.Notifications
	return nil
}
