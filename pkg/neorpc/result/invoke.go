package result

import (
	"encoding/base64"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/core/state"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/stackitem"
)

// Invoke is the result of an invokefunction/invokescript/invokecontractverify
// RPC call, or the synthesized equivalent of an already-applied
// transaction's execution (see AppExecToInvocation).
type Invoke struct {
	State          string
	GasConsumed    int64
	Script         []byte
	Stack          []stackitem.Item
	FaultException string
	Notifications  []state.NotificationEvent
	Transaction    *transaction.Transaction
	Diagnostics    *InvokeDiag
	Session        uuid.UUID
}

// InvokeDiag carries optional per-invocation diagnostic detail a node
// may attach to an Invoke when diagnostics were requested.
type InvokeDiag struct {
	Invocations []InvocationTree `json:"invokedcontracts"`
	Changes     []StorageChange  `json:"storagechanges"`
}

// InvocationTree describes one contract call and its nested calls,
// mirroring the call graph a diagnostic-enabled invocation produced.
type InvocationTree struct {
	Call  string           `json:"call"`
	Calls []InvocationTree `json:"calls,omitempty"`
}

// StorageChange describes a single storage write observed during a
// diagnostic-enabled invocation.
type StorageChange struct {
	State string `json:"state"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

type invokeAux struct {
	State          string                    `json:"state"`
	GasConsumed    string                    `json:"gasconsumed"`
	Script         string                    `json:"script,omitempty"`
	Stack          json.RawMessage           `json:"stack,omitempty"`
	FaultException *string                   `json:"exception"`
	Notifications  []state.NotificationEvent `json:"notifications"`
	Transaction    string                    `json:"tx,omitempty"`
	Diagnostics    *InvokeDiag               `json:"diagnostics,omitempty"`
	Session        string                    `json:"session,omitempty"`
}

func marshalStack(stack []stackitem.Item) (json.RawMessage, error) {
	envs := make([]json.RawMessage, len(stack))
	for i, it := range stack {
		b, err := stackitem.ToJSONWithType(it)
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
		it, err := stackitem.FromJSONWithType(env)
		if err != nil {
			return nil, err
		}
		items[i] = it
	}
	return items, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (r Invoke) MarshalJSON() ([]byte, error) {
	stackJSON, err := marshalStack(r.Stack)
	if err != nil {
		return nil, err
	}
	var exc *string
	if r.FaultException != "" {
		exc = &r.FaultException
	}
	notifications := r.Notifications
	if notifications == nil {
		notifications = []state.NotificationEvent{}
	}
	var scriptB64, txB64, sessionStr string
	if r.Script != nil {
		scriptB64 = base64.StdEncoding.EncodeToString(r.Script)
	}
	if r.Transaction != nil {
		txB64 = base64.StdEncoding.EncodeToString(r.Transaction.Bytes())
	}
	if r.Session != (uuid.UUID{}) {
		sessionStr = r.Session.String()
	}
	return json.Marshal(invokeAux{
		State:          r.State,
		GasConsumed:    strconv.FormatInt(r.GasConsumed, 10),
		Script:         scriptB64,
		Stack:          stackJSON,
		FaultException: exc,
		Notifications:  notifications,
		Transaction:    txB64,
		Diagnostics:    r.Diagnostics,
		Session:        sessionStr,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *Invoke) UnmarshalJSON(data []byte) error {
	var aux invokeAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var gas int64
	if aux.GasConsumed != "" {
		v, err := strconv.ParseInt(aux.GasConsumed, 10, 64)
		if err != nil {
			return err
		}
		gas = v
	}
	stack, err := unmarshalStack(aux.Stack)
	if err != nil {
		return err
	}
	var script []byte
	if aux.Script != "" {
		script, err = base64.StdEncoding.DecodeString(aux.Script)
		if err != nil {
			return err
		}
	}
	var tx *transaction.Transaction
	if aux.Transaction != "" {
		b, err := base64.StdEncoding.DecodeString(aux.Transaction)
		if err != nil {
			return err
		}
		tx, err = transaction.NewTransactionFromBytes(b)
		if err != nil {
			return err
		}
	}
	var session uuid.UUID
	if aux.Session != "" {
		session, err = uuid.Parse(aux.Session)
		if err != nil {
			return err
		}
	}
	r.State = aux.State
	r.GasConsumed = gas
	r.Script = script
	r.Stack = stack
	if aux.FaultException != nil {
		r.FaultException = *aux.FaultException
	}
	r.Notifications = aux.Notifications
	r.Transaction = tx
	r.Diagnostics = aux.Diagnostics
	r.Session = session
	return nil
}

// AppExecToInvocation converts an already-applied execution result
// into the same shape a live invokefunction call would return, for
// callers that want one uniform type regardless of whether the script
// ran via direct invocation or as part of a mined transaction.
func AppExecToInvocation(aer *state.AppExecResult, err error) (*Invoke, error) {
	if err != nil {
		return nil, err
	}
	return &Invoke{
		State:          aer.VMState.String(),
		GasConsumed:    aer.GasConsumed,
		Stack:          aer.Stack,
		FaultException: aer.FaultException,
		Notifications:  aer.Events,
	}, nil
}
