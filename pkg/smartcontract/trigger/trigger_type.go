// Package trigger defines the trigger type for contract invocations,
// identifying which part of block processing caused a script to run.
package trigger

import (
	"encoding/json"
	"fmt"
)

// Type represents the state of the blockchain when a contract is
// invoked, matching the C# reference node's Neo.VM.TriggerType enum
// byte for byte.
type Type byte

const (
	// OnPersist is triggered when a block is being persisted, running
	// system-level native contract logic before any transaction.
	OnPersist Type = 0x01
	// PostPersist is triggered after block persistence completes.
	PostPersist Type = 0x02
	// Verification is triggered when a contract is invoked as a
	// transaction or block witness's verification script.
	Verification Type = 0x20
	// Application is triggered when a contract is invoked as part of
	// a transaction's entry script or a direct RPC invocation.
	Application Type = 0x40
	// System is the combination of triggers fired by block processing
	// itself, independent of any transaction.
	System = OnPersist | PostPersist
	// All is every trigger type combined.
	All = System | Verification | Application
)

// String implements the fmt.Stringer interface.
func (t Type) String() string {
	switch t {
	case OnPersist:
		return "OnPersist"
	case PostPersist:
		return "PostPersist"
	case Verification:
		return "Verification"
	case Application:
		return "Application"
	case System:
		return "System"
	case All:
		return "All"
	default:
		return fmt.Sprintf("Unknown(0x%02x)", byte(t))
	}
}

// FromString parses a trigger type from its name, as returned by String.
func FromString(s string) (Type, error) {
	switch s {
	case "OnPersist":
		return OnPersist, nil
	case "PostPersist":
		return PostPersist, nil
	case "Verification":
		return Verification, nil
	case "Application":
		return Application, nil
	case "System":
		return System, nil
	case "All":
		return All, nil
	default:
		return 0, fmt.Errorf("trigger: unknown type %q", s)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
