package neorpc

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// SignerWithWitness bundles a transaction.Signer with its
// transaction.Witness (when one is available) into the single flat
// JSON shape the reference node's RPC server accepts for a
// "signers" invocation parameter.
type SignerWithWitness struct {
	transaction.Signer
	transaction.Witness
}

type signerWithWitnessAux struct {
	Account          string                     `json:"account"`
	Scopes           string                     `json:"scopes"`
	AllowedContracts []util.Uint160             `json:"allowedcontracts,omitempty"`
	AllowedGroups    []*keys.PublicKey          `json:"allowedgroups,omitempty"`
	Rules            []transaction.WitnessRule  `json:"rules,omitempty"`
	Invocation       string                     `json:"invocation,omitempty"`
	Verification     string                     `json:"verification,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface. The witness
// fields are omitted entirely when both scripts are empty, matching a
// bare signer with no attached proof.
func (s SignerWithWitness) MarshalJSON() ([]byte, error) {
	aux := signerWithWitnessAux{
		Account:          "0x" + s.Account.StringLE(),
		Scopes:           s.Scopes.String(),
		AllowedContracts: s.AllowedContracts,
		AllowedGroups:    s.AllowedGroups,
		Rules:            s.Rules,
	}
	if len(s.InvocationScript) != 0 || len(s.VerificationScript) != 0 {
		aux.Invocation = base64.StdEncoding.EncodeToString(s.InvocationScript)
		aux.Verification = base64.StdEncoding.EncodeToString(s.VerificationScript)
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *SignerWithWitness) UnmarshalJSON(data []byte) error {
	var aux signerWithWitnessAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	acc, err := util.Uint160DecodeStringLE(strings.TrimPrefix(aux.Account, "0x"))
	if err != nil {
		return err
	}
	scopes, err := transaction.ScopesFromString(aux.Scopes)
	if err != nil {
		return err
	}
	if len(aux.AllowedContracts) > transaction.MaxAttributes {
		return fmt.Errorf("json: allowedcontracts: got %d, allowed %d at max", len(aux.AllowedContracts), transaction.MaxAttributes)
	}
	if len(aux.AllowedGroups) > transaction.MaxAttributes {
		return fmt.Errorf("json: allowedgroups: got %d, allowed %d at max", len(aux.AllowedGroups), transaction.MaxAttributes)
	}
	if len(aux.Rules) > transaction.MaxAttributes {
		return fmt.Errorf("json: rules: got %d, allowed %d at max", len(aux.Rules), transaction.MaxAttributes)
	}
	s.Account = acc
	s.Scopes = scopes
	s.AllowedContracts = aux.AllowedContracts
	s.AllowedGroups = aux.AllowedGroups
	s.Rules = aux.Rules
	if aux.Invocation != "" {
		inv, err := base64.StdEncoding.DecodeString(aux.Invocation)
		if err != nil {
			return err
		}
		s.InvocationScript = inv
	}
	if aux.Verification != "" {
		ver, err := base64.StdEncoding.DecodeString(aux.Verification)
		if err != nil {
			return err
		}
		s.VerificationScript = ver
	}
	return nil
}

// Request is a single JSON-RPC 2.0 request as sent to a node.
type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      uint64        `json:"id"`
}

// Response is a single JSON-RPC 2.0 response as received from a node,
// carrying either a Result or an Error but never both.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Notification is a single JSON-RPC 2.0 notification, the subscribed
// push-delivery counterpart of Response: it carries no ID and its
// Params wrap the event payload under a "result" key along with the
// subscription it belongs to.
type Notification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}
