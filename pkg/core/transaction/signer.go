package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// MaxAllowedContracts and MaxAllowedGroups bound a signer's
// CustomContracts/CustomGroups allow-lists. MaxWitnessRules bounds its
// top-level WitnessRules list.
const (
	MaxAllowedContracts = 16
	MaxAllowedGroups    = 16
	MaxWitnessRules     = 16
)

// Signer bundles an account script hash with the scope its witness is
// authorized under, and any scope-specific allow-lists or rules.
type Signer struct {
	Account          util.Uint160
	Scopes           WitnessScope
	AllowedContracts []util.Uint160
	AllowedGroups    []*keys.PublicKey
	Rules            []WitnessRule
}

// EncodeBinary implements the io.Serializable interface.
func (s *Signer) EncodeBinary(w *io.BinWriter) {
	s.Account.EncodeBinary(w)
	w.WriteB(byte(s.Scopes))
	if s.Scopes&CustomContracts != 0 {
		w.WriteArray(s.AllowedContracts)
	}
	if s.Scopes&CustomGroups != 0 {
		w.WriteVarUint(uint64(len(s.AllowedGroups)))
		for _, g := range s.AllowedGroups {
			g.EncodeBinary(w)
		}
	}
	if s.Scopes&WitnessRules != 0 {
		w.WriteArray(s.Rules)
	}
}

// DecodeBinary implements the io.Serializable interface.
func (s *Signer) DecodeBinary(r *io.BinReader) {
	s.Account.DecodeBinary(r)
	scopes, err := ScopesFromByte(r.ReadB())
	if err != nil {
		r.Err = err
		return
	}
	s.Scopes = scopes
	if scopes&CustomContracts != 0 {
		r.ReadArray(&s.AllowedContracts, MaxAllowedContracts)
	}
	if scopes&CustomGroups != 0 {
		n := r.ReadVarUint()
		if r.Err != nil {
			return
		}
		if n > MaxAllowedGroups {
			r.Err = errors.New("transaction: too many allowed groups")
			return
		}
		s.AllowedGroups = make([]*keys.PublicKey, n)
		for i := range s.AllowedGroups {
			pub := &keys.PublicKey{}
			pub.DecodeBinary(r)
			s.AllowedGroups[i] = pub
			if r.Err != nil {
				return
			}
		}
	}
	if scopes&WitnessRules != 0 {
		r.ReadArray(&s.Rules, MaxWitnessRules)
	}
}

type signerAux struct {
	Account          string             `json:"account"`
	Scopes           string             `json:"scopes"`
	AllowedContracts []util.Uint160     `json:"allowedcontracts,omitempty"`
	AllowedGroups    []*keys.PublicKey  `json:"allowedgroups,omitempty"`
	Rules            []WitnessRule      `json:"rules,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (s Signer) MarshalJSON() ([]byte, error) {
	return json.Marshal(signerAux{
		Account:          "0x" + s.Account.StringLE(),
		Scopes:           s.Scopes.String(),
		AllowedContracts: s.AllowedContracts,
		AllowedGroups:    s.AllowedGroups,
		Rules:            s.Rules,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signer) UnmarshalJSON(data []byte) error {
	var aux signerAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	acc, err := util.Uint160DecodeStringLE(strings.TrimPrefix(aux.Account, "0x"))
	if err != nil {
		return err
	}
	scopes, err := ScopesFromString(aux.Scopes)
	if err != nil {
		return err
	}
	if len(aux.AllowedContracts) > MaxAttributes {
		return fmt.Errorf("json: allowedcontracts: got %d, allowed %d at max", len(aux.AllowedContracts), MaxAttributes)
	}
	if len(aux.AllowedGroups) > MaxAttributes {
		return fmt.Errorf("json: allowedgroups: got %d, allowed %d at max", len(aux.AllowedGroups), MaxAttributes)
	}
	if len(aux.Rules) > MaxAttributes {
		return fmt.Errorf("json: rules: got %d, allowed %d at max", len(aux.Rules), MaxAttributes)
	}
	s.Account = acc
	s.Scopes = scopes
	s.AllowedContracts = aux.AllowedContracts
	s.AllowedGroups = aux.AllowedGroups
	s.Rules = aux.Rules
	return nil
}
