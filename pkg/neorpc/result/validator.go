package result

import (
	"encoding/json"
	"strconv"
)

// Validator is a single committee member as reported by getvalidators,
// with its accumulated vote count and active-consensus status.
type Validator struct {
	PublicKey string
	Votes     int64
	Active    bool
}

type validatorAux struct {
	PublicKey string          `json:"publickey"`
	Votes     json.RawMessage `json:"votes"`
	Active    bool            `json:"active"`
}

// MarshalJSON implements the json.Marshaler interface.
func (v Validator) MarshalJSON() ([]byte, error) {
	votes, err := json.Marshal(strconv.FormatInt(v.Votes, 10))
	if err != nil {
		return nil, err
	}
	return json.Marshal(validatorAux{
		PublicKey: v.PublicKey,
		Votes:     votes,
		Active:    v.Active,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface, accepting
// Votes as either a quoted string (older servers) or a bare number.
func (v *Validator) UnmarshalJSON(data []byte) error {
	var aux validatorAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var votes int64
	if len(aux.Votes) != 0 {
		if aux.Votes[0] == '"' {
			var s string
			if err := json.Unmarshal(aux.Votes, &s); err != nil {
				return err
			}
			parsed, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return err
			}
			votes = parsed
		} else {
			if err := json.Unmarshal(aux.Votes, &votes); err != nil {
				return err
			}
		}
	}
	v.PublicKey = aux.PublicKey
	v.Votes = votes
	v.Active = aux.Active
	return nil
}
