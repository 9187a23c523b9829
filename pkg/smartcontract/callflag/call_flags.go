// Package callflag defines the permission bitmask a contract invocation
// is allowed to use (state reads/writes, further calls, notifications).
package callflag

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CallFlag represents a bitmask of permissions granted to an
// invocation.
type CallFlag byte

// Possible permission bits and their useful combinations.
const (
	NoneFlag CallFlag = 0

	ReadStates  CallFlag = 1 << 0
	WriteStates CallFlag = 1 << 1
	AllowCall   CallFlag = 1 << 2
	AllowNotify CallFlag = 1 << 3

	States   = ReadStates | WriteStates
	ReadOnly = ReadStates | AllowCall | AllowNotify
	All      = States | AllowCall | AllowNotify
)

var flagStrings = []struct {
	flag CallFlag
	name string
}{
	{ReadStates, "ReadStates"},
	{WriteStates, "WriteStates"},
	{AllowCall, "AllowCall"},
	{AllowNotify, "AllowNotify"},
}

var namedFlags = map[CallFlag]string{
	NoneFlag: "None",
	All:      "All",
	States:   "States",
	ReadOnly: "ReadOnly",
}

// Has returns true if f has every bit set in v.
func (f CallFlag) Has(v CallFlag) bool {
	return f&v == v
}

// String implements the Stringer interface.
func (f CallFlag) String() string {
	if name, ok := namedFlags[f]; ok {
		return name
	}
	var parts []string
	for _, fs := range flagStrings {
		if f.Has(fs.flag) {
			parts = append(parts, fs.name)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, ", ")
}

var singleNamed = map[string]CallFlag{
	"None":        NoneFlag,
	"All":         All,
	"States":      States,
	"ReadOnly":    ReadOnly,
	"ReadStates":  ReadStates,
	"WriteStates": WriteStates,
	"AllowCall":   AllowCall,
	"AllowNotify": AllowNotify,
}

// FromString parses a ", "-separated list of individual flag names
// (ReadStates, WriteStates, AllowCall, AllowNotify) or one of the named
// combinations (None, All, States, ReadOnly) into a CallFlag.
func FromString(s string) (CallFlag, error) {
	if f, ok := singleNamed[s]; ok {
		return f, nil
	}
	parts := strings.Split(s, ", ")
	if len(parts) < 2 {
		return NoneFlag, fmt.Errorf("callflag: unknown flag %q", s)
	}
	var result CallFlag
	for _, name := range parts {
		f, ok := singleNamed[name]
		if !ok || f == NoneFlag || f == All || f == States || f == ReadOnly {
			return NoneFlag, fmt.Errorf("callflag: unknown flag %q", name)
		}
		result |= f
	}
	return result, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f CallFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *CallFlag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	flag, err := FromString(s)
	if err != nil {
		return err
	}
	*f = flag
	return nil
}
