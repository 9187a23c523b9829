package transaction

import (
	"fmt"
	"strings"
)

// WitnessScope is a bitmask limiting the contexts in which a signer's
// witness is considered valid.
type WitnessScope byte

const (
	// None means the signer's witness is never consulted; it's present
	// to pay fees or satisfy a NotValidBefore-style requirement only.
	None WitnessScope = 0
	// CalledByEntry restricts the witness to invocations whose entry
	// script equals the signer's own script.
	CalledByEntry WitnessScope = 0x01
	// CustomContracts allows the witness for any contract hash in the
	// signer's AllowedContracts list.
	CustomContracts WitnessScope = 0x10
	// CustomGroups allows the witness for any contract whose manifest
	// declares membership in one of the signer's AllowedGroups.
	CustomGroups WitnessScope = 0x20
	// WitnessRules allows the witness according to the signer's
	// top-level WitnessRule list.
	WitnessRules WitnessScope = 0x40
	// Global allows the witness unconditionally; mutually exclusive
	// with every other scope.
	Global WitnessScope = 0x80
)

var scopeStrings = []struct {
	s WitnessScope
	n string
}{
	{Global, "Global"},
	{CalledByEntry, "CalledByEntry"},
	{CustomContracts, "CustomContracts"},
	{CustomGroups, "CustomGroups"},
	{WitnessRules, "WitnessRules"},
}

// String renders scope as a comma-separated list of its flag names, or
// "None" if no flag is set.
func (s WitnessScope) String() string {
	if s == None {
		return "None"
	}
	var names []string
	for _, e := range scopeStrings {
		if s&e.s != 0 {
			names = append(names, e.n)
		}
	}
	return strings.Join(names, ", ")
}

// ScopesFromString parses scope as a comma-separated list of flag
// names, the inverse of String.
func ScopesFromString(scope string) (WitnessScope, error) {
	if scope == "None" {
		return None, nil
	}
	var s WitnessScope
	for _, name := range strings.Split(scope, ", ") {
		var found bool
		for _, e := range scopeStrings {
			if e.n == name {
				s |= e.s
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("transaction: unknown witness scope %q", name)
		}
	}
	return s, nil
}

// ScopesFromByte validates b as a combination of WitnessScope flags,
// rejecting Global combined with anything else.
func ScopesFromByte(b byte) (WitnessScope, error) {
	s := WitnessScope(b)
	if s&Global != 0 && s != Global {
		return 0, fmt.Errorf("transaction: Global scope can't be combined with other scopes")
	}
	const known = CalledByEntry | CustomContracts | CustomGroups | WitnessRules | Global
	if s&^known != 0 {
		return 0, fmt.Errorf("transaction: unknown witness scope bits in 0x%x", b)
	}
	return s, nil
}
