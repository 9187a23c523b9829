// Package address handles Neo N3 address <-> script hash conversions.
package address

import (
	"github.com/nspcc-dev/neo3-sdk-go/pkg/encoding/base58"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// NEO3Prefix is the default Neo N3 mainnet address version byte. Script
// hashes encoded with this prefix produce addresses starting with 'N'.
const NEO3Prefix = 0x35

// Prefix is the address version byte used by Uint160ToString/StringToUint160.
// Host applications targeting a private/test network with a different
// version byte may override it.
var Prefix byte = NEO3Prefix

// Uint160ToString converts a script hash to an address string using Prefix.
func Uint160ToString(u util.Uint160) string {
	b := append([]byte{Prefix}, ArrayReverse(u[:])...)
	return base58.CheckEncode(b)
}

// StringToUint160 converts an address string to a script hash, validating
// the base58check checksum and the address version byte.
func StringToUint160(s string) (u util.Uint160, err error) {
	b, err := base58.CheckDecode(s)
	if err != nil {
		return u, err
	}
	if len(b) != util.Uint160Size+1 {
		return u, errInvalidAddressLength
	}
	if b[0] != Prefix {
		return u, errInvalidAddressPrefix
	}
	return util.Uint160DecodeBytesBE(ArrayReverse(b[1:]))
}

// ArrayReverse returns a reversed copy of b.
func ArrayReverse(b []byte) []byte {
	r := make([]byte, len(b))
	for i, j := 0, len(b)-1; j >= 0; i, j = i+1, j-1 {
		r[i] = b[j]
	}
	return r
}
