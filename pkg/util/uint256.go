package util

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
)

// Uint256Size is the size of Uint256 in bytes.
const Uint256Size = 32

// Uint256 is a 32 byte long unsigned integer, typically used to store
// block and transaction hashes.
type Uint256 [Uint256Size]uint8

// Uint256DecodeBytesBE returns a Uint256 from the given big-endian byte slice.
func Uint256DecodeBytesBE(b []byte) (u Uint256, err error) {
	if len(b) != Uint256Size {
		return u, fmt.Errorf("expected []byte of size %d got %d", Uint256Size, len(b))
	}
	copy(u[:], b)
	return
}

// Uint256DecodeStringBE attempts to decode the given string (in hex format)
// into a Uint256.
func Uint256DecodeStringBE(s string) (u Uint256, err error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != Uint256Size*2 {
		return u, fmt.Errorf("expected string size of %d got %d", Uint256Size*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, err
	}
	return Uint256DecodeBytesBE(b)
}

// Uint256DecodeString is an alias for Uint256DecodeStringBE.
func Uint256DecodeString(s string) (u Uint256, err error) {
	return Uint256DecodeStringBE(s)
}

// Uint256DecodeStringLE attempts to decode the given little-endian hex
// string into a Uint256.
func Uint256DecodeStringLE(s string) (u Uint256, err error) {
	u, err = Uint256DecodeStringBE(s)
	if err != nil {
		return u, err
	}
	return u.Reverse(), nil
}

// Uint256DecodeBytesLE decodes a little-endian byte slice into a Uint256.
func Uint256DecodeBytesLE(b []byte) (u Uint256, err error) {
	u, err = Uint256DecodeBytesBE(b)
	if err != nil {
		return u, err
	}
	return u.Reverse(), nil
}

// BytesBE returns a big-endian byte representation of u.
func (u Uint256) BytesBE() []byte {
	b := make([]byte, Uint256Size)
	copy(b, u[:])
	return b
}

// Reverse returns a reversed (little-endian) copy of u.
func (u Uint256) Reverse() Uint256 {
	var r Uint256
	copy(r[:], ArrayReverse(u[:]))
	return r
}

// StringBE produces a hex-encoded, big-endian string of u.
func (u Uint256) StringBE() string {
	return hex.EncodeToString(u.BytesBE())
}

// String implements the Stringer interface and is equivalent to StringBE.
func (u Uint256) String() string {
	return u.StringBE()
}

// StringLE produces a hex-encoded, little-endian string of u.
func (u Uint256) StringLE() string {
	return hex.EncodeToString(ArrayReverse(u.BytesBE()))
}

// Equals returns true if u equals other.
func (u Uint256) Equals(other Uint256) bool {
	return u == other
}

// EncodeBinary implements the io.Serializable interface, writing u's
// raw 32 bytes as stored (big-endian).
func (u Uint256) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(u[:])
}

// DecodeBinary implements the io.Serializable interface.
func (u *Uint256) DecodeBinary(r *io.BinReader) {
	r.ReadBytes(u[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (u Uint256) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + u.StringBE())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *Uint256) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err = json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimPrefix(s, "0x")
	*u, err = Uint256DecodeStringBE(s)
	return err
}
