package util

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/io"
)

// Uint160Size is the size of Uint160 in bytes.
const Uint160Size = 20

// Uint160 is a 20 byte long unsigned integer, typically used to store
// script hashes.
type Uint160 [Uint160Size]uint8

// Uint160DecodeBytesBE returns a Uint160 from the given big-endian byte slice.
func Uint160DecodeBytesBE(b []byte) (u Uint160, err error) {
	if len(b) != Uint160Size {
		return u, fmt.Errorf("expected []byte of size %d got %d", Uint160Size, len(b))
	}
	copy(u[:], b)
	return
}

// Uint160DecodeBytes is an alias for Uint160DecodeBytesBE kept for
// compatibility with callers that treat hashes as plain big-endian byte
// strings.
func Uint160DecodeBytes(b []byte) (u Uint160, err error) {
	return Uint160DecodeBytesBE(b)
}

// Uint160DecodeStringBE attempts to decode the given string (in hex format)
// into a Uint160.
func Uint160DecodeStringBE(s string) (u Uint160, err error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != Uint160Size*2 {
		return u, fmt.Errorf("expected string size of %d got %d", Uint160Size*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, err
	}
	return Uint160DecodeBytesBE(b)
}

// Uint160DecodeString is an alias for Uint160DecodeStringBE.
func Uint160DecodeString(s string) (u Uint160, err error) {
	return Uint160DecodeStringBE(s)
}

// Uint160DecodeStringLE attempts to decode the given little-endian hex
// string into a Uint160.
func Uint160DecodeStringLE(s string) (u Uint160, err error) {
	u, err = Uint160DecodeStringBE(s)
	if err != nil {
		return u, err
	}
	return u.Reverse(), nil
}

// BytesBE returns a big-endian byte representation of u.
func (u Uint160) BytesBE() []byte {
	b := make([]byte, Uint160Size)
	copy(b, u[:])
	return b
}

// Reverse returns a reversed (little-endian) copy of u.
func (u Uint160) Reverse() Uint160 {
	return Uint160(ArrayReverse(u[:]))
}

// StringBE produces a hex-encoded, big-endian string of u.
func (u Uint160) StringBE() string {
	return hex.EncodeToString(u.BytesBE())
}

// String implements the Stringer interface and is equivalent to StringBE.
func (u Uint160) String() string {
	return u.StringBE()
}

// StringLE produces a hex-encoded, little-endian string of u.
func (u Uint160) StringLE() string {
	return hex.EncodeToString(ArrayReverse(u.BytesBE()))
}

// Equals returns true if u equals other.
func (u Uint160) Equals(other Uint160) bool {
	return u == other
}

// Less returns true if u is less than other, byte by byte, big-endian.
func (u Uint160) Less(other Uint160) bool {
	for i := 0; i < Uint160Size; i++ {
		if u[i] == other[i] {
			continue
		}
		return u[i] < other[i]
	}
	return false
}

// EncodeBinary implements the io.Serializable interface, writing u's
// raw 20 bytes as stored (big-endian).
func (u Uint160) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(u[:])
}

// DecodeBinary implements the io.Serializable interface.
func (u *Uint160) DecodeBinary(r *io.BinReader) {
	r.ReadBytes(u[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (u Uint160) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + u.StringBE())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *Uint160) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err = json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimPrefix(s, "0x")
	*u, err = Uint160DecodeStringBE(s)
	return err
}
