// Package bigint provides conversion between big.Int and the signed,
// little-endian, minimal-length byte representation Neo uses for VM
// integers and other wire-level numeric fields.
package bigint

import "math/big"

// MaxBytesLen is the maximum length of a serialized integer, matching the
// Neo VM's 256-bit integer limit plus an extra sign byte.
const MaxBytesLen = 33

// FromBytes converts data (a signed little-endian two's-complement byte
// string) into a big.Int. An empty slice decodes to zero.
func FromBytes(data []byte) *big.Int {
	n := new(big.Int)
	size := len(data)
	if size == 0 {
		return n
	}
	b := make([]byte, size)
	for i, v := range data {
		b[size-i-1] = v
	}
	if b[0]&0x80 != 0 {
		for i := range b {
			b[i] = ^b[i]
		}
		n.SetBytes(b)
		n.Add(n, big.NewInt(1))
		n.Neg(n)
	} else {
		n.SetBytes(b)
	}
	return n
}

// ToPreallocatedBytes appends the minimal signed little-endian
// two's-complement representation of n to data and returns the result.
func ToPreallocatedBytes(n *big.Int, data []byte) []byte {
	sign := n.Sign()
	if sign == 0 {
		return data
	}

	var x big.Int
	x.Set(n)

	negative := sign == -1
	if negative {
		x.Add(&x, big.NewInt(1))
	}

	bs := x.Bytes()
	reverse(bs)

	if negative {
		for i, b := range bs {
			bs[i] = ^b
		}
	}

	if len(bs) == 0 || ((bs[len(bs)-1]&0x80 != 0) != negative) {
		var b byte
		if negative {
			b = 0xFF
		}
		bs = append(bs, b)
	}

	return append(data, bs...)
}

// ToBytes converts n into its minimal signed little-endian two's-complement
// byte representation.
func ToBytes(n *big.Int) []byte {
	return ToPreallocatedBytes(n, []byte{})
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
