package stackitem

import "math/big"

// getBigArray builds a struct-of-structs n levels deep, each level
// holding a handful of scalar items, for use in benchmarks that need a
// sizable but bounded item tree.
func getBigArray(n int) *Array {
	items := make([]Item, 0, 4)
	items = append(items, NewBigInteger(big.NewInt(1)))
	items = append(items, NewByteArray([]byte("neo3-sdk-go")))
	items = append(items, NewBool(true))
	if n > 0 {
		items = append(items, getBigArray(n-1))
	}
	return NewArray(items)
}
