package stackitem

import (
	"fmt"
	"math"
	"math/big"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

func typeMismatch(item Item, want Type) error {
	return fmt.Errorf("invalid conversion: %s/%s", item.Type(), want)
}

func toBigInt(item Item) (*big.Int, error) {
	bi, ok := item.(*BigInteger)
	if !ok {
		return nil, typeMismatch(item, IntegerT)
	}
	return bi.value, nil
}

func toBytes(item Item) ([]byte, error) {
	switch t := item.(type) {
	case *ByteArray:
		return t.value, nil
	case *Buffer:
		return t.value, nil
	default:
		return nil, typeMismatch(item, ByteArrayT)
	}
}

// ToUint160 converts item's value to a util.Uint160, requiring it to
// be an exactly-sized byte string.
func ToUint160(item Item) (util.Uint160, error) {
	b, err := toBytes(item)
	if err != nil {
		return util.Uint160{}, err
	}
	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("%w: %s", ErrInvalidValue, err)
	}
	return u, nil
}

// ToUint256 converts item's value to a util.Uint256, requiring it to
// be an exactly-sized byte string.
func ToUint256(item Item) (util.Uint256, error) {
	b, err := toBytes(item)
	if err != nil {
		return util.Uint256{}, err
	}
	u, err := util.Uint256DecodeBytesBE(b)
	if err != nil {
		return util.Uint256{}, fmt.Errorf("%w: %s", ErrInvalidValue, err)
	}
	return u, nil
}

func checkRange(name string, v, min, max *big.Int) error {
	if v.Cmp(min) < 0 || v.Cmp(max) > 0 {
		return fmt.Errorf("bigint is not in %s range", name)
	}
	return nil
}

// ToInt32 converts item's value to an int32, erroring if item is not
// an Integer or its value is out of range.
func ToInt32(item Item) (int32, error) {
	v, err := toBigInt(item)
	if err != nil {
		return 0, err
	}
	if err := checkRange("int32", v, big.NewInt(math.MinInt32), big.NewInt(math.MaxInt32)); err != nil {
		return 0, err
	}
	return int32(v.Int64()), nil
}

// ToInt64 converts item's value to an int64, erroring if item is not
// an Integer or its value is out of range.
func ToInt64(item Item) (int64, error) {
	v, err := toBigInt(item)
	if err != nil {
		return 0, err
	}
	if err := checkRange("int64", v, big.NewInt(math.MinInt64), big.NewInt(math.MaxInt64)); err != nil {
		return 0, err
	}
	return v.Int64(), nil
}

// ToUint8 converts item's value to a uint8, erroring if item is not an
// Integer or its value is out of range.
func ToUint8(item Item) (uint8, error) {
	v, err := toBigInt(item)
	if err != nil {
		return 0, err
	}
	if err := checkRange("uint8", v, big.NewInt(0), big.NewInt(math.MaxUint8)); err != nil {
		return 0, err
	}
	return uint8(v.Uint64()), nil
}

// ToUint16 converts item's value to a uint16, erroring if item is not
// an Integer or its value is out of range.
func ToUint16(item Item) (uint16, error) {
	v, err := toBigInt(item)
	if err != nil {
		return 0, err
	}
	if err := checkRange("uint16", v, big.NewInt(0), big.NewInt(math.MaxUint16)); err != nil {
		return 0, err
	}
	return uint16(v.Uint64()), nil
}

// ToUint32 converts item's value to a uint32, erroring if item is not
// an Integer or its value is out of range.
func ToUint32(item Item) (uint32, error) {
	v, err := toBigInt(item)
	if err != nil {
		return 0, err
	}
	if err := checkRange("uint32", v, big.NewInt(0), big.NewInt(math.MaxUint32)); err != nil {
		return 0, err
	}
	return uint32(v.Uint64()), nil
}

// ToUint64 converts item's value to a uint64, erroring if item is not
// an Integer or its value is out of range.
func ToUint64(item Item) (uint64, error) {
	v, err := toBigInt(item)
	if err != nil {
		return 0, err
	}
	max := new(big.Int).SetUint64(math.MaxUint64)
	if err := checkRange("uint64", v, big.NewInt(0), max); err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}
