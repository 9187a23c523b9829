// Package smartcontract implements ContractParameter, Neo's tagged-union
// value type for describing contract invocation arguments and results.
package smartcontract

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
)

// ParamType represents the type of a contract parameter.
type ParamType byte

// Possible parameter types.
const (
	UnknownType          ParamType = 0xff
	AnyType              ParamType = 0x00
	BoolType             ParamType = 0x10
	IntegerType          ParamType = 0x11
	ByteArrayType        ParamType = 0x12
	StringType           ParamType = 0x13
	Hash160Type          ParamType = 0x14
	Hash256Type          ParamType = 0x15
	PublicKeyType        ParamType = 0x16
	SignatureType        ParamType = 0x17
	ArrayType            ParamType = 0x20
	MapType              ParamType = 0x22
	InteropInterfaceType ParamType = 0x30
	VoidType             ParamType = 0x40
)

var paramTypeNames = map[ParamType]string{
	UnknownType:          "Unknown",
	AnyType:              "Any",
	BoolType:             "Boolean",
	IntegerType:          "Integer",
	ByteArrayType:        "ByteArray",
	StringType:           "String",
	Hash160Type:          "Hash160",
	Hash256Type:          "Hash256",
	PublicKeyType:        "PublicKey",
	SignatureType:        "Signature",
	ArrayType:            "Array",
	MapType:              "Map",
	InteropInterfaceType: "InteropInterface",
	VoidType:             "Void",
}

// String implements the Stringer interface.
func (t ParamType) String() string {
	if s, ok := paramTypeNames[t]; ok {
		return s
	}
	return "Unknown"
}

// ParseParamType parses s (case-insensitive, using the CLI-friendly
// aliases) into a ParamType.
func ParseParamType(s string) (ParamType, error) {
	switch strings.ToLower(s) {
	case "signature":
		return SignatureType, nil
	case "bool", "boolean":
		return BoolType, nil
	case "int", "integer":
		return IntegerType, nil
	case "hash160":
		return Hash160Type, nil
	case "hash256":
		return Hash256Type, nil
	case "bytes", "bytearray":
		return ByteArrayType, nil
	case "key", "publickey":
		return PublicKeyType, nil
	case "string":
		return StringType, nil
	case "array":
		return ArrayType, nil
	case "map":
		return MapType, nil
	case "interopinterface":
		return InteropInterfaceType, nil
	case "void":
		return VoidType, nil
	case "any":
		return AnyType, nil
	default:
		return UnknownType, fmt.Errorf("smartcontract: unknown parameter type %q", s)
	}
}

// ConvertToParamType converts a raw type byte value into a ParamType,
// rejecting values that don't name a known type.
func ConvertToParamType(val int) (ParamType, error) {
	switch ParamType(val) {
	case UnknownType, AnyType, BoolType, IntegerType, ByteArrayType, StringType,
		Hash160Type, Hash256Type, PublicKeyType, SignatureType, ArrayType, MapType,
		InteropInterfaceType, VoidType:
		return ParamType(val), nil
	default:
		return UnknownType, fmt.Errorf("smartcontract: unknown parameter type byte 0x%x", val)
	}
}

// inferParamType guesses the ParamType a raw CLI-supplied string most
// likely represents.
func inferParamType(s string) ParamType {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntegerType
	}
	if s == "true" || s == "false" {
		return BoolType
	}
	if _, err := address.StringToUint160(s); err == nil {
		return Hash160Type
	}
	if b, err := hex.DecodeString(s); err == nil {
		switch {
		case len(b) == util.Uint160Size:
			return Hash160Type
		case len(b) == util.Uint256Size:
			return Hash256Type
		case len(b) == 33 && (b[0] == 0x02 || b[0] == 0x03):
			return PublicKeyType
		case len(b) == 64:
			return SignatureType
		default:
			return ByteArrayType
		}
	}
	return StringType
}

// adjustValToType converts a raw CLI-supplied string into the Go value
// matching typ, validating its shape along the way.
func adjustValToType(typ ParamType, val string) (interface{}, error) {
	switch typ {
	case SignatureType:
		b, err := hex.DecodeString(val)
		if err != nil {
			return nil, err
		}
		if len(b) != 64 {
			return nil, fmt.Errorf("smartcontract: signature must be 64 bytes, got %d", len(b))
		}
		return b, nil
	case BoolType:
		switch val {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, fmt.Errorf("smartcontract: invalid boolean literal %q", val)
		}
	case IntegerType:
		return strconv.ParseInt(val, 10, 64)
	case Hash160Type:
		u, err := address.StringToUint160(val)
		if err == nil {
			return u, nil
		}
		u, err = util.Uint160DecodeStringLE(val)
		if err != nil {
			return nil, fmt.Errorf("smartcontract: invalid Hash160 %q", val)
		}
		return u, nil
	case Hash256Type:
		u, err := util.Uint256DecodeStringLE(val)
		if err != nil {
			return nil, fmt.Errorf("smartcontract: invalid Hash256 %q", val)
		}
		return u, nil
	case ByteArrayType:
		return hex.DecodeString(val)
	case PublicKeyType:
		b, err := hex.DecodeString(val)
		if err != nil {
			return nil, err
		}
		if len(b) != 33 || (b[0] != 0x02 && b[0] != 0x03) {
			return nil, fmt.Errorf("smartcontract: invalid compressed public key %q", val)
		}
		return b, nil
	case StringType:
		return val, nil
	default:
		return nil, fmt.Errorf("smartcontract: %s parameters can't be parsed from a string", typ)
	}
}
