package smartcontract

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/nspcc-dev/neo3-sdk-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/util"
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/stackitem"
)

// Parameter represents a typed contract invocation argument or result,
// the Go-native mirror of Neo's ContractParameter.
type Parameter struct {
	Type  ParamType
	Value interface{}
}

// ParameterPair is a single Key/Value entry of a MapType Parameter.
type ParameterPair struct {
	Key   Parameter
	Value Parameter
}

// Convertible is implemented by types that know how to turn themselves
// into a Parameter.
type Convertible interface {
	ToSCParameter() (Parameter, error)
}

type parameterAux struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (p Parameter) MarshalJSON() ([]byte, error) {
	var (
		resultRawValue json.RawMessage
		resultErr      error
	)
	switch p.Type {
	case BoolType:
		b, ok := p.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a bool", p.Type)
		}
		resultRawValue, resultErr = json.Marshal(b)
	case IntegerType:
		val, err := toBigIntValue(p.Value)
		if err != nil {
			return nil, err
		}
		if val.IsInt64() {
			resultRawValue, resultErr = json.Marshal(val.Int64())
		} else {
			resultRawValue, resultErr = json.Marshal(val.String())
		}
	case ByteArrayType, SignatureType:
		if p.Value == nil {
			resultRawValue = json.RawMessage("null")
			break
		}
		b, ok := p.Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a byte slice", p.Type)
		}
		resultRawValue, resultErr = json.Marshal(base64.StdEncoding.EncodeToString(b))
	case StringType:
		s, ok := p.Value.(string)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a string", p.Type)
		}
		resultRawValue, resultErr = json.Marshal(s)
	case Hash160Type:
		u, ok := p.Value.(util.Uint160)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a Uint160", p.Type)
		}
		resultRawValue, resultErr = json.Marshal("0x" + u.StringLE())
	case Hash256Type:
		u, ok := p.Value.(util.Uint256)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a Uint256", p.Type)
		}
		resultRawValue, resultErr = json.Marshal("0x" + u.StringLE())
	case PublicKeyType:
		b, ok := p.Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a byte slice", p.Type)
		}
		resultRawValue, resultErr = json.Marshal(hex.EncodeToString(b))
	case ArrayType:
		ps, ok := p.Value.([]Parameter)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a []Parameter", p.Type)
		}
		resultRawValue, resultErr = json.Marshal(ps)
	case MapType:
		pairs, ok := p.Value.([]ParameterPair)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a []ParameterPair", p.Type)
		}
		resultRawValue, resultErr = json.Marshal(pairs)
	case InteropInterfaceType, AnyType, VoidType:
		resultRawValue = json.RawMessage("null")
	default:
		return nil, fmt.Errorf("smartcontract: %s can't be marshaled to JSON", p.Type)
	}
	if resultErr != nil {
		return nil, resultErr
	}
	return json.Marshal(parameterAux{
		Type:  p.Type.String(),
		Value: resultRawValue,
	})
}

func toBigIntValue(v interface{}) (*big.Int, error) {
	switch t := v.(type) {
	case *big.Int:
		return t, nil
	case int:
		return big.NewInt(int64(t)), nil
	case int64:
		return big.NewInt(t), nil
	default:
		return nil, fmt.Errorf("smartcontract: %v is not an integer value", v)
	}
}

var jsonTypeAliases = map[string]string{
	"Bool": "Boolean",
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	var aux parameterAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	typName := aux.Type
	if alias, ok := jsonTypeAliases[typName]; ok {
		typName = alias
	}
	typ, err := ParseParamType(typName)
	if err != nil {
		return err
	}
	p.Type = typ
	if len(aux.Value) == 0 {
		p.Value = nil
		return nil
	}
	var rawNull = bytes.Equal(bytes.TrimSpace(aux.Value), []byte("null"))
	switch typ {
	case BoolType:
		if rawNull {
			return errors.New("smartcontract: null Boolean value")
		}
		var b bool
		if err := json.Unmarshal(aux.Value, &b); err != nil {
			return fmt.Errorf("smartcontract: invalid Boolean value: %w", err)
		}
		p.Value = b
	case IntegerType:
		if rawNull {
			return errors.New("smartcontract: null Integer value")
		}
		var raw interface{}
		if err := json.Unmarshal(aux.Value, &raw); err != nil {
			return err
		}
		switch t := raw.(type) {
		case float64:
			p.Value = big.NewInt(int64(t))
		case string:
			n, ok := new(big.Int).SetString(t, 10)
			if !ok {
				return fmt.Errorf("smartcontract: invalid Integer value %q", t)
			}
			if n.BitLen() > stackitem.MaxBigIntegerSizeBits {
				return fmt.Errorf("smartcontract: Integer value %q is too big", t)
			}
			p.Value = n
		default:
			return fmt.Errorf("smartcontract: invalid Integer value")
		}
	case ByteArrayType, SignatureType:
		if rawNull {
			p.Value = nil
			return nil
		}
		var s string
		if err := json.Unmarshal(aux.Value, &s); err != nil {
			return fmt.Errorf("smartcontract: invalid %s value: %w", typ, err)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("smartcontract: invalid %s base64 value: %w", typ, err)
		}
		p.Value = b
	case StringType:
		if rawNull {
			return errors.New("smartcontract: null String value")
		}
		var s string
		if err := json.Unmarshal(aux.Value, &s); err != nil {
			return fmt.Errorf("smartcontract: invalid String value: %w", err)
		}
		p.Value = s
	case Hash160Type:
		var s string
		if err := json.Unmarshal(aux.Value, &s); err != nil {
			return err
		}
		u, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
		if err != nil {
			return fmt.Errorf("smartcontract: invalid Hash160 value: %w", err)
		}
		p.Value = u
	case Hash256Type:
		var s string
		if err := json.Unmarshal(aux.Value, &s); err != nil {
			return err
		}
		u, err := util.Uint256DecodeStringLE(strings.TrimPrefix(s, "0x"))
		if err != nil {
			return fmt.Errorf("smartcontract: invalid Hash256 value: %w", err)
		}
		p.Value = u
	case PublicKeyType:
		var s string
		if err := json.Unmarshal(aux.Value, &s); err != nil {
			return err
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return fmt.Errorf("smartcontract: invalid PublicKey value: %w", err)
		}
		p.Value = b
	case ArrayType:
		var raw json.RawMessage
		if err := json.Unmarshal(aux.Value, &raw); err != nil {
			return err
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return errors.New("smartcontract: Array value is not a JSON array")
		}
		var ps []Parameter
		if err := json.Unmarshal(aux.Value, &ps); err != nil {
			return err
		}
		p.Value = ps
	case MapType:
		trimmed := bytes.TrimSpace(aux.Value)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return errors.New("smartcontract: Map value is not a JSON array")
		}
		var pairs []ParameterPair
		if err := json.Unmarshal(aux.Value, &pairs); err != nil {
			return err
		}
		p.Value = pairs
	case InteropInterfaceType:
		p.Value = nil
	default:
		p.Value = nil
	}
	return nil
}

// unescapeParam resolves backslash escapes in a CLI-supplied string: a
// backslash makes the following character literal.
func unescapeParam(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		out = append(out, s[i])
	}
	return string(out)
}

// splitUnescapedColon finds the first ':' in s that isn't preceded by
// an unescaped backslash, returning -1 if none exists.
func splitUnescapedColon(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			continue
		}
		if s[i] == ':' {
			return i
		}
	}
	return -1
}

// NewParameterFromString parses a CLI-style "type:value" (or bare
// value, with the type inferred) string into a Parameter. A leading
// backslash escapes the following character; "filebytes:" reads the
// named file's contents as a ByteArray.
func NewParameterFromString(in string) (*Parameter, error) {
	if strings.HasPrefix(in, "filebytes:") {
		fname := strings.TrimPrefix(in, "filebytes:")
		b, ferr := os.ReadFile(fname)
		if ferr != nil {
			return nil, ferr
		}
		return &Parameter{Type: ByteArrayType, Value: b}, nil
	}

	var typ ParamType
	var value string
	if idx := splitUnescapedColon(in); idx >= 0 {
		typeName := unescapeParam(in[:idx])
		t, err := ParseParamType(typeName)
		if err != nil {
			return nil, err
		}
		typ = t
		value = unescapeParam(in[idx+1:])
	} else {
		value = unescapeParam(in)
		if !utf8.ValidString(value) {
			return nil, fmt.Errorf("smartcontract: %q is not valid UTF-8", value)
		}
		typ = inferParamType(value)
	}

	switch typ {
	case InteropInterfaceType, MapType:
		return nil, fmt.Errorf("smartcontract: %s can't be parsed from a CLI string", typ)
	}

	val, err := adjustValToType(typ, value)
	if err != nil {
		return nil, err
	}
	switch typ {
	case IntegerType:
		n, ok := val.(int64)
		if !ok {
			return nil, errors.New("smartcontract: invalid integer")
		}
		return &Parameter{Type: IntegerType, Value: big.NewInt(n)}, nil
	case Hash160Type:
		u, ok := val.(util.Uint160)
		if !ok {
			return nil, errors.New("smartcontract: invalid Hash160")
		}
		return &Parameter{Type: Hash160Type, Value: u}, nil
	case Hash256Type:
		u, ok := val.(util.Uint256)
		if !ok {
			return nil, errors.New("smartcontract: invalid Hash256")
		}
		return &Parameter{Type: Hash256Type, Value: u}, nil
	}
	return &Parameter{Type: typ, Value: val}, nil
}

// ExpandParameterToEmitable converts p into a plain Go value suitable
// for emit.Array/emit.Instruction, unwrapping nested Parameter arrays.
func ExpandParameterToEmitable(p Parameter) (interface{}, error) {
	switch p.Type {
	case AnyType:
		return nil, nil
	case BoolType, IntegerType, StringType, ByteArrayType, SignatureType, PublicKeyType:
		return p.Value, nil
	case Hash160Type:
		u, ok := p.Value.(util.Uint160)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a Uint160", p.Type)
		}
		return u.BytesBE(), nil
	case Hash256Type:
		u, ok := p.Value.(util.Uint256)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a Uint256", p.Type)
		}
		return u.BytesBE(), nil
	case ArrayType:
		ps, ok := p.Value.([]Parameter)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a []Parameter", p.Type)
		}
		out := make([]interface{}, len(ps))
		for i, el := range ps {
			v, err := ExpandParameterToEmitable(el)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("smartcontract: %s can't be converted to an emitable value", p.Type)
	}
}

// ToStackItem converts p into the equivalent VM stack item.
func (p Parameter) ToStackItem() (stackitem.Item, error) {
	switch p.Type {
	case AnyType:
		return stackitem.Null{}, nil
	case BoolType:
		b, ok := p.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a bool", p.Type)
		}
		return stackitem.NewBool(b), nil
	case IntegerType:
		v, err := toBigIntValue(p.Value)
		if err != nil {
			return nil, err
		}
		return stackitem.NewBigInteger(v), nil
	case ByteArrayType, SignatureType, PublicKeyType:
		b, ok := p.Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a byte slice", p.Type)
		}
		return stackitem.NewByteArray(b), nil
	case StringType:
		s, ok := p.Value.(string)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a string", p.Type)
		}
		return stackitem.NewByteArray([]byte(s)), nil
	case Hash160Type:
		u, ok := p.Value.(util.Uint160)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a Uint160", p.Type)
		}
		return stackitem.NewByteArray(u.BytesBE()), nil
	case Hash256Type:
		u, ok := p.Value.(util.Uint256)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a Uint256", p.Type)
		}
		return stackitem.NewByteArray(u.BytesBE()), nil
	case ArrayType:
		ps, ok := p.Value.([]Parameter)
		if !ok {
			return nil, fmt.Errorf("smartcontract: %s value is not a []Parameter", p.Type)
		}
		items := make([]stackitem.Item, len(ps))
		for i, el := range ps {
			it, err := el.ToStackItem()
			if err != nil {
				return nil, err
			}
			items[i] = it
		}
		return stackitem.NewArray(items), nil
	default:
		return nil, fmt.Errorf("smartcontract: %s can't be converted to a stack item", p.Type)
	}
}

// NewParameterFromValue converts an arbitrary Go value into the
// Parameter that best represents it, recursing into slices and
// honoring the Convertible interface.
func NewParameterFromValue(value interface{}) (Parameter, error) {
	if value == nil {
		return Parameter{Type: AnyType}, nil
	}
	if c, ok := value.(Convertible); ok {
		return c.ToSCParameter()
	}
	switch t := value.(type) {
	case Parameter:
		return t, nil
	case *Parameter:
		return *t, nil
	case []byte:
		return Parameter{Type: ByteArrayType, Value: t}, nil
	case string:
		return Parameter{Type: StringType, Value: t}, nil
	case bool:
		return Parameter{Type: BoolType, Value: t}, nil
	case *big.Int:
		return Parameter{Type: IntegerType, Value: t}, nil
	case int:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(t))}, nil
	case int8:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(t))}, nil
	case int16:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(t))}, nil
	case int32:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(t))}, nil
	case int64:
		return Parameter{Type: IntegerType, Value: big.NewInt(t)}, nil
	case uint:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(t))}, nil
	case uint8:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(t))}, nil
	case uint16:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(t))}, nil
	case uint32:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(t))}, nil
	case uint64:
		return Parameter{Type: IntegerType, Value: big.NewInt(int64(t))}, nil
	case util.Uint160:
		return Parameter{Type: Hash160Type, Value: t}, nil
	case *util.Uint160:
		if t == nil {
			return Parameter{Type: AnyType}, nil
		}
		return Parameter{Type: Hash160Type, Value: *t}, nil
	case util.Uint256:
		return Parameter{Type: Hash256Type, Value: t}, nil
	case *util.Uint256:
		if t == nil {
			return Parameter{Type: AnyType}, nil
		}
		return Parameter{Type: Hash256Type, Value: *t}, nil
	case keys.PublicKey:
		return Parameter{Type: PublicKeyType, Value: t.Bytes()}, nil
	case *keys.PublicKey:
		return Parameter{Type: PublicKeyType, Value: t.Bytes()}, nil
	case keys.PublicKeys:
		return sliceToArrayParameter(reflect.ValueOf([]interface{}(nil)), t)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return sliceToArrayParameter(rv, value)
	}
	return Parameter{}, fmt.Errorf("smartcontract: unsupported operation: %T type", value)
}

func sliceToArrayParameter(rv reflect.Value, value interface{}) (Parameter, error) {
	if pks, ok := value.(keys.PublicKeys); ok {
		ps := make([]Parameter, len(pks))
		for i, pk := range pks {
			ps[i] = Parameter{Type: PublicKeyType, Value: pk.Bytes()}
		}
		return Parameter{Type: ArrayType, Value: ps}, nil
	}
	rv = reflect.ValueOf(value)
	ps := make([]Parameter, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		el := rv.Index(i).Interface()
		p, err := NewParameterFromValue(el)
		if err != nil {
			return Parameter{}, err
		}
		ps[i] = p
	}
	return Parameter{Type: ArrayType, Value: ps}, nil
}

// NewParametersFromValues converts each of values into a Parameter via
// NewParameterFromValue.
func NewParametersFromValues(values ...interface{}) ([]Parameter, error) {
	ps := make([]Parameter, len(values))
	for i, v := range values {
		p, err := NewParameterFromValue(v)
		if err != nil {
			return nil, err
		}
		ps[i] = p
	}
	return ps, nil
}
