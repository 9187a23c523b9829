package stackitem

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
)

// rpcJSON is the {"type":...,"value":...} envelope the reference
// node's RPC server uses to report stack items (invocation results,
// notification state), distinct from the bare native-contract
// representation ToJSON/FromJSON implement.
type rpcJSON struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// ToJSONWithType encodes item using the RPC wire representation: a
// {"type", "value"} envelope, recursively applied to Array/Struct/Map
// elements.
func ToJSONWithType(item Item) ([]byte, error) {
	env, err := toJSONWithTypeEnvelope(item)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

func toJSONWithTypeEnvelope(item Item) (rpcJSON, error) {
	if item == nil {
		item = Null{}
	}
	env := rpcJSON{Type: item.Type().String()}
	switch t := item.(type) {
	case Null:
		return env, nil
	case *Bool:
		v, err := json.Marshal(t.value)
		if err != nil {
			return env, err
		}
		env.Value = v
	case *BigInteger:
		v, err := json.Marshal(t.value.String())
		if err != nil {
			return env, err
		}
		env.Value = v
	case *ByteArray:
		v, err := json.Marshal(base64.StdEncoding.EncodeToString(t.value))
		if err != nil {
			return env, err
		}
		env.Value = v
	case *Buffer:
		v, err := json.Marshal(base64.StdEncoding.EncodeToString(t.value))
		if err != nil {
			return env, err
		}
		env.Value = v
	case *Array:
		v, err := marshalItemsWithType(t.value)
		if err != nil {
			return env, err
		}
		env.Value = v
	case *Struct:
		v, err := marshalItemsWithType(t.value)
		if err != nil {
			return env, err
		}
		env.Value = v
	case *Map:
		v, err := marshalMapWithType(t.value)
		if err != nil {
			return env, err
		}
		env.Value = v
	case *Pointer:
		v, err := json.Marshal(t.pos)
		if err != nil {
			return env, err
		}
		env.Value = v
	case *Interop:
		env.Value = nil
	default:
		return env, fmt.Errorf("stackitem: %T can't be encoded in RPC JSON", item)
	}
	return env, nil
}

func marshalItemsWithType(items []Item) ([]byte, error) {
	envs := make([]rpcJSON, len(items))
	for i, it := range items {
		env, err := toJSONWithTypeEnvelope(it)
		if err != nil {
			return nil, err
		}
		envs[i] = env
	}
	return json.Marshal(envs)
}

type mapElementJSON struct {
	Key   rpcJSON `json:"key"`
	Value rpcJSON `json:"value"`
}

func marshalMapWithType(elems []MapElement) ([]byte, error) {
	out := make([]mapElementJSON, len(elems))
	for i, e := range elems {
		k, err := toJSONWithTypeEnvelope(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := toJSONWithTypeEnvelope(e.Value)
		if err != nil {
			return nil, err
		}
		out[i] = mapElementJSON{Key: k, Value: v}
	}
	return json.Marshal(out)
}

// FromJSONWithType parses data using the RPC wire representation, the
// inverse of ToJSONWithType.
func FromJSONWithType(data []byte) (Item, error) {
	var env rpcJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return fromJSONWithTypeEnvelope(env)
}

func fromJSONWithTypeEnvelope(env rpcJSON) (Item, error) {
	switch env.Type {
	case "Any":
		return Null{}, nil
	case "Boolean":
		var b bool
		if err := json.Unmarshal(env.Value, &b); err != nil {
			return nil, err
		}
		return NewBool(b), nil
	case "Integer":
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return nil, err
		}
		bi, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("stackitem: invalid integer %q", s)
		}
		return NewBigInteger(bi), nil
	case "ByteString":
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return nil, err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, err
		}
		return NewByteArray(b), nil
	case "Buffer":
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return nil, err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, err
		}
		return NewBuffer(b), nil
	case "Array":
		items, err := unmarshalItemsWithType(env.Value)
		if err != nil {
			return nil, err
		}
		return NewArray(items), nil
	case "Struct":
		items, err := unmarshalItemsWithType(env.Value)
		if err != nil {
			return nil, err
		}
		return NewStruct(items), nil
	case "Map":
		var elems []mapElementJSON
		if err := json.Unmarshal(env.Value, &elems); err != nil {
			return nil, err
		}
		m := NewMap()
		for _, e := range elems {
			k, err := fromJSONWithTypeEnvelope(e.Key)
			if err != nil {
				return nil, err
			}
			v, err := fromJSONWithTypeEnvelope(e.Value)
			if err != nil {
				return nil, err
			}
			m.Add(k, v)
		}
		return m, nil
	case "Pointer":
		var pos int
		if err := json.Unmarshal(env.Value, &pos); err != nil {
			return nil, err
		}
		return NewPointer(pos, nil), nil
	case "InteropInterface":
		return NewInterop(nil), nil
	default:
		return nil, fmt.Errorf("stackitem: unknown RPC JSON type %q", env.Type)
	}
}

func unmarshalItemsWithType(data []byte) ([]Item, error) {
	var envs []rpcJSON
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, err
	}
	items := make([]Item, len(envs))
	for i, env := range envs {
		it, err := fromJSONWithTypeEnvelope(env)
		if err != nil {
			return nil, err
		}
		items[i] = it
	}
	return items, nil
}
