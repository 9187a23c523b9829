package stackitem

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
)

// MaxJSONDepth bounds the nesting depth FromJSON/ToJSON will traverse,
// matching the native contract JSON codec's recursion limit.
const MaxJSONDepth = 10

// ToJSON encodes item using the native contract JSON representation
// (System.Json.Serialize semantics): integers and booleans as bare
// JSON literals, byte strings as base64-quoted strings, Array/Struct
// as JSON arrays and Map as a JSON object with string keys.
func ToJSON(item Item) ([]byte, error) {
	buf, err := encodeJSONValue(item, 0)
	if err != nil {
		return nil, err
	}
	if len(buf) > MaxSize {
		return nil, fmt.Errorf("stackitem: JSON encoding exceeds %d bytes", MaxSize)
	}
	return buf, nil
}

func encodeJSONValue(item Item, depth int) ([]byte, error) {
	if depth > MaxJSONDepth {
		return nil, errors.New("stackitem: JSON nesting too deep")
	}
	switch t := item.(type) {
	case Null:
		return []byte("null"), nil
	case *Bool:
		if t.value {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case *BigInteger:
		if new(big.Int).Abs(t.value).Cmp(big.NewInt(MaxAllowedInteger)) > 0 {
			return nil, errors.New("stackitem: integer too big to encode as JSON")
		}
		return []byte(t.value.String()), nil
	case *ByteArray:
		return encodeJSONString(t.value)
	case *Buffer:
		return encodeJSONString(t.value)
	case *Array:
		return encodeJSONArray(t.value, depth)
	case *Struct:
		return encodeJSONArray(t.value, depth)
	case *Map:
		return encodeJSONMap(t.value, depth)
	default:
		return nil, fmt.Errorf("stackitem: %s can't be encoded as JSON", item.Type())
	}
}

func encodeJSONString(b []byte) ([]byte, error) {
	s := base64.StdEncoding.EncodeToString(b)
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	out = append(out, s...)
	out = append(out, '"')
	return out, nil
}

func encodeJSONArray(items []Item, depth int) ([]byte, error) {
	buf := bytes.NewBufferString("[")
	for k, it := range items {
		if k != 0 {
			buf.WriteByte(',')
		}
		b, err := encodeJSONValue(it, depth+1)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func encodeJSONMap(elems []MapElement, depth int) ([]byte, error) {
	buf := bytes.NewBufferString("{")
	for k, e := range elems {
		if k != 0 {
			buf.WriteByte(',')
		}
		keyBA, ok := e.Key.(*ByteArray)
		if !ok {
			return nil, errors.New("stackitem: map keys must be byte strings")
		}
		keyJSON, err := json.Marshal(string(keyBA.value))
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		b, err := encodeJSONValue(e.Value, depth+1)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FromJSON parses data using the native contract JSON representation,
// the inverse of ToJSON.
func FromJSON(data []byte) (Item, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	item, err := decodeJSONValue(dec, 0)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("stackitem: unexpected data after JSON value")
	}
	return item, nil
}

func decodeJSONValue(dec *json.Decoder, depth int) (Item, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			if depth+1 > MaxJSONDepth {
				return nil, errors.New("stackitem: JSON nesting too deep")
			}
			items := []Item{}
			for dec.More() {
				it, err := decodeJSONValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				items = append(items, it)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return NewArray(items), nil
		case '{':
			if depth+1 > MaxJSONDepth {
				return nil, errors.New("stackitem: JSON nesting too deep")
			}
			m := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.New("stackitem: expected a string key")
				}
				val, err := decodeJSONValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				m.Add(NewByteArray([]byte(key)), val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		default:
			return nil, fmt.Errorf("stackitem: unexpected JSON token %v", t)
		}
	case nil:
		return Null{}, nil
	case bool:
		return NewBool(t), nil
	case json.Number:
		f, ok := new(big.Float).SetString(string(t))
		if !ok {
			return nil, fmt.Errorf("stackitem: invalid number %q", t)
		}
		bi, acc := f.Int(nil)
		if acc != big.Exact {
			return nil, fmt.Errorf("stackitem: %q is not an integer", t)
		}
		return NewBigInteger(bi), nil
	case string:
		b, err := base64.StdEncoding.DecodeString(t)
		if err != nil {
			return nil, err
		}
		if b == nil {
			b = []byte{}
		}
		return NewByteArray(b), nil
	default:
		return nil, fmt.Errorf("stackitem: unexpected JSON token %v", tok)
	}
}
