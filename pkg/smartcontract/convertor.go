package smartcontract

import (
	"github.com/nspcc-dev/neo3-sdk-go/pkg/vm/stackitem"
)

// ParameterFromStackItem converts a VM stack item into its Parameter
// equivalent, tracking composite items already visited in seen so that
// a cyclic Array/Struct/Map doesn't recurse forever (matching it with
// an empty Array/Map Parameter on the second encounter).
func ParameterFromStackItem(item stackitem.Item, seen map[stackitem.Item]bool) Parameter {
	if item == nil {
		return Parameter{Type: AnyType}
	}
	switch t := item.Type(); t {
	case stackitem.AnyT:
		return Parameter{Type: AnyType}
	case stackitem.BooleanT:
		return Parameter{Type: BoolType, Value: item.Value().(bool)}
	case stackitem.IntegerT:
		return Parameter{Type: IntegerType, Value: item.Value()}
	case stackitem.ByteArrayT, stackitem.BufferT:
		b, _ := item.Value().([]byte)
		return Parameter{Type: ByteArrayType, Value: b}
	case stackitem.ArrayT, stackitem.StructT:
		if seen[item] {
			return Parameter{Type: ArrayType, Value: []Parameter{}}
		}
		seen[item] = true
		items, _ := item.Value().([]stackitem.Item)
		ps := make([]Parameter, len(items))
		for i, it := range items {
			ps[i] = ParameterFromStackItem(it, seen)
		}
		return Parameter{Type: ArrayType, Value: ps}
	case stackitem.MapT:
		if seen[item] {
			return Parameter{Type: MapType, Value: []ParameterPair{}}
		}
		seen[item] = true
		elems, _ := item.Value().([]stackitem.MapElement)
		pairs := make([]ParameterPair, len(elems))
		for i, e := range elems {
			pairs[i] = ParameterPair{
				Key:   ParameterFromStackItem(e.Key, seen),
				Value: ParameterFromStackItem(e.Value, seen),
			}
		}
		return Parameter{Type: MapType, Value: pairs}
	case stackitem.InteropT:
		return Parameter{Type: InteropInterfaceType, Value: nil}
	case stackitem.PointerT:
		return Parameter{Type: InteropInterfaceType, Value: nil}
	default:
		return Parameter{Type: UnknownType}
	}
}
