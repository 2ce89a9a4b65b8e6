package builtins

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

var jsonPropertyNames = []ids.MagicStringID{
	ids.MagicParse,
	ids.MagicStringify,
}

var jsonRoutines = []routineDesc{
	{ids.MagicParse, jsonParse, 1, 2},
	{ids.MagicStringify, jsonStringify, 1, 3},
}

func init() {
	assertSortedIDs("JSON", jsonPropertyNames)
}

type jsonModule struct {
	namespaceKind
}

func (m jsonModule) tryInstantiateProperty(r *Registry, obj *vm.Object, name string) (*vm.Property, error) {
	return tryInstantiateFromList(r, obj, jsonPropertyNames, name, func(id ids.MagicStringID) (lazyValue, error) {
		length, ok := routineLength(jsonRoutines, id)
		if !ok {
			panic(fmt.Sprintf("builtins: unexpected JSON member %q", id))
		}
		fn := r.MakeFunctionForRoutine(ids.BuiltinJSON, id, length)
		return lazyNormal(vm.ObjectValue(fn)), nil
	})
}

func (m jsonModule) dispatchRoutine(r *Registry, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error) {
	return callFromTable(r, "JSON", jsonRoutines, routine, this, args)
}

func jsonParse(r *Registry, _ vm.Value, args []vm.Value) (vm.Value, error) {
	text := vm.ToString(args[0])

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return throwError(r, ids.MagicSyntaxError, "JSON.parse: "+err.Error())
	}
	return jsonToValue(r, decoded), nil
}

// jsonToValue converts the decoded JSON tree into engine values. Objects and
// arrays become fresh ordinary and Array objects with enumerable members.
func jsonToValue(r *Registry, decoded any) vm.Value {
	switch d := decoded.(type) {
	case nil:
		return vm.Null
	case bool:
		return vm.BooleanValue(d)
	case float64:
		return vm.NumberValue(d)
	case string:
		return vm.StringValue(d)
	case []any:
		elements := make([]vm.Value, len(d))
		for i, el := range d {
			elements[i] = jsonToValue(r, el)
		}
		return vm.ObjectValue(newArrayObject(r, elements, float64(len(elements))))
	case map[string]any:
		obj := newPlainObject(r)
		// Deterministic member order; encoding/json hands us an unordered map.
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			obj.DefineDataProperty(k, jsonToValue(r, d[k]), true, true, true)
		}
		return vm.ObjectValue(obj)
	default:
		panic(fmt.Sprintf("builtins: unexpected JSON decode type %T", decoded))
	}
}

func jsonStringify(r *Registry, _ vm.Value, args []vm.Value) (vm.Value, error) {
	encoded, ok, err := valueToJSON(r, args[0])
	if err != nil {
		return vm.Undefined, err
	}
	if !ok {
		return vm.Undefined, nil
	}
	out, merr := json.Marshal(encoded)
	if merr != nil {
		return throwError(r, ids.MagicTypeError, "JSON.stringify: "+merr.Error())
	}
	return vm.StringValue(string(out)), nil
}

// valueToJSON converts an engine value into an encoding/json-marshalable
// tree. The second result is false for values JSON.stringify omits entirely
// (undefined and callables).
func valueToJSON(r *Registry, v vm.Value) (any, bool, error) {
	switch v.Type() {
	case vm.TypeUndefined:
		return nil, false, nil
	case vm.TypeNull:
		return nil, true, nil
	case vm.TypeBoolean:
		return v.AsBoolean(), true, nil
	case vm.TypeNumber:
		f := v.AsNumber()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, true, nil
		}
		return f, true, nil
	case vm.TypeString:
		return v.AsString(), true, nil
	case vm.TypeObject:
		obj := v.AsObject()
		if v.IsCallable() {
			return nil, false, nil
		}
		if obj.Class() == ids.MagicArray {
			return arrayToJSON(r, obj)
		}
		return objectToJSON(r, obj)
	default:
		panic(fmt.Sprintf("builtins: cannot serialize %s value", v.Type()))
	}
}

func arrayToJSON(r *Registry, obj *vm.Object) (any, bool, error) {
	length := 0
	if p, ok := obj.GetOwn("length"); ok && p.Kind == vm.DataProperty && p.Value.IsNumber() {
		length = int(p.Value.AsNumber())
	}
	out := make([]any, length)
	for i := 0; i < length; i++ {
		el, _, err := r.GetProperty(obj, strconv.Itoa(i))
		if err != nil {
			return nil, false, err
		}
		encoded, ok, err := valueToJSON(r, el)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			encoded = nil // omitted elements serialize as null inside arrays
		}
		out[i] = encoded
	}
	return out, true, nil
}

func objectToJSON(r *Registry, obj *vm.Object) (any, bool, error) {
	out := map[string]any{}
	for _, p := range obj.OwnProperties() {
		if !p.Enumerable || p.Kind != vm.DataProperty {
			continue
		}
		encoded, ok, err := valueToJSON(r, p.Value)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		out[p.Name] = encoded
	}
	return out, true, nil
}
