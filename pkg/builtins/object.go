package builtins

import (
	"fmt"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

type objectModule struct {
	ctorCommon
}

// Object(value) and new Object(value) behave identically: box primitives,
// pass objects through, and produce a fresh empty object for undefined/null
// or no argument.
func (m objectModule) dispatchCall(r *Registry, args []vm.Value) (vm.Value, error) {
	return m.dispatchConstruct(r, args)
}

func (m objectModule) dispatchConstruct(r *Registry, args []vm.Value) (vm.Value, error) {
	if len(args) == 0 || args[0].IsUndefined() || args[0].IsNull() {
		return vm.ObjectValue(newPlainObject(r)), nil
	}
	return toObject(r, args[0])
}

// newPlainObject creates an empty ordinary object chained to
// Object.prototype.
func newPlainObject(r *Registry) *vm.Object {
	obj := vm.NewObject(r.Get(ids.BuiltinObjectPrototype), vm.KindOrdinary)
	obj.SetClass(ids.MagicObject)
	return obj
}

// toObject boxes a primitive into its wrapper object, passes objects
// through, and throws TypeError for undefined and null.
func toObject(r *Registry, v vm.Value) (vm.Value, error) {
	switch v.Type() {
	case vm.TypeObject:
		return v, nil
	case vm.TypeString:
		return vm.ObjectValue(newStringWrapper(r, v.AsString())), nil
	case vm.TypeNumber:
		return vm.ObjectValue(newWrapper(r, ids.BuiltinNumberPrototype, ids.MagicNumber, v)), nil
	case vm.TypeBoolean:
		return vm.ObjectValue(newWrapper(r, ids.BuiltinBooleanPrototype, ids.MagicBoolean, v)), nil
	case vm.TypeUndefined, vm.TypeNull:
		return throwError(r, ids.MagicTypeError, "cannot convert "+v.Type().String()+" to object")
	default:
		panic("builtins: toObject on internal value")
	}
}

// newWrapper builds a primitive wrapper object with a seeded
// [[PrimitiveValue]].
func newWrapper(r *Registry, proto ids.BuiltinID, class ids.MagicStringID, primitive vm.Value) *vm.Object {
	obj := vm.NewObject(r.Get(proto), vm.KindOrdinary)
	obj.SetClass(class)
	obj.SetPrimitive(primitive)
	return obj
}

var objectPrototypeNames = []ids.MagicStringID{
	ids.MagicToString,
	ids.MagicValueOf,
}

var objectPrototypeRoutines = []routineDesc{
	{ids.MagicToString, objectPrototypeToString, 0, 0},
	{ids.MagicValueOf, objectPrototypeValueOf, 0, 0},
}

func init() {
	assertSortedIDs("Object.prototype", objectPrototypeNames)
}

type objectPrototypeModule struct {
	namespaceKind
}

func (m objectPrototypeModule) tryInstantiateProperty(r *Registry, obj *vm.Object, name string) (*vm.Property, error) {
	return tryInstantiateFromList(r, obj, objectPrototypeNames, name, func(id ids.MagicStringID) (lazyValue, error) {
		length, ok := routineLength(objectPrototypeRoutines, id)
		if !ok {
			panic(fmt.Sprintf("builtins: unexpected Object.prototype member %q", id))
		}
		fn := r.MakeFunctionForRoutine(ids.BuiltinObjectPrototype, id, length)
		return lazyNormal(vm.ObjectValue(fn)), nil
	})
}

func (m objectPrototypeModule) dispatchRoutine(r *Registry, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error) {
	return callFromTable(r, "Object.prototype", objectPrototypeRoutines, routine, this, args)
}

func objectPrototypeToString(r *Registry, this vm.Value, _ []vm.Value) (vm.Value, error) {
	var class string
	switch this.Type() {
	case vm.TypeUndefined:
		class = "Undefined"
	case vm.TypeNull:
		class = "Null"
	case vm.TypeBoolean:
		class = "Boolean"
	case vm.TypeNumber:
		class = "Number"
	case vm.TypeString:
		class = "String"
	case vm.TypeObject:
		class = this.AsObject().Class().String()
	default:
		panic("builtins: Object.prototype.toString on internal value")
	}
	return vm.StringValue("[object " + class + "]"), nil
}

func objectPrototypeValueOf(r *Registry, this vm.Value, _ []vm.Value) (vm.Value, error) {
	return toObject(r, this)
}
