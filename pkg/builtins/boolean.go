package builtins

import (
	"fmt"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

type booleanModule struct {
	ctorCommon
}

func (m booleanModule) dispatchCall(r *Registry, args []vm.Value) (vm.Value, error) {
	if len(args) == 0 {
		return vm.False, nil
	}
	return vm.BooleanValue(vm.ToBoolean(args[0])), nil
}

func (m booleanModule) dispatchConstruct(r *Registry, args []vm.Value) (vm.Value, error) {
	primitive := vm.False
	if len(args) > 0 {
		primitive = vm.BooleanValue(vm.ToBoolean(args[0]))
	}
	return vm.ObjectValue(newWrapper(r, ids.BuiltinBooleanPrototype, ids.MagicBoolean, primitive)), nil
}

var booleanPrototypeNames = []ids.MagicStringID{
	ids.MagicToString,
	ids.MagicValueOf,
}

var booleanPrototypeRoutines = []routineDesc{
	{ids.MagicToString, booleanPrototypeToString, 0, 0},
	{ids.MagicValueOf, booleanPrototypeValueOf, 0, 0},
}

func init() {
	assertSortedIDs("Boolean.prototype", booleanPrototypeNames)
}

type booleanPrototypeModule struct {
	namespaceKind
}

func (m booleanPrototypeModule) tryInstantiateProperty(r *Registry, obj *vm.Object, name string) (*vm.Property, error) {
	return tryInstantiateFromList(r, obj, booleanPrototypeNames, name, func(id ids.MagicStringID) (lazyValue, error) {
		length, ok := routineLength(booleanPrototypeRoutines, id)
		if !ok {
			panic(fmt.Sprintf("builtins: unexpected Boolean.prototype member %q", id))
		}
		fn := r.MakeFunctionForRoutine(ids.BuiltinBooleanPrototype, id, length)
		return lazyNormal(vm.ObjectValue(fn)), nil
	})
}

func (m booleanPrototypeModule) dispatchRoutine(r *Registry, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error) {
	return callFromTable(r, "Boolean.prototype", booleanPrototypeRoutines, routine, this, args)
}

func thisBooleanValue(r *Registry, this vm.Value) (bool, error) {
	switch this.Type() {
	case vm.TypeBoolean:
		return this.AsBoolean(), nil
	case vm.TypeObject:
		obj := this.AsObject()
		if obj.Class() == ids.MagicBoolean && obj.Primitive().Type() == vm.TypeBoolean {
			return obj.Primitive().AsBoolean(), nil
		}
	}
	_, err := throwError(r, ids.MagicTypeError, "Boolean.prototype method called on incompatible receiver")
	return false, err
}

func booleanPrototypeToString(r *Registry, this vm.Value, _ []vm.Value) (vm.Value, error) {
	b, err := thisBooleanValue(r, this)
	if err != nil {
		return vm.Undefined, err
	}
	if b {
		return vm.StringValue("true"), nil
	}
	return vm.StringValue("false"), nil
}

func booleanPrototypeValueOf(r *Registry, this vm.Value, _ []vm.Value) (vm.Value, error) {
	b, err := thisBooleanValue(r, this)
	if err != nil {
		return vm.Undefined, err
	}
	return vm.BooleanValue(b), nil
}
