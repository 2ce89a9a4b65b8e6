package builtins

import (
	"math"
	"strconv"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

type arrayModule struct {
	ctorCommon
}

// Array(...) called as a function creates an array exactly as new Array(...)
// does.
func (m arrayModule) dispatchCall(r *Registry, args []vm.Value) (vm.Value, error) {
	return m.dispatchConstruct(r, args)
}

func (m arrayModule) dispatchConstruct(r *Registry, args []vm.Value) (vm.Value, error) {
	if len(args) == 1 && args[0].IsNumber() {
		length := args[0].AsNumber()
		if length != math.Trunc(length) || length < 0 || length > math.MaxUint32-1 {
			return throwError(r, ids.MagicRangeError, "invalid array length")
		}
		return vm.ObjectValue(newArrayObject(r, nil, length)), nil
	}
	return vm.ObjectValue(newArrayObject(r, args, float64(len(args)))), nil
}

// newArrayObject builds an Array-classed object with the given elements as
// index properties and a non-enumerable writable length.
func newArrayObject(r *Registry, elements []vm.Value, length float64) *vm.Object {
	obj := vm.NewObject(r.Get(ids.BuiltinArrayPrototype), vm.KindOrdinary)
	obj.SetClass(ids.MagicArray)
	for i, el := range elements {
		obj.DefineDataProperty(strconv.Itoa(i), el, true, true, true)
	}
	obj.DefineDataProperty("length", vm.NumberValue(length), true, false, false)
	return obj
}

type arrayPrototypeModule struct {
	namespaceKind
	noRoutines
}

// Array.prototype's own method surface lives with the array semantics
// collaborator; nothing instantiates lazily here.
func (m arrayPrototypeModule) tryInstantiateProperty(*Registry, *vm.Object, string) (*vm.Property, error) {
	return nil, nil
}
