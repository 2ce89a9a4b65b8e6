package builtins

import (
	"fmt"
	"math"
	"strconv"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

type numberModule struct {
	ctorCommon
}

func (m numberModule) dispatchCall(r *Registry, args []vm.Value) (vm.Value, error) {
	if len(args) == 0 {
		return vm.NumberValue(0), nil
	}
	return vm.ToNumber(args[0])
}

func (m numberModule) dispatchConstruct(r *Registry, args []vm.Value) (vm.Value, error) {
	primitive := vm.NumberValue(0)
	if len(args) > 0 {
		num, err := vm.ToNumber(args[0])
		if err != nil {
			return vm.Undefined, err
		}
		primitive = num
	}
	return vm.ObjectValue(newWrapper(r, ids.BuiltinNumberPrototype, ids.MagicNumber, primitive)), nil
}

var numberPrototypeNames = []ids.MagicStringID{
	ids.MagicToString,
	ids.MagicValueOf,
}

var numberPrototypeRoutines = []routineDesc{
	{ids.MagicToString, numberPrototypeToString, 1, 1},
	{ids.MagicValueOf, numberPrototypeValueOf, 0, 0},
}

func init() {
	assertSortedIDs("Number.prototype", numberPrototypeNames)
}

type numberPrototypeModule struct {
	namespaceKind
}

func (m numberPrototypeModule) tryInstantiateProperty(r *Registry, obj *vm.Object, name string) (*vm.Property, error) {
	return tryInstantiateFromList(r, obj, numberPrototypeNames, name, func(id ids.MagicStringID) (lazyValue, error) {
		length, ok := routineLength(numberPrototypeRoutines, id)
		if !ok {
			panic(fmt.Sprintf("builtins: unexpected Number.prototype member %q", id))
		}
		fn := r.MakeFunctionForRoutine(ids.BuiltinNumberPrototype, id, length)
		return lazyNormal(vm.ObjectValue(fn)), nil
	})
}

func (m numberPrototypeModule) dispatchRoutine(r *Registry, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error) {
	return callFromTable(r, "Number.prototype", numberPrototypeRoutines, routine, this, args)
}

// thisNumberValue resolves the primitive number behind a Number.prototype
// routine's this value.
func thisNumberValue(r *Registry, this vm.Value) (float64, error) {
	switch {
	case this.IsNumber():
		return this.AsNumber(), nil
	case this.IsObject():
		obj := this.AsObject()
		if obj.Class() == ids.MagicNumber && obj.Primitive().IsNumber() {
			return obj.Primitive().AsNumber(), nil
		}
	}
	_, err := throwError(r, ids.MagicTypeError, "Number.prototype method called on incompatible receiver")
	return 0, err
}

func numberPrototypeToString(r *Registry, this vm.Value, args []vm.Value) (vm.Value, error) {
	f, err := thisNumberValue(r, this)
	if err != nil {
		return vm.Undefined, err
	}

	if args[0].IsUndefined() {
		return vm.StringValue(vm.FormatNumber(f)), nil
	}

	radixNum, err := vm.ToNumber(args[0])
	if err != nil {
		return vm.Undefined, err
	}
	radix := int(toInteger(radixNum.AsNumber()))
	switch {
	case radix < 2 || radix > 36:
		return throwError(r, ids.MagicRangeError, "toString radix must be between 2 and 36")
	case radix == 10:
		return vm.StringValue(vm.FormatNumber(f)), nil
	case f == math.Trunc(f) && !math.IsInf(f, 0):
		return vm.StringValue(strconv.FormatInt(int64(f), radix)), nil
	}
	// Fractional output in a non-decimal radix is left to the numeric
	// formatting collaborator.
	return unimplementedOp(r, "Number.prototype.toString with fractional value and non-decimal radix")
}

func numberPrototypeValueOf(r *Registry, this vm.Value, _ []vm.Value) (vm.Value, error) {
	f, err := thisNumberValue(r, this)
	if err != nil {
		return vm.Undefined, err
	}
	return vm.NumberValue(f), nil
}
