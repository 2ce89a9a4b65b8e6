package builtins

import (
	"fmt"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

// errorModule implements Error and each of the native error subtypes; name
// picks which one.
type errorModule struct {
	ctorCommon
	name ids.MagicStringID
}

// Error(...) called as a function constructs exactly as new Error(...) does.
func (m errorModule) dispatchCall(r *Registry, args []vm.Value) (vm.Value, error) {
	return m.dispatchConstruct(r, args)
}

func (m errorModule) dispatchConstruct(r *Registry, args []vm.Value) (vm.Value, error) {
	obj := vm.NewObject(r.Get(ids.BuiltinErrorPrototype), vm.KindOrdinary)
	obj.SetClass(ids.MagicError)
	obj.DefineDataProperty("name", vm.StringValue(m.name.String()), true, false, true)
	if len(args) > 0 && !args[0].IsUndefined() {
		obj.DefineDataProperty("message", vm.StringValue(vm.ToString(args[0])), true, false, true)
	}
	return vm.ObjectValue(obj), nil
}

var errorPrototypeNames = []ids.MagicStringID{
	ids.MagicToString,
	ids.MagicName,
	ids.MagicMessage,
}

var errorPrototypeRoutines = []routineDesc{
	{ids.MagicToString, errorPrototypeToString, 0, 0},
}

func init() {
	assertSortedIDs("Error.prototype", errorPrototypeNames)
}

type errorPrototypeModule struct {
	namespaceKind
}

func (m errorPrototypeModule) tryInstantiateProperty(r *Registry, obj *vm.Object, name string) (*vm.Property, error) {
	return tryInstantiateFromList(r, obj, errorPrototypeNames, name, func(id ids.MagicStringID) (lazyValue, error) {
		switch id {
		case ids.MagicName:
			return lazyNormal(vm.StringValue("Error")), nil
		case ids.MagicMessage:
			return lazyNormal(vm.StringValue("")), nil
		case ids.MagicToString:
			fn := r.MakeFunctionForRoutine(ids.BuiltinErrorPrototype, id, 0)
			return lazyNormal(vm.ObjectValue(fn)), nil
		default:
			panic(fmt.Sprintf("builtins: unexpected Error.prototype member %q", id))
		}
	})
}

func (m errorPrototypeModule) dispatchRoutine(r *Registry, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error) {
	return callFromTable(r, "Error.prototype", errorPrototypeRoutines, routine, this, args)
}

// errorPrototypeToString composes "name: message" from the receiver's
// (possibly inherited) name and message properties.
func errorPrototypeToString(r *Registry, this vm.Value, _ []vm.Value) (vm.Value, error) {
	if !this.IsObject() {
		return throwError(r, ids.MagicTypeError, "Error.prototype.toString called on non-object")
	}
	obj := this.AsObject()

	nameVal, found, err := r.GetProperty(obj, "name")
	if err != nil {
		return vm.Undefined, err
	}
	name := "Error"
	if found && !nameVal.IsUndefined() {
		name = vm.ToString(nameVal)
	}

	msgVal, found, err := r.GetProperty(obj, "message")
	if err != nil {
		return vm.Undefined, err
	}
	message := ""
	if found && !msgVal.IsUndefined() {
		message = vm.ToString(msgVal)
	}

	switch {
	case name == "":
		return vm.StringValue(message), nil
	case message == "":
		return vm.StringValue(name), nil
	}
	return vm.StringValue(name + ": " + message), nil
}
