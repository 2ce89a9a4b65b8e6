package builtins

import (
	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

type functionModule struct {
	ctorCommon
}

// The Function constructor compiles source text, which belongs to the
// parser collaborator; the constructor is wired but has no body here.
func (m functionModule) dispatchCall(r *Registry, args []vm.Value) (vm.Value, error) {
	return unimplementedOp(r, "Function constructor")
}

func (m functionModule) dispatchConstruct(r *Registry, args []vm.Value) (vm.Value, error) {
	return unimplementedOp(r, "Function constructor")
}

// functionPrototypeModule backs Function.prototype, which is itself a
// callable object: it accepts any arguments and returns undefined.
type functionPrototypeModule struct {
	noRoutines
}

func (m functionPrototypeModule) tryInstantiateProperty(*Registry, *vm.Object, string) (*vm.Property, error) {
	return nil, nil
}

func (m functionPrototypeModule) dispatchCall(*Registry, []vm.Value) (vm.Value, error) {
	return vm.Undefined, nil
}

func (m functionPrototypeModule) dispatchConstruct(r *Registry, _ []vm.Value) (vm.Value, error) {
	return throwError(r, ids.MagicTypeError, "Function.prototype is not a constructor")
}
