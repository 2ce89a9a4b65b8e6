package builtins

import (
	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

// compactErrorModule implements the CompactProfileError built-in, the
// compact profile's stand-in for every excluded feature. Its constructor and
// every invocation throw the fixed compact-profile error; it exposes no lazy
// members of its own.
type compactErrorModule struct{}

func (compactErrorModule) tryInstantiateProperty(*Registry, *vm.Object, string) (*vm.Property, error) {
	return nil, nil
}

func (compactErrorModule) dispatchCall(r *Registry, _ []vm.Value) (vm.Value, error) {
	return throwCompactProfileError(r)
}

func (compactErrorModule) dispatchConstruct(r *Registry, _ []vm.Value) (vm.Value, error) {
	return throwCompactProfileError(r)
}

func (compactErrorModule) dispatchRoutine(r *Registry, _ ids.MagicStringID, _ vm.Value, _ []vm.Value) (vm.Value, error) {
	return throwCompactProfileError(r)
}
