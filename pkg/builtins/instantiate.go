package builtins

import (
	"fmt"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

// TryInstantiateProperty is the lazy property instantiator entry point,
// consulted by the general property-lookup path exactly once per miss on a
// built-in object. It resolves the object's built-in id and forwards to the
// owning kind's hook.
//
// Returns (nil, nil) when name is not one of the kind's built-in members, or
// when the member was materialized before (the bitmask bit is set); a
// previously materialized then deleted member intentionally stays absent.
func (r *Registry) TryInstantiateProperty(obj *vm.Object, name string) (*vm.Property, error) {
	if obj == nil || !obj.IsBuiltin() {
		panic("builtins: TryInstantiateProperty on non-builtin object")
	}

	id := obj.BuiltinID()
	if !r.Is(obj, id) {
		panic(fmt.Sprintf("builtins: object tagged %s is not the registry singleton", id))
	}

	m, err := r.moduleFor(id)
	if err != nil {
		return nil, err
	}
	return m.tryInstantiateProperty(r, obj, name)
}

// tryInstantiateFromList implements the shared lazy-instantiation steps over
// a kind's sorted property-name list: magic-string lookup, binary search,
// bitmask check-and-set, then value resolution and installation. The resolve
// callback computes the member described by the matched id.
func tryInstantiateFromList(r *Registry, obj *vm.Object, names []ids.MagicStringID, name string,
	resolve func(id ids.MagicStringID) (lazyValue, error)) (*vm.Property, error) {

	id, ok := ids.Lookup(name)
	if !ok {
		return nil, nil
	}

	index := BinSearchMagicID(names, id)
	if index < 0 {
		return nil, nil
	}
	if index >= 32 {
		panic(fmt.Sprintf("builtins: property index %d exceeds the instantiation bitmask", index))
	}

	if obj.TestLazyBit(index) {
		// Materialized before. The caller only consults this path on a
		// lookup miss, so the property was deleted since; deleted built-in
		// members stay absent.
		return nil, nil
	}
	obj.SetLazyBit(index)

	lv, err := resolve(id)
	if err != nil {
		return nil, err
	}

	if lv.accessor {
		return obj.DefineAccessorProperty(name, lv.getter, lv.setter, lv.enumerable, lv.configurable), nil
	}
	return obj.DefineDataProperty(name, lv.value, lv.writable, lv.enumerable, lv.configurable), nil
}

// GetProperty is the core's minimal stand-in for the engine's property
// lookup: own properties first, the lazy instantiator on a miss, then the
// prototype chain. Accessor properties invoke their getter through the
// dispatcher. Returns found=false when the name resolves nowhere.
func (r *Registry) GetProperty(obj *vm.Object, name string) (vm.Value, bool, error) {
	for o := obj; o != nil; o = o.Prototype() {
		p, ok := o.GetOwn(name)
		if !ok && o.HasBuiltinID() {
			lazy, err := r.TryInstantiateProperty(o, name)
			if err != nil {
				return vm.Undefined, false, err
			}
			if lazy != nil {
				p, ok = lazy, true
			}
		}
		if !ok {
			continue
		}
		if p.Kind == vm.AccessorProperty {
			if p.Getter == nil {
				return vm.Undefined, true, nil
			}
			v, err := r.DispatchCall(p.Getter, vm.ObjectValue(obj), nil)
			return v, true, err
		}
		return p.Value, true, nil
	}
	return vm.Undefined, false, nil
}
