package builtins

import (
	"fmt"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

// Routine token layout: (owner builtin id, routine id) packed into one
// uint32 stored on every built-in routine function object. The sub-fields
// must not overlap and must round-trip exactly.
const (
	routineTokenOwnerPos   = 0
	routineTokenOwnerWidth = 8

	routineTokenRoutinePos   = 8
	routineTokenRoutineWidth = 16
)

// PackRoutineToken encodes an (owner, routine) pair. Overflowing a field
// width is a compile-time-bounded condition, so it panics rather than
// returning an error.
func PackRoutineToken(owner ids.BuiltinID, routine ids.MagicStringID) uint32 {
	if uint32(owner) >= 1<<routineTokenOwnerWidth {
		panic(fmt.Sprintf("builtins: builtin id %d overflows token field", owner))
	}
	if uint32(routine) >= 1<<routineTokenRoutineWidth {
		panic(fmt.Sprintf("builtins: routine id %d overflows token field", routine))
	}
	return uint32(owner)<<routineTokenOwnerPos | uint32(routine)<<routineTokenRoutinePos
}

// UnpackRoutineToken decodes a packed routine token.
func UnpackRoutineToken(token uint32) (ids.BuiltinID, ids.MagicStringID) {
	owner := ids.BuiltinID(token >> routineTokenOwnerPos & (1<<routineTokenOwnerWidth - 1))
	routine := ids.MagicStringID(token >> routineTokenRoutinePos & (1<<routineTokenRoutineWidth - 1))
	return owner, routine
}

// MakeFunctionForRoutine constructs the function object for a built-in
// routine: builtin-function kind, Function.prototype as prototype, the
// packed routine token, and a frozen numeric "length" property.
func (r *Registry) MakeFunctionForRoutine(owner ids.BuiltinID, routine ids.MagicStringID, length float64) *vm.Object {
	proto := r.Get(ids.BuiltinFunctionPrototype)

	fn := vm.NewObject(proto, vm.KindBuiltinFunction)
	fn.MarkBuiltinRoutine(ids.MagicFunction)
	fn.SetRoutineToken(PackRoutineToken(owner, routine))
	fn.DefineDataProperty("length", vm.NumberValue(length), false, false, false)

	return fn
}

// DispatchCall handles [[Call]] on a built-in object. Built-in routine
// wrappers route through their packed token; directly callable constructors
// route through their kind's dispatch-call hook.
func (r *Registry) DispatchCall(obj *vm.Object, this vm.Value, args []vm.Value) (vm.Value, error) {
	if obj == nil || !obj.IsBuiltin() {
		panic("builtins: DispatchCall on non-builtin object")
	}

	switch obj.Kind() {
	case vm.KindBuiltinFunction:
		owner, routine := UnpackRoutineToken(obj.RoutineToken())
		if !owner.Valid() {
			panic(fmt.Sprintf("builtins: routine token names builtin id %d out of range", owner))
		}
		if !routine.Valid() {
			panic(fmt.Sprintf("builtins: routine token names routine id %d out of range", routine))
		}
		return r.DispatchRoutine(owner, routine, this, args)

	case vm.KindFunction:
		id := obj.BuiltinID()
		if !r.Is(obj, id) {
			panic(fmt.Sprintf("builtins: object tagged %s is not the registry singleton", id))
		}
		m, err := r.moduleFor(id)
		if err != nil {
			return vm.Undefined, err
		}
		return m.dispatchCall(r, args)

	default:
		panic(fmt.Sprintf("builtins: [[Call]] on %s built-in object", obj.Kind()))
	}
}

// DispatchConstruct handles [[Construct]] on a built-in constructor object.
func (r *Registry) DispatchConstruct(obj *vm.Object, args []vm.Value) (vm.Value, error) {
	if obj == nil || !obj.IsBuiltin() {
		panic("builtins: DispatchConstruct on non-builtin object")
	}
	if obj.Kind() != vm.KindFunction {
		panic(fmt.Sprintf("builtins: [[Construct]] on %s built-in object", obj.Kind()))
	}

	id := obj.BuiltinID()
	if !r.Is(obj, id) {
		panic(fmt.Sprintf("builtins: object tagged %s is not the registry singleton", id))
	}
	m, err := r.moduleFor(id)
	if err != nil {
		return vm.Undefined, err
	}
	return m.dispatchConstruct(r, args)
}

// DispatchRoutine forwards a routine invocation to the owning kind's routine
// table.
func (r *Registry) DispatchRoutine(owner ids.BuiltinID, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error) {
	m, err := r.moduleFor(owner)
	if err != nil {
		return vm.Undefined, err
	}
	return m.dispatchRoutine(r, routine, this, args)
}
