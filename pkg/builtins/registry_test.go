package builtins

import (
	"testing"

	"github.com/stretchr/testify/require"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

func TestGetReturnsSingleton(t *testing.T) {
	r := NewRegistry(FullProfile)

	first := r.Get(ids.BuiltinMath)
	second := r.Get(ids.BuiltinMath)
	require.NotNil(t, first)
	require.Same(t, first, second, "Get must return the same instance every time")
}

func TestIsInstantiatesOnDemand(t *testing.T) {
	r := NewRegistry(FullProfile)

	// A foreign object is not the singleton, but asking the question forces
	// the singleton into existence.
	foreign := vm.NewObject(nil, vm.KindOrdinary)
	require.False(t, r.Is(foreign, ids.BuiltinJSON))

	json := r.Get(ids.BuiltinJSON)
	require.True(t, r.Is(json, ids.BuiltinJSON))
	require.False(t, r.Is(json, ids.BuiltinMath))
}

func TestInstantiateBuildsPrototypeChain(t *testing.T) {
	r := NewRegistry(FullProfile)

	// Asking for the String constructor cascades: Function.prototype and
	// Object.prototype come into existence as its ancestors.
	str := r.Get(ids.BuiltinString)

	fnProto := r.Get(ids.BuiltinFunctionPrototype)
	objProto := r.Get(ids.BuiltinObjectPrototype)
	require.Same(t, fnProto, str.Prototype())
	require.Same(t, objProto, fnProto.Prototype())
	require.Nil(t, objProto.Prototype(), "Object.prototype is the chain root")
}

func TestFinalizeResetsSingletons(t *testing.T) {
	r := NewRegistry(FullProfile)

	before := r.Get(ids.BuiltinGlobal)
	r.Finalize()
	after := r.Get(ids.BuiltinGlobal)

	require.NotSame(t, before, after, "a finalized registry starts over")
}

func TestWrapperPrototypesCarrySeededPrimitives(t *testing.T) {
	r := NewRegistry(FullProfile)

	require.Equal(t, vm.StringValue(""), r.Get(ids.BuiltinStringPrototype).Primitive())
	require.Equal(t, vm.NumberValue(0), r.Get(ids.BuiltinNumberPrototype).Primitive())
	require.Equal(t, vm.False, r.Get(ids.BuiltinBooleanPrototype).Primitive())
}

func TestCompactProfileExcludesHeavyBuiltins(t *testing.T) {
	r := NewRegistry(CompactProfile)

	// The compact set itself instantiates fine.
	require.NotNil(t, r.Get(ids.BuiltinMath))
	require.NotNil(t, r.Get(ids.BuiltinCompactProfileError))

	require.Panics(t, func() { r.Get(ids.BuiltinDate) })
	require.Panics(t, func() { r.Get(ids.BuiltinRegExp) })
	require.Panics(t, func() { r.Get(ids.BuiltinError) })
}

func TestFullProfileExcludesCompactOnlyBuiltins(t *testing.T) {
	r := NewRegistry(FullProfile)
	require.Panics(t, func() { r.Get(ids.BuiltinCompactProfileError) })
}

func TestGetInvalidIDPanics(t *testing.T) {
	r := NewRegistry(FullProfile)
	require.Panics(t, func() { r.Get(ids.BuiltinIDCount) })
	require.Panics(t, func() { r.Is(vm.NewObject(nil, vm.KindOrdinary), ids.BuiltinIDCount) })
}
