package builtins

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

func TestGlobalFrozenConstants(t *testing.T) {
	r := NewRegistry(FullProfile)
	global := r.Get(ids.BuiltinGlobal)

	undef, err := r.TryInstantiateProperty(global, "undefined")
	require.NoError(t, err)
	require.NotNil(t, undef)
	require.Equal(t, vm.Undefined, undef.Value)
	require.False(t, undef.Writable)
	require.False(t, undef.Enumerable)
	require.False(t, undef.Configurable)

	nan, err := r.TryInstantiateProperty(global, "NaN")
	require.NoError(t, err)
	require.NotNil(t, nan)
	require.True(t, math.IsNaN(nan.Value.AsNumber()))

	inf, err := r.TryInstantiateProperty(global, "Infinity")
	require.NoError(t, err)
	require.NotNil(t, inf)
	require.True(t, math.IsInf(inf.Value.AsNumber(), 1))
}

func TestGlobalUnknownNameStaysAbsent(t *testing.T) {
	r := NewRegistry(FullProfile)
	global := r.Get(ids.BuiltinGlobal)

	p, err := r.TryInstantiateProperty(global, "definitelyNotAGlobal")
	require.NoError(t, err)
	require.Nil(t, p)

	// "prototype" is a magic string, but not a global member.
	p, err = r.TryInstantiateProperty(global, "prototype")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestGlobalMaterializesOnce(t *testing.T) {
	r := NewRegistry(FullProfile)
	global := r.Get(ids.BuiltinGlobal)

	first, err := r.TryInstantiateProperty(global, "Object")
	require.NoError(t, err)
	require.NotNil(t, first)

	// The instantiator reports a second materialization attempt as a miss;
	// the property itself remains installed.
	second, err := r.TryInstantiateProperty(global, "Object")
	require.NoError(t, err)
	require.Nil(t, second)

	installed, ok := global.GetOwn("Object")
	require.True(t, ok)
	require.Same(t, first, installed)
}

func TestGlobalDeletedMemberStaysAbsent(t *testing.T) {
	r := NewRegistry(FullProfile)
	global := r.Get(ids.BuiltinGlobal)

	v, found, err := r.GetProperty(global, "Math")
	require.NoError(t, err)
	require.True(t, found)
	require.Same(t, r.Get(ids.BuiltinMath), v.AsObject())

	require.True(t, global.DeleteOwn("Math"))

	_, found, err = r.GetProperty(global, "Math")
	require.NoError(t, err)
	require.False(t, found, "deleted built-in member must not rematerialize")
}

func TestGlobalObjectReferenceIsRegistrySingleton(t *testing.T) {
	r := NewRegistry(FullProfile)
	global := r.Get(ids.BuiltinGlobal)

	v, found, err := r.GetProperty(global, "Object")
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, r.Is(v.AsObject(), ids.BuiltinObject))

	p, ok := global.GetOwn("Object")
	require.True(t, ok)
	require.True(t, p.Writable)
	require.False(t, p.Enumerable)
	require.True(t, p.Configurable)
}

func TestGlobalIsNaN(t *testing.T) {
	r := NewRegistry(FullProfile)

	tests := []struct {
		name string
		arg  vm.Value
		want bool
	}{
		{"NaN", vm.NumberValue(math.NaN()), true},
		{"number", vm.NumberValue(4), false},
		{"numeric string", vm.StringValue("4"), false},
		{"garbage string", vm.StringValue("not a number"), true},
		{"undefined", vm.Undefined, true},
		{"null", vm.Null, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.DispatchRoutine(ids.BuiltinGlobal, ids.MagicIsNaN, vm.Undefined, []vm.Value{tt.arg})
			require.NoError(t, err)
			require.Equal(t, vm.BooleanValue(tt.want), got)
		})
	}
}

func TestGlobalIsFinite(t *testing.T) {
	r := NewRegistry(FullProfile)

	tests := []struct {
		name string
		arg  vm.Value
		want bool
	}{
		{"finite", vm.NumberValue(1.5), true},
		{"Infinity", vm.NumberValue(math.Inf(1)), false},
		{"negative Infinity", vm.NumberValue(math.Inf(-1)), false},
		{"NaN", vm.NumberValue(math.NaN()), false},
		{"boolean coerces", vm.True, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.DispatchRoutine(ids.BuiltinGlobal, ids.MagicIsFinite, vm.Undefined, []vm.Value{tt.arg})
			require.NoError(t, err)
			require.Equal(t, vm.BooleanValue(tt.want), got)
		})
	}
}

func TestGlobalIsNaNCoercionFailurePropagates(t *testing.T) {
	r := NewRegistry(FullProfile)

	obj := vm.ObjectValue(vm.NewObject(nil, vm.KindOrdinary))
	_, err := r.DispatchRoutine(ids.BuiltinGlobal, ids.MagicIsNaN, vm.Undefined, []vm.Value{obj})
	require.Error(t, err)
	_, ok := vm.ThrownValue(err)
	require.True(t, ok, "coercion failure must surface as a thrown completion")
}

func TestGlobalEvalIsWiredButUnimplemented(t *testing.T) {
	r := NewRegistry(FullProfile)
	global := r.Get(ids.BuiltinGlobal)

	p, err := r.TryInstantiateProperty(global, "eval")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, vm.DataProperty, p.Kind)
	require.True(t, p.Value.IsCallable())

	_, err = r.DispatchRoutine(ids.BuiltinGlobal, ids.MagicEval, vm.Undefined, []vm.Value{vm.StringValue("1")})
	require.Error(t, err)
	_, thrown := vm.ThrownValue(err)
	require.False(t, thrown, "full profile faults to the host, not to script")
}

func TestCompactProfileThrowingAccessors(t *testing.T) {
	r := NewRegistry(CompactProfile)
	global := r.Get(ids.BuiltinGlobal)

	for _, name := range []string{"Date", "RegExp", "Error", "TypeError", "JSON"} {
		p, err := r.TryInstantiateProperty(global, name)
		require.NoError(t, err, name)
		require.NotNil(t, p, name)
		require.Equal(t, vm.AccessorProperty, p.Kind, name)
		require.Same(t, r.Get(ids.BuiltinCompactProfileError), p.Getter, name)
		require.Same(t, r.Get(ids.BuiltinCompactProfileError), p.Setter, name)
		require.True(t, p.Enumerable, name)
		require.False(t, p.Configurable, name)
	}
}

func TestCompactProfileAccessThrows(t *testing.T) {
	r := NewRegistry(CompactProfile)
	global := r.Get(ids.BuiltinGlobal)

	_, _, err := r.GetProperty(global, "Date")
	require.Error(t, err)

	thrown, ok := vm.ThrownValue(err)
	require.True(t, ok, "compact profile access must throw to script")

	obj := thrown.AsObject()
	name, _, err := r.GetProperty(obj, "name")
	require.NoError(t, err)
	require.Equal(t, "CompactProfileError", vm.ToString(name))

	message, _, err := r.GetProperty(obj, "message")
	require.NoError(t, err)
	require.Equal(t, compactProfileErrorMessage, vm.ToString(message))

	// Excluded error objects chain to Object.prototype under this profile.
	require.Same(t, r.Get(ids.BuiltinObjectPrototype), obj.Prototype())
}

func TestCompactProfileGlobalExposesCompactError(t *testing.T) {
	r := NewRegistry(CompactProfile)
	global := r.Get(ids.BuiltinGlobal)

	v, found, err := r.GetProperty(global, "CompactProfileError")
	require.NoError(t, err)
	require.True(t, found)
	require.Same(t, r.Get(ids.BuiltinCompactProfileError), v.AsObject())

	// Constructing it throws as well.
	_, err = r.DispatchConstruct(v.AsObject(), nil)
	require.Error(t, err)
	_, ok := vm.ThrownValue(err)
	require.True(t, ok)
}

func TestFullProfileGlobalExposesHeavyBuiltins(t *testing.T) {
	r := NewRegistry(FullProfile)
	global := r.Get(ids.BuiltinGlobal)

	for name, id := range map[string]ids.BuiltinID{
		"Date":   ids.BuiltinDate,
		"RegExp": ids.BuiltinRegExp,
		"Error":  ids.BuiltinError,
		"JSON":   ids.BuiltinJSON,
	} {
		v, found, err := r.GetProperty(global, name)
		require.NoError(t, err, name)
		require.True(t, found, name)
		require.Same(t, r.Get(id), v.AsObject(), name)
	}

	// No CompactProfileError in the full profile's global surface.
	_, found, err := r.GetProperty(global, "CompactProfileError")
	require.NoError(t, err)
	require.False(t, found)
}

func TestGlobalPropertyListsFitTheBitmask(t *testing.T) {
	require.LessOrEqual(t, len(globalPropertyNames), 32)
	require.LessOrEqual(t, len(globalPropertyNamesCompact), 32)
}
