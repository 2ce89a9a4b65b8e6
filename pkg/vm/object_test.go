package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"colibri/pkg/ids"
)

func TestLazyBitmask(t *testing.T) {
	obj := NewObject(nil, KindOrdinary)

	for i := 0; i < 32; i++ {
		require.False(t, obj.TestLazyBit(i), "bit %d should start clear", i)
	}

	obj.SetLazyBit(0)
	obj.SetLazyBit(17)
	obj.SetLazyBit(31)

	require.True(t, obj.TestLazyBit(0))
	require.True(t, obj.TestLazyBit(17))
	require.True(t, obj.TestLazyBit(31))
	require.False(t, obj.TestLazyBit(16))
}

func TestLazyBitOutOfRangePanics(t *testing.T) {
	obj := NewObject(nil, KindOrdinary)
	require.Panics(t, func() { obj.TestLazyBit(32) })
	require.Panics(t, func() { obj.SetLazyBit(-1) })
}

func TestDefineDataPropertyTwicePanics(t *testing.T) {
	obj := NewObject(nil, KindOrdinary)
	obj.DefineDataProperty("x", NumberValue(1), true, true, true)
	require.Panics(t, func() {
		obj.DefineDataProperty("x", NumberValue(2), true, true, true)
	})
}

func TestDeleteOwnHonorsConfigurable(t *testing.T) {
	obj := NewObject(nil, KindOrdinary)
	obj.DefineDataProperty("soft", NumberValue(1), true, true, true)
	obj.DefineDataProperty("hard", NumberValue(2), true, true, false)

	require.True(t, obj.DeleteOwn("soft"))
	_, ok := obj.GetOwn("soft")
	require.False(t, ok)

	require.False(t, obj.DeleteOwn("hard"))
	_, ok = obj.GetOwn("hard")
	require.True(t, ok)

	// Deleting an absent name succeeds vacuously.
	require.True(t, obj.DeleteOwn("missing"))
}

func TestBuiltinTagging(t *testing.T) {
	obj := NewObject(nil, KindOrdinary)
	require.False(t, obj.IsBuiltin())
	require.False(t, obj.HasBuiltinID())
	require.Panics(t, func() { obj.BuiltinID() })

	obj.MarkBuiltin(ids.BuiltinMath, ids.MagicMath)
	require.True(t, obj.IsBuiltin())
	require.True(t, obj.HasBuiltinID())
	require.Equal(t, ids.BuiltinMath, obj.BuiltinID())
	require.Equal(t, ids.MagicMath, obj.Class())
}

func TestRoutineTaggingIsNotASingletonTag(t *testing.T) {
	fn := NewObject(nil, KindBuiltinFunction)
	fn.MarkBuiltinRoutine(ids.MagicFunction)

	require.True(t, fn.IsBuiltin())
	require.False(t, fn.HasBuiltinID())
	require.Panics(t, func() { fn.BuiltinID() })
}

func TestRoutineTokenKindGuard(t *testing.T) {
	ordinary := NewObject(nil, KindOrdinary)
	require.Panics(t, func() { ordinary.SetRoutineToken(1) })
	require.Panics(t, func() { ordinary.RoutineToken() })

	fn := NewObject(nil, KindBuiltinFunction)
	fn.SetRoutineToken(0xBEEF)
	require.Equal(t, uint32(0xBEEF), fn.RoutineToken())
}
