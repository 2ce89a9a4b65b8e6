package builtins

import (
	"testing"

	"github.com/stretchr/testify/require"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

func mustRegExp(t *testing.T, r *Registry, pattern, flags string) *vm.Object {
	t.Helper()
	re, err := r.DispatchConstruct(r.Get(ids.BuiltinRegExp), []vm.Value{
		vm.StringValue(pattern), vm.StringValue(flags),
	})
	require.NoError(t, err)
	return re.AsObject()
}

func TestRegExpConstruction(t *testing.T) {
	r := NewRegistry(FullProfile)
	re := mustRegExp(t, r, "a(b+)c", "gi")

	require.Equal(t, ids.MagicRegExp, re.Class())
	require.Same(t, r.Get(ids.BuiltinRegExpPrototype), re.Prototype())

	source, _ := re.GetOwn("source")
	require.Equal(t, vm.StringValue("a(b+)c"), source.Value)
	require.False(t, source.Writable)

	global, _ := re.GetOwn("global")
	require.Equal(t, vm.True, global.Value)
	ignoreCase, _ := re.GetOwn("ignoreCase")
	require.Equal(t, vm.True, ignoreCase.Value)
	multiline, _ := re.GetOwn("multiline")
	require.Equal(t, vm.False, multiline.Value)

	lastIndex, _ := re.GetOwn("lastIndex")
	require.Equal(t, vm.NumberValue(0), lastIndex.Value)
	require.True(t, lastIndex.Writable)
}

func TestRegExpInvalidFlagThrowsSyntaxError(t *testing.T) {
	r := NewRegistry(FullProfile)

	for _, flags := range []string{"x", "gg", "gig"} {
		_, err := r.DispatchConstruct(r.Get(ids.BuiltinRegExp), []vm.Value{
			vm.StringValue("a"), vm.StringValue(flags),
		})
		require.Error(t, err, "flags %q", flags)
		thrown, ok := vm.ThrownValue(err)
		require.True(t, ok, "flags %q", flags)

		name, _, gerr := r.GetProperty(thrown.AsObject(), "name")
		require.NoError(t, gerr)
		require.Equal(t, "SyntaxError", vm.ToString(name))
	}
}

func TestRegExpInvalidPatternThrowsSyntaxError(t *testing.T) {
	r := NewRegistry(FullProfile)

	_, err := r.DispatchConstruct(r.Get(ids.BuiltinRegExp), []vm.Value{vm.StringValue("(unclosed")})
	require.Error(t, err)
	_, ok := vm.ThrownValue(err)
	require.True(t, ok)
}

func TestRegExpTest(t *testing.T) {
	r := NewRegistry(FullProfile)
	re := vm.ObjectValue(mustRegExp(t, r, "b+", ""))

	got, err := r.DispatchRoutine(ids.BuiltinRegExpPrototype, ids.MagicTest, re, []vm.Value{vm.StringValue("abbc")})
	require.NoError(t, err)
	require.Equal(t, vm.True, got)

	got, err = r.DispatchRoutine(ids.BuiltinRegExpPrototype, ids.MagicTest, re, []vm.Value{vm.StringValue("xyz")})
	require.NoError(t, err)
	require.Equal(t, vm.False, got)
}

func TestRegExpExec(t *testing.T) {
	r := NewRegistry(FullProfile)
	re := vm.ObjectValue(mustRegExp(t, r, "(\\w+)@(\\w+)", ""))

	got, err := r.DispatchRoutine(ids.BuiltinRegExpPrototype, ids.MagicExec, re, []vm.Value{vm.StringValue("mail me@example now")})
	require.NoError(t, err)

	result := got.AsObject()
	require.Equal(t, ids.MagicArray, result.Class())

	full, _ := result.GetOwn("0")
	require.Equal(t, vm.StringValue("me@example"), full.Value)
	group1, _ := result.GetOwn("1")
	require.Equal(t, vm.StringValue("me"), group1.Value)
	group2, _ := result.GetOwn("2")
	require.Equal(t, vm.StringValue("example"), group2.Value)

	index, _ := result.GetOwn("index")
	require.Equal(t, 5.0, index.Value.AsNumber())
	input, _ := result.GetOwn("input")
	require.Equal(t, vm.StringValue("mail me@example now"), input.Value)
}

func TestRegExpExecNoMatchReturnsNull(t *testing.T) {
	r := NewRegistry(FullProfile)
	re := vm.ObjectValue(mustRegExp(t, r, "z+", ""))

	got, err := r.DispatchRoutine(ids.BuiltinRegExpPrototype, ids.MagicExec, re, []vm.Value{vm.StringValue("aaa")})
	require.NoError(t, err)
	require.True(t, got.IsNull())
}

func TestRegExpGlobalAdvancesLastIndex(t *testing.T) {
	r := NewRegistry(FullProfile)
	re := mustRegExp(t, r, "a", "g")
	this := vm.ObjectValue(re)
	input := []vm.Value{vm.StringValue("aba")}

	_, err := r.DispatchRoutine(ids.BuiltinRegExpPrototype, ids.MagicExec, this, input)
	require.NoError(t, err)
	lastIndex, _ := re.GetOwn("lastIndex")
	require.Equal(t, 1.0, lastIndex.Value.AsNumber())

	got, err := r.DispatchRoutine(ids.BuiltinRegExpPrototype, ids.MagicExec, this, input)
	require.NoError(t, err)
	index, _ := got.AsObject().GetOwn("index")
	require.Equal(t, 2.0, index.Value.AsNumber())

	// Third exec runs off the end, resets lastIndex and reports no match.
	got, err = r.DispatchRoutine(ids.BuiltinRegExpPrototype, ids.MagicExec, this, input)
	require.NoError(t, err)
	require.True(t, got.IsNull())
	lastIndex, _ = re.GetOwn("lastIndex")
	require.Equal(t, 0.0, lastIndex.Value.AsNumber())
}

func TestRegExpRoutinesRejectForeignReceiver(t *testing.T) {
	r := NewRegistry(FullProfile)

	_, err := r.DispatchRoutine(ids.BuiltinRegExpPrototype, ids.MagicTest, vm.StringValue("not a regexp"), []vm.Value{vm.StringValue("x")})
	require.Error(t, err)
	_, ok := vm.ThrownValue(err)
	require.True(t, ok)
}
