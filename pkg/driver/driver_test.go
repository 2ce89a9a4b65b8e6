package driver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"colibri/pkg/builtins"
	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

func TestLookupDottedPath(t *testing.T) {
	engine := New(Options{Profile: builtins.FullProfile})
	defer engine.Close()

	pi, err := engine.Lookup("Math.PI")
	require.NoError(t, err)
	require.InDelta(t, 3.14159, pi.AsNumber(), 0.0001)

	mathObj, err := engine.Lookup("Math")
	require.NoError(t, err)
	require.Same(t, engine.Registry().Get(ids.BuiltinMath), mathObj.AsObject())

	_, err = engine.Lookup("Math.nonsense")
	require.Error(t, err)
}

func TestCallBindsHolderAsReceiver(t *testing.T) {
	engine := New(Options{Profile: builtins.FullProfile})
	defer engine.Close()

	got, err := engine.Call("Math.pow", vm.NumberValue(2), vm.NumberValue(8))
	require.NoError(t, err)
	require.Equal(t, 256.0, got.AsNumber())

	got, err = engine.Call("isNaN", vm.StringValue("x"))
	require.NoError(t, err)
	require.Equal(t, vm.True, got)
}

func TestCallNonCallableFails(t *testing.T) {
	engine := New(Options{Profile: builtins.FullProfile})
	defer engine.Close()

	_, err := engine.Call("Math.PI")
	require.Error(t, err)
}

func TestConstruct(t *testing.T) {
	engine := New(Options{Profile: builtins.FullProfile})
	defer engine.Close()

	got, err := engine.Construct("Date", vm.NumberValue(1000))
	require.NoError(t, err)
	require.Equal(t, ids.MagicDate, got.AsObject().Class())

	ms, err := engine.Call("Date.prototype.getTime")
	// getTime on the prototype succeeds (NaN time value), so no error; the
	// interesting call is through the instance, which the path engine cannot
	// express. Construct + registry dispatch covers it elsewhere.
	require.NoError(t, err)
	require.True(t, ms.IsNumber())
}

func TestEnginesAreIsolated(t *testing.T) {
	a := New(Options{Profile: builtins.FullProfile})
	defer a.Close()
	b := New(Options{Profile: builtins.FullProfile})
	defer b.Close()

	require.NotSame(t, a.Global(), b.Global())

	ma, err := a.Lookup("Math")
	require.NoError(t, err)
	mb, err := b.Lookup("Math")
	require.NoError(t, err)
	require.NotSame(t, ma.AsObject(), mb.AsObject())
}

func TestCompactProfileEngine(t *testing.T) {
	engine := New(Options{Profile: builtins.CompactProfile})
	defer engine.Close()

	// Math survives the compact profile.
	got, err := engine.Call("Math.abs", vm.NumberValue(-2))
	require.NoError(t, err)
	require.Equal(t, 2.0, got.AsNumber())

	// Date access throws the compact-profile error to script.
	_, err = engine.Lookup("Date")
	require.Error(t, err)
	_, ok := vm.ThrownValue(err)
	require.True(t, ok)
	require.Contains(t, DescribeResult(vm.Undefined, err), "Uncaught")
}

func TestDescribeResult(t *testing.T) {
	require.Equal(t, "42", DescribeResult(vm.NumberValue(42), nil))
	require.Equal(t, "undefined", DescribeResult(vm.Undefined, nil))
}
