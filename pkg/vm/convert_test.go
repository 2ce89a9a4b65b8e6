package vm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToNumberPrimitives(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want float64
	}{
		{"undefined is NaN", Undefined, math.NaN()},
		{"null is zero", Null, 0},
		{"true is one", True, 1},
		{"false is zero", False, 0},
		{"number passes through", NumberValue(3.5), 3.5},
		{"decimal string", StringValue("42.5"), 42.5},
		{"signed string", StringValue("-7"), -7},
		{"whitespace trimmed", StringValue("  \t12\n"), 12},
		{"empty string is zero", StringValue(""), 0},
		{"whitespace-only is zero", StringValue("  \uFEFF "), 0},
		{"Infinity literal", StringValue("Infinity"), math.Inf(1)},
		{"negative Infinity", StringValue("-Infinity"), math.Inf(-1)},
		{"hex literal", StringValue("0xFF"), 255},
		{"signed hex is NaN", StringValue("-0x10"), math.NaN()},
		{"garbage is NaN", StringValue("12abc"), math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToNumber(tt.in)
			require.NoError(t, err)
			if math.IsNaN(tt.want) {
				require.True(t, math.IsNaN(got.AsNumber()), "want NaN, got %v", got.AsNumber())
			} else {
				require.Equal(t, tt.want, got.AsNumber())
			}
		})
	}
}

func TestToNumberObjectThrows(t *testing.T) {
	obj := NewObject(nil, KindOrdinary)
	_, err := ToNumber(ObjectValue(obj))
	require.Error(t, err)

	thrown, ok := ThrownValue(err)
	require.True(t, ok, "coercion failure must be a thrown completion")
	require.True(t, thrown.IsString())
}

func TestToBoolean(t *testing.T) {
	require.False(t, ToBoolean(Undefined))
	require.False(t, ToBoolean(Null))
	require.False(t, ToBoolean(NumberValue(0)))
	require.False(t, ToBoolean(NumberValue(math.NaN())))
	require.False(t, ToBoolean(StringValue("")))

	require.True(t, ToBoolean(NumberValue(-1)))
	require.True(t, ToBoolean(StringValue("false")))
	require.True(t, ToBoolean(ObjectValue(NewObject(nil, KindOrdinary))))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-3, "-3"},
		{3.5, "3.5"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatNumber(tt.in), "FormatNumber(%v)", tt.in)
	}
}

func TestSameValue(t *testing.T) {
	a := NewObject(nil, KindOrdinary)
	b := NewObject(nil, KindOrdinary)

	require.True(t, ObjectValue(a).SameValue(ObjectValue(a)))
	require.False(t, ObjectValue(a).SameValue(ObjectValue(b)))

	nan := NumberValue(math.NaN())
	require.True(t, nan.SameValue(NumberValue(math.NaN())))
	require.False(t, NumberValue(1).SameValue(StringValue("1")))
}
