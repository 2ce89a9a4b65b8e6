package builtins

import (
	"fmt"
	"math"
	"math/rand"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

// mathPropertyNames lists the Math object's members, constants first, sorted
// ascending by magic string id.
var mathPropertyNames = []ids.MagicStringID{
	ids.MagicE,
	ids.MagicLN10,
	ids.MagicLN2,
	ids.MagicLOG2E,
	ids.MagicLOG10E,
	ids.MagicPI,
	ids.MagicSQRT12,
	ids.MagicSQRT2,
	ids.MagicAbs,
	ids.MagicCeil,
	ids.MagicFloor,
	ids.MagicMax,
	ids.MagicMin,
	ids.MagicPow,
	ids.MagicRandom,
	ids.MagicRound,
	ids.MagicSqrt,
}

var mathConstants = map[ids.MagicStringID]float64{
	ids.MagicE:      math.E,
	ids.MagicLN10:   math.Ln10,
	ids.MagicLN2:    math.Ln2,
	ids.MagicLOG2E:  math.Log2E,
	ids.MagicLOG10E: math.Log10E,
	ids.MagicPI:     math.Pi,
	ids.MagicSQRT12: math.Sqrt2 / 2,
	ids.MagicSQRT2:  math.Sqrt2,
}

var mathRoutines = []routineDesc{
	{ids.MagicAbs, mathUnary(math.Abs), 1, 1},
	{ids.MagicCeil, mathUnary(math.Ceil), 1, 1},
	{ids.MagicFloor, mathUnary(math.Floor), 1, 1},
	{ids.MagicMax, mathMax, -1, 2},
	{ids.MagicMin, mathMin, -1, 2},
	{ids.MagicPow, mathPow, 2, 2},
	{ids.MagicRandom, mathRandom, 0, 0},
	{ids.MagicRound, mathUnary(mathRoundImpl), 1, 1},
	{ids.MagicSqrt, mathUnary(math.Sqrt), 1, 1},
}

func init() {
	assertSortedIDs("Math", mathPropertyNames)
}

type mathModule struct {
	namespaceKind
}

func (m mathModule) tryInstantiateProperty(r *Registry, obj *vm.Object, name string) (*vm.Property, error) {
	return tryInstantiateFromList(r, obj, mathPropertyNames, name, func(id ids.MagicStringID) (lazyValue, error) {
		if c, ok := mathConstants[id]; ok {
			return lazyFrozen(vm.NumberValue(c)), nil
		}
		length, ok := routineLength(mathRoutines, id)
		if !ok {
			panic(fmt.Sprintf("builtins: unexpected Math member %q", id))
		}
		fn := r.MakeFunctionForRoutine(ids.BuiltinMath, id, length)
		return lazyNormal(vm.ObjectValue(fn)), nil
	})
}

func (m mathModule) dispatchRoutine(r *Registry, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error) {
	return callFromTable(r, "Math", mathRoutines, routine, this, args)
}

// mathUnary adapts a float function into a routine with ToNumber coercion
// and failure propagation.
func mathUnary(f func(float64) float64) nativeRoutine {
	return func(r *Registry, _ vm.Value, args []vm.Value) (vm.Value, error) {
		num, err := vm.ToNumber(args[0])
		if err != nil {
			return vm.Undefined, err
		}
		return vm.NumberValue(f(num.AsNumber())), nil
	}
}

// mathRoundImpl rounds half-way cases toward positive infinity; math.Round
// rounds them away from zero, which is wrong for negative halves.
func mathRoundImpl(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return math.Floor(f + 0.5)
}

func mathPow(r *Registry, _ vm.Value, args []vm.Value) (vm.Value, error) {
	base, err := vm.ToNumber(args[0])
	if err != nil {
		return vm.Undefined, err
	}
	exp, err := vm.ToNumber(args[1])
	if err != nil {
		return vm.Undefined, err
	}
	return vm.NumberValue(math.Pow(base.AsNumber(), exp.AsNumber())), nil
}

func mathRandom(*Registry, vm.Value, []vm.Value) (vm.Value, error) {
	return vm.NumberValue(rand.Float64()), nil
}

// mathMax and mathMin coerce every argument before comparing, so a coercion
// failure on any argument propagates even when an earlier one is NaN.
func mathMax(r *Registry, _ vm.Value, args []vm.Value) (vm.Value, error) {
	result := math.Inf(-1)
	nan := false
	for _, arg := range args {
		num, err := vm.ToNumber(arg)
		if err != nil {
			return vm.Undefined, err
		}
		f := num.AsNumber()
		if math.IsNaN(f) {
			nan = true
		} else if f > result {
			result = f
		}
	}
	if nan {
		return vm.NumberValue(math.NaN()), nil
	}
	return vm.NumberValue(result), nil
}

func mathMin(r *Registry, _ vm.Value, args []vm.Value) (vm.Value, error) {
	result := math.Inf(1)
	nan := false
	for _, arg := range args {
		num, err := vm.ToNumber(arg)
		if err != nil {
			return vm.Undefined, err
		}
		f := num.AsNumber()
		if math.IsNaN(f) {
			nan = true
		} else if f < result {
			result = f
		}
	}
	if nan {
		return vm.NumberValue(math.NaN()), nil
	}
	return vm.NumberValue(result), nil
}
