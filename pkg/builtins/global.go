package builtins

import (
	"fmt"
	"math"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

// globalPropertyNames lists the Global object's lazily-instantiable members,
// sorted ascending by magic string id.
var globalPropertyNames = []ids.MagicStringID{
	ids.MagicEval,
	ids.MagicUndefined,
	ids.MagicNaN,
	ids.MagicInfinity,
	ids.MagicObject,
	ids.MagicFunction,
	ids.MagicArray,
	ids.MagicString,
	ids.MagicBoolean,
	ids.MagicNumber,
	ids.MagicDate,
	ids.MagicRegExp,
	ids.MagicError,
	ids.MagicEvalError,
	ids.MagicRangeError,
	ids.MagicReferenceError,
	ids.MagicSyntaxError,
	ids.MagicTypeError,
	ids.MagicURIError,
	ids.MagicMath,
	ids.MagicJSON,
	ids.MagicParseInt,
	ids.MagicParseFloat,
	ids.MagicIsNaN,
	ids.MagicIsFinite,
	ids.MagicDecodeURI,
	ids.MagicDecodeURIComponent,
	ids.MagicEncodeURI,
	ids.MagicEncodeURIComponent,
}

// The compact profile adds its error constructor to the global surface.
var globalPropertyNamesCompact = append(
	append([]ids.MagicStringID{}, globalPropertyNames...),
	ids.MagicCompactProfileError,
)

// globalRoutines is the Global object's routine property list. Bodies for
// eval, parseInt, parseFloat and the URI routines belong to the language
// semantics collaborator; they are named, arity-declared and wired here.
var globalRoutines = []routineDesc{
	{ids.MagicEval, unimplementedRoutine("eval"), 1, 1},
	{ids.MagicParseInt, unimplementedRoutine("parseInt"), 2, 2},
	{ids.MagicParseFloat, unimplementedRoutine("parseFloat"), 1, 1},
	{ids.MagicIsNaN, globalIsNaN, 1, 1},
	{ids.MagicIsFinite, globalIsFinite, 1, 1},
	{ids.MagicDecodeURI, unimplementedRoutine("decodeURI"), 1, 1},
	{ids.MagicDecodeURIComponent, unimplementedRoutine("decodeURIComponent"), 1, 1},
	{ids.MagicEncodeURI, unimplementedRoutine("encodeURI"), 1, 1},
	{ids.MagicEncodeURIComponent, unimplementedRoutine("encodeURIComponent"), 1, 1},
}

func init() {
	assertSortedIDs("global", globalPropertyNames)
	assertSortedIDs("global (compact)", globalPropertyNamesCompact)
}

type globalModule struct {
	namespaceKind
}

// globalBuiltinRefs maps global member names to the built-in the member
// resolves to through the registry.
var globalBuiltinRefs = map[ids.MagicStringID]ids.BuiltinID{
	ids.MagicObject:         ids.BuiltinObject,
	ids.MagicFunction:       ids.BuiltinFunction,
	ids.MagicArray:          ids.BuiltinArray,
	ids.MagicString:         ids.BuiltinString,
	ids.MagicBoolean:        ids.BuiltinBoolean,
	ids.MagicNumber:         ids.BuiltinNumber,
	ids.MagicMath:           ids.BuiltinMath,
	ids.MagicJSON:           ids.BuiltinJSON,
	ids.MagicDate:           ids.BuiltinDate,
	ids.MagicRegExp:         ids.BuiltinRegExp,
	ids.MagicError:          ids.BuiltinError,
	ids.MagicEvalError:      ids.BuiltinEvalError,
	ids.MagicRangeError:     ids.BuiltinRangeError,
	ids.MagicReferenceError: ids.BuiltinReferenceError,
	ids.MagicSyntaxError:    ids.BuiltinSyntaxError,
	ids.MagicTypeError:      ids.BuiltinTypeError,
	ids.MagicURIError:       ids.BuiltinURIError,
}

// compactThrowerNames are the members stubbed as throwing accessors under
// the compact profile.
var compactThrowerNames = map[ids.MagicStringID]bool{
	ids.MagicDate:           true,
	ids.MagicRegExp:         true,
	ids.MagicError:          true,
	ids.MagicEvalError:      true,
	ids.MagicRangeError:     true,
	ids.MagicReferenceError: true,
	ids.MagicSyntaxError:    true,
	ids.MagicTypeError:      true,
	ids.MagicURIError:       true,
	ids.MagicJSON:           true,
}

func (g globalModule) tryInstantiateProperty(r *Registry, obj *vm.Object, name string) (*vm.Property, error) {
	names := globalPropertyNames
	if r.profile == CompactProfile {
		names = globalPropertyNamesCompact
	}

	return tryInstantiateFromList(r, obj, names, name, func(id ids.MagicStringID) (lazyValue, error) {
		if length, ok := routineLength(globalRoutines, id); ok {
			fn := r.MakeFunctionForRoutine(ids.BuiltinGlobal, id, length)
			return lazyNormal(vm.ObjectValue(fn)), nil
		}

		switch id {
		case ids.MagicUndefined:
			return lazyFrozen(vm.Undefined), nil

		case ids.MagicNaN:
			return lazyFrozen(vm.NumberValue(math.NaN())), nil

		case ids.MagicInfinity:
			return lazyFrozen(vm.NumberValue(math.Inf(1))), nil

		case ids.MagicCompactProfileError:
			return lazyNormal(vm.ObjectValue(r.Get(ids.BuiltinCompactProfileError))), nil
		}

		if compactThrowerNames[id] && r.profile == CompactProfile {
			// The member exists nominally but any access throws.
			thrower := r.Get(ids.BuiltinCompactProfileError)
			return lazyAccessor(thrower, thrower, true, false), nil
		}

		if ref, ok := globalBuiltinRefs[id]; ok {
			return lazyNormal(vm.ObjectValue(r.Get(ref))), nil
		}

		panic(fmt.Sprintf("builtins: unexpected global member %q", id))
	})
}

func (g globalModule) dispatchRoutine(r *Registry, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error) {
	return callFromTable(r, "global", globalRoutines, routine, this, args)
}

// globalIsNaN implements the Global object's isNaN routine: coerce the
// argument to a number, then test for the not-a-number value. A coercion
// failure propagates and no boolean is produced.
func globalIsNaN(r *Registry, _ vm.Value, args []vm.Value) (vm.Value, error) {
	num, err := vm.ToNumber(args[0])
	if err != nil {
		return vm.Undefined, err
	}
	return vm.BooleanValue(math.IsNaN(num.AsNumber())), nil
}

// globalIsFinite implements the Global object's isFinite routine: true iff
// the coerced number is neither NaN nor an infinity.
func globalIsFinite(r *Registry, _ vm.Value, args []vm.Value) (vm.Value, error) {
	num, err := vm.ToNumber(args[0])
	if err != nil {
		return vm.Undefined, err
	}
	f := num.AsNumber()
	return vm.BooleanValue(!math.IsNaN(f) && !math.IsInf(f, 0)), nil
}
