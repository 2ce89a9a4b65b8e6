package builtins

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

type regexpModule struct {
	ctorCommon
}

// RegExp(...) called as a function constructs exactly as new RegExp(...)
// does.
func (m regexpModule) dispatchCall(r *Registry, args []vm.Value) (vm.Value, error) {
	return m.dispatchConstruct(r, args)
}

func (m regexpModule) dispatchConstruct(r *Registry, args []vm.Value) (vm.Value, error) {
	pattern := ""
	if len(args) > 0 && !args[0].IsUndefined() {
		if args[0].IsObject() && args[0].AsObject().Class() == ids.MagicRegExp {
			return throwError(r, ids.MagicTypeError, "cannot construct RegExp from a RegExp object")
		}
		pattern = vm.ToString(args[0])
	}
	flags := ""
	if len(args) > 1 && !args[1].IsUndefined() {
		flags = vm.ToString(args[1])
	}
	return newRegExpObject(r, pattern, flags)
}

// regexpFlags is the parsed g/i/m flag triple.
type regexpFlags struct {
	global     bool
	ignoreCase bool
	multiline  bool
}

func parseRegExpFlags(r *Registry, text string) (regexpFlags, error) {
	var flags regexpFlags
	for _, c := range text {
		var slot *bool
		switch c {
		case 'g':
			slot = &flags.global
		case 'i':
			slot = &flags.ignoreCase
		case 'm':
			slot = &flags.multiline
		default:
			_, err := throwError(r, ids.MagicSyntaxError, fmt.Sprintf("invalid regular expression flag %q", c))
			return flags, err
		}
		if *slot {
			_, err := throwError(r, ids.MagicSyntaxError, fmt.Sprintf("duplicate regular expression flag %q", c))
			return flags, err
		}
		*slot = true
	}
	return flags, nil
}

// newRegExpObject compiles the pattern in ECMAScript mode and builds a
// RegExp-classed object carrying the compiled program as native data, with
// the standard frozen flag properties and a writable lastIndex.
func newRegExpObject(r *Registry, pattern, flagText string) (vm.Value, error) {
	flags, err := parseRegExpFlags(r, flagText)
	if err != nil {
		return vm.Undefined, err
	}

	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if flags.ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	if flags.multiline {
		opts |= regexp2.Multiline
	}
	compiled, cerr := regexp2.Compile(pattern, opts)
	if cerr != nil {
		return throwError(r, ids.MagicSyntaxError, "invalid regular expression: "+cerr.Error())
	}

	obj := vm.NewObject(r.Get(ids.BuiltinRegExpPrototype), vm.KindOrdinary)
	obj.SetClass(ids.MagicRegExp)
	obj.SetNativeData(compiled)

	obj.DefineDataProperty("source", vm.StringValue(pattern), false, false, false)
	obj.DefineDataProperty("global", vm.BooleanValue(flags.global), false, false, false)
	obj.DefineDataProperty("ignoreCase", vm.BooleanValue(flags.ignoreCase), false, false, false)
	obj.DefineDataProperty("multiline", vm.BooleanValue(flags.multiline), false, false, false)
	obj.DefineDataProperty("lastIndex", vm.NumberValue(0), true, false, false)

	return vm.ObjectValue(obj), nil
}

var regexpPrototypeNames = []ids.MagicStringID{
	ids.MagicExec,
	ids.MagicTest,
}

var regexpPrototypeRoutines = []routineDesc{
	{ids.MagicExec, regexpPrototypeExec, 1, 1},
	{ids.MagicTest, regexpPrototypeTest, 1, 1},
}

func init() {
	assertSortedIDs("RegExp.prototype", regexpPrototypeNames)
}

type regexpPrototypeModule struct {
	namespaceKind
}

func (m regexpPrototypeModule) tryInstantiateProperty(r *Registry, obj *vm.Object, name string) (*vm.Property, error) {
	return tryInstantiateFromList(r, obj, regexpPrototypeNames, name, func(id ids.MagicStringID) (lazyValue, error) {
		length, ok := routineLength(regexpPrototypeRoutines, id)
		if !ok {
			panic(fmt.Sprintf("builtins: unexpected RegExp.prototype member %q", id))
		}
		fn := r.MakeFunctionForRoutine(ids.BuiltinRegExpPrototype, id, length)
		return lazyNormal(vm.ObjectValue(fn)), nil
	})
}

func (m regexpPrototypeModule) dispatchRoutine(r *Registry, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error) {
	return callFromTable(r, "RegExp.prototype", regexpPrototypeRoutines, routine, this, args)
}

// thisRegExp resolves the compiled program behind a RegExp.prototype
// routine's this value.
func thisRegExp(r *Registry, this vm.Value) (*vm.Object, *regexp2.Regexp, error) {
	if this.IsObject() {
		obj := this.AsObject()
		if obj.Class() == ids.MagicRegExp {
			if compiled, ok := obj.NativeData().(*regexp2.Regexp); ok {
				return obj, compiled, nil
			}
		}
	}
	_, err := throwError(r, ids.MagicTypeError, "RegExp.prototype method called on incompatible receiver")
	return nil, nil, err
}

// regexpStart computes the match start position: lastIndex for global
// regexps, 0 otherwise. The second result is false when lastIndex falls
// outside the input.
func regexpStart(obj *vm.Object, input string) (int, bool) {
	if p, ok := obj.GetOwn("global"); !ok || !p.Value.AsBoolean() {
		return 0, true
	}
	last := 0.0
	if p, ok := obj.GetOwn("lastIndex"); ok && p.Value.IsNumber() {
		last = toInteger(p.Value.AsNumber())
	}
	if last < 0 || last > float64(len(input)) {
		return 0, false
	}
	return int(last), true
}

func setLastIndex(obj *vm.Object, index float64) {
	if p, ok := obj.GetOwn("lastIndex"); ok {
		p.Value = vm.NumberValue(index)
	}
}

func regexpPrototypeExec(r *Registry, this vm.Value, args []vm.Value) (vm.Value, error) {
	obj, compiled, err := thisRegExp(r, this)
	if err != nil {
		return vm.Undefined, err
	}
	input := vm.ToString(args[0])

	start, ok := regexpStart(obj, input)
	if !ok {
		setLastIndex(obj, 0)
		return vm.Null, nil
	}

	match, merr := compiled.FindStringMatchStartingAt(input, start)
	if merr != nil {
		return throwError(r, ids.MagicSyntaxError, "regular expression execution failed: "+merr.Error())
	}
	if match == nil {
		setLastIndex(obj, 0)
		return vm.Null, nil
	}

	if p, gok := obj.GetOwn("global"); gok && p.Value.AsBoolean() {
		setLastIndex(obj, float64(match.Index+match.Length))
	}

	// Result array: full match, then capture groups (undefined for
	// non-participating ones), plus index and input.
	groups := match.Groups()
	elements := make([]vm.Value, len(groups))
	for i, g := range groups {
		if len(g.Captures) == 0 {
			elements[i] = vm.Undefined
			continue
		}
		elements[i] = vm.StringValue(g.Capture.String())
	}
	result := newArrayObject(r, elements, float64(len(elements)))
	result.DefineDataProperty("index", vm.NumberValue(float64(match.Index)), true, true, true)
	result.DefineDataProperty("input", vm.StringValue(input), true, true, true)
	return vm.ObjectValue(result), nil
}

func regexpPrototypeTest(r *Registry, this vm.Value, args []vm.Value) (vm.Value, error) {
	result, err := regexpPrototypeExec(r, this, args)
	if err != nil {
		return vm.Undefined, err
	}
	return vm.BooleanValue(!result.IsNull()), nil
}
