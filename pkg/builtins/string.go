package builtins

import (
	"fmt"
	"math"
	"unicode/utf16"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

type stringModule struct {
	ctorCommon
}

func (m stringModule) dispatchCall(r *Registry, args []vm.Value) (vm.Value, error) {
	if len(args) == 0 {
		return vm.StringValue(""), nil
	}
	return vm.StringValue(vm.ToString(args[0])), nil
}

func (m stringModule) dispatchConstruct(r *Registry, args []vm.Value) (vm.Value, error) {
	s := ""
	if len(args) > 0 {
		s = vm.ToString(args[0])
	}
	return vm.ObjectValue(newStringWrapper(r, s)), nil
}

// newStringWrapper builds a String wrapper object carrying the primitive
// value and its frozen UTF-16 length.
func newStringWrapper(r *Registry, s string) *vm.Object {
	obj := newWrapper(r, ids.BuiltinStringPrototype, ids.MagicString, vm.StringValue(s))
	obj.DefineDataProperty("length", vm.NumberValue(float64(len(utf16.Encode([]rune(s))))), false, false, false)
	return obj
}

var stringPrototypeNames = []ids.MagicStringID{
	ids.MagicCharAt,
	ids.MagicCharCodeAt,
	ids.MagicIndexOf,
	ids.MagicLocaleCompare,
}

var stringPrototypeRoutines = []routineDesc{
	{ids.MagicCharAt, stringPrototypeCharAt, 1, 1},
	{ids.MagicCharCodeAt, stringPrototypeCharCodeAt, 1, 1},
	{ids.MagicIndexOf, stringPrototypeIndexOf, 1, 1},
	{ids.MagicLocaleCompare, stringPrototypeLocaleCompare, 1, 1},
}

func init() {
	assertSortedIDs("String.prototype", stringPrototypeNames)
}

// localeCollator backs localeCompare. The engine is single-threaded, so the
// stateful collator needs no locking.
var localeCollator = collate.New(language.Und)

type stringPrototypeModule struct {
	namespaceKind
}

func (m stringPrototypeModule) tryInstantiateProperty(r *Registry, obj *vm.Object, name string) (*vm.Property, error) {
	return tryInstantiateFromList(r, obj, stringPrototypeNames, name, func(id ids.MagicStringID) (lazyValue, error) {
		length, ok := routineLength(stringPrototypeRoutines, id)
		if !ok {
			panic(fmt.Sprintf("builtins: unexpected String.prototype member %q", id))
		}
		fn := r.MakeFunctionForRoutine(ids.BuiltinStringPrototype, id, length)
		return lazyNormal(vm.ObjectValue(fn)), nil
	})
}

func (m stringPrototypeModule) dispatchRoutine(r *Registry, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error) {
	return callFromTable(r, "String.prototype", stringPrototypeRoutines, routine, this, args)
}

// thisStringValue resolves the primitive string behind a String.prototype
// routine's this value: a string primitive or a String wrapper (the
// prototype itself wraps the empty string).
func thisStringValue(r *Registry, this vm.Value) (string, error) {
	switch {
	case this.IsString():
		return this.AsString(), nil
	case this.IsObject():
		obj := this.AsObject()
		if obj.Class() == ids.MagicString && obj.Primitive().IsString() {
			return obj.Primitive().AsString(), nil
		}
	}
	_, err := throwError(r, ids.MagicTypeError, "String.prototype method called on incompatible receiver")
	return "", err
}

func stringPrototypeCharAt(r *Registry, this vm.Value, args []vm.Value) (vm.Value, error) {
	s, err := thisStringValue(r, this)
	if err != nil {
		return vm.Undefined, err
	}
	pos, err := vm.ToNumber(args[0])
	if err != nil {
		return vm.Undefined, err
	}
	units := utf16.Encode([]rune(s))
	i := toInteger(pos.AsNumber())
	if i < 0 || i >= float64(len(units)) {
		return vm.StringValue(""), nil
	}
	return vm.StringValue(string(utf16.Decode(units[int(i) : int(i)+1]))), nil
}

func stringPrototypeCharCodeAt(r *Registry, this vm.Value, args []vm.Value) (vm.Value, error) {
	s, err := thisStringValue(r, this)
	if err != nil {
		return vm.Undefined, err
	}
	pos, err := vm.ToNumber(args[0])
	if err != nil {
		return vm.Undefined, err
	}
	units := utf16.Encode([]rune(s))
	i := toInteger(pos.AsNumber())
	if i < 0 || i >= float64(len(units)) {
		return vm.NumberValue(math.NaN()), nil
	}
	return vm.NumberValue(float64(units[int(i)])), nil
}

func stringPrototypeIndexOf(r *Registry, this vm.Value, args []vm.Value) (vm.Value, error) {
	s, err := thisStringValue(r, this)
	if err != nil {
		return vm.Undefined, err
	}
	search := vm.ToString(args[0])

	// Positions are UTF-16 code unit indices.
	units := utf16.Encode([]rune(s))
	needle := utf16.Encode([]rune(search))
	for i := 0; i+len(needle) <= len(units); i++ {
		match := true
		for j := range needle {
			if units[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return vm.NumberValue(float64(i)), nil
		}
	}
	return vm.NumberValue(-1), nil
}

func stringPrototypeLocaleCompare(r *Registry, this vm.Value, args []vm.Value) (vm.Value, error) {
	s, err := thisStringValue(r, this)
	if err != nil {
		return vm.Undefined, err
	}
	that := vm.ToString(args[0])
	return vm.NumberValue(float64(localeCollator.CompareString(s, that))), nil
}
