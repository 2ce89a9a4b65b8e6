package builtins

import (
	"fmt"
	"math"

	"colibri/pkg/errors"
	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

// builtinDesc is one compiled-in built-in object descriptor: object kind,
// class tag, prototype link and the kind module implementing its hooks.
type builtinDesc struct {
	kind      vm.ObjectKind
	class     ids.MagicStringID
	prototype ids.BuiltinID // BuiltinIDCount = root object, no prototype
	module    builtinModule

	compact     bool // part of the compact profile's closed set
	compactOnly bool // exists only under the compact profile
}

// builtinDescs replaces the original's macro-expanded builtin list. The
// prototype links form a DAG rooted at Object.prototype; instantiation
// recursion is bounded by its depth.
var builtinDescs = [ids.BuiltinIDCount]builtinDesc{
	ids.BuiltinObject: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    objectModule{ctorCommon{proto: ids.BuiltinObjectPrototype, length: 1}},
		compact:   true,
	},
	ids.BuiltinObjectPrototype: {
		kind: vm.KindOrdinary, class: ids.MagicObject,
		prototype: ids.BuiltinIDCount,
		module:    objectPrototypeModule{namespaceKind{"Object.prototype"}},
		compact:   true,
	},
	ids.BuiltinFunction: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    functionModule{ctorCommon{proto: ids.BuiltinFunctionPrototype, length: 1}},
		compact:   true,
	},
	ids.BuiltinFunctionPrototype: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinObjectPrototype,
		module:    functionPrototypeModule{noRoutines{"Function.prototype"}},
		compact:   true,
	},
	ids.BuiltinArray: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    arrayModule{ctorCommon{proto: ids.BuiltinArrayPrototype, length: 1}},
		compact:   true,
	},
	ids.BuiltinArrayPrototype: {
		kind: vm.KindOrdinary, class: ids.MagicArray,
		prototype: ids.BuiltinObjectPrototype,
		module:    arrayPrototypeModule{namespaceKind{"Array.prototype"}, noRoutines{"Array.prototype"}},
		compact:   true,
	},
	ids.BuiltinString: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    stringModule{ctorCommon{proto: ids.BuiltinStringPrototype, length: 1}},
		compact:   true,
	},
	ids.BuiltinStringPrototype: {
		kind: vm.KindOrdinary, class: ids.MagicString,
		prototype: ids.BuiltinObjectPrototype,
		module:    stringPrototypeModule{namespaceKind{"String.prototype"}},
		compact:   true,
	},
	ids.BuiltinBoolean: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    booleanModule{ctorCommon{proto: ids.BuiltinBooleanPrototype, length: 1}},
		compact:   true,
	},
	ids.BuiltinBooleanPrototype: {
		kind: vm.KindOrdinary, class: ids.MagicBoolean,
		prototype: ids.BuiltinObjectPrototype,
		module:    booleanPrototypeModule{namespaceKind{"Boolean.prototype"}},
		compact:   true,
	},
	ids.BuiltinNumber: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    numberModule{ctorCommon{proto: ids.BuiltinNumberPrototype, length: 1}},
		compact:   true,
	},
	ids.BuiltinNumberPrototype: {
		kind: vm.KindOrdinary, class: ids.MagicNumber,
		prototype: ids.BuiltinObjectPrototype,
		module:    numberPrototypeModule{namespaceKind{"Number.prototype"}},
		compact:   true,
	},
	ids.BuiltinMath: {
		kind: vm.KindOrdinary, class: ids.MagicMath,
		prototype: ids.BuiltinObjectPrototype,
		module:    mathModule{namespaceKind{"Math"}},
		compact:   true,
	},
	ids.BuiltinJSON: {
		kind: vm.KindOrdinary, class: ids.MagicJSON,
		prototype: ids.BuiltinObjectPrototype,
		module:    jsonModule{namespaceKind{"JSON"}},
	},
	ids.BuiltinDate: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    dateModule{ctorCommon{proto: ids.BuiltinDatePrototype, length: 7}},
	},
	ids.BuiltinDatePrototype: {
		kind: vm.KindOrdinary, class: ids.MagicDate,
		prototype: ids.BuiltinObjectPrototype,
		module:    datePrototypeModule{namespaceKind{"Date.prototype"}},
	},
	ids.BuiltinRegExp: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    regexpModule{ctorCommon{proto: ids.BuiltinRegExpPrototype, length: 2}},
	},
	ids.BuiltinRegExpPrototype: {
		kind: vm.KindOrdinary, class: ids.MagicRegExp,
		prototype: ids.BuiltinObjectPrototype,
		module:    regexpPrototypeModule{namespaceKind{"RegExp.prototype"}},
	},
	ids.BuiltinError: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    errorModule{ctorCommon{proto: ids.BuiltinErrorPrototype, length: 1}, ids.MagicError},
	},
	ids.BuiltinErrorPrototype: {
		kind: vm.KindOrdinary, class: ids.MagicError,
		prototype: ids.BuiltinObjectPrototype,
		module:    errorPrototypeModule{namespaceKind{"Error.prototype"}},
	},
	ids.BuiltinEvalError: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    errorModule{ctorCommon{proto: ids.BuiltinErrorPrototype, length: 1}, ids.MagicEvalError},
	},
	ids.BuiltinRangeError: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    errorModule{ctorCommon{proto: ids.BuiltinErrorPrototype, length: 1}, ids.MagicRangeError},
	},
	ids.BuiltinReferenceError: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    errorModule{ctorCommon{proto: ids.BuiltinErrorPrototype, length: 1}, ids.MagicReferenceError},
	},
	ids.BuiltinSyntaxError: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    errorModule{ctorCommon{proto: ids.BuiltinErrorPrototype, length: 1}, ids.MagicSyntaxError},
	},
	ids.BuiltinTypeError: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    errorModule{ctorCommon{proto: ids.BuiltinErrorPrototype, length: 1}, ids.MagicTypeError},
	},
	ids.BuiltinURIError: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:    errorModule{ctorCommon{proto: ids.BuiltinErrorPrototype, length: 1}, ids.MagicURIError},
	},
	ids.BuiltinGlobal: {
		kind: vm.KindOrdinary, class: ids.MagicObject,
		prototype: ids.BuiltinObjectPrototype,
		module:    globalModule{namespaceKind{"global"}},
		compact:   true,
	},
	ids.BuiltinCompactProfileError: {
		kind: vm.KindFunction, class: ids.MagicFunction,
		prototype: ids.BuiltinFunctionPrototype,
		module:      compactErrorModule{},
		compact:     true,
		compactOnly: true,
	},
}

// Registry maps each built-in id to its at-most-one instance. Each engine
// instance owns a private Registry; slots fill lazily on first access and
// empty again at Finalize.
type Registry struct {
	profile Profile
	objects [ids.BuiltinIDCount]*vm.Object
}

// NewRegistry creates an empty registry for the given build profile.
func NewRegistry(profile Profile) *Registry {
	r := &Registry{profile: profile}
	r.Init()
	return r
}

func (r *Registry) Profile() Profile { return r.profile }

// Init resets every slot to "not yet instantiated". Called once at engine
// start; NewRegistry does it for fresh registries.
func (r *Registry) Init() {
	for i := range r.objects {
		r.objects[i] = nil
	}
}

// Finalize releases every live instance. Safe when some or all slots were
// never instantiated; the registry is reusable for a fresh run afterwards.
func (r *Registry) Finalize() {
	for i := range r.objects {
		r.objects[i] = nil
	}
}

// Is reports whether obj is exactly the singleton instance for id,
// instantiating the singleton as a side effect if it does not exist yet.
func (r *Registry) Is(obj *vm.Object, id ids.BuiltinID) bool {
	if obj == nil {
		panic("builtins: Is on nil object")
	}
	if !id.Valid() {
		panic(fmt.Sprintf("builtins: Is with builtin id %d out of range", id))
	}
	if r.objects[id] == nil {
		r.instantiate(id)
	}
	return obj == r.objects[id]
}

// Get returns the singleton instance for id, instantiating it if needed.
// Never fails for a valid id; lifetime is managed by the Go runtime, so the
// caller holds a plain shared reference.
func (r *Registry) Get(id ids.BuiltinID) *vm.Object {
	if !id.Valid() {
		panic(fmt.Sprintf("builtins: Get with builtin id %d out of range", id))
	}
	if r.objects[id] == nil {
		r.instantiate(id)
	}
	return r.objects[id]
}

// instantiate builds the singleton for id. The prototype ancestor chain is
// built first, recursively; the recursion terminates because the prototype
// relation is acyclic.
func (r *Registry) instantiate(id ids.BuiltinID) {
	desc := &builtinDescs[id]
	if r.objects[id] != nil {
		panic(fmt.Sprintf("builtins: %s instantiated twice", id))
	}
	if r.profile == CompactProfile && !desc.compact {
		panic(fmt.Sprintf("builtins: %s is excluded from the compact profile", id))
	}
	if r.profile == FullProfile && desc.compactOnly {
		panic(fmt.Sprintf("builtins: %s exists only under the compact profile", id))
	}

	var proto *vm.Object
	if desc.prototype != ids.BuiltinIDCount {
		if r.objects[desc.prototype] == nil {
			r.instantiate(desc.prototype)
		}
		proto = r.objects[desc.prototype]
	}

	obj := vm.NewObject(proto, desc.kind)
	obj.MarkBuiltin(id, desc.class)

	// Wrapper prototypes double as degenerate wrapper instances and carry a
	// seeded [[PrimitiveValue]].
	switch id {
	case ids.BuiltinStringPrototype:
		obj.SetPrimitive(vm.StringValue(""))
	case ids.BuiltinNumberPrototype:
		obj.SetPrimitive(vm.NumberValue(0))
	case ids.BuiltinBooleanPrototype:
		obj.SetPrimitive(vm.False)
	case ids.BuiltinDatePrototype:
		obj.SetNativeData(math.NaN())
	}

	r.objects[id] = obj
}

// moduleFor resolves the kind module for a built-in id. A valid id with no
// module is a fatal condition in the compact profile (the id is outside that
// build's closed set) and a host-visible NotImplemented fault otherwise.
func (r *Registry) moduleFor(id ids.BuiltinID) (builtinModule, error) {
	if !id.Valid() {
		panic(fmt.Sprintf("builtins: builtin id %d out of range", id))
	}
	m := builtinDescs[id].module
	if m == nil {
		if r.profile == CompactProfile {
			panic(fmt.Sprintf("builtins: %s has no module in the compact profile", id))
		}
		return nil, errors.NotImplemented("built-in " + id.String())
	}
	return m, nil
}
