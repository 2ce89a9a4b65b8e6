package builtins

import (
	"fmt"
	"math"

	"colibri/pkg/errors"
	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

// builtinModule is the per-builtin-kind contract. Each built-in supplies
// the three dispatch hooks plus lazy property instantiation; a table mapping
// built-in id to its module replaces the original's generated switches.
type builtinModule interface {
	// tryInstantiateProperty materializes one of the kind's built-in members
	// on first access. Returns (nil, nil) when name is not one of them.
	tryInstantiateProperty(r *Registry, obj *vm.Object, name string) (*vm.Property, error)

	// dispatchCall handles [[Call]] on the kind's directly callable
	// constructor object.
	dispatchCall(r *Registry, args []vm.Value) (vm.Value, error)

	// dispatchConstruct handles [[Construct]] on the constructor object.
	dispatchConstruct(r *Registry, args []vm.Value) (vm.Value, error)

	// dispatchRoutine invokes one of the kind's native routines by id.
	dispatchRoutine(r *Registry, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error)
}

// nativeRoutine is a native routine implementation. Positional arguments are
// already padded to the routine's declared arity.
type nativeRoutine func(r *Registry, this vm.Value, args []vm.Value) (vm.Value, error)

// routineDesc is one compiled-in routine property descriptor.
type routineDesc struct {
	id     ids.MagicStringID
	fn     nativeRoutine
	arity  int     // declared positional arguments; -1 = variadic
	length float64 // value of the function object's "length" property
}

// callFromTable resolves a routine id in a kind's routine table and invokes
// it, defaulting missing positional arguments to undefined. An id absent
// from the table is unreachable by construction.
func callFromTable(r *Registry, owner string, table []routineDesc, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error) {
	for i := range table {
		d := &table[i]
		if d.id != routine {
			continue
		}
		if d.arity < 0 {
			return d.fn(r, this, args)
		}
		if len(args) != d.arity {
			// The zero Value is undefined, so padding is just a copy.
			padded := make([]vm.Value, d.arity)
			copy(padded, args)
			args = padded
		}
		return d.fn(r, this, args)
	}
	panic(fmt.Sprintf("builtins: %s has no routine %q", owner, routine))
}

// routineLength reports the declared "length" value for a routine id, and
// whether the table owns that id at all.
func routineLength(table []routineDesc, id ids.MagicStringID) (float64, bool) {
	for i := range table {
		if table[i].id == id {
			return table[i].length, true
		}
	}
	return 0, false
}

// lazyValue describes a property about to be materialized: either a data
// property value or an accessor pair, with its attribute triple.
type lazyValue struct {
	value    vm.Value
	getter   *vm.Object
	setter   *vm.Object
	accessor bool

	writable     bool
	enumerable   bool
	configurable bool
}

// lazyNormal is the default attribute set for built-in members: writable,
// non-enumerable, configurable.
func lazyNormal(v vm.Value) lazyValue {
	return lazyValue{value: v, writable: true, configurable: true}
}

// lazyFrozen is the attribute set of immutable members like undefined, NaN
// and Infinity.
func lazyFrozen(v vm.Value) lazyValue {
	return lazyValue{value: v}
}

func lazyAccessor(getter, setter *vm.Object, enumerable, configurable bool) lazyValue {
	return lazyValue{
		getter:       getter,
		setter:       setter,
		accessor:     true,
		enumerable:   enumerable,
		configurable: configurable,
	}
}

// namespaceKind supplies the dispatch hooks for built-ins that are not
// callable (Math, JSON, the global object, plain prototypes). Reaching them
// indicates a corrupted object kind tag.
type namespaceKind struct {
	name string
}

func (k namespaceKind) dispatchCall(*Registry, []vm.Value) (vm.Value, error) {
	panic(fmt.Sprintf("builtins: [[Call]] on non-callable built-in %s", k.name))
}

func (k namespaceKind) dispatchConstruct(*Registry, []vm.Value) (vm.Value, error) {
	panic(fmt.Sprintf("builtins: [[Construct]] on non-callable built-in %s", k.name))
}

// noRoutines supplies dispatchRoutine for kinds without a routine table.
type noRoutines struct {
	name string
}

func (k noRoutines) dispatchRoutine(_ *Registry, routine ids.MagicStringID, _ vm.Value, _ []vm.Value) (vm.Value, error) {
	panic(fmt.Sprintf("builtins: %s has no routine %q", k.name, routine))
}

// ctorCommon implements the lazy members every built-in constructor object
// shares: a frozen numeric "length" and a frozen "prototype" reference.
type ctorCommon struct {
	proto  ids.BuiltinID // value of the "prototype" property
	length float64
}

var ctorPropertyNames = []ids.MagicStringID{
	ids.MagicLength,
	ids.MagicPrototype,
}

func init() {
	assertSortedIDs("constructor", ctorPropertyNames)
}

func (c ctorCommon) tryInstantiateProperty(r *Registry, obj *vm.Object, name string) (*vm.Property, error) {
	return tryInstantiateFromList(r, obj, ctorPropertyNames, name, func(id ids.MagicStringID) (lazyValue, error) {
		switch id {
		case ids.MagicLength:
			return lazyFrozen(vm.NumberValue(c.length)), nil
		case ids.MagicPrototype:
			return lazyFrozen(vm.ObjectValue(r.Get(c.proto))), nil
		default:
			panic(fmt.Sprintf("builtins: unexpected constructor member %q", id))
		}
	})
}

func (c ctorCommon) dispatchRoutine(_ *Registry, routine ids.MagicStringID, _ vm.Value, _ []vm.Value) (vm.Value, error) {
	panic(fmt.Sprintf("builtins: constructor has no routine %q", routine))
}

// newErrorValue builds a script-visible error object. Under the compact
// profile the Error built-ins are excluded, so the object chains to
// Object.prototype instead of Error.prototype.
func newErrorValue(r *Registry, name ids.MagicStringID, message string) vm.Value {
	var proto *vm.Object
	if r.profile == CompactProfile {
		proto = r.Get(ids.BuiltinObjectPrototype)
	} else {
		proto = r.Get(ids.BuiltinErrorPrototype)
	}
	obj := vm.NewObject(proto, vm.KindOrdinary)
	obj.SetClass(ids.MagicError)
	obj.DefineDataProperty("name", vm.StringValue(name.String()), true, false, true)
	obj.DefineDataProperty("message", vm.StringValue(message), true, false, true)
	return vm.ObjectValue(obj)
}

// throwError produces an abrupt completion carrying a fresh error object.
func throwError(r *Registry, name ids.MagicStringID, message string) (vm.Value, error) {
	return vm.Undefined, vm.Throw(newErrorValue(r, name, message))
}

// compactProfileErrorMessage is the fixed engine-defined message scripts
// observe when touching an unsupported feature in the compact profile.
const compactProfileErrorMessage = "the feature is not supported in the compact profile"

func throwCompactProfileError(r *Registry) (vm.Value, error) {
	return throwError(r, ids.MagicCompactProfileError, compactProfileErrorMessage)
}

// unimplementedOp is the shared body for named-and-wired operations whose
// semantics belong to a separate collaborator: the compact profile throws
// the fixed script-visible error, the full profile faults to the host.
func unimplementedOp(r *Registry, feature string) (vm.Value, error) {
	if r.profile == CompactProfile {
		return throwCompactProfileError(r)
	}
	return vm.Undefined, errors.NotImplemented(feature)
}

// unimplementedRoutine wires a routine name and arity into dispatch without
// a body.
func unimplementedRoutine(feature string) nativeRoutine {
	return func(r *Registry, _ vm.Value, _ []vm.Value) (vm.Value, error) {
		return unimplementedOp(r, feature)
	}
}

// toInteger implements the ES ToInteger operation on an already-coerced
// number.
func toInteger(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Trunc(f)
}
