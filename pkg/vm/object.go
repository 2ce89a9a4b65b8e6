package vm

import (
	"fmt"

	"colibri/pkg/ids"
)

// ObjectKind is the coarse object-kind tag: ordinary objects, directly
// callable built-in constructors, and built-in routine wrappers.
type ObjectKind uint8

const (
	KindOrdinary ObjectKind = iota
	KindFunction
	KindBuiltinFunction
)

func (k ObjectKind) String() string {
	switch k {
	case KindOrdinary:
		return "ordinary"
	case KindFunction:
		return "function"
	case KindBuiltinFunction:
		return "builtin function"
	default:
		return "unknown"
	}
}

type PropertyKind uint8

const (
	DataProperty PropertyKind = iota
	AccessorProperty
)

// Property is a named property slot. Data properties carry a value; accessor
// properties carry getter/setter function objects instead.
type Property struct {
	Name string
	Kind PropertyKind

	Value  Value
	Getter *Object
	Setter *Object

	Writable     bool
	Enumerable   bool
	Configurable bool
}

// Object is a heap object. Built-in metadata (builtin id, class tag, routine
// token, lazy-instantiation bitmask, primitive value) lives in dedicated
// fields rather than dynamically attached internal properties.
type Object struct {
	kind      ObjectKind
	class     ids.MagicStringID
	prototype *Object

	isBuiltin bool
	builtinID ids.BuiltinID

	// routineToken packs (owner builtin id, routine id) for KindBuiltinFunction.
	routineToken uint32

	// lazyMask records which lazily-instantiable members have already been
	// materialized, one bit per position in the builtin's sorted name list.
	// Bits are never cleared.
	lazyMask uint32

	// primitive is the [[PrimitiveValue]] slot of wrapper objects and wrapper
	// prototypes; Empty when the object has none.
	primitive Value

	// nativeData holds per-kind native state (e.g. a compiled regexp).
	nativeData any

	props []*Property

	// mayRefYounger is the generational-GC hint: set once the object may
	// reference a younger-generation value.
	mayRefYounger bool
}

// NewObject creates an object with the given prototype (nil for root
// objects) and kind.
func NewObject(prototype *Object, kind ObjectKind) *Object {
	return &Object{
		kind:      kind,
		prototype: prototype,
		primitive: Empty,
	}
}

func (o *Object) Kind() ObjectKind          { return o.kind }
func (o *Object) Class() ids.MagicStringID  { return o.class }
func (o *Object) SetClass(c ids.MagicStringID) { o.class = c }
func (o *Object) Prototype() *Object        { return o.prototype }

// MarkBuiltin tags the object as the singleton instance of a built-in.
func (o *Object) MarkBuiltin(id ids.BuiltinID, class ids.MagicStringID) {
	o.isBuiltin = true
	o.builtinID = id
	o.class = class
}

// MarkBuiltinRoutine tags a routine function object as built-in without
// binding it to a registry slot; routine wrappers are not singletons.
func (o *Object) MarkBuiltinRoutine(class ids.MagicStringID) {
	o.isBuiltin = true
	o.builtinID = ids.BuiltinIDCount
	o.class = class
}

func (o *Object) IsBuiltin() bool { return o.isBuiltin }

// HasBuiltinID reports whether the object is tagged as a registry singleton.
func (o *Object) HasBuiltinID() bool {
	return o.isBuiltin && o.builtinID < ids.BuiltinIDCount
}

// BuiltinID returns the built-in identifier tag. Calling it on a non-builtin
// object is a programming error.
func (o *Object) BuiltinID() ids.BuiltinID {
	if !o.isBuiltin || o.builtinID >= ids.BuiltinIDCount {
		panic("vm: BuiltinID on object without a builtin id tag")
	}
	return o.builtinID
}

func (o *Object) RoutineToken() uint32 {
	if o.kind != KindBuiltinFunction {
		panic(fmt.Sprintf("vm: RoutineToken on %s object", o.kind))
	}
	return o.routineToken
}

func (o *Object) SetRoutineToken(token uint32) {
	if o.kind != KindBuiltinFunction {
		panic(fmt.Sprintf("vm: SetRoutineToken on %s object", o.kind))
	}
	o.routineToken = token
}

// TestLazyBit reports whether the lazy-instantiation bit at index is set.
func (o *Object) TestLazyBit(index int) bool {
	if index < 0 || index >= 32 {
		panic(fmt.Sprintf("vm: lazy bit index %d out of range", index))
	}
	return o.lazyMask&(uint32(1)<<uint(index)) != 0
}

// SetLazyBit sets the lazy-instantiation bit at index. Bits are never cleared.
func (o *Object) SetLazyBit(index int) {
	if index < 0 || index >= 32 {
		panic(fmt.Sprintf("vm: lazy bit index %d out of range", index))
	}
	o.lazyMask |= uint32(1) << uint(index)
}

func (o *Object) Primitive() Value     { return o.primitive }
func (o *Object) SetPrimitive(v Value) { o.primitive = v }

func (o *Object) NativeData() any        { return o.nativeData }
func (o *Object) SetNativeData(data any) { o.nativeData = data }

// GetOwn looks up a direct (own) property by name.
func (o *Object) GetOwn(name string) (*Property, bool) {
	for _, p := range o.props {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// DefineDataProperty installs a named data property with the given
// attributes. Installing over an existing name is a programming error; lazy
// instantiation guarantees each name is materialized at most once.
func (o *Object) DefineDataProperty(name string, v Value, writable, enumerable, configurable bool) *Property {
	if _, exists := o.GetOwn(name); exists {
		panic(fmt.Sprintf("vm: property %q already defined", name))
	}
	p := &Property{
		Name:         name,
		Kind:         DataProperty,
		Value:        v,
		Writable:     writable,
		Enumerable:   enumerable,
		Configurable: configurable,
	}
	o.props = append(o.props, p)
	o.NoteYoungerRef(v)
	return p
}

// DefineAccessorProperty installs a named accessor property.
func (o *Object) DefineAccessorProperty(name string, getter, setter *Object, enumerable, configurable bool) *Property {
	if _, exists := o.GetOwn(name); exists {
		panic(fmt.Sprintf("vm: property %q already defined", name))
	}
	p := &Property{
		Name:         name,
		Kind:         AccessorProperty,
		Getter:       getter,
		Setter:       setter,
		Enumerable:   enumerable,
		Configurable: configurable,
	}
	o.props = append(o.props, p)
	if getter != nil {
		o.NoteYoungerRef(ObjectValue(getter))
	}
	if setter != nil {
		o.NoteYoungerRef(ObjectValue(setter))
	}
	return p
}

// DeleteOwn removes an own property. Honors the Configurable attribute.
func (o *Object) DeleteOwn(name string) bool {
	for i, p := range o.props {
		if p.Name == name {
			if !p.Configurable {
				return false
			}
			o.props = append(o.props[:i], o.props[i+1:]...)
			return true
		}
	}
	return true
}

// OwnProperties returns the own property slots in insertion order. The slice
// is live; callers must not mutate it.
func (o *Object) OwnProperties() []*Property { return o.props }

// OwnPropertyNames returns the own property names in insertion order.
func (o *Object) OwnPropertyNames() []string {
	names := make([]string, 0, len(o.props))
	for _, p := range o.props {
		names = append(names, p.Name)
	}
	return names
}

// NoteYoungerRef is the garbage collector hint: mark that the object may now
// reference a younger-generation heap object.
func (o *Object) NoteYoungerRef(v Value) {
	if v.IsObject() {
		o.mayRefYounger = true
	}
}

// MayRefYounger exposes the generational hint flag to the collector.
func (o *Object) MayRefYounger() bool { return o.mayRefYounger }
