package builtins

import (
	"fmt"
	"math"
	"time"

	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

type dateModule struct {
	ctorCommon
}

// Date(...) called as a function ignores its arguments and returns the
// current time as a string.
func (m dateModule) dispatchCall(r *Registry, _ []vm.Value) (vm.Value, error) {
	return vm.StringValue(formatDate(time.Now())), nil
}

func (m dateModule) dispatchConstruct(r *Registry, args []vm.Value) (vm.Value, error) {
	switch len(args) {
	case 0:
		return vm.ObjectValue(newDateObject(r, float64(time.Now().UnixMilli()))), nil
	case 1:
		num, err := vm.ToNumber(args[0])
		if err != nil {
			return vm.Undefined, err
		}
		return vm.ObjectValue(newDateObject(r, timeClip(num.AsNumber()))), nil
	}
	// Component-wise construction (year, month, ...) belongs to the calendar
	// arithmetic collaborator.
	return unimplementedOp(r, "Date constructor with date components")
}

// newDateObject builds a Date-classed object carrying its time value, in
// milliseconds since the epoch, as native data.
func newDateObject(r *Registry, ms float64) *vm.Object {
	obj := vm.NewObject(r.Get(ids.BuiltinDatePrototype), vm.KindOrdinary)
	obj.SetClass(ids.MagicDate)
	obj.SetNativeData(ms)
	return obj
}

// timeClip rejects time values outside the representable range.
func timeClip(ms float64) float64 {
	if math.IsNaN(ms) || math.Abs(ms) > 8.64e15 {
		return math.NaN()
	}
	return math.Trunc(ms)
}

func formatDate(t time.Time) string {
	return t.UTC().Format("Mon Jan 02 2006 15:04:05 MST")
}

var datePrototypeNames = []ids.MagicStringID{
	ids.MagicValueOf,
	ids.MagicGetTime,
}

var datePrototypeRoutines = []routineDesc{
	{ids.MagicValueOf, datePrototypeGetTime, 0, 0},
	{ids.MagicGetTime, datePrototypeGetTime, 0, 0},
}

func init() {
	assertSortedIDs("Date.prototype", datePrototypeNames)
}

type datePrototypeModule struct {
	namespaceKind
}

func (m datePrototypeModule) tryInstantiateProperty(r *Registry, obj *vm.Object, name string) (*vm.Property, error) {
	return tryInstantiateFromList(r, obj, datePrototypeNames, name, func(id ids.MagicStringID) (lazyValue, error) {
		length, ok := routineLength(datePrototypeRoutines, id)
		if !ok {
			panic(fmt.Sprintf("builtins: unexpected Date.prototype member %q", id))
		}
		fn := r.MakeFunctionForRoutine(ids.BuiltinDatePrototype, id, length)
		return lazyNormal(vm.ObjectValue(fn)), nil
	})
}

func (m datePrototypeModule) dispatchRoutine(r *Registry, routine ids.MagicStringID, this vm.Value, args []vm.Value) (vm.Value, error) {
	return callFromTable(r, "Date.prototype", datePrototypeRoutines, routine, this, args)
}

// thisTimeValue resolves the milliseconds-since-epoch value behind a
// Date.prototype routine's this value.
func thisTimeValue(r *Registry, this vm.Value) (float64, error) {
	if this.IsObject() {
		obj := this.AsObject()
		if obj.Class() == ids.MagicDate {
			if ms, ok := obj.NativeData().(float64); ok {
				return ms, nil
			}
		}
	}
	_, err := throwError(r, ids.MagicTypeError, "Date.prototype method called on incompatible receiver")
	return 0, err
}

func datePrototypeGetTime(r *Registry, this vm.Value, _ []vm.Value) (vm.Value, error) {
	ms, err := thisTimeValue(r, this)
	if err != nil {
		return vm.Undefined, err
	}
	return vm.NumberValue(ms), nil
}
