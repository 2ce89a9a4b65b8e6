package driver

import (
	"fmt"
	"strings"

	"colibri/pkg/builtins"
	"colibri/pkg/ids"
	"colibri/pkg/vm"
)

// Engine represents a persistent built-in environment session. Each engine
// owns a private registry, so two engines never share singleton instances.
type Engine struct {
	registry *builtins.Registry
	global   *vm.Object
}

// Options configures a new engine.
type Options struct {
	Profile builtins.Profile
}

// New creates an engine with a fresh registry and an instantiated Global
// object.
func New(opts Options) *Engine {
	registry := builtins.NewRegistry(opts.Profile)
	return &Engine{
		registry: registry,
		global:   registry.Get(ids.BuiltinGlobal),
	}
}

// Registry exposes the engine's built-in registry.
func (e *Engine) Registry() *builtins.Registry { return e.registry }

// Global returns the engine's Global object singleton.
func (e *Engine) Global() *vm.Object { return e.global }

// Close releases the registry's built-in instances. The engine must not be
// used afterwards.
func (e *Engine) Close() {
	e.registry.Finalize()
	e.global = nil
}

// Lookup resolves a dotted property path ("Math.PI", "Object.prototype")
// starting at the Global object. Missing intermediate segments resolve to an
// error; a thrown script error is returned as-is.
func (e *Engine) Lookup(path string) (vm.Value, error) {
	segments := strings.Split(path, ".")
	current := vm.ObjectValue(e.global)
	for _, seg := range segments {
		if !current.IsObject() {
			return vm.Undefined, fmt.Errorf("driver: %q of non-object in path %q", seg, path)
		}
		v, found, err := e.registry.GetProperty(current.AsObject(), seg)
		if err != nil {
			return vm.Undefined, err
		}
		if !found {
			return vm.Undefined, fmt.Errorf("driver: %q not found in path %q", seg, path)
		}
		current = v
	}
	return current, nil
}

// Call resolves a dotted path to a callable and invokes it. The holder of
// the final segment becomes the this value, so "Math.floor" is called with
// Math as its receiver.
func (e *Engine) Call(path string, args ...vm.Value) (vm.Value, error) {
	holder, fn, err := e.splitPath(path)
	if err != nil {
		return vm.Undefined, err
	}
	if !fn.IsCallable() {
		return vm.Undefined, fmt.Errorf("driver: %q is not callable", path)
	}
	return e.registry.DispatchCall(fn.AsObject(), holder, args)
}

// Construct resolves a dotted path to a constructor and applies [[Construct]].
func (e *Engine) Construct(path string, args ...vm.Value) (vm.Value, error) {
	_, fn, err := e.splitPath(path)
	if err != nil {
		return vm.Undefined, err
	}
	if !fn.IsObject() {
		return vm.Undefined, fmt.Errorf("driver: %q is not a constructor", path)
	}
	return e.registry.DispatchConstruct(fn.AsObject(), args)
}

// splitPath resolves path into (holder, final member).
func (e *Engine) splitPath(path string) (vm.Value, vm.Value, error) {
	holder := vm.ObjectValue(e.global)
	i := strings.LastIndexByte(path, '.')
	if i >= 0 {
		h, err := e.Lookup(path[:i])
		if err != nil {
			return vm.Undefined, vm.Undefined, err
		}
		holder = h
		path = path[i+1:]
	}
	if !holder.IsObject() {
		return vm.Undefined, vm.Undefined, fmt.Errorf("driver: path holder is not an object")
	}
	fn, found, err := e.registry.GetProperty(holder.AsObject(), path)
	if err != nil {
		return vm.Undefined, vm.Undefined, err
	}
	if !found {
		return vm.Undefined, vm.Undefined, fmt.Errorf("driver: %q not found", path)
	}
	return holder, fn, nil
}

// DescribeResult renders a value, or a thrown script error, for display.
func DescribeResult(v vm.Value, err error) string {
	if err != nil {
		if thrown, ok := vm.ThrownValue(err); ok {
			return "Uncaught " + thrown.String()
		}
		return "error: " + err.Error()
	}
	return v.String()
}
