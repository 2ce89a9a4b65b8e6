package ids

// BuiltinID identifies one of the engine's built-in objects. The set is
// closed and compiled in; BuiltinIDCount doubles as the registry array size
// and as the "no prototype" marker for root objects.
type BuiltinID uint8

const (
	BuiltinObject BuiltinID = iota
	BuiltinObjectPrototype
	BuiltinFunction
	BuiltinFunctionPrototype
	BuiltinArray
	BuiltinArrayPrototype
	BuiltinString
	BuiltinStringPrototype
	BuiltinBoolean
	BuiltinBooleanPrototype
	BuiltinNumber
	BuiltinNumberPrototype
	BuiltinMath
	BuiltinJSON
	BuiltinDate
	BuiltinDatePrototype
	BuiltinRegExp
	BuiltinRegExpPrototype
	BuiltinError
	BuiltinErrorPrototype
	BuiltinEvalError
	BuiltinRangeError
	BuiltinReferenceError
	BuiltinSyntaxError
	BuiltinTypeError
	BuiltinURIError
	BuiltinGlobal
	BuiltinCompactProfileError

	BuiltinIDCount
)

var builtinNames = [BuiltinIDCount]string{
	BuiltinObject:              "Object",
	BuiltinObjectPrototype:     "Object.prototype",
	BuiltinFunction:            "Function",
	BuiltinFunctionPrototype:   "Function.prototype",
	BuiltinArray:               "Array",
	BuiltinArrayPrototype:      "Array.prototype",
	BuiltinString:              "String",
	BuiltinStringPrototype:     "String.prototype",
	BuiltinBoolean:             "Boolean",
	BuiltinBooleanPrototype:    "Boolean.prototype",
	BuiltinNumber:              "Number",
	BuiltinNumberPrototype:     "Number.prototype",
	BuiltinMath:                "Math",
	BuiltinJSON:                "JSON",
	BuiltinDate:                "Date",
	BuiltinDatePrototype:       "Date.prototype",
	BuiltinRegExp:              "RegExp",
	BuiltinRegExpPrototype:     "RegExp.prototype",
	BuiltinError:               "Error",
	BuiltinErrorPrototype:      "Error.prototype",
	BuiltinEvalError:           "EvalError",
	BuiltinRangeError:          "RangeError",
	BuiltinReferenceError:      "ReferenceError",
	BuiltinSyntaxError:         "SyntaxError",
	BuiltinTypeError:           "TypeError",
	BuiltinURIError:            "URIError",
	BuiltinGlobal:              "global",
	BuiltinCompactProfileError: "CompactProfileError",
}

// String returns a human-readable name for the built-in, for diagnostics only.
func (id BuiltinID) String() string {
	if id >= BuiltinIDCount {
		return "unknown builtin"
	}
	return builtinNames[id]
}

// Valid reports whether id is within the closed enumeration.
func (id BuiltinID) Valid() bool {
	return id < BuiltinIDCount
}
