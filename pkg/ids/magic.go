package ids

import "sync"

// MagicStringID identifies one of the engine's interned property/routine
// names ("magic strings"). The numeric space is shared between ordinary
// property names and routine names; per-builtin routine tables pick the
// subset they own.
//
// Declaration order matters: every per-builtin sorted name list is a slice of
// ids in ascending order, so related names are declared in contiguous blocks.
type MagicStringID uint16

const (
	// Global object members, in the order the Global module lists them.
	MagicEval MagicStringID = iota
	MagicUndefined
	MagicNaN
	MagicInfinity
	MagicObject
	MagicFunction
	MagicArray
	MagicString
	MagicBoolean
	MagicNumber
	MagicDate
	MagicRegExp
	MagicError
	MagicEvalError
	MagicRangeError
	MagicReferenceError
	MagicSyntaxError
	MagicTypeError
	MagicURIError
	MagicMath
	MagicJSON
	MagicParseInt
	MagicParseFloat
	MagicIsNaN
	MagicIsFinite
	MagicDecodeURI
	MagicDecodeURIComponent
	MagicEncodeURI
	MagicEncodeURIComponent
	MagicCompactProfileError

	// Math object members.
	MagicE
	MagicLN10
	MagicLN2
	MagicLOG2E
	MagicLOG10E
	MagicPI
	MagicSQRT12
	MagicSQRT2
	MagicAbs
	MagicCeil
	MagicFloor
	MagicMax
	MagicMin
	MagicPow
	MagicRandom
	MagicRound
	MagicSqrt

	// Shared prototype members.
	MagicToString
	MagicValueOf

	// String.prototype members.
	MagicCharAt
	MagicCharCodeAt
	MagicIndexOf
	MagicLocaleCompare

	// JSON members.
	MagicParse
	MagicStringify

	// Date.prototype members.
	MagicGetTime

	// RegExp.prototype members.
	MagicExec
	MagicTest

	// Error.prototype members.
	MagicName
	MagicMessage

	MagicLength
	MagicPrototype
	MagicConstructor

	MagicStringCount
)

var magicStrings = [MagicStringCount]string{
	MagicEval:                "eval",
	MagicUndefined:           "undefined",
	MagicNaN:                 "NaN",
	MagicInfinity:            "Infinity",
	MagicObject:              "Object",
	MagicFunction:            "Function",
	MagicArray:               "Array",
	MagicString:              "String",
	MagicBoolean:             "Boolean",
	MagicNumber:              "Number",
	MagicDate:                "Date",
	MagicRegExp:              "RegExp",
	MagicError:               "Error",
	MagicEvalError:           "EvalError",
	MagicRangeError:          "RangeError",
	MagicReferenceError:      "ReferenceError",
	MagicSyntaxError:         "SyntaxError",
	MagicTypeError:           "TypeError",
	MagicURIError:            "URIError",
	MagicMath:                "Math",
	MagicJSON:                "JSON",
	MagicParseInt:            "parseInt",
	MagicParseFloat:          "parseFloat",
	MagicIsNaN:               "isNaN",
	MagicIsFinite:            "isFinite",
	MagicDecodeURI:           "decodeURI",
	MagicDecodeURIComponent:  "decodeURIComponent",
	MagicEncodeURI:           "encodeURI",
	MagicEncodeURIComponent:  "encodeURIComponent",
	MagicCompactProfileError: "CompactProfileError",
	MagicE:                   "E",
	MagicLN10:                "LN10",
	MagicLN2:                 "LN2",
	MagicLOG2E:               "LOG2E",
	MagicLOG10E:              "LOG10E",
	MagicPI:                  "PI",
	MagicSQRT12:              "SQRT1_2",
	MagicSQRT2:               "SQRT2",
	MagicAbs:                 "abs",
	MagicCeil:                "ceil",
	MagicFloor:               "floor",
	MagicMax:                 "max",
	MagicMin:                 "min",
	MagicPow:                 "pow",
	MagicRandom:              "random",
	MagicRound:               "round",
	MagicSqrt:                "sqrt",
	MagicToString:            "toString",
	MagicValueOf:             "valueOf",
	MagicCharAt:              "charAt",
	MagicCharCodeAt:          "charCodeAt",
	MagicIndexOf:             "indexOf",
	MagicLocaleCompare:       "localeCompare",
	MagicParse:               "parse",
	MagicStringify:           "stringify",
	MagicGetTime:             "getTime",
	MagicExec:                "exec",
	MagicTest:                "test",
	MagicName:                "name",
	MagicMessage:             "message",
	MagicLength:              "length",
	MagicPrototype:           "prototype",
	MagicConstructor:         "constructor",
}

// String returns the interned text of the magic string.
func (id MagicStringID) String() string {
	if id >= MagicStringCount {
		return "<bad magic string>"
	}
	return magicStrings[id]
}

// Valid reports whether id is within the closed enumeration.
func (id MagicStringID) Valid() bool {
	return id < MagicStringCount
}

var (
	magicByText     map[string]MagicStringID
	magicByTextOnce sync.Once
)

// Lookup answers the interning query "does this text denote a magic string";
// when it does, the magic string's id is returned alongside true.
func Lookup(text string) (MagicStringID, bool) {
	magicByTextOnce.Do(func() {
		magicByText = make(map[string]MagicStringID, MagicStringCount)
		for id := MagicStringID(0); id < MagicStringCount; id++ {
			magicByText[magicStrings[id]] = id
		}
	})
	id, ok := magicByText[text]
	return id, ok
}
