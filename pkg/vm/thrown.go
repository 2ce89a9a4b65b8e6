package vm

import "errors"

// Thrown is the abrupt-completion signal: a script-level thrown value carried
// through Go error returns. Intermediate layers propagate it untouched; only
// the host decides how to present it.
type Thrown struct {
	Value Value
}

func (t *Thrown) Error() string {
	return "uncaught exception: " + t.Value.String()
}

// Throw wraps a script value into an abrupt completion.
func Throw(v Value) error {
	return &Thrown{Value: v}
}

// ThrownValue unwraps a thrown script value from an error, if the error
// represents one.
func ThrownValue(err error) (Value, bool) {
	var t *Thrown
	if errors.As(err, &t) {
		return t.Value, true
	}
	return Undefined, false
}
