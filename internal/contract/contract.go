// Package contract reports programmer errors.
//
// A Violation means an engine invariant was broken by its caller or by the
// engine itself. Violations are raised with panic and are never expected
// during correct operation; library code does not recover them.
package contract

import (
	"errors"
	"fmt"
)

// Violation describes a broken invariant.
type Violation struct {
	Invariant string
}

func (v *Violation) Error() string {
	return "contract violation: " + v.Invariant
}

// Fail panics with a Violation built from the formatted message.
func Fail(format string, args ...any) {
	panic(&Violation{Invariant: fmt.Sprintf(format, args...)})
}

// Require panics with a Violation when cond is false.
func Require(cond bool, format string, args ...any) {
	if !cond {
		Fail(format, args...)
	}
}

// As reports whether a recovered panic value is a Violation.
func As(r any) (*Violation, bool) {
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
