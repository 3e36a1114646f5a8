package delaunay

import "github.com/pkg/errors"

// Threading errors up and down the insertion and refinement loops would add a
// lot of noise. Instead, we use panics, and the public entry points recover to
// convert them to an error.

type engineError struct {
	err error
}

// Panic with an engine error.
func throw(err error) {
	panic(engineError{err})
}

func fatalf(format string, args ...interface{}) {
	throw(errors.Errorf(format, args...))
}

// HandlePanicRecover turns a recovered engine panic back into its error. Any
// other panic is a bug and is re-raised.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if e, ok := r.(engineError); ok {
			return e.err
		}
		panic(r)
	}
	return nil
}
