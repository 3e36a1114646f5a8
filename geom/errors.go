package geom

import (
	"fmt"

	"github.com/pkg/errors"
)

// GeometryError reports boundary segments that cannot describe simple closed
// loops: out of range, degenerate, duplicated, open or self-intersecting.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return "geometry error: " + e.Reason
}

// DegenerateInputError reports a point set that cannot be triangulated,
// because it has fewer than three distinct points or they are all collinear.
type DegenerateInputError struct {
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return "degenerate input: " + e.Reason
}

// ConfigurationError reports an inconsistent geometry or pipeline
// configuration. Err may combine several problems found in one pass.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func GeometryErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&GeometryError{Reason: fmt.Sprintf(format, args...)})
}

func DegenerateInputErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&DegenerateInputError{Reason: fmt.Sprintf(format, args...)})
}

func ConfigurationErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&ConfigurationError{Err: errors.Errorf(format, args...)})
}

// NewConfigurationError wraps err, which is usually a multierr combination of
// validation problems. A nil err yields nil.
func NewConfigurationError(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(&ConfigurationError{Err: err})
}

func IsGeometryError(err error) bool {
	var target *GeometryError
	return errors.As(err, &target)
}

func IsDegenerateInputError(err error) bool {
	var target *DegenerateInputError
	return errors.As(err, &target)
}

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}
