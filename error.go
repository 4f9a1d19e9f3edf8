package sgp4

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode is the numeric code left in Record.Error by the last call.
// Values match the ones used by the reference SGP4 distributions.
type ErrorCode int

const (
	CodeNone                  ErrorCode = 0
	CodeEccentricity          ErrorCode = 1
	CodeMeanMotion            ErrorCode = 2
	CodePerturbedEccentricity ErrorCode = 3
	CodeSemiLatusRectum       ErrorCode = 4
	CodeDecayed               ErrorCode = 6
)

// Sentinels to use with errors.Is.
var (
	ErrInvalidEccentricity    = errors.New("sgp4: eccentricity out of range")
	ErrInvalidMeanMotion      = errors.New("sgp4: mean motion not positive")
	ErrInvalidSemiLatusRectum = errors.New("sgp4: semi-latus rectum negative")
	ErrDecayed                = errors.New("sgp4: satellite has decayed")
)

// SatelliteDecayedError is returned when the SGP4 model predicts the satellite has decayed.
type SatelliteDecayedError struct {
	Tsince float64 // Time since epoch in minutes when decay was detected
	Radius float64 // Final orbital radius in Earth Radii that triggered decay
}

// Error returns the error message for SatelliteDecayedError.
func (e *SatelliteDecayedError) Error() string {
	return fmt.Sprintf("sgp4: satellite has decayed (at tsince %.2f min, orbital radius %.4f < 1.0 earth radii)", e.Tsince, e.Radius)
}

func (e *SatelliteDecayedError) Is(target error) bool { return target == ErrDecayed }

func (e *SatelliteDecayedError) Code() ErrorCode { return CodeDecayed }

// ModelLimitsErrorReason defines the specific reason for the model limit violation.
type ModelLimitsErrorReason string

const (
	ReasonEccentricityOutOfRange  ModelLimitsErrorReason = "mean eccentricity outside [-0.001, 1)"
	ReasonMeanMotionNotPositive   ModelLimitsErrorReason = "mean motion <= 0"
	ReasonPerturbedEccentricity   ModelLimitsErrorReason = "perturbed eccentricity outside [0, 1]"
	ReasonSemiLatusRectumNegative ModelLimitsErrorReason = "semi-latus rectum (pl) negative"
)

// ModelLimitsError is returned when SGP4 internal mathematical limits are exceeded,
// often due to extreme orbital parameters (e.g., high drag).
type ModelLimitsError struct {
	Tsince float64                // Time since epoch in minutes when the limit was hit
	Reason ModelLimitsErrorReason // The specific limit that was violated
	Value  float64                // The value that caused the limit violation
	code   ErrorCode
}

// Error returns the error message for ModelLimitsError.
func (e *ModelLimitsError) Error() string {
	return fmt.Sprintf("sgp4: model limits exceeded at tsince %.2f min: %s (value: %.6e)", e.Tsince, e.Reason, e.Value)
}

// Code returns the numeric error code.
func (e *ModelLimitsError) Code() ErrorCode { return e.code }

// Is matches the sentinel for the error's code.
func (e *ModelLimitsError) Is(target error) bool {
	switch e.code {
	case CodeEccentricity, CodePerturbedEccentricity:
		return target == ErrInvalidEccentricity
	case CodeMeanMotion:
		return target == ErrInvalidMeanMotion
	case CodeSemiLatusRectum:
		return target == ErrInvalidSemiLatusRectum
	}
	return false
}

// InitializationError wraps the failure of the validation propagation run
// at the end of NewRecord.
type InitializationError struct {
	SatNum string
	Err    error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("sgp4: satellite %s: initialization failed: %v", e.SatNum, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// CodeOf extracts the numeric code of a propagation error, CodeNone otherwise.
func CodeOf(err error) ErrorCode {
	var coder interface{ Code() ErrorCode }
	if errors.As(err, &coder) {
		return coder.Code()
	}
	return CodeNone
}
