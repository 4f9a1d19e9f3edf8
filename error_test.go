package sgp4

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
		code     ErrorCode
	}{
		{&ModelLimitsError{Reason: ReasonEccentricityOutOfRange, code: CodeEccentricity}, ErrInvalidEccentricity, 1},
		{&ModelLimitsError{Reason: ReasonMeanMotionNotPositive, code: CodeMeanMotion}, ErrInvalidMeanMotion, 2},
		{&ModelLimitsError{Reason: ReasonPerturbedEccentricity, code: CodePerturbedEccentricity}, ErrInvalidEccentricity, 3},
		{&ModelLimitsError{Reason: ReasonSemiLatusRectumNegative, code: CodeSemiLatusRectum}, ErrInvalidSemiLatusRectum, 4},
		{&SatelliteDecayedError{Tsince: 10, Radius: 0.98}, ErrDecayed, 6},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, tt.err, tt.sentinel)
		assert.Equal(t, tt.code, CodeOf(tt.err))

		wrapped := &InitializationError{SatNum: "00005", Err: errors.Wrap(tt.err, "propagate")}
		assert.ErrorIs(t, wrapped, tt.sentinel)
		assert.Equal(t, tt.code, CodeOf(wrapped))
		assert.Contains(t, wrapped.Error(), "00005")
	}

	assert.Equal(t, CodeNone, CodeOf(nil))
	assert.Equal(t, CodeNone, CodeOf(errors.New("other")))
	assert.NotErrorIs(t, &ModelLimitsError{code: CodeMeanMotion}, ErrInvalidEccentricity)
}
