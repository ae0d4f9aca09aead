package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorStatusCode(t *testing.T) {
	testCases := []struct {
		Name     string
		Err      error
		Expected int
	}{
		{Name: "sentinel", Err: ErrProductNotFound, Expected: http.StatusNotFound},
		{Name: "wrapped validation", Err: fmt.Errorf("%w: name is required", ErrValidation), Expected: http.StatusBadRequest},
		{Name: "role", Err: ErrUnauthorized, Expected: http.StatusForbidden},
		{Name: "credential", Err: ErrInvalidToken, Expected: http.StatusUnauthorized},
		{Name: "unknown", Err: errors.New("connection refused"), Expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, GetErrorStatusCode(tc.Err))
		})
	}
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown(fmt.Errorf("%w: bad", ErrValidation)))
	assert.False(t, IsKnown(errors.New("dial tcp: i/o timeout")))
}
