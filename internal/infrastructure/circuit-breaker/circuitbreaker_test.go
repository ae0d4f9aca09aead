package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateCircuitBreaker_TripsAfterFailures(t *testing.T) {
	cb := CreateCircuitBreaker("test")
	failure := errors.New("broker down")

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() ([]byte, error) { return nil, failure })
		assert.ErrorIs(t, err, failure)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Execute(func() ([]byte, error) { return nil, nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
