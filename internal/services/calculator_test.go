package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateEmission(t *testing.T) {
	assert.InDelta(t, 0.495, CalculateEmission(1000, 0.000495), 1e-12)
	assert.Zero(t, CalculateEmission(0, 0.000495))
	assert.Zero(t, CalculateEmission(1000, 0))
}

func TestCalculateEmissionKeepsFullPrecision(t *testing.T) {
	// The stored value is the raw product. Rounding to two decimals is a
	// display concern only.
	got := CalculateEmission(123.456, 0.000495)
	assert.Equal(t, 123.456*0.000495, got)
	assert.NotEqual(t, 0.06, got)
}
