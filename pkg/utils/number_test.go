package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangePercent(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		expected float64
	}{
		{
			name:     "Crescimento de 50%",
			current:  150,
			previous: 100,
			expected: 50,
		},
		{
			name:     "Queda de 25%",
			current:  75,
			previous: 100,
			expected: -25,
		},
		{
			name:     "Sem variação",
			current:  100,
			previous: 100,
			expected: 0,
		},
		{
			name:     "Base anterior zero retorna 0 e não divide por zero",
			current:  42,
			previous: 0,
			expected: 0,
		},
		{
			name:     "Queda total",
			current:  0,
			previous: 80,
			expected: -100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ChangePercent(tt.current, tt.previous))
		})
	}
}

func TestSafeRatio(t *testing.T) {
	tests := []struct {
		name        string
		numerator   float64
		denominator float64
		expected    float64
	}{
		{
			name:        "Divisão normal",
			numerator:   100,
			denominator: 4,
			expected:    25,
		},
		{
			name:        "Denominador zero retorna 0",
			numerator:   100,
			denominator: 0,
			expected:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeRatio(tt.numerator, tt.denominator))
		})
	}
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 33.33, RoundWithTwoDecimalPlace(33.333333))
	assert.Equal(t, 0.33, RoundWithTwoDecimalPlace(1.0/3.0))
	assert.Equal(t, 9.0, RoundWithTwoDecimalPlace(9.0))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}

func TestParsePositiveInt(t *testing.T) {
	value, err := ParsePositiveInt("25")
	assert.NoError(t, err)
	assert.Equal(t, 25, value)

	_, err = ParsePositiveInt("0")
	assert.Error(t, err)

	_, err = ParsePositiveInt("-3")
	assert.Error(t, err)

	_, err = ParsePositiveInt("abc")
	assert.Error(t, err)
}
