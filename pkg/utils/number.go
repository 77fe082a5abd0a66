package utils

import (
	"fmt"
	"math"
	"strconv"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ChangePercent calcula a variação percentual entre dois períodos:
// (atual - anterior) / anterior * 100. Quando a base anterior é zero a
// variação é definida como 0 para evitar divisão por zero; quem consome o
// valor não deve tratar base zero com atual > 0 como "sem variação" real.
func ChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}

	return (current - previous) / previous * 100
}

// SafeRatio divide numerador por denominador, retornando 0 quando o
// denominador é zero. Usada para derivar CPA e ROAS.
func SafeRatio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	return numerator / denominator
}

// ParsePositiveInt converte uma string em um inteiro estritamente positivo
func ParsePositiveInt(s string) (int, error) {
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}

	if value <= 0 {
		return 0, fmt.Errorf("valor deve ser positivo: %d", value)
	}

	return value, nil
}
