package utils

import "github.com/shopspring/decimal"

var half = decimal.NewFromFloat(0.5)

func RoundWithTwoDecimalPlace(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}

	return d.Round(2)
}

// RoundHalfUp arredonda para o inteiro mais próximo; empates sobem (-2.5 vira -2)
func RoundHalfUp(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}
