package convert

import (
	"math"
)

func TwoDecimals(number float64) float64 {
	return RoundFloat64(number, 2)
}

func FiveDecimals(number float64) float64 {
	return RoundFloat64(number, 5)
}

func RoundFloat64(number float64, decimals int) float64 {
	return math.Round(number*math.Pow10(int(decimals))) / math.Pow10(int(decimals))
}

// EurPerMWh converts a EUR/kWh tariff to EUR/MWh.
func EurPerMWh(eurPerKWh float64) float64 {
	return eurPerKWh * 1000
}
