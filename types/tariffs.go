package types

import (
	"context"
	"time"

	"github.com/jdevries/easyenergy-go/hours"
)

// ElectricityRate is one hour of electricity tariffs in EUR per kWh.
type ElectricityRate struct {
	Hour   hours.DateHour
	Usage  float64 // Price for consuming energy
	Return float64 // Price for feeding energy back to the grid
}

// GasRate is one hour of gas tariffs in EUR per m3.
type GasRate struct {
	Hour  hours.DateHour
	Price float64
}

// TariffSource delivers hourly tariffs covering the calendar days start
// through end.
type TariffSource interface {
	ElectricityRates(ctx context.Context, start, end time.Time) ([]ElectricityRate, error)
	GasRates(ctx context.Context, start, end time.Time) ([]GasRate, error)
}
