package tariff

import (
	"context"
	"fmt"
	"time"

	"github.com/jdevries/easyenergy-go/easyenergy"
	"github.com/jdevries/easyenergy-go/hours"
	"github.com/jdevries/easyenergy-go/slice"
	"github.com/jdevries/easyenergy-go/types"
)

// EasyEnergy adapts an easyenergy client to the types.TariffSource
// interface consumed by the scheduled tasks.
type EasyEnergy struct {
	client *easyenergy.Client
}

func NewEasyEnergy(client *easyenergy.Client) *EasyEnergy {
	return &EasyEnergy{client: client}
}

func (e *EasyEnergy) ElectricityRates(ctx context.Context, start, end time.Time) ([]types.ElectricityRate, error) {
	prices, err := e.client.ElectricityPrices(ctx, start, end, easyenergy.VatDefault)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch electricity tariffs: %w", err)
	}

	usage := prices.Usage.Points()
	ret := prices.Return.Points()
	rates := make([]types.ElectricityRate, len(usage))
	for i, p := range usage {
		rates[i] = types.ElectricityRate{
			Hour:   hours.FromTime(p.Time),
			Usage:  p.Price,
			Return: ret[i].Price,
		}
	}
	return rates, nil
}

func (e *EasyEnergy) GasRates(ctx context.Context, start, end time.Time) ([]types.GasRate, error) {
	prices, err := e.client.GasPrices(ctx, start, end, easyenergy.VatDefault)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gas tariffs: %w", err)
	}

	return slice.Map(prices.Points(), func(p easyenergy.PricePoint) types.GasRate {
		return types.GasRate{Hour: hours.FromTime(p.Time), Price: p.Price}
	}), nil
}
