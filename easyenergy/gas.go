package easyenergy

import "time"

// Gas holds one batch of hourly gas tariffs.
type Gas struct {
	Series
}

func newGas(records []rawTariff, now func() time.Time) (*Gas, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	times := make([]time.Time, 0, len(records))
	prices := make([]float64, 0, len(records))
	index := make(map[int64]int, len(records))

	// A duplicate hour keeps its first position but takes the later value.
	for _, rec := range records {
		hour := rec.Timestamp.UTC().Truncate(time.Hour)
		if i, ok := index[hour.Unix()]; ok {
			prices[i] = rec.TariffUsage
			continue
		}
		index[hour.Unix()] = len(times)
		times = append(times, hour)
		prices = append(prices, rec.TariffUsage)
	}

	return &Gas{Series{times: times, prices: prices, now: now}}, nil
}
