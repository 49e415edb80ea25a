package easyenergy

import "time"

// Electricity holds one batch of hourly electricity tariffs. Usage and
// Return are views over the same hours, since the API reports both
// tariffs in a single record per hour.
type Electricity struct {
	Usage  Series
	Return Series
}

func newElectricity(records []rawTariff, now func() time.Time) (*Electricity, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	times := make([]time.Time, 0, len(records))
	usage := make([]float64, 0, len(records))
	ret := make([]float64, 0, len(records))
	index := make(map[int64]int, len(records))

	// A duplicate hour keeps its first position but takes the later value.
	for _, rec := range records {
		hour := rec.Timestamp.UTC().Truncate(time.Hour)
		if i, ok := index[hour.Unix()]; ok {
			usage[i] = rec.TariffUsage
			ret[i] = rec.TariffReturn
			continue
		}
		index[hour.Unix()] = len(times)
		times = append(times, hour)
		usage = append(usage, rec.TariffUsage)
		ret = append(ret, rec.TariffReturn)
	}

	return &Electricity{
		Usage:  Series{times: times, prices: usage, now: now},
		Return: Series{times: times, prices: ret, now: now},
	}, nil
}
