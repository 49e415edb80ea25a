package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/jdevries/easyenergy-go/easyenergy"
	"github.com/lmittmann/tint"
)

func main() {
	w := os.Stdout
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339,
	}))

	timezone := flag.String("timezone", "Europe/Amsterdam", "timezone anchoring the tariff day")
	excludeVat := flag.Bool("exclude-vat", false, "request tariffs excluding VAT")
	flag.Parse()

	loc, err := time.LoadLocation(*timezone)
	if err != nil {
		logger.Error("unknown timezone", slog.Any("error", err))
		os.Exit(1)
	}

	vat := easyenergy.VatInclude
	if *excludeVat {
		vat = easyenergy.VatExclude
	}

	client := easyenergy.New(
		easyenergy.WithLocation(loc),
		easyenergy.WithVat(vat))
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	now := time.Now().In(loc)
	electricity, err := client.ElectricityPrices(ctx, now, now, easyenergy.VatDefault)
	if err != nil {
		logger.Error("fetching electricity tariffs failed", slog.Any("error", err))
		os.Exit(1)
	}

	for _, series := range []struct {
		name string
		s    easyenergy.Series
	}{
		{"usage", electricity.Usage},
		{"return", electricity.Return},
	} {
		lowest, highest := series.s.Extremes()
		logger.Info("tariffs for today",
			slog.String("series", series.name),
			slog.Int("hours", series.s.Len()),
			slog.Float64("lowest", lowest),
			slog.Time("lowestAt", series.s.LowestPriceTime()),
			slog.Float64("highest", highest),
			slog.Time("highestAt", series.s.HighestPriceTime()),
			slog.Float64("average", series.s.Average()))

		if current, ok := series.s.Current(); ok {
			logger.Info("current tariff",
				slog.String("series", series.name),
				slog.Float64("price", current),
				slog.Float64("pctOfMax", series.s.PctOfMax()))
		}

		for _, p := range series.s.Points() {
			logger.Debug("hourly tariff",
				slog.String("series", series.name),
				slog.Time("hour", p.Time),
				slog.Float64("price", p.Price))
		}
	}
}
