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
	gas, err := client.GasPrices(ctx, now, now, easyenergy.VatDefault)
	if err != nil {
		logger.Error("fetching gas tariffs failed", slog.Any("error", err))
		os.Exit(1)
	}

	lowest, highest := gas.Extremes()
	logger.Info("gas tariffs for today",
		slog.Int("hours", gas.Len()),
		slog.Float64("lowest", lowest),
		slog.Time("lowestAt", gas.LowestPriceTime()),
		slog.Float64("highest", highest),
		slog.Time("highestAt", gas.HighestPriceTime()),
		slog.Float64("average", gas.Average()))

	if current, ok := gas.Current(); ok {
		logger.Info("current gas tariff", slog.Float64("price", current))
	}

	for _, p := range gas.Points() {
		logger.Debug("hourly gas tariff",
			slog.Time("hour", p.Time),
			slog.Float64("price", p.Price))
	}
}
