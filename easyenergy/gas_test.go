package easyenergy

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fetchGas(t *testing.T, now time.Time) *Gas {
	t.Helper()
	client := testClient(t, serveFixture(t, "gas.json"), WithClock(frozenClock(now)))
	day := time.Date(2022, time.December, 14, 0, 0, 0, 0, cet)
	prices, err := client.GasPrices(context.Background(), day, day, VatDefault)
	if err != nil {
		t.Fatalf("GasPrices() unexpected error: %v", err)
	}
	return prices
}

func TestGasAfternoon(t *testing.T) {
	// 15:00 CET on the fixture day.
	prices := fetchGas(t, time.Date(2022, time.December, 14, 14, 0, 0, 0, time.UTC))

	if n := prices.Len(); n != 24 {
		t.Errorf("Len() expected 24, got %d", n)
	}

	lowest, highest := prices.Extremes()
	if lowest != 1.4645 {
		t.Errorf("Extremes() lowest expected 1.4645, got %v", lowest)
	}
	if highest != 1.48534 {
		t.Errorf("Extremes() highest expected 1.48534, got %v", highest)
	}

	if avg := prices.Average(); avg != 1.47951 {
		t.Errorf("Average() expected 1.47951, got %v", avg)
	}

	if current, ok := prices.Current(); !ok || current != 1.48534 {
		t.Errorf("Current() expected 1.48534, got %v (ok=%v)", current, ok)
	}
}

func TestGasEarlyMorning(t *testing.T) {
	// 04:00 CET on the fixture day.
	prices := fetchGas(t, time.Date(2022, time.December, 14, 3, 0, 0, 0, time.UTC))

	lowest, highest := prices.Extremes()
	if lowest != 1.4645 {
		t.Errorf("Extremes() lowest expected 1.4645, got %v", lowest)
	}
	if highest != 1.48534 {
		t.Errorf("Extremes() highest expected 1.48534, got %v", highest)
	}

	if current, ok := prices.Current(); !ok || current != 1.4645 {
		t.Errorf("Current() expected 1.4645, got %v (ok=%v)", current, ok)
	}
}

func TestGasNoCurrentHour(t *testing.T) {
	// The clock is far outside the fixture window.
	prices := fetchGas(t, time.Date(2023, time.June, 1, 12, 0, 0, 0, time.UTC))

	if current, ok := prices.Current(); ok {
		t.Errorf("Current() expected no price, got %v", current)
	}
	if avg := prices.Average(); avg != 1.47951 {
		t.Errorf("Average() expected 1.47951, got %v", avg)
	}
}

func TestGasExtremeTimes(t *testing.T) {
	prices := fetchGas(t, time.Date(2022, time.December, 14, 14, 0, 0, 0, time.UTC))

	// Hours 03:00 and 04:00 UTC share the lowest price; the earliest
	// hour wins.
	expectedLow := time.Date(2022, time.December, 14, 3, 0, 0, 0, time.UTC)
	if lt := prices.LowestPriceTime(); !lt.Equal(expectedLow) {
		t.Errorf("LowestPriceTime() expected %v, got %v", expectedLow, lt)
	}

	expectedHigh := time.Date(2022, time.December, 14, 14, 0, 0, 0, time.UTC)
	if ht := prices.HighestPriceTime(); !ht.Equal(expectedHigh) {
		t.Errorf("HighestPriceTime() expected %v, got %v", expectedHigh, ht)
	}
}

func TestGasPctOfMax(t *testing.T) {
	prices := fetchGas(t, time.Date(2022, time.December, 14, 14, 0, 0, 0, time.UTC))

	// The current hour holds the maximum.
	if pct := prices.PctOfMax(); pct != 100.0 {
		t.Errorf("PctOfMax() expected 100.0, got %v", pct)
	}
}

func TestGasPoints(t *testing.T) {
	prices := fetchGas(t, time.Date(2022, time.December, 14, 14, 0, 0, 0, time.UTC))

	points := prices.Points()
	if len(points) != 24 {
		t.Fatalf("Points() expected 24 entries, got %d", len(points))
	}
	first := time.Date(2022, time.December, 14, 0, 0, 0, 0, time.UTC)
	if !points[0].Time.Equal(first) || points[0].Price != 1.47983 {
		t.Errorf("Points()[0] expected %v at 1.47983, got %v at %v", first, points[0].Time, points[0].Price)
	}
}

func TestNewGasEmpty(t *testing.T) {
	if _, err := newGas([]rawTariff{}, time.Now); !errors.Is(err, ErrNoData) {
		t.Errorf("newGas() with no records expected %v, got %v", ErrNoData, err)
	}
}
