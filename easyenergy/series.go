package easyenergy

import (
	"math"
	"time"
)

// PricePoint is a single hourly tariff.
type PricePoint struct {
	Time  time.Time `json:"timestamp"`
	Price float64   `json:"price"`
}

// Series is a read-only hourly price curve. Prices returned from its
// methods are rounded to five decimals, percentages to two. A Series is
// never mutated after construction and is safe for concurrent readers.
// The client never returns an empty series, so aggregate methods assume
// at least one point.
type Series struct {
	times  []time.Time
	prices []float64
	now    func() time.Time
}

// Len returns the number of hours in the series.
func (s Series) Len() int { return len(s.times) }

// PriceAt returns the price of the hour bucket containing t. The second
// return value is false when no bucket covers t. Should overlapping
// buckets ever occur, the last one in provider order wins.
func (s Series) PriceAt(t time.Time) (float64, bool) {
	var price float64
	found := false
	for i, hour := range s.times {
		if !t.Before(hour) && t.Before(hour.Add(time.Hour)) {
			price = s.prices[i]
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return round(price, 5), true
}

// Current returns the price for the hour the clock is in right now.
func (s Series) Current() (float64, bool) {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return s.PriceAt(now().UTC())
}

// Extremes returns the lowest and highest price in the series.
func (s Series) Extremes() (lowest, highest float64) {
	lowest, highest = s.prices[0], s.prices[0]
	for _, p := range s.prices[1:] {
		if p < lowest {
			lowest = p
		}
		if p > highest {
			highest = p
		}
	}
	return round(lowest, 5), round(highest, 5)
}

// Average returns the arithmetic mean over all hours.
func (s Series) Average() float64 {
	var sum float64
	for _, p := range s.prices {
		sum += p
	}
	return round(sum/float64(len(s.prices)), 5)
}

// LowestPriceTime returns the hour holding the lowest price. When
// several hours share the lowest price the earliest hour wins.
func (s Series) LowestPriceTime() time.Time {
	idx := 0
	for i := 1; i < len(s.prices); i++ {
		if s.prices[i] < s.prices[idx] ||
			(s.prices[i] == s.prices[idx] && s.times[i].Before(s.times[idx])) {
			idx = i
		}
	}
	return s.times[idx]
}

// HighestPriceTime returns the hour holding the highest price. When
// several hours share the highest price the earliest hour wins.
func (s Series) HighestPriceTime() time.Time {
	idx := 0
	for i := 1; i < len(s.prices); i++ {
		if s.prices[i] > s.prices[idx] ||
			(s.prices[i] == s.prices[idx] && s.times[i].Before(s.times[idx])) {
			idx = i
		}
	}
	return s.times[idx]
}

// PctOfMax returns the current price as a percentage of the highest
// price in the series. Without a current price it returns 0.
func (s Series) PctOfMax() float64 {
	current, ok := s.Current()
	if !ok {
		current = 0
	}
	_, highest := s.Extremes()
	return round(current/highest*100, 2)
}

// HoursAtOrBelow returns how many hours are priced at or below price.
func (s Series) HoursAtOrBelow(price float64) int {
	count := 0
	for _, p := range s.prices {
		if p <= price {
			count++
		}
	}
	return count
}

// HoursAtOrAbove returns how many hours are priced at or above price.
func (s Series) HoursAtOrAbove(price float64) int {
	count := 0
	for _, p := range s.prices {
		if p >= price {
			count++
		}
	}
	return count
}

// Points returns the series as timestamp and price pairs in provider
// order. The slice is built fresh on every call.
func (s Series) Points() []PricePoint {
	points := make([]PricePoint, len(s.times))
	for i, hour := range s.times {
		points[i] = PricePoint{Time: hour, Price: round(s.prices[i], 5)}
	}
	return points
}

func round(val float64, decimals int) float64 {
	ratio := math.Pow(10, float64(decimals))
	return math.Round(val*ratio) / ratio
}
