package services

import (
	"math"
	"sort"

	"housing-dashboard/models"
)

// GroupByCategory collects sale prices per neighborhood. Groups appear in
// the order their neighborhood is first seen; prices keep subset order.
func GroupByCategory(subset []*models.Record) []models.CategoryGroup {
	index := make(map[string]int)
	groups := make([]models.CategoryGroup, 0)

	for _, r := range subset {
		i, ok := index[r.Category]
		if !ok {
			i = len(groups)
			index[r.Category] = i
			groups = append(groups, models.CategoryGroup{Category: r.Category})
		}
		groups[i].Prices = append(groups[i].Prices, r.Price)
	}
	return groups
}

// MeanByYear returns the average sale price of every year present in the
// subset, ascending by year. Years without records are omitted.
func MeanByYear(subset []*models.Record) []models.YearMean {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, r := range subset {
		sums[r.Year] += r.Price
		counts[r.Year]++
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	trend := make([]models.YearMean, 0, len(years))
	for _, y := range years {
		trend = append(trend, models.YearMean{Year: y, Mean: sums[y] / float64(counts[y])})
	}
	return trend
}

// PriceHistogram buckets subset prices into equal-width bins spanning the
// subset's own price range.
func PriceHistogram(subset []*models.Record, bins int) []models.HistogramBin {
	if len(subset) == 0 || bins < 1 {
		return nil
	}

	lo, hi := subset[0].Price, subset[0].Price
	for _, r := range subset {
		lo = math.Min(lo, r.Price)
		hi = math.Max(hi, r.Price)
	}
	if lo == hi {
		return []models.HistogramBin{{Lower: lo, Upper: hi, Count: len(subset)}}
	}

	width := (hi - lo) / float64(bins)
	hist := make([]models.HistogramBin, bins)
	for i := range hist {
		hist[i].Lower = lo + float64(i)*width
		hist[i].Upper = lo + float64(i+1)*width
	}
	hist[bins-1].Upper = hi

	for _, r := range subset {
		i := int((r.Price - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		hist[i].Count++
	}
	return hist
}

// Summarize computes the five-number summary of prices using linear
// interpolation between closest ranks. The input is not modified.
func Summarize(prices []float64) models.FiveNumber {
	if len(prices) == 0 {
		return models.FiveNumber{}
	}
	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)

	return models.FiveNumber{
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}
