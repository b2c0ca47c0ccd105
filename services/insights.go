package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"housing-dashboard/models"
	"housing-dashboard/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(subset []*models.Record) *models.InsightReport {
	report := &models.InsightReport{
		SalesByNeighborhood: make(map[string]int),
	}

	if len(subset) == 0 {
		return report
	}

	report.TotalSales = len(subset)
	report.MinPrice = subset[0].Price
	report.MaxPrice = subset[0].Price
	report.MostExpensive = subset[0]

	var total, perSqFt float64
	var areaCount int
	for _, r := range subset {
		total += r.Price
		if r.Price < report.MinPrice {
			report.MinPrice = r.Price
		}
		if r.Price > report.MaxPrice {
			report.MaxPrice = r.Price
			report.MostExpensive = r
		}
		if r.LivingArea > 0 {
			perSqFt += r.Price / r.LivingArea
			areaCount++
		}
		report.SalesByNeighborhood[r.Category]++
	}

	report.AveragePrice = round2(total / float64(len(subset)))
	if areaCount > 0 {
		report.AvgPricePerSqFt = round2(perSqFt / float64(areaCount))
	}

	s.logger.Debug("[insights] %d sales, average $%.2f", report.TotalSales, report.AveragePrice)
	return report
}

func (s *InsightService) Print(w io.Writer, f models.FilterState, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  🏠 HOUSE SALES INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Filters\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Neighborhood : %s\n", orAll(f.Category, "All Neighborhoods"))
	fmt.Fprintf(w, "  Year sold    : %s\n", orAll(intLabel(f.Year), "All Years"))
	cond := ""
	if f.HasCondition() {
		cond = fmt.Sprintf("%d - %s", f.Condition, models.ConditionLabel(f.Condition))
	}
	fmt.Fprintf(w, "  Condition    : %s\n", orAll(cond, "All Conditions"))
	fmt.Fprintf(w, "  Price window : $%.0f - $%.0f\n", f.PriceMin, f.PriceMax)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Price Statistics\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.TotalSales > 0 {
		fmt.Fprintf(w, "  Sales         : \033[1m%d\033[0m\n", r.TotalSales)
		fmt.Fprintf(w, "  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Fprintf(w, "  Minimum price : \033[1;32m$%.2f\033[0m\n", r.MinPrice)
		fmt.Fprintf(w, "  Maximum price : \033[1;32m$%.2f\033[0m\n", r.MaxPrice)
		fmt.Fprintf(w, "  Price / sq ft : \033[1;32m$%.2f\033[0m\n", r.AvgPricePerSqFt)
	} else {
		fmt.Fprintf(w, "  No sales match the current filters\n")
	}
	fmt.Fprintln(w)

	if r.MostExpensive != nil {
		fmt.Fprintf(w, "\033[1;33m  Most Expensive Sale\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  Neighborhood : %s\n", r.MostExpensive.Category)
		fmt.Fprintf(w, "  Sold         : %s\n", r.MostExpensive.SaleDate)
		fmt.Fprintf(w, "  Living area  : %.0f sq ft\n", r.MostExpensive.LivingArea)
		fmt.Fprintf(w, "  Price        : \033[1;31m$%.2f\033[0m\n", r.MostExpensive.Price)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Sales by Neighborhood\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.SalesByNeighborhood) == 0 {
		fmt.Fprintf(w, "  No neighborhood data\n")
	} else {
		type hoodCount struct {
			name  string
			count int
		}
		var hoods []hoodCount
		for name, cnt := range r.SalesByNeighborhood {
			hoods = append(hoods, hoodCount{name, cnt})
		}
		sort.Slice(hoods, func(i, j int) bool {
			if hoods[i].count != hoods[j].count {
				return hoods[i].count > hoods[j].count
			}
			return hoods[i].name < hoods[j].name
		})
		for _, h := range hoods {
			bar := strings.Repeat("█", scaleBar(h.count, hoods[0].count, 20))
			fmt.Fprintf(w, "  %-20s %s (%d)\n", truncate(h.name, 18), bar, h.count)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func scaleBar(n, max, width int) int {
	if max <= width {
		return n
	}
	w := n * width / max
	if w == 0 && n > 0 {
		w = 1
	}
	return w
}

func orAll(v, all string) string {
	if v == "" {
		return all
	}
	return v
}

func intLabel(v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}
