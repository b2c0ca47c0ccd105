package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"housing-dashboard/models"
	"housing-dashboard/utils"
)

// saleDateSeparator splits YrSold values such as "1.2.2008".
const saleDateSeparator = "."

// Cleaner transforms RawRecords into validated Records.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean converts raw rows in order, dropping the ones whose neighborhood,
// year, condition or price cannot be used.
func (c *Cleaner) Clean(raw []*models.RawRecord) []*models.Record {
	result := make([]*models.Record, 0, len(raw))

	for i, r := range raw {
		category := normaliseText(r.NeighborhoodName)
		if category == "" {
			c.logger.Warn("[cleaner] Dropping row %d: missing neighborhood", i)
			continue
		}

		year, err := ParseSaleYear(r.YrSold)
		if err != nil {
			c.logger.Warn("[cleaner] Dropping row %d: %v", i, err)
			continue
		}

		condition := int(r.OverallCond)
		if float64(condition) != float64(r.OverallCond) || condition < 1 || condition > 9 {
			c.logger.Warn("[cleaner] Dropping row %d: overall condition %v outside 1-9", i, float64(r.OverallCond))
			continue
		}

		price := float64(r.SalePrice)
		if !isFinite(price) || price <= 0 {
			c.logger.Warn("[cleaner] Dropping row %d: unusable sale price %v", i, price)
			continue
		}

		area := float64(r.GrLivArea)
		if !isFinite(area) || area < 0 {
			c.logger.Warn("[cleaner] Dropping row %d: unusable living area %v", i, area)
			continue
		}

		result = append(result, &models.Record{
			Category:   category,
			SaleDate:   strings.TrimSpace(r.YrSold),
			Year:       year,
			Condition:  condition,
			LivingArea: area,
			Price:      price,
		})
	}

	c.logger.Info("[cleaner] Cleaned %d → %d records (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// ParseSaleYear extracts the year from a sale date by splitting on "." and
// taking the third component.
func ParseSaleYear(saleDate string) (int, error) {
	parts := strings.Split(strings.TrimSpace(saleDate), saleDateSeparator)
	if len(parts) < 3 {
		return 0, fmt.Errorf("sale date %q has no year component", saleDate)
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return 0, fmt.Errorf("sale date %q: bad year: %w", saleDate, err)
	}
	if year <= 0 {
		return 0, fmt.Errorf("sale date %q: year must be positive", saleDate)
	}
	return year, nil
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
