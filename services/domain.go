package services

import (
	"fmt"
	"sort"

	"housing-dashboard/models"
)

// ExtractDomain derives the selectable values of every filterable dimension
// and the price bounds from the full record collection.
func ExtractDomain(records []*models.Record) (*models.Domain, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("extract domain: %w", ErrEmptyDataset)
	}

	d := &models.Domain{
		PriceBounds: models.PriceBounds{Min: records[0].Price, Max: records[0].Price},
	}

	seenCategory := make(map[string]struct{})
	seenYear := make(map[int]struct{})
	seenCondition := make(map[int]struct{})

	for _, r := range records {
		if _, ok := seenCategory[r.Category]; !ok {
			seenCategory[r.Category] = struct{}{}
			d.Categories = append(d.Categories, r.Category)
		}
		if _, ok := seenYear[r.Year]; !ok {
			seenYear[r.Year] = struct{}{}
			d.Years = append(d.Years, r.Year)
		}
		if _, ok := seenCondition[r.Condition]; !ok {
			seenCondition[r.Condition] = struct{}{}
			d.Conditions = append(d.Conditions, r.Condition)
		}
		if r.Price < d.PriceBounds.Min {
			d.PriceBounds.Min = r.Price
		}
		if r.Price > d.PriceBounds.Max {
			d.PriceBounds.Max = r.Price
		}
	}

	sort.Ints(d.Years)
	sort.Ints(d.Conditions)
	return d, nil
}
