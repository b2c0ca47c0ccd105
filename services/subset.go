package services

import "housing-dashboard/models"

// FilterRecords returns the records matching every active predicate of
// state, in their original order. The price window is always applied and
// is inclusive on both ends. The result shares record pointers with the
// input and is recomputed from scratch on every call.
func FilterRecords(records []*models.Record, state models.FilterState) []*models.Record {
	subset := make([]*models.Record, 0, len(records))
	for _, r := range records {
		if state.HasCategory() && r.Category != state.Category {
			continue
		}
		if state.HasYear() && r.Year != state.Year {
			continue
		}
		if state.HasCondition() && r.Condition != state.Condition {
			continue
		}
		if r.Price < state.PriceMin || r.Price > state.PriceMax {
			continue
		}
		subset = append(subset, r)
	}
	return subset
}
