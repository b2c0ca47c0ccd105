package models

// FilterState holds the current selections. The zero value of an optional
// field means no filter on that dimension.
type FilterState struct {
	Category  string  `json:"neighborhood,omitempty" yaml:"neighborhood,omitempty"`
	Year      int     `json:"year,omitempty" yaml:"year,omitempty"`
	Condition int     `json:"condition,omitempty" yaml:"condition,omitempty"`
	PriceMin  float64 `json:"price_min" yaml:"price_min"`
	PriceMax  float64 `json:"price_max" yaml:"price_max"`
}

// SetCategory selects a neighborhood; "" clears the filter.
func (f *FilterState) SetCategory(c string) { f.Category = c }

// SetYear selects a sale year; 0 clears the filter.
func (f *FilterState) SetYear(y int) { f.Year = y }

// SetCondition selects an overall condition; 0 clears the filter.
func (f *FilterState) SetCondition(c int) { f.Condition = c }

// SetPriceMin moves the lower bound, dragging the upper bound along when
// the new minimum would cross it.
func (f *FilterState) SetPriceMin(v float64) {
	f.PriceMin = v
	if f.PriceMin > f.PriceMax {
		f.PriceMax = v
	}
}

// SetPriceMax moves the upper bound, dragging the lower bound along when
// the new maximum would cross it.
func (f *FilterState) SetPriceMax(v float64) {
	f.PriceMax = v
	if f.PriceMax < f.PriceMin {
		f.PriceMin = v
	}
}

// Reset clears every optional filter and opens the price window to the
// full bounds of the domain.
func (f *FilterState) Reset(d *Domain) {
	f.Category = ""
	f.Year = 0
	f.Condition = 0
	f.PriceMin = d.PriceBounds.Min
	f.PriceMax = d.PriceBounds.Max
}

// HasCategory reports whether a neighborhood filter is active.
func (f FilterState) HasCategory() bool { return f.Category != "" }

// HasYear reports whether a year filter is active.
func (f FilterState) HasYear() bool { return f.Year != 0 }

// HasCondition reports whether a condition filter is active.
func (f FilterState) HasCondition() bool { return f.Condition != 0 }

// PlaybackState is the position of the year playback.
type PlaybackState struct {
	Running bool `json:"running" yaml:"running"`
	Cursor  int  `json:"cursor" yaml:"cursor"`
}
