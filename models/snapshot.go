package models

// CategoryGroup is the list of sale prices observed for one neighborhood.
type CategoryGroup struct {
	Category string    `json:"neighborhood" yaml:"neighborhood"`
	Prices   []float64 `json:"prices" yaml:"prices"`
}

// YearMean is the average sale price of one year.
type YearMean struct {
	Year int     `json:"year" yaml:"year"`
	Mean float64 `json:"mean_price" yaml:"mean_price"`
}

// HistogramBin counts the prices falling into [Lower, Upper).
// The last bin is closed on both ends.
type HistogramBin struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
	Count int     `json:"count" yaml:"count"`
}

// FiveNumber is the box-plot summary of a price list.
type FiveNumber struct {
	Min    float64 `json:"min" yaml:"min"`
	Q1     float64 `json:"q1" yaml:"q1"`
	Median float64 `json:"median" yaml:"median"`
	Q3     float64 `json:"q3" yaml:"q3"`
	Max    float64 `json:"max" yaml:"max"`
}

// Snapshot is everything a renderer needs to draw the current view.
type Snapshot struct {
	Filter  FilterState     `json:"filter" yaml:"filter"`
	Subset  []*Record       `json:"-" yaml:"-"`
	Groups  []CategoryGroup `json:"groups" yaml:"groups"`
	Trend   []YearMean      `json:"trend" yaml:"trend"`
	Playing bool            `json:"playing" yaml:"playing"`
}

// InsightReport holds summary statistics over a subset.
type InsightReport struct {
	TotalSales          int            `json:"total_sales" yaml:"total_sales"`
	AveragePrice        float64        `json:"average_price" yaml:"average_price"`
	MinPrice            float64        `json:"min_price" yaml:"min_price"`
	MaxPrice            float64        `json:"max_price" yaml:"max_price"`
	AvgPricePerSqFt     float64        `json:"avg_price_per_sqft" yaml:"avg_price_per_sqft"`
	MostExpensive       *Record        `json:"most_expensive,omitempty" yaml:"most_expensive,omitempty"`
	SalesByNeighborhood map[string]int `json:"sales_by_neighborhood" yaml:"sales_by_neighborhood"`
}
