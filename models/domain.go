package models

// PriceBounds is a closed numeric interval.
type PriceBounds struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Domain holds the selectable values of every filterable dimension,
// derived once per dataset load.
type Domain struct {
	Categories  []string    `json:"neighborhoods" yaml:"neighborhoods"`
	Years       []int       `json:"years" yaml:"years"`
	Conditions  []int       `json:"conditions" yaml:"conditions"`
	PriceBounds PriceBounds `json:"price_bounds" yaml:"price_bounds"`
}

var conditionLabels = map[int]string{
	9: "Excellent",
	8: "Very Good",
	7: "Good",
	6: "Above Average",
	5: "Average",
	4: "Below Average",
	3: "Fair",
	2: "Poor",
	1: "Very Poor",
}

// ConditionLabel returns the descriptive name of an overall-condition rating.
func ConditionLabel(c int) string {
	if l, ok := conditionLabels[c]; ok {
		return l
	}
	return "Unknown"
}
