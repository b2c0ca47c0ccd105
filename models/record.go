package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawRecord is one row of the sales data file as delivered.
// Numeric fields tolerate both JSON numbers and numeric strings.
type RawRecord struct {
	NeighborhoodName string    `json:"NeighborhoodName"`
	YrSold           string    `json:"YrSold"`
	OverallCond      FlexFloat `json:"OverallCond"`
	GrLivArea        FlexFloat `json:"GrLivArea"`
	SalePrice        FlexFloat `json:"SalePrice"`
}

// Record is one cleaned sale observation. Records are never mutated after load.
type Record struct {
	ID         int64   `json:"id,omitempty" yaml:"id,omitempty"`
	Category   string  `json:"neighborhood" yaml:"neighborhood"`
	SaleDate   string  `json:"sale_date" yaml:"sale_date"`
	Year       int     `json:"year" yaml:"year"`
	Condition  int     `json:"condition" yaml:"condition"`
	LivingArea float64 `json:"living_area" yaml:"living_area"`
	Price      float64 `json:"price" yaml:"price"`
}

// FlexFloat decodes a JSON number, a numeric string, or null.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}
