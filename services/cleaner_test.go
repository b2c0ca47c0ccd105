package services

import (
	"encoding/json"
	"math"
	"testing"

	"housing-dashboard/models"
)

func TestParseSaleYear(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"1.2.2008", 2008, false},
		{" 15.11.2010 ", 2010, false},
		{"1.2.2008.extra", 2008, false},
		{"2008", 0, true},
		{"1.2", 0, true},
		{"1.2.abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSaleYear(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSaleYear(%q) error = %v; wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSaleYear(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerConvertsRows(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawRecord{
		{NeighborhoodName: "  College   Creek ", YrSold: "1.2.2008", OverallCond: 5, GrLivArea: 1710, SalePrice: 208500},
	}

	got := c.Clean(raw)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	r := got[0]
	if r.Category != "College Creek" || r.Year != 2008 || r.Condition != 5 || r.LivingArea != 1710 || r.Price != 208500 {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.SaleDate != "1.2.2008" {
		t.Errorf("SaleDate: got %q", r.SaleDate)
	}
}

func TestCleanerDropsInvalidRows(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawRecord{
		{NeighborhoodName: "A", YrSold: "bad", OverallCond: 5, SalePrice: 100},
		{NeighborhoodName: "A", YrSold: "1.1.2007", OverallCond: 0, SalePrice: 100},
		{NeighborhoodName: "A", YrSold: "1.1.2007", OverallCond: 10, SalePrice: 100},
		{NeighborhoodName: "A", YrSold: "1.1.2007", OverallCond: 5.5, SalePrice: 100},
		{NeighborhoodName: "A", YrSold: "1.1.2007", OverallCond: 5, SalePrice: 0},
		{NeighborhoodName: "  ", YrSold: "1.1.2007", OverallCond: 5, SalePrice: 100},
		{NeighborhoodName: "A", YrSold: "1.1.2007", OverallCond: 5, SalePrice: models.FlexFloat(math.NaN())},
		{NeighborhoodName: "A", YrSold: "1.1.2007", OverallCond: 5, SalePrice: models.FlexFloat(math.Inf(1))},
		{NeighborhoodName: "A", YrSold: "1.1.2007", OverallCond: 5, SalePrice: 100, GrLivArea: models.FlexFloat(math.Inf(-1))},
		{NeighborhoodName: "A", YrSold: "1.1.2007", OverallCond: 5, SalePrice: 100, GrLivArea: models.FlexFloat(math.NaN())},
		{NeighborhoodName: "B", YrSold: "1.1.2007", OverallCond: 5, SalePrice: 100},
	}

	got := c.Clean(raw)
	if len(got) != 1 || got[0].Category != "B" {
		t.Errorf("expected only the valid B row, got %d records", len(got))
	}
}

func TestCleanerDropsNonFiniteJSONValues(t *testing.T) {
	var raw []*models.RawRecord
	data := `[
		{"NeighborhoodName":"A","YrSold":"1.1.2007","OverallCond":5,"GrLivArea":1000,"SalePrice":100000},
		{"NeighborhoodName":"A","YrSold":"1.1.2007","OverallCond":5,"GrLivArea":1000,"SalePrice":"Inf"},
		{"NeighborhoodName":"A","YrSold":"1.1.2007","OverallCond":5,"GrLivArea":1000,"SalePrice":"NaN"},
		{"NeighborhoodName":"A","YrSold":"1.1.2007","OverallCond":5,"GrLivArea":"Infinity","SalePrice":120000}
	]`
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}

	got := NewCleaner(newTestLogger()).Clean(raw)
	if len(got) != 1 {
		t.Fatalf("kept %d rows, want 1", len(got))
	}

	d, err := ExtractDomain(got)
	if err != nil {
		t.Fatal(err)
	}
	if d.PriceBounds.Min > d.PriceBounds.Max || math.IsNaN(d.PriceBounds.Min) {
		t.Errorf("bounds: got %+v", d.PriceBounds)
	}
	if hist := PriceHistogram(got, 30); len(hist) != 1 || hist[0].Count != 1 {
		t.Errorf("histogram: got %+v", hist)
	}
}
