package models

import (
	"encoding/json"
	"testing"
)

func TestRawRecordDecodesNumbersAndStrings(t *testing.T) {
	data := `[
		{"NeighborhoodName":"NAmes","YrSold":"1.2.2008","OverallCond":5,"GrLivArea":"1710","SalePrice":208500},
		{"NeighborhoodName":"OldTown","YrSold":"1.2.2009","OverallCond":"7","GrLivArea":null,"SalePrice":"181500.5"}
	]`

	var rows []RawRecord
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if rows[0].GrLivArea != 1710 || rows[0].SalePrice != 208500 {
		t.Errorf("row 0: %+v", rows[0])
	}
	if rows[1].OverallCond != 7 || rows[1].GrLivArea != 0 || rows[1].SalePrice != 181500.5 {
		t.Errorf("row 1: %+v", rows[1])
	}
}

func TestRawRecordRejectsGarbage(t *testing.T) {
	var r RawRecord
	if err := json.Unmarshal([]byte(`{"SalePrice":"lots"}`), &r); err == nil {
		t.Errorf("expected an error for a non-numeric price")
	}
}
