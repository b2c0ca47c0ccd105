package models

import (
	"math/rand"
	"testing"
)

func TestFilterStatePriceClamp(t *testing.T) {
	f := FilterState{PriceMin: 100, PriceMax: 200}

	f.SetPriceMin(150)
	if f.PriceMin != 150 || f.PriceMax != 200 {
		t.Errorf("min within window: got [%v, %v]", f.PriceMin, f.PriceMax)
	}

	f.SetPriceMin(250)
	if f.PriceMin != 250 || f.PriceMax != 250 {
		t.Errorf("min above max should drag max: got [%v, %v]", f.PriceMin, f.PriceMax)
	}

	f.SetPriceMax(120)
	if f.PriceMin != 120 || f.PriceMax != 120 {
		t.Errorf("max below min should drag min: got [%v, %v]", f.PriceMin, f.PriceMax)
	}
}

func TestFilterStatePriceInvariantHolds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	f := FilterState{PriceMin: 0, PriceMax: 1000}

	for i := 0; i < 1000; i++ {
		v := rng.Float64() * 1000
		if rng.Intn(2) == 0 {
			f.SetPriceMin(v)
		} else {
			f.SetPriceMax(v)
		}
		if f.PriceMin > f.PriceMax {
			t.Fatalf("step %d: PriceMin %v > PriceMax %v", i, f.PriceMin, f.PriceMax)
		}
	}
}

func TestFilterStateReset(t *testing.T) {
	f := FilterState{Category: "A", Year: 2008, Condition: 5, PriceMin: 3, PriceMax: 4}
	f.Reset(&Domain{PriceBounds: PriceBounds{Min: 1, Max: 9}})

	if f.HasCategory() || f.HasYear() || f.HasCondition() {
		t.Errorf("optional filters not cleared: %+v", f)
	}
	if f.PriceMin != 1 || f.PriceMax != 9 {
		t.Errorf("price window: got [%v, %v], want [1, 9]", f.PriceMin, f.PriceMax)
	}
}

func TestConditionLabel(t *testing.T) {
	if got := ConditionLabel(9); got != "Excellent" {
		t.Errorf("ConditionLabel(9) = %q", got)
	}
	if got := ConditionLabel(42); got != "Unknown" {
		t.Errorf("ConditionLabel(42) = %q", got)
	}
}

func TestFilterStateZeroValueClears(t *testing.T) {
	var f FilterState
	f.SetCategory("NAmes")
	f.SetYear(2008)
	f.SetCondition(5)
	if !f.HasCategory() || !f.HasYear() || !f.HasCondition() {
		t.Fatalf("filters should be active: %+v", f)
	}

	f.SetCategory("")
	f.SetYear(0)
	f.SetCondition(0)
	if f.HasCategory() || f.HasYear() || f.HasCondition() {
		t.Errorf("zero values should clear the filters: %+v", f)
	}
}
