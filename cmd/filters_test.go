package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"housing-dashboard/models"
)

func TestFilterFlagsState(t *testing.T) {
	domain := &models.Domain{
		Categories:  []string{"NAmes", "CollgCr"},
		Years:       []int{2006, 2007},
		Conditions:  []int{5, 6},
		PriceBounds: models.PriceBounds{Min: 50000, Max: 400000},
	}

	tests := []struct {
		name string
		args []string
		want models.FilterState
	}{
		{
			name: "no flags opens the price window",
			args: nil,
			want: models.FilterState{PriceMin: 50000, PriceMax: 400000},
		},
		{
			name: "categorical selections",
			args: []string{"--neighborhood", "NAmes", "--year", "2007", "--condition", "6"},
			want: models.FilterState{Category: "NAmes", Year: 2007, Condition: 6, PriceMin: 50000, PriceMax: 400000},
		},
		{
			name: "explicit price bounds",
			args: []string{"--min-price", "100000", "--max-price", "0"},
			want: models.FilterState{PriceMin: 100000, PriceMax: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f filterFlags
			cmd := &cobra.Command{Use: "test"}
			f.bind(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := f.state(cmd, domain); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
