package cmd

import (
	"github.com/spf13/cobra"

	"housing-dashboard/models"
	"housing-dashboard/services"
)

// filterFlags are the filter selections accepted by the one-shot commands.
type filterFlags struct {
	neighborhood string
	year         int
	condition    int
	minPrice     float64
	maxPrice     float64
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.neighborhood, "neighborhood", "", "Only sales in this neighborhood")
	cmd.Flags().IntVar(&f.year, "year", 0, "Only sales in this year")
	cmd.Flags().IntVar(&f.condition, "condition", 0, "Only sales with this overall condition (1-9)")
	cmd.Flags().Float64Var(&f.minPrice, "min-price", 0, "Lower price bound (default: lowest sale price)")
	cmd.Flags().Float64Var(&f.maxPrice, "max-price", 0, "Upper price bound (default: highest sale price)")
}

// state builds the filter state, opening unset price bounds to the domain.
func (f *filterFlags) state(cmd *cobra.Command, d *models.Domain) models.FilterState {
	var s models.FilterState
	s.Reset(d)
	s.Category = f.neighborhood
	s.Year = f.year
	s.Condition = f.condition
	if cmd.Flags().Changed("min-price") {
		s.PriceMin = f.minPrice
	}
	if cmd.Flags().Changed("max-price") {
		s.PriceMax = f.maxPrice
	}
	return s
}

// apply pushes the selections into ctrl, rendering once.
func (f *filterFlags) apply(cmd *cobra.Command, ctrl *services.Controller) {
	ctrl.Apply(f.state(cmd, ctrl.Domain()))
}
