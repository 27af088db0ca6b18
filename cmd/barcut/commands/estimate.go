package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barcut/barcut/internal/importer"
	"github.com/barcut/barcut/internal/model"
)

// NewEstimateCommand creates the estimate command: compute how many
// commercial bars to purchase to cover a demand list.
func NewEstimateCommand() *cobra.Command {
	var (
		input         string
		diameter      float64
		barLength     float64
		wastePercent  float64
		pricePerTonne float64
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate bar purchasing for a demand list",
		Long: `Estimate reads a demand file (length and quantity columns) and computes
the number of commercial bars of the given length needed to cover it,
with an optional waste percentage and price per tonne.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if diameter <= 0 {
				return fmt.Errorf("a positive --diameter is required")
			}
			if barLength <= 0 {
				return fmt.Errorf("a positive --bar-length is required")
			}

			sp := importer.ImportStockpile(input)
			if len(sp.Errors) > 0 {
				return fmt.Errorf("demand import failed: %s", sp.Errors[0])
			}
			if len(sp.Records) == 0 {
				return fmt.Errorf("demand file %s has no usable rows", input)
			}

			est := model.CalculatePurchaseEstimate(sp.Records, diameter, barLength, wastePercent, pricePerTonne)
			renderEstimate(cmd.OutOrStdout(), diameter, est)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "demand file (CSV or Excel with length and quantity columns)")
	cmd.Flags().Float64VarP(&diameter, "diameter", "d", 0, "bar diameter in mm")
	cmd.Flags().Float64VarP(&barLength, "bar-length", "b", 12, "commercial bar length in metres")
	cmd.Flags().Float64VarP(&wastePercent, "waste", "w", 5, "waste allowance percentage")
	cmd.Flags().Float64VarP(&pricePerTonne, "price", "p", 0, "price per tonne for cost estimation")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
