package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/pkg/palette"
)

var targetsFormat string

// targetsCmd lists the standard targets.
var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the standard swatch targets",
	Long: `List the standard targets swatches are matched against, in selection order.

Each target accepts swatches whose saturation and lightness fall inside its
[min, max] bands and prefers those closest to the target values. Weights set
how much saturation, lightness and population contribute to the score.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeTargets(cmd.OutOrStdout(), palette.StandardTargets(), targetsFormat)
	},
}

func init() {
	targetsCmd.Flags().StringVarP(&targetsFormat, "format", "f", formatText, "output format (text, json)")
}

func writeTargets(w io.Writer, targets []palette.Target, format string) error {
	switch format {
	case formatText:
		table := NewTable([]string{"NAME", "SATURATION", "LIGHTNESS", "WEIGHTS (S/L/P)", "EXCLUSIVE"})
		for _, t := range targets {
			table.AddRow([]string{
				t.Name,
				band(t.MinSaturation, t.TargetSaturation, t.MaxSaturation),
				band(t.MinLightness, t.TargetLightness, t.MaxLightness),
				fmt.Sprintf("%.2f/%.2f/%.2f", t.SaturationWeight, t.LightnessWeight, t.PopulationWeight),
				strconv.FormatBool(t.Exclusive),
			})
		}
		_, err := io.WriteString(w, table.Render())
		return err
	case formatJSON:
		data, err := json.MarshalIndent(targets, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal targets: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}

// band renders min <= target <= max.
func band(lo, target, hi float64) string {
	return fmt.Sprintf("%.2f <= %.2f <= %.2f", lo, target, hi)
}
