package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/juliagrant/careshift/pkg/core/services"
)

// DefineShiftSeriesCmd creates the defineShiftSeries command
func DefineShiftSeriesCmd(app *AppContext) *cobra.Command {
	var spec services.ShiftSeriesSpec
	var overrideName string

	cmd := &cobra.Command{
		Use:   "defineShiftSeries",
		Short: "Expand a recurrence rule into dated job postings",
		RunE: func(cmd *cobra.Command, args []string) error {
			// A named override from config takes precedence over --rrule
			if overrideName != "" {
				found := false
				for _, override := range app.Cfg.SeriesOverrides {
					if override.Name == overrideName {
						spec.RRule = override.RRule
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("no series override named %q in config", overrideName)
				}
			}

			app.Logger.Debug("defineShiftSeries command",
				zap.String("hospital_id", spec.HospitalID),
				zap.String("rrule", spec.RRule))

			result, err := services.DefineShiftSeries(app.Ctx, app.Database, app.Logger, spec)
			if err != nil {
				return fmt.Errorf("series creation failed: %w", err)
			}

			fmt.Printf("\n📅 Created %d job postings\n\n", len(result.Jobs))
			for _, job := range result.Jobs {
				fmt.Printf("  • %s  %s - %s\n", job.ID,
					job.Window.Start.Format("Mon Jan 2 15:04"),
					job.Window.End.Format("15:04"))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&spec.HospitalID, "hospital", "", "Hospital ID (required)")
	cmd.Flags().StringVar(&spec.HospitalName, "hospital-name", "", "Hospital display name")
	cmd.Flags().StringVar(&spec.DepartmentName, "department", "", "Department name (required)")
	cmd.Flags().StringVar(&spec.ProfessionID, "profession", "", "Profession ID (required)")
	cmd.Flags().StringVar(&spec.ProfessionName, "profession-name", "", "Profession display name")
	cmd.Flags().StringVar(&spec.RRule, "rrule", "", "Recurrence rule, e.g. FREQ=WEEKLY;BYDAY=MO,WE")
	cmd.Flags().StringVar(&overrideName, "series", "", "Named series override from config (replaces --rrule)")
	cmd.Flags().IntVar(&spec.StartMinute, "start-minute", 540, "Shift start, minutes since midnight")
	cmd.Flags().IntVar(&spec.EndMinute, "end-minute", 1020, "Shift end, minutes since midnight")
	cmd.Flags().StringVar(&spec.HourlyRate, "rate", "0", "Hourly rate")
	cmd.Flags().StringVar(&spec.Currency, "currency", "GBP", "Currency code")
	cmd.Flags().IntVar(&spec.Count, "count", 4, "Number of occurrences to generate")
	cmd.MarkFlagRequired("hospital")
	cmd.MarkFlagRequired("department")
	cmd.MarkFlagRequired("profession")

	return cmd
}
