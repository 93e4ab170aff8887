package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/juliagrant/careshift/pkg/core/schedule"
	"github.com/juliagrant/careshift/pkg/core/services"
)

// ConfirmAssignmentCmd creates the confirmAssignment command
func ConfirmAssignmentCmd(app *AppContext) *cobra.Command {
	var jobID, staffID string

	cmd := &cobra.Command{
		Use:   "confirmAssignment",
		Short: "Validate and persist a staff-to-shift assignment",
		Long:  "Check the assignment against the staff member's existing commitments (overlap and weekly working-day cap) and save it when legal",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("confirmAssignment command",
				zap.String("job_id", jobID),
				zap.String("staff_id", staffID))

			assignment, err := services.ConfirmAssignment(app.Ctx, app.Database, app.Logger, jobID, staffID)

			var overlap *schedule.OverlapViolation
			var weekly *schedule.WeeklyLimitViolation
			switch {
			case errors.As(err, &overlap):
				fmt.Printf("\n❌ Rejected: %s\n\n", overlap.Error())
				return nil
			case errors.As(err, &weekly):
				fmt.Printf("\n❌ Rejected: %s\n\n", weekly.Error())
				return nil
			case err != nil:
				return fmt.Errorf("assignment failed: %w", err)
			}

			fmt.Printf("\n✅ Assignment %s confirmed\n", assignment.ID)
			fmt.Printf("Shift: %s to %s\n\n",
				assignment.Window.Start.Format("2006-01-02 15:04"),
				assignment.Window.End.Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&jobID, "job", "", "Job posting ID (required)")
	cmd.Flags().StringVar(&staffID, "staff", "", "Staff profile ID (required)")
	cmd.MarkFlagRequired("job")
	cmd.MarkFlagRequired("staff")

	return cmd
}
