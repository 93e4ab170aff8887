package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/juliagrant/careshift/pkg/core/model"
	"github.com/juliagrant/careshift/pkg/core/services"
)

// UpdateAssignmentCmd creates the updateAssignment command
func UpdateAssignmentCmd(app *AppContext) *cobra.Command {
	var assignmentID, state string

	cmd := &cobra.Command{
		Use:   "updateAssignment",
		Short: "Transition an assignment between lifecycle states",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := model.CommitmentState(strings.ToUpper(state))
			if err := services.UpdateAssignmentState(app.Ctx, app.Database, app.Logger, assignmentID, target); err != nil {
				return fmt.Errorf("update failed: %w", err)
			}

			fmt.Printf("\n✅ Assignment %s is now %s\n\n", assignmentID, target)
			return nil
		},
	}

	cmd.Flags().StringVar(&assignmentID, "assignment", "", "Assignment ID (required)")
	cmd.Flags().StringVar(&state, "state", "", "Target state: ASSIGNED, CANCELLED or COMPLETED (required)")
	cmd.MarkFlagRequired("assignment")
	cmd.MarkFlagRequired("state")

	return cmd
}
