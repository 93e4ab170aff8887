package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/juliagrant/careshift/pkg/core/match"
	"github.com/juliagrant/careshift/pkg/core/services"
)

// RecommendJobsCmd creates the recommendJobs command
func RecommendJobsCmd(app *AppContext) *cobra.Command {
	var staffID string
	var department string
	var limit int

	cmd := &cobra.Command{
		Use:   "recommendJobs",
		Short: "Rank open shifts for a staff member",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("recommendJobs command",
				zap.String("staff_id", staffID),
				zap.String("department", department),
				zap.Int("limit", limit))

			result, err := services.RecommendJobsForStaff(app.Ctx, app.Database, app.Reranker, app.Logger, staffID, department, limit)
			if err != nil {
				return fmt.Errorf("recommendation failed: %w", err)
			}

			printRecommendation(result, match.JobsForStaff)
			return nil
		},
	}

	cmd.Flags().StringVar(&staffID, "staff", "", "Staff profile ID (required)")
	cmd.Flags().StringVar(&department, "department", "All", "Department filter")
	cmd.Flags().IntVar(&limit, "limit", 6, "Maximum number of results")
	cmd.MarkFlagRequired("staff")

	return cmd
}
