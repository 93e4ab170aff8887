package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/juliagrant/careshift/pkg/core/match"
	"github.com/juliagrant/careshift/pkg/core/services"
)

// RecommendStaffCmd creates the recommendStaff command
func RecommendStaffCmd(app *AppContext) *cobra.Command {
	var jobID string
	var limit int

	cmd := &cobra.Command{
		Use:   "recommendStaff",
		Short: "Rank staff candidates for a hospital shift",
		Long:  "Score all active staff against one job posting and print the ordered recommendation list, optionally re-ranked by the external reasoning service",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("recommendStaff command",
				zap.String("job_id", jobID),
				zap.Int("limit", limit))

			result, err := services.RecommendStaffForJob(app.Ctx, app.Database, app.Reranker, app.Logger, jobID, limit)
			if err != nil {
				return fmt.Errorf("recommendation failed: %w", err)
			}

			printRecommendation(result, match.StaffForJob)
			return nil
		},
	}

	cmd.Flags().StringVar(&jobID, "job", "", "Job posting ID (required)")
	cmd.Flags().IntVar(&limit, "limit", 6, "Maximum number of results")
	cmd.MarkFlagRequired("job")

	return cmd
}

func printRecommendation(result *services.RecommendationResult, direction match.Direction) {
	fmt.Printf("\n🏥 Recommendations (%s)\n\n", result.Engine)
	fmt.Printf("AI re-ranking: enabled=%v applied=%v", result.Meta.Enabled, result.Meta.Applied)
	if result.Meta.FallbackReason != "" {
		fmt.Printf(" fallback=%s", result.Meta.FallbackReason)
	}
	fmt.Println()
	fmt.Println()

	for i, c := range result.Results {
		fmt.Printf("%2d. %s (%s)\n", i+1, c.Name, c.Role)
		fmt.Printf("    match=%d ai=%d confidence=%s\n", c.Match, c.AIScore, c.AIConfidence)
		for _, tag := range c.Factors.Tags(direction) {
			fmt.Printf("    %s=%d", tag.Key, tag.Value)
		}
		fmt.Println()
		fmt.Printf("    %s\n", c.AIReasonShort)
		for _, detail := range c.AIReasonDetails {
			fmt.Printf("      - %s\n", detail)
		}
	}
	fmt.Println()
}
