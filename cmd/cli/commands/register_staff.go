package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juliagrant/careshift/pkg/core/services"
)

// RegisterStaffCmd creates the registerStaff command
func RegisterStaffCmd(app *AppContext) *cobra.Command {
	var input services.RegisterStaffInput

	cmd := &cobra.Command{
		Use:   "registerStaff",
		Short: "Onboard a staff member via the identity provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			staff, err := services.RegisterStaff(app.Ctx, app.Database, app.Identity, app.Logger, input)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Printf("\n✅ Registered %s (staff id %s)\n\n", staff.FullName, staff.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&input.Secret, "password", "", "Initial password (required)")
	cmd.Flags().StringVar(&input.FullName, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&input.ProfessionID, "profession", "", "Profession ID (required)")
	cmd.Flags().StringVar(&input.ProfessionName, "profession-name", "", "Profession display name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("profession")

	return cmd
}
