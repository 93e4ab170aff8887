package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/juliagrant/careshift/pkg/clients/identityclient"
	"github.com/juliagrant/careshift/pkg/core/model"
	"github.com/juliagrant/careshift/pkg/db"
)

// RegisterStaffInput is the data needed to onboard a staff member
type RegisterStaffInput struct {
	Email          string
	Secret         string
	FullName       string
	ProfessionID   string
	ProfessionName string
}

// RegisterStaff provisions an account with the external identity provider
// and creates the local staff profile linked to it.
func RegisterStaff(ctx context.Context, database db.StaffStore, issuer identityclient.Issuer, logger *zap.Logger, input RegisterStaffInput) (*model.StaffProfile, error) {
	if input.Email == "" || input.Secret == "" {
		return nil, fmt.Errorf("email and secret are required")
	}
	if input.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}

	externalID, err := issuer.CreateAccount(ctx, input.Email, input.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity account: %w", err)
	}

	staff := &model.StaffProfile{
		ID:             uuid.New().String(),
		ExternalUserID: externalID,
		FullName:       input.FullName,
		Email:          input.Email,
		ProfessionID:   input.ProfessionID,
		ProfessionName: input.ProfessionName,
		Status:         model.StaffStatusActive,
	}

	if err := database.InsertStaff(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to insert staff profile: %w", err)
	}

	logger.Info("staff registered",
		zap.String("staff_id", staff.ID),
		zap.String("external_user_id", externalID))

	return staff, nil
}
