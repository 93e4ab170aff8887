package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/juliagrant/careshift/pkg/core/model"
	"github.com/juliagrant/careshift/pkg/core/schedule"
	"github.com/juliagrant/careshift/pkg/db"
)

// ConfirmAssignment validates a proposed staff-to-job assignment against
// the staff member's existing commitments and persists it when legal. The
// job's shift window is snapshotted onto the assignment so later edits to
// the posting cannot retroactively change scheduling history.
//
// Violations come back as *schedule.OverlapViolation or
// *schedule.WeeklyLimitViolation so callers can render rule-specific
// messages. The store is expected to serialize writes per staff member;
// this service only sees a snapshot.
func ConfirmAssignment(ctx context.Context, database db.Database, logger *zap.Logger, jobID, staffID string) (*model.Commitment, error) {
	job, err := database.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}

	existing, err := database.GetCommitments(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing commitments: %w", err)
	}

	candidate := schedule.Assignment{
		StaffID: staffID,
		Window:  job.Window,
	}
	if err := schedule.Validate(candidate, existing); err != nil {
		logger.Info("assignment rejected",
			zap.String("job_id", jobID),
			zap.String("staff_id", staffID),
			zap.String("violation", err.Error()))
		return nil, err
	}

	assignment := &model.Commitment{
		ID:         uuid.New().String(),
		JobID:      job.ID,
		StaffID:    staffID,
		HospitalID: job.HospitalID,
		Window:     job.Window,
		State:      model.StateAssigned,
	}

	if err := database.InsertAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to insert assignment: %w", err)
	}

	logger.Info("assignment confirmed",
		zap.String("assignment_id", assignment.ID),
		zap.String("job_id", job.ID),
		zap.String("staff_id", staffID),
		zap.Time("shift_start", job.Window.Start))

	return assignment, nil
}

// UpdateAssignmentState transitions an assignment between lifecycle
// states. Terminal transitions (cancel, complete) skip scheduling checks;
// moving an assignment back to ASSIGNED revalidates it against the staff
// member's other commitments, excluding the record itself.
func UpdateAssignmentState(ctx context.Context, database db.Database, logger *zap.Logger, assignmentID string, state model.CommitmentState) error {
	if !state.IsValid() {
		return fmt.Errorf("invalid assignment state %q", state)
	}

	assignment, err := database.GetAssignment(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch assignment: %w", err)
	}

	if !state.Terminal() {
		existing, err := database.GetCommitments(ctx, assignment.StaffID)
		if err != nil {
			return fmt.Errorf("failed to fetch existing commitments: %w", err)
		}

		candidate := schedule.Assignment{
			ID:      assignment.ID,
			StaffID: assignment.StaffID,
			Window:  assignment.Window,
		}
		if err := schedule.Validate(candidate, existing); err != nil {
			logger.Info("assignment state change rejected",
				zap.String("assignment_id", assignmentID),
				zap.String("violation", err.Error()))
			return err
		}
	}

	if err := database.UpdateAssignmentState(ctx, assignmentID, state); err != nil {
		return fmt.Errorf("failed to update assignment state: %w", err)
	}

	logger.Info("assignment state updated",
		zap.String("assignment_id", assignmentID),
		zap.String("state", string(state)))
	return nil
}
