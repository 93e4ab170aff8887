package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/juliagrant/careshift/pkg/core/model"
	"github.com/juliagrant/careshift/pkg/core/schedule"
)

func shiftAt(start, end string) model.ShiftWindow {
	s, _ := time.Parse("2006-01-02 15:04", start)
	e, _ := time.Parse("2006-01-02 15:04", end)
	return model.ShiftWindow{Start: s, End: e}
}

func openJob(id string, window model.ShiftWindow) model.JobPosting {
	return model.JobPosting{
		ID:         id,
		HospitalID: "hosp-1",
		Status:     model.JobStatusOpen,
		Window:     window,
	}
}

func TestConfirmAssignment_Success(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	database := &mockDatabase{
		jobs: []model.JobPosting{
			openJob("job-1", shiftAt("2025-06-02 09:00", "2025-06-02 17:00")),
		},
	}

	assignment, err := ConfirmAssignment(ctx, database, logger, "job-1", "staff-1")
	require.NoError(t, err)
	require.NotNil(t, assignment)

	assert.NotEmpty(t, assignment.ID)
	assert.Equal(t, "job-1", assignment.JobID)
	assert.Equal(t, "staff-1", assignment.StaffID)
	assert.Equal(t, "hosp-1", assignment.HospitalID)
	assert.Equal(t, model.StateAssigned, assignment.State)
	// Window is snapshotted from the job posting
	assert.Equal(t, database.jobs[0].Window, assignment.Window)

	require.Len(t, database.insertedAssignments, 1)
	assert.Equal(t, assignment.ID, database.insertedAssignments[0].ID)
}

func TestConfirmAssignment_OverlapRejected(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	database := &mockDatabase{
		jobs: []model.JobPosting{
			openJob("job-1", shiftAt("2025-06-02 10:00", "2025-06-02 14:00")),
		},
		assignments: []model.Commitment{
			{
				ID:      "existing",
				StaffID: "staff-1",
				Window:  shiftAt("2025-06-02 09:00", "2025-06-02 17:00"),
				State:   model.StateAssigned,
			},
		},
	}

	_, err := ConfirmAssignment(ctx, database, logger, "job-1", "staff-1")

	var violation *schedule.OverlapViolation
	require.ErrorAs(t, err, &violation)
	assert.Empty(t, database.insertedAssignments)
}

func TestConfirmAssignment_WeeklyLimitRejected(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	database := &mockDatabase{
		jobs: []model.JobPosting{
			openJob("job-1", shiftAt("2025-06-05 09:00", "2025-06-05 17:00")),
		},
		assignments: []model.Commitment{
			{ID: "mon", StaffID: "staff-1", State: model.StateAssigned,
				Window: shiftAt("2025-06-02 09:00", "2025-06-02 17:00")},
			{ID: "tue", StaffID: "staff-1", State: model.StateAssigned,
				Window: shiftAt("2025-06-03 09:00", "2025-06-03 17:00")},
			{ID: "wed", StaffID: "staff-1", State: model.StateCompleted,
				Window: shiftAt("2025-06-04 09:00", "2025-06-04 17:00")},
		},
	}

	_, err := ConfirmAssignment(ctx, database, logger, "job-1", "staff-1")

	var violation *schedule.WeeklyLimitViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, 4, violation.WorkingDays)
	assert.Empty(t, database.insertedAssignments)
}

func TestConfirmAssignment_OtherStaffCommitmentsIgnored(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	database := &mockDatabase{
		jobs: []model.JobPosting{
			openJob("job-1", shiftAt("2025-06-02 09:00", "2025-06-02 17:00")),
		},
		assignments: []model.Commitment{
			{
				ID:      "someone-elses",
				StaffID: "staff-2",
				Window:  shiftAt("2025-06-02 09:00", "2025-06-02 17:00"),
				State:   model.StateAssigned,
			},
		},
	}

	_, err := ConfirmAssignment(ctx, database, logger, "job-1", "staff-1")
	assert.NoError(t, err)
}

func TestConfirmAssignment_JobFetchFailure(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	database := &mockDatabase{failGetJob: true}

	_, err := ConfirmAssignment(ctx, database, logger, "job-1", "staff-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch job")
}

func TestUpdateAssignmentState_TerminalSkipsValidation(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	// Two overlapping assignments on record; cancelling one must not trip
	// the overlap rule
	database := &mockDatabase{
		assignments: []model.Commitment{
			{ID: "a1", StaffID: "staff-1", State: model.StateAssigned,
				Window: shiftAt("2025-06-02 09:00", "2025-06-02 17:00")},
			{ID: "a2", StaffID: "staff-1", State: model.StateAssigned,
				Window: shiftAt("2025-06-02 10:00", "2025-06-02 14:00")},
		},
	}

	err := UpdateAssignmentState(ctx, database, logger, "a1", model.StateCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.StateCancelled, database.stateUpdates["a1"])
}

func TestUpdateAssignmentState_ReassignRevalidates(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	database := &mockDatabase{
		assignments: []model.Commitment{
			{ID: "a1", StaffID: "staff-1", State: model.StateCancelled,
				Window: shiftAt("2025-06-02 09:00", "2025-06-02 17:00")},
			{ID: "a2", StaffID: "staff-1", State: model.StateAssigned,
				Window: shiftAt("2025-06-02 10:00", "2025-06-02 14:00")},
		},
	}

	err := UpdateAssignmentState(ctx, database, logger, "a1", model.StateAssigned)

	var violation *schedule.OverlapViolation
	require.ErrorAs(t, err, &violation)
	assert.Empty(t, database.stateUpdates)
}

func TestUpdateAssignmentState_ReassignExcludesSelf(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	database := &mockDatabase{
		assignments: []model.Commitment{
			{ID: "a1", StaffID: "staff-1", State: model.StateAssigned,
				Window: shiftAt("2025-06-02 09:00", "2025-06-02 17:00")},
		},
	}

	err := UpdateAssignmentState(ctx, database, logger, "a1", model.StateAssigned)
	require.NoError(t, err)
	assert.Equal(t, model.StateAssigned, database.stateUpdates["a1"])
}

func TestUpdateAssignmentState_InvalidState(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	database := &mockDatabase{}

	err := UpdateAssignmentState(ctx, database, logger, "a1", model.CommitmentState("PAUSED"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid assignment state")
}
