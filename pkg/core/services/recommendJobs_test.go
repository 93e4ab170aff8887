package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/juliagrant/careshift/pkg/core/match"
	"github.com/juliagrant/careshift/pkg/core/model"
)

func recommendJobsDatabase() *mockDatabase {
	return &mockDatabase{
		staff: []model.StaffProfile{
			{
				ID:             "staff-1",
				FullName:       "Priya Shah",
				ProfessionID:   "nurse",
				ProfessionName: "Nurse",
				Status:         model.StaffStatusActive,
				Availability:   allDayAvailability(),
			},
		},
		jobs: []model.JobPosting{
			{
				ID:             "job-icu",
				HospitalID:     "hosp-1",
				HospitalName:   "St Mary's",
				DepartmentName: "ICU",
				ProfessionID:   "nurse",
				ProfessionName: "Nurse",
				Status:         model.JobStatusOpen,
				Window:         shiftAt("2025-06-02 09:00", "2025-06-02 17:00"),
				HourlyRate:     "32.50",
				Currency:       "GBP",
			},
			{
				ID:             "job-wards",
				HospitalID:     "hosp-2",
				HospitalName:   "Royal London",
				DepartmentName: "Wards",
				ProfessionID:   "nurse",
				ProfessionName: "Nurse",
				Status:         model.JobStatusOpen,
				Window:         shiftAt("2025-06-03 09:00", "2025-06-03 17:00"),
			},
			{
				ID:             "job-closed",
				HospitalID:     "hosp-1",
				DepartmentName: "ICU",
				ProfessionID:   "nurse",
				Status:         "FILLED",
				Window:         shiftAt("2025-06-04 09:00", "2025-06-04 17:00"),
			},
		},
		ratings:         map[string]float64{"hosp-1": 4.5},
		hospitalHistory: map[string]int{"hosp-1": 3},
	}
}

func TestRecommendJobsForStaff_ScoresOpenJobsOnly(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	result, err := RecommendJobsForStaff(ctx, recommendJobsDatabase(), disabledReranker(), logger, "staff-1", "", 10)
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	// Rated, familiar hospital beats the unrated one
	assert.Equal(t, "job-icu", result.Results[0].ID)
	assert.Equal(t, "job-wards", result.Results[1].ID)
	assert.Equal(t, "St Mary's", result.Results[0].Name)
	assert.Equal(t, "Nurse - ICU", result.Results[0].Role)
	assert.Equal(t, "32.50", result.Results[0].HourlyRate)
	assert.Equal(t, "GBP", result.Results[0].Currency)
}

func TestRecommendJobsForStaff_UnratedHospitalGetsDefault(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	result, err := RecommendJobsForStaff(ctx, recommendJobsDatabase(), disabledReranker(), logger, "staff-1", "", 10)
	require.NoError(t, err)

	var wards match.Candidate
	for _, c := range result.Results {
		if c.ID == "job-wards" {
			wards = c
		}
	}
	// 3.5 default rating on the 0-5 scale renders as 70
	assert.Equal(t, 70, wards.Factors.Quality)
	assert.Equal(t, 0, wards.Factors.History)
}

func TestRecommendJobsForStaff_DepartmentFilter(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	result, err := RecommendJobsForStaff(ctx, recommendJobsDatabase(), disabledReranker(), logger, "staff-1", "Wards", 10)
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, "job-wards", result.Results[0].ID)
}

func TestRecommendJobsForStaff_UnknownStaff(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	_, err := RecommendJobsForStaff(ctx, recommendJobsDatabase(), disabledReranker(), logger, "missing", "", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch staff profile")
}

func TestRecommendJobsForStaff_LimitMustBePositive(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	_, err := RecommendJobsForStaff(ctx, recommendJobsDatabase(), disabledReranker(), logger, "staff-1", "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit must be greater than 0")
}

func TestRecommendJobsForStaff_EmptyPoolMeta(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	database := recommendJobsDatabase()
	database.jobs = nil

	result, err := RecommendJobsForStaff(ctx, database, disabledReranker(), logger, "staff-1", "", 10)
	require.NoError(t, err)

	assert.Empty(t, result.Results)
	assert.Equal(t, match.FallbackNoCandidates, result.Meta.FallbackReason)
	assert.Equal(t, "deterministic", result.Engine)
}
