package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/juliagrant/careshift/pkg/core/match"
	"github.com/juliagrant/careshift/pkg/core/model"
)

type fakeRanker struct {
	response string
	err      error
}

func (f *fakeRanker) GenerateRanking(_ context.Context, _, _ string) (string, error) {
	return f.response, f.err
}

func disabledReranker() *match.Reranker {
	return match.NewReranker(match.RerankConfig{Enabled: false}, nil, zap.NewNop())
}

func enabledReranker(client match.RankingClient) *match.Reranker {
	return match.NewReranker(match.RerankConfig{
		Enabled:  true,
		Provider: "firebase_gemini",
		Model:    "gemini-2.5-flash",
		APIKey:   "test-key",
		Timeout:  time.Second,
	}, client, zap.NewNop())
}

func allDayAvailability() []model.AvailabilitySlot {
	slots := make([]model.AvailabilitySlot, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		slots = append(slots, model.AvailabilitySlot{
			Weekday: day, StartMinute: 0, EndMinute: 24 * 60, Active: true,
		})
	}
	return slots
}

func recommendStaffDatabase() *mockDatabase {
	return &mockDatabase{
		jobs: []model.JobPosting{
			{
				ID:             "job-1",
				HospitalID:     "hosp-1",
				HospitalName:   "St Mary's",
				DepartmentName: "ICU",
				ProfessionID:   "nurse",
				ProfessionName: "Nurse",
				Status:         model.JobStatusOpen,
				Window:         shiftAt("2025-06-02 09:00", "2025-06-02 17:00"),
			},
		},
		staff: []model.StaffProfile{
			{ID: "s1", FullName: "Priya Shah", ProfessionID: "nurse", Status: model.StaffStatusActive,
				RatingAvg: 4.8, Availability: allDayAvailability()},
			{ID: "s2", FullName: "Tomas Novak", ProfessionID: "nurse", Status: model.StaffStatusActive,
				RatingAvg: 3.9},
			{ID: "s3", FullName: "Retired", ProfessionID: "nurse", Status: "INACTIVE"},
		},
		staffHistory: map[string]int{"s1": 4, "s2": 1},
	}
}

func TestRecommendStaffForJob_DeterministicWhenDisabled(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	database := recommendStaffDatabase()

	result, err := RecommendStaffForJob(ctx, database, disabledReranker(), logger, "job-1", 10)
	require.NoError(t, err)

	assert.Equal(t, "deterministic", result.Engine)
	assert.False(t, result.Meta.Applied)
	assert.Equal(t, match.FallbackDisabled, result.Meta.FallbackReason)

	// Inactive staff never enter the pool
	require.Len(t, result.Results, 2)
	assert.Equal(t, "s1", result.Results[0].ID)
	assert.Equal(t, "s2", result.Results[1].ID)

	// Fallback results carry baseline AI annotations
	for _, c := range result.Results {
		assert.Equal(t, c.Match, c.AIScore)
		assert.NotEmpty(t, c.AIReasonShort)
	}

	// Baseline mirrors the deterministic order
	require.Len(t, result.Baseline, 2)
	assert.Equal(t, "s1", result.Baseline[0].ID)
	assert.GreaterOrEqual(t, result.Baseline[0].Match, result.Baseline[1].Match)
}

func TestRecommendStaffForJob_HybridWhenReranked(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	database := recommendStaffDatabase()

	client := &fakeRanker{response: `{
		"ranked": [
			{"id": "s2", "ai_score": 97, "reason_short": "Closest fit for the unit.", "confidence": "HIGH"},
			{"id": "s1", "ai_score": 80, "reason_short": "Strong but less recent.", "confidence": "MEDIUM"}
		]
	}`}

	result, err := RecommendStaffForJob(ctx, database, enabledReranker(client), logger, "job-1", 10)
	require.NoError(t, err)

	assert.Equal(t, "hybrid_ai", result.Engine)
	assert.True(t, result.Meta.Applied)

	require.Len(t, result.Results, 2)
	assert.Equal(t, "s2", result.Results[0].ID)
	assert.Equal(t, 97, result.Results[0].AIScore)

	// Baseline keeps the deterministic order regardless of AI reordering
	assert.Equal(t, "s1", result.Baseline[0].ID)
}

func TestRecommendStaffForJob_FallsBackOnCallFailure(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	database := recommendStaffDatabase()

	client := &fakeRanker{err: assert.AnError}

	result, err := RecommendStaffForJob(ctx, database, enabledReranker(client), logger, "job-1", 10)
	require.NoError(t, err)

	assert.Equal(t, "deterministic", result.Engine)
	assert.False(t, result.Meta.Applied)
	assert.Contains(t, result.Meta.FallbackReason, "ai_call_failed:")
	assert.Equal(t, "s1", result.Results[0].ID)
}

func TestRecommendStaffForJob_LimitMustBePositive(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	_, err := RecommendStaffForJob(ctx, recommendStaffDatabase(), disabledReranker(), logger, "job-1", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit must be greater than 0")
}

func TestRecommendStaffForJob_UnknownJob(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	_, err := RecommendStaffForJob(ctx, recommendStaffDatabase(), disabledReranker(), logger, "missing", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch job")
}

func TestRecommendStaffForJob_ReasonsDistinct(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	// Identical twins produce identical factor breakdowns
	database := recommendStaffDatabase()
	database.staff = []model.StaffProfile{
		{ID: "s1", FullName: "Twin A", ProfessionID: "nurse", Status: model.StaffStatusActive, RatingAvg: 4.0},
		{ID: "s2", FullName: "Twin B", ProfessionID: "nurse", Status: model.StaffStatusActive, RatingAvg: 4.0},
	}
	database.staffHistory = nil

	result, err := RecommendStaffForJob(ctx, database, disabledReranker(), logger, "job-1", 10)
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	assert.NotEqual(t,
		result.Results[0].AIReasonShort,
		result.Results[1].AIReasonShort)
}
