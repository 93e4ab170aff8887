package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/juliagrant/careshift/pkg/core/match"
	"github.com/juliagrant/careshift/pkg/db"
)

// RecommendationResult is the ordered outcome of one ranking request.
// Results carries the final (possibly AI-adjusted) order; Baseline always
// carries the deterministic order with synthesized explanations.
type RecommendationResult struct {
	Results  []match.Candidate
	Baseline []match.Candidate
	Meta     match.Meta
	// Engine is "hybrid_ai" when re-ranking took effect, else "deterministic"
	Engine string
}

// RecommendStaffForJob scores all active staff against one job posting,
// optionally re-ranks the top candidates through the external reasoning
// service and returns an ordered, explainable result.
func RecommendStaffForJob(ctx context.Context, database db.Database, reranker *match.Reranker, logger *zap.Logger, jobID string, limit int) (*RecommendationResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0, got %d", limit)
	}

	job, err := database.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}

	staff, err := database.GetActiveStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active staff: %w", err)
	}

	historyByStaff, err := database.CountByStaffForHospital(ctx, job.HospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment history: %w", err)
	}

	logger.Debug("scoring staff pool for job",
		zap.String("job_id", job.ID),
		zap.Int("pool_size", len(staff)),
		zap.Int("limit", limit))

	pool := make([]match.StaffCandidate, 0, len(staff))
	for _, s := range staff {
		pool = append(pool, match.StaffCandidate{
			ID:                 s.ID,
			Name:               s.FullName,
			ProfessionID:       s.ProfessionID,
			ProfessionName:     s.ProfessionName,
			RatingAvg:          s.RatingAvg,
			CompletedShifts:    s.CompletedShifts,
			Skills:             s.Skills,
			Availability:       s.Availability,
			HospitalShiftCount: historyByStaff[s.ID],
		})
	}

	top := match.ScoreStaffForJob(match.JobTarget{
		ProfessionID:   job.ProfessionID,
		Window:         job.Window,
		RequiredSkills: job.RequiredSkills,
	}, pool, limit)

	reqCtx := match.RequestContext{
		HospitalID: job.HospitalID,
		JobID:      job.ID,
		Department: job.DepartmentName,
		Profession: job.ProfessionName,
		ShiftStart: job.Window.Start.Format("2006-01-02T15:04:05Z07:00"),
		ShiftEnd:   job.Window.End.Format("2006-01-02T15:04:05Z07:00"),
		Limit:      limit,
	}

	return assembleRecommendation(ctx, reranker, logger, match.StaffForJob, top, reqCtx), nil
}

// assembleRecommendation runs re-ranking, builds the baseline view and
// deduplicates explanations on both lists.
func assembleRecommendation(ctx context.Context, reranker *match.Reranker, logger *zap.Logger, direction match.Direction, top []match.Candidate, reqCtx match.RequestContext) *RecommendationResult {
	final, meta := reranker.Apply(ctx, direction, top, reqCtx)

	baseline := make([]match.Candidate, len(top))
	copy(baseline, top)
	for i := range baseline {
		baseline[i].AIScore = baseline[i].Match
		baseline[i].AIReasonShort = match.SynthesizeReason(baseline[i].Factors)
		baseline[i].AIReasonDetails = nil
		baseline[i].AIConfidence = match.ConfidenceLow
	}

	match.DeduplicateReasons(final)
	match.DeduplicateReasons(baseline)

	engine := "deterministic"
	if meta.Applied {
		engine = "hybrid_ai"
	}

	logger.Info("recommendation assembled",
		zap.String("direction", string(direction)),
		zap.Int("results", len(final)),
		zap.Bool("ai_applied", meta.Applied),
		zap.String("fallback_reason", meta.FallbackReason))

	return &RecommendationResult{
		Results:  final,
		Baseline: baseline,
		Meta:     meta,
		Engine:   engine,
	}
}
