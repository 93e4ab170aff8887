package match

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fallback reason codes recorded in Meta when re-ranking does not take effect
const (
	FallbackNoCandidates   = "no_candidates"
	FallbackDisabled       = "disabled"
	FallbackMissingAPIKey  = "api_key_missing"
	FallbackInvalidPayload = "invalid_ai_payload"
	FallbackEmptyRankings  = "empty_ai_rankings"
)

// Default budgets for the external call
const (
	DefaultRerankTimeout = 8 * time.Second
	DefaultMaxRetries    = 1
)

// RerankConfig configures the external re-ranking pass. All values are
// explicit; nothing is read from the environment here.
type RerankConfig struct {
	Enabled    bool
	Provider   string
	Model      string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// Meta describes whether and why external re-ranking did or did not take
// effect for one ranking request.
type Meta struct {
	Enabled        bool   `json:"enabled"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	Applied        bool   `json:"applied"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// RequestContext is the context object sent alongside the candidate
// summaries so the external service can reason about the request.
type RequestContext struct {
	StaffID         string `json:"staff_id,omitempty"`
	StaffProfession string `json:"staff_profession,omitempty"`
	HospitalID      string `json:"hospital_id,omitempty"`
	JobID           string `json:"job_id,omitempty"`
	Department      string `json:"department,omitempty"`
	Profession      string `json:"profession,omitempty"`
	ShiftStart      string `json:"shift_start,omitempty"`
	ShiftEnd        string `json:"shift_end,omitempty"`
	Limit           int    `json:"limit"`
}

// RankingClient sends one structured ranking prompt to the external
// reasoning service and returns the raw response text.
type RankingClient interface {
	GenerateRanking(ctx context.Context, model, prompt string) (string, error)
}

// Reranker optionally asks an external reasoning service to re-score the
// deterministic top-N. Every failure mode degrades to the deterministic
// input; callers always get a usable list back.
type Reranker struct {
	cfg    RerankConfig
	client RankingClient
	logger *zap.Logger
}

// NewReranker creates a Reranker, flooring the timeout and retry budget at
// their sane minimums (1s, 0).
func NewReranker(cfg RerankConfig, client RankingClient, logger *zap.Logger) *Reranker {
	if cfg.Timeout < time.Second {
		cfg.Timeout = DefaultRerankTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Reranker{cfg: cfg, client: client, logger: logger}
}

// Apply re-scores the deterministic candidates through the external
// service and merges the result. On any failure the input order and scores
// come back unchanged apart from baseline AI annotations, with
// Meta.Applied false and a fallback reason.
func (r *Reranker) Apply(ctx context.Context, direction Direction, candidates []Candidate, reqCtx RequestContext) ([]Candidate, Meta) {
	meta := Meta{
		Enabled:  r.cfg.Enabled,
		Provider: r.cfg.Provider,
		Model:    r.cfg.Model,
	}

	if len(candidates) == 0 {
		meta.FallbackReason = FallbackNoCandidates
		return candidates, meta
	}
	if !r.cfg.Enabled {
		meta.FallbackReason = FallbackDisabled
		return annotateBaseline(candidates), meta
	}
	if r.cfg.APIKey == "" {
		meta.FallbackReason = FallbackMissingAPIKey
		return annotateBaseline(candidates), meta
	}

	prompt := buildPrompt(direction, reqCtx, candidates)

	raw, err := r.callWithRetries(ctx, prompt)
	if err != nil {
		r.logger.Warn("external re-ranking call failed, using deterministic ranking",
			zap.String("model", r.cfg.Model),
			zap.Error(err))
		meta.FallbackReason = fmt.Sprintf("ai_call_failed:%s", err.Error())
		return annotateBaseline(candidates), meta
	}

	adjustments, ok := parseRankedResponse(raw)
	if !ok {
		meta.FallbackReason = FallbackInvalidPayload
		return annotateBaseline(candidates), meta
	}
	if len(adjustments) == 0 {
		meta.FallbackReason = FallbackEmptyRankings
		return annotateBaseline(candidates), meta
	}

	merged := mergeAdjustments(candidates, adjustments)
	meta.Applied = true
	return merged, meta
}

// callWithRetries runs the external call under a per-attempt deadline with
// a bounded retry count. A cancelled parent context stops retrying early.
func (r *Reranker) callWithRetries(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
		raw, err := r.client.GenerateRanking(attemptCtx, r.cfg.Model, prompt)
		cancel()
		if err == nil {
			return raw, nil
		}
		lastErr = err
		r.logger.Debug("re-ranking attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return "", lastErr
}

// adjustment is one normalized per-candidate result from the external service
type adjustment struct {
	score      int
	reason     string
	details    []string
	confidence Confidence
}

func buildPrompt(direction Direction, reqCtx RequestContext, candidates []Candidate) string {
	type promptCandidate struct {
		ID              string         `json:"id"`
		Name            string         `json:"name"`
		Role            string         `json:"role"`
		Department      string         `json:"department,omitempty"`
		BaseMatch       int            `json:"base_match"`
		Rating          float64        `json:"rating,omitempty"`
		CompletedShifts int            `json:"completed_shifts,omitempty"`
		Tags            map[string]int `json:"tags"`
	}

	safeCandidates := make([]promptCandidate, 0, len(candidates))
	for _, c := range candidates {
		tags := make(map[string]int, 4)
		for _, tag := range c.Factors.Tags(direction) {
			tags[tag.Key] = tag.Value
		}
		safeCandidates = append(safeCandidates, promptCandidate{
			ID:              c.ID,
			Name:            c.Name,
			Role:            c.Role,
			Department:      c.Department,
			BaseMatch:       c.Match,
			Rating:          c.Rating,
			CompletedShifts: c.CompletedShifts,
			Tags:            tags,
		})
	}

	contextJSON, _ := json.Marshal(reqCtx)
	candidatesJSON, _ := json.Marshal(safeCandidates)

	objective := "Recommend top staff for a hospital shift"
	if direction == JobsForStaff {
		objective = "Recommend top hospitals for a staff member"
	}

	var b strings.Builder
	b.WriteString("You are a healthcare staffing recommendation assistant.\n")
	fmt.Fprintf(&b, "Objective: %s.\n", objective)
	b.WriteString("Use only the provided context and candidates. Do not invent facts.\n")
	b.WriteString("Return strict JSON with this shape:\n")
	b.WriteString("{\n")
	b.WriteString("  \"ranked\": [\n")
	b.WriteString("    {\n")
	b.WriteString("      \"id\": \"<candidate id>\",\n")
	b.WriteString("      \"ai_score\": <0-100 number>,\n")
	b.WriteString("      \"reason_short\": \"<max 120 chars>\",\n")
	b.WriteString("      \"reason_details\": [\"<factor 1>\", \"<factor 2>\", \"<factor 3>\"],\n")
	b.WriteString("      \"confidence\": \"LOW|MEDIUM|HIGH\"\n")
	b.WriteString("    }\n")
	b.WriteString("  ]\n")
	b.WriteString("}\n")
	b.WriteString("Ranking rules: prioritize skill/profession fit, availability fit, shift history, reliability/rating.\n")
	fmt.Fprintf(&b, "Context: %s\n", contextJSON)
	fmt.Fprintf(&b, "Candidates: %s\n", candidatesJSON)
	return b.String()
}

// parseRankedResponse validates the external response text. Returns false
// when the payload is not the expected JSON shape; an empty-but-valid
// ranked list returns an empty map.
func parseRankedResponse(raw string) (map[string]adjustment, bool) {
	cleaned := stripCodeFence(raw)
	if cleaned == "" {
		return nil, false
	}

	var payload struct {
		Ranked []struct {
			ID            flexID   `json:"id"`
			AIScore       float64  `json:"ai_score"`
			ReasonShort   string   `json:"reason_short"`
			ReasonDetails []string `json:"reason_details"`
			Confidence    string   `json:"confidence"`
		} `json:"ranked"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, false
	}
	if payload.Ranked == nil {
		return nil, false
	}

	adjustments := make(map[string]adjustment, len(payload.Ranked))
	for _, item := range payload.Ranked {
		id := strings.TrimSpace(string(item.ID))
		if id == "" {
			continue
		}
		adjustments[id] = adjustment{
			score:      clampScore(item.AIScore),
			reason:     truncate(strings.TrimSpace(item.ReasonShort), 140),
			details:    normalizeDetails(item.ReasonDetails),
			confidence: normalizeConfidence(item.Confidence),
		}
	}
	return adjustments, true
}

// mergeAdjustments applies the external scores by candidate id. Candidates
// the service skipped keep their deterministic score, get a synthesized
// reason and LOW confidence. Final order is adjusted score descending with
// deterministic rank breaking ties.
func mergeAdjustments(candidates []Candidate, adjustments map[string]adjustment) []Candidate {
	merged := make([]Candidate, len(candidates))
	copy(merged, candidates)

	for i := range merged {
		if adj, ok := adjustments[merged[i].ID]; ok {
			merged[i].AIScore = adj.score
			merged[i].AIReasonShort = adj.reason
			if merged[i].AIReasonShort == "" {
				merged[i].AIReasonShort = SynthesizeReason(merged[i].Factors)
			}
			merged[i].AIReasonDetails = adj.details
			merged[i].AIConfidence = adj.confidence
		} else {
			merged[i].AIScore = merged[i].Match
			merged[i].AIReasonShort = SynthesizeReason(merged[i].Factors)
			merged[i].AIReasonDetails = nil
			merged[i].AIConfidence = ConfidenceLow
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].AIScore != merged[j].AIScore {
			return merged[i].AIScore > merged[j].AIScore
		}
		return false
	})
	return merged
}

// annotateBaseline fills the AI fields from the deterministic result so a
// fallback response still carries explanations.
func annotateBaseline(candidates []Candidate) []Candidate {
	annotated := make([]Candidate, len(candidates))
	copy(annotated, candidates)
	for i := range annotated {
		annotated[i].AIScore = annotated[i].Match
		annotated[i].AIReasonShort = SynthesizeReason(annotated[i].Factors)
		annotated[i].AIReasonDetails = nil
		annotated[i].AIConfidence = ConfidenceLow
	}
	return annotated
}

// flexID accepts both string and numeric ids from the external service
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*f = flexID(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*f = flexID(asNumber.String())
		return nil
	}
	*f = ""
	return nil
}

// stripCodeFence removes a surrounding markdown code fence, which some
// models emit despite being asked for raw JSON
func stripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.Trim(cleaned, "`")
		cleaned = strings.TrimSpace(strings.Replace(cleaned, "json", "", 1))
	}
	return cleaned
}

func clampScore(v float64) int {
	score := roundInt(v)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func normalizeDetails(details []string) []string {
	var normalized []string
	for _, d := range details {
		if len(normalized) == 4 {
			break
		}
		text := strings.TrimSpace(d)
		if text != "" {
			normalized = append(normalized, truncate(text, 180))
		}
	}
	return normalized
}

func normalizeConfidence(v string) Confidence {
	switch Confidence(strings.ToUpper(strings.TrimSpace(v))) {
	case ConfidenceLow:
		return ConfidenceLow
	case ConfidenceHigh:
		return ConfidenceHigh
	default:
		return ConfidenceMedium
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
