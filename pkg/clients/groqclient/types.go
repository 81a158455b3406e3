package groqclient

// StaffAllocationProposal is one staff pairing inside a recommendation.
// Confidence is a pointer so a missing field can fall back to the caller's
// default without clobbering a genuine 0.
type StaffAllocationProposal struct {
	StaffID    string   `json:"staff_id"`
	Confidence *float64 `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
	Role       string   `json:"role,omitempty"`
}

// AllocationRecommendation groups the proposed pairings for one shift
type AllocationRecommendation struct {
	ShiftID          string                    `json:"shift_id"`
	StaffAllocations []StaffAllocationProposal `json:"staff_allocations"`
	PotentialIssues  []string                  `json:"potential_issues"`
	Alternatives     []string                  `json:"alternatives"`
}

// AllocationAnalysis is the model's answer to an allocation request.
// A degraded response carries the raw reply in OverallAnalysis and a
// non-empty Error marker.
type AllocationAnalysis struct {
	Recommendations   []AllocationRecommendation `json:"recommendations"`
	OverallAnalysis   string                     `json:"overall_analysis"`
	OptimizationScore float64                    `json:"optimization_score"`
	Error             string                     `json:"error,omitempty"`
}

// ConstraintEvaluation is the model's second opinion on a validation outcome
type ConstraintEvaluation struct {
	IsValid       bool     `json:"is_valid"`
	Violations    []string `json:"violations"`
	Warnings      []string `json:"warnings"`
	Suggestions   []string `json:"suggestions"`
	SeverityScore float64  `json:"severity_score"`
	Error         string   `json:"error,omitempty"`
}

// ScheduleChange is one proposed schedule edit
type ScheduleChange struct {
	Type     string `json:"type"`
	Details  string `json:"details"`
	Impact   string `json:"impact"`
	Priority string `json:"priority"`
}

// OptimizedSchedule wraps the change list
type OptimizedSchedule struct {
	Changes []ScheduleChange `json:"changes"`
}

// ScheduleOptimization is the model's answer to a schedule optimization request
type ScheduleOptimization struct {
	OptimizedSchedule  OptimizedSchedule `json:"optimized_schedule"`
	PerformanceMetrics map[string]any    `json:"performance_metrics"`
	ImplementationPlan []string          `json:"implementation_plan"`
	Risks              []string          `json:"risks"`
	Error              string            `json:"error,omitempty"`
}
