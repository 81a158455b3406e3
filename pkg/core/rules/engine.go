package rules

import "fmt"

// ConstraintDetail records the outcome of one rule for one allocation
type ConstraintDetail struct {
	Violated bool           `json:"violated"`
	Message  string         `json:"message"`
	Severity Severity       `json:"severity"`
	Details  map[string]any `json:"details"`
}

// ValidationResult is the aggregated verdict for one allocation. Critical
// findings populate Violations and decide validity; high findings populate
// Warnings; everything else lands in Suggestions.
type ValidationResult struct {
	IsValid           bool                        `json:"is_valid"`
	Violations        []string                    `json:"violations"`
	Warnings          []string                    `json:"warnings"`
	Suggestions       []string                    `json:"suggestions"`
	SeverityScore     float64                     `json:"severity_score"`
	ConstraintDetails map[string]ConstraintDetail `json:"constraint_details"`

	// AdvisoryAnalysis carries the language-model opinion attached after
	// evaluation when findings exist. Advisory only: it never changes
	// IsValid or SeverityScore.
	AdvisoryAnalysis any `json:"llm_analysis,omitempty"`
}

// ViolatedRuleCount returns how many rules reported a violation of any severity
func (r *ValidationResult) ViolatedRuleCount() int {
	count := 0
	for _, detail := range r.ConstraintDetails {
		if detail.Violated {
			count++
		}
	}
	return count
}

// Engine evaluates a fixed ordered list of rules against allocation snapshots
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over the given rules. Evaluation order and
// severity scoring follow the order and count of the rules passed in.
func NewEngine(ruleList ...Rule) *Engine {
	return &Engine{rules: ruleList}
}

// DefaultRules returns the eight hospital constraint rules in their
// canonical evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		NewMaxWeeklyHoursRule(),
		NewSkillLevelRule(),
		NewDepartmentMatchRule(),
		NewAvailabilityRule(),
		NewRestPeriodRule(),
		NewCertificationsRule(),
		NewShiftCapacityRule(),
		NewRoleRequirementsRule(),
	}
}

// DefaultEngine creates an engine with the canonical rule set
func DefaultEngine() *Engine {
	return NewEngine(DefaultRules()...)
}

// RuleNames returns the names of all rules in evaluation order
func (e *Engine) RuleNames() []string {
	names := make([]string, len(e.rules))
	for i, rule := range e.rules {
		names[i] = rule.Name()
	}
	return names
}

// Evaluate runs every rule against the snapshot and aggregates the findings.
// A rule that faults internally degrades to a warning so one bad record
// cannot take down the whole validation.
func (e *Engine) Evaluate(snap *Snapshot) *ValidationResult {
	result := &ValidationResult{
		IsValid:           true,
		Violations:        []string{},
		Warnings:          []string{},
		Suggestions:       []string{},
		ConstraintDetails: make(map[string]ConstraintDetail),
	}

	criticalViolations := 0
	for _, rule := range e.rules {
		finding, err := rule.Check(snap)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Error checking %s: %s", rule.Name(), err.Error()))
			continue
		}

		if finding.Violated {
			switch rule.Severity() {
			case SeverityCritical:
				criticalViolations++
				result.Violations = append(result.Violations, finding.Message)
			case SeverityHigh:
				result.Warnings = append(result.Warnings, finding.Message)
			default:
				result.Suggestions = append(result.Suggestions, finding.Message)
			}
		}

		result.ConstraintDetails[rule.Name()] = ConstraintDetail{
			Violated: finding.Violated,
			Message:  finding.Message,
			Severity: rule.Severity(),
			Details:  finding.Details,
		}
	}

	result.IsValid = criticalViolations == 0
	result.SeverityScore = float64(criticalViolations) / float64(len(e.rules))

	return result
}

// MissingEntityResult is the fixed verdict for an allocation whose staff or
// shift reference dangles. No rules run; the reference failure is itself a
// maximum-severity violation.
func MissingEntityResult() *ValidationResult {
	return &ValidationResult{
		IsValid:           false,
		Violations:        []string{"Staff or shift not found"},
		Warnings:          []string{},
		Suggestions:       []string{},
		SeverityScore:     1.0,
		ConstraintDetails: make(map[string]ConstraintDetail),
	}
}
