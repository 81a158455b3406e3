// Package rules implements the deterministic constraint engine that decides
// whether a staff-to-shift allocation is legal. Eight independent rules are
// evaluated in a fixed order; each reports a finding with a fixed severity.
// The engine is pure: it computes over a materialized Snapshot and never
// touches storage or the network.
package rules

import "github.com/arivanan0218/hospital-staff-allocation-ai/pkg/core/model"

// Severity classifies how strongly a rule finding counts against an allocation
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Finding is the outcome of checking one rule against one allocation
type Finding struct {
	Violated bool
	Message  string
	Details  map[string]any
}

// Rule checks one constraint against a candidate allocation.
// Check returns an error only for internal faults (bad stored data);
// the engine degrades a faulted rule to a warning instead of failing
// the whole validation.
type Rule interface {
	Name() string
	Severity() Severity
	Check(snap *Snapshot) (Finding, error)
}

// JoinedAllocation is a stored allocation joined to its shift and staff
// records. Either side may be nil when the reference dangles.
type JoinedAllocation struct {
	Allocation model.AllocationRecord
	Shift      *model.Shift
	Staff      *model.StaffMember
}

// Snapshot is the materialized slice of world state the rules need to judge
// one candidate allocation. Callers assemble it from storage before
// evaluation so the rules themselves stay deterministic.
type Snapshot struct {
	Allocation *model.AllocationRecord
	Staff      *model.StaffMember
	Shift      *model.Shift

	// StaffAllocations are all stored allocations for the staff member,
	// including the candidate itself if it has already been persisted.
	StaffAllocations []JoinedAllocation

	// ShiftAllocations are all stored allocations for the shift,
	// regardless of status.
	ShiftAllocations []JoinedAllocation
}
