// Package services orchestrates the allocation workflows end to end:
// candidate lookup, scoring, constraint validation, status assignment and
// persistence. Each service is a function taking a consumer-side store
// interface, so tests can run against the in-memory store or a mock.
//
// Services never let internal failures escape the orchestration boundary
// for batch operations: those return a well-formed result object with
// success=false instead.
package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/clients/groqclient"
)

// AdvisoryClient is the narrow view of the language-model collaborator the
// services consume. The structured methods are best-effort and degrade to
// explicit defaults instead of returning errors; only the free-form
// GenerateResponse can fail, and callers treat that as optional output.
type AdvisoryClient interface {
	AnalyzeStaffAllocation(ctx context.Context, staffData, shiftData any) *groqclient.AllocationAnalysis
	EvaluateAllocationConstraints(ctx context.Context, constraintData any) *groqclient.ConstraintEvaluation
	OptimizeSchedule(ctx context.Context, currentSchedule any, goals []string) *groqclient.ScheduleOptimization
	GenerateResponse(ctx context.Context, prompt, systemMessage string) (string, error)
}

// DateFormat is the calendar-date layout used across shifts and staff
// unavailability lists.
const DateFormat = "2006-01-02"

// parseDateRange splits a "YYYY-MM-DD" or "YYYY-MM-DD to YYYY-MM-DD" range
// into inclusive start and end dates. A single date covers that day only.
func parseDateRange(dateRange string) (start, end string) {
	if before, after, found := strings.Cut(dateRange, " to "); found {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	trimmed := strings.TrimSpace(dateRange)
	return trimmed, trimmed
}

// dateInRange reports whether a date falls inside an inclusive range.
// Dates are YYYY-MM-DD strings, so lexicographic comparison is calendar
// comparison.
func dateInRange(date, start, end string) bool {
	return start <= date && date <= end
}

func wrapStoreErr(operation string, err error) error {
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
