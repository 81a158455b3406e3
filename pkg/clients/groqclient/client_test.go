package groqclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestClient wires a client against a stub chat-completion server that
// replies with the given content string.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client(), nil, zap.NewNop())
}

// completionHandler returns the given content as the single choice of a chat
// completion, after checking the request shape.
func completionHandler(t *testing.T, content string) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path, "should call the chat completions endpoint")
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"), "should send the API key as a bearer token")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"), "should post JSON")

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req), "request body should be a chat completion request")
		assert.Equal(t, "llama3-8b-8192", req.Model, "should default to the llama3 model")
		assert.NotEmpty(t, req.Messages, "should send at least one message")

		reply := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(reply))
	}
}

func TestGenerateResponseReturnsModelReply(t *testing.T) {
	client := newTestClient(t, completionHandler(t, "scheduled reply"))

	reply, err := client.GenerateResponse(context.Background(), "prompt", "system")

	require.NoError(t, err)
	assert.Equal(t, "scheduled reply", reply, "should return the first choice content")
}

func TestGenerateResponseOmitsEmptySystemTurn(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1, "empty system message should be dropped")
		assert.Equal(t, "user", req.Messages[0].Role)

		reply := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "ok"}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(reply))
	})

	_, err := client.GenerateResponse(context.Background(), "prompt", "")

	require.NoError(t, err)
}

func TestGenerateResponseErrorsOnHTTPFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.GenerateResponse(context.Background(), "prompt", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429", "error should carry the status code")
}

func TestGenerateResponseErrorsOnEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"choices": []any{}}))
	})

	_, err := client.GenerateResponse(context.Background(), "prompt", "")

	require.Error(t, err)
}

func TestAnalyzeStaffAllocationParsesRecommendations(t *testing.T) {
	reply := `{
		"recommendations": [
			{
				"shift_id": "shift_001",
				"staff_allocations": [
					{"staff_id": "staff_001", "confidence": 0.95, "reasoning": "strong skill match", "role": "doctor"},
					{"staff_id": "staff_002", "reasoning": "backup option"}
				],
				"potential_issues": ["capacity near limit"],
				"alternatives": ["staff_003"]
			}
		],
		"overall_analysis": "allocation looks feasible",
		"optimization_score": 0.85
	}`
	client := newTestClient(t, completionHandler(t, reply))

	analysis := client.AnalyzeStaffAllocation(context.Background(), map[string]string{"id": "staff_001"}, map[string]string{"id": "shift_001"})

	require.NotNil(t, analysis)
	assert.Empty(t, analysis.Error, "well-formed reply should not be flagged")
	assert.Equal(t, "allocation looks feasible", analysis.OverallAnalysis)
	assert.Equal(t, 0.85, analysis.OptimizationScore)
	require.Len(t, analysis.Recommendations, 1)

	rec := analysis.Recommendations[0]
	assert.Equal(t, "shift_001", rec.ShiftID)
	require.Len(t, rec.StaffAllocations, 2)
	require.NotNil(t, rec.StaffAllocations[0].Confidence, "explicit confidence should be kept")
	assert.Equal(t, 0.95, *rec.StaffAllocations[0].Confidence)
	assert.Nil(t, rec.StaffAllocations[1].Confidence, "missing confidence should stay unset, not zero")
}

func TestAnalyzeStaffAllocationDegradesOnProseReply(t *testing.T) {
	client := newTestClient(t, completionHandler(t, "I think staff_001 fits best."))

	analysis := client.AnalyzeStaffAllocation(context.Background(), nil, nil)

	require.NotNil(t, analysis)
	assert.Equal(t, "Failed to parse JSON response", analysis.Error)
	assert.Equal(t, "I think staff_001 fits best.", analysis.OverallAnalysis, "raw reply should be preserved for inspection")
	assert.NotNil(t, analysis.Recommendations)
	assert.Empty(t, analysis.Recommendations)
	assert.Zero(t, analysis.OptimizationScore)
}

func TestAnalyzeStaffAllocationDegradesOnTransportFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	analysis := client.AnalyzeStaffAllocation(context.Background(), nil, nil)

	require.NotNil(t, analysis)
	assert.Equal(t, "Failed to parse JSON response", analysis.Error)
	assert.Empty(t, analysis.Recommendations)
}

func TestEvaluateAllocationConstraintsParsesVerdict(t *testing.T) {
	reply := `{
		"is_valid": false,
		"violations": ["weekly hours exceeded"],
		"warnings": ["tight turnaround"],
		"suggestions": ["move to a later shift"],
		"severity_score": 0.75
	}`
	client := newTestClient(t, completionHandler(t, reply))

	evaluation := client.EvaluateAllocationConstraints(context.Background(), map[string]string{"staff_id": "staff_001"})

	require.NotNil(t, evaluation)
	assert.False(t, evaluation.IsValid)
	assert.Equal(t, []string{"weekly hours exceeded"}, evaluation.Violations)
	assert.Equal(t, 0.75, evaluation.SeverityScore)
	assert.Empty(t, evaluation.Error)
}

func TestEvaluateAllocationConstraintsDegradesOnFailure(t *testing.T) {
	client := newTestClient(t, completionHandler(t, "not json"))

	evaluation := client.EvaluateAllocationConstraints(context.Background(), nil)

	require.NotNil(t, evaluation)
	assert.False(t, evaluation.IsValid)
	assert.Equal(t, []string{"Failed to evaluate constraints"}, evaluation.Violations)
	assert.Equal(t, []string{"Manual review required"}, evaluation.Suggestions)
	assert.Equal(t, 1.0, evaluation.SeverityScore)
	assert.Equal(t, "Failed to parse constraint evaluation", evaluation.Error)
}

func TestOptimizeScheduleParsesChanges(t *testing.T) {
	reply := `{
		"optimized_schedule": {
			"changes": [
				{"type": "reassignment", "details": "move staff_002 to night shift", "impact": "cost drops", "priority": "high"}
			]
		},
		"performance_metrics": {"cost_reduction": "12%"},
		"implementation_plan": ["review", "apply"],
		"risks": ["staff pushback"]
	}`
	client := newTestClient(t, completionHandler(t, reply))

	optimization := client.OptimizeSchedule(context.Background(), map[string]any{"shifts": 3}, []string{"minimize_cost"})

	require.NotNil(t, optimization)
	assert.Empty(t, optimization.Error)
	require.Len(t, optimization.OptimizedSchedule.Changes, 1)
	assert.Equal(t, "reassignment", optimization.OptimizedSchedule.Changes[0].Type)
	assert.Equal(t, []string{"review", "apply"}, optimization.ImplementationPlan)
}

func TestOptimizeScheduleDegradesOnFailure(t *testing.T) {
	client := newTestClient(t, completionHandler(t, "cannot help with that"))

	optimization := client.OptimizeSchedule(context.Background(), nil, []string{"maximize_quality"})

	require.NotNil(t, optimization)
	assert.NotNil(t, optimization.OptimizedSchedule.Changes)
	assert.Empty(t, optimization.OptimizedSchedule.Changes)
	assert.Equal(t, []string{"Manual optimization required"}, optimization.ImplementationPlan)
	assert.Equal(t, []string{"Failed to generate optimization plan"}, optimization.Risks)
	assert.Equal(t, "Failed to parse optimization response", optimization.Error)
}
