package groqclient

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

const allocationSystemMessage = `You are an AI assistant specialized in hospital staff allocation.
Your role is to analyze staff capabilities and shift requirements to provide optimal allocation recommendations.
Always consider:
1. Staff skill levels and certifications
2. Shift requirements and priorities
3. Work-life balance and staff preferences
4. Department-specific needs
5. Cost optimization

Respond in JSON format with specific recommendations.`

const allocationPromptFormat = `Analyze the following hospital staffing situation and provide allocation recommendations:

STAFF DATA:
%s

SHIFT DATA:
%s

Please provide:
1. Recommended staff allocations for each shift
2. Confidence scores for each recommendation (0-1)
3. Reasoning for each allocation
4. Potential conflicts or issues
5. Alternative options if primary allocation fails

Format your response as JSON with the following structure:
{
    "recommendations": [
        {
            "shift_id": "string",
            "staff_allocations": [
                {
                    "staff_id": "string",
                    "confidence": 0.95,
                    "reasoning": "detailed explanation",
                    "role": "string"
                }
            ],
            "potential_issues": ["list of issues"],
            "alternatives": ["alternative options"]
        }
    ],
    "overall_analysis": "summary of the allocation strategy",
    "optimization_score": 0.85
}`

const constraintSystemMessage = `You are an AI constraint evaluator for hospital staff allocation.
Analyze the given allocation request and identify any constraint violations or potential issues.
Consider legal, safety, and operational constraints.`

const constraintPromptFormat = `Evaluate the following allocation request for constraint violations:

ALLOCATION REQUEST:
%s

Check for:
1. Maximum working hours violations
2. Skill level requirements
3. Department certifications
4. Staff availability conflicts
5. Minimum staffing requirements
6. Union rules and regulations

Provide a JSON response with:
{
    "is_valid": boolean,
    "violations": ["list of constraint violations"],
    "warnings": ["list of potential issues"],
    "suggestions": ["list of suggestions to resolve issues"],
    "severity_score": 0.75
}`

const optimizationSystemMessage = `You are an AI schedule optimizer for hospital operations.
Your goal is to improve the current schedule based on the specified optimization criteria.
Consider both efficiency and staff satisfaction.`

const optimizationPromptFormat = `Optimize the following hospital schedule based on these goals: %s

CURRENT SCHEDULE:
%s

Provide optimization recommendations in JSON format:
{
    "optimized_schedule": {
        "changes": [
            {
                "type": "reassignment|swap|add|remove",
                "details": "description of change",
                "impact": "expected impact",
                "priority": "high|medium|low"
            }
        ]
    },
    "performance_metrics": {
        "cost_reduction": "percentage",
        "efficiency_improvement": "percentage",
        "staff_satisfaction": "score 0-10"
    },
    "implementation_plan": ["step by step plan"],
    "risks": ["potential risks and mitigation strategies"]
}`

// AnalyzeStaffAllocation asks the model to propose staff pairings for the
// given shifts. Never fails: transport or parse trouble yields a degraded
// analysis with empty recommendations and the raw reply preserved.
func (c *Client) AnalyzeStaffAllocation(ctx context.Context, staffData, shiftData any) *AllocationAnalysis {
	prompt, err := formatPayloads(allocationPromptFormat, staffData, shiftData)
	if err != nil {
		c.logger.Warn("Failed to build allocation prompt", zap.Error(err))
		return degradedAnalysis(err.Error())
	}

	response, err := c.GenerateResponse(ctx, prompt, allocationSystemMessage)
	if err != nil {
		c.logger.Warn("Advisory allocation request failed", zap.Error(err))
		return degradedAnalysis(err.Error())
	}

	var analysis AllocationAnalysis
	if err := json.Unmarshal([]byte(response), &analysis); err != nil {
		c.logger.Warn("Advisory allocation reply was not valid JSON", zap.Error(err))
		return degradedAnalysis(response)
	}
	if analysis.Recommendations == nil {
		analysis.Recommendations = []AllocationRecommendation{}
	}

	return &analysis
}

// EvaluateAllocationConstraints asks the model for a second opinion on a
// constraint verdict. Never fails: degraded evaluations report invalid with
// a manual-review suggestion.
func (c *Client) EvaluateAllocationConstraints(ctx context.Context, constraintData any) *ConstraintEvaluation {
	payload, err := json.MarshalIndent(constraintData, "", "  ")
	if err != nil {
		c.logger.Warn("Failed to marshal constraint payload", zap.Error(err))
		return degradedEvaluation()
	}

	response, err := c.GenerateResponse(ctx, fmt.Sprintf(constraintPromptFormat, payload), constraintSystemMessage)
	if err != nil {
		c.logger.Warn("Advisory constraint request failed", zap.Error(err))
		return degradedEvaluation()
	}

	var evaluation ConstraintEvaluation
	if err := json.Unmarshal([]byte(response), &evaluation); err != nil {
		c.logger.Warn("Advisory constraint reply was not valid JSON", zap.Error(err))
		return degradedEvaluation()
	}

	return &evaluation
}

// OptimizeSchedule asks the model to improve a schedule toward the given
// goals. Never fails: a degraded optimization carries an empty change list
// and a manual-optimization plan.
func (c *Client) OptimizeSchedule(ctx context.Context, currentSchedule any, goals []string) *ScheduleOptimization {
	payload, err := json.MarshalIndent(currentSchedule, "", "  ")
	if err != nil {
		c.logger.Warn("Failed to marshal schedule payload", zap.Error(err))
		return degradedOptimization()
	}

	goalList := ""
	for i, goal := range goals {
		if i > 0 {
			goalList += ", "
		}
		goalList += goal
	}

	response, err := c.GenerateResponse(ctx, fmt.Sprintf(optimizationPromptFormat, goalList, payload), optimizationSystemMessage)
	if err != nil {
		c.logger.Warn("Advisory optimization request failed", zap.Error(err))
		return degradedOptimization()
	}

	var optimization ScheduleOptimization
	if err := json.Unmarshal([]byte(response), &optimization); err != nil {
		c.logger.Warn("Advisory optimization reply was not valid JSON", zap.Error(err))
		return degradedOptimization()
	}
	if optimization.OptimizedSchedule.Changes == nil {
		optimization.OptimizedSchedule.Changes = []ScheduleChange{}
	}

	return &optimization
}

func formatPayloads(format string, first, second any) (string, error) {
	firstJSON, err := json.MarshalIndent(first, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal prompt payload: %w", err)
	}
	secondJSON, err := json.MarshalIndent(second, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal prompt payload: %w", err)
	}
	return fmt.Sprintf(format, firstJSON, secondJSON), nil
}

func degradedAnalysis(raw string) *AllocationAnalysis {
	return &AllocationAnalysis{
		Recommendations:   []AllocationRecommendation{},
		OverallAnalysis:   raw,
		OptimizationScore: 0.0,
		Error:             "Failed to parse JSON response",
	}
}

func degradedEvaluation() *ConstraintEvaluation {
	return &ConstraintEvaluation{
		IsValid:       false,
		Violations:    []string{"Failed to evaluate constraints"},
		Warnings:      []string{},
		Suggestions:   []string{"Manual review required"},
		SeverityScore: 1.0,
		Error:         "Failed to parse constraint evaluation",
	}
}

func degradedOptimization() *ScheduleOptimization {
	return &ScheduleOptimization{
		OptimizedSchedule:  OptimizedSchedule{Changes: []ScheduleChange{}},
		PerformanceMetrics: map[string]any{},
		ImplementationPlan: []string{"Manual optimization required"},
		Risks:              []string{"Failed to generate optimization plan"},
		Error:              "Failed to parse optimization response",
	}
}
