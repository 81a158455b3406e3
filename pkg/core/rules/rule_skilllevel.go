package rules

import "fmt"

// SkillLevelRule requires the staff member to meet the shift's minimum skill level
type SkillLevelRule struct{}

// NewSkillLevelRule creates a new SkillLevelRule
func NewSkillLevelRule() *SkillLevelRule {
	return &SkillLevelRule{}
}

func (r *SkillLevelRule) Name() string {
	return "skill_level_requirement"
}

func (r *SkillLevelRule) Severity() Severity {
	return SeverityCritical
}

func (r *SkillLevelRule) Check(snap *Snapshot) (Finding, error) {
	violated := snap.Staff.SkillLevel < snap.Shift.MinimumSkillLevel

	message := "Skill level requirement met"
	if violated {
		message = fmt.Sprintf("Staff skill level (%d) below required (%d)", snap.Staff.SkillLevel, snap.Shift.MinimumSkillLevel)
	}

	return Finding{
		Violated: violated,
		Message:  message,
		Details: map[string]any{
			"staff_skill_level":    snap.Staff.SkillLevel,
			"required_skill_level": snap.Shift.MinimumSkillLevel,
		},
	}, nil
}
