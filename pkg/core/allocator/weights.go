package allocator

// Built-in weights for the staff-to-shift allocation score
const (
	// WeightSkillMatch is the weight of the skill component. Only staff who
	// meet the shift's minimum skill level earn it; the component scales
	// with skill_level/10.
	WeightSkillMatch = 0.30

	// WeightDepartmentMatch is the flat bonus for staff assigned within
	// their own department.
	WeightDepartmentMatch = 0.25

	// WeightShiftPreference is the flat bonus when the shift's type appears
	// in the staff member's preferred shifts.
	WeightShiftPreference = 0.20

	// WeightExperience is the weight of the experience component, which
	// scales with experience_years/15 and is always earned.
	WeightExperience = 0.15

	// WeightAvailability is the flat bonus for staff not marked unavailable
	// on the shift date.
	WeightAvailability = 0.10
)

// Weights for the quality score used by quality-driven optimization
const (
	QualityWeightSkill      = 0.4
	QualityWeightExperience = 0.3
	QualityWeightDepartment = 0.2
	QualityWeightPriority   = 0.1
)

// Weights for the preference score used by satisfaction-driven optimization
const (
	PreferenceWeightShiftType  = 0.4
	PreferenceWeightDepartment = 0.3

	// PreferenceWeightSkillFit rewards staff whose skill level sits at or
	// just above the shift's minimum. Overqualified staff (more than two
	// levels above) earn the reduced weight instead.
	PreferenceWeightSkillFit      = 0.3
	PreferenceWeightOverqualified = 0.1
)

// Normalization caps: skill levels run 1-10 and experience tops out at 15
// years for scoring purposes.
const (
	skillLevelCap      = 10.0
	experienceYearsCap = 15.0
)

// Recommendation thresholds on the 0-1 score scale
const (
	recommendHighAbove   = 0.8
	recommendMediumAbove = 0.6
)
