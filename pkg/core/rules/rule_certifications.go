package rules

import (
	"fmt"
	"strings"
)

// CertificationsRule checks special requirement tags of the form
// "<cert>_certified" against the staff member's certification level.
// The comparison is a case-insensitive substring match, so a shift
// tagged "ACLS_certified" accepts any staff whose certification level
// mentions "acls".
type CertificationsRule struct{}

// NewCertificationsRule creates a new CertificationsRule
func NewCertificationsRule() *CertificationsRule {
	return &CertificationsRule{}
}

func (r *CertificationsRule) Name() string {
	return "certification_requirements"
}

func (r *CertificationsRule) Severity() Severity {
	return SeverityCritical
}

func (r *CertificationsRule) Check(snap *Snapshot) (Finding, error) {
	staffCerts := strings.ToLower(snap.Staff.CertificationLevel)

	var missing []string
	for _, requirement := range snap.Shift.SpecialRequirements {
		lowered := strings.ToLower(requirement)
		if !strings.Contains(lowered, "certified") {
			continue
		}
		certType := strings.TrimSuffix(lowered, "_certified")
		if !strings.Contains(staffCerts, certType) {
			missing = append(missing, requirement)
		}
	}

	violated := len(missing) > 0

	message := "Certification requirements met"
	if violated {
		message = fmt.Sprintf("Missing certifications: %s", strings.Join(missing, ", "))
	}

	return Finding{
		Violated: violated,
		Message:  message,
		Details: map[string]any{
			"required_certifications": snap.Shift.SpecialRequirements,
			"staff_certifications":    snap.Staff.CertificationLevel,
			"missing":                 missing,
		},
	}, nil
}
