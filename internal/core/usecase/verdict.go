package usecase

import "github.com/dmoralesf/brand-guardian/internal/core/domain"

// minValidatedRules is the evidence floor for a CHECK verdict: a model
// that validated fewer than two explicit visual rules cannot assert
// compliance.
const minValidatedRules = 2

// ApplyVerdictPolicy converts the model's freeform judgment into the
// binary governance verdict, overriding the model's own stated verdict —
// the model's self-report is never trusted directly.
func ApplyVerdictPolicy(judgment domain.AuditJudgment) domain.Verdict {
	if len(judgment.Violations) > 0 {
		return domain.VerdictFail
	}
	if judgment.ValidatedRulesCount < minValidatedRules {
		return domain.VerdictFail
	}
	return domain.VerdictCheck
}
