// internal/workers/brand-audit/analyze-brand-audit/models.go
package analyzebrandaudit

import (
	"brand-audit/internal/catalog"
	"brand-audit/internal/models"
)

// Input is the decoded auditRecord process variable.
type Input struct {
	Record models.AuditRecord `json:"auditRecord"`
}

// Output is the diagnosis written back to the process instance.
type Output struct {
	Result  *models.AnalysisResult `json:"result"`
	Backend string                 `json:"analysisBackend"`
}

// ToVariables flattens the diagnosis into process variables so gateways can
// route on auditPhase or auditScore directly.
func (o *Output) ToVariables() map[string]interface{} {
	services := make([]string, 0, len(o.Result.RecommendedServices))
	for _, s := range o.Result.RecommendedServices {
		services = append(services, string(s))
	}
	observations := o.Result.Observations
	if observations == nil {
		observations = map[string]string{}
	}
	return map[string]interface{}{
		"auditScore":          o.Result.Score,
		"auditPhase":          string(o.Result.Phase),
		"auditPhaseLabel":     o.Result.Phase.Label(),
		"auditHeadline":       o.Result.Headline,
		"auditSummary":        o.Result.Summary,
		"auditObservations":   observations,
		"recommendedServices": services,
		"analysisBackend":     o.Backend,
	}
}

// serviceLabels is used for log lines only.
func serviceLabels(tags []catalog.ServiceTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = catalog.Label(string(t))
	}
	return out
}
