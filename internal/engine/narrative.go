// internal/engine/narrative.go
package engine

import (
	"fmt"
	"strings"

	"brand-audit/internal/catalog"
	"brand-audit/internal/models"
)

// RiskLevel grades the number of attention points found in an audit.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelModerate RiskLevel = "moderate"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

var phaseParagraphs = map[models.Phase]string{
	models.PhaseBrandingFirst: "Core identity assets are missing or too weak to support any channel. " +
		"Investing in web, advertising or content now would amplify an unfinished brand, so the first step is to build the visual foundation.",
	models.PhaseStrategyFirst: "The brand has a visual base, but its message is not yet defined. " +
		"Audience, value proposition and positioning must be aligned before spending on execution.",
	models.PhaseReadyForWeb: "Identity and strategy are solid enough to be implemented. " +
		"The priority is a coherent digital presence that turns the brand into a working asset.",
	models.PhaseReadyToScale: "Foundations, message and systems are in place. " +
		"The focus can shift to reach, advertising and automation to grow the business.",
}

// AttentionPoints counts declared risks plus checklist items recorded as NO.
func AttentionPoints(record *models.AuditRecord) int {
	if record == nil {
		return 0
	}
	count := len(record.DeclaredRisks())
	for _, id := range catalog.VisualIDs() {
		if status, ok := record.VisualAudit[id]; ok && status.Normalize() == models.StatusNo {
			count++
		}
	}
	for _, id := range catalog.StrategyIDs() {
		if status, ok := record.StrategyAudit[id]; ok && status.Normalize() == models.StatusNo {
			count++
		}
	}
	return count
}

// LevelFor grades an attention point count.
func LevelFor(points int) RiskLevel {
	switch {
	case points > 7:
		return RiskLevelCritical
	case points > 4:
		return RiskLevelHigh
	case points > 1:
		return RiskLevelModerate
	default:
		return RiskLevelLow
	}
}

// Summary writes the multi-sentence narrative of a diagnosis.
func Summary(record *models.AuditRecord, phase models.Phase, score int, services []catalog.ServiceTag) string {
	if record == nil {
		record = &models.AuditRecord{}
	}
	name := strings.TrimSpace(record.ProjectName)
	if name == "" {
		name = "This project"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The diagnosis of %s shows a brand maturity of %d%%, placing it in %s.", name, score, phase.Label())

	if paragraph, ok := phaseParagraphs[phase]; ok {
		b.WriteString(" ")
		b.WriteString(paragraph)
	}

	points := AttentionPoints(record)
	fmt.Fprintf(&b, " We found %d attention points between declared risks and missing items, which means a %s risk level.",
		points, LevelFor(points))

	if len(services) > 0 {
		labels := make([]string, len(services))
		for i, s := range services {
			labels[i] = catalog.Label(string(s))
		}
		fmt.Fprintf(&b, " The recommended roadmap focuses on: %s.", strings.Join(labels, ", "))
	}

	for _, sentence := range addOns(record, phase) {
		b.WriteString(" ")
		b.WriteString(sentence)
	}
	return b.String()
}

func addOns(record *models.AuditRecord, phase models.Phase) []string {
	var out []string
	if record.HasObjective(catalog.ObjectiveRebrand) {
		out = append(out, "Rebranding is the top priority to pay down the brand's accumulated debt.")
	}
	if record.HasObjective(catalog.ObjectiveLaunch) {
		if phase.Rank() < models.PhaseReadyForWeb.Rank() {
			out = append(out, "The launch should wait until the foundations above are in place.")
		} else {
			out = append(out, "The launch can rely on the current foundations.")
		}
	}
	wantsGrowth := record.HasObjective(catalog.ObjectiveSales) || record.HasObjective(catalog.ObjectiveMarket)
	if wantsGrowth && phase.Rank() < models.PhaseReadyForWeb.Rank() {
		out = append(out, "Growth goals are premature: advertising on an unfinished brand wastes budget.")
	}
	if record.HasRisk(catalog.RiskBudget) {
		out = append(out, "Given the limited budget, the plan keeps a lean scope and favors owned content over paid services.")
	}
	if record.HasRisk(catalog.RiskDeadline) {
		out = append(out, "The tight deadline calls for phased deliveries, starting with the critical items.")
	}
	if record.HasRisk(catalog.RiskInconsistent) {
		if wantsGrowth {
			out = append(out, "Scaling an inconsistent brand multiplies the inconsistency, so unify it before investing in growth.")
		} else {
			out = append(out, "The current inconsistency across channels should be fixed through a unified identity system.")
		}
	}
	if record.HasRisk(catalog.RiskIndecision) || record.HasRisk(catalog.RiskExpectations) {
		out = append(out, "Agreeing on goals and decision makers up front will keep the project on track.")
	}
	return out
}
