// internal/engine/classifier.go
package engine

import (
	"brand-audit/internal/catalog"
	"brand-audit/internal/models"
)

const (
	visualFloor   = 50
	strategyFloor = 50
	globalFloor   = 40
	scaleBar      = 85
	riskTolerance = 2
)

// Classify picks the maturity phase for a record. Rules are evaluated in
// priority order and the first match wins; structural visual gaps always
// outrank strategic gaps, which outrank growth gaps.
func Classify(record *models.AuditRecord, scores Scores) models.Phase {
	switch {
	case needsBranding(record, scores):
		return models.PhaseBrandingFirst
	case needsStrategy(record, scores):
		return models.PhaseStrategyFirst
	case notReadyToScale(record, scores):
		return models.PhaseReadyForWeb
	default:
		return models.PhaseReadyToScale
	}
}

func needsBranding(record *models.AuditRecord, scores Scores) bool {
	if record.Visual(catalog.VisualLogoPrimary) == models.StatusNo ||
		record.Visual(catalog.VisualLogoVector) == models.StatusNo {
		return true
	}
	return scores.Visual < visualFloor || scores.Global < globalFloor
}

func needsStrategy(record *models.AuditRecord, scores Scores) bool {
	if record.Strategy(catalog.StrategyAudience) == models.StatusNo ||
		record.Strategy(catalog.StrategyValueProp) == models.StatusNo {
		return true
	}
	if record.HasObjective(catalog.ObjectiveRebrand) {
		return true
	}
	return scores.Strategy < strategyFloor
}

func notReadyToScale(record *models.AuditRecord, scores Scores) bool {
	if scores.Global < scaleBar || scores.Visual < scaleBar || scores.Strategy < scaleBar {
		return true
	}
	if !criticalItemsSatisfied(record) {
		return true
	}
	return scores.Risks > riskTolerance
}

func criticalItemsSatisfied(record *models.AuditRecord) bool {
	for _, id := range catalog.VisualIDs() {
		if catalog.IsCritical(string(id)) && record.Visual(id) != models.StatusYes {
			return false
		}
	}
	for _, id := range catalog.StrategyIDs() {
		if catalog.IsCritical(string(id)) && record.Strategy(id) != models.StatusYes {
			return false
		}
	}
	return true
}
