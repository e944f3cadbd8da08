// internal/engine/scoring.go
package engine

import (
	"math"

	"brand-audit/internal/catalog"
	"brand-audit/internal/models"
)

// Deduction table. A single critical NO costs more than the gap between the
// scale bar (85) and a perfect score, so it can never be compensated.
const (
	criticalNoDeduction      = 16
	criticalPartialDeduction = 8
	ordinaryNoDeduction      = 5
	ordinaryPartialDeduction = 2
	riskDeduction            = 4
)

// Scores holds the global score and the per-category sub-scores.
type Scores struct {
	Global   int `json:"global"`
	Visual   int `json:"visual"`
	Strategy int `json:"strategy"`
	Risks    int `json:"risks"`
}

func itemDeduction(id string, status models.AssetStatus) int {
	critical := catalog.IsCritical(id)
	switch status.Normalize() {
	case models.StatusYes:
		return 0
	case models.StatusPartial:
		if critical {
			return criticalPartialDeduction
		}
		return ordinaryPartialDeduction
	default:
		if critical {
			return criticalNoDeduction
		}
		return ordinaryNoDeduction
	}
}

func maxDeduction(ids []string) int {
	total := 0
	for _, id := range ids {
		total += itemDeduction(id, models.StatusNo)
	}
	return total
}

func visualDeduction(record *models.AuditRecord) (deducted, max int) {
	ids := make([]string, 0, len(catalog.VisualIDs()))
	for _, id := range catalog.VisualIDs() {
		deducted += itemDeduction(string(id), record.Visual(id))
		ids = append(ids, string(id))
	}
	return deducted, maxDeduction(ids)
}

func strategyDeduction(record *models.AuditRecord) (deducted, max int) {
	ids := make([]string, 0, len(catalog.StrategyIDs()))
	for _, id := range catalog.StrategyIDs() {
		deducted += itemDeduction(string(id), record.Strategy(id))
		ids = append(ids, string(id))
	}
	return deducted, maxDeduction(ids)
}

func subScore(deducted, max int) int {
	if max == 0 {
		return 100
	}
	return clamp(int(math.Round(100*(1-float64(deducted)/float64(max)))), 0, 100)
}

// Score computes the 0..100 health score of a record.
func Score(record *models.AuditRecord) int {
	return ComputeScores(record).Global
}

// ComputeScores returns the global score together with the visual and
// strategy sub-scores. Risks only affect the global score.
func ComputeScores(record *models.AuditRecord) Scores {
	vDeducted, vMax := visualDeduction(record)
	sDeducted, sMax := strategyDeduction(record)
	risks := len(record.DeclaredRisks())

	global := 100 - vDeducted - sDeducted - risks*riskDeduction

	return Scores{
		Global:   clamp(global, 0, 100),
		Visual:   subScore(vDeducted, vMax),
		Strategy: subScore(sDeducted, sMax),
		Risks:    risks,
	}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
