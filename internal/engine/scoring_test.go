// internal/engine/scoring_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brand-audit/internal/catalog"
	"brand-audit/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

// uniformRecord returns a record with every catalog item set to status.
func uniformRecord(status models.AssetStatus) *models.AuditRecord {
	record := &models.AuditRecord{
		ProjectName:   "Acme Coffee",
		VisualAudit:   make(map[catalog.VisualItem]models.AssetStatus),
		StrategyAudit: make(map[catalog.StrategyItem]models.AssetStatus),
		Risks:         []catalog.RiskTag{catalog.RiskNone},
		Objectives:    []catalog.ObjectiveTag{catalog.ObjectiveAwareness},
		ProposedServices: []catalog.ServiceTag{
			catalog.ServiceIdentity,
		},
	}
	for _, id := range catalog.VisualIDs() {
		record.VisualAudit[id] = status
	}
	for _, id := range catalog.StrategyIDs() {
		record.StrategyAudit[id] = status
	}
	return record
}

func withRisks(record *models.AuditRecord, risks ...catalog.RiskTag) *models.AuditRecord {
	record.Risks = risks
	return record
}

// ==========================
// Scoring Tests
// ==========================

func TestComputeScores(t *testing.T) {
	tests := []struct {
		name     string
		record   func() *models.AuditRecord
		expected Scores
	}{
		{
			name:     "everything in place",
			record:   func() *models.AuditRecord { return uniformRecord(models.StatusYes) },
			expected: Scores{Global: 100, Visual: 100, Strategy: 100},
		},
		{
			name:     "everything missing",
			record:   func() *models.AuditRecord { return uniformRecord(models.StatusNo) },
			expected: Scores{Global: 0, Visual: 0, Strategy: 0},
		},
		{
			name: "primary logo missing",
			record: func() *models.AuditRecord {
				r := uniformRecord(models.StatusYes)
				r.VisualAudit[catalog.VisualLogoPrimary] = models.StatusNo
				return r
			},
			expected: Scores{Global: 84, Visual: 74, Strategy: 100},
		},
		{
			name: "audience and value proposition missing",
			record: func() *models.AuditRecord {
				r := uniformRecord(models.StatusYes)
				r.StrategyAudit[catalog.StrategyAudience] = models.StatusNo
				r.StrategyAudit[catalog.StrategyValueProp] = models.StatusNo
				return r
			},
			expected: Scores{Global: 68, Visual: 100, Strategy: 59},
		},
		{
			name: "ordinary partial item",
			record: func() *models.AuditRecord {
				r := uniformRecord(models.StatusYes)
				r.VisualAudit[catalog.VisualPalette] = models.StatusPartial
				return r
			},
			expected: Scores{Global: 98, Visual: 97, Strategy: 100},
		},
		{
			name: "risks only affect the global score",
			record: func() *models.AuditRecord {
				return withRisks(uniformRecord(models.StatusYes), catalog.RiskBudget, catalog.RiskDeadline)
			},
			expected: Scores{Global: 92, Visual: 100, Strategy: 100, Risks: 2},
		},
		{
			name: "duplicate and unknown risks count once",
			record: func() *models.AuditRecord {
				return withRisks(uniformRecord(models.StatusYes),
					catalog.RiskBudget, catalog.RiskBudget, catalog.RiskTag("r_weather"))
			},
			expected: Scores{Global: 96, Visual: 100, Strategy: 100, Risks: 1},
		},
		{
			name: "empty record equals all NO",
			record: func() *models.AuditRecord {
				return &models.AuditRecord{ProjectName: "Empty"}
			},
			expected: Scores{Global: 0, Visual: 0, Strategy: 0},
		},
		{
			name: "unknown status counts as NO",
			record: func() *models.AuditRecord {
				r := uniformRecord(models.StatusYes)
				r.VisualAudit[catalog.VisualFlat] = models.AssetStatus("MAYBE")
				return r
			},
			expected: Scores{Global: 95, Visual: 92, Strategy: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeScores(tt.record()))
		})
	}
}

func TestScore_CriticalGapCapsBelowScaleBar(t *testing.T) {
	for _, id := range catalog.VisualIDs() {
		if !catalog.IsCritical(string(id)) {
			continue
		}
		r := uniformRecord(models.StatusYes)
		r.VisualAudit[id] = models.StatusNo
		assert.Less(t, Score(r), scaleBar, id)
	}
	for _, id := range catalog.StrategyIDs() {
		if !catalog.IsCritical(string(id)) {
			continue
		}
		r := uniformRecord(models.StatusYes)
		r.StrategyAudit[id] = models.StatusNo
		assert.Less(t, Score(r), scaleBar, id)
	}
}

// ==========================
// Classifier Tests
// ==========================

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		record   func() *models.AuditRecord
		expected models.Phase
	}{
		{
			name:     "complete brand without risks",
			record:   func() *models.AuditRecord { return uniformRecord(models.StatusYes) },
			expected: models.PhaseReadyToScale,
		},
		{
			name: "missing primary logo",
			record: func() *models.AuditRecord {
				r := uniformRecord(models.StatusYes)
				r.VisualAudit[catalog.VisualLogoPrimary] = models.StatusNo
				return r
			},
			expected: models.PhaseBrandingFirst,
		},
		{
			name: "missing vector logo",
			record: func() *models.AuditRecord {
				r := uniformRecord(models.StatusYes)
				r.VisualAudit[catalog.VisualLogoVector] = models.StatusNo
				return r
			},
			expected: models.PhaseBrandingFirst,
		},
		{
			name: "weak visual system with logos present",
			record: func() *models.AuditRecord {
				r := uniformRecord(models.StatusYes)
				r.VisualAudit[catalog.VisualLogoPrimary] = models.StatusPartial
				for _, id := range []catalog.VisualItem{
					catalog.VisualBrandbook, catalog.VisualScalability, catalog.VisualTypography,
					catalog.VisualPalette, catalog.VisualLogoUnique, catalog.VisualFlat,
				} {
					r.VisualAudit[id] = models.StatusNo
				}
				return r
			},
			expected: models.PhaseBrandingFirst,
		},
		{
			name: "strategy entirely missing drags the global score down",
			record: func() *models.AuditRecord {
				r := uniformRecord(models.StatusYes)
				for _, id := range catalog.StrategyIDs() {
					r.StrategyAudit[id] = models.StatusNo
				}
				return r
			},
			expected: models.PhaseBrandingFirst,
		},
		{
			name: "audience and value proposition missing",
			record: func() *models.AuditRecord {
				r := uniformRecord(models.StatusYes)
				r.StrategyAudit[catalog.StrategyAudience] = models.StatusNo
				r.StrategyAudit[catalog.StrategyValueProp] = models.StatusNo
				return r
			},
			expected: models.PhaseStrategyFirst,
		},
		{
			name: "rebrand objective with solid visuals",
			record: func() *models.AuditRecord {
				r := uniformRecord(models.StatusYes)
				r.Objectives = []catalog.ObjectiveTag{catalog.ObjectiveRebrand}
				return r
			},
			expected: models.PhaseStrategyFirst,
		},
		{
			name: "rebrand objective without a logo",
			record: func() *models.AuditRecord {
				r := uniformRecord(models.StatusYes)
				r.VisualAudit[catalog.VisualLogoPrimary] = models.StatusNo
				r.Objectives = []catalog.ObjectiveTag{catalog.ObjectiveRebrand}
				return r
			},
			expected: models.PhaseBrandingFirst,
		},
		{
			name: "critical item only partial",
			record: func() *models.AuditRecord {
				r := uniformRecord(models.StatusYes)
				r.StrategyAudit[catalog.StrategyNamingCheck] = models.StatusPartial
				return r
			},
			expected: models.PhaseReadyForWeb,
		},
		{
			name: "too many risks to scale",
			record: func() *models.AuditRecord {
				return withRisks(uniformRecord(models.StatusYes),
					catalog.RiskDeadline, catalog.RiskIndecision, catalog.RiskNoHistory)
			},
			expected: models.PhaseReadyForWeb,
		},
		{
			name: "two risks are tolerated",
			record: func() *models.AuditRecord {
				return withRisks(uniformRecord(models.StatusYes), catalog.RiskDeadline, catalog.RiskIndecision)
			},
			expected: models.PhaseReadyToScale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := tt.record()
			assert.Equal(t, tt.expected, Classify(record, ComputeScores(record)))
		})
	}
}
