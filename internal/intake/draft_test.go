// internal/intake/draft_test.go
package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-audit/internal/catalog"
	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// completeDraft walks a draft through every step with all items at status.
func completeDraft(t *testing.T, status models.AssetStatus) Draft {
	t.Helper()

	d := NewDraft("draft-1", fixedNow).SetProject("Acme Coffee", "Specialty roaster")
	d, err := d.Advance()
	require.NoError(t, err)

	for _, id := range catalog.VisualIDs() {
		d = d.SetVisualStatus(id, status)
	}
	for _, id := range catalog.StrategyIDs() {
		d = d.SetStrategyStatus(id, status)
	}
	d, err = d.Advance()
	require.NoError(t, err)

	d = d.ToggleRisk(catalog.RiskBudget).ToggleObjective(catalog.ObjectiveLeads)
	d, err = d.Advance()
	require.NoError(t, err)

	return d.ToggleService(catalog.ServiceWeb)
}

// ==========================
// Draft Tests
// ==========================

func TestNewDraft(t *testing.T) {
	d := NewDraft("abc", fixedNow)

	assert.Equal(t, "abc", d.ID)
	assert.Equal(t, StepProject, d.Step)
	assert.Equal(t, fixedNow, d.CreatedAt)
	assert.NotNil(t, d.Record.VisualAudit)
	assert.NotNil(t, d.Record.StrategyAudit)
	assert.False(t, d.Complete())
}

func TestDraft_MethodsDoNotMutateReceiver(t *testing.T) {
	original := NewDraft("abc", fixedNow)

	_ = original.SetProject("Acme", "ctx")
	_ = original.SetVisualStatus(catalog.VisualPalette, models.StatusYes)
	_ = original.SetStrategyStatus(catalog.StrategyTone, models.StatusNo)
	_ = original.ToggleRisk(catalog.RiskBudget)
	_ = original.ToggleObjective(catalog.ObjectiveSales)
	_ = original.ToggleService(catalog.ServiceAds)

	assert.Empty(t, original.Record.ProjectName)
	assert.Empty(t, original.Record.VisualAudit)
	assert.Empty(t, original.Record.StrategyAudit)
	assert.Empty(t, original.Record.Risks)
	assert.Empty(t, original.Record.Objectives)
	assert.Empty(t, original.Record.ProposedServices)
}

func TestDraft_ToggleRisk(t *testing.T) {
	tests := []struct {
		name     string
		start    []catalog.RiskTag
		toggle   catalog.RiskTag
		expected []catalog.RiskTag
	}{
		{
			name:     "add first risk",
			toggle:   catalog.RiskBudget,
			expected: []catalog.RiskTag{catalog.RiskBudget},
		},
		{
			name:     "remove existing risk",
			start:    []catalog.RiskTag{catalog.RiskBudget, catalog.RiskDeadline},
			toggle:   catalog.RiskBudget,
			expected: []catalog.RiskTag{catalog.RiskDeadline},
		},
		{
			name:     "none clears other risks",
			start:    []catalog.RiskTag{catalog.RiskBudget, catalog.RiskDeadline},
			toggle:   catalog.RiskNone,
			expected: []catalog.RiskTag{catalog.RiskNone},
		},
		{
			name:     "risk clears none",
			start:    []catalog.RiskTag{catalog.RiskNone},
			toggle:   catalog.RiskCompetition,
			expected: []catalog.RiskTag{catalog.RiskCompetition},
		},
		{
			name:     "toggling none twice empties the list",
			start:    []catalog.RiskTag{catalog.RiskNone},
			toggle:   catalog.RiskNone,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft("abc", fixedNow)
			d.Record.Risks = tt.start

			got := d.ToggleRisk(tt.toggle)

			assert.Equal(t, tt.expected, got.Record.Risks)
		})
	}
}

func TestDraft_ToggleObjectiveAndService(t *testing.T) {
	d := NewDraft("abc", fixedNow).
		ToggleObjective(catalog.ObjectiveSales).
		ToggleObjective(catalog.ObjectiveLeads).
		ToggleObjective(catalog.ObjectiveSales).
		ToggleService(catalog.ServiceWeb)

	assert.Equal(t, []catalog.ObjectiveTag{catalog.ObjectiveLeads}, d.Record.Objectives)
	assert.Equal(t, []catalog.ServiceTag{catalog.ServiceWeb}, d.Record.ProposedServices)
}

func TestDraft_StepComplete(t *testing.T) {
	d := NewDraft("abc", fixedNow)
	assert.False(t, d.StepComplete(StepProject))

	d = d.SetProject("   ", "")
	assert.False(t, d.StepComplete(StepProject), "blank names do not count")

	d = d.SetProject("Acme", "")
	assert.True(t, d.StepComplete(StepProject))

	for _, id := range catalog.VisualIDs() {
		d = d.SetVisualStatus(id, models.StatusPartial)
	}
	assert.False(t, d.StepComplete(StepChecklist), "strategy statuses still missing")
	for _, id := range catalog.StrategyIDs() {
		d = d.SetStrategyStatus(id, models.StatusNo)
	}
	assert.True(t, d.StepComplete(StepChecklist))

	d = d.ToggleRisk(catalog.RiskNone)
	assert.False(t, d.StepComplete(StepGoals), "objectives still missing")
	d = d.ToggleObjective(catalog.ObjectiveAwareness)
	assert.True(t, d.StepComplete(StepGoals))

	assert.False(t, d.StepComplete(StepServices))
	d = d.ToggleService(catalog.ServiceSocial)
	assert.True(t, d.StepComplete(StepServices))

	assert.False(t, d.StepComplete(99))
	assert.True(t, d.Complete())
}

func TestDraft_Advance(t *testing.T) {
	t.Run("incomplete step is rejected", func(t *testing.T) {
		d := NewDraft("abc", fixedNow)

		got, err := d.Advance()

		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidIntakeStep))
		assert.Equal(t, StepProject, got.Step)
	})

	t.Run("last step cannot advance", func(t *testing.T) {
		d := completeDraft(t, models.StatusYes)
		require.Equal(t, LastStep, d.Step)

		_, err := d.Advance()

		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidIntakeStep))
	})
}

func TestDraft_BackKeepsData(t *testing.T) {
	d := completeDraft(t, models.StatusPartial)

	d = d.Back().Back()

	assert.Equal(t, StepChecklist, d.Step)
	assert.Equal(t, "Acme Coffee", d.Record.ProjectName)
	assert.Len(t, d.Record.VisualAudit, len(catalog.VisualIDs()))

	d = d.Back().Back().Back()
	assert.Equal(t, StepProject, d.Step)
}

func TestDraft_AuditRecordIsACopy(t *testing.T) {
	d := completeDraft(t, models.StatusYes)

	record := d.AuditRecord()
	record.VisualAudit[catalog.VisualFlat] = models.StatusNo
	record.Risks[0] = catalog.RiskDeadline

	assert.Equal(t, models.StatusYes, d.Record.VisualAudit[catalog.VisualFlat])
	assert.Equal(t, catalog.RiskBudget, d.Record.Risks[0])
}

// ==========================
// Command Tests
// ==========================

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		commands  []Command
		expectErr bool
		check     func(t *testing.T, d Draft)
	}{
		{
			name: "project then next",
			commands: []Command{
				{Op: OpSetProject, ProjectName: "Acme", ProjectContext: "Bakery"},
				{Op: OpNext},
			},
			check: func(t *testing.T, d Draft) {
				assert.Equal(t, StepChecklist, d.Step)
				assert.Equal(t, "Bakery", d.Record.ProjectContext)
			},
		},
		{
			name: "statuses and toggles",
			commands: []Command{
				{Op: OpSetVisual, ID: string(catalog.VisualPalette), Status: models.StatusPartial},
				{Op: OpSetStrategy, ID: string(catalog.StrategyTone), Status: models.StatusYes},
				{Op: OpToggleRisk, ID: string(catalog.RiskDeadline)},
				{Op: OpToggleObjective, ID: string(catalog.ObjectiveLaunch)},
				{Op: OpToggleService, ID: string(catalog.ServiceContent)},
			},
			check: func(t *testing.T, d Draft) {
				assert.Equal(t, models.StatusPartial, d.Record.VisualAudit[catalog.VisualPalette])
				assert.Equal(t, models.StatusYes, d.Record.StrategyAudit[catalog.StrategyTone])
				assert.Equal(t, []catalog.RiskTag{catalog.RiskDeadline}, d.Record.Risks)
				assert.Equal(t, []catalog.ObjectiveTag{catalog.ObjectiveLaunch}, d.Record.Objectives)
				assert.Equal(t, []catalog.ServiceTag{catalog.ServiceContent}, d.Record.ProposedServices)
			},
		},
		{
			name:      "unknown visual item",
			commands:  []Command{{Op: OpSetVisual, ID: "v_mascot", Status: models.StatusYes}},
			expectErr: true,
		},
		{
			name:      "invalid status",
			commands:  []Command{{Op: OpSetStrategy, ID: string(catalog.StrategyTone), Status: "MAYBE"}},
			expectErr: true,
		},
		{
			name:      "unknown risk",
			commands:  []Command{{Op: OpToggleRisk, ID: "r_weather"}},
			expectErr: true,
		},
		{
			name:      "unknown operation",
			commands:  []Command{{Op: "jump"}},
			expectErr: true,
		},
		{
			name: "failure keeps earlier draft",
			commands: []Command{
				{Op: OpSetProject, ProjectName: "Acme"},
				{Op: OpToggleService, ID: "srv_printing"},
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := NewDraft("abc", fixedNow)

			got, err := Apply(start, tt.commands...)

			if tt.expectErr {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidIntakeStep))
				assert.Equal(t, start, got)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}
