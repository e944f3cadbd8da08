// internal/common/validation/validation_test.go
package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-audit/internal/catalog"
	"brand-audit/internal/models"
)

func completeRecord() *models.AuditRecord {
	record := &models.AuditRecord{
		ProjectName:      "Acme Coffee",
		VisualAudit:      make(map[catalog.VisualItem]models.AssetStatus),
		StrategyAudit:    make(map[catalog.StrategyItem]models.AssetStatus),
		Risks:            []catalog.RiskTag{catalog.RiskNone},
		Objectives:       []catalog.ObjectiveTag{catalog.ObjectiveSales},
		ProposedServices: []catalog.ServiceTag{catalog.ServiceWeb},
	}
	for _, id := range catalog.VisualIDs() {
		record.VisualAudit[id] = models.StatusYes
	}
	for _, id := range catalog.StrategyIDs() {
		record.StrategyAudit[id] = models.StatusPartial
	}
	return record
}

func TestValidateAuditRecord(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(r *models.AuditRecord)
		expectedCodes []string
		errorCount    int
	}{
		{
			name:   "complete record",
			mutate: func(r *models.AuditRecord) {},
		},
		{
			name:          "blank project name",
			mutate:        func(r *models.AuditRecord) { r.ProjectName = "   " },
			expectedCodes: []string{CodeProjectNameRequired},
			errorCount:    1,
		},
		{
			name: "one visual status missing",
			mutate: func(r *models.AuditRecord) {
				delete(r.VisualAudit, catalog.VisualPalette)
			},
			expectedCodes: []string{CodeVisualStatusMissing},
			errorCount:    1,
		},
		{
			name:          "strategy audit absent",
			mutate:        func(r *models.AuditRecord) { r.StrategyAudit = nil },
			expectedCodes: []string{CodeStrategyStatusMissing},
			errorCount:    9,
		},
		{
			name: "every list empty",
			mutate: func(r *models.AuditRecord) {
				r.Risks = nil
				r.Objectives = []catalog.ObjectiveTag{}
				r.ProposedServices = nil
			},
			expectedCodes: []string{CodeRisksRequired, CodeObjectivesRequired, CodeProposedServicesRequired},
			errorCount:    3,
		},
		{
			name: "unknown ids are not failures",
			mutate: func(r *models.AuditRecord) {
				r.VisualAudit["v_mascot"] = models.StatusYes
				r.Risks = append(r.Risks, "r_weather")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := completeRecord()
			tt.mutate(record)

			result := ValidateAuditRecord(record)

			assert.Equal(t, tt.errorCount == 0, result.Valid)
			assert.Len(t, result.Errors, tt.errorCount)
			assert.Equal(t, tt.expectedCodes, result.Codes())
		})
	}
}

func TestValidateAuditRecord_ReportsAllFailures(t *testing.T) {
	result := ValidateAuditRecord(&models.AuditRecord{})

	require.False(t, result.Valid)
	assert.Len(t, result.Errors, 1+8+9+3)
	assert.True(t, result.HasErrors("projectName"))
	assert.True(t, result.HasErrors("visualAudit.v_logo_vector"))
	assert.Len(t, result.GetErrorsForField("strategyAudit"), 9)
	assert.True(t, result.HasCode(CodeProposedServicesRequired))

	assert.Equal(t, result.Errors, ValidateAuditRecord(nil).Errors)
}

func TestRecordWarnings(t *testing.T) {
	tests := []struct {
		name  string
		risks []catalog.RiskTag
		want  []string
	}{
		{name: "none alone", risks: []catalog.RiskTag{catalog.RiskNone}},
		{name: "real risks only", risks: []catalog.RiskTag{catalog.RiskBudget, catalog.RiskInconsistent}},
		{name: "no risks"},
		{
			name:  "none mixed with a risk",
			risks: []catalog.RiskTag{catalog.RiskBudget, catalog.RiskNone},
			want:  []string{CodeRisksConflict},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := completeRecord()
			record.Risks = tt.risks

			warnings := RecordWarnings(record)

			var codes []string
			for _, w := range warnings {
				codes = append(codes, w.Code)
				assert.Equal(t, "risks", w.Field)
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestValidateAuditRecord_ConflictIsNotAFailure(t *testing.T) {
	record := completeRecord()
	record.Risks = []catalog.RiskTag{catalog.RiskNone, catalog.RiskBudget}

	result := ValidateAuditRecord(record)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, CodeRisksConflict, result.Warnings[0].Code)
	assert.Nil(t, RecordWarnings(nil))
}

func TestValidateAuditDocument(t *testing.T) {
	valid, err := json.Marshal(completeRecord())
	require.NoError(t, err)

	tests := []struct {
		name     string
		document string
		valid    bool
		field    string
	}{
		{name: "record", document: string(valid), valid: true},
		{
			name:     "bad status",
			document: `{"projectName":"A","visualAudit":{"v_palette":"MAYBE"},"strategyAudit":{}}`,
			field:    "visualAudit.v_palette",
		},
		{
			name:     "wrong type",
			document: `{"projectName":7,"visualAudit":{},"strategyAudit":{}}`,
			field:    "projectName",
		},
		{
			name:     "tag in wrong list",
			document: `{"projectName":"A","visualAudit":{},"strategyAudit":{},"risks":["o_sales"]}`,
			field:    "risks.0",
		},
		{
			name:     "unknown but well-formed ids pass",
			document: `{"projectName":"A","visualAudit":{"v_mascot":"YES"},"strategyAudit":{},"risks":["r_weather"]}`,
			valid:    true,
		},
		{
			name:     "missing audits",
			document: `{"projectName":"A"}`,
			field:    "(root)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateAuditDocument([]byte(tt.document))
			require.NoError(t, err)

			assert.Equal(t, tt.valid, result.Valid, result.GetErrorMessages())
			if tt.field != "" {
				assert.NotEmpty(t, result.GetErrorsForField(tt.field), result.GetErrorMessages())
			}
		})
	}
}

func TestAnalysisResultSchema(t *testing.T) {
	good := map[string]interface{}{
		"score":               72,
		"phase":               "READY_FOR_WEB",
		"headline":            "Ready",
		"summary":             "Fine.",
		"observations":        map[string]interface{}{"v_palette": "ok"},
		"recommendedServices": []interface{}{"srv_web"},
	}
	result, err := ValidateDocument(AnalysisResultSchema(), good)
	require.NoError(t, err)
	assert.True(t, result.Valid, result.GetErrorMessages())

	bad := map[string]interface{}{
		"score":               140,
		"phase":               "LAUNCHED",
		"headline":            "",
		"summary":             "x",
		"observations":        map[string]interface{}{},
		"recommendedServices": []interface{}{"srv_web", "srv_web", "srv_print"},
	}
	result, err = ValidateDocument(AnalysisResultSchema(), bad)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("score"))
	assert.True(t, result.HasErrors("phase"))
	assert.True(t, result.HasErrors("headline"))
	assert.True(t, result.HasCode("INVALID_ENUM_VALUE"))
}
