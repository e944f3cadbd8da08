// internal/common/validation/audit.go
package validation

import (
	"fmt"
	"strings"

	"brand-audit/internal/catalog"
	"brand-audit/internal/models"
)

// Record rule codes.
const (
	CodeProjectNameRequired      = "PROJECT_NAME_REQUIRED"
	CodeVisualStatusMissing      = "VISUAL_STATUS_MISSING"
	CodeStrategyStatusMissing    = "STRATEGY_STATUS_MISSING"
	CodeRisksRequired            = "RISKS_REQUIRED"
	CodeObjectivesRequired       = "OBJECTIVES_REQUIRED"
	CodeProposedServicesRequired = "PROPOSED_SERVICES_REQUIRED"

	// Warning codes.
	CodeRisksConflict = "RISKS_CONFLICT"
)

// ValidateAuditRecord checks that a record is complete enough to analyze.
// Every rule is evaluated; all failures are reported. Unknown ids are not
// failures, and RecordWarnings findings are attached as warnings.
func ValidateAuditRecord(record *models.AuditRecord) *ValidationResult {
	if record == nil {
		record = &models.AuditRecord{}
	}
	var errors []ValidationError

	if strings.TrimSpace(record.ProjectName) == "" {
		errors = append(errors, ValidationError{
			Field:   "projectName",
			Message: "project name is required",
			Code:    CodeProjectNameRequired,
		})
	}

	for _, id := range catalog.VisualIDs() {
		if _, ok := record.VisualAudit[id]; !ok {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("visualAudit.%s", id),
				Message: fmt.Sprintf("status for %q is missing", catalog.Label(string(id))),
				Code:    CodeVisualStatusMissing,
			})
		}
	}

	for _, id := range catalog.StrategyIDs() {
		if _, ok := record.StrategyAudit[id]; !ok {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("strategyAudit.%s", id),
				Message: fmt.Sprintf("status for %q is missing", catalog.Label(string(id))),
				Code:    CodeStrategyStatusMissing,
			})
		}
	}

	if len(record.Risks) == 0 {
		errors = append(errors, ValidationError{
			Field:   "risks",
			Message: "select at least one risk, or none",
			Code:    CodeRisksRequired,
		})
	}
	if len(record.Objectives) == 0 {
		errors = append(errors, ValidationError{
			Field:   "objectives",
			Message: "select at least one objective",
			Code:    CodeObjectivesRequired,
		})
	}
	if len(record.ProposedServices) == 0 {
		errors = append(errors, ValidationError{
			Field:   "proposedServices",
			Message: "select at least one proposed service",
			Code:    CodeProposedServicesRequired,
		})
	}

	result := newResult(errors)
	result.Warnings = RecordWarnings(record)
	return result
}

// RecordWarnings reports consistency problems that do not block analysis.
// The "none" risk sentinel is only meaningful on its own.
func RecordWarnings(record *models.AuditRecord) []ValidationError {
	if record == nil || len(record.Risks) < 2 {
		return nil
	}
	for _, r := range record.Risks {
		if r == catalog.RiskNone {
			return []ValidationError{{
				Field:   "risks",
				Message: fmt.Sprintf("%q is selected together with other risks and is ignored", catalog.Label(string(catalog.RiskNone))),
				Code:    CodeRisksConflict,
			}}
		}
	}
	return nil
}

// ValidateAuditDocument checks the raw JSON shape of an audit record: field
// types, status values and tag prefixes. It complements ValidateAuditRecord,
// which checks completeness.
func ValidateAuditDocument(raw []byte) (*ValidationResult, error) {
	return ValidateJSON(AuditDocumentSchema(), raw)
}

func ids(items []catalog.ChecklistItem) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

// statusMap accepts any key; unknown ids surface as warnings elsewhere.
func statusMap() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"additionalProperties": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{string(models.StatusYes), string(models.StatusPartial), string(models.StatusNo)},
		},
	}
}

func tagArray(prefix string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"uniqueItems": true,
		"items": map[string]interface{}{
			"type":    "string",
			"pattern": "^" + prefix + "[a-z_]+$",
		},
	}
}

// AuditDocumentSchema returns the JSON schema of an audit record.
func AuditDocumentSchema() map[string]interface{} {
	return map[string]interface{}{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"properties": map[string]interface{}{
			"projectName":      map[string]interface{}{"type": "string"},
			"projectContext":   map[string]interface{}{"type": "string"},
			"visualAudit":      statusMap(),
			"strategyAudit":    statusMap(),
			"risks":            tagArray("r_"),
			"objectives":       tagArray("o_"),
			"proposedServices": tagArray("srv_"),
		},
		"required": []interface{}{"projectName", "visualAudit", "strategyAudit"},
	}
}

// AnalysisResultSchema returns the JSON schema every analyzer response must
// satisfy.
func AnalysisResultSchema() map[string]interface{} {
	phases := make([]interface{}, len(models.Phases))
	for i, p := range models.Phases {
		phases[i] = string(p)
	}
	services := map[string]interface{}{
		"type":        "array",
		"uniqueItems": true,
		"minItems":    1,
		"maxItems":    5,
		"items": map[string]interface{}{
			"type": "string",
			"enum": ids(catalog.Services()),
		},
	}

	return map[string]interface{}{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"properties": map[string]interface{}{
			"score":    map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
			"phase":    map[string]interface{}{"type": "string", "enum": phases},
			"headline": map[string]interface{}{"type": "string", "minLength": 1},
			"summary":  map[string]interface{}{"type": "string", "minLength": 1},
			"observations": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": map[string]interface{}{"type": "string"},
			},
			"recommendedServices": services,
		},
		"required": []interface{}{"score", "phase", "headline", "summary", "observations", "recommendedServices"},
	}
}
