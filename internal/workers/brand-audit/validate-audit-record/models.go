// internal/workers/brand-audit/validate-audit-record/models.go
package validateauditrecord

import (
	"encoding/json"

	"brand-audit/internal/common/validation"
)

// Input carries the raw auditRecord process variable.
type Input struct {
	AuditRecord json.RawMessage `json:"auditRecord"`
}

// Output is written back to the process instance.
type Output struct {
	Valid      bool                         `json:"auditValid"`
	Errors     []validation.ValidationError `json:"validationErrors"`
	Warnings   []validation.ValidationError `json:"validationWarnings"`
	UnknownIDs []string                     `json:"unknownIds"`
}

// ToVariables returns the process variables set on completion. Slices are
// never nil so gateways can test their length.
func (o *Output) ToVariables() map[string]interface{} {
	errs := o.Errors
	if errs == nil {
		errs = []validation.ValidationError{}
	}
	warnings := o.Warnings
	if warnings == nil {
		warnings = []validation.ValidationError{}
	}
	unknown := o.UnknownIDs
	if unknown == nil {
		unknown = []string{}
	}
	return map[string]interface{}{
		"auditValid":         o.Valid,
		"validationErrors":   errs,
		"validationWarnings": warnings,
		"unknownIds":         unknown,
	}
}
