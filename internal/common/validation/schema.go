package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationResult holds failed rules. Warnings never affect Valid.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func newResult(errors []ValidationError) *ValidationResult {
	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

// ValidateDocument checks document against a JSON schema held as a Go value.
// An error is returned only when the schema itself cannot be used.
func ValidateDocument(schema map[string]interface{}, document interface{}) (*ValidationResult, error) {
	return validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(document))
}

// ValidateJSON is ValidateDocument for raw JSON bytes.
func ValidateJSON(schema map[string]interface{}, raw []byte) (*ValidationResult, error) {
	return validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewBytesLoader(raw))
}

func validate(schemaLoader, documentLoader gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	errors := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errors = append(errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    schemaErrorCode(desc.Type()),
		})
	}
	return newResult(errors), nil
}

// schemaErrorCode turns a gojsonschema error type such as "enum" or
// "invalid_type" into an upper-case code.
func schemaErrorCode(kind string) string {
	switch kind {
	case "required":
		return "REQUIRED_FIELD_MISSING"
	case "invalid_type":
		return "INVALID_TYPE"
	case "enum":
		return "INVALID_ENUM_VALUE"
	case "additional_property_not_allowed":
		return "EXTRA_FIELD"
	default:
		return "SCHEMA_" + strings.ToUpper(kind)
	}
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// HasCode reports whether any error carries code.
func (vr *ValidationResult) HasCode(code string) bool {
	for _, err := range vr.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}

// Codes returns the distinct error codes in first-seen order.
func (vr *ValidationResult) Codes() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, err := range vr.Errors {
		if !seen[err.Code] {
			seen[err.Code] = true
			codes = append(codes, err.Code)
		}
	}
	return codes
}

// GetErrorsForField returns errors for a specific field
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") || strings.HasPrefix(err.Field, field+"[") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}
