// cmd/tools/audit-cli/activities.go
package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/common/validation"
	ab "brand-audit/internal/workers/brand-audit/analyze-brand-audit"
	va "brand-audit/internal/workers/brand-audit/validate-audit-record"
	"brand-audit/pkg/registry"
)

const registryVersion = "1.0.0"

var errRegistryDrift = errors.New("activity registry is out of date")

// activityRegistry describes the job types served by the audit service.
func activityRegistry() *registry.ActivityRegistry {
	input := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"auditRecord": validation.AuditDocumentSchema()},
		"required":   []interface{}{"auditRecord"},
	}
	stringArray := map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}}

	return &registry.ActivityRegistry{
		Version: registryVersion,
		Activities: []registry.Activity{
			{
				ID:          va.ConfigName,
				DisplayName: "Validate Audit Record",
				Description: "Checks that an audit record is complete and reports unknown checklist ids.",
				TaskType:    va.TaskType,
				InputSchema: input,
				OutputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"auditValid":         map[string]interface{}{"type": "boolean"},
						"validationErrors":   map[string]interface{}{"type": "array"},
						"validationWarnings": map[string]interface{}{"type": "array"},
						"unknownIds":         stringArray,
					},
				},
				ErrorCodes: bpmnCodes(apperrors.ErrCodeInputParsingFailed),
				Timeout:    va.DefaultConfig().Timeout.String(),
			},
			{
				ID:          ab.ConfigName,
				DisplayName: "Analyze Brand Audit",
				Description: "Scores an audit record, classifies its phase and recommends services.",
				TaskType:    ab.TaskType,
				InputSchema: input,
				OutputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"auditScore":          map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
						"auditPhase":          map[string]interface{}{"type": "string"},
						"auditPhaseLabel":     map[string]interface{}{"type": "string"},
						"auditHeadline":       map[string]interface{}{"type": "string"},
						"auditSummary":        map[string]interface{}{"type": "string"},
						"auditObservations":   map[string]interface{}{"type": "object"},
						"recommendedServices": stringArray,
						"analysisBackend":     map[string]interface{}{"type": "string"},
					},
				},
				ErrorCodes: bpmnCodes(
					apperrors.ErrCodeInputParsingFailed,
					apperrors.ErrCodeAuditValidationFailed,
					apperrors.ErrCodeRemoteAnalysisFailed,
					apperrors.ErrCodeRemoteAnalysisTimeout,
				),
				Timeout: ab.DefaultConfig().Timeout.String(),
			},
		},
	}
}

// bpmnCodes maps error codes to the distinct BPMN codes a model must catch.
func bpmnCodes(codes ...apperrors.ErrorCode) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range codes {
		bpmn := apperrors.ConvertToBPMNError(&apperrors.StandardError{Code: c}).Code
		if !seen[bpmn] {
			seen[bpmn] = true
			out = append(out, bpmn)
		}
	}
	sort.Strings(out)
	return out
}

func newActivitiesCmd(opts *rootOptions) *cobra.Command {
	var writePath, checkPath string

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Print, write or check the activity registry used by process modelers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := activityRegistry()

			switch {
			case writePath != "":
				if err := registry.SaveRegistry(writePath, reg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d activities to %s\n", len(reg.Activities), writePath)
				return nil

			case checkPath != "":
				existing, err := registry.LoadRegistry(checkPath)
				if err != nil {
					return err
				}
				diff, err := registry.Diff(reg, existing)
				if err != nil {
					return err
				}
				for _, line := range diff {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				if len(diff) > 0 {
					return errRegistryDrift
				}
				fmt.Fprintln(cmd.OutOrStdout(), "activity registry is up to date")
				return nil

			default:
				return opts.write(cmd.OutOrStdout(), reg)
			}
		},
	}

	cmd.Flags().StringVar(&writePath, "write", "", "write the registry to this file")
	cmd.Flags().StringVar(&checkPath, "check", "", "compare this registry file with the served activities")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
	return cmd
}
