// cmd/tools/audit-cli/root.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"brand-audit/internal/analysis"
	"brand-audit/internal/catalog"
	"brand-audit/internal/common/config"
	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/common/logger"
	"brand-audit/internal/common/validation"
	"brand-audit/internal/engine"
	"brand-audit/internal/models"
)

// errInvalidRecord is returned by validate after the report is printed so
// the process exits non-zero.
var errInvalidRecord = errors.New("audit record is invalid")

type rootOptions struct {
	configFile string
	output     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "audit-cli",
		Short:         "Diagnose brand audit records from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.output {
			case "json", "yaml":
				return nil
			default:
				return fmt.Errorf("unsupported output format %q (json or yaml)", opts.output)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "service config file; selects the analysis backend (default: rules engine)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(
		newAnalyzeCmd(opts),
		newValidateCmd(opts),
		newCatalogCmd(opts),
		newActivitiesCmd(opts),
	)
	return rootCmd
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <record-file>",
		Short: "Score, classify and recommend services for an audit record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := opts.logger()
			service, err := opts.service(cmd.Context(), log)
			if err != nil {
				return err
			}

			record, shape, err := readRecord(args[0])
			if err != nil {
				return err
			}
			if !shape.Valid {
				return describe(apperrors.NewAuditValidationError("audit document is malformed", shape.Errors), shape.Errors)
			}

			result, err := service.Analyze(cmd.Context(), record)
			if err != nil {
				if stdErr, ok := apperrors.AsStandard(err); ok {
					if failures, ok := stdErr.Metadata["errors"].([]validation.ValidationError); ok {
						return describe(stdErr, failures)
					}
				}
				return err
			}
			return opts.write(cmd.OutOrStdout(), result)
		},
	}
}

// validateReport is the output of the validate command.
type validateReport struct {
	Valid      bool                         `json:"valid" yaml:"valid"`
	Errors     []validation.ValidationError `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings   []validation.ValidationError `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	UnknownIDs []string                     `json:"unknownIds,omitempty" yaml:"unknownIds,omitempty"`
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <record-file>",
		Short: "Check that an audit record is complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := opts.logger()
			service := analysis.NewService(engine.New(nil), nil, log)

			record, shape, err := readRecord(args[0])
			if err != nil {
				return err
			}

			report := validateReport{Valid: shape.Valid, Errors: shape.Errors}
			if shape.Valid {
				result := service.Validate(record)
				report = validateReport{
					Valid:      result.Valid,
					Errors:     result.Errors,
					Warnings:   result.Warnings,
					UnknownIDs: service.WarnUnknownIDs(record),
				}
			}
			if err := opts.write(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if !report.Valid {
				return errInvalidRecord
			}
			return nil
		},
	}
}

// catalogReport lists every checklist id, grouped by category.
type catalogReport struct {
	Visual     []catalog.ChecklistItem `json:"visual" yaml:"visual"`
	Strategy   []catalog.ChecklistItem `json:"strategy" yaml:"strategy"`
	Risks      []catalog.ChecklistItem `json:"risks" yaml:"risks"`
	Objectives []catalog.ChecklistItem `json:"objectives" yaml:"objectives"`
	Services   []catalog.ChecklistItem `json:"services" yaml:"services"`
}

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the audit checklist catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.write(cmd.OutOrStdout(), catalogReport{
				Visual:     catalog.Visual(),
				Strategy:   catalog.Strategy(),
				Risks:      catalog.Risks(),
				Objectives: catalog.Objectives(),
				Services:   catalog.Services(),
			})
		},
	}
}

func (o *rootOptions) logger() logger.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	return logger.NewStructured(level, "console")
}

// service builds the analysis service. Without a config file the rules
// engine is used and no network access happens.
func (o *rootOptions) service(ctx context.Context, log logger.Logger) (*analysis.Service, error) {
	if o.configFile == "" {
		return analysis.NewService(engine.New(nil), nil, log), nil
	}

	cfg, err := config.LoadFromFile(o.configFile)
	if err != nil {
		return nil, err
	}
	analyzer, err := analysis.NewAnalyzer(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return analysis.NewService(analyzer, nil, log), nil
}

func (o *rootOptions) write(w io.Writer, v interface{}) error {
	if o.output == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readRecord loads a record from a .json, .yaml or .yml file. The document
// is checked against the audit schema before it is decoded; a nil record is
// returned with an invalid shape.
func readRecord(path string) (*models.AuditRecord, *validation.ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	raw, err := toJSON(path, data)
	if err != nil {
		return nil, nil, apperrors.NewInputParsingError(err)
	}

	shape, err := validation.ValidateAuditDocument(raw)
	if err != nil {
		return nil, nil, apperrors.NewInputParsingError(err)
	}
	if !shape.Valid {
		return nil, shape, nil
	}

	var record models.AuditRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, nil, apperrors.NewInputParsingError(err)
	}
	return &record, shape, nil
}

func toJSON(path string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return json.Marshal(doc)
	default:
		return data, nil
	}
}

func describe(stdErr *apperrors.StandardError, failures []validation.ValidationError) error {
	lines := make([]string, 0, len(failures)+1)
	lines = append(lines, fmt.Sprintf("%s: %s", stdErr.Code, stdErr.Message))
	for _, f := range failures {
		lines = append(lines, fmt.Sprintf("  %s: %s", f.Field, f.Message))
	}
	return errors.New(strings.Join(lines, "\n"))
}
