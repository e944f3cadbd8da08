// internal/engine/engine.go
package engine

import (
	"context"
	"fmt"
	"sort"

	"brand-audit/internal/catalog"
	"brand-audit/internal/models"
)

// BackendName identifies the deterministic rules backend.
const BackendName = "rules"

// Analyzer is the deterministic rules backend. The zero value is ready to use
// and picks headlines by project name hash.
type Analyzer struct {
	Picker HeadlinePicker
}

// New returns an Analyzer using picker, or the hash picker when nil.
func New(picker HeadlinePicker) *Analyzer {
	if picker == nil {
		picker = HashPicker{}
	}
	return &Analyzer{Picker: picker}
}

func (a *Analyzer) Name() string {
	return BackendName
}

// Analyze runs the whole pipeline. It never fails for a non-nil record; the
// context is only checked before work starts.
func (a *Analyzer) Analyze(ctx context.Context, record *models.AuditRecord) (*models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("audit record is nil")
	}
	return a.Diagnose(record), nil
}

// Diagnose maps a record to its diagnosis. A nil record is diagnosed as an
// empty one.
func (a *Analyzer) Diagnose(record *models.AuditRecord) *models.AnalysisResult {
	if record == nil {
		record = &models.AuditRecord{}
	}
	var picker HeadlinePicker = HashPicker{}
	if a != nil && a.Picker != nil {
		picker = a.Picker
	}

	scores := ComputeScores(record)
	phase := Classify(record, scores)
	services := Recommend(record, phase, scores.Global)

	return &models.AnalysisResult{
		Score:               scores.Global,
		Phase:               phase,
		Headline:            Headline(picker, record, phase),
		Summary:             Summary(record, phase, scores.Global, services),
		Observations:        Observations(record),
		RecommendedServices: services,
	}
}

// Analyze is a shorthand for the default Analyzer.
func Analyze(record *models.AuditRecord) *models.AnalysisResult {
	return (&Analyzer{}).Diagnose(record)
}

// UnknownIDs lists every id or tag in the record that the catalog does not
// know, prefixed with the field it was found in. Unknown ids are ignored by
// the engine.
func UnknownIDs(record *models.AuditRecord) []string {
	if record == nil {
		return nil
	}
	var out []string
	var visual, strategy []string
	for id := range record.VisualAudit {
		if !catalog.IsVisual(id) {
			visual = append(visual, "visualAudit."+string(id))
		}
	}
	for id := range record.StrategyAudit {
		if !catalog.IsStrategy(id) {
			strategy = append(strategy, "strategyAudit."+string(id))
		}
	}
	sort.Strings(visual)
	sort.Strings(strategy)
	out = append(out, visual...)
	out = append(out, strategy...)

	for _, tag := range record.Risks {
		if !catalog.IsRisk(tag) {
			out = append(out, "risks."+string(tag))
		}
	}
	for _, tag := range record.Objectives {
		if !catalog.IsObjective(tag) {
			out = append(out, "objectives."+string(tag))
		}
	}
	for _, tag := range record.ProposedServices {
		if !catalog.IsService(tag) {
			out = append(out, "proposedServices."+string(tag))
		}
	}
	return out
}
