// internal/intake/draft.go

// Package intake accumulates an audit record across the four intake steps.
// A Draft is a value: every method returns an updated copy and leaves the
// receiver untouched.
package intake

import (
	"fmt"
	"strings"
	"time"

	"brand-audit/internal/catalog"
	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/models"
)

// Intake steps in order.
const (
	StepProject   = 1 // project name and context
	StepChecklist = 2 // visual and strategy statuses
	StepGoals     = 3 // risks and objectives
	StepServices  = 4 // proposed services
	LastStep      = StepServices
)

// Draft is a partially collected audit.
type Draft struct {
	ID        string             `json:"id"`
	Step      int                `json:"step"`
	Record    models.AuditRecord `json:"record"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// NewDraft starts an empty draft at the first step.
func NewDraft(id string, now time.Time) Draft {
	return Draft{
		ID:   id,
		Step: StepProject,
		Record: models.AuditRecord{
			VisualAudit:   make(map[catalog.VisualItem]models.AssetStatus),
			StrategyAudit: make(map[catalog.StrategyItem]models.AssetStatus),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// clone deep-copies the record so the receiver is never aliased.
func (d Draft) clone() Draft {
	out := d
	out.Record.VisualAudit = make(map[catalog.VisualItem]models.AssetStatus, len(d.Record.VisualAudit))
	for k, v := range d.Record.VisualAudit {
		out.Record.VisualAudit[k] = v
	}
	out.Record.StrategyAudit = make(map[catalog.StrategyItem]models.AssetStatus, len(d.Record.StrategyAudit))
	for k, v := range d.Record.StrategyAudit {
		out.Record.StrategyAudit[k] = v
	}
	out.Record.Risks = append([]catalog.RiskTag(nil), d.Record.Risks...)
	out.Record.Objectives = append([]catalog.ObjectiveTag(nil), d.Record.Objectives...)
	out.Record.ProposedServices = append([]catalog.ServiceTag(nil), d.Record.ProposedServices...)
	return out
}

func (d Draft) SetProject(name, context string) Draft {
	out := d.clone()
	out.Record.ProjectName = name
	out.Record.ProjectContext = context
	return out
}

func (d Draft) SetVisualStatus(id catalog.VisualItem, status models.AssetStatus) Draft {
	out := d.clone()
	out.Record.VisualAudit[id] = status
	return out
}

func (d Draft) SetStrategyStatus(id catalog.StrategyItem, status models.AssetStatus) Draft {
	out := d.clone()
	out.Record.StrategyAudit[id] = status
	return out
}

// ToggleRisk adds or removes a risk. Selecting the "none" sentinel clears
// every other risk, and selecting any risk clears the sentinel.
func (d Draft) ToggleRisk(tag catalog.RiskTag) Draft {
	out := d.clone()
	risks := out.Record.Risks

	if tag == catalog.RiskNone {
		if containsRisk(risks, catalog.RiskNone) {
			out.Record.Risks = nil
		} else {
			out.Record.Risks = []catalog.RiskTag{catalog.RiskNone}
		}
		return out
	}

	withoutNone := risks[:0:0]
	for _, r := range risks {
		if r != catalog.RiskNone {
			withoutNone = append(withoutNone, r)
		}
	}
	out.Record.Risks = toggle(withoutNone, tag)
	return out
}

func (d Draft) ToggleObjective(tag catalog.ObjectiveTag) Draft {
	out := d.clone()
	out.Record.Objectives = toggle(out.Record.Objectives, tag)
	return out
}

func (d Draft) ToggleService(tag catalog.ServiceTag) Draft {
	out := d.clone()
	out.Record.ProposedServices = toggle(out.Record.ProposedServices, tag)
	return out
}

// StepComplete reports whether step has everything it needs.
func (d Draft) StepComplete(step int) bool {
	r := d.Record
	switch step {
	case StepProject:
		return strings.TrimSpace(r.ProjectName) != ""
	case StepChecklist:
		for _, id := range catalog.VisualIDs() {
			if _, ok := r.VisualAudit[id]; !ok {
				return false
			}
		}
		for _, id := range catalog.StrategyIDs() {
			if _, ok := r.StrategyAudit[id]; !ok {
				return false
			}
		}
		return true
	case StepGoals:
		return len(r.Risks) > 0 && len(r.Objectives) > 0
	case StepServices:
		return len(r.ProposedServices) > 0
	default:
		return false
	}
}

// Complete reports whether every step is complete.
func (d Draft) Complete() bool {
	for step := StepProject; step <= LastStep; step++ {
		if !d.StepComplete(step) {
			return false
		}
	}
	return true
}

// Advance moves to the next step once the current one is complete.
func (d Draft) Advance() (Draft, error) {
	if !d.StepComplete(d.Step) {
		return d, apperrors.NewInvalidIntakeStepError(fmt.Sprintf("step %d is incomplete", d.Step))
	}
	if d.Step >= LastStep {
		return d, apperrors.NewInvalidIntakeStepError("already at the last step")
	}
	out := d.clone()
	out.Step++
	return out, nil
}

// Back returns to the previous step. Collected data is kept.
func (d Draft) Back() Draft {
	out := d.clone()
	if out.Step > StepProject {
		out.Step--
	}
	return out
}

// AuditRecord returns a copy of the accumulated audit record.
func (d Draft) AuditRecord() *models.AuditRecord {
	record := d.clone().Record
	return &record
}

func toggle[T comparable](list []T, tag T) []T {
	out := make([]T, 0, len(list)+1)
	found := false
	for _, t := range list {
		if t == tag {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}

func containsRisk(list []catalog.RiskTag, tag catalog.RiskTag) bool {
	for _, t := range list {
		if t == tag {
			return true
		}
	}
	return false
}
