// internal/models/audit.go
package models

import (
	"strings"

	"brand-audit/internal/catalog"
)

// AssetStatus is the completion state of one checklist item.
type AssetStatus string

const (
	StatusYes     AssetStatus = "YES"
	StatusPartial AssetStatus = "PARTIAL"
	StatusNo      AssetStatus = "NO"
)

// Rank orders statuses NO < PARTIAL < YES. Unrecognised values rank as NO.
func (s AssetStatus) Rank() int {
	switch s.Normalize() {
	case StatusYes:
		return 2
	case StatusPartial:
		return 1
	default:
		return 0
	}
}

// Normalize maps any unrecognised value to NO.
func (s AssetStatus) Normalize() AssetStatus {
	switch AssetStatus(strings.ToUpper(strings.TrimSpace(string(s)))) {
	case StatusYes:
		return StatusYes
	case StatusPartial:
		return StatusPartial
	default:
		return StatusNo
	}
}

// Valid reports whether s is one of the three known statuses.
func (s AssetStatus) Valid() bool {
	return s == StatusYes || s == StatusPartial || s == StatusNo
}

// AuditRecord is the engine input collected by the intake.
type AuditRecord struct {
	ProjectName      string                               `json:"projectName" yaml:"projectName"`
	ProjectContext   string                               `json:"projectContext" yaml:"projectContext"`
	VisualAudit      map[catalog.VisualItem]AssetStatus   `json:"visualAudit" yaml:"visualAudit"`
	StrategyAudit    map[catalog.StrategyItem]AssetStatus `json:"strategyAudit" yaml:"strategyAudit"`
	Risks            []catalog.RiskTag                    `json:"risks" yaml:"risks"`
	Objectives       []catalog.ObjectiveTag               `json:"objectives" yaml:"objectives"`
	ProposedServices []catalog.ServiceTag                 `json:"proposedServices" yaml:"proposedServices"`
}

// Visual returns the status of a visual item, NO when absent.
func (r *AuditRecord) Visual(id catalog.VisualItem) AssetStatus {
	if r == nil || r.VisualAudit == nil {
		return StatusNo
	}
	return r.VisualAudit[id].Normalize()
}

// Strategy returns the status of a strategy item, NO when absent.
func (r *AuditRecord) Strategy(id catalog.StrategyItem) AssetStatus {
	if r == nil || r.StrategyAudit == nil {
		return StatusNo
	}
	return r.StrategyAudit[id].Normalize()
}

// HasRisk reports whether tag was declared.
func (r *AuditRecord) HasRisk(tag catalog.RiskTag) bool {
	if r == nil {
		return false
	}
	for _, t := range r.Risks {
		if t == tag {
			return true
		}
	}
	return false
}

// HasObjective reports whether tag was declared.
func (r *AuditRecord) HasObjective(tag catalog.ObjectiveTag) bool {
	if r == nil {
		return false
	}
	for _, t := range r.Objectives {
		if t == tag {
			return true
		}
	}
	return false
}

// HasProposedService reports whether the requester already considers tag.
func (r *AuditRecord) HasProposedService(tag catalog.ServiceTag) bool {
	if r == nil {
		return false
	}
	for _, t := range r.ProposedServices {
		if t == tag {
			return true
		}
	}
	return false
}

// DeclaredRisks returns the distinct known risk tags, excluding the sentinel,
// in declaration order.
func (r *AuditRecord) DeclaredRisks() []catalog.RiskTag {
	if r == nil {
		return nil
	}
	seen := make(map[catalog.RiskTag]bool, len(r.Risks))
	var out []catalog.RiskTag
	for _, t := range r.Risks {
		if t == catalog.RiskNone || !catalog.IsRisk(t) || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
