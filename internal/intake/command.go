// internal/intake/command.go
package intake

import (
	"fmt"

	"brand-audit/internal/catalog"
	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/models"
)

// Command operations.
const (
	OpSetProject      = "set_project"
	OpSetVisual       = "set_visual"
	OpSetStrategy     = "set_strategy"
	OpToggleRisk      = "toggle_risk"
	OpToggleObjective = "toggle_objective"
	OpToggleService   = "toggle_service"
	OpNext            = "next"
	OpBack            = "back"
)

// Command is one change requested by the intake client.
type Command struct {
	Op             string             `json:"op" yaml:"op"`
	ID             string             `json:"id,omitempty" yaml:"id,omitempty"`
	Status         models.AssetStatus `json:"status,omitempty" yaml:"status,omitempty"`
	ProjectName    string             `json:"projectName,omitempty" yaml:"projectName,omitempty"`
	ProjectContext string             `json:"projectContext,omitempty" yaml:"projectContext,omitempty"`
}

// Apply runs commands in order and returns the resulting draft. The input
// draft is returned unchanged with the error of the first rejected command.
func Apply(d Draft, commands ...Command) (Draft, error) {
	out := d
	for i, cmd := range commands {
		next, err := applyOne(out, cmd)
		if err != nil {
			return d, fmt.Errorf("command %d (%s): %w", i, cmd.Op, err)
		}
		out = next
	}
	return out, nil
}

func applyOne(d Draft, cmd Command) (Draft, error) {
	switch cmd.Op {
	case OpSetProject:
		return d.SetProject(cmd.ProjectName, cmd.ProjectContext), nil
	case OpSetVisual:
		if !catalog.IsVisual(catalog.VisualItem(cmd.ID)) {
			return d, invalid("unknown visual item %q", cmd.ID)
		}
		if !cmd.Status.Valid() {
			return d, invalid("invalid status %q", cmd.Status)
		}
		return d.SetVisualStatus(catalog.VisualItem(cmd.ID), cmd.Status), nil
	case OpSetStrategy:
		if !catalog.IsStrategy(catalog.StrategyItem(cmd.ID)) {
			return d, invalid("unknown strategy item %q", cmd.ID)
		}
		if !cmd.Status.Valid() {
			return d, invalid("invalid status %q", cmd.Status)
		}
		return d.SetStrategyStatus(catalog.StrategyItem(cmd.ID), cmd.Status), nil
	case OpToggleRisk:
		if !catalog.IsRisk(catalog.RiskTag(cmd.ID)) {
			return d, invalid("unknown risk %q", cmd.ID)
		}
		return d.ToggleRisk(catalog.RiskTag(cmd.ID)), nil
	case OpToggleObjective:
		if !catalog.IsObjective(catalog.ObjectiveTag(cmd.ID)) {
			return d, invalid("unknown objective %q", cmd.ID)
		}
		return d.ToggleObjective(catalog.ObjectiveTag(cmd.ID)), nil
	case OpToggleService:
		if !catalog.IsService(catalog.ServiceTag(cmd.ID)) {
			return d, invalid("unknown service %q", cmd.ID)
		}
		return d.ToggleService(catalog.ServiceTag(cmd.ID)), nil
	case OpNext:
		return d.Advance()
	case OpBack:
		return d.Back(), nil
	default:
		return d, invalid("unknown operation %q", cmd.Op)
	}
}

func invalid(format string, args ...interface{}) error {
	return apperrors.NewInvalidIntakeStepError(fmt.Sprintf(format, args...))
}
