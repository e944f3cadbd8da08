// internal/remote/prompt.go
package remote

import (
	"encoding/json"
	"fmt"
	"strings"

	"brand-audit/internal/catalog"
	"brand-audit/internal/engine"
	"brand-audit/internal/models"
)

// promptItem is one checklist entry as sent to the model.
type promptItem struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status"`
}

type promptTag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// promptInput is the audit record rewritten with catalog labels so the model
// does not have to guess what an id means.
type promptInput struct {
	ProjectName      string       `json:"projectName"`
	ProjectContext   string       `json:"projectContext,omitempty"`
	VisualAudit      []promptItem `json:"visualAudit"`
	StrategyAudit    []promptItem `json:"strategyAudit"`
	Risks            []promptTag  `json:"risks"`
	Objectives       []promptTag  `json:"objectives"`
	ProposedServices []promptTag  `json:"proposedServices"`
}

const systemInstruction = `You are a senior brand strategist. You receive a brand audit and return a diagnosis.
Answer with a single JSON object and nothing else.`

func newPromptInput(record *models.AuditRecord) promptInput {
	in := promptInput{
		ProjectName:    record.ProjectName,
		ProjectContext: record.ProjectContext,
	}
	for _, id := range catalog.VisualIDs() {
		if status, ok := record.VisualAudit[id]; ok {
			in.VisualAudit = append(in.VisualAudit, promptItem{string(id), catalog.Label(string(id)), string(status.Normalize())})
		}
	}
	for _, id := range catalog.StrategyIDs() {
		if status, ok := record.StrategyAudit[id]; ok {
			in.StrategyAudit = append(in.StrategyAudit, promptItem{string(id), catalog.Label(string(id)), string(status.Normalize())})
		}
	}
	for _, tag := range record.Risks {
		if catalog.IsRisk(tag) {
			in.Risks = append(in.Risks, promptTag{string(tag), catalog.Label(string(tag))})
		}
	}
	for _, tag := range record.Objectives {
		if catalog.IsObjective(tag) {
			in.Objectives = append(in.Objectives, promptTag{string(tag), catalog.Label(string(tag))})
		}
	}
	for _, tag := range record.ProposedServices {
		if catalog.IsService(tag) {
			in.ProposedServices = append(in.ProposedServices, promptTag{string(tag), catalog.Label(string(tag))})
		}
	}
	return in
}

// BuildPrompt renders the user prompt for one analysis: the output contract
// followed by the audit as JSON.
func BuildPrompt(record *models.AuditRecord) (string, error) {
	input, err := json.MarshalIndent(newPromptInput(record), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode prompt input: %w", err)
	}

	var b strings.Builder
	b.WriteString("Diagnose the brand audit below.\n\n")
	b.WriteString("Return JSON with exactly these fields:\n")
	b.WriteString("- score: integer from 0 to 100, the brand maturity\n")
	b.WriteString("- phase: one of the phase ids listed below\n")
	b.WriteString("- headline: one short sentence\n")
	b.WriteString("- summary: one or two paragraphs\n")
	b.WriteString("- observations: object mapping each audited checklist id to one sentence\n")
	fmt.Fprintf(&b, "- recommendedServices: 1 to %d distinct service ids listed below, most urgent first\n\n", engine.MaxRecommendations)

	b.WriteString("Phases, least to most mature:\n")
	for _, phase := range models.Phases {
		fmt.Fprintf(&b, "- %s: %s %s\n", phase, phase.Label(), phase.Description())
	}

	b.WriteString("\nServices:\n")
	for _, item := range catalog.Services() {
		fmt.Fprintf(&b, "- %s: %s\n", item.ID, item.Label)
	}

	b.WriteString("\n[AUDIT JSON]\n")
	b.Write(input)
	return b.String(), nil
}
