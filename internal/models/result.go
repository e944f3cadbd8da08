// internal/models/result.go
package models

import "brand-audit/internal/catalog"

// Phase is the maturity classification of a brand.
type Phase string

const (
	PhaseBrandingFirst Phase = "BRANDING_FIRST"
	PhaseStrategyFirst Phase = "STRATEGY_FIRST"
	PhaseReadyForWeb   Phase = "READY_FOR_WEB"
	PhaseReadyToScale  Phase = "READY_TO_SCALE"
)

// Phases lists every phase in ascending maturity.
var Phases = []Phase{PhaseBrandingFirst, PhaseStrategyFirst, PhaseReadyForWeb, PhaseReadyToScale}

type phaseInfo struct {
	rank        int
	label       string
	description string
}

var phaseTable = map[Phase]phaseInfo{
	PhaseBrandingFirst: {0, "Phase 1: Branding from Scratch", "Critical visual assets are missing. The foundation must be built before scaling."},
	PhaseStrategyFirst: {1, "Phase 2: Rebranding", "Visuals exist, but the core message is not defined. Strategic alignment is required."},
	PhaseReadyForWeb:   {2, "Phase 3: Web and Digital", "The foundations are solid. The brand is ready for digital implementation and development."},
	PhaseReadyToScale:  {3, "Phase 4: Social and Content", "Systems are ready. The focus should shift to growth, advertising and automation."},
}

// Rank orders phases by maturity. Unknown phases rank -1.
func (p Phase) Rank() int {
	if info, ok := phaseTable[p]; ok {
		return info.rank
	}
	return -1
}

func (p Phase) Label() string {
	if info, ok := phaseTable[p]; ok {
		return info.label
	}
	return string(p)
}

func (p Phase) Description() string {
	return phaseTable[p].description
}

// Valid reports whether p is one of the four phases.
func (p Phase) Valid() bool {
	_, ok := phaseTable[p]
	return ok
}

// AnalysisResult is the diagnosis returned for one audit.
type AnalysisResult struct {
	Score               int                  `json:"score" yaml:"score"`
	Phase               Phase                `json:"phase" yaml:"phase"`
	Headline            string               `json:"headline" yaml:"headline"`
	Summary             string               `json:"summary" yaml:"summary"`
	Observations        map[string]string    `json:"observations" yaml:"observations"`
	RecommendedServices []catalog.ServiceTag `json:"recommendedServices" yaml:"recommendedServices"`
}
