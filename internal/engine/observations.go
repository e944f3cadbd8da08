// internal/engine/observations.go
package engine

import (
	"fmt"

	"brand-audit/internal/catalog"
	"brand-audit/internal/models"
)

// observationText holds the NO, PARTIAL and YES sentences of one item.
type observationText struct {
	no, partial, yes string
}

var observationTable = map[string]observationText{
	string(catalog.VisualBrandbook): {
		no:      "Without a usage manual the brand is exposed to visual inconsistency across every channel.",
		partial: "A usage guide exists but leaves gaps; applications will drift without clearer rules.",
		yes:     "The brand manual sets clear rules for consistent application.",
	},
	string(catalog.VisualLogoPrimary): {
		no:      "CRITICAL: there is no primary logo, so the brand has no recognizable anchor.",
		partial: "The primary logo exists but needs refinement to convey authority.",
		yes:     "The primary logo is defined and ready for use.",
	},
	string(catalog.VisualLogoVector): {
		no:      "CRITICAL: without vector files the brand cannot be printed or scaled professionally.",
		partial: "Only some logo versions exist in vector form; large formats remain at risk.",
		yes:     "Vector masters are available for print and large formats.",
	},
	string(catalog.VisualScalability): {
		no:      "The logo loses legibility at small sizes such as favicons and app icons.",
		partial: "The logo works at most sizes but breaks down in the smallest applications.",
		yes:     "The logo stays legible from favicon to billboard.",
	},
	string(catalog.VisualTypography): {
		no:      "No typefaces are defined, which makes every piece look different.",
		partial: "Typefaces are chosen but hierarchy and usage rules are incomplete.",
		yes:     "Typography is defined with a clear hierarchy.",
	},
	string(catalog.VisualPalette): {
		no:      "There is no color palette, so the brand has no chromatic identity.",
		partial: "Main colors exist but codes or secondary tones are missing.",
		yes:     "The color palette is documented with exact codes.",
	},
	string(catalog.VisualLogoUnique): {
		no:      "The logo is generic and hard to tell apart from competitors.",
		partial: "The logo is partly distinctive but shares clichés of its sector.",
		yes:     "The logo is distinctive within its market.",
	},
	string(catalog.VisualFlat): {
		no:      "The logo relies on dated shadows or 3D effects that look poor on screens.",
		partial: "The style is partly modernized but still carries dated effects.",
		yes:     "The design is clean, flat and optimized for screens.",
	},
	string(catalog.StrategyMission): {
		no:      "The mission is not written down, so decisions lack a shared purpose.",
		partial: "The mission is sketched but not yet sharp enough to guide decisions.",
		yes:     "The mission is clear and guides decisions.",
	},
	string(catalog.StrategyValues): {
		no:      "Brand values are undefined, which leaves culture and tone to chance.",
		partial: "Some values are named but they are not applied consistently.",
		yes:     "Brand values are defined and lived.",
	},
	string(catalog.StrategyAudience): {
		no:      "CRITICAL: without a defined target audience any advertising investment will be inefficient.",
		partial: "The audience is described broadly; segments and needs need more precision.",
		yes:     "The target audience is well defined.",
	},
	string(catalog.StrategyValueProp): {
		no:      "CRITICAL: there is no clear reason for customers to choose this brand.",
		partial: "The value proposition exists but is not differentiated enough.",
		yes:     "The value proposition is clear and differentiated.",
	},
	string(catalog.StrategyTone): {
		no:      "There is no tone of voice, so communication sounds different in every channel.",
		partial: "The tone is intuitive but not documented for the team.",
		yes:     "The tone of voice is documented and consistent.",
	},
	string(catalog.StrategyArchetype): {
		no:      "No brand archetype is defined to shape the personality.",
		partial: "The personality is hinted at but not formalized.",
		yes:     "The brand personality is defined through a clear archetype.",
	},
	string(catalog.StrategyNamingCheck): {
		no:      "CRITICAL: the name has not been checked for availability or trademark conflicts.",
		partial: "The name was partly checked; registration or domains are still open.",
		yes:     "The name is verified and protected.",
	},
	string(catalog.StrategyCompetitors): {
		no:      "Competitors have not been analysed, so positioning is guesswork.",
		partial: "Main competitors are known but not analysed in depth.",
		yes:     "The competitive landscape is mapped.",
	},
	string(catalog.StrategyRefs): {
		no:      "There are no visual or strategic references to align expectations.",
		partial: "Some references exist but they are not curated.",
		yes:     "References are curated and shared.",
	},
}

func observationFor(id string, status models.AssetStatus) string {
	text, ok := observationTable[id]
	if !ok {
		return fmt.Sprintf("%s: status recorded as %s.", catalog.Label(id), status.Normalize())
	}
	switch status.Normalize() {
	case models.StatusYes:
		return text.yes
	case models.StatusPartial:
		return text.partial
	default:
		return text.no
	}
}

// Observations returns one sentence per known checklist id present in the
// visual or strategy audit.
func Observations(record *models.AuditRecord) map[string]string {
	out := make(map[string]string)
	if record == nil {
		return out
	}
	for id, status := range record.VisualAudit {
		if catalog.IsVisual(id) {
			out[string(id)] = observationFor(string(id), status)
		}
	}
	for id, status := range record.StrategyAudit {
		if catalog.IsStrategy(id) {
			out[string(id)] = observationFor(string(id), status)
		}
	}
	return out
}
