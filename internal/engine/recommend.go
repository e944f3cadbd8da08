// internal/engine/recommend.go
package engine

import (
	"brand-audit/internal/catalog"
	"brand-audit/internal/models"
)

// MaxRecommendations bounds the roadmap length.
const MaxRecommendations = 5

// growthScore is the score above which growth objectives also pull in AI automation.
const growthScore = 60

var phaseDefaults = map[models.Phase][]catalog.ServiceTag{
	models.PhaseBrandingFirst: {catalog.ServiceIdentity, catalog.ServiceStrategy},
	models.PhaseStrategyFirst: {catalog.ServiceStrategy, catalog.ServiceConsulting},
	models.PhaseReadyForWeb:   {catalog.ServiceWeb, catalog.ServiceContent},
	models.PhaseReadyToScale:  {catalog.ServiceSocial, catalog.ServiceAds, catalog.ServiceAI},
}

var riskServices = map[catalog.RiskTag]catalog.ServiceTag{
	catalog.RiskInconsistent: catalog.ServiceIdentity,
	catalog.RiskNoHistory:    catalog.ServiceStrategy,
	catalog.RiskCompetition:  catalog.ServiceConsulting,
	catalog.RiskExpectations: catalog.ServiceConsulting,
	catalog.RiskIndecision:   catalog.ServiceConsulting,
}

// serviceSet is an insertion-ordered set; the first insertion wins.
type serviceSet struct {
	order []catalog.ServiceTag
	seen  map[catalog.ServiceTag]bool
}

func newServiceSet() *serviceSet {
	return &serviceSet{seen: make(map[catalog.ServiceTag]bool)}
}

func (s *serviceSet) add(tags ...catalog.ServiceTag) {
	for _, tag := range tags {
		if s.seen[tag] {
			continue
		}
		s.seen[tag] = true
		s.order = append(s.order, tag)
	}
}

func (s *serviceSet) remove(tags ...catalog.ServiceTag) {
	for _, tag := range tags {
		if !s.seen[tag] {
			continue
		}
		delete(s.seen, tag)
		kept := s.order[:0]
		for _, t := range s.order {
			if t != tag {
				kept = append(kept, t)
			}
		}
		s.order = kept
	}
}

func (s *serviceSet) list(limit int) []catalog.ServiceTag {
	n := len(s.order)
	if n > limit {
		n = limit
	}
	out := make([]catalog.ServiceTag, n)
	copy(out, s.order[:n])
	return out
}

// Recommend builds the ordered service roadmap for a classified record.
// The result has between 1 and MaxRecommendations distinct services.
func Recommend(record *models.AuditRecord, phase models.Phase, score int) []catalog.ServiceTag {
	if record == nil {
		record = &models.AuditRecord{}
	}
	set := newServiceSet()
	set.add(phaseDefaults[phase]...)

	addGapServices(set, record)
	addObjectiveServices(set, record, phase, score)

	for _, risk := range record.DeclaredRisks() {
		if tag, ok := riskServices[risk]; ok {
			set.add(tag)
		}
	}

	if record.HasRisk(catalog.RiskBudget) {
		set.remove(catalog.ServiceAds, catalog.ServiceConsulting, catalog.ServiceAI)
		set.add(catalog.ServiceContent)
	}

	if len(set.order) == 0 {
		set.add(catalog.ServiceIdentity)
	}
	return set.list(MaxRecommendations)
}

func addGapServices(set *serviceSet, record *models.AuditRecord) {
	if record.Visual(catalog.VisualLogoPrimary) != models.StatusYes ||
		record.Visual(catalog.VisualLogoVector) != models.StatusYes ||
		record.Visual(catalog.VisualBrandbook) != models.StatusYes {
		set.add(catalog.ServiceIdentity)
	}
	if record.Strategy(catalog.StrategyAudience) != models.StatusYes ||
		record.Strategy(catalog.StrategyValueProp) != models.StatusYes {
		set.add(catalog.ServiceStrategy)
	}
	if record.Strategy(catalog.StrategyCompetitors) == models.StatusNo {
		set.add(catalog.ServiceConsulting)
	}
}

func addObjectiveServices(set *serviceSet, record *models.AuditRecord, phase models.Phase, score int) {
	// Web work is premature while the identity itself is missing.
	webAllowed := phase != models.PhaseBrandingFirst

	for _, objective := range record.Objectives {
		switch objective {
		case catalog.ObjectiveSales, catalog.ObjectiveMarket:
			set.add(catalog.ServiceAds)
			if score > growthScore {
				set.add(catalog.ServiceAI)
			}
		case catalog.ObjectiveLeads:
			if webAllowed {
				set.add(catalog.ServiceWeb)
			}
			set.add(catalog.ServiceAds)
		case catalog.ObjectiveAwareness:
			set.add(catalog.ServiceSocial, catalog.ServiceContent)
		case catalog.ObjectiveLaunch:
			if webAllowed {
				set.add(catalog.ServiceWeb)
			}
		case catalog.ObjectiveRebrand:
			set.add(catalog.ServiceIdentity, catalog.ServiceStrategy)
		case catalog.ObjectiveReputation:
			set.add(catalog.ServiceContent, catalog.ServiceSocial)
		}
	}

	if webAllowed && record.HasProposedService(catalog.ServiceWeb) {
		set.add(catalog.ServiceWeb)
	}
}
