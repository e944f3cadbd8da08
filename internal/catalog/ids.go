// internal/catalog/ids.go
package catalog

// Category groups checklist items.
type Category string

const (
	CategoryVisual    Category = "visual"
	CategoryStrategy  Category = "strategy"
	CategoryRisk      Category = "risk"
	CategoryObjective Category = "objective"
	CategoryService   Category = "service"
)

// VisualItem identifies an entry of the visual checklist.
type VisualItem string

const (
	VisualBrandbook   VisualItem = "v_brandbook"
	VisualLogoPrimary VisualItem = "v_logo_primary"
	VisualLogoVector  VisualItem = "v_logo_vector"
	VisualScalability VisualItem = "v_scalability"
	VisualTypography  VisualItem = "v_typography"
	VisualPalette     VisualItem = "v_palette"
	VisualLogoUnique  VisualItem = "v_logo_unique"
	VisualFlat        VisualItem = "v_flat"
)

// StrategyItem identifies an entry of the strategy checklist.
type StrategyItem string

const (
	StrategyMission     StrategyItem = "s_mission"
	StrategyValues      StrategyItem = "s_values"
	StrategyAudience    StrategyItem = "s_audience"
	StrategyValueProp   StrategyItem = "s_value_prop"
	StrategyTone        StrategyItem = "s_tone"
	StrategyArchetype   StrategyItem = "s_archetype"
	StrategyNamingCheck StrategyItem = "s_naming_check"
	StrategyCompetitors StrategyItem = "s_competitors"
	StrategyRefs        StrategyItem = "s_refs"
)

// RiskTag identifies a declared project risk.
type RiskTag string

const (
	RiskBudget       RiskTag = "r_budget"
	RiskExpectations RiskTag = "r_expectations"
	RiskIndecision   RiskTag = "r_indecision"
	RiskNoHistory    RiskTag = "r_no_history"
	RiskCompetition  RiskTag = "r_competition"
	RiskDeadline     RiskTag = "r_deadline"
	RiskInconsistent RiskTag = "r_inconsistent"

	// RiskNone is the "no risks" sentinel. It never coexists with other tags.
	RiskNone RiskTag = "r_none"
)

// ObjectiveTag identifies a declared business objective.
type ObjectiveTag string

const (
	ObjectiveSales      ObjectiveTag = "o_sales"
	ObjectiveLeads      ObjectiveTag = "o_leads"
	ObjectiveAwareness  ObjectiveTag = "o_awareness"
	ObjectiveLaunch     ObjectiveTag = "o_launch"
	ObjectiveRebrand    ObjectiveTag = "o_rebrand"
	ObjectiveReputation ObjectiveTag = "o_reputation"
	ObjectiveMarket     ObjectiveTag = "o_market"
)

// ServiceTag identifies an agency service that can be recommended or proposed.
type ServiceTag string

const (
	ServiceIdentity   ServiceTag = "srv_identity"
	ServiceStrategy   ServiceTag = "srv_strategy"
	ServiceWeb        ServiceTag = "srv_web"
	ServiceSocial     ServiceTag = "srv_social"
	ServiceAds        ServiceTag = "srv_ads"
	ServiceConsulting ServiceTag = "srv_consulting"
	ServiceContent    ServiceTag = "srv_content"
	ServiceAI         ServiceTag = "srv_ai"
)
