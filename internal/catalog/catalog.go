// internal/catalog/catalog.go

// Package catalog holds the static checklist reference data used by the audit
// intake and the diagnosis engine. Everything here is built once at package
// init and never mutated.
package catalog

// ChecklistItem is one entry of a catalog sequence.
type ChecklistItem struct {
	ID          string   `json:"id" yaml:"id"`
	Label       string   `json:"label" yaml:"label"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Category    Category `json:"category" yaml:"category"`
	Critical    bool     `json:"critical,omitempty" yaml:"critical,omitempty"`
}

var visualItems = []ChecklistItem{
	{ID: string(VisualBrandbook), Label: "Brand Manual (Brandbook)", Description: "Master document defining usage rules for the logo, typefaces, colors and tone of voice.", Category: CategoryVisual},
	{ID: string(VisualLogoPrimary), Label: "Primary Logo", Description: "The main version of the visual identity, used in most applications.", Category: CategoryVisual, Critical: true},
	{ID: string(VisualLogoVector), Label: "Vector Logo (AI/SVG)", Description: "Source files (AI, SVG, EPS) that scale the logo without pixelation.", Category: CategoryVisual, Critical: true},
	{ID: string(VisualScalability), Label: "Adaptability (Scales)", Description: "Simplified logo versions for small spaces such as favicons or avatars.", Category: CategoryVisual},
	{ID: string(VisualTypography), Label: "Typographic Hierarchy", Description: "Primary and secondary typefaces with clear hierarchies for headings and body text.", Category: CategoryVisual},
	{ID: string(VisualPalette), Label: "Defined Color Palette", Description: "Exact color definitions (HEX, RGB, CMYK) to stay consistent across media.", Category: CategoryVisual},
	{ID: string(VisualLogoUnique), Label: "Unique Logo (Not a Copy)", Description: "The symbol is original and does not come from stock images or templates.", Category: CategoryVisual},
	{ID: string(VisualFlat), Label: "Modern Style (No Dated Effects)", Description: "Clean flat design without shadows or old 3D effects, optimized for screens.", Category: CategoryVisual},
}

var strategyItems = []ChecklistItem{
	{ID: string(StrategyMission), Label: "Mission / Vision", Description: "The company's reason to exist and its long-term aspiration.", Category: CategoryStrategy},
	{ID: string(StrategyValues), Label: "Brand Values", Description: "Non-negotiable principles guiding the brand's culture and decisions.", Category: CategoryStrategy},
	{ID: string(StrategyAudience), Label: "Target Audience (Buyer Persona)", Description: "A clear definition of the ideal customer, their pains and desires.", Category: CategoryStrategy, Critical: true},
	{ID: string(StrategyValueProp), Label: "Unique Value Proposition", Description: "What makes the brand unique and why customers choose it over others.", Category: CategoryStrategy, Critical: true},
	{ID: string(StrategyTone), Label: "Tone of Voice and Personality", Description: "The personality the brand communicates with (close, authoritative, playful).", Category: CategoryStrategy},
	{ID: string(StrategyArchetype), Label: "Brand Archetype", Description: "The universal character the brand embodies to connect emotionally.", Category: CategoryStrategy},
	{ID: string(StrategyNamingCheck), Label: "Name Free of Registration Conflicts", Description: "The name is legally available and free as a web domain.", Category: CategoryStrategy, Critical: true},
	{ID: string(StrategyCompetitors), Label: "Competitor Analysis", Description: "What other brands in the same space are doing.", Category: CategoryStrategy},
	{ID: string(StrategyRefs), Label: "Clear Visual References", Description: "Moodboards or visual examples defining the aesthetic direction of the project.", Category: CategoryStrategy},
}

var riskItems = []ChecklistItem{
	{ID: string(RiskBudget), Label: "Limited Budget", Category: CategoryRisk},
	{ID: string(RiskExpectations), Label: "Unrealistic Expectations", Category: CategoryRisk},
	{ID: string(RiskIndecision), Label: "Lack of Decision", Category: CategoryRisk},
	{ID: string(RiskNoHistory), Label: "No Brand History", Category: CategoryRisk},
	{ID: string(RiskCompetition), Label: "Aggressive Competition", Category: CategoryRisk},
	{ID: string(RiskDeadline), Label: "Very Short Deadlines", Category: CategoryRisk},
	{ID: string(RiskInconsistent), Label: "Inconsistent Brand", Category: CategoryRisk},
	{ID: string(RiskNone), Label: "None", Category: CategoryRisk},
}

var objectiveItems = []ChecklistItem{
	{ID: string(ObjectiveSales), Label: "Increase Sales", Category: CategoryObjective},
	{ID: string(ObjectiveLeads), Label: "Generate Leads", Category: CategoryObjective},
	{ID: string(ObjectiveAwareness), Label: "Brand Awareness", Category: CategoryObjective},
	{ID: string(ObjectiveLaunch), Label: "Product Launch", Category: CategoryObjective},
	{ID: string(ObjectiveRebrand), Label: "Complete Rebranding", Category: CategoryObjective},
	{ID: string(ObjectiveReputation), Label: "Improve Reputation", Category: CategoryObjective},
	{ID: string(ObjectiveMarket), Label: "Market Expansion", Category: CategoryObjective},
}

var serviceItems = []ChecklistItem{
	{ID: string(ServiceIdentity), Label: "Visual Identity Design", Category: CategoryService},
	{ID: string(ServiceStrategy), Label: "Brand Strategy", Category: CategoryService},
	{ID: string(ServiceWeb), Label: "Web Development", Category: CategoryService},
	{ID: string(ServiceSocial), Label: "Social Media Management", Category: CategoryService},
	{ID: string(ServiceAds), Label: "Digital Advertising (Ads)", Category: CategoryService},
	{ID: string(ServiceConsulting), Label: "Strategic Consulting", Category: CategoryService},
	{ID: string(ServiceContent), Label: "Content Creation", Category: CategoryService},
	{ID: string(ServiceAI), Label: "AI Apps / Automations", Category: CategoryService},
}

var index = buildIndex(visualItems, strategyItems, riskItems, objectiveItems, serviceItems)

func buildIndex(groups ...[]ChecklistItem) map[string]ChecklistItem {
	idx := make(map[string]ChecklistItem)
	for _, group := range groups {
		for _, item := range group {
			idx[item.ID] = item
		}
	}
	return idx
}

func clone(items []ChecklistItem) []ChecklistItem {
	out := make([]ChecklistItem, len(items))
	copy(out, items)
	return out
}

// Visual returns the visual checklist in display order.
func Visual() []ChecklistItem { return clone(visualItems) }

// Strategy returns the strategy checklist in display order.
func Strategy() []ChecklistItem { return clone(strategyItems) }

// Risks returns the risk tags, sentinel last.
func Risks() []ChecklistItem { return clone(riskItems) }

// Objectives returns the objective tags.
func Objectives() []ChecklistItem { return clone(objectiveItems) }

// Services returns the service tags.
func Services() []ChecklistItem { return clone(serviceItems) }

// Lookup finds any catalog item by id.
func Lookup(id string) (ChecklistItem, bool) {
	item, ok := index[id]
	return item, ok
}

// Label returns the display label for id, or the id itself when unknown.
func Label(id string) string {
	if item, ok := index[id]; ok {
		return item.Label
	}
	return id
}

func inCategory(id string, c Category) bool {
	item, ok := index[id]
	return ok && item.Category == c
}

func IsVisual(id VisualItem) bool { return inCategory(string(id), CategoryVisual) }
func IsStrategy(id StrategyItem) bool { return inCategory(string(id), CategoryStrategy) }
func IsRisk(id RiskTag) bool { return inCategory(string(id), CategoryRisk) }
func IsObjective(id ObjectiveTag) bool { return inCategory(string(id), CategoryObjective) }
func IsService(id ServiceTag) bool { return inCategory(string(id), CategoryService) }
func IsCritical(id string) bool { return index[id].Critical }

// VisualIDs returns the visual ids in display order.
func VisualIDs() []VisualItem {
	ids := make([]VisualItem, len(visualItems))
	for i, item := range visualItems {
		ids[i] = VisualItem(item.ID)
	}
	return ids
}

// StrategyIDs returns the strategy ids in display order.
func StrategyIDs() []StrategyItem {
	ids := make([]StrategyItem, len(strategyItems))
	for i, item := range strategyItems {
		ids[i] = StrategyItem(item.ID)
	}
	return ids
}

// ServiceIDs returns the service ids in display order.
func ServiceIDs() []ServiceTag {
	ids := make([]ServiceTag, len(serviceItems))
	for i, item := range serviceItems {
		ids[i] = ServiceTag(item.ID)
	}
	return ids
}

// RiskIDs returns all risk ids including the sentinel.
func RiskIDs() []RiskTag {
	ids := make([]RiskTag, len(riskItems))
	for i, item := range riskItems {
		ids[i] = RiskTag(item.ID)
	}
	return ids
}

// ObjectiveIDs returns the objective ids in display order.
func ObjectiveIDs() []ObjectiveTag {
	ids := make([]ObjectiveTag, len(objectiveItems))
	for i, item := range objectiveItems {
		ids[i] = ObjectiveTag(item.ID)
	}
	return ids
}
