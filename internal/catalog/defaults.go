package catalog

// DefaultProviderName is the seller named in justifications and recommendations.
const DefaultProviderName = "iNube Solutions"

// Default returns the built-in catalog. Each call returns a fresh copy.
func Default() *Catalog {
	c := &Catalog{
		ProviderName: DefaultProviderName,
		Services: []ServiceCatalogEntry{
			{ID: "policy_administration", DisplayName: "Policy Administration", Description: "Modular Policy Administration System for Life, Health, General insurance"},
			{ID: "claims_management", DisplayName: "Claims Management", Description: "AI-powered claims processing with fraud detection"},
			{ID: "digital_distribution", DisplayName: "Digital Distribution", Description: "Digital onboarding and distribution platforms"},
			{ID: "ai_analytics", DisplayName: "AI Analytics", Description: "AI and predictive analytics for insurance operations"},
			{ID: "field_operations", DisplayName: "Field Operations", Description: "Mobility suite for field operations and inspections"},
			{ID: "embedded_insurance", DisplayName: "Embedded Insurance", Description: "API-first platforms for embedded insurance partnerships"},
		},
		PainPoints: []PainPointCategory{
			{
				ID:                  "data_silos",
				Description:         "Data spread across disconnected systems leading to inaccurate reporting",
				Keywords:            []string{"data silo", "disconnected systems", "fragmented data", "siloed data", "data integration"},
				RecommendedServices: []string{"ai_analytics", "policy_administration"},
				SolutionDescription: "Unify policy and claims data on a single platform with analytics on top",
				ReferenceURLs: []string{
					"https://www.mckinsey.com/capabilities/quantumblack/our-insights/why-data-strategy-matters",
					"https://hbr.org/2023/05/how-to-break-down-data-silos",
				},
			},
			{
				ID:                  "manual_processes",
				Description:         "Reliance on manual, cross-departmental workflows creating bottlenecks",
				Keywords:            []string{"manual process", "paper-based", "paperwork", "manual workflow", "spreadsheet"},
				RecommendedServices: []string{"claims_management", "field_operations"},
				SolutionDescription: "Automate claims intake and field inspections with mobile workflows",
				ReferenceURLs: []string{
					"https://www.forrester.com/blogs/the-cost-of-manual-processes/",
					"https://www.bain.com/insights/why-digital-transformation-is-still-about-process-reengineering/",
				},
			},
			{
				ID:                  "legacy_systems",
				Description:         "Outdated technology hindering automation and digital transformation",
				Keywords:            []string{"legacy system", "outdated technology", "legacy platform", "mainframe", "modernization"},
				RecommendedServices: []string{"policy_administration", "digital_distribution", "claims_management"},
				SolutionDescription: "Replace core systems with a modular, cloud-ready policy and claims suite",
				ReferenceURLs: []string{
					"https://www.gartner.com/en/articles/the-cost-of-legacy-systems",
					"https://www.accenture.com/us-en/insights/insurance/digital-insurance-platform",
				},
			},
			{
				ID:                  "customer_churn",
				Description:         "High customer acquisition costs and retention challenges",
				Keywords:            []string{"customer churn", "churn", "retention", "customer acquisition", "lapse rate"},
				RecommendedServices: []string{"digital_distribution", "embedded_insurance"},
				SolutionDescription: "Digital onboarding and partner distribution to widen reach and reduce lapses",
				ReferenceURLs: []string{
					"https://hbr.org/2024/01/the-value-of-keeping-the-right-customers",
					"https://www.mckinsey.com/capabilities/growth-marketing-and-sales/our-insights/the-three-cs-of-customer-satisfaction",
				},
			},
			{
				ID:                  "fraud_detection",
				Description:         "Inefficient fraud detection leading to financial losses",
				Keywords:            []string{"fraud", "fraudulent", "claims leakage"},
				RecommendedServices: []string{"claims_management", "ai_analytics"},
				SolutionDescription: "Score claims for fraud risk at intake with predictive models",
				ReferenceURLs: []string{
					"https://www.iii.org/article/background-on-insurance-fraud",
					"https://www.ibm.com/topics/fraud-detection",
				},
			},
			{
				ID:                  "regulatory_compliance",
				Description:         "Difficulty keeping up with changing regulatory requirements",
				Keywords:            []string{"regulatory", "compliance", "regulator", "solvency"},
				RecommendedServices: []string{"policy_administration", "ai_analytics"},
				SolutionDescription: "Configurable product rules and audit-ready reporting",
				ReferenceURLs: []string{
					"https://www.deloitte.com/global/en/industries/financial-services/perspectives/insurance-regulatory-outlook.html",
					"https://www.pwc.com/gx/en/industries/financial-services/insurance/insurance-regulatory-challenges.html",
				},
			},
		},
		ResearchCategories: []KeywordGroup{
			{ID: "business_model", Keywords: []string{"services", "products", "business model", "offering", "solutions", "revenue"}},
			{ID: "technology", Keywords: []string{"technology", "digital", "software", "platform", "automation", "cloud"}},
			{ID: "challenges", Keywords: []string{"challenge", "problem", "issue", "limitation", "gap", "difficulty", "bottleneck"}},
			{ID: "operations", Keywords: []string{"operations", "process", "workflow", "efficiency", "cost", "manual", "legacy"}},
			{ID: "growth", Keywords: []string{"growth", "expansion", "market", "customer", "revenue", "premium", "profit"}},
			{ID: "insurance", Keywords: []string{"insurance", "policy", "claim", "underwriting", "premium", "risk", "coverage"}},
		},
		Signals: Signals{
			Insurance:           []string{"policy", "claim", "underwriting", "premium", "insurance", "risk", "coverage"},
			Technology:          []string{"legacy", "modernization", "digital", "automation", "cloud", "technology", "software"},
			Challenge:           []string{"cost", "efficiency", "manual", "slow", "integration", "compliance", "challenge", "problem"},
			DiscoveryIndicators: []string{"insurance", "assurance", "underwriters", "insurer", "reinsurance"},
			DiscoveryTech:       []string{"digital", "technology", "modernization", "automation", "cloud"},
		},
	}
	c.Normalize()
	return c
}
