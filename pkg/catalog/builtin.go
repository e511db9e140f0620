package catalog

import "github.com/aretw0/incorporate/pkg/domain"

// Default returns the built-in incorporation catalog.
func Default() *Catalog {
	return MustNew(DefaultDefinition())
}

// DefaultDefinition returns a fresh copy of the built-in catalog definition.
func DefaultDefinition() Definition {
	return Definition{
		Seed: []domain.Question{
			single("business_stage", "Where are you in your business journey?", "",
				opt("idea", "I have an idea"),
				opt("launching", "I am about to launch"),
				opt("operating", "I am already operating"),
			),
			single("timeline", "When would you like to get started?", "",
				opt("asap", "As soon as possible"),
				opt("one_to_three_months", "In 1-3 months"),
				opt("exploring", "Just exploring"),
			),
			single("preferred_contact", "How should our advisors reach you?", "",
				opt("email", "Email"),
				opt("phone", "Phone call"),
				opt("whatsapp", "WhatsApp"),
			),
		},
		Branches: Branches{
			CompanyStatus: single(domain.CompanyStatusID,
				"Are you setting up a new company, or do you already have one?",
				"This helps us tailor the next questions to you.",
				opt("new", "I want to set up a new company"),
				opt("existing", "I already have a company"),
			),
			IncorporationCountry: single(domain.IncorporationCountryID,
				"Where is your existing company incorporated?", "",
				opt("uae", "In the UAE"),
				opt("other", "In another country"),
			),
		},
		Flows: map[domain.Flow]FlowDefinition{
			domain.FlowNew:           newCompanyFlow(),
			domain.FlowExistingUAE:   existingUAEFlow(),
			domain.FlowExistingOther: existingOtherFlow(),
		},
	}
}

func newCompanyFlow() FlowDefinition {
	return FlowDefinition{
		Questions: []domain.Question{
			single("business_activity", "What will your business mainly do?", "Pick the closest match.",
				opt("trading", "General trading"),
				opt("consulting", "Consulting and professional services"),
				opt("technology", "Technology and software"),
				opt("ecommerce", "E-commerce"),
				opt("other", "Something else"),
			),
			single("jurisdiction", "Where would you like to incorporate?", "",
				opt("mainland", "Mainland"),
				opt("free_zone", "Free zone"),
				opt("offshore", "Offshore"),
				opt("unsure", "Not sure yet"),
			),
			single("shareholders", "How many shareholders will the company have?", "",
				opt("one", "Just me"),
				opt("two_to_five", "2 to 5"),
				opt("more_than_five", "More than 5"),
			),
			single("visas", "How many residence visas will you need?", "Include yourself, partners and employees.",
				opt("none", "None"),
				opt("one_to_three", "1 to 3"),
				opt("four_plus", "4 or more"),
			),
			single("physical_office", "Do you need a physical office?", "",
				opt("yes", "Yes, a dedicated office"),
				opt("flexi_desk", "A flexi desk is enough"),
				opt("no", "No"),
			),
			single("annual_revenue", "What annual revenue do you expect in the first year?", "",
				opt("under_1m", "Under AED 1M"),
				opt("1m_to_5m", "AED 1M to 5M"),
				opt("over_5m", "Over AED 5M"),
			),
			multi("support_services", "Which services would you like help with?", "Select all that apply.",
				opt("bank_account", "Corporate bank account"),
				opt("accounting", "Accounting and bookkeeping"),
				opt("vat_registration", "VAT registration"),
				opt("visa_processing", "Visa processing"),
				opt(domain.SentinelAll, "All of the above"),
			),
		},
		Services: []domain.Service{
			{ID: "company_formation", Title: "Company formation", Description: "End-to-end incorporation in your chosen jurisdiction."},
			{ID: "trade_license", Title: "Trade license", Description: "License application for your business activity."},
			{ID: "bank_account_opening", Title: "Corporate bank account", Description: "Introductions and paperwork with partner banks."},
			{ID: "visa_services", Title: "Visa services", Description: "Investor and employee residence visas."},
			{ID: "office_solutions", Title: "Office solutions", Description: "Flexi desks and dedicated offices."},
		},
	}
}

func existingUAEFlow() FlowDefinition {
	return FlowDefinition{
		Questions: []domain.Question{
			single("uae_license_type", "What type of license does your company hold?", "",
				opt("mainland", "Mainland"),
				opt("free_zone", "Free zone"),
				opt("offshore", "Offshore"),
			),
			single("company_age", "How long has the company been operating?", "",
				opt("under_1y", "Less than a year"),
				opt("1_to_3y", "1 to 3 years"),
				opt("over_3y", "More than 3 years"),
			),
			single("employee_count", "How many employees do you have?", "",
				opt("solo", "Just me"),
				opt("two_to_ten", "2 to 10"),
				opt("over_ten", "More than 10"),
			),
			single("uae_annual_revenue", "What was your revenue over the last 12 months?", "",
				opt("under_375k", "Under AED 375K"),
				opt("375k_to_3m", "AED 375K to 3M"),
				opt("over_3m", "Over AED 3M"),
			),
			multi("compliance_needs", "Which compliance areas need attention?", "Select all that apply.",
				opt("corporate_tax", "Corporate tax registration"),
				opt("vat_filing", "VAT filing"),
				opt("audit", "Audited financials"),
				opt("esr", "Economic substance reporting"),
				opt(domain.SentinelAll, "All of the above"),
			),
			multi("growth_services", "What else can we help you with?", "Select all that apply.",
				opt("bank_account", "Additional bank account"),
				opt("license_renewal", "License renewal"),
				opt("activity_change", "Adding business activities"),
				opt("visa_processing", "Visa processing"),
				opt(domain.SentinelAll, "All of the above"),
			),
		},
		Services: []domain.Service{
			{ID: "corporate_tax", Title: "Corporate tax", Description: "Registration and annual returns."},
			{ID: "accounting", Title: "Accounting and VAT", Description: "Bookkeeping, VAT filing and audit support."},
			{ID: "pro_services", Title: "PRO services", Description: "License renewals and government liaison."},
			{ID: "visa_services", Title: "Visa services", Description: "New and renewed residence visas."},
		},
	}
}

func existingOtherFlow() FlowDefinition {
	return FlowDefinition{
		Questions: []domain.Question{
			single("home_country", "Where is your company currently incorporated?", "",
				opt("uk", "United Kingdom"),
				opt("usa", "United States"),
				opt("india", "India"),
				opt("eu", "European Union"),
				opt("other", "Elsewhere"),
			),
			single("expansion_goal", "What are you looking to do in the UAE?", "",
				opt("branch", "Open a branch"),
				opt("subsidiary", "Set up a subsidiary"),
				opt("relocation", "Relocate the company"),
			),
			single("uae_presence", "Will you need a physical presence in the UAE?", "",
				opt("office", "Yes, an office"),
				opt("virtual", "A virtual presence is enough"),
				opt("unsure", "Not sure yet"),
			),
			single("relocating_staff", "How many people will relocate to the UAE?", "",
				opt("none", "Nobody"),
				opt("one_to_three", "1 to 3"),
				opt("four_plus", "4 or more"),
			),
			single("group_revenue", "What is your group's annual revenue?", "",
				opt("under_1m", "Under USD 1M"),
				opt("1m_to_10m", "USD 1M to 10M"),
				opt("over_10m", "Over USD 10M"),
			),
			multi("expansion_services", "Which services would you like help with?", "Select all that apply.",
				opt("bank_account", "UAE bank account"),
				opt("document_attestation", "Document attestation"),
				opt("tax_residency", "Tax residency certificate"),
				opt("visa_processing", "Visa processing"),
				opt(domain.SentinelAll, "All of the above"),
			),
		},
		Services: []domain.Service{
			{ID: "branch_setup", Title: "Branch or subsidiary setup", Description: "Structuring and registration of your UAE entity."},
			{ID: "attestation", Title: "Document attestation", Description: "Legalisation of parent company documents."},
			{ID: "tax_residency", Title: "Tax residency", Description: "Certificates and treaty planning."},
			{ID: "bank_account_opening", Title: "Corporate bank account", Description: "Opening a UAE account for the new entity."},
		},
	}
}

func opt(id, text string) domain.Option {
	return domain.Option{ID: id, Text: text}
}

func single(id, text, subtext string, options ...domain.Option) domain.Question {
	return domain.Question{ID: id, Text: text, Subtext: subtext, Options: options}
}

func multi(id, text, subtext string, options ...domain.Option) domain.Question {
	q := single(id, text, subtext, options...)
	q.MultiSelect = true
	return q
}
