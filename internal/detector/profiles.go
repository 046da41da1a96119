package detector

// DefaultProfiles returns the built-in business type profiles. Callers
// get a fresh slice each time so one caller's edits cannot leak into
// another's.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Type:      "law_firm",
			Keywords:  []string{"attorney", "lawyer", "law firm", "legal", "litigation", "counsel"},
			Signals:   []string{"practice area", "paralegal", "bar association", "esq"},
			Taxonomy:  "practice-areas",
			PageNames: []string{"Home", "Practice Areas", "Attorneys", "Results", "Contact"},
		},
		{
			Type:      "medical_practice",
			Keywords:  []string{"doctor", "physician", "medical", "clinic", "patient", "health"},
			Signals:   []string{"appointment", "insurance accepted", "md", "telehealth"},
			Taxonomy:  "services",
			PageNames: []string{"Home", "Services", "Providers", "Patients", "Contact"},
		},
		{
			Type:      "dental_practice",
			Keywords:  []string{"dentist", "dental", "orthodontic", "teeth", "oral"},
			Signals:   []string{"smile", "whitening", "hygienist", "dds"},
			Taxonomy:  "services",
			PageNames: []string{"Home", "Services", "Our Team", "New Patients", "Contact"},
		},
		{
			Type:      "accounting_firm",
			Keywords:  []string{"accounting", "accountant", "cpa", "tax", "bookkeeping", "audit"},
			Signals:   []string{"irs", "quickbooks", "payroll", "tax return"},
			Taxonomy:  "services",
			PageNames: []string{"Home", "Services", "About", "Resources", "Contact"},
		},
		{
			Type:      "real_estate",
			Keywords:  []string{"real estate", "realtor", "property", "homes for sale", "listing"},
			Signals:   []string{"mls", "open house", "mortgage", "broker"},
			Taxonomy:  "listings",
			PageNames: []string{"Home", "Listings", "Buyers", "Sellers", "About", "Contact"},
		},
		{
			Type:      "consulting",
			Keywords:  []string{"consulting", "consultant", "advisory", "strategy"},
			Signals:   []string{"engagement", "transformation", "stakeholder"},
			Taxonomy:  "services",
			PageNames: []string{"Home", "Services", "Case Studies", "About", "Contact"},
		},
		{
			Type:      "restaurant",
			Keywords:  []string{"restaurant", "menu", "dining", "cuisine", "chef"},
			Signals:   []string{"reservation", "takeout", "delivery", "happy hour"},
			Taxonomy:  "menu",
			PageNames: []string{"Home", "Menu", "About", "Reservations", "Contact"},
		},
		{
			Type:      "salon_spa",
			Keywords:  []string{"salon", "spa", "hair", "beauty", "massage", "nails"},
			Signals:   []string{"stylist", "facial", "manicure", "book online"},
			Taxonomy:  "services",
			PageNames: []string{"Home", "Services", "Pricing", "Gallery", "Book", "Contact"},
		},
		{
			Type:      "fitness",
			Keywords:  []string{"gym", "fitness", "training", "workout", "yoga", "crossfit"},
			Signals:   []string{"membership", "class schedule", "personal trainer"},
			Taxonomy:  "programs",
			PageNames: []string{"Home", "Programs", "Schedule", "Membership", "Contact"},
		},
		{
			Type:      "auto_service",
			Keywords:  []string{"auto repair", "mechanic", "automotive", "car service", "brake", "transmission"},
			Signals:   []string{"oil change", "alignment", "estimate", "towing"},
			Taxonomy:  "services",
			PageNames: []string{"Home", "Services", "About", "Coupons", "Contact"},
		},
		{
			Type:      "construction",
			Keywords:  []string{"construction", "contractor", "remodeling", "renovation", "roofing"},
			Signals:   []string{"licensed and insured", "free estimate", "general contractor"},
			Taxonomy:  "services",
			PageNames: []string{"Home", "Services", "Projects", "About", "Contact"},
		},
		{
			Type:      "education",
			Keywords:  []string{"school", "education", "tutoring", "academy", "learning", "students"},
			Signals:   []string{"curriculum", "enrollment", "faculty", "campus"},
			Taxonomy:  "programs",
			PageNames: []string{"Home", "Programs", "Admissions", "About", "Contact"},
		},
		{
			Type:      "technology",
			Keywords:  []string{"software", "technology", "development", "app", "cloud", "saas"},
			Signals:   []string{"api", "platform", "integration", "demo"},
			Taxonomy:  "solutions",
			PageNames: []string{"Home", "Solutions", "Pricing", "About", "Contact"},
		},
	}
}
