package skills

const (
	TechnicalProficiency         = "Technical Proficiency"
	ProjectManagement            = "Project Management"
	DataAnalysis                 = "Data Analysis"
	CommunicationCollaboration   = "Communication & Collaboration"
	ProblemSolving               = "Problem-Solving"
	LeadershipInitiative         = "Leadership & Initiative"
	AdaptabilityFlexibility      = "Adaptability & Flexibility"
	ClientRelationshipManagement = "Client Relationship Management"
	ResearchDevelopment          = "Research & Development"
	IndustryKnowledge            = "Industry-Specific Knowledge"
)

const (
	TCS       = "Tata Consultancy Services (TCS)"
	Infosys   = "Infosys"
	Wipro     = "Wipro"
	Accenture = "Accenture"
	Zoho      = "Zoho"
)

// DefaultCategories returns a fresh copy of the built-in category order.
func DefaultCategories() Categories {
	return Categories{
		TechnicalProficiency,
		ProjectManagement,
		DataAnalysis,
		CommunicationCollaboration,
		ProblemSolving,
		LeadershipInitiative,
		AdaptabilityFlexibility,
		ClientRelationshipManagement,
		ResearchDevelopment,
		IndustryKnowledge,
	}
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		TechnicalProficiency:         7,
		ProjectManagement:            5,
		DataAnalysis:                 6,
		CommunicationCollaboration:   6,
		ProblemSolving:               7,
		LeadershipInitiative:         5,
		AdaptabilityFlexibility:      6,
		ClientRelationshipManagement: 6,
		ResearchDevelopment:          5,
		IndustryKnowledge:            5,
	}
}

// DefaultSelectedCompanies is the company subset matched when nothing is configured.
func DefaultSelectedCompanies() []string {
	return []string{TCS, Infosys}
}

func DefaultCatalogue() *Catalogue {
	return &Catalogue{Items: []*Company{
		{Name: TCS, Roles: []*Role{
			{Name: "Software Engineer", Requirements: Vector{10, 6, 7, 7, 9, 5, 8, 6, 6, 7}},
			{Name: "IT Analyst", Requirements: Vector{9, 7, 8, 9, 8, 7, 7, 8, 5, 8}},
		}},
		{Name: Infosys, Roles: []*Role{
			{Name: "Software Developer", Requirements: Vector{10, 6, 7, 8, 9, 6, 8, 7, 7, 7}},
			{Name: "Systems Engineer", Requirements: Vector{9, 7, 6, 8, 8, 6, 7, 7, 6, 7}},
		}},
		{Name: Wipro, Roles: []*Role{
			{Name: "Software Engineer", Requirements: Vector{10, 5, 7, 7, 9, 6, 8, 6, 5, 7}},
			{Name: "Data Scientist", Requirements: Vector{10, 6, 10, 8, 9, 7, 7, 6, 8, 7}},
		}},
		{Name: Accenture, Roles: []*Role{
			{Name: "Technology Consultant", Requirements: Vector{8, 7, 6, 9, 8, 7, 8, 9, 7, 8}},
			{Name: "Software Engineer", Requirements: Vector{10, 6, 7, 7, 9, 6, 8, 6, 5, 7}},
		}},
		{Name: Zoho, Roles: []*Role{
			{Name: "Software Developer", Requirements: Vector{10, 6, 7, 7, 9, 6, 8, 6, 6, 7}},
			{Name: "Product Engineer", Requirements: Vector{10, 6, 7, 8, 9, 7, 8, 6, 8, 7}},
		}},
	}}
}
