package template

// inclusion decides how a template feature is preselected
type inclusion int

const (
	// always: required and selected
	always inclusion = iota
	// beyondMVP: required and selected together, only above MVP
	beyondMVP
	// optional: add-on scope the client opts into
	optional
)

type featureDef struct {
	desc     string
	detail   string
	fraction string
	include  inclusion
}

type sectionDef struct {
	title     string
	category  string
	baseHours [3]int64
	rate      int64
	features  []featureDef
}

// Section keys, usable with BaseHours
const (
	SectionPreliminary    = "preliminary"
	SectionUXUI           = "ux-ui"
	SectionFrontend       = "frontend"
	SectionBackend        = "backend"
	SectionMobile         = "mobile"
	SectionMarketplace    = "marketplace"
	SectionAI             = "ai"
	SectionInfrastructure = "infrastructure"
	SectionSecurity       = "security"
	SectionDocumentation  = "documentation"
	SectionMaintenance    = "maintenance"
)

var catalog = map[string]sectionDef{
	SectionPreliminary: {
		title:     "PRELIMINARY STUDY & PLANNING",
		category:  "Project Analysis",
		baseHours: [3]int64{20, 40, 60},
		rate:      100,
		features: []featureDef{
			{"Requirements Gathering", "Stakeholder interviews, user stories, functional requirements", "0.4", always},
			{"Technical Feasibility Study", "Architecture planning, technology stack selection", "0.3", always},
			{"Project Roadmap", "Milestones, timeline, delivery schedule", "0.3", always},
		},
	},
	SectionUXUI: {
		title:     "UX/UI DESIGN",
		category:  "User Experience Design",
		baseHours: [3]int64{40, 80, 120},
		rate:      90,
		features: []featureDef{
			{"User Research & Personas", "User interviews, persona creation, journey mapping", "0.2", beyondMVP},
			{"Wireframing", "Low-fidelity wireframes for all key screens", "0.3", always},
			{"High-Fidelity UI Design", "Complete visual design, design system, components", "0.5", always},
		},
	},
	SectionFrontend: {
		title:     "FRONTEND DEVELOPMENT",
		category:  "Web Application (React)",
		baseHours: [3]int64{120, 240, 400},
		rate:      85,
		features: []featureDef{
			{"Authentication System", "Login, registration, password reset, social auth", "0.15", always},
			{"Core User Interface", "Dashboard, navigation, responsive layouts", "0.4", always},
			{"Data Management & Forms", "CRUD operations, form validation, data tables", "0.25", always},
			{"Advanced Features", "Search, filtering, notifications, real-time updates", "0.2", beyondMVP},
		},
	},
	SectionBackend: {
		title:     "BACKEND & API DEVELOPMENT",
		category:  "Server & Database",
		baseHours: [3]int64{100, 200, 350},
		rate:      95,
		features: []featureDef{
			{"REST API Development", "RESTful endpoints, authentication, authorization", "0.4", always},
			{"Database Design & Implementation", "Schema design, migrations, optimization", "0.3", always},
			{"Business Logic & Services", "Core business rules, data processing, workflows", "0.3", always},
		},
	},
	SectionMobile: {
		title:     "MOBILE APPLICATION DEVELOPMENT",
		category:  "Mobile App (React Native)",
		baseHours: [3]int64{150, 280, 450},
		rate:      90,
		features: []featureDef{
			{"Authentication & Onboarding", "Login, registration, biometric auth, tutorials", "0.15", always},
			{"Core Mobile Features", "Navigation, screens, mobile-optimized UI", "0.5", always},
			{"Native Features", "Camera, geolocation, push notifications, offline mode", "0.25", beyondMVP},
			{"App Store Deployment", "iOS and Android app store submission", "0.1", optional},
		},
	},
	SectionMarketplace: {
		title:     "MARKETPLACE FEATURES",
		category:  "Marketplace Core",
		baseHours: [3]int64{80, 150, 250},
		rate:      100,
		features: []featureDef{
			{"Multi-User System", "Vendor/buyer roles, user profiles, verification", "0.3", always},
			{"Product/Service Listings", "Listing creation, search, filters, categories", "0.4", always},
			{"Payment Integration", "Payment gateway, escrow, commission handling", "0.3", always},
		},
	},
	SectionAI: {
		title:     "AI & MACHINE LEARNING",
		category:  "AI Features",
		baseHours: [3]int64{60, 120, 200},
		rate:      120,
		features: []featureDef{
			{"AI Model Integration", "LLM integration, API setup, prompt engineering", "0.4", always},
			{"Intelligent Features", "Recommendations, predictions, automated analysis", "0.4", always},
			{"Data Processing Pipeline", "Data collection, preprocessing, model training", "0.2", beyondMVP},
		},
	},
	SectionInfrastructure: {
		title:     "INFRASTRUCTURE & HOSTING",
		category:  "Cloud Infrastructure",
		baseHours: [3]int64{20, 40, 60},
		rate:      95,
		features: []featureDef{
			{"Cloud Deployment", "AWS/Azure/GCP setup, CI/CD pipeline", "0.5", always},
			{"Domain & SSL", "Domain configuration, SSL certificates", "0.2", always},
			{"Monitoring & Logging", "Application monitoring, error tracking, analytics", "0.3", beyondMVP},
		},
	},
	SectionSecurity: {
		title:     "SECURITY & COMPLIANCE",
		category:  "Security Implementation",
		baseHours: [3]int64{15, 30, 50},
		rate:      110,
		features: []featureDef{
			{"Security Audit", "Vulnerability assessment, penetration testing", "0.4", beyondMVP},
			{"Data Protection", "Encryption, GDPR compliance, privacy policies", "0.4", always},
			{"Backup & Recovery", "Automated backups, disaster recovery plan", "0.2", always},
		},
	},
	SectionDocumentation: {
		title:     "DOCUMENTATION & TRAINING",
		category:  "Documentation",
		baseHours: [3]int64{20, 40, 60},
		rate:      80,
		features: []featureDef{
			{"Technical Documentation", "API docs, architecture diagrams, developer guides", "0.5", always},
			{"User Manual", "End-user documentation, tutorials, FAQs", "0.3", beyondMVP},
			{"Training Sessions", "Staff training, admin training, video tutorials", "0.2", optional},
		},
	},
	// Maintenance hours are per month
	SectionMaintenance: {
		title:     "MAINTENANCE & SUPPORT",
		category:  "Post-Launch Support (Monthly)",
		baseHours: [3]int64{10, 20, 40},
		rate:      85,
		features: []featureDef{
			{"Bug Fixes & Updates", "Monthly bug fixes, minor updates, compatibility", "0.5", optional},
			{"Technical Support", "Email/chat support, issue resolution", "0.3", optional},
			{"Performance Optimization", "Monthly performance reviews and optimizations", "0.2", optional},
		},
	},
}
