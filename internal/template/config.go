package template

import (
	"slices"

	"github.com/rezonia/project-quoter/internal/model"
)

// Known project domains
var Domains = []string{
	"SaaS",
	"AI",
	"FinTech",
	"E-commerce",
	"Agriculture",
	"Healthcare",
	"GovTech",
	"Logistics",
	"Education",
	"Enterprise Systems",
	"Startup MVP",
	"Custom Software",
}

// Known project types
var ProjectTypes = []string{
	"Web App",
	"Mobile App",
	"Web + Mobile",
	"Platform / Marketplace",
	"Internal System",
	"AI-Powered System",
}

// Complexity levels, in increasing order of effort
const (
	ComplexityMVP        = "MVP"
	ComplexityStandard   = "Standard"
	ComplexityAdvanced   = "Advanced / Enterprise"
	ComplexityFullCustom = "Fully Custom"
)

var Complexities = []string{
	ComplexityMVP,
	ComplexityStandard,
	ComplexityAdvanced,
	ComplexityFullCustom,
}

// ProjectConfig holds the categorical choices a template is built from
type ProjectConfig struct {
	Domain      string `json:"domain" yaml:"domain"`
	ProjectType string `json:"projectType" yaml:"projectType"`
	Complexity  string `json:"complexity" yaml:"complexity"`
}

// Validate checks every field against the known value sets
func (c ProjectConfig) Validate() error {
	if !slices.Contains(Domains, c.Domain) {
		return model.NewValidationError("domain", c.Domain, "enum", "unknown project domain")
	}
	if !slices.Contains(ProjectTypes, c.ProjectType) {
		return model.NewValidationError("projectType", c.ProjectType, "enum", "unknown project type")
	}
	if !slices.Contains(Complexities, c.Complexity) {
		return model.NewValidationError("complexity", c.Complexity, "enum", "unknown complexity level")
	}
	return nil
}

// tier maps a complexity to its column in the base-hours tables.
// Anything beyond Standard uses the top tier.
func tier(complexity string) int {
	switch complexity {
	case ComplexityMVP:
		return 0
	case ComplexityStandard:
		return 1
	default:
		return 2
	}
}
