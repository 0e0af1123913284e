// Package template builds starter invoices from a project configuration.
//
// Each section is described by a fixed table: base hours per complexity
// tier, an hourly rate, and the share of base hours each feature takes.
package template

import (
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	money "github.com/rezonia/project-quoter/internal/decimal"
	"github.com/rezonia/project-quoter/internal/model"
)

// ValidityDays is how long a generated quotation stays valid
const ValidityDays = 30

// Generator builds invoices from project configurations
type Generator struct {
	clock clockwork.Clock
}

// GeneratorOption configures the generator
type GeneratorOption func(*Generator)

// WithClock sets the clock used for creation and validity dates
func WithClock(clock clockwork.Clock) GeneratorOption {
	return func(g *Generator) {
		g.clock = clock
	}
}

// NewGenerator creates a generator using the real clock by default
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a starter invoice using the real clock
func Generate(cfg ProjectConfig) *model.Invoice {
	return NewGenerator().Generate(cfg)
}

// Generate composes the sections for cfg and computes totals.
// cfg is assumed valid; call Validate first for user input.
func (g *Generator) Generate(cfg ProjectConfig) *model.Invoice {
	now := g.clock.Now()

	inv := &model.Invoice{
		Metadata: model.Metadata{
			ProjectName: fmt.Sprintf("%s %s Project", cfg.Domain, cfg.ProjectType),
			Currency:    model.DefaultCurrency,
			CreatedAt:   now.Format(model.DateLayout),
			ValidUntil:  now.AddDate(0, 0, ValidityDays).Format(model.DateLayout),
			Domain:      cfg.Domain,
			ProjectType: cfg.ProjectType,
			Complexity:  cfg.Complexity,
		},
	}

	for _, key := range SectionKeys(cfg) {
		inv.Sections = append(inv.Sections, buildSection(catalog[key], cfg.Complexity))
	}

	inv.Recalculate()
	return inv
}

// SectionKeys returns the ordered section keys a configuration produces
func SectionKeys(cfg ProjectConfig) []string {
	keys := []string{SectionPreliminary, SectionUXUI}

	if strings.Contains(cfg.ProjectType, "Web") {
		keys = append(keys, SectionFrontend, SectionBackend)
	}
	if strings.Contains(cfg.ProjectType, "Mobile") {
		keys = append(keys, SectionMobile)
	}
	if cfg.ProjectType == "Platform / Marketplace" {
		keys = append(keys, SectionMarketplace)
	}
	if cfg.ProjectType == "AI-Powered System" || cfg.Domain == "AI" {
		keys = append(keys, SectionAI)
	}

	return append(keys,
		SectionInfrastructure,
		SectionSecurity,
		SectionDocumentation,
		SectionMaintenance,
	)
}

// BaseHours returns the base hours of a section at a complexity level.
// Unknown sections return 0.
func BaseHours(section, complexity string) int64 {
	def, ok := catalog[section]
	if !ok {
		return 0
	}
	return def.baseHours[tier(complexity)]
}

func buildSection(def sectionDef, complexity string) model.Section {
	base := money.FromInt(def.baseHours[tier(complexity)])
	rate := money.FromInt(def.rate)

	features := make([]model.Feature, 0, len(def.features))
	for _, fs := range def.features {
		hours := money.Mul(base, money.MustFromString(fs.fraction))
		price := money.Mul(hours, rate)

		f := model.Feature{
			Description: fs.desc,
			Detail:      fs.detail,
			Hours:       money.ToFloat(hours),
			Price:       money.ToFloat(price),
		}

		switch fs.include {
		case always:
			f.Required, f.Selected = true, true
		case beyondMVP:
			in := complexity != ComplexityMVP
			f.Required, f.Selected = in, in
		case optional:
			f.Required, f.Selected = false, false
		}

		features = append(features, f)
	}

	return model.Section{
		Title: def.title,
		Categories: []model.Category{
			{Name: def.category, Features: features},
		},
	}
}
