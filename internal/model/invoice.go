package model

// Flag marks the provenance or quality of a feature
type Flag string

const (
	FlagNone        Flag = ""
	FlagNeedsReview Flag = "needs_review"
	FlagImported    Flag = "imported"
	FlagCustom      Flag = "custom"
)

// Valid reports whether f is one of the known flags (or unset)
func (f Flag) Valid() bool {
	switch f {
	case FlagNone, FlagNeedsReview, FlagImported, FlagCustom:
		return true
	default:
		return false
	}
}

// DefaultCurrency is used when a document does not name one
const DefaultCurrency = "USD"

// DateLayout is the date format used for CreatedAt and ValidUntil
const DateLayout = "2006-01-02"

// Feature is the atomic priced unit of work
type Feature struct {
	Description string  `json:"desc" yaml:"desc"`
	Detail      string  `json:"detail" yaml:"detail"`
	Hours       float64 `json:"hours" yaml:"hours"`
	Price       float64 `json:"price" yaml:"price"`
	Required    bool    `json:"required" yaml:"required"`
	Selected    bool    `json:"selected" yaml:"selected"`
	Flag        Flag    `json:"flag,omitempty" yaml:"flag,omitempty"`
}

// Category is a named group of features
type Category struct {
	Name     string    `json:"name" yaml:"name"`
	Features []Feature `json:"features" yaml:"features"`
}

// Section is a named group of categories, rendered as a document chapter
type Section struct {
	Title      string     `json:"title" yaml:"title"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// Metadata is the descriptive header of an invoice
type Metadata struct {
	ProjectName string `json:"projectName" yaml:"projectName"`
	ClientName  string `json:"clientName,omitempty" yaml:"clientName,omitempty"`
	Currency    string `json:"currency" yaml:"currency"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
	ValidUntil  string `json:"validUntil,omitempty" yaml:"validUntil,omitempty"`

	// Classification, only set by the template generator
	Domain      string `json:"domain,omitempty" yaml:"domain,omitempty"`
	ProjectType string `json:"projectType,omitempty" yaml:"projectType,omitempty"`
	Complexity  string `json:"complexity,omitempty" yaml:"complexity,omitempty"`
}

// Totals are derived from the sections and never edited by hand
type Totals struct {
	TotalHours    int64 `json:"totalHours" yaml:"totalHours"`
	TotalPrice    int64 `json:"totalPrice" yaml:"totalPrice"`
	SelectedHours int64 `json:"selectedHours" yaml:"selectedHours"`
	SelectedPrice int64 `json:"selectedPrice" yaml:"selectedPrice"`
}

// Invoice is the root aggregate of a priced project
type Invoice struct {
	Metadata Metadata  `json:"metadata" yaml:"metadata"`
	Sections []Section `json:"sections" yaml:"sections"`
	Totals   Totals    `json:"totals" yaml:"totals"`
}

// Recalculate recomputes Totals from Sections
func (inv *Invoice) Recalculate() {
	inv.Totals = ComputeTotals(inv.Sections)
}

// Consistent reports whether the stored totals match the sections
func (inv *Invoice) Consistent() bool {
	return inv.Totals == ComputeTotals(inv.Sections)
}

// FeatureCount returns the number of features across all sections
func (inv *Invoice) FeatureCount() int {
	n := 0
	for _, s := range inv.Sections {
		for _, c := range s.Categories {
			n += len(c.Features)
		}
	}
	return n
}

// Features returns every feature in document order
func (inv *Invoice) Features() []Feature {
	out := make([]Feature, 0, inv.FeatureCount())
	for _, s := range inv.Sections {
		for _, c := range s.Categories {
			out = append(out, c.Features...)
		}
	}
	return out
}
