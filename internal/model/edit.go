package model

import "strings"

// FeatureUpdate carries a partial update; nil fields are left unchanged
type FeatureUpdate struct {
	Description *string  `json:"desc,omitempty"`
	Detail      *string  `json:"detail,omitempty"`
	Hours       *float64 `json:"hours,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Required    *bool    `json:"required,omitempty"`
	Selected    *bool    `json:"selected,omitempty"`
}

// Editing operations mutate the invoice in place and always finish by
// recomputing totals. Indexes are zero-based; errors report them 1-based.

// ToggleFeature flips the selected flag of a feature
func (inv *Invoice) ToggleFeature(s, c, f int) error {
	feature, err := inv.feature(s, c, f)
	if err != nil {
		return err
	}
	feature.Selected = !feature.Selected
	inv.Recalculate()
	return nil
}

// UpdateFeature applies a partial update to a feature
func (inv *Invoice) UpdateFeature(s, c, f int, u FeatureUpdate) error {
	feature, err := inv.feature(s, c, f)
	if err != nil {
		return err
	}

	if u.Description != nil {
		if strings.TrimSpace(*u.Description) == "" {
			return ErrEmptyDescription
		}
		feature.Description = *u.Description
	}
	if u.Detail != nil {
		feature.Detail = *u.Detail
	}
	if u.Hours != nil {
		feature.Hours = nonNegative(*u.Hours)
	}
	if u.Price != nil {
		feature.Price = nonNegative(*u.Price)
	}
	if u.Required != nil {
		feature.Required = *u.Required
	}
	if u.Selected != nil {
		feature.Selected = *u.Selected
	}

	inv.Recalculate()
	return nil
}

// DeleteFeature removes a feature from its category
func (inv *Invoice) DeleteFeature(s, c, f int) error {
	category, err := inv.category(s, c)
	if err != nil {
		return err
	}
	if f < 0 || f >= len(category.Features) {
		return &IndexError{Kind: "feature", Position: f + 1, Length: len(category.Features)}
	}

	category.Features = append(category.Features[:f], category.Features[f+1:]...)
	inv.Recalculate()
	return nil
}

// AddFeature appends a feature to a category. Features added by hand are
// flagged custom unless the caller already set a flag.
func (inv *Invoice) AddFeature(s, c int, feature Feature) error {
	if strings.TrimSpace(feature.Description) == "" {
		return ErrEmptyDescription
	}
	category, err := inv.category(s, c)
	if err != nil {
		return err
	}

	feature.Hours = nonNegative(feature.Hours)
	feature.Price = nonNegative(feature.Price)
	if feature.Flag == FlagNone {
		feature.Flag = FlagCustom
	}

	category.Features = append(category.Features, feature)
	inv.Recalculate()
	return nil
}

// AddSection appends a section with a single empty category.
// Section titles are stored upper-cased.
func (inv *Invoice) AddSection(title, categoryName string) error {
	title = strings.TrimSpace(title)
	categoryName = strings.TrimSpace(categoryName)
	if title == "" || categoryName == "" {
		return ErrEmptyTitle
	}

	inv.Sections = append(inv.Sections, Section{
		Title: strings.ToUpper(title),
		Categories: []Category{
			{Name: categoryName, Features: []Feature{}},
		},
	})
	inv.Recalculate()
	return nil
}

// DeleteSection removes a section and everything in it
func (inv *Invoice) DeleteSection(s int) error {
	if s < 0 || s >= len(inv.Sections) {
		return &IndexError{Kind: "section", Position: s + 1, Length: len(inv.Sections)}
	}

	inv.Sections = append(inv.Sections[:s], inv.Sections[s+1:]...)
	inv.Recalculate()
	return nil
}

func (inv *Invoice) category(s, c int) (*Category, error) {
	if s < 0 || s >= len(inv.Sections) {
		return nil, &IndexError{Kind: "section", Position: s + 1, Length: len(inv.Sections)}
	}
	section := &inv.Sections[s]
	if c < 0 || c >= len(section.Categories) {
		return nil, &IndexError{Kind: "category", Position: c + 1, Length: len(section.Categories)}
	}
	return &section.Categories[c], nil
}

func (inv *Invoice) feature(s, c, f int) (*Feature, error) {
	category, err := inv.category(s, c)
	if err != nil {
		return nil, err
	}
	if f < 0 || f >= len(category.Features) {
		return nil, &IndexError{Kind: "feature", Position: f + 1, Length: len(category.Features)}
	}
	return &category.Features[f], nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
