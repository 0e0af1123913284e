package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/project-quoter/internal/model"
)

func sampleInvoice() *model.Invoice {
	inv := &model.Invoice{
		Metadata: model.Metadata{
			ProjectName: "Shop Rebuild",
			ClientName:  "ACME",
			Currency:    "EUR",
			CreatedAt:   "2026-01-18",
		},
		Sections: []model.Section{
			{
				Title: "FRONTEND DEVELOPMENT",
				Categories: []model.Category{
					{
						Name: "Web Application",
						Features: []model.Feature{
							{Description: "Login", Hours: 18, Price: 1530, Required: true, Selected: true},
							{Description: "Dashboard", Hours: 48.5, Price: 4122.5, Required: true, Selected: true},
						},
					},
				},
			},
			{
				Title: "MAINTENANCE & SUPPORT",
				Categories: []model.Category{
					{
						Name: "Monthly",
						Features: []model.Feature{
							{Description: "Bug fixes", Hours: 5, Price: 425, Selected: false},
							{Description: "Support", Hours: 3, Price: 255, Selected: false},
						},
					},
				},
			},
		},
	}
	inv.Recalculate()
	return inv
}

func TestComputeTotals(t *testing.T) {
	inv := sampleInvoice()

	// 18 + 48.5 + 5 + 3 = 74.5 -> 75
	assert.Equal(t, int64(75), inv.Totals.TotalHours)
	// 1530 + 4122.5 + 425 + 255 = 6332.5 -> 6333
	assert.Equal(t, int64(6333), inv.Totals.TotalPrice)
	// 66.5 -> 67
	assert.Equal(t, int64(67), inv.Totals.SelectedHours)
	// 5652.5 -> 5653
	assert.Equal(t, int64(5653), inv.Totals.SelectedPrice)
}

func TestComputeTotals_RoundsAfterSummation(t *testing.T) {
	sections := []model.Section{{
		Title: "X",
		Categories: []model.Category{{
			Name: "c",
			Features: []model.Feature{
				{Hours: 0.4, Price: 0.4, Selected: true},
				{Hours: 0.4, Price: 0.4, Selected: true},
			},
		}},
	}}

	// Per-feature rounding would yield 0; summation first yields 0.8 -> 1
	totals := model.ComputeTotals(sections)
	assert.Equal(t, int64(1), totals.TotalHours)
	assert.Equal(t, int64(1), totals.SelectedPrice)
}

func TestComputeTotals_Empty(t *testing.T) {
	assert.Equal(t, model.Totals{}, model.ComputeTotals(nil))
	assert.Equal(t, model.Totals{}, model.ComputeTotals([]model.Section{{Title: "EMPTY"}}))
}

func TestComputeTotals_Idempotent(t *testing.T) {
	inv := sampleInvoice()
	first := model.ComputeTotals(inv.Sections)
	second := model.ComputeTotals(inv.Sections)
	assert.Equal(t, first, second)
	assert.True(t, inv.Consistent())
}

func TestComputeTotals_OrderIndependent(t *testing.T) {
	inv := sampleInvoice()
	expected := model.ComputeTotals(inv.Sections)

	// Move every feature into one category in reverse order
	features := inv.Features()
	reversed := make([]model.Feature, 0, len(features))
	for i := len(features) - 1; i >= 0; i-- {
		reversed = append(reversed, features[i])
	}
	permuted := []model.Section{
		{Title: "B", Categories: []model.Category{{Name: "all", Features: reversed[:1]}}},
		{Title: "A", Categories: []model.Category{{Name: "rest", Features: reversed[1:]}}},
	}

	assert.Equal(t, expected, model.ComputeTotals(permuted))
}

func TestTotals_SelectionInvariant(t *testing.T) {
	inv := sampleInvoice()
	assert.LessOrEqual(t, inv.Totals.SelectedHours, inv.Totals.TotalHours)
	assert.LessOrEqual(t, inv.Totals.SelectedPrice, inv.Totals.TotalPrice)
}

func TestToggleFeature_AdjustsSelectedTotalsOnly(t *testing.T) {
	inv := sampleInvoice()
	before := inv.Totals

	require.NoError(t, inv.ToggleFeature(1, 0, 0))

	assert.Equal(t, before.TotalHours, inv.Totals.TotalHours)
	assert.Equal(t, before.TotalPrice, inv.Totals.TotalPrice)
	assert.Equal(t, before.SelectedHours+5, inv.Totals.SelectedHours)
	assert.Equal(t, before.SelectedPrice+425, inv.Totals.SelectedPrice)

	require.NoError(t, inv.ToggleFeature(1, 0, 0))
	assert.Equal(t, before, inv.Totals)
}

func TestToggleFeature_OutOfRange(t *testing.T) {
	inv := sampleInvoice()

	err := inv.ToggleFeature(5, 0, 0)
	var idxErr *model.IndexError
	require.True(t, errors.As(err, &idxErr))
	assert.Equal(t, "section", idxErr.Kind)
	assert.Equal(t, 6, idxErr.Position)
	assert.Contains(t, err.Error(), "section 6 out of range")

	err = inv.ToggleFeature(0, 0, 9)
	require.True(t, errors.As(err, &idxErr))
	assert.Equal(t, "feature", idxErr.Kind)
}

func TestUpdateFeature(t *testing.T) {
	inv := sampleInvoice()

	hours := 20.0
	price := -10.0
	name := "Login & SSO"
	require.NoError(t, inv.UpdateFeature(0, 0, 0, model.FeatureUpdate{
		Description: &name,
		Hours:       &hours,
		Price:       &price,
	}))

	f := inv.Sections[0].Categories[0].Features[0]
	assert.Equal(t, "Login & SSO", f.Description)
	assert.Equal(t, 20.0, f.Hours)
	assert.Equal(t, 0.0, f.Price, "negative prices are clamped")
	assert.True(t, inv.Consistent())
}

func TestUpdateFeature_EmptyDescription(t *testing.T) {
	inv := sampleInvoice()
	blank := "  "
	err := inv.UpdateFeature(0, 0, 0, model.FeatureUpdate{Description: &blank})
	require.ErrorIs(t, err, model.ErrEmptyDescription)
}

func TestDeleteFeature(t *testing.T) {
	inv := sampleInvoice()
	require.NoError(t, inv.DeleteFeature(0, 0, 1))

	assert.Len(t, inv.Sections[0].Categories[0].Features, 1)
	assert.Equal(t, int64(26), inv.Totals.TotalHours)
	assert.True(t, inv.Consistent())
}

func TestAddFeature(t *testing.T) {
	inv := sampleInvoice()
	require.NoError(t, inv.AddFeature(0, 0, model.Feature{
		Description: "Reports",
		Hours:       10,
		Price:       850,
		Selected:    true,
	}))

	features := inv.Sections[0].Categories[0].Features
	require.Len(t, features, 3)
	assert.Equal(t, model.FlagCustom, features[2].Flag)
	assert.Equal(t, int64(85), inv.Totals.TotalHours)

	err := inv.AddFeature(0, 0, model.Feature{Description: ""})
	require.ErrorIs(t, err, model.ErrEmptyDescription)
}

func TestAddAndDeleteSection(t *testing.T) {
	inv := sampleInvoice()
	require.NoError(t, inv.AddSection("quality assurance", "Testing"))

	require.Len(t, inv.Sections, 3)
	assert.Equal(t, "QUALITY ASSURANCE", inv.Sections[2].Title)
	assert.Equal(t, "Testing", inv.Sections[2].Categories[0].Name)

	require.ErrorIs(t, inv.AddSection("", "x"), model.ErrEmptyTitle)
	require.ErrorIs(t, inv.AddSection("x", " "), model.ErrEmptyTitle)

	require.NoError(t, inv.DeleteSection(0))
	require.Len(t, inv.Sections, 2)
	assert.Equal(t, int64(8), inv.Totals.TotalHours)

	require.Error(t, inv.DeleteSection(-1))
}

func TestRequiredButUnselected_CountsOnlyTowardTotal(t *testing.T) {
	inv := &model.Invoice{Sections: []model.Section{{
		Title: "X",
		Categories: []model.Category{{
			Name:     "c",
			Features: []model.Feature{{Description: "a", Hours: 10, Price: 100, Required: true, Selected: false}},
		}},
	}}}
	inv.Recalculate()

	assert.Equal(t, int64(10), inv.Totals.TotalHours)
	assert.Equal(t, int64(0), inv.Totals.SelectedHours)
}

func TestDuration(t *testing.T) {
	tests := []struct {
		hours         int64
		weeks, months int64
	}{
		{0, 0, 0},
		{40, 1, 1},
		{41, 2, 1},
		{200, 5, 2},
	}
	for _, tt := range tests {
		weeks, months := model.Duration(tt.hours)
		assert.Equal(t, tt.weeks, weeks, "hours=%d", tt.hours)
		assert.Equal(t, tt.months, months, "hours=%d", tt.hours)
	}
}

func TestFlagValid(t *testing.T) {
	assert.True(t, model.FlagNeedsReview.Valid())
	assert.True(t, model.FlagImported.Valid())
	assert.True(t, model.FlagCustom.Valid())
	assert.True(t, model.FlagNone.Valid())
	assert.False(t, model.Flag("bogus").Valid())
}

func TestParseError_WithCause(t *testing.T) {
	cause := assert.AnError
	err := model.NewParseError("json", "sections", "parse failed", cause)

	require.Contains(t, err.Error(), "json")
	require.Contains(t, err.Error(), "sections")
	require.ErrorIs(t, err, cause)
}

func TestValidationError(t *testing.T) {
	err := model.NewValidationError("complexity", "Huge", "enum", "unknown complexity")

	require.Contains(t, err.Error(), "complexity")
	require.Contains(t, err.Error(), "Huge")
	require.Contains(t, err.Error(), "unknown complexity")
}
