package importer_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/project-quoter/internal/importer"
	"github.com/rezonia/project-quoter/internal/model"
)

func fixedImporter() *importer.Importer {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC))
	return importer.New(importer.WithClock(clock))
}

func exportedInvoice() *model.Invoice {
	inv := &model.Invoice{
		Metadata: model.Metadata{
			ProjectName: "Clinic Portal",
			ClientName:  "Northside Health",
			Currency:    "EUR",
			CreatedAt:   "2026-02-01",
			ValidUntil:  "2026-03-03",
			Domain:      "Healthcare",
			ProjectType: "Web App",
			Complexity:  "Standard",
		},
		Sections: []model.Section{
			{
				Title: "FRONTEND DEVELOPMENT",
				Categories: []model.Category{
					{
						Name: "Web Application",
						Features: []model.Feature{
							{Description: "Login", Detail: "Email and password", Hours: 18, Price: 1530, Required: true, Selected: true},
							{Description: "Reports", Detail: "PDF export", Hours: 12.5, Price: 1062.5, Selected: false, Flag: model.FlagCustom},
						},
					},
					{Name: "Empty", Features: []model.Feature{}},
				},
			},
			{Title: "QUALITY ASSURANCE", Categories: []model.Category{}},
		},
	}
	inv.Recalculate()
	return inv
}

func TestParseJSON_RoundTrip(t *testing.T) {
	want := exportedInvoice()
	data, err := json.Marshal(want)
	require.NoError(t, err)

	res := fixedImporter().ParseJSON(data)

	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, importer.SourceJSON, res.Source)
	assert.Equal(t, want, res.Invoice)
}

func TestParseJSON_RecomputesTotals(t *testing.T) {
	inv := exportedInvoice()
	inv.Totals = model.Totals{TotalHours: 9999, TotalPrice: 1, SelectedHours: 5, SelectedPrice: 5}
	data, err := json.Marshal(inv)
	require.NoError(t, err)

	res := fixedImporter().ParseJSON(data)

	require.True(t, res.Success)
	assert.Equal(t, model.Totals{TotalHours: 31, TotalPrice: 2593, SelectedHours: 18, SelectedPrice: 1530}, res.Invoice.Totals)
}

func TestParseJSON_Defaults(t *testing.T) {
	res := fixedImporter().ParseJSON([]byte(`{"metadata":{"projectName":"X"},"sections":[]}`))

	require.True(t, res.Success)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{"Currency not specified, defaulting to USD"}, res.Warnings)

	require.NotNil(t, res.Invoice)
	assert.Equal(t, "X", res.Invoice.Metadata.ProjectName)
	assert.Equal(t, "USD", res.Invoice.Metadata.Currency)
	assert.Equal(t, "2026-03-02", res.Invoice.Metadata.CreatedAt)
	assert.Equal(t, model.Totals{}, res.Invoice.Totals)
	assert.NotNil(t, res.Invoice.Sections)
}

func TestParseJSON_StructuralRejection(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty object", `{}`},
		{"no sections", `{"metadata":{"projectName":"X"}}`},
		{"no metadata", `{"sections":[]}`},
		{"sections not array", `{"metadata":{},"sections":{}}`},
		{"metadata not object", `{"metadata":"X","sections":[]}`},
		{"top level array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := fixedImporter().ParseJSON([]byte(tt.input))

			assert.False(t, res.Success)
			assert.Nil(t, res.Invoice)
			assert.Equal(t, []string{"Invalid JSON structure. Missing required fields: metadata, sections"}, res.Errors)
			assert.Equal(t, importer.SourceJSON, res.Source)
		})
	}
}

func TestParseJSON_StructuralRejectionOmitsInvoice(t *testing.T) {
	res := fixedImporter().ParseJSON([]byte(`{}`))

	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"invoice"`)
}

func TestParseJSON_SyntaxError(t *testing.T) {
	res := fixedImporter().ParseJSON([]byte(`{"metadata":`))

	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Failed to parse JSON: ")
	assert.Nil(t, res.Invoice)
}

func TestParseJSON_FieldErrors(t *testing.T) {
	input := `{
		"metadata": {"currency": "USD"},
		"sections": [
			{"title": "DESIGN", "categories": [
				{"name": "UI", "features": [
					{"desc": "Mockups", "hours": 10, "price": 800},
					{"detail": "no description", "hours": 1, "price": 1}
				]},
				{"features": "nope"}
			]},
			{"categories": 5}
		]
	}`

	res := fixedImporter().ParseJSON([]byte(input))

	assert.False(t, res.Success)
	assert.Nil(t, res.Invoice)
	assert.Equal(t, []string{
		"Missing project name in metadata",
		"Section 1, Category 1, Feature 2: Missing description",
		"Section 1, Category 2: Missing or invalid features",
		"Section 2: Missing title",
		"Section 2: Missing or invalid categories",
	}, res.Errors)
	assert.Equal(t, []string{"Section 1, Category 2: Missing name"}, res.Warnings)
}

func TestParseJSON_FeatureRepairs(t *testing.T) {
	input := `{
		"metadata": {"projectName": "Repairs", "currency": "GBP", "createdAt": "2026-01-01"},
		"sections": [
			{"title": "BACKEND", "categories": [
				{"features": [
					{"desc": "No numbers"},
					{"description": "Alias key", "hours": "12", "price": -40, "flag": "legacy"},
					{"desc": "Explicit flags", "hours": 4, "price": 400, "required": true, "selected": false, "flag": "imported"}
				]}
			]}
		]
	}`

	res := fixedImporter().ParseJSON([]byte(input))

	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.Equal(t, []string{
		"Section 1, Category 1: Missing name",
		"Section 1, Category 1, Feature 1: Missing hours, defaulting to 0",
		"Section 1, Category 1, Feature 1: Missing price, defaulting to 0",
		"Section 1, Category 1, Feature 2: Invalid hours, defaulting to 0",
		"Section 1, Category 1, Feature 2: Negative price, defaulting to 0",
		`Section 1, Category 1, Feature 2: Unknown flag "legacy" dropped`,
	}, res.Warnings)

	cat := res.Invoice.Sections[0].Categories[0]
	assert.Equal(t, "Category 1", cat.Name)
	require.Len(t, cat.Features, 3)

	first := cat.Features[0]
	assert.Equal(t, 0.0, first.Hours)
	assert.Equal(t, 0.0, first.Price)
	assert.False(t, first.Required)
	assert.True(t, first.Selected)

	second := cat.Features[1]
	assert.Equal(t, "Alias key", second.Description)
	assert.Equal(t, model.FlagNone, second.Flag)

	third := cat.Features[2]
	assert.True(t, third.Required)
	assert.False(t, third.Selected)
	assert.Equal(t, model.FlagImported, third.Flag)

	assert.Equal(t, model.Totals{TotalHours: 4, TotalPrice: 400}, res.Invoice.Totals)
	assert.Equal(t, "2026-01-01", res.Invoice.Metadata.CreatedAt)
}

func TestParseJSON_OverflowingNumbers(t *testing.T) {
	input := `{
		"metadata": {"projectName": "Huge", "currency": "USD", "createdAt": "2026-01-01"},
		"sections": [
			{"title": "BACKEND", "categories": [
				{"name": "API", "features": [
					{"desc": "Overflow", "hours": 1e400, "price": -1e400},
					{"desc": "Normal", "hours": 2, "price": 200}
				]}
			]}
		]
	}`

	res := fixedImporter().ParseJSON([]byte(input))

	require.True(t, res.Success, "errors: %v", res.Errors)
	assert.Equal(t, []string{
		"Section 1, Category 1, Feature 1: Invalid hours, defaulting to 0",
		"Section 1, Category 1, Feature 1: Invalid price, defaulting to 0",
	}, res.Warnings)
	assert.Equal(t, model.Totals{TotalHours: 2, TotalPrice: 200, SelectedHours: 2, SelectedPrice: 200}, res.Invoice.Totals)
}

func TestParseJSON_DoesNotTouchInput(t *testing.T) {
	input := []byte(`{"metadata":{"projectName":"X"},"sections":[{"title":"A B C D","categories":[]}]}`)
	orig := append([]byte(nil), input...)

	res := importer.ParseJSON(input)

	require.True(t, res.Success)
	assert.Equal(t, orig, input)
}
