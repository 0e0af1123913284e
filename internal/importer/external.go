package importer

import (
	"github.com/rezonia/project-quoter/internal/model"
)

const (
	warnBestEffort = "External PDF detected. Parsing is best-effort."
	warnReviewAll  = "Please review all extracted data carefully."

	defaultExternalProject = "Imported External Document"
	externalCategory       = "Extracted Items"

	placeholderSection  = "IMPORTED CONTENT"
	placeholderCategory = "Items"
	placeholderDesc     = "Imported from external PDF"
	placeholderDetail   = "Content extracted from uploaded document. Please review and edit."
)

// parseExternal only recovers structure: section headers become empty
// sections, and when none are found a single placeholder feature asks for
// review. Hours and prices are never populated, so totals stay zero.
func (im *Importer) parseExternal(text string, source Source) *Result {
	lines := Tokenize(text)

	projectName := defaultExternalProject
	if i := nextNonBlank(lines, 0); i >= 0 {
		projectName = lines[i].Text
	}

	var sections []model.Section
	for _, l := range lines {
		if l.Kind != LineSectionHeader {
			continue
		}
		sections = append(sections, model.Section{
			Title:      l.Text,
			Categories: []model.Category{{Name: externalCategory, Features: []model.Feature{}}},
		})
	}

	if len(sections) == 0 {
		sections = []model.Section{placeholder()}
	}

	inv := &model.Invoice{
		Metadata: model.Metadata{
			ProjectName: projectName,
			Currency:    model.DefaultCurrency,
			CreatedAt:   im.today(),
		},
		Sections: sections,
	}
	inv.Recalculate()

	im.logger.Debug("parsed external text", "source", source, "sections", len(sections))

	return success(source, inv, []string{warnBestEffort, warnReviewAll})
}

func placeholder() model.Section {
	return model.Section{
		Title: placeholderSection,
		Categories: []model.Category{{
			Name: placeholderCategory,
			Features: []model.Feature{{
				Description: placeholderDesc,
				Detail:      placeholderDetail,
				Hours:       0,
				Price:       0,
				Required:    false,
				Selected:    true,
				Flag:        model.FlagNeedsReview,
			}},
		}},
	}
}
