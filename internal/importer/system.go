package importer

import (
	"regexp"
	"strings"

	"github.com/rezonia/project-quoter/internal/model"
)

// Phrases the export renderer is known to emit
var systemSignatures = []*regexp.Regexp{
	regexp.MustCompile(`(?i)DÉVELOPPEMENT MOBILE`),
	regexp.MustCompile(`(?i)FRONTEND DEVELOPMENT`),
	regexp.MustCompile(`(?i)BACKEND & API DEVELOPMENT`),
	regexp.MustCompile(`(?i)Selected Items`),
	regexp.MustCompile(`(?i)Total Hours:`),
}

// minSignatureMatches is how many signatures mark text as system-generated
const minSignatureMatches = 2

const (
	warnLossyPDF = "PDF parsing is limited. For best results, export and import JSON files."

	defaultSystemProject  = "Imported Project"
	defaultSystemSection  = "IMPORTED FEATURES"
	defaultSystemCategory = "Features"
	importedCategory      = "Imported Features"
)

// clientLabel cuts the project name; client names match it in any case
const clientLabel = "Client:"

var clientPattern = regexp.MustCompile(`(?i)client:`)

// SignatureMatches counts how many system signatures appear in text
func SignatureMatches(text string) int {
	n := 0
	for _, sig := range systemSignatures {
		if sig.MatchString(text) {
			n++
		}
	}
	return n
}

// IsSystemText reports whether text was likely produced by this tool's renderer
func IsSystemText(text string) bool {
	return SignatureMatches(text) >= minSignatureMatches
}

func (im *Importer) parseSystem(text string) *Result {
	lines := Tokenize(text)

	inv := &model.Invoice{
		Metadata: model.Metadata{
			ProjectName: systemProjectName(lines),
			ClientName:  systemClientName(lines),
			Currency:    model.DefaultCurrency,
			CreatedAt:   im.today(),
		},
		Sections: systemSections(lines),
	}

	features := systemFeatures(lines)
	distribute(inv.Sections, features)
	inv.Recalculate()

	im.logger.Debug("parsed system text",
		"sections", len(inv.Sections),
		"features", len(features),
	)

	return success(SourcePDFSystem, inv, []string{warnLossyPDF})
}

// systemProjectName takes the first line, cut at a case-sensitive "Client:"
// label. A line that starts with the label is kept whole.
func systemProjectName(lines []Line) string {
	i := nextNonBlank(lines, 0)
	if i < 0 {
		return defaultSystemProject
	}

	name := lines[i].Text
	if cut := strings.Index(name, clientLabel); cut > 0 {
		if head := strings.TrimSpace(name[:cut]); head != "" {
			name = head
		}
	}
	return name
}

func systemClientName(lines []Line) string {
	for _, l := range lines {
		if loc := clientPattern.FindStringIndex(l.Text); loc != nil {
			if name := strings.TrimSpace(l.Text[loc[1]:]); name != "" {
				return name
			}
		}
	}
	return ""
}

func systemSections(lines []Line) []model.Section {
	var sections []model.Section
	for _, l := range lines {
		if l.Kind != LineSectionHeader {
			continue
		}
		sections = append(sections, model.Section{
			Title:      l.Text,
			Categories: []model.Category{{Name: importedCategory, Features: []model.Feature{}}},
		})
	}

	if len(sections) == 0 {
		sections = append(sections, model.Section{
			Title:      defaultSystemSection,
			Categories: []model.Category{{Name: defaultSystemCategory, Features: []model.Feature{}}},
		})
	}
	return sections
}

// systemFeatures scans for checkbox, detail and metric lines in sequence
func systemFeatures(lines []Line) []model.Feature {
	var features []model.Feature

	for i := 0; i < len(lines); i++ {
		if lines[i].Kind != LineCheckbox {
			continue
		}
		desc := checkboxText(lines[i].Text)
		if desc == "" {
			continue
		}

		d := nextNonBlank(lines, i+1)
		if d < 0 {
			break
		}
		m := nextNonBlank(lines, d+1)
		if m < 0 || lines[m].Kind != LineMetric {
			continue
		}

		features = append(features, model.Feature{
			Description: desc,
			Detail:      lines[d].Text,
			Hours:       lines[m].Hours,
			Price:       lines[m].Price,
			Required:    true,
			Selected:    true,
			Flag:        model.FlagImported,
		})
		i = m
	}

	return features
}

// distribute splits features evenly by count across sections, in order.
// Each section receives ceil(n/len(sections)) features until they run out.
// TODO: associate features with the header they follow instead of splitting by count.
func distribute(sections []model.Section, features []model.Feature) {
	if len(features) == 0 || len(sections) == 0 {
		return
	}

	per := (len(features) + len(sections) - 1) / len(sections)
	for idx := range sections {
		start := min(idx*per, len(features))
		end := min(start+per, len(features))
		chunk := make([]model.Feature, end-start)
		copy(chunk, features[start:end])
		sections[idx].Categories[0].Features = chunk
	}
}
