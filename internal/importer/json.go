package importer

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/rezonia/project-quoter/internal/model"
)

const errStructure = "Invalid JSON structure. Missing required fields: metadata, sections"

type severity int

const (
	severityWarning severity = iota
	severityError
)

// finding is one problem detected in an input document.
// path is the 1-based position, empty for metadata level findings.
type finding struct {
	path     string
	issue    string
	severity severity
}

func (f finding) String() string {
	if f.path == "" {
		return f.issue
	}
	return f.path + ": " + f.issue
}

type findings []finding

func (fs *findings) warn(path, format string, args ...any) {
	*fs = append(*fs, finding{path: path, issue: fmt.Sprintf(format, args...), severity: severityWarning})
}

func (fs *findings) fail(path, format string, args ...any) {
	*fs = append(*fs, finding{path: path, issue: fmt.Sprintf(format, args...), severity: severityError})
}

func (fs findings) split() (errs, warnings []string) {
	for _, f := range fs {
		if f.severity == severityError {
			errs = append(errs, f.String())
		} else {
			warnings = append(warnings, f.String())
		}
	}
	return errs, warnings
}

// ParseJSON imports a document previously exported by this tool.
//
// The input is never modified. A first pass collects findings against the
// raw document, a second pass builds a fresh invoice with every missing
// value defaulted. Totals are always recomputed.
func (im *Importer) ParseJSON(data []byte) *Result {
	return im.guard(SourceJSON, "JSON", func() *Result {
		var raw json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return Failure(SourceJSON, "Failed to parse JSON: "+err.Error())
		}

		doc := gjson.ParseBytes(raw)
		if !doc.Get("metadata").IsObject() || !doc.Get("sections").IsArray() {
			return Failure(SourceJSON, errStructure)
		}

		fs := validate(doc)
		errs, warnings := fs.split()

		im.logger.Debug("validated json document",
			"errors", len(errs),
			"warnings", len(warnings),
		)

		if len(errs) > 0 {
			return &Result{
				Success:  false,
				Errors:   errs,
				Warnings: warnings,
				Source:   SourceJSON,
			}
		}

		return success(SourceJSON, im.build(doc), warnings)
	})
}

// validate is the first pass
func validate(doc gjson.Result) findings {
	var fs findings

	meta := doc.Get("metadata")
	if blank(stringField(meta, "projectName")) {
		fs.fail("", "Missing project name in metadata")
	}
	if blank(stringField(meta, "currency")) {
		fs.warn("", "Currency not specified, defaulting to %s", model.DefaultCurrency)
	}

	for i, sec := range doc.Get("sections").Array() {
		sp := fmt.Sprintf("Section %d", i+1)

		if blank(stringField(sec, "title")) {
			fs.fail(sp, "Missing title")
		}

		cats := sec.Get("categories")
		if !cats.IsArray() {
			fs.fail(sp, "Missing or invalid categories")
			continue
		}

		for j, cat := range cats.Array() {
			cp := fmt.Sprintf("%s, Category %d", sp, j+1)

			if blank(stringField(cat, "name")) {
				fs.warn(cp, "Missing name")
			}

			feats := cat.Get("features")
			if !feats.IsArray() {
				fs.fail(cp, "Missing or invalid features")
				continue
			}

			for k, feat := range feats.Array() {
				validateFeature(&fs, fmt.Sprintf("%s, Feature %d", cp, k+1), feat)
			}
		}
	}

	return fs
}

func validateFeature(fs *findings, path string, feat gjson.Result) {
	if blank(description(feat)) {
		fs.fail(path, "Missing description")
	}

	for _, key := range []string{"hours", "price"} {
		if _, problem := numberField(feat, key); problem != "" {
			fs.warn(path, "%s %s, defaulting to 0", problem, key)
		}
	}

	if flag := feat.Get("flag"); flag.Exists() && !model.Flag(flag.String()).Valid() {
		fs.warn(path, "Unknown flag %q dropped", flag.String())
	}
}

// build is the second pass, only run when validate reported no errors
func (im *Importer) build(doc gjson.Result) *model.Invoice {
	meta := doc.Get("metadata")

	inv := &model.Invoice{
		Metadata: model.Metadata{
			ProjectName: stringField(meta, "projectName"),
			ClientName:  stringField(meta, "clientName"),
			Currency:    stringField(meta, "currency"),
			CreatedAt:   stringField(meta, "createdAt"),
			ValidUntil:  stringField(meta, "validUntil"),
			Domain:      stringField(meta, "domain"),
			ProjectType: stringField(meta, "projectType"),
			Complexity:  stringField(meta, "complexity"),
		},
		Sections: []model.Section{},
	}
	if blank(inv.Metadata.Currency) {
		inv.Metadata.Currency = model.DefaultCurrency
	}
	if blank(inv.Metadata.CreatedAt) {
		inv.Metadata.CreatedAt = im.today()
	}

	for _, sec := range doc.Get("sections").Array() {
		section := model.Section{
			Title:      stringField(sec, "title"),
			Categories: []model.Category{},
		}
		for j, cat := range sec.Get("categories").Array() {
			category := model.Category{
				Name:     stringField(cat, "name"),
				Features: []model.Feature{},
			}
			if blank(category.Name) {
				category.Name = fmt.Sprintf("Category %d", j+1)
			}
			for _, feat := range cat.Get("features").Array() {
				category.Features = append(category.Features, buildFeature(feat))
			}
			section.Categories = append(section.Categories, category)
		}
		inv.Sections = append(inv.Sections, section)
	}

	inv.Recalculate()
	return inv
}

func buildFeature(feat gjson.Result) model.Feature {
	hours, _ := numberField(feat, "hours")
	price, _ := numberField(feat, "price")

	f := model.Feature{
		Description: description(feat),
		Detail:      stringField(feat, "detail"),
		Hours:       hours,
		Price:       price,
		Required:    boolField(feat, "required", false),
		Selected:    boolField(feat, "selected", true),
	}
	if flag := model.Flag(feat.Get("flag").String()); flag.Valid() {
		f.Flag = flag
	}
	return f
}

// description reads "desc", falling back to the long form key
func description(feat gjson.Result) string {
	if d := stringField(feat, "desc"); !blank(d) {
		return d
	}
	return stringField(feat, "description")
}

// stringField returns the string at key, or "" when absent or not a string
func stringField(r gjson.Result, key string) string {
	v := r.Get(key)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// numberField returns a non-negative number at key. problem is empty when the
// value was usable as is.
func numberField(r gjson.Result, key string) (value float64, problem string) {
	v := r.Get(key)
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return 0, "Missing"
	case v.Type != gjson.Number, math.IsInf(v.Num, 0), math.IsNaN(v.Num):
		return 0, "Invalid"
	case v.Num < 0:
		return 0, "Negative"
	default:
		return v.Num, ""
	}
}

func boolField(r gjson.Result, key string, def bool) bool {
	v := r.Get(key)
	if v.Type == gjson.True || v.Type == gjson.False {
		return v.Bool()
	}
	return def
}
