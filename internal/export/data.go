package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rezonia/project-quoter/internal/model"
)

// RenderJSON writes inv in the interchange format read by the JSON importer
func RenderJSON(w io.Writer, inv *model.Invoice) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(inv); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}

// RenderYAML writes inv as YAML
func RenderYAML(w io.Writer, inv *model.Invoice) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(inv); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	return nil
}
