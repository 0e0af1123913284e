package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/project-quoter/internal/model"
	"github.com/rezonia/project-quoter/internal/template"
)

var (
	templateDomain     string
	templateType       string
	templateComplexity string
	templateOutput     string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Generate a quotation template",
	Long: `Generate a starting quotation from three choices.

Domains:      ` + strings.Join(template.Domains, ", ") + `
Types:        ` + strings.Join(template.ProjectTypes, ", ") + `
Complexities: ` + strings.Join(template.Complexities, ", ") + `

Examples:
  quoter template --domain SaaS --type "Web App" --complexity Standard
  quoter template --domain AI --type "AI-Powered System" --complexity MVP -f yaml -o quote.yaml`,
	Args: cobra.NoArgs,
	RunE: runTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().StringVar(&templateDomain, "domain", "", "Project domain")
	templateCmd.Flags().StringVar(&templateType, "type", "", "Project type")
	templateCmd.Flags().StringVar(&templateComplexity, "complexity", template.ComplexityStandard, "Complexity level")
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "", "Output file (default: stdout)")
	_ = templateCmd.MarkFlagRequired("domain")
	_ = templateCmd.MarkFlagRequired("type")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	cfg := template.ProjectConfig{
		Domain:      templateDomain,
		ProjectType: templateType,
		Complexity:  templateComplexity,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	inv := template.Generate(cfg)
	printVerbose("Generated %d sections, %d features\n", len(inv.Sections), inv.FeatureCount())

	w, closeOutput, err := openOutput(cmd.OutOrStdout(), templateOutput)
	if err != nil {
		return err
	}
	defer closeOutput()

	if outputFormat == "table" {
		return outputInvoiceTable(w, inv)
	}
	return writeData(w, outputFormat, inv)
}

// outputInvoiceTable prints one row per category followed by the totals
func outputInvoiceTable(w io.Writer, inv *model.Invoice) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t(%s)\n\n", inv.Metadata.ProjectName, inv.Metadata.Currency)
	fmt.Fprintln(tw, "SECTION\tCATEGORY\tFEATURES\tSELECTED\tHOURS\tPRICE")
	fmt.Fprintln(tw, "-------\t--------\t--------\t--------\t-----\t-----")

	for _, s := range inv.Sections {
		for _, c := range s.Categories {
			t := model.ComputeTotals([]model.Section{{Categories: []model.Category{c}}})
			selected := 0
			for _, f := range c.Features {
				if f.Selected {
					selected++
				}
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n",
				s.Title, c.Name, len(c.Features), selected, t.SelectedHours, t.SelectedPrice)
		}
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Selected\t\t\t\t%d\t%d\n", inv.Totals.SelectedHours, inv.Totals.SelectedPrice)
	fmt.Fprintf(tw, "All features\t\t\t\t%d\t%d\n", inv.Totals.TotalHours, inv.Totals.TotalPrice)
	return tw.Flush()
}
