package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/de-tools/cost-advisor/pkg/models/api"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q, expected one of: table, json, yaml", s)
	}
}

type TableConfig struct {
	IDWidth      int
	TypeWidth    int
	PriceWidth   int
	ReasonWidth  int
	SummaryWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:      28,
		TypeWidth:    18,
		PriceWidth:   10,
		ReasonWidth:  60,
		SummaryWidth: 40,
	}
}

type Reporter struct {
	writer io.Writer
	format Format
	config TableConfig
}

func NewReporter(writer io.Writer, format Format) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if format == "" {
		format = FormatTable
	}
	return &Reporter{
		writer: writer,
		format: format,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Recommendations(recs []api.Recommendation) error {
	if c.format != FormatTable {
		return c.encode(recs)
	}
	return c.render(recommendationsTmpl, recs)
}

func (c *Reporter) Report(report api.RecommendationReport) error {
	if c.format != FormatTable {
		return c.encode(report)
	}

	types := make([]string, 0, len(report.Results)+len(report.Errors))
	for rt := range report.Results {
		types = append(types, rt)
	}
	for rt := range report.Errors {
		if _, ok := report.Results[rt]; !ok {
			types = append(types, rt)
		}
	}
	sort.Strings(types)

	sections := make([]reportSection, 0, len(types))
	for _, rt := range types {
		s := reportSection{Type: rt, Recommendations: report.Results[rt]}
		if e, ok := report.Errors[rt]; ok {
			s.Error = e.Error
		}
		sections = append(sections, s)
	}
	return c.render(reportTmpl, struct {
		BatchID  string
		Sections []reportSection
	}{report.BatchID, sections})
}

func (c *Reporter) CostSummary(summary api.CostSummary) error {
	if c.format != FormatTable {
		return c.encode(summary)
	}
	return c.render(costTmpl, summary)
}

func (c *Reporter) Profiles(profiles []api.Profile) error {
	if c.format != FormatTable {
		return c.encode(profiles)
	}
	return c.render(profilesTmpl, profiles)
}

type reportSection struct {
	Type            string
	Recommendations []api.Recommendation
	Error           string
}

func (c *Reporter) encode(v any) error {
	switch c.format {
	case FormatJSON:
		enc := json.NewEncoder(c.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(c.writer)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q", c.format)
	}
}

const recommendationsTmpl = `
{{separator}}
{{formatRow "Resource" "Current" "Recommended" "Price" "Savings" "Reason"}}
{{separator}}
{{range .}}{{formatRow .ResourceID .CurrentType (deref .RecommendedType) .CurrentPrice .EstimatedMonthlySavings .Reason}}
{{end}}{{separator}}
Total: {{len .}} recommendation(s)
`

const reportTmpl = `
Batch: {{.BatchID}}
{{range .Sections}}
=== {{.Type}} ===
{{if .Error}}Failed: {{.Error}}
{{else}}{{separator}}
{{formatRow "Resource" "Current" "Recommended" "Price" "Savings" "Reason"}}
{{separator}}
{{range .Recommendations}}{{formatRow .ResourceID .CurrentType (deref .RecommendedType) .CurrentPrice .EstimatedMonthlySavings .Reason}}
{{end}}{{separator}}
{{end}}{{end}}`

const costTmpl = `
Cost summary for {{printf "%02d" .Month}}/{{.Year}}

{{summaryRow "Grand total" .GrandTotal}}
{{summaryRow "Highest service" .HighestServiceName}}
{{summaryRow "Highest service spend" .HighestServiceSpend}}
{{summaryRow "Highest region" .HighestRegionName}}
{{summaryRow "Highest region spend" .HighestRegionSpend}}
`

const profilesTmpl = `{{range .}}{{summaryRow .Name .Type}}{{if .Region}} ({{.Region}}){{end}}
{{else}}No profiles found
{{end}}`

func (c *Reporter) render(tmpl string, data any) error {
	cfg := c.config
	funcMap := template.FuncMap{
		"formatRow": func(id, current, recommended, price, savings, reason string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %*s | %*s | %-*s |",
				cfg.IDWidth, truncate(id, cfg.IDWidth),
				cfg.TypeWidth, truncate(current, cfg.TypeWidth),
				cfg.TypeWidth, truncate(recommended, cfg.TypeWidth),
				cfg.PriceWidth, price,
				cfg.PriceWidth, savings,
				cfg.ReasonWidth, truncate(reason, cfg.ReasonWidth))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+",
				strings.Repeat("-", cfg.IDWidth+2),
				strings.Repeat("-", cfg.TypeWidth+2),
				strings.Repeat("-", cfg.TypeWidth+2),
				strings.Repeat("-", cfg.PriceWidth+2),
				strings.Repeat("-", cfg.PriceWidth+2),
				strings.Repeat("-", cfg.ReasonWidth+2))
		},
		"summaryRow": func(name, value string) string {
			return fmt.Sprintf("%-*s %s", cfg.SummaryWidth, name+":", value)
		},
		"deref": func(s *string) string {
			if s == nil {
				return "-"
			}
			return *s
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, data)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
