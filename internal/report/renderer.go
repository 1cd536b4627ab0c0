// Package report renders the compliance report as HTML. Placeholders
// are a typed struct consumed by a parsed template, so a renamed or
// missing placeholder fails at render time instead of producing a
// silently incomplete document.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"complyq/internal/model"
	"complyq/internal/schema"
)

// NotProvided is substituted for every empty answer in the rendered
// report.
const NotProvided = "Not provided"

// Data is the full placeholder set for the report template.
type Data struct {
	ProjectName        string
	ProjectDescription string
	GeneratedAt        string
	Progress           int
	RiskLevel          model.RiskLevel
	Recommendations    string
	Preamble           string
	Disclaimer         string
	Sections           []SectionData
}

// SectionData is one rendered questionnaire section.
type SectionData struct {
	Number    int
	Title     string
	Intro     string
	Auto      bool
	Completed bool
	Entries   []EntryData
}

// EntryData is one question/answer pair.
type EntryData struct {
	Prompt string
	Answer string
}

// Renderer turns an assessment record plus project details into an HTML
// document.
type Renderer struct {
	tmpl        *template.Template
	boilerplate *Boilerplate
}

// NewRenderer parses the report template against the default
// boilerplate.
func NewRenderer() (*Renderer, error) {
	return NewRendererWithBoilerplate(nil)
}

// NewRendererWithBoilerplate uses the given boilerplate, falling back
// to the embedded default when nil.
func NewRendererWithBoilerplate(b *Boilerplate) (*Renderer, error) {
	if b == nil {
		var err error
		b, err = DefaultBoilerplate()
		if err != nil {
			return nil, err
		}
	}
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}
	return &Renderer{tmpl: tmpl, boilerplate: b}, nil
}

// Render produces the HTML report. Empty answers render as NotProvided;
// a template failure is returned to the caller and nothing partial is
// produced.
func (r *Renderer) Render(record *model.AssessmentRecord, project *model.Project, recommendations string) (string, error) {
	if record == nil || project == nil {
		return "", fmt.Errorf("render requires both record and project")
	}

	metrics := record.Metrics()
	completed := make(map[int]bool, len(record.AutoSectionsCompleted))
	for _, n := range record.AutoSectionsCompleted {
		completed[n] = true
	}

	data := Data{
		ProjectName:        fallback(project.Name),
		ProjectDescription: fallback(project.Description),
		GeneratedAt:        time.Now().Format(time.RFC3339),
		Progress:           metrics.CompletionPercentage,
		RiskLevel:          metrics.RiskLevel,
		Recommendations:    fallback(recommendations),
		Preamble:           r.boilerplate.Preamble,
		Disclaimer:         r.boilerplate.Disclaimer,
	}

	for _, s := range schema.Sections() {
		sec := SectionData{
			Number: s.Number,
			Title:  s.Title,
			Intro:  r.boilerplate.SectionIntro(s.Number),
			Auto:   s.Kind == schema.KindAuto,
		}
		if sec.Auto {
			sec.Completed = completed[s.Number]
		} else {
			sec.Completed = true
			for _, f := range s.Fields {
				answer := record.Answers[f.ID]
				if answer == "" {
					sec.Completed = false
				}
				sec.Entries = append(sec.Entries, EntryData{
					Prompt: f.Prompt,
					Answer: fallback(answer),
				})
			}
		}
		data.Sections = append(data.Sections, sec)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return buf.String(), nil
}

func fallback(s string) string {
	if s == "" {
		return NotProvided
	}
	return s
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>AI Risk Assessment — {{.ProjectName}}</title>
</head>
<body>
<h1>AI Risk Assessment Report</h1>
<p class="preamble">{{.Preamble}}</p>
<table class="summary">
<tr><th>Project</th><td>{{.ProjectName}}</td></tr>
<tr><th>Description</th><td>{{.ProjectDescription}}</td></tr>
<tr><th>Generated</th><td>{{.GeneratedAt}}</td></tr>
<tr><th>Completion</th><td>{{.Progress}}%</td></tr>
<tr><th>Risk level</th><td>{{.RiskLevel}}</td></tr>
</table>
{{range .Sections}}
<section>
<h2>{{.Number}}. {{.Title}}</h2>
{{if .Intro}}<p class="intro">{{.Intro}}</p>{{end}}
{{if .Auto}}
<p class="auto">{{if .Completed}}Satisfied by registered audit-directory records.{{else}}No qualifying records registered.{{end}}</p>
{{else}}
<dl>
{{range .Entries}}
<dt>{{.Prompt}}</dt>
<dd>{{.Answer}}</dd>
{{end}}
</dl>
{{end}}
</section>
{{end}}
<section>
<h2>Recommendations</h2>
<p>{{.Recommendations}}</p>
</section>
<footer><p class="disclaimer">{{.Disclaimer}}</p></footer>
</body>
</html>
`
