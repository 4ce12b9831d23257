// Package template renders the canonical instruction document that the
// merge engine treats as the authoritative side. The base document is
// embedded in the binary so an installed forge needs no support files.
package template

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/forgekit/forge/internal/detect"
)

//go:embed assets/agents.tmpl.md
var baseTemplate string

// Render produces the canonical instruction document for a project.
// The output is plain markdown with \n line endings, ready to be
// passed to mergedoc.Merge as the template side.
func Render(meta detect.ProjectMeta) (string, error) {
	if strings.TrimSpace(meta.Name) == "" {
		meta.Name = "This Project"
	}

	tmpl, err := template.New("agents").Parse(baseTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing embedded template: %w", err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, meta); err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return collapseBlankRuns(sb.String()), nil
}

// collapseBlankRuns squeezes runs of blank lines left behind by empty
// template conditionals down to a single blank line.
func collapseBlankRuns(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}
