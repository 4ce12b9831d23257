// Package detect derives project metadata (name, language, test and
// build commands) from manifest files in the project root. The merge
// engine never sees any of this; it only flows into the rendered
// template.
package detect

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/forgekit/forge/internal/gitops"
)

// ProjectMeta is the metadata substituted into the canonical template.
type ProjectMeta struct {
	Name         string
	Language     string
	TestCommand  string
	BuildCommand string
}

// manifestRule maps one manifest file to the language and commands it
// implies. Rules are checked in priority order; the first hit wins.
type manifestRule struct {
	file  string
	lang  string
	test  string
	build string
}

var manifestRules = []manifestRule{
	{file: "go.mod", lang: "Go", test: "go test ./...", build: "go build ./..."},
	{file: "Cargo.toml", lang: "Rust", test: "cargo test", build: "cargo build"},
	{file: "package.json", lang: "JavaScript", test: "npm test", build: "npm run build"},
	{file: "pyproject.toml", lang: "Python", test: "pytest"},
	{file: "requirements.txt", lang: "Python", test: "pytest"},
	{file: "pom.xml", lang: "Java", test: "mvn test", build: "mvn package"},
	{file: "build.gradle", lang: "Java", test: "gradle test", build: "gradle build"},
	{file: "Gemfile", lang: "Ruby", test: "bundle exec rake test"},
	{file: "mix.exs", lang: "Elixir", test: "mix test", build: "mix compile"},
}

// Detect inspects root and returns the best-effort project metadata.
// The name comes from the origin remote when the directory is a git
// repository, otherwise from the directory name. Manifests are stated
// concurrently; an unrecognized project yields empty Language and
// command fields, which the template renders as placeholders.
func Detect(ctx context.Context, root string) (ProjectMeta, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return ProjectMeta{}, err
	}

	meta := ProjectMeta{Name: projectName(abs)}

	var mu sync.Mutex
	found := make(map[string]bool, len(manifestRules))

	g, ctx := errgroup.WithContext(ctx)
	for _, rule := range manifestRules {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := os.Stat(filepath.Join(abs, rule.file)); err == nil {
				mu.Lock()
				found[rule.file] = true
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ProjectMeta{}, err
	}

	for _, rule := range manifestRules {
		if !found[rule.file] {
			continue
		}
		meta.Language = rule.lang
		meta.TestCommand = rule.test
		meta.BuildCommand = rule.build
		break
	}

	// A package.json next to a tsconfig.json means TypeScript.
	if meta.Language == "JavaScript" {
		if _, err := os.Stat(filepath.Join(abs, "tsconfig.json")); err == nil {
			meta.Language = "TypeScript"
		}
	}

	return meta, nil
}

// projectName prefers the git remote name over the directory name.
func projectName(abs string) string {
	if name := gitops.ProjectNameFromRemote(gitops.RemoteURL(abs)); name != "" {
		return name
	}
	return filepath.Base(abs)
}
