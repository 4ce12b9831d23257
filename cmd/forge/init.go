package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forgekit/forge/internal/config"
	"github.com/forgekit/forge/internal/detect"
	"github.com/forgekit/forge/internal/mergedoc"
	"github.com/forgekit/forge/internal/state"
	"github.com/forgekit/forge/internal/template"
)

// runInit generates the canonical instruction file for a project. When
// the target already exists its content is merged with the template:
// user sections survive, workflow sections follow the template, tool
// listings are combined.
func runInit(args []string) error {
	var (
		force        bool
		keepExisting bool
		addMarkers   bool
		dryRun       bool
		targetFlag   string
	)

	fs := flag.NewFlagSet("forge init", flag.ContinueOnError)
	fs.BoolVar(&force, "force", false, "overwrite the target with the pure template, discarding existing content")
	fs.BoolVar(&keepExisting, "keep-existing", false, "skip entirely when the target file already exists")
	fs.BoolVar(&addMarkers, "add-markers", false, "wrap output in FORGE/USER sentinel comments")
	fs.BoolVar(&dryRun, "dry-run", false, "print the result instead of writing it")
	fs.StringVar(&targetFlag, "target", "", "instruction filename (default from forge.yml, else AGENTS.md)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving project root: %w", err)
	}

	cfg, err := config.Load(abs)
	if err != nil {
		return fmt.Errorf("loading forge.yml: %w", err)
	}

	target := cfg.Target()
	if targetFlag != "" {
		target = targetFlag
	}
	if cfg.AddMarkers {
		addMarkers = true
	}
	targetPath := filepath.Join(abs, target)

	meta, err := detect.Detect(context.Background(), abs)
	if err != nil {
		return fmt.Errorf("detecting project metadata: %w", err)
	}
	fmt.Printf("Project: %s", meta.Name)
	if meta.Language != "" {
		fmt.Printf(" (%s)", meta.Language)
	}
	fmt.Println()

	templateContent, err := template.Render(meta)
	if err != nil {
		return err
	}

	existingContent, exists, err := readTarget(targetPath)
	if err != nil {
		return err
	}

	opts := mergeOptions(cfg)
	opts.AddMarkers = addMarkers

	var output string
	var action string
	switch {
	case exists && keepExisting:
		fmt.Printf("  skipped %s (exists, remove -keep-existing to merge)\n", target)
		return nil
	case exists && !force:
		output = mergedoc.Merge(existingContent, mergedoc.NormalizeNewlines(templateContent), opts)
		action = "merged"
		if dryRun {
			reportDropped(existingContent, opts)
		}
	default:
		// Fresh install, or -force discarding the old file. A blank
		// existing side short-circuits the merge, so the template is
		// written as-is; markers only apply when merging.
		output = templateContent
		action = "created"
		if exists {
			action = "overwrote"
		}
	}

	if !endsWithNewline(output) {
		output += "\n"
	}

	if dryRun {
		fmt.Println()
		fmt.Print(output)
		return nil
	}

	if err := os.WriteFile(targetPath, []byte(output), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", targetPath, err)
	}
	fmt.Printf("  %s %s\n", action, target)

	store := state.NewStore(abs)
	if err := store.RecordMerge(target, templateContent); err != nil {
		return fmt.Errorf("recording state: %w", err)
	}
	fmt.Printf("  updated %s\n", dotRelative(abs, store.Path()))
	return nil
}

// readTarget loads the existing instruction file with normalized line
// endings. A missing file is not an error.
func readTarget(path string) (content string, exists bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return mergedoc.NormalizeNewlines(string(data)), true, nil
}

// mergeOptions builds engine options from the project config.
func mergeOptions(cfg *config.ProjectConfig) mergedoc.MergeOptions {
	table := mergedoc.DefaultKeywords()
	table.Preserve = append(table.Preserve, cfg.ExtraKeywords.Preserve...)
	table.Replace = append(table.Replace, cfg.ExtraKeywords.Replace...)
	table.Merge = append(table.Merge, cfg.ExtraKeywords.Merge...)

	return mergedoc.MergeOptions{
		Classifier:          mergedoc.NewClassifier(table),
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		SimilarityThreshold: cfg.SimilarityThreshold,
	}
}

// reportDropped lists existing workflow sections that the merge
// superseded, so a dry run shows what would disappear.
func reportDropped(existingContent string, opts mergedoc.MergeOptions) {
	cls := opts.Classifier
	if cls == nil {
		cls = mergedoc.NewDefaultClassifier()
	}
	threshold := opts.ConfidenceThreshold
	if threshold == 0 {
		threshold = mergedoc.DefaultConfidenceThreshold
	}

	for _, sec := range mergedoc.ParseSemanticSections(existingContent) {
		if sec.IsPreamble() {
			continue
		}
		m := cls.Classify(sec.Header)
		if m.Category != mergedoc.CategoryReplace || m.Confidence <= threshold {
			continue
		}
		fmt.Printf("  superseded section %q (lines %d-%d)\n", sec.Header, sec.StartLine+1, sec.EndLine+1)
	}
}

func endsWithNewline(s string) bool {
	return len(s) > 0 && s[len(s)-1] == '\n'
}

// dotRelative returns a display path relative to the project root,
// prefixed with "./".
func dotRelative(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return "./" + rel
}
