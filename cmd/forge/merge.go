package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/forgekit/forge/internal/mergedoc"
)

// runMerge merges two instruction documents given explicitly, without
// any project detection or template rendering. Useful for inspecting
// the engine and for scripting.
func runMerge(args []string) error {
	var (
		existingPath string
		templatePath string
		outPath      string
		addMarkers   bool
	)

	fs := flag.NewFlagSet("forge merge", flag.ContinueOnError)
	fs.StringVar(&existingPath, "existing", "", "path to the existing instruction document")
	fs.StringVar(&templatePath, "template", "", "path to the template document")
	fs.StringVar(&outPath, "o", "", "write output here instead of stdout")
	fs.BoolVar(&addMarkers, "add-markers", false, "wrap output in FORGE/USER sentinel comments")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if templatePath == "" {
		return fmt.Errorf("-template is required")
	}

	templateContent, err := readNormalized(templatePath)
	if err != nil {
		return err
	}

	// The existing side is optional: absent means a fresh document.
	var existingContent string
	if existingPath != "" {
		existingContent, err = readNormalized(existingPath)
		if err != nil {
			return err
		}
	}

	merged := mergedoc.Merge(existingContent, templateContent, mergedoc.MergeOptions{
		AddMarkers: addMarkers,
	})
	if !endsWithNewline(merged) && merged != "" {
		merged += "\n"
	}

	if outPath == "" {
		fmt.Print(merged)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(merged), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("  wrote %s\n", outPath)
	return nil
}

func readNormalized(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return mergedoc.NormalizeNewlines(string(data)), nil
}
