package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/forgekit/forge/internal/config"
	"github.com/forgekit/forge/internal/mergedoc"
	"github.com/forgekit/forge/internal/state"
	"github.com/forgekit/forge/internal/status"
)

// runStatus reports what forge knows about a project's instruction file.
func runStatus(args []string) error {
	fs := flag.NewFlagSet("forge status", flag.ContinueOnError)
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

	opts := mergeOptions(cfg)
	st, err := status.GetInstructionStatus(abs, cfg.Target(), opts.Classifier)
	if err != nil {
		return err
	}

	if !st.Exists {
		fmt.Printf("%s: not found\n", st.TargetFile)
		fmt.Println("Run 'forge init' to create it.")
		return nil
	}

	fmt.Printf("%s: %d bytes, %d sections\n", st.TargetFile, st.SizeBytes, st.SectionCount)
	for _, cat := range []mergedoc.Category{
		mergedoc.CategoryPreserve,
		mergedoc.CategoryReplace,
		mergedoc.CategoryMerge,
		mergedoc.CategoryUnknown,
	} {
		if n := st.Categories[cat]; n > 0 {
			fmt.Printf("  %-8s %d\n", cat, n)
		}
	}
	if st.HasForgeMarkers || st.HasUserMarkers {
		fmt.Printf("  markers: forge=%v user=%v\n", st.HasForgeMarkers, st.HasUserMarkers)
	}

	store := state.NewStore(abs)
	saved, err := store.Load()
	if err != nil {
		return err
	}
	if saved.LastMergeAt != "" {
		fmt.Printf("  last merge: %s\n", saved.LastMergeAt)
	}
	return nil
}
