package mcptools

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/forgekit/forge/internal/config"
	"github.com/forgekit/forge/internal/mergedoc"
	"github.com/forgekit/forge/internal/status"
)

// ForgeService handles MCP tool calls for the forge server mode. It
// wraps a classifier and merge options shared across calls; the merge
// engine itself is pure, so the service needs no locking.
type ForgeService struct {
	classifier *mergedoc.Classifier
	opts       mergedoc.MergeOptions
}

// NewForgeService creates a ForgeService with the given classifier and
// merge options. A nil classifier means the default taxonomy.
func NewForgeService(cls *mergedoc.Classifier, opts mergedoc.MergeOptions) *ForgeService {
	if cls == nil {
		cls = mergedoc.NewDefaultClassifier()
	}
	opts.Classifier = cls
	return &ForgeService{classifier: cls, opts: opts}
}

// MergeInstructions merges an existing instruction document with a
// template document and returns the combined text.
func (s *ForgeService) MergeInstructions(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MergeInstructionsInput,
) (*mcp.CallToolResult, MergeInstructionsOutput, error) {
	existing := mergedoc.NormalizeNewlines(input.Existing)
	template := mergedoc.NormalizeNewlines(input.Template)

	opts := s.opts
	opts.AddMarkers = input.AddMarkers
	merged := mergedoc.Merge(existing, template, opts)

	return nil, MergeInstructionsOutput{
		Merged:           merged,
		ExistingSections: len(mergedoc.ParseSemanticSections(existing)),
		TemplateSections: len(mergedoc.ParseSemanticSections(template)),
	}, nil
}

// ClassifySection classifies a single section header.
func (s *ForgeService) ClassifySection(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ClassifySectionInput,
) (*mcp.CallToolResult, ClassifySectionOutput, error) {
	m := s.classifier.Classify(input.Header)
	return nil, ClassifySectionOutput{
		Category:   string(m.Category),
		Confidence: m.Confidence,
	}, nil
}

// GetInstructionStatus reports the state of a project's instruction file.
func (s *ForgeService) GetInstructionStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetInstructionStatusInput,
) (*mcp.CallToolResult, GetInstructionStatusOutput, error) {
	root := input.ProjectRoot
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, GetInstructionStatusOutput{}, err
		}
		root = cwd
	}

	target := input.TargetFile
	if target == "" {
		cfg, err := config.Load(root)
		if err != nil {
			return nil, GetInstructionStatusOutput{}, fmt.Errorf("loading project config: %w", err)
		}
		target = cfg.Target()
	}

	st, err := status.GetInstructionStatus(root, target, s.classifier)
	if err != nil {
		return nil, GetInstructionStatusOutput{}, err
	}

	out := GetInstructionStatusOutput{
		TargetFile:      st.TargetFile,
		Exists:          st.Exists,
		SizeBytes:       st.SizeBytes,
		HasForgeMarkers: st.HasForgeMarkers,
		HasUserMarkers:  st.HasUserMarkers,
		SectionCount:    st.SectionCount,
	}
	if len(st.Categories) > 0 {
		out.Categories = make(map[string]int, len(st.Categories))
		for cat, n := range st.Categories {
			out.Categories[string(cat)] = n
		}
	}
	return nil, out, nil
}
