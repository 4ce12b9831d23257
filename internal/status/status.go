// Package status inspects a project's instruction file and reports
// what forge knows about it: whether it exists, whether it carries
// sentinel markers, and how its sections classify.
package status

import (
	"os"
	"path/filepath"

	"github.com/forgekit/forge/internal/mergedoc"
)

// InstructionStatus describes the state of one instruction file.
type InstructionStatus struct {
	TargetFile string // path relative to the project root
	Exists     bool
	SizeBytes  int64

	// Marker blocks are advisory: their presence means a previous init
	// ran with markers enabled, not that the partition is current.
	HasForgeMarkers bool
	HasUserMarkers  bool

	SectionCount int
	// Categories counts sections per classified category; sections
	// below the action threshold count as unknown.
	Categories map[mergedoc.Category]int
}

// GetInstructionStatus classifies the sections of the instruction file
// under projectRoot. A missing file is not an error; the returned
// status simply has Exists=false.
func GetInstructionStatus(projectRoot, targetFile string, cls *mergedoc.Classifier) (InstructionStatus, error) {
	if cls == nil {
		cls = mergedoc.NewDefaultClassifier()
	}

	st := InstructionStatus{
		TargetFile: targetFile,
		Categories: make(map[mergedoc.Category]int),
	}

	path := filepath.Join(projectRoot, targetFile)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return st, nil
	}
	if err != nil {
		return st, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	content := mergedoc.NormalizeNewlines(string(data))

	st.Exists = true
	st.SizeBytes = info.Size()
	st.HasForgeMarkers = mergedoc.HasForgeMarkers(content)
	st.HasUserMarkers = mergedoc.HasUserMarkers(content)

	for _, sec := range mergedoc.ParseSemanticSections(content) {
		if sec.IsPreamble() {
			continue
		}
		st.SectionCount++
		m := cls.Classify(sec.Header)
		if m.Confidence <= mergedoc.DefaultConfidenceThreshold {
			st.Categories[mergedoc.CategoryUnknown]++
			continue
		}
		st.Categories[m.Category]++
	}

	return st, nil
}
