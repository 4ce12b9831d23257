package mergedoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_EmptySides(t *testing.T) {
	template := "## Workflow\n\nUse the stages.\n"
	existing := "## Project Description\n\nSells widgets.\n"

	assert.Equal(t, template, Merge("", template, MergeOptions{}))
	assert.Equal(t, template, Merge("  \n\t\n", template, MergeOptions{}))
	assert.Equal(t, existing, Merge(existing, "", MergeOptions{}))
	assert.Equal(t, "", Merge("", "", MergeOptions{}))
}

func TestMerge_ReplaceWinsPreserveKept(t *testing.T) {
	existing := "## Project Description\n\nSells widgets.\n\n## Workflow\n\nAd hoc.\n"
	template := "## Workflow\n\nUse 9 stages.\n"

	merged := Merge(existing, template, MergeOptions{})

	assert.Contains(t, merged, "Sells widgets.")
	assert.Contains(t, merged, "Use 9 stages.")
	assert.NotContains(t, merged, "Ad hoc.")
	// The existing workflow heading must not be duplicated.
	assert.Equal(t, 1, strings.Count(merged, "## Workflow"))
}

func TestMerge_Preservation(t *testing.T) {
	existing := "## Architecture\n\nHexagonal, reluctantly.\n\n## Weird Custom Heading\n\nKeep me too.\n"
	template := "## Workflow\n\nTemplate workflow.\n\n## Tools\n\n- forge\n"

	merged := Merge(existing, template, MergeOptions{})

	// preserve-classified and unknown sections both survive verbatim.
	assert.Contains(t, merged, "Hexagonal, reluctantly.")
	assert.Contains(t, merged, "## Weird Custom Heading")
	assert.Contains(t, merged, "Keep me too.")
}

func TestMerge_TemplateAuthority(t *testing.T) {
	template := "## Development Workflow\n\nAlways branch from main.\n"
	existings := []string{
		"",
		"plain preamble only\n",
		"## Development Workflow\n\nOld rules.\n",
		"## Notes\n\nNothing about workflow.\n",
	}
	for _, existing := range existings {
		merged := Merge(existing, template, MergeOptions{})
		assert.Contains(t, merged, "## Development Workflow")
		assert.Contains(t, merged, "Always branch from main.")
	}
}

func TestMerge_CombinesToolSections(t *testing.T) {
	existing := "## Tools\n\n- jq\n- ripgrep\n"
	template := "## Tools\n\n- forge\n"

	merged := Merge(existing, template, MergeOptions{})

	// Template block first, existing body (without its heading)
	// appended after it.
	forgeIdx := strings.Index(merged, "- forge")
	jqIdx := strings.Index(merged, "- jq")
	require.GreaterOrEqual(t, forgeIdx, 0)
	require.GreaterOrEqual(t, jqIdx, 0)
	assert.Less(t, forgeIdx, jqIdx)
	assert.Equal(t, 1, strings.Count(merged, "## Tools"))
	assert.Contains(t, merged, "- ripgrep")
}

func TestMerge_DropsUnmatchedReplaceSections(t *testing.T) {
	// The existing document has workflow content under a header the
	// template never uses. It is still dropped: replace-classified
	// content is superseded by definition.
	existing := "## Branching\n\nCommit straight to main.\n\n## Notes\n\nKeep.\n"
	template := "## Development Workflow\n\nUse feature branches.\n"

	merged := Merge(existing, template, MergeOptions{})

	assert.NotContains(t, merged, "Commit straight to main.")
	assert.Contains(t, merged, "Use feature branches.")
	assert.Contains(t, merged, "Keep.")
}

func TestMerge_PreamblePrepended(t *testing.T) {
	existing := "This project predates the tooling.\n\n## Workflow\n\nOld.\n"
	template := "## Workflow\n\nNew.\n"

	merged := Merge(existing, template, MergeOptions{})

	assert.True(t, strings.HasPrefix(merged, "This project predates the tooling."))
	assert.Contains(t, merged, "New.")
	assert.NotContains(t, merged, "Old.")
}

func TestMerge_ExistingSectionsKeepOriginalOrder(t *testing.T) {
	existing := "## About\n\nfirst\n\n## Conventions\n\nsecond\n\n## Notes\n\nthird\n"
	template := "## Workflow\n\nw\n"

	merged := Merge(existing, template, MergeOptions{})

	a := strings.Index(merged, "first")
	b := strings.Index(merged, "second")
	c := strings.Index(merged, "third")
	assert.True(t, a < b && b < c, "existing sections reordered: %q", merged)
}

func TestMerge_ThresholdOverrides(t *testing.T) {
	// With an impossible confidence threshold nothing classifies high
	// enough to replace, so the existing workflow section survives.
	existing := "## Workflow\n\nAd hoc.\n"
	template := "## Workflow\n\nTemplate.\n"

	merged := Merge(existing, template, MergeOptions{ConfidenceThreshold: 1.0})
	assert.Contains(t, merged, "Ad hoc.")
	assert.NotContains(t, merged, "Template.")
}

func TestMerge_CustomClassifier(t *testing.T) {
	cls := NewClassifier(KeywordTable{Replace: []string{"ritual"}})
	existing := "## Ritual\n\nOld steps.\n"
	template := "## Ritual\n\nNew steps.\n"

	merged := Merge(existing, template, MergeOptions{Classifier: cls})
	assert.Contains(t, merged, "New steps.")
	assert.NotContains(t, merged, "Old steps.")
}

func TestMerge_WithMarkers(t *testing.T) {
	existing := "## Project Description\n\nSells widgets.\n\n## Workflow\n\nAd hoc.\n"
	template := "## Workflow\n\nUse 9 stages.\n"

	merged := Merge(existing, template, MergeOptions{AddMarkers: true})

	forgeStart := strings.Index(merged, MarkerForgeStart)
	forgeEnd := strings.Index(merged, MarkerForgeEnd)
	userStart := strings.Index(merged, MarkerUserStart)
	userEnd := strings.Index(merged, MarkerUserEnd)
	require.True(t, forgeStart >= 0 && forgeEnd > forgeStart)
	require.True(t, userStart > forgeEnd && userEnd > userStart)

	forgeBlock := merged[forgeStart:forgeEnd]
	userBlock := merged[userStart:userEnd]
	assert.Contains(t, forgeBlock, "Use 9 stages.")
	assert.Contains(t, userBlock, "Sells widgets.")
	// The marker partition is lossy: the superseded workflow body is
	// in neither block.
	assert.NotContains(t, merged, "Ad hoc.")
}

func TestMerge_BlockSeparation(t *testing.T) {
	existing := "## About\n\nstory\n"
	template := "## Workflow\n\nsteps\n"

	merged := Merge(existing, template, MergeOptions{})
	blocks := strings.Split(merged, "\n\n")
	require.GreaterOrEqual(t, len(blocks), 2)
	assert.NotContains(t, merged, "\n\n\n")
}
