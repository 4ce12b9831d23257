package mcptools

// --- MCP Tool Types for the forge server mode (--serve-mcp) ---
// These tools are exposed when the binary runs as an MCP server so
// agents can merge and inspect instruction files through structured
// calls instead of shelling out.

// MergeInstructionsInput is the input for the merge_instructions MCP tool.
type MergeInstructionsInput struct {
	Existing   string `json:"existing" jsonschema:"the user's existing instruction document (may be empty)"`
	Template   string `json:"template" jsonschema:"the canonical template document"`
	AddMarkers bool   `json:"addMarkers,omitempty" jsonschema:"wrap output in FORGE/USER sentinel comments"`
}

// MergeInstructionsOutput is the result of the merge_instructions MCP tool.
type MergeInstructionsOutput struct {
	Merged           string `json:"merged"`
	ExistingSections int    `json:"existingSections"`
	TemplateSections int    `json:"templateSections"`
}

// ClassifySectionInput is the input for the classify_section MCP tool.
type ClassifySectionInput struct {
	Header string `json:"header" jsonschema:"the section header text to classify"`
}

// ClassifySectionOutput is the result of the classify_section MCP tool.
type ClassifySectionOutput struct {
	Category   string  `json:"category"` // preserve, replace, merge, or unknown
	Confidence float64 `json:"confidence"`
}

// GetInstructionStatusInput is the input for the get_instruction_status MCP tool.
type GetInstructionStatusInput struct {
	ProjectRoot string `json:"projectRoot,omitempty" jsonschema:"path to the project (default: cwd)"`
	TargetFile  string `json:"targetFile,omitempty" jsonschema:"instruction filename (default: AGENTS.md)"`
}

// GetInstructionStatusOutput is the result of the get_instruction_status MCP tool.
type GetInstructionStatusOutput struct {
	TargetFile      string         `json:"targetFile"`
	Exists          bool           `json:"exists"`
	SizeBytes       int64          `json:"sizeBytes"`
	HasForgeMarkers bool           `json:"hasForgeMarkers"`
	HasUserMarkers  bool           `json:"hasUserMarkers"`
	SectionCount    int            `json:"sectionCount"`
	Categories      map[string]int `json:"categories,omitempty"`
}
