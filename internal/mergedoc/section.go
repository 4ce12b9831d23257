// Package mergedoc implements the semantic markdown merge engine behind
// `forge init`. It splits instruction documents into heading-delimited
// sections, classifies each section header into a semantic category
// (preserve, replace, merge), and combines a user's existing document
// with the canonical template so that user-authored content survives,
// workflow content follows the template, and tool listings are combined.
//
// Markdown bodies are treated as opaque text: tables, code fences and
// inline formatting pass through untouched. All functions are pure and
// safe for concurrent use.
package mergedoc

import (
	"regexp"
	"strings"
)

// Section is a contiguous span of a markdown document: one heading and
// its body, or the preamble before the first heading.
type Section struct {
	// Level is the heading depth (1-6), or 0 for the preamble.
	Level int

	// Header is the heading text with '#' markers and surrounding
	// whitespace stripped. Empty for the preamble.
	Header string

	// Content is the body text below the heading (or the preamble
	// lines), trimmed of leading and trailing blank lines.
	Content string

	// Raw is the exact original text of the section, heading line
	// included, used for lossless reproduction in merge output.
	Raw string

	// StartLine and EndLine are zero-based source line indices,
	// inclusive, kept for diagnostics.
	StartLine int
	EndLine   int
}

// IsPreamble reports whether the section is content that appeared
// before any heading.
func (s Section) IsPreamble() bool { return s.Level == 0 }

// headingRe matches an ATX heading line: 1-6 '#' markers, at least one
// space, then non-empty text.
var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// NormalizeNewlines converts \r\n and lone \r line endings to \n.
// Callers must apply it to both merge inputs before parsing so that
// header similarity comparisons behave consistently.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// ParseSemanticSections splits text into an ordered list of sections.
// Lines before the first heading become a single preamble section, but
// only when they contain non-whitespace; an all-blank prefix yields no
// preamble. Two consecutive headings produce two sections, the first
// with empty content. Empty input returns nil.
//
// Concatenating the line ranges of the returned sections in order
// covers every non-dropped line of the source exactly once.
func ParseSemanticSections(text string) []Section {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	var sections []Section

	open := false
	var cur Section
	var rawLines []string

	flush := func(endLine int) {
		if !open {
			return
		}
		cur.Raw = strings.Join(rawLines, "\n")
		cur.Content = trimBlankEdges(bodyLines(rawLines, cur.Level > 0))
		cur.EndLine = endLine
		// Drop an all-blank preamble.
		if cur.IsPreamble() && cur.Content == "" {
			open = false
			return
		}
		sections = append(sections, cur)
		open = false
	}

	for i, line := range lines {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush(i - 1)
			cur = Section{
				Level:     len(m[1]),
				Header:    strings.TrimSpace(m[2]),
				StartLine: i,
			}
			rawLines = []string{line}
			open = true
			continue
		}

		if !open {
			// Preamble begins at the first line of the document.
			cur = Section{Level: 0, StartLine: i}
			rawLines = nil
			open = true
		}
		rawLines = append(rawLines, line)
	}
	flush(len(lines) - 1)

	return sections
}

// bodyLines returns the section body: everything below the heading
// line, or all lines for the preamble.
func bodyLines(rawLines []string, hasHeading bool) []string {
	if hasHeading {
		return rawLines[1:]
	}
	return rawLines
}

// trimBlankEdges joins lines and strips leading/trailing blank lines
// while keeping interior blank lines intact.
func trimBlankEdges(lines []string) string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
