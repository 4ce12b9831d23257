package mergedoc

import "strings"

// Sentinel comments persisted in marker-mode output. They are the only
// markup contract this tool writes and must stay byte-identical for
// round-trip recognition by humans and future tooling.
const (
	MarkerForgeStart = "<!-- FORGE:START -->"
	MarkerForgeEnd   = "<!-- FORGE:END -->"
	MarkerUserStart  = "<!-- USER:START -->"
	MarkerUserEnd    = "<!-- USER:END -->"
)

// MarkerParts is the two-way partition written by Wrap: Forge holds
// template-owned content, User holds user-owned content.
type MarkerParts struct {
	User  string
	Forge string
}

// Wrap renders the FORGE block followed by the USER block, separated
// by one blank line. A blank part produces no block at all; both parts
// blank yields the empty string.
func Wrap(parts MarkerParts) string {
	var blocks []string
	if forge := strings.TrimSpace(parts.Forge); forge != "" {
		blocks = append(blocks, MarkerForgeStart+"\n"+forge+"\n"+MarkerForgeEnd)
	}
	if user := strings.TrimSpace(parts.User); user != "" {
		blocks = append(blocks, MarkerUserStart+"\n"+user+"\n"+MarkerUserEnd)
	}
	return strings.Join(blocks, "\n\n")
}

// HasForgeMarkers reports whether content carries a complete FORGE
// sentinel pair.
func HasForgeMarkers(content string) bool {
	return strings.Contains(content, MarkerForgeStart) && strings.Contains(content, MarkerForgeEnd)
}

// HasUserMarkers reports whether content carries a complete USER
// sentinel pair.
func HasUserMarkers(content string) bool {
	return strings.Contains(content, MarkerUserStart) && strings.Contains(content, MarkerUserEnd)
}

// markerPartition derives MarkerParts directly from the parsed inputs:
// the forge side is every template section classified replace above
// the action threshold, the user side every existing section
// classified preserve above it. This is a deliberately lossy view
// relative to the full merge plan (merge-category and low-confidence
// sections fall outside both blocks), so marker mode is not guaranteed
// to be content-equivalent to a post-hoc wrapping of the plain merge.
func markerPartition(existing, template []Section, opts MergeOptions) MarkerParts {
	cls := opts.Classifier

	var forge []string
	for _, ts := range template {
		if ts.IsPreamble() {
			continue
		}
		m := cls.Classify(ts.Header)
		if m.Category == CategoryReplace && m.Confidence > opts.ConfidenceThreshold {
			forge = append(forge, strings.TrimSpace(ts.Raw))
		}
	}

	var user []string
	for _, es := range existing {
		if es.IsPreamble() {
			continue
		}
		m := cls.Classify(es.Header)
		if m.Category == CategoryPreserve && m.Confidence > opts.ConfidenceThreshold {
			user = append(user, strings.TrimSpace(es.Raw))
		}
	}

	return MarkerParts{
		User:  strings.Join(user, "\n\n"),
		Forge: strings.Join(forge, "\n\n"),
	}
}
