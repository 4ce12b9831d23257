package mergedoc

import "strings"

// Default action thresholds. A classification only drives a merge
// decision above ConfidenceThreshold; two headers are linked as "the
// same section" above SimilarityThreshold. Both are empirical and can
// be overridden through MergeOptions (or forge.yml at the CLI layer).
const (
	DefaultConfidenceThreshold = 0.6
	DefaultSimilarityThreshold = 0.5
)

// MergeOptions configures one call to Merge.
type MergeOptions struct {
	// Classifier to consult per section header. Nil means the default
	// keyword taxonomy.
	Classifier *Classifier

	// ConfidenceThreshold is the minimum classification confidence
	// that triggers replace/merge handling. Zero means the default.
	ConfidenceThreshold float64

	// SimilarityThreshold is the minimum header edit similarity that
	// links an existing section to a template section. Zero means the
	// default.
	SimilarityThreshold float64

	// AddMarkers wraps the result in FORGE/USER sentinel comments.
	// The marker partition is recomputed from the parsed inputs, not
	// from the merge output; see Wrap.
	AddMarkers bool
}

func (o MergeOptions) withDefaults() MergeOptions {
	if o.Classifier == nil {
		o.Classifier = NewDefaultClassifier()
	}
	if o.ConfidenceThreshold == 0 {
		o.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if o.SimilarityThreshold == 0 {
		o.SimilarityThreshold = DefaultSimilarityThreshold
	}
	return o
}

// Merge combines a user's existing instruction document with the
// canonical template document. User-authored sections are kept
// verbatim, workflow sections follow the template, and tool listings
// from both sides are combined. Inputs must already have normalized
// line endings (NormalizeNewlines).
//
// A blank existing document returns the template unchanged, and vice
// versa. The merge never errors: malformed markdown is an expected
// input and degrades to "preserve everything unrecognized".
func Merge(existingContent, templateContent string, opts MergeOptions) string {
	if strings.TrimSpace(existingContent) == "" {
		return templateContent
	}
	if strings.TrimSpace(templateContent) == "" {
		return existingContent
	}

	opts = opts.withDefaults()
	existing := ParseSemanticSections(existingContent)
	template := ParseSemanticSections(templateContent)

	if opts.AddMarkers {
		return Wrap(markerPartition(existing, template, opts))
	}
	return mergeSections(existing, template, opts)
}

// mergeSections runs the three-pass merge plan and joins the emitted
// blocks with one blank line between them.
func mergeSections(existing, template []Section, opts MergeOptions) string {
	cls := opts.Classifier
	var blocks []string
	processed := make(map[int]bool, len(existing))

	// Pass 1: template replace sections are authoritative. Emit them
	// and consume any existing section that covers the same ground.
	for _, ts := range template {
		if ts.IsPreamble() {
			continue
		}
		m := cls.Classify(ts.Header)
		if m.Category != CategoryReplace || m.Confidence <= opts.ConfidenceThreshold {
			continue
		}
		blocks = append(blocks, strings.TrimSpace(ts.Raw))

		for i, es := range existing {
			if processed[i] || es.IsPreamble() {
				continue
			}
			em := cls.Classify(es.Header)
			if em.Category != CategoryReplace || em.Confidence <= opts.ConfidenceThreshold {
				continue
			}
			if headerSimilarity(ts.Header, es.Header) > opts.SimilarityThreshold {
				processed[i] = true
			}
		}
	}

	// Pass 2: template merge sections combine both sides. The template
	// block comes first, matched existing bodies follow it.
	for _, ts := range template {
		if ts.IsPreamble() {
			continue
		}
		m := cls.Classify(ts.Header)
		if m.Category != CategoryMerge || m.Confidence <= opts.ConfidenceThreshold {
			continue
		}
		blocks = append(blocks, strings.TrimSpace(ts.Raw))

		for i, es := range existing {
			if processed[i] || es.IsPreamble() {
				continue
			}
			em := cls.Classify(es.Header)
			if em.Category != CategoryMerge || em.Confidence <= opts.ConfidenceThreshold {
				continue
			}
			if headerSimilarity(ts.Header, es.Header) <= opts.SimilarityThreshold {
				continue
			}
			processed[i] = true
			if body := strings.TrimSpace(es.Content); body != "" {
				blocks = append(blocks, body)
			}
		}
	}

	// Pass 3: preserve the rest of the existing document in original
	// order. Unmatched high-confidence replace sections are dropped:
	// anything classified replace is workflow content the template
	// supersedes even when no matching header was found.
	for i, es := range existing {
		if processed[i] {
			continue
		}
		if es.IsPreamble() {
			if strings.TrimSpace(es.Content) != "" {
				blocks = append([]string{strings.TrimSpace(es.Raw)}, blocks...)
			}
			continue
		}
		m := cls.Classify(es.Header)
		if m.Category == CategoryReplace && m.Confidence > opts.ConfidenceThreshold {
			continue
		}
		blocks = append(blocks, strings.TrimSpace(es.Raw))
	}

	return strings.Join(blocks, "\n\n")
}

// headerSimilarity links sections across documents by plain edit
// similarity of their normalized headers.
func headerSimilarity(a, b string) float64 {
	return editSimilarity(normalizeHeader(a), normalizeHeader(b))
}
