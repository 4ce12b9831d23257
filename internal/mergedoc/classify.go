package mergedoc

import "strings"

// Category is the inferred semantic role of a section header.
type Category string

const (
	// CategoryPreserve marks user-authored context that must survive a
	// merge untouched.
	CategoryPreserve Category = "preserve"

	// CategoryReplace marks workflow/process content where the
	// template version is authoritative.
	CategoryReplace Category = "replace"

	// CategoryMerge marks tool and integration listings combined from
	// both documents.
	CategoryMerge Category = "merge"

	// CategoryUnknown is the fallback for headers matching no keyword;
	// unknown sections are preserved.
	CategoryUnknown Category = "unknown"
)

// CategoryMatch is the result of classifying one section header.
type CategoryMatch struct {
	Category   Category
	Confidence float64 // in [0,1]; 1.0 for an exact keyword match
}

// KeywordTable holds the canonical header phrases for each category.
// It is configuration data: construct an alternative table to test or
// tune the taxonomy without touching the classifier.
type KeywordTable struct {
	Preserve []string
	Replace  []string
	Merge    []string
}

// DefaultKeywords returns the built-in header taxonomy used by the
// init workflow.
func DefaultKeywords() KeywordTable {
	return KeywordTable{
		Preserve: []string{
			"project description",
			"description",
			"overview",
			"about",
			"architecture",
			"project structure",
			"domain knowledge",
			"business context",
			"background",
			"context",
			"conventions",
			"code style",
			"style guide",
			"team notes",
			"notes",
			"goals",
		},
		Replace: []string{
			"workflow",
			"development workflow",
			"forge workflow",
			"process",
			"development process",
			"stages",
			"branching",
			"branching strategy",
			"commit process",
			"pull request process",
			"task management",
			"working agreement",
		},
		Merge: []string{
			"tools",
			"tooling",
			"tools & integrations",
			"integrations",
			"commands",
			"useful commands",
			"scripts",
			"mcp servers",
			"dependencies",
		},
	}
}

// Classifier maps section headers to categories by exact and fuzzy
// keyword matching. It is stateless and safe for concurrent use.
type Classifier struct {
	table KeywordTable
}

// NewClassifier creates a Classifier over the given keyword table.
func NewClassifier(table KeywordTable) *Classifier {
	return &Classifier{table: table}
}

// NewDefaultClassifier creates a Classifier over DefaultKeywords.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultKeywords())
}

// Classify returns the best category match for a header. An exact
// match (case/whitespace-insensitive) against any keyword returns that
// category with confidence 1.0; otherwise each keyword is scored by
// the better of edit similarity and containment similarity, and the
// single best score across all tables wins. Ties keep the first
// keyword scanned (preserve, then replace, then merge, in table
// order). A header matching nothing, or an empty header, yields
// {CategoryUnknown, 0}.
func (c *Classifier) Classify(header string) CategoryMatch {
	normalized := normalizeHeader(header)
	if normalized == "" {
		return CategoryMatch{Category: CategoryUnknown}
	}

	best := CategoryMatch{Category: CategoryUnknown}
	scan := func(category Category, keywords []string) bool {
		for _, k := range keywords {
			kw := normalizeHeader(k)
			if kw == "" {
				continue
			}
			if normalized == kw {
				best = CategoryMatch{Category: category, Confidence: 1.0}
				return true
			}
			score := editSimilarity(normalized, kw)
			if cs, ok := containmentSimilarity(normalized, kw); ok && cs > score {
				score = cs
			}
			if score > best.Confidence {
				best = CategoryMatch{Category: category, Confidence: score}
			}
		}
		return false
	}

	if scan(CategoryPreserve, c.table.Preserve) {
		return best
	}
	if scan(CategoryReplace, c.table.Replace) {
		return best
	}
	if scan(CategoryMerge, c.table.Merge) {
		return best
	}

	if best.Confidence == 0 {
		return CategoryMatch{Category: CategoryUnknown}
	}
	return best
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// editSimilarity is 1 − levenshtein(a,b) / max(len(a), len(b)),
// computed over runes. Both inputs are assumed normalized and
// non-empty together; two empty strings score 0.
func editSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

// containmentSimilarity scores one string containing the other as a
// substring: min(len)/max(len). It lets "development workflow" match
// the keyword "workflow" strongly even though edit distance alone
// penalizes the length difference. Reports ok=false when neither
// string contains the other.
func containmentSimilarity(a, b string) (float64, bool) {
	if a == "" || b == "" {
		return 0, false
	}
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return 0, false
	}
	la, lb := float64(len([]rune(a))), float64(len([]rune(b)))
	if la > lb {
		return lb / la, true
	}
	return la / lb, true
}

// levenshtein computes edit distance with a two-row table, keeping
// allocations flat across the header×keyword scan.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
