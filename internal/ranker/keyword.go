package ranker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"codeberg.org/mane/server/catalog/products"
)

// TextRanker scores the whole catalog in memory against a free-text query
// using keyword and domain-synonym matching.
type TextRanker struct {
	catalog  CatalogReader
	synonyms Table
	mode     ScoringMode
}

func NewTextRanker(catalog CatalogReader, synonyms Table, mode ScoringMode) *TextRanker {
	if synonyms == nil {
		synonyms = DefaultTable()
	}

	if mode == "" {
		mode = ModePresence
	}

	return &TextRanker{
		catalog:  catalog,
		synonyms: synonyms,
		mode:     mode,
	}
}

// Rank returns the top k products by descending keyword score. Products with
// no keyword hits backfill the tail in catalog insertion order, so a query
// with no matches still returns the first k products.
func (r *TextRanker) Rank(ctx context.Context, query string, k int) ([]RankedResult, error) {
	catalog, err := r.catalog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return rankKeywords(catalog, query, k, r.synonyms, r.mode), nil
}

// Tokenize lower-cases the query, splits on whitespace, and discards tokens
// of length <= 2.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))

	for _, field := range fields {
		if utf8.RuneCountInString(field) > 2 {
			tokens = append(tokens, field)
		}
	}

	return tokens
}

type scoredIndex struct {
	idx   int
	score float64
}

// rankKeywords is the pure scoring core shared by Rank and the tests.
func rankKeywords(catalog []products.Product, query string, k int, synonyms Table, mode ScoringMode) []RankedResult {
	if len(catalog) == 0 || k <= 0 {
		return nil
	}

	loweredQuery := strings.ToLower(query)
	keywords := synonyms.Expand(Tokenize(query), loweredQuery)

	scored := make([]scoredIndex, 0, len(catalog))

	for i, p := range catalog {
		var score float64

		switch mode {
		case ModeFrequency:
			score = frequencyScore(p, keywords)
		default:
			score = presenceScore(p, keywords)
		}

		if score > 0 {
			scored = append(scored, scoredIndex{idx: i, score: score})
		}
	}

	// stable sort keeps catalog insertion order among equal scores
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	matched := make(map[int]bool, len(scored))
	results := make([]RankedResult, 0, k)

	for _, s := range scored {
		matched[s.idx] = true
		results = append(results, RankedResult{Product: catalog[s.idx], Score: s.score})
	}

	// backfill with zero-score products in catalog order until k or exhaustion
	for i, p := range catalog {
		if len(results) >= k {
			break
		}

		if matched[i] {
			continue
		}

		results = append(results, RankedResult{Product: p, Score: 0})
	}

	return results
}

// presenceScore sums field weights for every keyword present as a substring
// of the field; multiple occurrences within a field do not double-count.
func presenceScore(p products.Product, keywords []string) float64 {
	title := strings.ToLower(p.Title)
	description := strings.ToLower(p.Description)
	features := strings.ToLower(p.Features)
	tags := strings.ToLower(strings.Join(p.Tags, " "))

	var score float64

	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			score += weightTitle
		}

		if description != "" && strings.Contains(description, kw) {
			score += weightDescription
		}

		if features != "" && strings.Contains(features, kw) {
			score += weightFeatures
		}

		if tags != "" && strings.Contains(tags, kw) {
			score += weightTags
		}
	}

	return score
}

// frequencyScore counts keyword occurrences over one concatenated haystack.
func frequencyScore(p products.Product, keywords []string) float64 {
	haystack := strings.ToLower(strings.Join([]string{
		p.Title,
		p.Description,
		p.Features,
		strings.Join(p.Tags, " "),
	}, " "))

	var score float64

	for _, kw := range keywords {
		score += float64(strings.Count(haystack, kw))
	}

	return score
}
