package ranker

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table maps lower-cased trigger phrases to expansion terms for the keyword
// ranker. The table is data, not code: the built-in defaults below can be
// replaced wholesale by loading a YAML file (see resources/synonyms.yaml).
type Table map[string][]string

// DefaultTable returns the built-in hair-care synonym table.
func DefaultTable() Table {
	return Table{
		"dry":       {"moisture", "hydrat", "nourish", "oil", "health", "sooth"},
		"dandruff":  {"flak", "scalp", "anti-dandruff", "shampoo", "itch"},
		"hair fall": {"fall", "loss", "minoxidil", "growth", "serum"},
		"hairfall":  {"fall", "loss", "minoxidil", "growth", "serum"},
		"density":   {"thick", "volum", "growth", "biotin"},
		"thin":      {"thick", "volum", "density", "growth"},
		"oily":      {"oil", "sebum", "cleanse", "shampoo"},
		"frizz":     {"smooth", "serum", "condition", "keratin"},
		"growth":    {"minoxidil", "serum", "biotin", "regrow"},
	}
}

// Expand returns the union of the base keywords and the expansion terms of
// every trigger phrase that occurs as a substring of the lowered query. The
// union dedupes, so a query that already contains an expansion term scores no
// differently than one that only contains the trigger.
func (t Table) Expand(base []string, loweredQuery string) []string {
	seen := make(map[string]struct{}, len(base))
	keywords := make([]string, 0, len(base))

	add := func(term string) {
		if _, ok := seen[term]; ok {
			return
		}

		seen[term] = struct{}{}
		keywords = append(keywords, term)
	}

	for _, kw := range base {
		add(kw)
	}

	// sort trigger phrases so expansion order is deterministic
	phrases := make([]string, 0, len(t))
	for phrase := range t {
		phrases = append(phrases, phrase)
	}

	sort.Strings(phrases)

	for _, phrase := range phrases {
		if !strings.Contains(loweredQuery, phrase) {
			continue
		}

		for _, term := range t[phrase] {
			add(term)
		}
	}

	return keywords
}

// LoadTable reads a synonym table from a YAML file mapping trigger phrases to
// expansion term lists. Phrases and terms are lower-cased on load.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read synonym table: %w", err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse synonym table: %w", err)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("synonym table %s is empty", path)
	}

	table := make(Table, len(raw))

	for phrase, terms := range raw {
		lowered := make([]string, len(terms))
		for i, term := range terms {
			lowered[i] = strings.ToLower(term)
		}

		table[strings.ToLower(phrase)] = lowered
	}

	return table, nil
}
