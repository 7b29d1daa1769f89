package assistant

import (
	"fmt"
	"strings"

	"codeberg.org/mane/server/catalog/products"
)

const (
	// rendered verbatim when retrieval produced nothing; downstream format
	// tests depend on the exact sentence
	noProductsSentence = "No products found in the database."

	contextHeader = "Here are the relevant products from our catalog:"

	currencySymbol  = "₹"
	defaultCategory = "Hair Care"

	maxDescriptionRunes = 300
	maxFeaturesRunes    = 150
	maxContextTags      = 5
)

// BuildContext renders ranked products into the text block handed to the
// generation model: a header line, then one numbered block per product.
func BuildContext(list []products.Product) string {
	if len(list) == 0 {
		return noProductsSentence
	}

	var builder strings.Builder

	builder.WriteString(contextHeader)
	builder.WriteString("\n")

	for i, p := range list {
		category := p.Category
		if category == "" {
			category = defaultCategory
		}

		features := p.Features
		if features == "" {
			features = "N/A"
		}

		tags := "N/A"
		if len(p.Tags) > 0 {
			shown := p.Tags
			if len(shown) > maxContextTags {
				shown = shown[:maxContextTags]
			}

			tags = strings.Join(shown, ", ")
		}

		builder.WriteString(fmt.Sprintf("\nProduct %d:\n", i+1))
		builder.WriteString(fmt.Sprintf("- Name: %s\n", p.Title))
		builder.WriteString(fmt.Sprintf("- Price: %s%.2f\n", currencySymbol, p.Price))
		builder.WriteString(fmt.Sprintf("- Category: %s\n", category))
		builder.WriteString(fmt.Sprintf("- Description: %s\n", truncateRunes(p.Description, maxDescriptionRunes)))
		builder.WriteString(fmt.Sprintf("- Features: %s\n", truncateRunes(features, maxFeaturesRunes)))
		builder.WriteString(fmt.Sprintf("- Tags: %s\n", tags))
	}

	return builder.String()
}

// truncateRunes cuts s to at most max runes. The cutoff is a hard character
// count, not word-boundary aware, and never splits a multi-byte rune.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}

// assembles the system prompt around the product context block
func buildSystemPrompt(productContext string) string {
	return fmt.Sprintf(`You are a helpful shopping assistant for Mane, a hair care brand. Your role is to:

1. Help customers find the right products for their hair concerns
2. Provide personalized recommendations based on their specific needs
3. Ask clarifying questions when the query is vague
4. Explain why you're recommending specific products

Guidelines:
- Be conversational and friendly
- If the user's query is unclear, ask ONE specific clarifying question
- When recommending products, explain how they address the user's concern
- Always base recommendations on the products in the provided context
- Keep responses concise but informative

Product Context:
%s`, productContext)
}
