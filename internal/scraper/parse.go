package scraper

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"codeberg.org/mane/server/catalog/products"
	"github.com/microcosm-cc/bluemonday"
)

const (
	maxDescriptionChars = 2000
	maxFeatureChars     = 1000
	maxImages           = 5
	maxTags             = 20
	maxFeatureItems     = 10

	fallbackCategory = "Hair Care"
	fallbackVendor   = "Traya"
)

// strict policy strips every tag, leaving text content only
var stripPolicy = bluemonday.StrictPolicy()

var whitespaceRegex = regexp.MustCompile(`\s+`)

// sentences containing these are worth keeping as product features
var featureKeywords = []string{
	"benefit", "feature", "contains", "ingredient", "helps", "reduces", "promotes",
}

// parseProduct maps one Shopify product into an upsert request for the
// catalog
func parseProduct(p shopifyProduct, baseURL string) products.UpsertProductRequest {
	var price float64
	var comparePrice *float64

	if len(p.Variants) > 0 {
		first := p.Variants[0]
		price, _ = strconv.ParseFloat(first.Price, 64) //nolint:errcheck // unparsable price stays 0 and the listing is skipped

		if first.CompareAtPrice != nil {
			if cp, err := strconv.ParseFloat(*first.CompareAtPrice, 64); err == nil {
				comparePrice = &cp
			}
		}
	}

	imageURLs := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img.Src != "" {
			imageURLs = append(imageURLs, img.Src)
		}
	}

	mainImage := ""
	if len(imageURLs) > 0 {
		mainImage = imageURLs[0]
	}

	if len(imageURLs) > maxImages {
		imageURLs = imageURLs[:maxImages]
	}

	description := cleanHTML(p.BodyHTML)
	if len([]rune(description)) > maxDescriptionChars {
		description = string([]rune(description)[:maxDescriptionChars])
	}

	tags := parseTags(p.Tags)
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	features := extractFeatures(description, tags)
	if len([]rune(features)) > maxFeatureChars {
		features = string([]rune(features)[:maxFeatureChars])
	}

	category := p.ProductType
	if category == "" {
		category = fallbackCategory
	}

	vendor := p.Vendor
	if vendor == "" {
		vendor = fallbackVendor
	}

	return products.UpsertProductRequest{
		ExternalID:   strconv.FormatInt(p.ID, 10),
		Title:        p.Title,
		Price:        price,
		ComparePrice: comparePrice,
		Description:  description,
		Features:     features,
		ImageURL:     mainImage,
		Images:       imageURLs,
		Category:     category,
		Vendor:       vendor,
		ProductType:  p.ProductType,
		Tags:         tags,
		URL:          fmt.Sprintf("%s/products/%s", baseURL, p.Handle),
	}
}

// cleanHTML strips markup, unescapes entities, and collapses whitespace
func cleanHTML(htmlText string) string {
	if htmlText == "" {
		return ""
	}

	text := stripPolicy.Sanitize(htmlText)
	text = html.UnescapeString(text)
	text = whitespaceRegex.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// parseTags accepts either a JSON string list or one comma-joined string;
// Shopify storefronts emit both
func parseTags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		if joined == "" {
			return nil
		}

		parts := strings.Split(joined, ",")
		tags := make([]string, 0, len(parts))

		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}

		return tags
	}

	return nil
}

// extractFeatures pulls the tags plus any description sentence that mentions
// a benefit keyword, pipe-joined
func extractFeatures(description string, tags []string) string {
	var features []string

	for _, tag := range tags {
		if tag != "" {
			features = append(features, tag)
		}
	}

	if description != "" {
		for _, sentence := range strings.Split(description, ".") {
			lowered := strings.ToLower(sentence)

			for _, kw := range featureKeywords {
				if strings.Contains(lowered, kw) {
					if trimmed := strings.TrimSpace(sentence); len(trimmed) > 10 {
						features = append(features, trimmed)
					}

					break
				}
			}
		}
	}

	if len(features) > maxFeatureItems {
		features = features[:maxFeatureItems]
	}

	return strings.Join(features, " | ")
}
