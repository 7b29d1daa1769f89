package config

import (
	"flag"
	"os"
)

// parses CLI flags for the scrape subcommand
func ParseScrapeFlags() ScrapeFlags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("scrape", flag.ExitOnError)
	minProducts := fs.Int("min-products", 30, "minimum number of products to scrape")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return ScrapeFlags{MinProducts: *minProducts}
}

// parses CLI flags for the embed subcommand
func ParseEmbedFlags() EmbedFlags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("embed", flag.ExitOnError)
	batchSize := fs.Int("batch", 10, "maximum number of products to enrich in one run")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return EmbedFlags{BatchSize: *batchSize}
}

// returns default flags for catalog scraping
func DefaultScrapeFlags() ScrapeFlags {
	return ScrapeFlags{MinProducts: 30}
}

// returns default flags for embedding enrichment
func DefaultEmbedFlags() EmbedFlags {
	return EmbedFlags{BatchSize: 10}
}
