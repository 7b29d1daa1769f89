package config

type Config struct {
	DatabaseURL  string
	GeminiAPIKey string
	Environment  string

	// optional path to a synonym table file for the keyword ranker
	SynonymsPath string

	// retrieval strategy: "text" or "vector"
	RankerStrategy string

	// keyword scoring mode: "presence" (weighted per-field) or "frequency"
	ScoringMode string
}

type ScrapeFlags struct {
	MinProducts int
}

type EmbedFlags struct {
	BatchSize int
}
