package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Analysis validation errors.
var (
	ErrInvalidMinTokenLength = errors.New("words.min_token_length must be at least 1")
	ErrInvalidTopWords       = errors.New("words.top_n must be at least 1")
	ErrInvalidNarrativeTopN  = errors.New("narrative.top_words must be at least 1")
	ErrInvalidThresholds     = errors.New("narrative.strong_threshold must exceed mixed_threshold")
)

// Analysis holds the business tuning parameters: the stop-word list, token
// filters and narrative thresholds. These are deliberately external to the
// core: no single correct value exists, so they ship as configuration.
type Analysis struct {
	Words     WordsConfig     `yaml:"words"`
	Narrative NarrativeConfig `yaml:"narrative"`
}

// WordsConfig tunes the comment word-frequency analysis.
type WordsConfig struct {
	StopWords      []string `yaml:"stop_words"`
	MinTokenLength int      `yaml:"min_token_length"`
	TopN           int      `yaml:"top_n"`
}

// NarrativeConfig tunes the report wording decisions.
type NarrativeConfig struct {
	// A mean rating at or above StrongThreshold reads as "strong", at or
	// above MixedThreshold as "mixed", below as "concerning".
	StrongThreshold float64 `yaml:"strong_threshold"`
	MixedThreshold  float64 `yaml:"mixed_threshold"`
	TopWords        int     `yaml:"top_words"`
}

// defaultStopWords is the hand-tuned list carried over from the original
// analyst workflow. Overridable wholesale via the YAML file.
var defaultStopWords = []string{
	"the", "and", "to", "of", "a", "in", "for", "with", "is", "it", "on",
	"my", "our", "at", "are", "was", "be", "have", "has", "that", "they",
	"this", "i", "we", "you", "their", "as", "so", "its", "by", "from",
	"an", "were", "your", "also", "us", "had",
}

// DefaultAnalysis returns the built-in tuning values.
func DefaultAnalysis() *Analysis {
	return &Analysis{
		Words: WordsConfig{
			StopWords:      defaultStopWords,
			MinTokenLength: 2,
			TopN:           20,
		},
		Narrative: NarrativeConfig{
			StrongThreshold: 4.0,
			MixedThreshold:  3.0,
			TopWords:        3,
		},
	}
}

// LoadAnalysis loads the tuning file, falling back to defaults for any
// omitted field. An empty path returns the defaults unchanged.
func LoadAnalysis(path string) (*Analysis, error) {
	cfg := DefaultAnalysis()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse analysis config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("analysis config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the tuning values.
func (a *Analysis) Validate() error {
	if a.Words.MinTokenLength < 1 {
		return ErrInvalidMinTokenLength
	}
	if a.Words.TopN < 1 {
		return ErrInvalidTopWords
	}
	if a.Narrative.TopWords < 1 {
		return ErrInvalidNarrativeTopN
	}
	if a.Narrative.StrongThreshold <= a.Narrative.MixedThreshold {
		return ErrInvalidThresholds
	}
	return nil
}
