package ai

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/openchain-labs/openchain-ir/internal/analysis"
)

// Insights is the AI-written portion of a forensic report.
type Insights struct {
	Narrative       string `json:"narrative"`
	PatternAnalysis string `json:"pattern_analysis"`
	SuspectProfile  string `json:"suspect_profile"`
	Provider        string `json:"provider"`
}

// Service tries each configured provider in order and falls back to a
// template narrative when nothing answers.
type Service struct {
	providers []Provider
}

func NewService(providers ...Provider) *Service {
	return &Service{providers: providers}
}

// Comprehensive generates the full AI insight set for one summary. It never
// fails: missing providers degrade to template output.
func (s *Service) Comprehensive(ctx context.Context, summary *analysis.Summary) *Insights {
	insights := &Insights{Provider: "template"}

	if text, name := s.generate(ctx, narrativePrompt(summary)); text != "" {
		insights.Narrative = text
		insights.Provider = name
	} else {
		insights.Narrative = FallbackNarrative(summary)
	}

	if text, _ := s.generate(ctx, patternPrompt(summary)); text != "" {
		insights.PatternAnalysis = text
	} else {
		insights.PatternAnalysis = unavailableNotice
	}

	if text, _ := s.generate(ctx, suspectsPrompt(summary)); text != "" {
		insights.SuspectProfile = text
	} else {
		insights.SuspectProfile = unavailableNotice
	}

	return insights
}

// Narrative generates just the forensic narrative.
func (s *Service) Narrative(ctx context.Context, summary *analysis.Summary) string {
	if text, _ := s.generate(ctx, narrativePrompt(summary)); text != "" {
		return text
	}

	return FallbackNarrative(summary)
}

func (s *Service) generate(ctx context.Context, prompt string) (string, string) {
	for _, provider := range s.providers {
		text, err := provider.Generate(ctx, prompt)
		if err != nil {
			log.Warn().Err(err).Str("provider", provider.Name()).Msg("ai provider failed")

			continue
		}

		return text, provider.Name()
	}

	return "", ""
}
