// Package cues turns judgment aggregates into short contextual advisory
// messages about how a client or role context actually decides.
package cues

import (
	"fmt"
	"sort"

	"github.com/jonathan/talent-insights/internal/gating"
	"github.com/jonathan/talent-insights/internal/parsing"
	"github.com/jonathan/talent-insights/internal/types"
)

// Context selects which insights a caller wants cues for
type Context struct {
	ClientID string
	RoleType string
}

// BuildCues emits at most two advisory cues for the insights matching the
// given context. Each signal independently requires a minimum sample size so
// a handful of decisions never reads as a cultural pattern. No contextual
// match returns an empty list.
func BuildCues(insights []types.JudgmentInsight, context Context) []types.DecisionCultureCue {
	clientKey := parsing.NormalizeContextKey(context.ClientID)
	roleKey := parsing.NormalizeContextKey(context.RoleType)

	var cues []types.DecisionCultureCue
	for i := range insights {
		insight := &insights[i]
		if !matchesContext(insight, clientKey, roleKey) {
			continue
		}

		for _, message := range signalMessages(insight) {
			cues = append(cues, types.DecisionCultureCue{
				Context: insight.DimensionValue,
				Message: message,
			})
			if len(cues) == gating.MaxCues {
				return cues
			}
		}
	}

	return cues
}

func matchesContext(insight *types.JudgmentInsight, clientKey, roleKey string) bool {
	switch insight.Dimension {
	case types.DimensionClient:
		return clientKey != "" && insight.DimensionValue == clientKey
	case types.DimensionRoleType:
		return roleKey != "" && insight.DimensionValue == roleKey
	default:
		return false
	}
}

// signalMessages evaluates the three cue signals for one insight, in a fixed
// order: override-success lift, confidence-adjustment share, dominant band.
func signalMessages(insight *types.JudgmentInsight) []string {
	var messages []string

	if message, ok := overrideLiftCue(insight); ok {
		messages = append(messages, message)
	}
	if message, ok := recalibrationCue(insight); ok {
		messages = append(messages, message)
	}
	if message, ok := dominantBandCue(insight); ok {
		messages = append(messages, message)
	}

	return messages
}

func overrideLiftCue(insight *types.JudgmentInsight) (string, bool) {
	delta := insight.OverrideSuccessDelta
	if delta == nil || insight.OverrideRate == nil {
		return "", false
	}
	if delta.Delta <= gating.TradeoffsMinDelta || insight.OverrideRate.Overrides < gating.CueMinSample {
		return "", false
	}

	return fmt.Sprintf("Recruiter overrides in this context hire %.0f points above baseline; their judgment calls tend to land.", delta.Delta*100), true
}

func recalibrationCue(insight *types.JudgmentInsight) (string, bool) {
	mix := insight.DecisionMix
	if mix == nil || mix.Total < gating.CueMinSample {
		return "", false
	}

	share := float64(mix.Mix[string(types.DecisionConfidenceAdjustment)]) / float64(mix.Total)
	if share < gating.CueMixShareThreshold {
		return "", false
	}

	return fmt.Sprintf("Confidence adjustments make up %.0f%% of decisions here; expect scores to be re-read rather than taken at face value.", share*100), true
}

func dominantBandCue(insight *types.JudgmentInsight) (string, bool) {
	bands := insight.ConfidenceBandSuccess
	if bands == nil || len(bands.Bands) == 0 {
		return "", false
	}

	names := make([]string, 0, len(bands.Bands))
	for name := range bands.Bands {
		names = append(names, name)
	}
	sort.Strings(names)

	dominant := ""
	dominantTotal := 0
	for _, name := range names {
		if total := bands.Bands[name].Total; total > dominantTotal {
			dominant, dominantTotal = name, total
		}
	}

	if dominantTotal < gating.CueMinSample {
		return "", false
	}

	return fmt.Sprintf("Most decisions in this context fall in the %q confidence band (%d of %d).", dominant, dominantTotal, insight.SampleSize), true
}
