// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-insights/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchScore outputs a human-readable summary of a score breakdown.
func (p *Printer) PrintMatchScore(job *types.JobProfile, breakdown types.MatchScoreBreakdown) {
	var sb strings.Builder

	if job != nil && job.Title != "" {
		sb.WriteString(fmt.Sprintf("Role:            %s\n", job.Title))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Skill overlap:    %3d\n", breakdown.SkillOverlapScore))
	sb.WriteString(fmt.Sprintf("Title similarity: %3d\n", breakdown.TitleSimilarityScore))
	sb.WriteString(fmt.Sprintf("Composite:        %3d", breakdown.CompositeScore))

	p.printBox("MATCH SCORE", sb.String())
}

// PrintConfidence outputs the confidence score with its top reasons.
func (p *Printer) PrintConfidence(confidence types.ConfidenceResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Confidence: %d / 100\n", confidence.ConfidenceScore))

	if len(confidence.Reasons) > 0 {
		sb.WriteString("\nReasons:\n")
		count := min(len(confidence.Reasons), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", confidence.Reasons[i]))
		}
		if len(confidence.Reasons) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(confidence.Reasons)-maxItemsToShow))
		}
	}

	p.printBox("CONFIDENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCues outputs decision culture cues for a context.
func (p *Printer) PrintCues(cues []types.DecisionCultureCue) {
	if len(cues) == 0 {
		return
	}

	var sb strings.Builder
	for i, cue := range cues {
		sb.WriteString(fmt.Sprintf("[%s]\n", cue.Context))
		sb.WriteString(fmt.Sprintf("  %s", cue.Message))
		if i < len(cues)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("DECISION CULTURE CUES", sb.String())
}

// PrintAdjustments outputs drift adjustment proposals with their status.
func (p *Printer) PrintAdjustments(adjustments []types.DriftAdjustment) {
	if len(adjustments) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(adjustments), maxItemsToShow)
	for i := 0; i < count; i++ {
		adj := adjustments[i]
		sb.WriteString(fmt.Sprintf("#%d  %s / %s\n", i+1, adj.Category, adj.Segment))
		sb.WriteString(fmt.Sprintf("    Status: %s\n", adj.Status))
		sb.WriteString(fmt.Sprintf("    Change: %s\n", adj.Change))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(adjustments) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more proposals", len(adjustments)-maxItemsToShow))
	}

	p.printBox("DRIFT PROPOSALS", strings.TrimSuffix(sb.String(), "\n"))
}
