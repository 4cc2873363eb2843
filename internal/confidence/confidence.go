// Package confidence scores merged development records on field
// completeness and source corroboration.
package confidence

import (
	"math"
	"strings"

	"github.com/btr-directory/research-cli/internal/model"
	"github.com/btr-directory/research-cli/internal/source"
)

// Level thresholds over the overall score.
const (
	highThreshold   = 0.7
	mediumThreshold = 0.4
)

// Score rates a merged development. Weights: name up to 0.25, location up
// to 0.20, units up to 0.15, status up to 0.10, source corroboration up to
// 0.30 plus per-type bonuses, capped at 1.0. Operator-site confirmation
// boosts the name, units and status components: the operator's own listing
// is the strongest evidence a development exists.
func Score(dev model.ExtractedDevelopment, operatorDomain string) model.ConfidenceReport {
	score := 0.0
	var notes []string

	sourceTypes := classifyAll(dev.SourceURLs, operatorDomain)
	fromOperatorSite := hasOperatorSource(dev.SourceURLs, operatorDomain)

	// Name (0-0.25).
	if len(dev.Name) > 2 {
		score += 0.15
		if fromOperatorSite {
			score += 0.10
		}
	} else {
		notes = append(notes, "Development name is uncertain")
	}

	// Location (0-0.20).
	if dev.Postcode != "" {
		score += 0.10
		if dev.Region != "" {
			score += 0.05
		}
	}
	if dev.Area != "" {
		score += 0.05
	} else {
		notes = append(notes, "Area/location not confirmed")
	}

	// Units (0-0.15).
	if dev.NumberOfUnits != nil {
		score += 0.10
		if fromOperatorSite {
			score += 0.05
		}
	} else {
		notes = append(notes, "Unit count not confirmed")
	}

	// Status (0-0.10).
	if dev.Status != "" {
		score += 0.07
		if fromOperatorSite {
			score += 0.03
		}
	} else {
		notes = append(notes, "Status not confirmed")
	}

	// Source corroboration (0-0.30).
	sourceCount := len(dev.SourceURLs)
	switch {
	case sourceCount >= 3:
		score += 0.20
	case sourceCount >= 2:
		score += 0.15
	case fromOperatorSite:
		score += 0.15
	default:
		score += 0.05
		notes = append(notes, "Found in single non-operator source")
	}

	// Source type bonuses.
	if containsType(sourceTypes, model.SourceOperatorWebsite) {
		score += 0.05
	}
	if containsType(sourceTypes, model.SourcePropertyPortal) {
		score += 0.03
	}
	if containsType(sourceTypes, model.SourceNews) {
		score += 0.02
	}

	score = math.Min(score, 1.0)

	return model.ConfidenceReport{
		Overall:     math.Round(score*100) / 100,
		Level:       levelFor(score),
		SourceCount: sourceCount,
		SourceTypes: sourceTypes,
		Notes:       notes,
	}
}

func levelFor(score float64) model.ConfidenceLevel {
	switch {
	case score >= highThreshold:
		return model.ConfidenceHigh
	case score >= mediumThreshold:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// classifyAll returns the distinct source types across all URLs, in first
// occurrence order.
func classifyAll(urls []string, operatorDomain string) []model.SourceType {
	var types []model.SourceType
	seen := make(map[model.SourceType]bool)
	for _, u := range urls {
		t := source.Classify(u, operatorDomain)
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	return types
}

func hasOperatorSource(urls []string, operatorDomain string) bool {
	if operatorDomain == "" {
		return false
	}
	for _, u := range urls {
		if strings.Contains(strings.ToLower(u), strings.ToLower(operatorDomain)) {
			return true
		}
	}
	return false
}

func containsType(types []model.SourceType, t model.SourceType) bool {
	for _, st := range types {
		if st == t {
			return true
		}
	}
	return false
}
