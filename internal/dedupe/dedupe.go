// Package dedupe collapses per-source observations into one canonical
// record per physical development, merging fields by source priority.
package dedupe

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/btr-directory/research-cli/internal/confidence"
	"github.com/btr-directory/research-cli/internal/model"
	"github.com/btr-directory/research-cli/internal/slug"
	"github.com/btr-directory/research-cli/internal/source"
)

// group holds every observation matched to one development, in encounter
// order.
type group struct {
	slug     string
	partials []model.PartialDevelopment
}

// MergeAll groups observations of the same development and merges each
// group into one record. Grouping matches on exact slug, then normalised
// name containment, then near-identical slug prefixes. Output is sorted by
// confidence, highest first.
func MergeAll(partials []model.PartialDevelopment, operatorName string, defaultType model.DevelopmentType, operatorDomain string) []model.ExtractedDevelopment {
	var groups []*group
	bySlug := make(map[string]*group)

	for _, dev := range partials {
		if len(dev.Name) < 2 {
			continue
		}
		devSlug := slug.Make(dev.Name)

		if g := findMatch(groups, bySlug, devSlug, dev.Name); g != nil {
			g.partials = append(g.partials, dev)
			continue
		}
		g := &group{slug: devSlug, partials: []model.PartialDevelopment{dev}}
		groups = append(groups, g)
		bySlug[devSlug] = g
	}

	results := make([]model.ExtractedDevelopment, 0, len(groups))
	usedSlugs := make(map[string]bool)

	for _, g := range groups {
		merged := mergeGroup(g.partials, operatorName, defaultType)
		merged.Slug = uniqueSlug(g.slug, merged.Area, usedSlugs)
		merged.Confidence = confidence.Score(merged, operatorDomain)
		results = append(results, merged)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence.Overall > results[j].Confidence.Overall
	})
	return results
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]`)

// findMatch looks for an existing group the candidate belongs to.
func findMatch(groups []*group, bySlug map[string]*group, candidateSlug, candidateName string) *group {
	if g, ok := bySlug[candidateSlug]; ok {
		return g
	}

	normCandidate := nonAlnumRe.ReplaceAllString(strings.ToLower(candidateName), "")

	for _, g := range groups {
		normExisting := nonAlnumRe.ReplaceAllString(strings.ToLower(g.partials[0].Name), "")

		// One name contains the other ("The Forge" vs "The Forge Manchester").
		if strings.Contains(normCandidate, normExisting) || strings.Contains(normExisting, normCandidate) {
			return g
		}

		// Near-identical slugs, e.g. "the-forge" vs "the-forges".
		if len(candidateSlug) > 5 && len(g.slug) > 5 &&
			(strings.HasPrefix(candidateSlug, g.slug) || strings.HasPrefix(g.slug, candidateSlug)) {
			diff := len(candidateSlug) - len(g.slug)
			if diff < 0 {
				diff = -diff
			}
			if diff <= 2 {
				return g
			}
		}
	}
	return nil
}

// uniqueSlug guarantees slug uniqueness across the output set: a collision
// first gets an area suffix, and a numeric suffix when that still collides.
func uniqueSlug(base, area string, used map[string]bool) string {
	final := base
	if used[final] && area != "" {
		final = base + "-" + slug.Make(area)
	}
	for i := 2; used[final]; i++ {
		final = base + "-" + strconv.Itoa(i)
	}
	used[final] = true
	return final
}

// mergeGroup reconciles one group into a single record. Scalar fields take
// the first non-empty value after sorting by source priority, so the
// operator's own site wins conflicts; amenities and pets are OR'd across
// all sources.
func mergeGroup(partials []model.PartialDevelopment, operatorName string, defaultType model.DevelopmentType) model.ExtractedDevelopment {
	sorted := make([]model.PartialDevelopment, len(partials))
	copy(sorted, partials)
	sort.SliceStable(sorted, func(i, j int) bool {
		return source.MergePriority(sorted[i].SourceType) < source.MergePriority(sorted[j].SourceType)
	})

	var sourceURLs []string
	seenURL := make(map[string]bool)
	for _, d := range partials {
		if d.SourceURL != "" && !seenURL[d.SourceURL] {
			seenURL[d.SourceURL] = true
			sourceURLs = append(sourceURLs, d.SourceURL)
		}
	}

	merged := model.ExtractedDevelopment{
		Operator:   operatorName,
		SourceURLs: sourceURLs,
		Amenities:  make(map[string]bool),
	}

	for _, d := range sorted {
		if merged.Name == "" {
			merged.Name = strings.TrimSpace(d.Name)
		}
		if merged.Area == "" {
			merged.Area = strings.TrimSpace(d.Area)
		}
		if merged.Region == "" {
			merged.Region = strings.TrimSpace(d.Region)
		}
		if merged.Postcode == "" {
			merged.Postcode = strings.TrimSpace(d.Postcode)
		}
		if merged.WebsiteURL == "" {
			merged.WebsiteURL = strings.TrimSpace(d.WebsiteURL)
		}
		if merged.Description == "" {
			merged.Description = strings.TrimSpace(d.Description)
		}
		if merged.AssetOwner == "" {
			merged.AssetOwner = strings.TrimSpace(d.AssetOwner)
		}
		if merged.CompletionDate == "" {
			merged.CompletionDate = strings.TrimSpace(d.CompletionDate)
		}
		if merged.NumberOfUnits == nil && d.NumberOfUnits != nil && *d.NumberOfUnits > 0 {
			n := *d.NumberOfUnits
			merged.NumberOfUnits = &n
		}
		if merged.Status == "" {
			merged.Status = d.Status
		}
		if merged.DevelopmentType == "" {
			merged.DevelopmentType = d.DevelopmentType
		}
		for key, val := range d.Amenities {
			if val {
				merged.Amenities[key] = true
			}
		}
		if d.PetsAllowed {
			merged.PetsAllowed = true
		}
	}

	if merged.DevelopmentType == "" {
		merged.DevelopmentType = defaultType
	}
	if merged.AssetOwner == "" {
		merged.AssetOwner = operatorName
	}

	if len(merged.CompletionDate) >= 4 {
		if year, err := strconv.Atoi(merged.CompletionDate[:4]); err == nil && year >= 2015 && year <= 2035 {
			merged.YearCompleted = &year
		}
	}

	merged.ExtractionNotes = qualityNotes(merged, partials)
	return merged
}

// qualityNotes flags missing or conflicting data on the merged record.
func qualityNotes(merged model.ExtractedDevelopment, partials []model.PartialDevelopment) []string {
	var notes []string
	if merged.NumberOfUnits == nil {
		notes = append(notes, "Unit count not confirmed")
	}
	if merged.Status == "" {
		notes = append(notes, "Status not confirmed")
	}
	if merged.Postcode == "" {
		notes = append(notes, "Postcode not found")
	}
	if merged.Region == "" {
		notes = append(notes, "Region could not be determined")
	}

	if len(partials) > 1 {
		var counts []string
		seen := make(map[int]bool)
		for _, d := range partials {
			if d.NumberOfUnits != nil && *d.NumberOfUnits > 0 && !seen[*d.NumberOfUnits] {
				seen[*d.NumberOfUnits] = true
				counts = append(counts, strconv.Itoa(*d.NumberOfUnits))
			}
		}
		if len(counts) > 1 {
			notes = append(notes, fmt.Sprintf("Conflicting unit counts: %s", strings.Join(counts, ", ")))
		}
	}
	return notes
}
