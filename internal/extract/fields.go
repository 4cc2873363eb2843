package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/btr-directory/research-cli/internal/model"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// postcodeRe matches full UK postcodes (outward + inward code).
var postcodeRe = regexp.MustCompile(`(?i)\b([A-Z]{1,2}\d[A-Z\d]?\s*\d[A-Z]{2})\b`)

// extractPostcode returns the first UK postcode in the text, uppercased with
// internal whitespace normalised to a single space.
func extractPostcode(text string) string {
	m := postcodeRe.FindString(text)
	if m == "" {
		return ""
	}
	return whitespaceRe.ReplaceAllString(strings.ToUpper(m), " ")
}

// unitCountRes match unit counts in descending specificity: BTR-specific
// phrasing first, bare "N apartments" last.
var unitCountRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{1,4})\s*(?:new\s+)?(?:build.to.rent|BTR)\s*(?:units?|apartments?|homes?|flats?)`),
	regexp.MustCompile(`(?i)(\d{1,4})\s*(?:rental\s+)?(?:units?|apartments?|homes?|flats?|residences?|dwellings?)`),
	regexp.MustCompile(`(?i)(?:comprising|featuring|offering|contains?|delivering|providing|includes?)\s*(\d{1,4})\s*(?:units?|apartments?|homes?|flats?)`),
	regexp.MustCompile(`(?i)(?:total\s+of|up\s+to)\s*(\d{1,4})\s*(?:units?|apartments?|homes?|flats?|residences?)`),
	regexp.MustCompile(`(?i)(\d{1,4})\s*(?:one|two|three|four|1|2|3|4).?bed(?:room)?`),
}

// extractUnitCount returns the first plausible unit count found, or nil.
// Counts outside (0, 5000) are treated as noise and the next pattern is
// tried.
func extractUnitCount(text string) *int {
	for _, re := range unitCountRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > 0 && n < 5000 {
			return &n
		}
	}
	return nil
}

// statusRules map phrasing to a status. Order matters: Operational markers
// are checked before Under Construction before In Planning, so a page that
// mentions both its planning history and "now leasing" reads as Operational.
var statusRules = []struct {
	re     *regexp.Regexp
	status model.DevelopmentStatus
}{
	{regexp.MustCompile(`(?i)\bnow\s+(?:open|leasing|letting|available|welcoming)\b`), model.StatusOperational},
	{regexp.MustCompile(`(?i)\b(?:residents?\s+(?:are|have)\s+moved|fully\s+(?:let|leased|occupied))\b`), model.StatusOperational},
	{regexp.MustCompile(`(?i)\b(?:move.?in|now\s+renting|available\s+to\s+rent|accepting\s+(?:tenants|applications))\b`), model.StatusOperational},
	{regexp.MustCompile(`(?i)\b(?:currently\s+)?under\s+construction\b`), model.StatusUnderConstruction},
	{regexp.MustCompile(`(?i)\b(?:construction\s+(?:has\s+)?(?:started|begun|commenced|underway))\b`), model.StatusUnderConstruction},
	{regexp.MustCompile(`(?i)\b(?:being\s+built|building\s+work|on\s*site)\b`), model.StatusUnderConstruction},
	{regexp.MustCompile(`(?i)\b(?:planning\s+(?:permission|application|approved|submitted|consent))\b`), model.StatusInPlanning},
	{regexp.MustCompile(`(?i)\b(?:proposed|pre.?planning|outline\s+planning)\b`), model.StatusInPlanning},
}

// inferStatus returns the first matching status, or "" when no phrasing
// matched.
func inferStatus(text string) model.DevelopmentStatus {
	for _, rule := range statusRules {
		if rule.re.MatchString(text) {
			return rule.status
		}
	}
	return ""
}

const (
	minCompletionYear = 2015
	maxCompletionYear = 2035
)

var (
	// Groups: 1 = optional quarter, 2 = year.
	completionQuarterRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:complet(?:ed?|ion)|open(?:ed|ing|s)|launch(?:ed|ing)?|deliver(?:ed|y))\s*(?:in|by|:)?\s*(?:Q([1-4])\s*)?(\d{4})`),
		regexp.MustCompile(`(?i)(?:expected|due|planned|estimated|anticipated)\s*(?:completion|delivery|opening)?\s*(?:in|by|for|:)?\s*(?:Q([1-4])\s*)?(\d{4})`),
	}
	completionMonthRe = regexp.MustCompile(`(?i)(?:complet(?:ed?|ion)|opening)\s*(?:in|by|:)?\s*(January|February|March|April|May|June|July|August|September|October|November|December)\s*(\d{4})`)
)

var monthNumbers = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// extractCompletionDate returns an ISO date for the first completion phrase
// found. "Q2 2026" maps to the quarter's first month, a bare year to January
// 1st. Years outside [2015, 2035] are rejected as noise.
func extractCompletionDate(text string) string {
	if m := completionMonthRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[2])
		if year >= minCompletionYear && year <= maxCompletionYear {
			month := monthNumbers[strings.ToLower(m[1])]
			return fmt.Sprintf("%04d-%02d-01", year, month)
		}
	}

	for _, re := range completionQuarterRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[2])
		if err != nil || year < minCompletionYear || year > maxCompletionYear {
			continue
		}
		month := 1
		if m[1] != "" {
			quarter, _ := strconv.Atoi(m[1])
			month = (quarter-1)*3 + 1
		}
		return fmt.Sprintf("%04d-%02d-01", year, month)
	}
	return ""
}

// amenityRules map amenity flags to keyword patterns, in output column
// order.
var amenityRules = []struct {
	key string
	re  *regexp.Regexp
}{
	{"amenity_gym", regexp.MustCompile(`(?i)gym|fitness|exercise room|workout|fitness suite`)},
	{"amenity_pool", regexp.MustCompile(`(?i)pool|swimming`)},
	{"amenity_coworking", regexp.MustCompile(`(?i)co.?working|cowork|work.?space|business lounge|working from home suite`)},
	{"amenity_concierge", regexp.MustCompile(`(?i)concierge|reception|doorman|24.?hour.?(?:reception|desk)`)},
	{"amenity_cinema", regexp.MustCompile(`(?i)cinema|screening room|movie room|theatre room|private cinema`)},
	{"amenity_roof_terrace", regexp.MustCompile(`(?i)roof.?(?:top|terrace)|sky.?(?:lounge|terrace|garden)|rooftop`)},
	{"amenity_bike_storage", regexp.MustCompile(`(?i)bike|bicycle|cycle storage|cycling`)},
	{"amenity_pet_facilities", regexp.MustCompile(`(?i)pet.?(?:spa|wash|facility|grooming)|dog wash|dog grooming`)},
	{"amenity_ev_charging", regexp.MustCompile(`(?i)ev.?charg|electric vehicle|charge point`)},
	{"amenity_parcel_room", regexp.MustCompile(`(?i)parcel|package room|post room|delivery room`)},
	{"amenity_guest_suites", regexp.MustCompile(`(?i)guest suite|visitor suite|guest room|guest apartment`)},
	{"amenity_playground", regexp.MustCompile(`(?i)playground|play area|children`)},
}

// extractAmenities returns the amenity flags whose keywords appear in the
// text. Absent keys mean "not observed", not "absent on site".
func extractAmenities(text string) map[string]bool {
	amenities := make(map[string]bool)
	for _, rule := range amenityRules {
		if rule.re.MatchString(text) {
			amenities[rule.key] = true
		}
	}
	return amenities
}

var petsRe = regexp.MustCompile(`(?i)\bpets?\s*(?:allowed|welcome|friendly)\b`)

func extractPetsAllowed(text string) bool {
	return petsRe.MatchString(text)
}

// assetOwnerRes capture the investing entity from ownership phrasing.
var assetOwnerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:owned\s+by|asset\s+owner|backed\s+by|funded\s+by|invested?\s+(?:in\s+)?by|acquired\s+by)\s+([A-Z][A-Za-z\s&.']+?)(?:\.|,|\s+(?:and|has|have|is|was|which|who|in|for|with|to))`),
	regexp.MustCompile(`(?i)([A-Z][A-Za-z\s&.']+?)\s+(?:owns?|acquired|invested\s+in|funded|backs?)\s+(?:the\s+)?`),
	regexp.MustCompile(`(?i)(?:developed\s+by\s+[A-Za-z\s&.']+?\s+for)\s+([A-Z][A-Za-z\s&.']+)`),
}

// extractAssetOwner returns the asset owner named in ownership phrasing.
// Captures matching the operator itself, or implausibly short/long strings,
// are rejected.
func extractAssetOwner(text, operatorName string) string {
	for _, re := range assetOwnerRes {
		m := re.FindStringSubmatch(text)
		if m == nil || m[1] == "" {
			continue
		}
		owner := strings.TrimSpace(m[1])
		if strings.EqualFold(owner, operatorName) {
			continue
		}
		if len(owner) > 2 && len(owner) < 60 {
			return owner
		}
	}
	return ""
}

var (
	houseKeywordsRe = regexp.MustCompile(`(?i)\b(?:houses?|bungalows?|semi.?detached|detached|terraced|townhouse|single.?family)\b`)
	flatKeywordsRe  = regexp.MustCompile(`(?i)\b(?:apartments?|flats?|studio|penthouse|multifamily|tower|high.?rise)\b`)
)

// inferDevelopmentType votes on the stock type by counting keyword matches.
// A side must beat the other by more than one mention to override the
// default; close calls keep it.
func inferDevelopmentType(text string, defaultType model.DevelopmentType) model.DevelopmentType {
	houseScore := len(houseKeywordsRe.FindAllString(text, -1))
	flatScore := len(flatKeywordsRe.FindAllString(text, -1))

	switch {
	case houseScore > flatScore+1:
		return model.TypeSingleFamily
	case flatScore > houseScore+1:
		return model.TypeMultifamily
	default:
		return defaultType
	}
}

var (
	newTabRe     = regexp.MustCompile(`(?i)opens?\s*in\s*a?\s*new\s*(?:tab|window)`)
	trailBrandRe = regexp.MustCompile(`\s*[|–—]\s*[^|–—]+$`)
	readMoreRe   = regexp.MustCompile(`(?i)\s*(?:view|read|learn|find out)\s*(?:more|details)\.?$`)
)

// cleanName strips accessibility artifacts, trailing "| Brand" suffixes and
// call-to-action tails from a candidate development name.
func cleanName(raw string) string {
	s := newTabRe.ReplaceAllString(raw, "")
	s = trailBrandRe.ReplaceAllString(s, "")
	s = readMoreRe.ReplaceAllString(s, "")
	return cleanText(s)
}
