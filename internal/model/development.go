// Package model defines the data types shared across the research pipeline.
package model

// DevelopmentType categorises a development by housing stock.
type DevelopmentType string

const (
	TypeMultifamily  DevelopmentType = "Multifamily"
	TypeSingleFamily DevelopmentType = "Single Family"
)

// DevelopmentStatus represents the delivery stage of a development.
type DevelopmentStatus string

const (
	StatusInPlanning        DevelopmentStatus = "In Planning"
	StatusUnderConstruction DevelopmentStatus = "Under Construction"
	StatusOperational       DevelopmentStatus = "Operational"
)

// SourceType classifies the provenance of a scraped URL. It drives both
// merge priority and confidence scoring.
type SourceType string

const (
	SourceOperatorWebsite SourceType = "operator_website"
	SourcePropertyPortal  SourceType = "property_portal"
	SourceNews            SourceType = "news"
	SourcePlanning        SourceType = "planning"
	SourceOther           SourceType = "other"
)

// ConfidenceLevel buckets an overall confidence score.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

// PartialDevelopment is one source's observation of one development, prior
// to cross-source merging. Optional fields use zero values (or nil pointers)
// to mean "unknown", never "confirmed negative". Amenities holds only flags
// observed true; an absent key means the keyword was not found.
type PartialDevelopment struct {
	Name            string            `json:"name"`
	DevelopmentType DevelopmentType   `json:"development_type,omitempty"`
	Area            string            `json:"area,omitempty"`
	Region          string            `json:"region,omitempty"`
	Postcode        string            `json:"postcode,omitempty"`
	NumberOfUnits   *int              `json:"number_of_units,omitempty"`
	Status          DevelopmentStatus `json:"status,omitempty"`
	CompletionDate  string            `json:"completion_date,omitempty"` // ISO date
	Description     string            `json:"description,omitempty"`
	WebsiteURL      string            `json:"website_url,omitempty"`
	AssetOwner      string            `json:"asset_owner,omitempty"`
	Operator        string            `json:"operator"`
	Amenities       map[string]bool   `json:"amenities,omitempty"`
	PetsAllowed     bool              `json:"pets_allowed,omitempty"`
	SourceURL       string            `json:"source_url"`
	SourceType      SourceType        `json:"source_type"`
}

// ConfidenceReport quantifies how much a merged record can be trusted.
type ConfidenceReport struct {
	Overall     float64         `json:"overall"` // 0.0-1.0
	Level       ConfidenceLevel `json:"level"`
	SourceCount int             `json:"source_count"`
	SourceTypes []SourceType    `json:"source_types"`
	Notes       []string        `json:"notes"`
}

// ExtractedDevelopment is the canonical, deduplicated record for one
// physical development. SourceURLs is the union of the SourceURL of every
// partial merged in, and Confidence.SourceCount equals len(SourceURLs).
type ExtractedDevelopment struct {
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	DevelopmentType DevelopmentType   `json:"development_type"`
	Area            string            `json:"area"`
	Region          string            `json:"region"`
	Postcode        string            `json:"postcode"`
	NumberOfUnits   *int              `json:"number_of_units"`
	Status          DevelopmentStatus `json:"status,omitempty"`
	CompletionDate  string            `json:"completion_date"`
	YearCompleted   *int              `json:"year_completed"`
	Description     string            `json:"description"`
	WebsiteURL      string            `json:"website_url"`
	AssetOwner      string            `json:"asset_owner"`
	Operator        string            `json:"operator"`
	Amenities       map[string]bool   `json:"amenities"`
	PetsAllowed     bool              `json:"pets_allowed"`
	Confidence      ConfidenceReport  `json:"confidence"`
	SourceURLs      []string          `json:"source_urls"`
	ExtractionNotes []string          `json:"extraction_notes"`
}

// AmenityKeys lists the twelve amenity flags in output column order.
var AmenityKeys = []string{
	"amenity_gym",
	"amenity_pool",
	"amenity_coworking",
	"amenity_concierge",
	"amenity_cinema",
	"amenity_roof_terrace",
	"amenity_bike_storage",
	"amenity_pet_facilities",
	"amenity_ev_charging",
	"amenity_parcel_room",
	"amenity_guest_suites",
	"amenity_playground",
}
