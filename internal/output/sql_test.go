package output

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/btr-directory/research-cli/internal/model"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestGenerateSQL_Header(t *testing.T) {
	sql := GenerateSQL([]model.ExtractedDevelopment{sampleDev()}, "Grainger", "https://grainger.co.uk", testNow)

	assert.Contains(t, sql, "-- BTR Directory Data Upload: Grainger")
	assert.Contains(t, sql, "-- Generated: 2026-03-15")
	assert.Contains(t, sql, "-- Total developments found: 1")
	assert.Contains(t, sql, "-- Included in SQL (MEDIUM+ confidence): 1")
	assert.Contains(t, sql, "-- Excluded (LOW confidence, review CSV): 0")
}

func TestGenerateSQL_OperatorInsertIsGuarded(t *testing.T) {
	sql := GenerateSQL(nil, "Grainger", "https://grainger.co.uk", testNow)

	assert.Contains(t, sql, "INSERT INTO operators (name, slug, website, description)")
	assert.Contains(t, sql, "SELECT 'Grainger', 'grainger', 'https://grainger.co.uk', 'BTR operator'")
	assert.Contains(t, sql, "WHERE NOT EXISTS (SELECT 1 FROM operators WHERE slug = 'grainger');")
}

func TestGenerateSQL_AssetOwnerInsert(t *testing.T) {
	sql := GenerateSQL([]model.ExtractedDevelopment{sampleDev()}, "Grainger", "", testNow)

	assert.Contains(t, sql, "INSERT INTO asset_owners (name, slug)")
	assert.Contains(t, sql, "SELECT 'Moorfield', 'moorfield'")
	assert.Contains(t, sql, "SELECT id INTO ao_id FROM asset_owners WHERE slug = 'moorfield';")
}

func TestGenerateSQL_OperatorOwnedSkipsAssetOwner(t *testing.T) {
	dev := sampleDev()
	dev.AssetOwner = "Grainger"
	sql := GenerateSQL([]model.ExtractedDevelopment{dev}, "Grainger", "", testNow)

	assert.NotContains(t, sql, "INSERT INTO asset_owners")
	assert.NotContains(t, sql, "ao_id UUID;")
}

func TestGenerateSQL_DevelopmentInsert(t *testing.T) {
	sql := GenerateSQL([]model.ExtractedDevelopment{sampleDev()}, "Grainger", "", testNow)

	assert.Contains(t, sql, "-- DEVELOPMENT: The Forge")
	assert.Contains(t, sql, "-- Confidence: HIGH (0.95)")
	assert.Contains(t, sql, "'The Forge', 'the-forge', 'Multifamily', op_id, ao_id,")
	assert.Contains(t, sql, "'Manchester', 'North West', 'M1 1AE',")
	assert.Contains(t, sql, "250, 'Operational', '2024-04-01',")
	assert.Contains(t, sql, "WHERE NOT EXISTS (")
	assert.Contains(t, sql, "SELECT 1 FROM developments WHERE slug = 'the-forge'")
	// HIGH confidence rows are published and not flagged.
	assert.Contains(t, sql, "true, true, false")
}

func TestGenerateSQL_AmenityColumns(t *testing.T) {
	sql := GenerateSQL([]model.ExtractedDevelopment{sampleDev()}, "Grainger", "", testNow)

	assert.Contains(t, sql, "amenity_gym, amenity_pool, amenity_coworking, amenity_concierge,")
	// Gym true, pool false per the sample's amenity map.
	assert.Contains(t, sql, "true, false, false, true,")
}

func TestGenerateSQL_MediumFlaggedForReview(t *testing.T) {
	dev := sampleDev()
	dev.Confidence.Level = model.ConfidenceMedium

	sql := GenerateSQL([]model.ExtractedDevelopment{dev}, "Grainger", "", testNow)

	assert.Contains(t, sql, "true, true, true")
	assert.Contains(t, sql, "[FLAGGED FOR REVIEW]")
}

func TestGenerateSQL_LowConfidenceExcluded(t *testing.T) {
	low := sampleDev()
	low.Name = "Mystery Scheme"
	low.Slug = "mystery-scheme"
	low.Confidence.Level = model.ConfidenceLow
	low.ExtractionNotes = []string{"Unit count not confirmed"}

	sql := GenerateSQL([]model.ExtractedDevelopment{sampleDev(), low}, "Grainger", "", testNow)

	assert.NotContains(t, sql, "-- DEVELOPMENT: Mystery Scheme")
	assert.Contains(t, sql, "-- LOW confidence (not included - review CSV):")
	assert.Contains(t, sql, "--   Mystery Scheme (Unit count not confirmed)")
	assert.Contains(t, sql, "-- Excluded (LOW confidence, review CSV): 1")
}

func TestGenerateSQL_NullsForMissingFields(t *testing.T) {
	dev := model.ExtractedDevelopment{
		Name:       "Bare",
		Slug:       "bare",
		Operator:   "Grainger",
		AssetOwner: "Grainger",
		Confidence: model.ConfidenceReport{Level: model.ConfidenceMedium},
	}

	sql := GenerateSQL([]model.ExtractedDevelopment{dev}, "Grainger", "", testNow)

	assert.Contains(t, sql, "NULL, NULL, NULL,") // area, region, postcode
	assert.Contains(t, sql, "NULL, NULL, NULL,") // units, status, date
}

func TestSQLHelpers(t *testing.T) {
	assert.Equal(t, "NULL", sqlString(""))
	assert.Equal(t, "'it''s'", sqlString("it's"))
	assert.Equal(t, "true", sqlBool(true))
	assert.Equal(t, "false", sqlBool(false))
	assert.Equal(t, "NULL", sqlInt(nil))
	assert.Equal(t, "42", sqlInt(intPtr(42)))
	assert.Equal(t, "NULL", sqlDate(""))
	assert.Equal(t, "NULL", sqlDate("not-a-date"))
	assert.Equal(t, "'2026-04-01'", sqlDate("2026-04-01"))
}

func TestGenerateSQL_EscapesQuotes(t *testing.T) {
	dev := sampleDev()
	dev.Name = "King's Cross Quarter"
	dev.Slug = "kings-cross-quarter"

	sql := GenerateSQL([]model.ExtractedDevelopment{dev}, "Grainger", "", testNow)
	assert.Contains(t, sql, "'King''s Cross Quarter'")
	assert.False(t, strings.Contains(sql, "'King's"))
}
