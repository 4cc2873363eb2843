package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/btr-directory/research-cli/internal/model"
	"github.com/btr-directory/research-cli/internal/slug"
)

const sqlDescriptionMaxLen = 500

// GenerateSQL renders an idempotent Postgres script that uploads the run's
// findings: operator insert, asset-owner inserts, then existence-guarded
// development inserts inside one DO block. Only MEDIUM and HIGH confidence
// records are inserted; MEDIUM rows are flagged for review, LOW rows appear
// only in the trailing comment summary.
func GenerateSQL(developments []model.ExtractedDevelopment, operatorName, operatorWebsite string, now time.Time) string {
	operatorSlug := slug.Make(operatorName)
	date := now.Format("2006-01-02")

	var included, excluded []model.ExtractedDevelopment
	for _, dev := range developments {
		if dev.Confidence.Level == model.ConfidenceLow {
			excluded = append(excluded, dev)
		} else {
			included = append(included, dev)
		}
	}

	// Asset owners that differ from the operator, first-seen order.
	var assetOwners []string
	seenOwner := make(map[string]bool)
	for _, dev := range included {
		if dev.AssetOwner == "" || strings.EqualFold(dev.AssetOwner, operatorName) {
			continue
		}
		if !seenOwner[dev.AssetOwner] {
			seenOwner[dev.AssetOwner] = true
			assetOwners = append(assetOwners, dev.AssetOwner)
		}
	}

	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("-- ============================================================================")
	line("-- BTR Directory Data Upload: %s", operatorName)
	line("-- Generated: %s", date)
	line("-- REVIEW STATUS: PENDING MANUAL CHECK")
	line("-- Total developments found: %d", len(developments))
	line("-- Included in SQL (MEDIUM+ confidence): %d", len(included))
	line("-- Excluded (LOW confidence, review CSV): %d", len(excluded))
	line("-- ============================================================================")
	line("")

	line("-- Step 1: Insert operator (if not already in database)")
	line("INSERT INTO operators (name, slug, website, description)")
	line("SELECT %s, %s, %s, %s",
		sqlString(operatorName), sqlString(operatorSlug), sqlString(operatorWebsite), sqlString("BTR operator"))
	line("WHERE NOT EXISTS (SELECT 1 FROM operators WHERE slug = %s);", sqlString(operatorSlug))
	line("")

	if len(assetOwners) > 0 {
		line("-- Step 2: Insert asset owners (if not already in database)")
		for _, owner := range assetOwners {
			ownerSlug := slug.Make(owner)
			line("INSERT INTO asset_owners (name, slug)")
			line("SELECT %s, %s", sqlString(owner), sqlString(ownerSlug))
			line("WHERE NOT EXISTS (SELECT 1 FROM asset_owners WHERE slug = %s);", sqlString(ownerSlug))
			line("")
		}
	}

	line("-- Step 3: Insert developments")
	line("DO $$")
	line("DECLARE")
	line("  op_id UUID;")
	if len(assetOwners) > 0 {
		line("  ao_id UUID;")
	}
	line("BEGIN")
	line("  SELECT id INTO op_id FROM operators WHERE slug = %s;", sqlString(operatorSlug))
	line("")

	for _, dev := range included {
		sameOwner := dev.AssetOwner == "" || strings.EqualFold(dev.AssetOwner, operatorName)

		line("  -- DEVELOPMENT: %s", dev.Name)
		line("  -- Confidence: %s (%v)", dev.Confidence.Level, dev.Confidence.Overall)
		line("  -- Sources: %s", strings.Join(dev.SourceURLs, ", "))
		if len(dev.ExtractionNotes) > 0 {
			line("  -- Notes: %s", strings.Join(dev.ExtractionNotes, "; "))
		}

		ownerID := "op_id"
		if !sameOwner {
			ownerID = "ao_id"
			line("  SELECT id INTO ao_id FROM asset_owners WHERE slug = %s;", sqlString(slug.Make(dev.AssetOwner)))
		}

		desc := truncate(dev.Description, sqlDescriptionMaxLen)

		line("  INSERT INTO developments (")
		line("    name, slug, development_type, operator_id, asset_owner_id,")
		line("    area, region, postcode,")
		line("    number_of_units, status, completion_date,")
		line("    description, website_url,")
		line("    amenity_gym, amenity_pool, amenity_coworking, amenity_concierge,")
		line("    amenity_cinema, amenity_roof_terrace, amenity_bike_storage,")
		line("    amenity_pet_facilities, amenity_ev_charging, amenity_parcel_room,")
		line("    amenity_guest_suites, amenity_playground,")
		line("    pets_allowed, is_published, flagged_for_review")
		line("  )")
		line("  SELECT")
		line("    %s, %s, %s, op_id, %s,",
			sqlString(dev.Name), sqlString(dev.Slug), sqlString(string(dev.DevelopmentType)), ownerID)
		line("    %s, %s, %s,",
			sqlString(dev.Area), sqlString(dev.Region), sqlString(dev.Postcode))
		line("    %s, %s, %s,",
			sqlInt(dev.NumberOfUnits), sqlString(string(dev.Status)), sqlDate(dev.CompletionDate))
		line("    %s, %s,", sqlString(desc), sqlString(dev.WebsiteURL))
		line("    %s, %s, %s, %s,",
			sqlBool(dev.Amenities["amenity_gym"]), sqlBool(dev.Amenities["amenity_pool"]),
			sqlBool(dev.Amenities["amenity_coworking"]), sqlBool(dev.Amenities["amenity_concierge"]))
		line("    %s, %s, %s,",
			sqlBool(dev.Amenities["amenity_cinema"]), sqlBool(dev.Amenities["amenity_roof_terrace"]),
			sqlBool(dev.Amenities["amenity_bike_storage"]))
		line("    %s, %s, %s,",
			sqlBool(dev.Amenities["amenity_pet_facilities"]), sqlBool(dev.Amenities["amenity_ev_charging"]),
			sqlBool(dev.Amenities["amenity_parcel_room"]))
		line("    %s, %s,",
			sqlBool(dev.Amenities["amenity_guest_suites"]), sqlBool(dev.Amenities["amenity_playground"]))
		line("    %s, true, %s",
			sqlBool(dev.PetsAllowed), sqlBool(dev.Confidence.Level == model.ConfidenceMedium))
		line("  WHERE NOT EXISTS (")
		line("    SELECT 1 FROM developments WHERE slug = %s", sqlString(dev.Slug))
		line("  );")
		line("")
	}

	line("END $$;")
	line("")

	line("-- ============================================================================")
	line("-- Summary")
	line("-- ============================================================================")
	for _, dev := range included {
		flag := ""
		if dev.Confidence.Level == model.ConfidenceMedium {
			flag = " [FLAGGED FOR REVIEW]"
		}
		area := dev.Area
		if area == "" {
			area = "unknown area"
		}
		line("-- %s: %s (%s)%s", dev.Confidence.Level, dev.Name, area, flag)
	}
	if len(excluded) > 0 {
		line("--")
		line("-- LOW confidence (not included - review CSV):")
		for _, dev := range excluded {
			line("--   %s (%s)", dev.Name, strings.Join(dev.ExtractionNotes, "; "))
		}
	}

	return b.String()
}

// sqlString quotes a string literal, doubling embedded quotes. Empty means
// NULL.
func sqlString(v string) string {
	if v == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func sqlBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func sqlInt(v *int) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%d", *v)
}

// sqlDate quotes an ISO date, or NULL when absent or malformed.
func sqlDate(v string) string {
	if v == "" {
		return "NULL"
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return "NULL"
	}
	return "'" + t.Format("2006-01-02") + "'"
}
