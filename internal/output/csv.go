// Package output renders merged developments as a review CSV, an
// import-ready SQL script, and a terminal summary.
package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/btr-directory/research-cli/internal/model"
)

// csvColumns is the review spreadsheet header, confidence first so
// reviewers can sort by it.
var csvColumns = []string{
	"confidence",
	"name",
	"slug",
	"development_type",
	"area",
	"region",
	"postcode",
	"number_of_units",
	"status",
	"completion_date",
	"description",
	"website_url",
	"asset_owner",
	"operator",
	"source_urls",
	"notes",
}

const csvDescriptionMaxLen = 200

// truncate caps s at n characters, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// WriteCSV writes every development (all confidence levels) as CSV for
// manual review. Source URLs are pipe-joined, notes semicolon-joined.
func WriteCSV(w io.Writer, developments []model.ExtractedDevelopment) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvColumns); err != nil {
		return eris.Wrap(err, "csv: write header")
	}

	for _, dev := range developments {
		units := ""
		if dev.NumberOfUnits != nil {
			units = strconv.Itoa(*dev.NumberOfUnits)
		}
		desc := truncate(dev.Description, csvDescriptionMaxLen)

		record := []string{
			string(dev.Confidence.Level),
			dev.Name,
			dev.Slug,
			string(dev.DevelopmentType),
			dev.Area,
			dev.Region,
			dev.Postcode,
			units,
			string(dev.Status),
			dev.CompletionDate,
			desc,
			dev.WebsiteURL,
			dev.AssetOwner,
			dev.Operator,
			strings.Join(dev.SourceURLs, " | "),
			strings.Join(dev.ExtractionNotes, "; "),
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrapf(err, "csv: write row for %s", dev.Slug)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "csv: flush")
}
