package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/btr-directory/research-cli/internal/model"
)

// RenderSummary writes the end-of-run report: confidence breakdown,
// generated file paths, and a one-line entry per development.
func RenderSummary(w io.Writer, operator string, developments []model.ExtractedDevelopment, pageCount int, csvPath, sqlPath string) {
	var high, medium, low int
	for _, dev := range developments {
		switch dev.Confidence.Level {
		case model.ConfidenceHigh:
			high++
		case model.ConfidenceMedium:
			medium++
		default:
			low++
		}
	}

	fmt.Fprintf(w, "\nResults for %s\n", operator)
	fmt.Fprintln(w, strings.Repeat("─", 45))
	fmt.Fprintf(w, "  Found %d developments across %d sources\n\n", len(developments), pageCount)

	if high > 0 {
		fmt.Fprintf(w, "  %d HIGH confidence\n", high)
	}
	if medium > 0 {
		fmt.Fprintf(w, "  %d MEDIUM confidence\n", medium)
	}
	if low > 0 {
		fmt.Fprintf(w, "  %d LOW confidence\n", low)
	}

	fmt.Fprintf(w, "\n  Files generated:\n")
	fmt.Fprintf(w, "    %s (open this to review data)\n", csvPath)
	fmt.Fprintf(w, "    %s (paste into the database after review)\n\n", sqlPath)

	for _, dev := range developments {
		units := "units unknown"
		if dev.NumberOfUnits != nil {
			units = fmt.Sprintf("%d units", *dev.NumberOfUnits)
		}
		status := string(dev.Status)
		if status == "" {
			status = "status unknown"
		}
		var locParts []string
		if dev.Area != "" {
			locParts = append(locParts, dev.Area)
		}
		if dev.Region != "" {
			locParts = append(locParts, dev.Region)
		}
		location := strings.Join(locParts, ", ")

		fmt.Fprintf(w, "  [%s] %s - %s - %s - %s\n",
			dev.Confidence.Level, dev.Name, location, units, status)
	}
	fmt.Fprintln(w)
}
