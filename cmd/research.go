package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/btr-directory/research-cli/internal/model"
	"github.com/btr-directory/research-cli/internal/output"
	"github.com/btr-directory/research-cli/internal/pipeline"
	"github.com/btr-directory/research-cli/internal/search"
	"github.com/btr-directory/research-cli/internal/source"
	"github.com/btr-directory/research-cli/pkg/serpapi"
)

var researchFlags struct {
	website     string
	urls        string
	interactive bool
	outputDir   string
	noBrowser   bool
	devType     string
	maxResults  int
}

var researchCmd = &cobra.Command{
	Use:   "research <operator-name>",
	Short: "Research a BTR operator's developments",
	Long: `Researches an operator's build-to-rent developments: gathers candidate
URLs (automated search, a manual list, or interactive paste), scrapes each
page, extracts development facts, merges duplicate observations across
sources, and writes a review CSV plus an upload SQL script.`,
	Args: cobra.ExactArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().StringVarP(&researchFlags.website, "website", "w", "", "operator website URL")
	researchCmd.Flags().StringVarP(&researchFlags.urls, "urls", "u", "", "comma-separated list of URLs to scrape directly")
	researchCmd.Flags().BoolVarP(&researchFlags.interactive, "interactive", "i", false, "paste URLs one at a time")
	researchCmd.Flags().StringVarP(&researchFlags.outputDir, "output-dir", "o", "", "output directory (default from config)")
	researchCmd.Flags().BoolVar(&researchFlags.noBrowser, "no-browser", false, "skip the headless browser tier for JS-rendered pages")
	researchCmd.Flags().StringVar(&researchFlags.devType, "type", "Multifamily", `default development type: Multifamily or "Single Family"`)
	researchCmd.Flags().IntVar(&researchFlags.maxResults, "max-results", 0, "maximum search results to process (default from config)")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	operator := args[0]

	defaultType := model.TypeMultifamily
	if researchFlags.devType == string(model.TypeSingleFamily) {
		defaultType = model.TypeSingleFamily
	}

	outputDir := researchFlags.outputDir
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	maxResults := researchFlags.maxResults
	if maxResults <= 0 {
		maxResults = cfg.Search.MaxResults
	}

	fmt.Printf("\nBTR Operator Research Tool\n")
	fmt.Println(strings.Repeat("─", 45))
	fmt.Printf("  Operator:  %s\n", operator)
	if researchFlags.website != "" {
		fmt.Printf("  Website:   %s\n", researchFlags.website)
	}
	fmt.Printf("  Type:      %s\n", defaultType)
	fmt.Printf("  Output:    %s\n\n", outputDir)

	results, err := gatherURLs(cmd, operator, maxResults)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No URLs to process. Exiting.")
		os.Exit(1)
	}

	res, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Operator:       operator,
		Website:        researchFlags.website,
		DefaultType:    defaultType,
		OutputDir:      outputDir,
		UseBrowser:     !researchFlags.noBrowser,
		ScrapeDelay:    time.Duration(cfg.Scrape.DelayMs) * time.Millisecond,
		StaticTimeout:  time.Duration(cfg.Scrape.TimeoutSecs) * time.Second,
		BrowserTimeout: time.Duration(cfg.Scrape.BrowserTimeout) * time.Second,
		Progress: func(current, total int, url string) {
			fmt.Printf("  Scraping %d/%d: %s\n", current, total, source.Domain(url))
		},
	}, results)
	if err != nil {
		return err
	}

	if len(res.Developments) == 0 {
		fmt.Println("\nNo developments found. This could mean:")
		fmt.Println("  - The search results did not contain development pages")
		fmt.Println("  - The operator website uses a non-standard layout")
		fmt.Println("  - Try providing direct URLs with --urls or --interactive")
		return nil
	}

	writeSummary(operator, res)
	return nil
}

// gatherURLs picks the URL source: an explicit list beats interactive mode
// beats automated search. With no list and no API key, it prints guidance
// and exits non-zero.
func gatherURLs(cmd *cobra.Command, operator string, maxResults int) ([]model.SearchResult, error) {
	switch {
	case researchFlags.urls != "":
		fmt.Println("Mode: Manual URL input")
		results := search.ParseManualURLs(researchFlags.urls)
		fmt.Printf("  %d URLs provided\n", len(results))
		return results, nil

	case researchFlags.interactive:
		fmt.Println("Mode: Interactive")
		urls := collectInteractiveURLs(cmd.InOrStdin())
		fmt.Printf("\n  %d URLs collected\n", len(urls))
		return search.FromURLs(urls), nil

	case cfg.Search.SerpAPIKey != "":
		fmt.Println("Mode: Automated search (SerpAPI)")
		queries := search.BuildQueries(operator, researchFlags.website)
		fmt.Printf("  Running %d search queries...\n", len(queries))

		client := serpapi.NewClient(cfg.Search.SerpAPIKey,
			serpapi.WithResultCount(cfg.Search.ResultCount))
		results, err := search.Collect(cmd.Context(), client, queries, maxResults)
		if err != nil {
			fmt.Println("Search failed.")
			fmt.Println("Tip: Try using --urls or --interactive mode instead")
			os.Exit(1)
		}
		fmt.Printf("  Found %d unique URLs from search\n", len(results))
		return results, nil

	default:
		fmt.Println("No SerpAPI key found and no URLs provided.")
		fmt.Println()
		fmt.Println("Usage options:")
		fmt.Println("  1. Set RESEARCH_SEARCH_SERPAPI_KEY for automated search")
		fmt.Println(`  2. Use --urls "url1,url2" to provide URLs directly`)
		fmt.Println("  3. Use --interactive to paste URLs one at a time")
		fmt.Println()
		fmt.Println("Get a free SerpAPI key at: https://serpapi.com")
		os.Exit(1)
		return nil, nil
	}
}

// collectInteractiveURLs reads URLs line by line until "done".
func collectInteractiveURLs(in io.Reader) []string {
	fmt.Println("\nPaste URLs one per line. Type \"done\" when finished:")
	fmt.Println()

	var urls []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "done") {
			break
		}
		if strings.HasPrefix(line, "http") {
			urls = append(urls, line)
			fmt.Printf("  Added (%d): %s\n", len(urls), line)
		} else if line != "" {
			fmt.Printf("  Skipped (not a URL): %s\n", line)
		}
	}
	return urls
}

func writeSummary(operator string, res *pipeline.Result) {
	if res.PagesFailed > 0 {
		fmt.Printf("  (%d pages failed to scrape)\n", res.PagesFailed)
	}
	output.RenderSummary(os.Stdout, operator, res.Developments, res.PagesScraped, res.CSVPath, res.SQLPath)
}
