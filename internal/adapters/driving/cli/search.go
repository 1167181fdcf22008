package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/productsearch/internal/adapters/driven/memory"
	"github.com/custodia-labs/productsearch/internal/adapters/driven/render/html"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/components/cards"
	"github.com/custodia-labs/productsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driven"
)

// ErrSearchFailed is returned when a search ends in an error outcome.
var ErrSearchFailed = errors.New("search failed")

// defaultTerminalWidth is used when stdout is not a terminal.
const defaultTerminalWidth = 80

var (
	searchCollection string
	searchTopK       int
	searchJSON       bool
	searchHTML       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the product catalogue",
	Long: `Runs one search against the product search backend and prints the
status line followed by the product cards.

Cards are printed as styled text by default, as the HTML fragment served
by the search page with --html, or as a JSON document with --json.
The command exits non-zero when the search fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCollection, "collection", "c", "", "collection to search (default from config)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results, 1 to 20 (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchHTML, "html", false, "output cards as HTML")
	searchCmd.MarkFlagsMutuallyExclusive("json", "html")
	rootCmd.AddCommand(searchCmd)
}

// searchOutput is the --json document.
type searchOutput struct {
	Query      string                    `json:"query"`
	Collection string                    `json:"collection"`
	TopK       string                    `json:"top_k"`
	State      domain.OutcomeState       `json:"state"`
	Status     string                    `json:"status"`
	Count      int                       `json:"count"`
	Results    []domain.SearchResultItem `json:"results"`
	Error      string                    `json:"error,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	d, err := searchDeps()
	if err != nil {
		return err
	}

	page := memory.NewPage(d.Search.Collections(), d.Search.Defaults())
	page.Query.SetValue(args[0])
	if searchCollection != "" {
		if _, ok := domain.FindCollection(page.Collection.Options(), searchCollection); !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownCollection, searchCollection)
		}
		page.Collection.SetValue(searchCollection)
	}
	if cmd.Flags().Changed("top-k") {
		page.TopK.SetValue(strconv.Itoa(searchTopK))
	}

	client, err := d.NewClient(d.Search, page.Elements(), searchRenderer(cmd))
	if err != nil {
		return fmt.Errorf("create search client: %w", err)
	}
	defer func() { _ = client.Close() }()

	client.SetContext(cmd.Context())
	if err := client.Bind(); err != nil {
		return err
	}
	page.SearchBtn.Click()
	out := client.LastOutcome()

	if searchJSON {
		if err := outputSearchJSON(cmd, page, out); err != nil {
			return err
		}
	} else {
		cmd.Println(page.Status.Text())
		if content := page.Results.Content(); content != "" {
			cmd.Println()
			cmd.Println(content)
		}
	}

	if out.State.IsFailure() {
		return fmt.Errorf("%w: %s", ErrSearchFailed, out.Status)
	}
	return nil
}

// searchRenderer picks the card renderer for the output mode.
func searchRenderer(cmd *cobra.Command) driven.Renderer {
	if searchHTML || searchJSON {
		return html.NewRenderer()
	}
	return cards.NewRenderer(styles.DefaultStyles(), terminalWidth(cmd))
}

// terminalWidth returns the width of stdout when it is a terminal.
func terminalWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

func outputSearchJSON(cmd *cobra.Command, page *memory.Page, out domain.Outcome) error {
	results := out.Results
	if results == nil {
		results = []domain.SearchResultItem{}
	}

	doc := searchOutput{
		Query:      page.Query.Value(),
		Collection: page.Collection.Value(),
		TopK:       page.TopK.Value(),
		State:      out.State,
		Status:     out.Status,
		Count:      out.Count,
		Results:    results,
	}
	if out.Err != nil {
		doc.Error = out.Err.Error()
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
