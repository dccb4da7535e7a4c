package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pders01/skuref/internal/config"
	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/pagination"
	"github.com/pders01/skuref/internal/rank"
	"github.com/pders01/skuref/internal/shopify"
)

var (
	searchType        string
	searchPages       int
	searchInteractive bool
	searchRank        bool
	searchJSON        bool
	searchToon        bool
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search products, variants or collections in the storefront",
	Long: `Search the storefront and print results page by page.

Results are never repeated across pages of the same search. Variant search
flattens each product into its variants and keeps fetching until a page is
full or the storefront runs out of products.

With --rank, each page is reordered by semantic similarity between the term
and the record names using a local Ollama embedding model. Requires
embeddings.enabled = true.

Example:
  skuref search shirt
  skuref search shirt --type product --pages 3
  skuref search --type collection summer --json
  skuref search --interactive`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchType, "type", "t", shopify.SkuTypeVariant, "Record type: product, collection or variant")
	searchCmd.Flags().IntVarP(&searchPages, "pages", "p", 1, "Number of pages to fetch")
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "Start an interactive search prompt")
	searchCmd.Flags().BoolVar(&searchRank, "rank", false, "Reorder each page by semantic similarity")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output results as JSON")
	searchCmd.Flags().BoolVar(&searchToon, "toon", false, "Output results as TOON")
}

// searchOutput is the structured form of a search run.
type searchOutput struct {
	Term        string           `json:"term"`
	Type        string           `json:"type"`
	Pages       int              `json:"pages"`
	HasNextPage bool             `json:"has_next_page"`
	Products    []models.Product `json:"products"`
}

// searchSession drives one Searcher and remembers what was shown.
type searchSession struct {
	searcher pagination.Searcher
	ranker   *rank.Ranker
	term     string
	shown    int
	hasNext  bool
}

func (s *searchSession) next(ctx context.Context, term string) (models.SearchResult, error) {
	if term != s.term {
		s.term = term
		s.shown = 0
	}

	result, err := s.searcher.FetchNext(ctx, term)
	if err != nil {
		return models.SearchResult{}, err
	}
	s.hasNext = result.Pagination.HasNextPage

	if s.ranker != nil {
		ranked, err := s.ranker.Rerank(ctx, term, result.Products)
		if err != nil {
			logrus.WithError(err).Warn("ranking failed, keeping storefront order")
		} else {
			result.Products = ranked
		}
	}

	return result, nil
}

// collect fetches up to pages pages for term, stopping early when the
// storefront runs out.
func (s *searchSession) collect(ctx context.Context, term string, pages int) (searchOutput, error) {
	output := searchOutput{Term: term, Products: []models.Product{}}

	for output.Pages < pages {
		result, err := s.next(ctx, term)
		if err != nil {
			return output, err
		}
		output.Pages++
		output.Products = append(output.Products, result.Products...)
		output.HasNextPage = result.Pagination.HasNextPage
		if !result.Pagination.HasNextPage {
			break
		}
	}

	return output, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := checkOutputFlags(searchJSON, searchToon); err != nil {
		return err
	}
	if searchPages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}

	ctx := commandContext(cmd)

	client, err := newShopifyClient()
	if err != nil {
		return err
	}

	session := &searchSession{
		searcher: client.MakeSkuResolver(searchType, engineOptions()),
	}

	if searchRank {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ranker, err := newRanker(ctx, s)
		if err != nil {
			return err
		}
		session.ranker = ranker
	}

	if searchInteractive {
		return runInteractiveSearch(ctx, session)
	}

	term := strings.Join(args, " ")
	output, err := session.collect(ctx, term, searchPages)
	if err != nil {
		return fmt.Errorf("failed to search: %w", err)
	}
	output.Type = searchType

	if done, err := emitStructured(output, searchJSON, searchToon); done {
		return err
	}

	if len(output.Products) == 0 {
		fmt.Printf("No %ss found for %q\n", searchType, term)
		return nil
	}

	fmt.Printf("━━━ %s search: %q ━━━\n\n", searchType, term)
	printProductTable(output.Products, 0)
	fmt.Printf("\n%d result(s) in %d page(s)", len(output.Products), output.Pages)
	if output.HasNextPage {
		fmt.Printf(", more available (use --pages %d)", output.Pages+1)
	}
	fmt.Println()

	return nil
}

func runInteractiveSearch(ctx context.Context, session *searchSession) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          fmt.Sprintf("%s> ", searchType),
		HistoryFile:     filepath.Join(config.Dir(), "search_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start prompt: %w", err)
	}
	defer rl.Close()

	fmt.Println("Type a term to search. Empty line or 'more' loads the next page, 'quit' exits.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		term := line
		switch strings.ToLower(line) {
		case "quit", "exit":
			return nil
		case "", "more", "n":
			if !session.hasNext && session.shown > 0 {
				fmt.Println("No more results.")
				continue
			}
			term = session.term
		}

		result, err := session.next(ctx, term)
		if errors.Is(err, pagination.ErrStale) {
			continue
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		if len(result.Products) == 0 && session.shown == 0 {
			fmt.Printf("No %ss found for %q\n", searchType, term)
			continue
		}

		printProductTable(result.Products, session.shown)
		session.shown += len(result.Products)
		if result.Pagination.HasNextPage {
			fmt.Println("(enter for more)")
		}
	}
}
