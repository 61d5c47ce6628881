package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/handiism/storesearch/internal/config"
	"github.com/handiism/storesearch/internal/dispatch"
	"github.com/handiism/storesearch/internal/download"
	"github.com/handiism/storesearch/internal/grid"
	"github.com/handiism/storesearch/internal/http"
	"github.com/handiism/storesearch/internal/itunes"
	"github.com/handiism/storesearch/internal/model"
	"github.com/handiism/storesearch/internal/search"
)

func main() {
	// Command line flags
	var (
		queryFlag    = flag.String("q", "", "Search term")
		categoryFlag = flag.String("category", "all", "Category: all, music, software, ebooks")
		widthFlag    = flag.Float64("width", 568, "Viewport width in points for the landscape layout")
		layoutFlag   = flag.Bool("layout", false, "Print every item rectangle of the landscape layout")
		configFlag   = flag.String("config", "", "Path to config file (.json or .toml)")
		countryFlag  = flag.String("country", "", "Store country code (overrides config)")
		artFlag      = flag.String("artwork", "", "Save result artwork into this directory")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	term := *queryFlag
	if term == "" && flag.NArg() > 0 {
		term = strings.Join(flag.Args(), " ")
	}
	if strings.TrimSpace(term) == "" {
		fmt.Println("StoreSearch - Search the iTunes Store")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  storesearch -q <term> [options]")
		fmt.Println("  storesearch <term> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: storesearch-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	category, ok := model.ParseCategory(*categoryFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown category %q\n", *categoryFlag)
		os.Exit(1)
	}

	// Load config
	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *countryFlag != "" {
		settings.Country = *countryFlag
	}

	level := slog.LevelWarn
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	client := http.NewClient(settings.ToClientOptions()...)
	fetcher := itunes.NewFetcher(client, settings.ToFetcherOptions()...)

	results, err := runSearch(ctx, fetcher, model.Query{Text: term, Category: category}, logger)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nSearch cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error searching: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("🔎 %q in %s\n", strings.TrimSpace(term), category)
	fmt.Println(strings.Repeat("━", 40))
	printResults(results)

	fmt.Println()
	printLayout(settings, results, *widthFlag, *layoutFlag)

	if *artFlag == "" || len(results) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("📥 Saving artwork...")
	manager := download.NewManager(client, settings.ToExportConfig(*artFlag), func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "❌ "
		case download.LevelWarning:
			prefix = "⚠️  "
		case download.LevelSuccess:
			prefix = "✅ "
		case download.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	if err := manager.Export(ctx, results); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nExport cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error saving artwork: %v\n", err)
		os.Exit(1)
	}

	bytes, saved, _, total := manager.GetProgress()
	fmt.Printf("✨ Saved %d/%d files (%.2f KB)\n", saved, total, float64(bytes)/1024)
}

// runSearch drives one query through a search session and waits for it.
func runSearch(ctx context.Context, fetcher search.Fetcher, q model.Query, logger *slog.Logger) ([]model.SearchResult, error) {
	queue := dispatch.NewQueue()
	defer queue.Close()

	var searchErr error
	session := search.New(fetcher,
		search.WithDispatcher(queue),
		search.WithLogger(logger),
		search.WithContext(ctx),
		search.OnError(func(err error) { searchErr = err }),
	)
	defer session.Close()

	session.Submit(q)
	if !queue.RunOne(ctx) {
		return nil, ctx.Err()
	}
	if searchErr != nil {
		if errors.Is(searchErr, model.ErrDecode) {
			return nil, fmt.Errorf("unexpected response from the store: %w", searchErr)
		}
		return nil, searchErr
	}
	return session.CurrentState().Results, nil
}

func printResults(results []model.SearchResult) {
	if len(results) == 0 {
		fmt.Println("Nothing Found")
		return
	}
	for i, r := range results {
		artist := r.ArtistName
		if artist == "" {
			artist = "Unknown"
		}
		line := fmt.Sprintf("%3d. %s · %s (%s)", i+1, r.Name, artist, r.KindForDisplay())
		if r.Price > 0 {
			line += fmt.Sprintf(" %.2f %s", r.Price, r.Currency)
		}
		fmt.Println(line)
	}
}

func printLayout(settings *config.Settings, results []model.SearchResult, width float64, items bool) {
	p := settings.MatchMode().Select(width)
	layout := grid.ComputeLayoutWith(p, len(results))

	fmt.Printf("Landscape layout at %.0fpt: %s, %dx%d per page, %d page(s)\n",
		width, p.Name, p.ColumnsPerPage, p.RowsPerPage, layout.PageCount)
	if !items {
		return
	}
	for i, item := range layout.Items {
		fmt.Printf("  %3d page %d col %d row %d at (%.1f, %.1f) %gx%g  %s\n",
			i+1, item.Placement.Page, item.Placement.Column, item.Placement.Row,
			item.Rect.X, item.Rect.Y, item.Rect.Width, item.Rect.Height, results[i].Name)
	}
}
