package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"neocommerce.in/storefront/pkg/models"
	"neocommerce.in/storefront/pkg/search"
)

var searchDebounce time.Duration

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Drive the product search from stdin",
	Long: `Each input line is the current contents of the search box. Typing is
debounced; these commands act immediately:

  :enter            run the pending search now
  :clear            empty the search box
  :category <slug>  filter by category (all to reset)
  :sort <mode>      default, price-low, price-high, rating or name
  :reset            clear search, category and sort

End of input submits the last search.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().DurationVar(&searchDebounce, "debounce", 0, "quiet period before a search runs (default SEARCH_DEBOUNCE)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cat, err := fileOrDefaultCatalog(cfg)
	if err != nil {
		return err
	}
	quiet := cfg.SearchDebounce
	if searchDebounce > 0 {
		quiet = searchDebounce
	}

	out := &lockedWriter{w: cmd.OutOrStdout()}
	ctrl := search.NewController(search.NewEngine(cat.Products()), quiet, func(v search.View) {
		printView(out, v)
	})
	defer ctrl.Close()

	return driveSearch(cmd.InOrStdin(), ctrl, out)
}

func driveSearch(in io.Reader, ctrl *search.Controller, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		var err error
		switch cmd {
		case ":enter":
			ctrl.Submit()
		case ":clear":
			ctrl.Clear()
		case ":category":
			err = ctrl.SetCategory(arg)
		case ":sort":
			err = ctrl.SetSort(search.SortMode(arg))
		case ":reset":
			ctrl.ClearAll()
		default:
			ctrl.Input(line)
		}
		if err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	ctrl.Submit()
	return nil
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func printView(w io.Writer, v search.View) {
	var b strings.Builder
	fmt.Fprintf(&b, "[category=%s sort=%s] ", v.Category, v.Sort)
	switch {
	case v.Result.NoResults():
		fmt.Fprintf(&b, "No products found for %q\n", v.Result.Term)
	case v.Result.SearchActive:
		b.WriteString(v.Result.Summary() + "\n")
	default:
		fmt.Fprintf(&b, "Showing %d products\n", v.Result.Count)
	}
	for _, p := range v.Result.Products {
		fmt.Fprintf(&b, "  %3d  %-45s %12s  %.1f\n", p.ID, p.DisplayTitle(), models.FormatRupees(p.Price), p.Rating)
	}
	for _, s := range v.Suggestions {
		fmt.Fprintf(&b, "  > %s\n", s.Text)
	}
	_, _ = io.WriteString(w, b.String())
}
