package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/magnuspl/navnetips/internal/domain/catalog"
	"github.com/magnuspl/navnetips/internal/domain/favorites"
	"github.com/magnuspl/navnetips/internal/domain/suggest"
	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/spf13/cobra"
)

var (
	suggestTags  string
	suggestCount int
	suggestSeed  uint64
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <kind>",
	Short: "Draw shuffled name suggestions",
	Long: "Shuffles the names of a kind (optionally only those with one of --tags) and\n" +
		"presents them one at a time without repeats. Interactive keys:\n" +
		"  enter/n  next name\n" +
		"  l        like or unlike the current name\n" +
		"  r        reshuffle and start over\n" +
		"  q        quit\n" +
		"With --count the first N suggestions are printed and nothing is read.",
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	f := suggestCmd.Flags()
	f.StringVarP(&suggestTags, "tags", "t", "", "comma-separated tags; a name needs at least one (default all tags)")
	f.IntVarP(&suggestCount, "count", "n", 0, "print this many suggestions and exit")
	f.Uint64Var(&suggestSeed, "seed", 0, "shuffle seed for a reproducible order")
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// filterTags returns the requested tags, or the whole vocabulary when none
// were given.
func filterTags(cat *catalog.Catalogue) []string {
	if tags := splitTags(suggestTags); len(tags) > 0 {
		return tags
	}
	var all []string
	for _, t := range cat.Tags() {
		all = append(all, t.ID)
	}
	return all
}

func newSelector(cmd *cobra.Command, cat *catalog.Catalogue) *suggest.Selector {
	var rng *rand.Rand
	if cmd.Flags().Changed("seed") {
		rng = rand.New(rand.NewPCG(suggestSeed, suggestSeed))
	}
	return suggest.New(cat, rng)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	kind, err := ports.ParseKind(args[0])
	if err != nil {
		return err
	}
	if suggestCount > 0 {
		cat, err := loadCatalogue()
		if err != nil {
			return err
		}
		sel := newSelector(cmd, cat)
		if _, err := sel.Start(kind, filterTags(cat)); err != nil {
			return err
		}
		return printSuggestions(cmd.OutOrStdout(), sel, suggestCount)
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Stop()

	sel := newSelector(cmd, a.Catalogue)
	if _, err := sel.Start(kind, filterTags(a.Catalogue)); err != nil {
		return err
	}
	return suggestLoop(cmd, sel, a.Favorites)
}

func printSuggestions(w io.Writer, sel *suggest.Selector, n int) error {
	if flagJSON {
		var recs []ports.NameRecord
		for len(recs) < n {
			rec, ok := sel.Next()
			if !ok {
				break
			}
			recs = append(recs, rec)
		}
		if recs == nil {
			recs = []ports.NameRecord{}
		}
		return writeJSON(w, recs)
	}

	if sel.State() == suggest.StateEmpty {
		fmt.Fprintln(w, paint(colorYellow, "no names match these tags"))
		return nil
	}
	for range n {
		rec, ok := sel.Next()
		if !ok {
			break
		}
		fmt.Fprintln(w, formatSuggestion(sel, rec, false))
	}
	return nil
}

// suggestLoop reads one command per line until q or end of input.
func suggestLoop(cmd *cobra.Command, sel *suggest.Selector, favs *favorites.Store) error {
	w := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	ctx := cmd.Context()

	if sel.State() == suggest.StateEmpty {
		fmt.Fprintln(w, paint(colorYellow, "no names match these tags"))
		return nil
	}

	next := func() {
		rec, ok := sel.Next()
		if !ok {
			_, total := sel.Position()
			fmt.Fprintln(w, paint(colorYellow, fmt.Sprintf("all %d names shown, press r to reshuffle", total)))
			return
		}
		fmt.Fprintln(w, formatSuggestion(sel, rec, favs.Has(sel.Kind(), rec.Name)))
	}

	next()
	for {
		if isTerminal(cmd.InOrStdin()) {
			fmt.Fprint(w, paint(colorGray, "[n]ext [l]ike [r]eshuffle [q]uit > "))
		}
		if !in.Scan() {
			return in.Err()
		}

		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "", "n":
			next()
		case "l":
			rec, ok := sel.Current()
			if !ok {
				fmt.Fprintln(w, paint(colorYellow, "nothing to like yet"))
				continue
			}
			liked, err := favs.Toggle(ctx, sel.Kind(), rec.Name)
			if err != nil && !errors.Is(err, ports.ErrPersistenceUnavailable) {
				return err
			}
			if liked {
				fmt.Fprintf(w, "  %s\n", paint(colorMagenta, "♥ liked "+rec.Name))
			} else {
				fmt.Fprintf(w, "  %s\n", paint(colorGray, "unliked "+rec.Name))
			}
			if err != nil {
				fmt.Fprintf(w, "  %s\n", paint(colorYellow, "warning: "+err.Error()))
			}
		case "r":
			if _, err := sel.Reshuffle(); err != nil {
				return err
			}
			fmt.Fprintln(w, paint(colorGray, "reshuffled"))
			next()
		case "q":
			return nil
		default:
			fmt.Fprintln(w, paint(colorYellow, "unknown key, use n, l, r or q"))
		}
	}
}
