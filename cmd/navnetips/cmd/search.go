package cmd

import (
	"fmt"
	"strings"

	"github.com/magnuspl/navnetips/internal/domain/query"
	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search all kinds for a name, meaning or origin",
	Long: "Searches every partition. A name present in several kinds is reported\n" +
		"once, under the first kind in boy, girl, dog, cat order.",
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var popularCmd = &cobra.Command{
	Use:   "popular <kind>",
	Short: "Show the most popular names of a kind",
	Args:  cobra.ExactArgs(1),
	RunE:  runPopular,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalogue()
	if err != nil {
		return err
	}

	term := strings.Join(args, " ")
	hits := query.SearchAll(cat, term)
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), hits)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatHits(term, hits))
	return nil
}

func runPopular(cmd *cobra.Command, args []string) error {
	kind, err := ports.ParseKind(args[0])
	if err != nil {
		return err
	}
	cat, err := loadCatalogue()
	if err != nil {
		return err
	}

	ranked := cat.Popular(kind)
	if flagJSON {
		if ranked == nil {
			ranked = []ports.RankedName{}
		}
		return writeJSON(cmd.OutOrStdout(), ranked)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatPopular(kind, ranked))
	return nil
}
