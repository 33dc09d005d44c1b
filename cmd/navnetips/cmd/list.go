package cmd

import (
	"fmt"
	"strings"

	"github.com/magnuspl/navnetips/internal/domain/query"
	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/spf13/cobra"
)

var (
	listSearch   string
	listTag      string
	listLetter   string
	listOrigin   string
	listSort     string
	listDir      string
	listPage     int
	listPageSize int
)

var listCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List names of one kind",
	Long: "Lists one partition (boy, girl, dog, cat or the Norwegian slug) through the\n" +
		"query pipeline: search, tag, letter and origin filters, sort, then one page.",
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show <kind> <name>",
	Short: "Show the meaning and origin of a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runShow,
}

var originsCmd = &cobra.Command{
	Use:   "origins <kind>",
	Short: "List the origins and initial letters used by a kind",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrigins,
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listSearch, "search", "q", "", "substring of name, meaning or origin")
	f.StringVarP(&listTag, "tag", "t", "", "only names with this tag")
	f.StringVarP(&listLetter, "letter", "l", "", "only names starting with this letter")
	f.StringVarP(&listOrigin, "origin", "o", "", "only names with this origin")
	f.StringVarP(&listSort, "sort", "s", string(query.SortAlphabetical), "sort key: alphabetical, length or origin")
	f.StringVar(&listDir, "dir", string(query.Asc), "sort direction: asc or desc")
	f.IntVarP(&listPage, "page", "p", 1, "page number")
	f.IntVar(&listPageSize, "page-size", 0, "names per page (default NAVNETIPS_PAGE_SIZE)")
}

func runList(cmd *cobra.Command, args []string) error {
	kind, err := ports.ParseKind(args[0])
	if err != nil {
		return err
	}
	key, err := query.ParseSortKey(listSort)
	if err != nil {
		return err
	}
	dir, err := query.ParseDirection(listDir)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalogue()
	if err != nil {
		return err
	}

	size := listPageSize
	if size == 0 {
		size = cfg.PageSize
	}
	q := query.Query{
		Kind:      kind,
		Search:    listSearch,
		Tag:       listTag,
		Letter:    listLetter,
		Origin:    listOrigin,
		SortKey:   key,
		Direction: dir,
		Page:      listPage,
		PageSize:  size,
	}
	page, err := query.Execute(cat, q)
	if err != nil {
		return err
	}
	if n := query.ClampPage(q.Page, page.TotalPages); n != page.Page {
		q.Page = n
		if page, err = query.Execute(cat, q); err != nil {
			return err
		}
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), page)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatPage(kind, page))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	kind, err := ports.ParseKind(args[0])
	if err != nil {
		return err
	}
	cat, err := loadCatalogue()
	if err != nil {
		return err
	}

	rec, ok := cat.Lookup(kind, args[1])
	if !ok {
		return fmt.Errorf("%w: %q is not a %s", ports.ErrNotFound, args[1], kind.Slug())
	}
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), ports.Hit{Record: rec, Kind: kind})
	}
	fmt.Fprint(cmd.OutOrStdout(), formatDetail(kind, rec))
	return nil
}

type facetsResult struct {
	Kind    ports.Kind          `json:"kind"`
	Origins []string            `json:"origins"`
	Letters []query.LetterCount `json:"letters"`
}

func runOrigins(cmd *cobra.Command, args []string) error {
	kind, err := ports.ParseKind(args[0])
	if err != nil {
		return err
	}
	cat, err := loadCatalogue()
	if err != nil {
		return err
	}
	recs, err := cat.ListByKind(kind)
	if err != nil {
		return err
	}

	res := facetsResult{Kind: kind, Origins: query.Origins(recs), Letters: query.LetterCounts(recs)}
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n", paint(colorBold, "⚡ "+kind.Label()))
	fmt.Fprintf(w, "  Origins:  %s\n", joinOr(res.Origins, "none"))
	fmt.Fprint(w, "  Letters: ")
	for _, lc := range res.Letters {
		if lc.Count == 0 {
			fmt.Fprintf(w, " %s", paint(colorGray, lc.Letter))
			continue
		}
		fmt.Fprintf(w, " %s%s", paint(colorCyan, lc.Letter), paint(colorGray, fmt.Sprintf("(%d)", lc.Count)))
	}
	fmt.Fprintln(w)
	return nil
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
