package cmd

import (
	"errors"
	"fmt"

	"github.com/magnuspl/navnetips/internal/ports"
	"github.com/spf13/cobra"
)

var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage liked names",
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List liked names",
	Args:  cobra.NoArgs,
	RunE:  runFavList,
}

var favToggleCmd = &cobra.Command{
	Use:   "toggle <kind> <name>",
	Short: "Like a name, or unlike it if it is already liked",
	Args:  cobra.ExactArgs(2),
	RunE:  runFavToggle,
}

func init() {
	favCmd.AddCommand(favListCmd)
	favCmd.AddCommand(favToggleCmd)
}

func runFavList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Stop()

	hits := a.Liked()
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), hits)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatLiked(hits))
	return nil
}

type toggleResult struct {
	Kind    ports.Kind `json:"kind"`
	Name    string     `json:"name"`
	Liked   bool       `json:"liked"`
	Warning string     `json:"warning,omitempty"`
}

func runFavToggle(cmd *cobra.Command, args []string) error {
	kind, err := ports.ParseKind(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Stop()

	rec, ok := a.Catalogue.Lookup(kind, args[1])
	if !ok {
		return fmt.Errorf("%w: %q is not a %s", ports.ErrNotFound, args[1], kind.Slug())
	}

	res := toggleResult{Kind: kind, Name: rec.Name}
	res.Liked, err = a.Favorites.Toggle(cmd.Context(), kind, rec.Name)
	if err != nil {
		if !errors.Is(err, ports.ErrPersistenceUnavailable) {
			return err
		}
		res.Warning = err.Error()
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	w := cmd.OutOrStdout()
	if res.Liked {
		fmt.Fprintf(w, "%s\n", paint(colorMagenta, "♥ liked "+rec.Name))
	} else {
		fmt.Fprintf(w, "%s\n", paint(colorGray, "unliked "+rec.Name))
	}
	if res.Warning != "" {
		fmt.Fprintf(w, "%s\n", paint(colorYellow, "warning: "+res.Warning+" (change kept for this run only)"))
	}
	return nil
}
