package cli

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/git-pkgs/outdated/internal/core"
)

func newReposCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repos",
		Short: "List well-known repositories usable with --repo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repos := core.KnownRepositories()

			width := runewidth.StringWidth("ID")
			for _, r := range repos {
				if w := runewidth.StringWidth(r.ID); w > width {
					width = w
				}
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "%s  %s\n", runewidth.FillRight("ID", width), "URL"); err != nil {
				return err
			}
			for _, r := range repos {
				if _, err := fmt.Fprintf(out, "%s  %s\n", runewidth.FillRight(r.ID, width), r.NormalizedURL()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
