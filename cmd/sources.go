package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/crimewatch/internal/config"
)

const tabPadding = 2

// newSourcesCmd creates the sources command group.
func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage configured news sources",
	}
	cmd.AddCommand(newSourcesListCmd())
	return cmd
}

// newSourcesListCmd creates the sources list command.
func newSourcesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured news sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if len(cfg.Sites) == 0 {
				fmt.Println("No sources configured.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(w, "NAME\tURL\tARTICLE SELECTOR")
			for _, s := range cfg.Sites {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.URL, s.ArticleSelector)
			}
			return w.Flush()
		},
	}
}
