package commands

import (
	"fmt"

	"github.com/ncobase/ncursor/data/search"

	"github.com/spf13/cobra"
)

// NewCountCommand creates the count command
func NewCountCommand() *cobra.Command {
	var (
		kind     string
		text     string
		filters  []string
		rawQuery string
	)

	cmd := &cobra.Command{
		Use:   "count [index]",
		Short: "Count documents matching a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			query, err := buildQuery(text, filters, rawQuery)
			if err != nil {
				return err
			}

			total, err := rt.data.Count(cmd.Context(), &search.Request{
				Index: args[0],
				Kind:  kind,
				Query: query,
			})
			if err != nil {
				return fmt.Errorf("count failed: %w", err)
			}

			fmt.Println(total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "document kind to count")
	cmd.Flags().StringVarP(&text, "text", "t", "", "full text query")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "field=value filter, repeatable")
	cmd.Flags().StringVar(&rawQuery, "query-json", "", "query template as raw JSON")
	return cmd
}
