package commands

import (
	"fmt"

	"github.com/ncobase/ncursor/cursor"
	"github.com/ncobase/ncursor/logging/logger"
	"github.com/ncobase/ncursor/logging/observes"
	"github.com/ncobase/ncursor/utils/convert"

	"github.com/spf13/cobra"
)

// NewWalkCommand creates the walk command
func NewWalkCommand() *cobra.Command {
	var (
		kind     string
		text     string
		filters  []string
		rawQuery string
		fields   []string
		batch    int
		limit    int64
		idsOnly  bool
		pretty   bool
	)

	cmd := &cobra.Command{
		Use:   "walk [index]",
		Short: "Walk every matching document in batches",
		Long: `Walk pages through all documents matching the query, printing one
JSON document per line. The total is probed once up front; the walk
fetches windows of --batch documents and stops at --limit when set.`,
		Args: cobra.ExactArgs(1),
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
			if idsOnly {
				query.Fields = []string{}
			} else if len(fields) > 0 {
				query.Fields = fields
			}

			opts := []cursor.Option{
				cursor.WithQuery(query),
				cursor.WithBatchSize(batch),
			}
			if kind != "" {
				opts = append(opts, cursor.WithKind(kind))
			}
			if cmd.Flags().Changed("limit") {
				opts = append(opts, cursor.WithLimit(limit))
			}

			tc := observes.NewTracingContext(cmd.Context(), "ncursor.walk", 16)
			defer tc.End()
			ctx, _ := logger.EnsureTraceID(tc.Context())

			c, err := cursor.New(ctx, rt.data, args[0], opts...)
			if err != nil {
				return fmt.Errorf("cursor construction failed: %w", err)
			}
			tc.AddMethodCall(observes.LayerCursor, "cursor.New")
			logger.Infof(ctx, "walking %s: %d documents in windows of %d", args[0], c.Total(), c.BatchSize())

			render := convert.ToJSON
			if pretty {
				render = convert.PrettyJSON
			}

			var walked int64
			for hit, err := range c.Documents(ctx) {
				if err != nil {
					return fmt.Errorf("walk failed after %d documents: %w", walked, err)
				}
				line, err := render(hit)
				if err != nil {
					return err
				}
				fmt.Println(line)
				walked++
			}
			tc.AddMethodCall(observes.LayerCursor, "cursor.Documents")

			logger.Infof(ctx, "walk finished: %d of %d documents", walked, c.Total())
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "document kind to walk")
	cmd.Flags().StringVarP(&text, "text", "t", "", "full text query")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "field=value filter, repeatable")
	cmd.Flags().StringVar(&rawQuery, "query-json", "", "query template as raw JSON")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "source fields to return")
	cmd.Flags().IntVarP(&batch, "batch", "b", cursor.DefaultBatchSize, "window size per fetch")
	cmd.Flags().Int64VarP(&limit, "limit", "l", 0, "cap on documents visited")
	cmd.Flags().BoolVar(&idsOnly, "ids", false, "return identifiers only")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}
