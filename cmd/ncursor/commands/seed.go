package commands

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ncobase/ncursor/consts"
	"github.com/ncobase/ncursor/logging/logger"
	"github.com/ncobase/ncursor/nanoid"
	"github.com/ncobase/ncursor/utils/convert"

	"github.com/spf13/cobra"
)

type seedDocument struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
	Views   int    `json:"views"`
}

var seedStatuses = []string{"published", "draft", "archived"}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	var (
		count int
		kind  string
		chunk int
	)

	cmd := &cobra.Command{
		Use:   "seed [index]",
		Short: "Fill an index with synthetic documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			if chunk <= 0 {
				chunk = 500
			}

			rt, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, _ := logger.EnsureTraceID(cmd.Context())
			newID := nanoid.PrimaryKey()
			now := time.Now().UTC().Format(time.RFC3339)

			docs := make([]any, 0, chunk)
			flush := func() error {
				if len(docs) == 0 {
					return nil
				}
				if err := rt.data.BulkIndexDocuments(ctx, args[0], docs); err != nil {
					return fmt.Errorf("bulk index failed: %w", err)
				}
				docs = docs[:0]
				return nil
			}

			for i := 0; i < count; i++ {
				doc, err := convert.ToJSONMap(seedDocument{
					ID:      newID(),
					Kind:    kind,
					Title:   fmt.Sprintf("Sample document %d", i+1),
					Content: fmt.Sprintf("Synthetic content %s for pagination runs.", nanoid.Lower(12)),
					Status:  seedStatuses[rand.Intn(len(seedStatuses))],
					Views:   rand.Intn(10000),
				})
				if err != nil {
					return err
				}
				doc[consts.CreatedAt] = now
				doc[consts.UpdatedAt] = now

				docs = append(docs, doc)
				if len(docs) == chunk {
					if err := flush(); err != nil {
						return err
					}
				}
			}
			if err := flush(); err != nil {
				return err
			}

			logger.Infof(ctx, "seeded %d documents into %s", count, args[0])
			fmt.Printf("Seeded %d documents into %s\n", count, args[0])
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 100, "number of documents to create")
	cmd.Flags().StringVarP(&kind, "kind", "k", "article", "document kind to assign")
	cmd.Flags().IntVar(&chunk, "chunk", 500, "documents per bulk request")
	return cmd
}
