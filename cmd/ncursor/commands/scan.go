package commands

import (
	"fmt"

	"github.com/ncobase/ncursor/data/search"
	"github.com/ncobase/ncursor/logging/logger"

	"github.com/spf13/cobra"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	var (
		engine string
		batch  int
	)

	cmd := &cobra.Command{
		Use:   "scan [index]",
		Short: "Stream every document id in an index",
		Long: `Scan streams the id of every document in the index using the
engine's native deep pagination, one id per line. Unlike walk it
ignores queries and never counts up front.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, _ := logger.EnsureTraceID(cmd.Context())

			ids := rt.data.ScanIDs(ctx, args[0], batch)
			if engine != "" {
				ids = rt.data.ScanIDsWith(ctx, search.Engine(engine), args[0], batch)
			}

			var scanned int64
			for id, err := range ids {
				if err != nil {
					return fmt.Errorf("scan failed after %d ids: %w", scanned, err)
				}
				fmt.Println(id)
				scanned++
			}

			logger.Infof(ctx, "scan finished: %d ids from %s", scanned, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&engine, "engine", "e", "", "engine to scan (default: selected engine)")
	cmd.Flags().IntVarP(&batch, "batch", "b", 0, "scan batch size (0 uses the engine default)")
	return cmd
}
