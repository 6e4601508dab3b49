package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the registry's blast search index",
	Args:  cobra.NoArgs,
	RunE:  runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	client, err := connect(ctx)
	if err != nil {
		return err
	}

	if _, err := client.RebuildIndex(ctx); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	cmd.Println("Index rebuild triggered.")
	return nil
}
