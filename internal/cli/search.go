package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <sequence>",
	Short: "Find entries whose sequence exactly matches",
	Long: `Runs a blast search against the registry and returns only entries
whose stored sequence is an exact match for the query.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := connect(ctx)
	if err != nil {
		return err
	}

	entries, err := client.SearchBySequence(ctx, args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No matching entries.")
		return nil
	}

	for _, entry := range entries {
		part, _ := entry.PartNumber(client.PartPrefix())
		cmd.Printf("%s\t%s\t%s\n", part, entry.Type(), entry.Name())
	}
	return nil
}
