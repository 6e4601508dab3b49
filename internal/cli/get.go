package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synbiotools/ice-cli/internal/core/domain"
)

var getSequenceOut string

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch an entry by numeric id or part number",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().StringVar(&getSequenceOut, "sequence", "", "write the SBOL sequence document to this file")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client, err := connect(ctx)
	if err != nil {
		return err
	}

	entry, err := client.Entry(ctx, domain.PartID(args[0]))
	if err != nil {
		return fmt.Errorf("fetch entry: %w", err)
	}

	data, err := json.MarshalIndent(entry.Metadata(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	cmd.Println(string(data))

	if getSequenceOut != "" {
		doc := entry.Document()
		if doc == nil {
			return domain.ErrNoDocument
		}
		content, err := doc.Bytes()
		if err != nil {
			return fmt.Errorf("serialize document: %w", err)
		}
		if err := os.WriteFile(getSequenceOut, content, 0600); err != nil {
			return fmt.Errorf("write sequence file: %w", err)
		}
		cmd.Printf("Sequence written to %s\n", getSequenceOut)
	}

	return nil
}
