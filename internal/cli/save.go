package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synbiotools/ice-cli/internal/core/domain"
	"github.com/synbiotools/ice-cli/internal/sbol"
)

var (
	saveMetadataPath string
	saveSequencePath string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update an entry",
	Long: `Creates or updates a registry entry from a metadata JSON file.
Metadata containing an "id" field updates the existing entry; metadata
without one creates a new entry. An SBOL file given with --sequence
replaces the entry's sequence document.`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func init() {
	saveCmd.Flags().StringVar(&saveMetadataPath, "metadata", "", "metadata JSON file (required)")
	saveCmd.Flags().StringVar(&saveSequencePath, "sequence", "", "SBOL sequence document to attach")
	_ = saveCmd.MarkFlagRequired("metadata")
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(saveMetadataPath)
	if err != nil {
		return fmt.Errorf("read metadata file: %w", err)
	}
	var metadata map[string]any
	if err := json.Unmarshal(data, &metadata); err != nil {
		return fmt.Errorf("parse metadata file: %w", err)
	}

	var doc domain.SequenceDocument
	if saveSequencePath != "" {
		doc, err = sbol.Parse(saveSequencePath)
		if err != nil {
			return err
		}
	}

	entry, err := domain.NewEntry(doc, "", metadata)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := connect(ctx)
	if err != nil {
		return err
	}

	id, err := client.Save(ctx, entry)
	if err != nil {
		return fmt.Errorf("save entry: %w", err)
	}

	cmd.Printf("Saved %s (id %d)\n", domain.FormatPartNumber(id, client.PartPrefix()), id)
	return nil
}
