package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/synbiotools/ice-cli/internal/core/domain"
)

var grantWrite bool

var grantCmd = &cobra.Command{
	Use:   "grant <id> <group-id>",
	Short: "Grant a group access to an entry",
	Args:  cobra.ExactArgs(2),
	RunE:  runGrant,
}

func init() {
	grantCmd.Flags().BoolVar(&grantWrite, "write", false, "grant write access instead of read")
	rootCmd.AddCommand(grantCmd)
}

func runGrant(cmd *cobra.Command, args []string) error {
	groupID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid group id %q", args[1])
	}

	ctx := context.Background()
	client, err := connect(ctx)
	if err != nil {
		return err
	}

	if _, err := client.AddPermission(ctx, domain.PartID(args[0]), groupID, !grantWrite); err != nil {
		return fmt.Errorf("grant permission: %w", err)
	}

	access := "read"
	if grantWrite {
		access = "write"
	}
	cmd.Printf("Granted group %d %s access to %s\n", groupID, access, args[0])
	return nil
}
