package cmd

import (
	"fmt"
	"strings"

	"github.com/alex-pricope/roomvote/api"
	"github.com/alex-pricope/roomvote/storage"
	"github.com/spf13/cobra"
)

var joinName string

var joinCmd = &cobra.Command{
	Use:   "join <room-id>",
	Short: "Join a room as a guest and remember the guest id",
	Args:  cobra.ExactArgs(1),
	RunE:  runJoin,
}

func init() {
	joinCmd.Flags().StringVarP(&joinName, "name", "n", "", "name shown to the other guests")
	_ = joinCmd.MarkFlagRequired("name")
}

func runJoin(cmd *cobra.Command, args []string) error {
	roomID, name := args[0], strings.TrimSpace(joinName)
	if name == "" {
		return fmt.Errorf("a name is required to join room %s", roomID)
	}

	ctx := cmd.Context()
	client, err := api.NewClientFromConfig(conf)
	if err != nil {
		return err
	}
	store, err := storage.NewIdentityStorage(ctx, conf)
	if err != nil {
		return err
	}

	guestID, err := client.Join(ctx, roomID, name)
	if err != nil {
		return fmt.Errorf("join room %s: %w", roomID, err)
	}
	if err := store.Put(ctx, &storage.Identity{RoomID: roomID, GuestUserID: guestID, Username: name}); err != nil {
		return fmt.Errorf("save guest id for room %s: %w", roomID, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Joined room %s as %s (guest %s).\n", roomID, name, guestID)
	fmt.Fprintf(cmd.OutOrStdout(), "Share: %s\n", client.RoomURL(roomID))
	return nil
}
