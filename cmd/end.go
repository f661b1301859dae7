package cmd

import (
	"fmt"

	"github.com/alex-pricope/roomvote/api"
	"github.com/alex-pricope/roomvote/room"
	"github.com/alex-pricope/roomvote/storage"
	"github.com/spf13/cobra"
)

var endCmd = &cobra.Command{
	Use:   "end <room-id>",
	Short: "End voting in a room you host",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnd,
}

func runEnd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := api.NewClientFromConfig(conf)
	if err != nil {
		return err
	}
	store, err := storage.NewIdentityStorage(ctx, conf)
	if err != nil {
		return err
	}

	s, err := openRoom(ctx, conf, client, store, args[0], "", &lineRenderer{out: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	if !s.controller.IsOwner() {
		return fmt.Errorf("%w: set --user to the host's account id", room.ErrNotOwner)
	}
	return s.controller.Finalize(ctx)
}
