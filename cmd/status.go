package cmd

import (
	"fmt"

	"github.com/alex-pricope/roomvote/api"
	"github.com/alex-pricope/roomvote/room"
	"github.com/alex-pricope/roomvote/storage"
	"github.com/spf13/cobra"
)

var statusGuest string

var statusCmd = &cobra.Command{
	Use:   "status <room-id>",
	Short: "Show whether a room is open and who is done voting",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusGuest, "guest", "", "guest id to leave out of the roster")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := api.NewClientFromConfig(conf)
	if err != nil {
		return err
	}
	store, err := storage.NewIdentityStorage(ctx, conf)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	s, err := openRoom(ctx, conf, client, store, args[0], statusGuest, &lineRenderer{out: out})
	if err != nil {
		return err
	}

	if s.controller.Status() == room.StatusInactive {
		fmt.Fprintln(out, "Voting has ended.")
		return nil
	}

	s.controller.PollOnce(ctx)
	if s.controller.Status() == room.StatusActive {
		fmt.Fprintf(out, "Room %s is open, %d restaurants left for you.\n", s.controller.RoomID(), len(s.view.Restaurants))
	}
	return nil
}
