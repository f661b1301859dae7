package cmd

import (
	"context"
	"fmt"

	"github.com/alex-pricope/roomvote/api"
	"github.com/alex-pricope/roomvote/api/models"
	"github.com/alex-pricope/roomvote/logging"
	"github.com/alex-pricope/roomvote/storage"
	"github.com/alex-pricope/roomvote/tui"
	"github.com/spf13/cobra"
)

var voteGuest string

var voteCmd = &cobra.Command{
	Use:   "vote <room-id>",
	Short: "Vote on a room's restaurants",
	Args:  cobra.ExactArgs(1),
	RunE:  runVote,
}

func init() {
	voteCmd.Flags().StringVar(&voteGuest, "guest", "", "guest id to vote as (default is the id saved by join)")
}

func runVote(cmd *cobra.Command, args []string) error {
	logFile, err := logging.SetOutput(defaultLogFile(conf))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	ctx := cmd.Context()
	client, err := api.NewClientFromConfig(conf)
	if err != nil {
		return err
	}
	store, err := storage.NewIdentityStorage(ctx, conf)
	if err != nil {
		return err
	}

	renderer := &tui.Renderer{}
	s, err := openRoom(ctx, conf, client, store, args[0], voteGuest, renderer)
	if err != nil {
		return err
	}
	if s.guestID == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "You have not joined room %s; run `roomvote join %s --name <you>` to vote.\n", args[0], args[0])
	}

	roomID, guestID := s.controller.RoomID(), s.guestID
	return tui.Run(ctx, tui.Options{
		RoomID:   roomID,
		Location: s.view.Location,
		ShareURL: client.RoomURL(roomID),
		Session:  s.controller,
		LoadResults: func(ctx context.Context) (*models.RoomView, error) {
			return client.GetRoom(ctx, roomID, guestID)
		},
	}, renderer)
}
