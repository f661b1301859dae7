package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alex-pricope/roomvote/api"
	"github.com/alex-pricope/roomvote/api/models"
	"github.com/alex-pricope/roomvote/config"
	"github.com/alex-pricope/roomvote/logging"
	"github.com/alex-pricope/roomvote/room"
	"github.com/alex-pricope/roomvote/storage"
)

// roomSession is everything one command needs to act on a room.
type roomSession struct {
	client     *api.Client
	view       *models.RoomView
	controller *room.Controller
	guestID    string
}

func openRoom(ctx context.Context, c *config.Config, client *api.Client, store storage.IdentityStorage, roomID, explicitGuest string, renderer room.Renderer) (*roomSession, error) {
	guestID, err := storage.ResolveParticipant(ctx, store, roomID, explicitGuest)
	if err != nil {
		return nil, err
	}

	view, err := client.GetRoom(ctx, roomID, guestID)
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", roomID, err)
	}
	switch {
	case guestID == "" && view.CurrentGuestUser != nil:
		guestID = string(view.CurrentGuestUser.ID)
	case guestID != "" && explicitGuest == "" && view.CurrentGuestUser == nil && view.Status == models.RoomStatusActive:
		// The room no longer knows the stored guest.
		logging.Log.Warnf("SESSION: stored guest %s is not in room %s, forgetting it", guestID, roomID)
		if err := store.Delete(ctx, roomID); err != nil {
			logging.Log.Errorf("SESSION: failed to forget guest for room %s: %v", roomID, err)
		}
		guestID = ""
	}

	roomKey := view.RoomID
	if roomKey == "" {
		roomKey = roomID
	}

	status, err := models.TransformRoomStatus(view.Status)
	if err != nil {
		logging.Log.Warnf("SESSION: %v for room %s, treating it as active", err, roomID)
		status = room.StatusActive
	}

	controller, err := room.NewController(room.Options{
		RoomID:        roomKey,
		Status:        status,
		ParticipantID: guestID,
		AccountID:     c.ID,
		OwnerID:       string(view.HostUserID),
		Candidates:    models.TransformRestaurantsToCandidates(view.Restaurants),
		PollInterval:  c.Interval,
		FallbackImage: c.FallbackImage,
	}, client, renderer)
	if err != nil {
		return nil, err
	}

	logging.Log.Infof("SESSION: opened %s as guest %q", controller, guestID)
	return &roomSession{client: client, view: view, controller: controller, guestID: guestID}, nil
}

// lineRenderer prints controller output for the one-shot commands.
type lineRenderer struct {
	out io.Writer
}

func (r *lineRenderer) ShowCandidate(v room.CandidateView) {
	fmt.Fprintf(r.out, "%d/%d %s\n", v.Index+1, v.Total, v.Name)
}

func (r *lineRenderer) ShowComplete(room.CompleteView) {
	fmt.Fprintln(r.out, "All restaurants voted.")
}

func (r *lineRenderer) SetVotingEnabled(bool) {}

func (r *lineRenderer) ShowRoster(participants []room.Participant) {
	if len(participants) == 0 {
		fmt.Fprintln(r.out, "No other guests yet.")
		return
	}
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		name := room.DisplayName(p.Name)
		if p.Done {
			name += " (done)"
		}
		names = append(names, name)
	}
	fmt.Fprintf(r.out, "Guests: %s\n", strings.Join(names, ", "))
}

func (r *lineRenderer) Notify(message string) {
	fmt.Fprintln(r.out, message)
}

func (r *lineRenderer) SessionClosed() {
	fmt.Fprintln(r.out, "Voting has ended.")
}
