package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alex-pricope/roomvote/api/models"
	apitest "github.com/alex-pricope/roomvote/api/testing"
	"github.com/alex-pricope/roomvote/api/transport"
	"github.com/alex-pricope/roomvote/logging"
	"github.com/alex-pricope/roomvote/room"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v int) *int { return &v }

func setupTestClient(t *testing.T, token string) (*Client, *apitest.SessionService) {
	t.Helper()
	logging.Log = logrus.New()

	svc := apitest.NewSessionService("secret")
	svc.AddRoom(&apitest.Room{
		ID:         "room-1",
		HostUserID: "7",
		Restaurants: []models.Restaurant{
			{ID: "r1", Name: "Noodle Bar", PriceLevel: price(2)},
			{ID: "r2", Name: "Taco Stand"},
			{ID: "r3", Name: "Steak House", PriceLevel: price(4)},
		},
	})
	server := svc.Serve()
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, transport.NewHTTPClient(0, token))
	require.NoError(t, err)
	return client, svc
}

func TestNewClient(t *testing.T) {
	t.Run("Unhappy path - relative base url", func(t *testing.T) {
		_, err := NewClient("/just/a/path", nil)
		assert.Error(t, err)
	})

	t.Run("Happy path - room url", func(t *testing.T) {
		c, err := NewClient("https://rooms.example.com/app/", nil)
		require.NoError(t, err)
		assert.Equal(t, "https://rooms.example.com/app/room/abc", c.RoomURL("abc"))
	})
}

func TestRoomStatusAndUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - active room and roster", func(t *testing.T) {
		c, svc := setupTestClient(t, "")
		ana := svc.AddGuest("room-1", "Ana")

		status, err := c.RoomStatus(ctx, "room-1")
		require.NoError(t, err)
		assert.Equal(t, room.StatusActive, status)

		users, err := c.RoomUsers(ctx, "room-1")
		require.NoError(t, err)
		assert.Equal(t, []room.Participant{{ID: ana, Name: "Ana"}}, users)
	})

	t.Run("Happy path - inactive room", func(t *testing.T) {
		c, svc := setupTestClient(t, "")
		svc.CloseRoom("room-1")

		status, err := c.RoomStatus(ctx, "room-1")
		require.NoError(t, err)
		assert.Equal(t, room.StatusInactive, status)
	})

	t.Run("Unhappy path - unknown room is a response error", func(t *testing.T) {
		c, _ := setupTestClient(t, "")

		_, err := c.RoomStatus(ctx, "nope")

		var re *ResponseError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, http.StatusNotFound, re.StatusCode)
		assert.Equal(t, "Room not found", re.UserMessage())
	})
}

func TestMalformedResponses(t *testing.T) {
	ctx := context.Background()
	logging.Log = logrus.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case models.PathRoomStatus:
			_, _ = w.Write([]byte(`{"roomStatus":"paused"}`))
		default:
			_, _ = w.Write([]byte(`<html>not json</html>`))
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	require.NoError(t, err)

	_, err = c.RoomStatus(ctx, "room-1")
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = c.RoomUsers(ctx, "room-1")
	assert.ErrorIs(t, err, ErrMalformedResponse)

	var re *ResponseError
	assert.False(t, errors.As(err, &re))
}

func TestCreateVote(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - neutral vote is sent as zero", func(t *testing.T) {
		c, svc := setupTestClient(t, "")
		ana := svc.AddGuest("room-1", "Ana")

		err := c.CreateVote(ctx, room.Vote{RoomID: "room-1", ParticipantID: ana, CandidateID: "r2", Choice: room.ChoiceNeutral})

		require.NoError(t, err)
		assert.Equal(t, map[string]int{"r2": 0}, svc.Votes(ana))
	})

	t.Run("Unhappy path - service message is kept", func(t *testing.T) {
		c, svc := setupTestClient(t, "")
		ana := svc.AddGuest("room-1", "Ana")

		err := c.CreateVote(ctx, room.Vote{RoomID: "room-1", ParticipantID: ana, CandidateID: "r9", Choice: room.ChoiceApprove})

		var re *ResponseError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, http.StatusBadRequest, re.StatusCode)
		assert.Equal(t, "Restaurant not in this room.", re.Message)
	})
}

func TestFinalizeRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - token is sent", func(t *testing.T) {
		c, svc := setupTestClient(t, "secret")

		require.NoError(t, c.FinalizeRoom(ctx, "room-1"))
		assert.Equal(t, models.RoomStatusInactive, svc.RoomStatus("room-1"))
	})

	t.Run("Unhappy path - wrong token", func(t *testing.T) {
		c, svc := setupTestClient(t, "guess")

		err := c.FinalizeRoom(ctx, "room-1")

		var re *ResponseError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, http.StatusForbidden, re.StatusCode)
		assert.Equal(t, "Unauthorized or room not found.", re.Message)
		assert.Equal(t, models.RoomStatusActive, svc.RoomStatus("room-1"))
	})
}

func TestJoinAndGetRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - join then load remaining candidates", func(t *testing.T) {
		c, svc := setupTestClient(t, "")

		guestID, err := c.Join(ctx, "room-1", "Ana")
		require.NoError(t, err)
		require.NotEmpty(t, guestID)

		require.NoError(t, c.CreateVote(ctx, room.Vote{RoomID: "room-1", ParticipantID: guestID, CandidateID: "r1", Choice: room.ChoiceApprove}))
		require.NoError(t, c.SetGuestDone(ctx, guestID))
		assert.True(t, svc.GuestDone(guestID))

		view, err := c.GetRoom(ctx, "room-1", guestID)
		require.NoError(t, err)
		assert.Equal(t, models.RoomStatusActive, view.Status)
		assert.Equal(t, models.ID("7"), view.HostUserID)
		require.NotNil(t, view.CurrentGuestUser)
		assert.Equal(t, models.ID(guestID), view.CurrentGuestUser.ID)

		candidates := models.TransformRestaurantsToCandidates(view.Restaurants)
		require.Len(t, candidates, 2)
		assert.Equal(t, "r2", candidates[0].ID)
		assert.Equal(t, 4, *candidates[1].PriceLevel)
	})

	t.Run("Happy path - anonymous view lists every candidate", func(t *testing.T) {
		c, _ := setupTestClient(t, "")

		view, err := c.GetRoom(ctx, "room-1", "")
		require.NoError(t, err)
		assert.Nil(t, view.CurrentGuestUser)
		assert.Len(t, view.Restaurants, 3)
	})

	t.Run("Unhappy path - join rejected", func(t *testing.T) {
		c, _ := setupTestClient(t, "")

		_, err := c.Join(ctx, "room-1", "")

		var re *ResponseError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, "Username and RoomID are required", re.Message)
	})
}
