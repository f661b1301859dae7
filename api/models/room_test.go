package models

import (
	"encoding/json"
	"testing"

	"github.com/alex-pricope/roomvote/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDUnmarshal(t *testing.T) {
	var view RoomView
	require.NoError(t, json.Unmarshal([]byte(`{"hostUserId": 42, "currentGuestUser": {"id": "g-1", "Username": "Ana", "done": true}}`), &view))

	assert.Equal(t, ID("42"), view.HostUserID)
	assert.Equal(t, ID("g-1"), view.CurrentGuestUser.ID)
	assert.True(t, view.CurrentGuestUser.Done)

	require.NoError(t, json.Unmarshal([]byte(`{"hostUserId": null}`), &view))
	assert.Equal(t, ID(""), view.HostUserID)

	assert.Error(t, json.Unmarshal([]byte(`{"hostUserId": true}`), &view))
}

func TestTransformRoomStatus(t *testing.T) {
	s, err := TransformRoomStatus("active")
	require.NoError(t, err)
	assert.Equal(t, room.StatusActive, s)

	s, err = TransformRoomStatus("inactive")
	require.NoError(t, err)
	assert.Equal(t, room.StatusInactive, s)

	_, err = TransformRoomStatus("archived")
	assert.Error(t, err)
}

func TestTransformRestaurants(t *testing.T) {
	var rs []Restaurant
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": "r1", "name": "Noodle Bar", "image_url": "https://img/1.jpg", "rating": 4.5, "review_count": 120, "price_level": 2},
		{"id": "r2", "name": "Taco Stand", "image_url": null, "rating": null}
	]`), &rs))

	candidates := TransformRestaurantsToCandidates(rs)

	require.Len(t, candidates, 2)
	assert.Equal(t, 4.5, *candidates[0].Rating)
	assert.Equal(t, 120, *candidates[0].ReviewCount)
	assert.Equal(t, 2, *candidates[0].PriceLevel)
	assert.Nil(t, candidates[1].Rating)
	assert.Nil(t, candidates[1].PriceLevel)
	assert.Equal(t, "", candidates[1].ImageURL)
}

func TestTransformGuestUsers(t *testing.T) {
	participants := TransformGuestUsersToParticipants([]GuestUser{{ID: "g1", Username: "Ana", Done: true}})

	assert.Equal(t, []room.Participant{{ID: "g1", Name: "Ana", Done: true}}, participants)
}
