package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/alex-pricope/roomvote/room"
)

// ID is an opaque identifier the service may send as a JSON number or string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type RoomStatusResponse struct {
	RoomStatus string `json:"roomStatus"`
}

type GuestUser struct {
	ID       ID     `json:"id"`
	Username string `json:"Username"`
	Done     bool   `json:"done"`
}

type Restaurant struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ImageURL    string   `json:"image_url"`
	URL         string   `json:"url,omitempty"`
	Rating      *float64 `json:"rating"`
	ReviewCount *int     `json:"review_count"`
	PriceLevel  *int     `json:"price_level"`
}

type RoomResults struct {
	WinningRestaurant *Restaurant               `json:"winningRestaurant"`
	UserVotes         map[string]map[string]int `json:"userVotes"`
	RestaurantNames   []string                  `json:"restaurantNames"`
}

// RoomView is the JSON form of a room page: the guest's remaining candidates
// while the room is active, the results once it is not.
type RoomView struct {
	RoomID           string       `json:"roomId"`
	Status           string       `json:"status"`
	HostUserID       ID           `json:"hostUserId"`
	Location         string       `json:"location,omitempty"`
	Restaurants      []Restaurant `json:"restaurants"`
	CurrentGuestUser *GuestUser   `json:"currentGuestUser"`
	Results          *RoomResults `json:"results,omitempty"`
}

func TransformRoomStatus(s string) (room.Status, error) {
	switch s {
	case RoomStatusActive:
		return room.StatusActive, nil
	case RoomStatusInactive:
		return room.StatusInactive, nil
	}
	return "", fmt.Errorf("unknown room status %q", s)
}

func TransformRestaurantToCandidate(r Restaurant) room.Candidate {
	return room.Candidate{
		ID:          r.ID,
		Name:        r.Name,
		ImageURL:    r.ImageURL,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		PriceLevel:  r.PriceLevel,
	}
}

func TransformRestaurantsToCandidates(rs []Restaurant) []room.Candidate {
	candidates := make([]room.Candidate, 0, len(rs))
	for _, r := range rs {
		candidates = append(candidates, TransformRestaurantToCandidate(r))
	}
	return candidates
}

func TransformGuestUsersToParticipants(users []GuestUser) []room.Participant {
	participants := make([]room.Participant, 0, len(users))
	for _, u := range users {
		participants = append(participants, room.Participant{
			ID:   string(u.ID),
			Name: u.Username,
			Done: u.Done,
		})
	}
	return participants
}

// Voters returns the user names in the results, sorted for stable display.
func (r *RoomResults) Voters() []string {
	names := make([]string, 0, len(r.UserVotes))
	for name := range r.UserVotes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
