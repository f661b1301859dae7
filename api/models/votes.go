package models

type CreateVoteRequest struct {
	RoomID       string `json:"RoomID"`
	GuestUserID  string `json:"GuestUserID"`
	RestaurantID string `json:"RestaurantID"`
	VoteChoice   *int   `json:"VoteChoice"`
}

type SetGuestDoneRequest struct {
	GuestUserID string `json:"GuestUserID"`
}

type FinalizeRoomRequest struct {
	RoomID string `json:"roomId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
