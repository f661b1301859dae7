package models

const (
	PathRoomStatus   = "/get_room_status"
	PathRoomUsers    = "/get_room_users"
	PathCreateVote   = "/create_vote"
	PathSetGuestDone = "/set_guest_done"
	PathFinalizeRoom = "/finalize_room"
	PathAddGuestUser = "/add_guest_user"
	PathRoom         = "/room/"

	HeaderAuthToken = "x-auth-token"
	HeaderRequestID = "X-Request-ID"

	RoomStatusActive   = "active"
	RoomStatusInactive = "inactive"
)

// GuestCookieName is the cookie the service sets when a guest joins a room.
func GuestCookieName(roomID string) string {
	return "guest_user_id_" + roomID
}
