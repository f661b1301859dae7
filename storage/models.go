package storage

import "time"

// Identity is the guest id a room handed out to this client when it joined.
type Identity struct {
	RoomID      string    `dynamodbav:"PK" json:"roomId"`
	GuestUserID string    `dynamodbav:"GuestUserID" json:"guestUserId"`
	Username    string    `dynamodbav:"Username" json:"username"`
	CreatedAt   time.Time `dynamodbav:"CreatedAt" json:"createdAt"`
	// ExpiresAt doubles as the DynamoDB TTL attribute (epoch seconds).
	ExpiresAt int64 `dynamodbav:"ExpiresAt" json:"expiresAt"`
}

func (i *Identity) Expired(now time.Time) bool {
	return i.ExpiresAt > 0 && now.Unix() >= i.ExpiresAt
}
