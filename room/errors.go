package room

import "errors"

var ErrMissingRoom = errors.New("room id is required")
var ErrMissingCandidates = errors.New("candidate list is required")
var ErrMissingCollaborator = errors.New("service and renderer are required")
var ErrInvalidChoice = errors.New("invalid vote choice")
var ErrNoCandidate = errors.New("no candidate at the cursor")
var ErrNoParticipant = errors.New("participant identity is not known")
var ErrVoteInFlight = errors.New("a vote is already being submitted")
var ErrSessionClosed = errors.New("room is closed")
var ErrNotOwner = errors.New("only the room owner can end the session")

const (
	msgVoteFailed     = "Failed to cast vote. Please try again."
	msgVoteNetwork    = "Network error. Please try again."
	msgFinalizeFailed = "Failed to finalize room."
	msgFinalizeError  = "An error occurred. Please try again."
)

// userMessager is implemented by service errors for requests the service
// answered but refused. Anything else is a transport failure.
type userMessager interface {
	UserMessage() string
}

func voteFailureMessage(err error) string {
	var um userMessager
	if errors.As(err, &um) {
		if m := um.UserMessage(); m != "" {
			return m
		}
		return msgVoteFailed
	}
	return msgVoteNetwork
}

func finalizeFailureMessage(err error) string {
	var um userMessager
	if errors.As(err, &um) {
		return msgFinalizeFailed
	}
	return msgFinalizeError
}
