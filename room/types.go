package room

import (
	"context"
	"time"
)

// Choice is a participant's verdict on one candidate.
type Choice int

const (
	ChoiceReject  Choice = -1
	ChoiceNeutral Choice = 0
	ChoiceApprove Choice = 1
)

func (c Choice) Valid() bool {
	return c >= ChoiceReject && c <= ChoiceApprove
}

func (c Choice) String() string {
	switch c {
	case ChoiceReject:
		return "reject"
	case ChoiceNeutral:
		return "neutral"
	case ChoiceApprove:
		return "approve"
	}
	return "unknown"
}

// Status of a room. The only transition is active -> inactive.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Candidate is one restaurant up for a vote. Optional metadata is nil when
// the service did not send it.
type Candidate struct {
	ID          string
	Name        string
	ImageURL    string
	Rating      *float64
	ReviewCount *int
	PriceLevel  *int
}

// Participant is one roster entry as last reported by the service.
type Participant struct {
	ID   string
	Name string
	Done bool
}

type Vote struct {
	RoomID        string
	ParticipantID string
	CandidateID   string
	Choice        Choice
}

// CandidateView is what the renderer shows for the candidate under the cursor.
type CandidateView struct {
	Index  int
	Total  int
	ID     string
	Name   string
	Image  *Image
	Rating string
	Price  string
}

type CompleteView struct {
	ShowEndSession bool
}

// Service is the remote session service the controller talks to.
type Service interface {
	RoomStatus(ctx context.Context, roomID string) (Status, error)
	RoomUsers(ctx context.Context, roomID string) ([]Participant, error)
	CreateVote(ctx context.Context, vote Vote) error
	SetGuestDone(ctx context.Context, participantID string) error
	FinalizeRoom(ctx context.Context, roomID string) error
}

// Renderer draws controller state. Implementations must be safe for use from
// multiple goroutines and must tolerate regions they do not display.
type Renderer interface {
	ShowCandidate(view CandidateView)
	ShowComplete(view CompleteView)
	SetVotingEnabled(enabled bool)
	ShowRoster(participants []Participant)
	Notify(message string)
	SessionClosed()
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func NewTimeTicker(d time.Duration) Ticker {
	return &timeTicker{t: time.NewTicker(d)}
}

func (t *timeTicker) C() <-chan time.Time { return t.t.C }

func (t *timeTicker) Stop() { t.t.Stop() }
