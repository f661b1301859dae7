package room

import (
	"context"
	"sync"
	"time"

	"github.com/alex-pricope/roomvote/logging"
	"github.com/sirupsen/logrus"
)

type fakeService struct {
	mu sync.Mutex

	status    Status
	statusErr error
	users     []Participant
	usersErr  error
	voteErr   error
	doneErr   error
	finalErr  error

	statusCalls int
	usersCalls  int
	votes       []Vote
	doneCalls   []string
	finalCalls  int
}

func (f *fakeService) RoomStatus(_ context.Context, _ string) (Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return "", f.statusErr
	}
	if f.status == "" {
		return StatusActive, nil
	}
	return f.status, nil
}

func (f *fakeService) RoomUsers(_ context.Context, _ string) ([]Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usersCalls++
	return f.users, f.usersErr
}

func (f *fakeService) CreateVote(_ context.Context, vote Vote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.voteErr != nil {
		return f.voteErr
	}
	f.votes = append(f.votes, vote)
	return nil
}

func (f *fakeService) SetGuestDone(_ context.Context, participantID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doneCalls = append(f.doneCalls, participantID)
	return f.doneErr
}

func (f *fakeService) FinalizeRoom(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalCalls++
	return f.finalErr
}

type recordingRenderer struct {
	mu sync.Mutex

	candidates    []CandidateView
	completes     []CompleteView
	enabled       []bool
	rosters       [][]Participant
	notifications []string
	closed        int
}

func (r *recordingRenderer) ShowCandidate(view CandidateView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates = append(r.candidates, view)
}

func (r *recordingRenderer) ShowComplete(view CompleteView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completes = append(r.completes, view)
}

func (r *recordingRenderer) SetVotingEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = append(r.enabled, enabled)
}

func (r *recordingRenderer) ShowRoster(participants []Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rosters = append(r.rosters, participants)
}

func (r *recordingRenderer) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, message)
}

func (r *recordingRenderer) SessionClosed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
}

func (r *recordingRenderer) lastCandidate() CandidateView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.candidates[len(r.candidates)-1]
}

type manualTicker struct {
	ch      chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func newManualTicker() *manualTicker {
	return &manualTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() { t.once.Do(func() { close(t.stopped) }) }

// userRejection mimics a service error that carries a message for the user.
type userRejection struct {
	msg string
}

func (e *userRejection) Error() string       { return "rejected: " + e.msg }
func (e *userRejection) UserMessage() string { return e.msg }

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func threeCandidates() []Candidate {
	return []Candidate{
		{ID: "r1", Name: "Noodle Bar", ImageURL: "https://img/1.jpg", Rating: floatPtr(4.5), ReviewCount: intPtr(120), PriceLevel: intPtr(2)},
		{ID: "r2", Name: "Taco Stand", Rating: floatPtr(4), ReviewCount: intPtr(8), PriceLevel: intPtr(1)},
		{ID: "r3", Name: "Steak House", PriceLevel: intPtr(4)},
	}
}

func newTestController(opts Options, svc *fakeService, r *recordingRenderer) *Controller {
	logging.Log = logrus.New()
	logging.Log.SetLevel(logrus.PanicLevel)

	if opts.RoomID == "" {
		opts.RoomID = "room-1"
	}
	if opts.Candidates == nil {
		opts.Candidates = threeCandidates()
	}
	if opts.FallbackImage == "" {
		opts.FallbackImage = "https://placeholder/400"
	}
	c, err := NewController(opts, svc, r)
	if err != nil {
		panic(err)
	}
	return c
}
