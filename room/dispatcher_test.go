package room

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitVote(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - three votes walk to completion", func(t *testing.T) {
		svc := &fakeService{}
		r := &recordingRenderer{}
		c := newTestController(Options{ParticipantID: "g1"}, svc, r)
		c.Start(ctx)

		for i, choice := range []Choice{ChoiceApprove, ChoiceReject, ChoiceApprove} {
			assert.Equal(t, i, c.Cursor())
			require.NoError(t, c.SubmitVote(ctx, choice))
			assert.Equal(t, i+1, c.Cursor())
		}

		require.Len(t, svc.votes, 3)
		assert.Equal(t, Vote{RoomID: "room-1", ParticipantID: "g1", CandidateID: "r1", Choice: ChoiceApprove}, svc.votes[0])
		assert.Equal(t, "r2", svc.votes[1].CandidateID)
		assert.Equal(t, ChoiceReject, svc.votes[1].Choice)
		assert.Equal(t, "r3", svc.votes[2].CandidateID)

		assert.Len(t, r.completes, 1)
		assert.Equal(t, []string{"g1"}, svc.doneCalls)
		assert.Equal(t, []bool{false, true, false, true, false, true}, r.enabled)
	})

	t.Run("Happy path - last vote re-enables controls before marking done", func(t *testing.T) {
		r := &recordingRenderer{}
		svc := &enabledAtDoneService{fakeService: &fakeService{}, r: r}
		c := newTestController(Options{ParticipantID: "g1", Candidates: threeCandidates()[:1]}, svc.fakeService, r)
		c.service = svc
		c.Start(ctx)

		require.NoError(t, c.SubmitVote(ctx, ChoiceApprove))

		assert.Equal(t, []string{"g1"}, svc.doneCalls)
		assert.Equal(t, []bool{true}, svc.enabledAtDone)
	})

	t.Run("Unhappy path - rejected vote keeps the cursor", func(t *testing.T) {
		svc := &fakeService{voteErr: &userRejection{msg: "Room not found or not active."}}
		r := &recordingRenderer{}
		c := newTestController(Options{ParticipantID: "g1"}, svc, r)
		c.Start(ctx)

		err := c.SubmitVote(ctx, ChoiceApprove)

		require.Error(t, err)
		assert.Equal(t, 0, c.Cursor())
		assert.Equal(t, []string{"Room not found or not active."}, r.notifications)
		assert.Equal(t, []bool{false, true}, r.enabled)
		assert.Len(t, r.candidates, 1)
	})

	t.Run("Unhappy path - rejection without a message uses the generic text", func(t *testing.T) {
		svc := &fakeService{voteErr: &userRejection{}}
		r := &recordingRenderer{}
		c := newTestController(Options{ParticipantID: "g1"}, svc, r)

		require.Error(t, c.SubmitVote(ctx, ChoiceNeutral))
		assert.Equal(t, []string{msgVoteFailed}, r.notifications)
	})

	t.Run("Unhappy path - transport error", func(t *testing.T) {
		svc := &fakeService{voteErr: errors.New("connection refused")}
		r := &recordingRenderer{}
		c := newTestController(Options{ParticipantID: "g1"}, svc, r)

		require.Error(t, c.SubmitVote(ctx, ChoiceNeutral))
		assert.Equal(t, 0, c.Cursor())
		assert.Equal(t, []string{msgVoteNetwork}, r.notifications)
		assert.Equal(t, []bool{false, true}, r.enabled)
	})

	t.Run("Happy path - retry after failure votes on the same candidate", func(t *testing.T) {
		svc := &fakeService{voteErr: errors.New("timeout")}
		r := &recordingRenderer{}
		c := newTestController(Options{ParticipantID: "g1"}, svc, r)

		require.Error(t, c.SubmitVote(ctx, ChoiceApprove))
		svc.voteErr = nil
		require.NoError(t, c.SubmitVote(ctx, ChoiceApprove))

		require.Len(t, svc.votes, 1)
		assert.Equal(t, "r1", svc.votes[0].CandidateID)
		assert.Equal(t, 1, c.Cursor())
	})

	t.Run("Unhappy path - preconditions make it a no-op", func(t *testing.T) {
		svc := &fakeService{}
		r := &recordingRenderer{}

		c := newTestController(Options{}, svc, r)
		assert.ErrorIs(t, c.SubmitVote(ctx, ChoiceApprove), ErrNoParticipant)

		c = newTestController(Options{ParticipantID: "g1", Candidates: []Candidate{}}, svc, r)
		assert.ErrorIs(t, c.SubmitVote(ctx, ChoiceApprove), ErrNoCandidate)

		c = newTestController(Options{ParticipantID: "g1", Candidates: []Candidate{{Name: "no id"}}}, svc, r)
		assert.ErrorIs(t, c.SubmitVote(ctx, ChoiceApprove), ErrNoCandidate)

		c = newTestController(Options{ParticipantID: "g1"}, svc, r)
		assert.ErrorIs(t, c.SubmitVote(ctx, Choice(3)), ErrInvalidChoice)

		assert.Empty(t, svc.votes)
		assert.Empty(t, r.enabled)
		assert.Empty(t, r.notifications)
	})

	t.Run("Unhappy path - closed room accepts no votes", func(t *testing.T) {
		svc := &fakeService{status: StatusInactive}
		r := &recordingRenderer{}
		c := newTestController(Options{ParticipantID: "g1"}, svc, r)

		c.PollOnce(ctx)

		assert.ErrorIs(t, c.SubmitVote(ctx, ChoiceApprove), ErrSessionClosed)
		assert.Empty(t, svc.votes)
	})

	t.Run("Unhappy path - second submit while one is in flight", func(t *testing.T) {
		r := &recordingRenderer{}
		svc := &blockingVoteService{fakeService: &fakeService{}, release: make(chan struct{}), entered: make(chan struct{})}
		c := newTestController(Options{ParticipantID: "g1"}, svc.fakeService, r)
		c.service = svc

		done := make(chan error, 1)
		go func() { done <- c.SubmitVote(ctx, ChoiceApprove) }()
		<-svc.entered

		assert.ErrorIs(t, c.SubmitVote(ctx, ChoiceReject), ErrVoteInFlight)

		close(svc.release)
		require.NoError(t, <-done)
		assert.Equal(t, 1, c.Cursor())
	})
}

type blockingVoteService struct {
	*fakeService
	entered chan struct{}
	release chan struct{}
}

func (b *blockingVoteService) CreateVote(ctx context.Context, vote Vote) error {
	close(b.entered)
	<-b.release
	return b.fakeService.CreateVote(ctx, vote)
}

// enabledAtDoneService records whether voting controls were enabled when the
// participant was marked done.
type enabledAtDoneService struct {
	*fakeService
	r             *recordingRenderer
	enabledAtDone []bool
}

func (s *enabledAtDoneService) SetGuestDone(ctx context.Context, participantID string) error {
	s.r.mu.Lock()
	enabled := len(s.r.enabled) > 0 && s.r.enabled[len(s.r.enabled)-1]
	s.r.mu.Unlock()
	s.enabledAtDone = append(s.enabledAtDone, enabled)
	return s.fakeService.SetGuestDone(ctx, participantID)
}
