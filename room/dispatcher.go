package room

import (
	"context"
	"fmt"

	"github.com/alex-pricope/roomvote/logging"
)

// SubmitVote records choice for the candidate under the cursor and advances
// by one on success. Voting controls are disabled while the request is in
// flight and always re-enabled afterwards, before the participant is marked
// done. There is no automatic retry.
func (c *Controller) SubmitVote(ctx context.Context, choice Choice) error {
	if !choice.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidChoice, choice)
	}

	c.mu.Lock()
	switch {
	case c.status == StatusInactive:
		c.mu.Unlock()
		return ErrSessionClosed
	case c.cursor >= len(c.candidates) || c.candidates[c.cursor].ID == "":
		c.mu.Unlock()
		return ErrNoCandidate
	case c.participantID == "":
		c.mu.Unlock()
		logging.Log.Warnf("VOTE: ignoring vote in room %s, participant identity is not known", c.roomID)
		return ErrNoParticipant
	case c.voting:
		c.mu.Unlock()
		return ErrVoteInFlight
	}
	c.voting = true
	cursor := c.cursor
	candidate := c.candidates[cursor]
	c.mu.Unlock()

	c.renderer.SetVotingEnabled(false)
	release := func() {
		c.mu.Lock()
		c.voting = false
		c.mu.Unlock()
		c.renderer.SetVotingEnabled(true)
	}

	err := c.service.CreateVote(ctx, Vote{
		RoomID:        c.roomID,
		ParticipantID: c.participantID,
		CandidateID:   candidate.ID,
		Choice:        choice,
	})
	if err != nil {
		logging.Log.Errorf("VOTE: failed to record %s for %s in room %s: %v", choice, candidate.ID, c.roomID, err)
		c.renderer.Notify(voteFailureMessage(err))
		release()
		return fmt.Errorf("record vote: %w", err)
	}

	next := min(cursor+1, len(c.candidates))
	c.mu.Lock()
	if next > c.cursor {
		c.cursor = next
	}
	c.mu.Unlock()

	logging.Log.Debugf("VOTE: %s recorded for %s, cursor %d -> %d", choice, candidate.ID, cursor, next)
	finished := c.show(next)
	release()
	// Mark done only after the controls are back.
	if finished {
		c.markDone(ctx)
	}
	return nil
}
