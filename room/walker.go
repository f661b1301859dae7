package room

import (
	"context"

	"github.com/alex-pricope/roomvote/logging"
)

// Start draws the candidate under the initial cursor, or the completion state
// when there is nothing left to vote on. A room that was already closed goes
// straight to the closed state.
func (c *Controller) Start(ctx context.Context) {
	if c.Status() == StatusInactive {
		logging.Log.Infof("ROOM: %s was already closed", c.roomID)
		c.renderer.SessionClosed()
		return
	}
	c.render(ctx, c.Cursor())
}

func (c *Controller) render(ctx context.Context, cursor int) {
	if c.show(cursor) {
		c.markDone(ctx)
	}
}

// show draws cursor and reports whether this is the first time the
// completion state was reached.
func (c *Controller) show(cursor int) bool {
	if cursor < len(c.candidates) {
		c.renderer.ShowCandidate(c.candidateView(cursor))
		return false
	}

	c.mu.Lock()
	first := !c.doneSent
	c.doneSent = true
	c.mu.Unlock()

	c.renderer.ShowComplete(CompleteView{ShowEndSession: c.IsOwner()})
	return first
}

func (c *Controller) candidateView(cursor int) CandidateView {
	r := c.candidates[cursor]
	return CandidateView{
		Index:  cursor,
		Total:  len(c.candidates),
		ID:     r.ID,
		Name:   DisplayName(r.Name),
		Image:  NewImage(r.ImageURL, r.Name, c.fallbackImage),
		Rating: FormatRating(r.Rating, r.ReviewCount),
		Price:  FormatPrice(r.PriceLevel),
	}
}

// markDone tells the service this participant finished. Failures are only
// logged; the completion state is already on screen.
func (c *Controller) markDone(ctx context.Context) {
	if c.participantID == "" {
		logging.Log.Warnf("ROOM: cannot mark done in room %s without a participant identity", c.roomID)
		return
	}
	if err := c.service.SetGuestDone(ctx, c.participantID); err != nil {
		logging.Log.Errorf("ROOM: set guest done failed for %s: %v", c.participantID, err)
		return
	}
	logging.Log.Infof("ROOM: participant %s finished room %s", c.participantID, c.roomID)
}
