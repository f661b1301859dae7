package room

import (
	"context"

	"github.com/alex-pricope/roomvote/logging"
)

// PollOnce runs one status/roster cycle. The status check always comes
// first; an inactive room closes the controller and skips the roster. Errors
// are logged and the affected step is skipped until the next cycle.
func (c *Controller) PollOnce(ctx context.Context) {
	if c.Status() == StatusInactive {
		return
	}

	status, err := c.service.RoomStatus(ctx, c.roomID)
	switch {
	case err != nil:
		logging.Log.Warnf("POLL: status check for room %s failed: %v", c.roomID, err)
	case status == StatusInactive:
		c.close()
		return
	}

	users, err := c.service.RoomUsers(ctx, c.roomID)
	if err != nil {
		logging.Log.Warnf("POLL: roster check for room %s failed: %v", c.roomID, err)
		return
	}
	c.renderer.ShowRoster(c.othersIn(users))
}

// Run polls immediately and then on every tick until ctx is cancelled or the
// room closes.
func (c *Controller) Run(ctx context.Context) error {
	c.PollOnce(ctx)
	if c.Status() == StatusInactive {
		return nil
	}

	ticker := c.newTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Log.Debugf("POLL: stopped for room %s", c.roomID)
			return ctx.Err()
		case <-ticker.C():
			c.PollOnce(ctx)
			if c.Status() == StatusInactive {
				return nil
			}
		}
	}
}

func (c *Controller) othersIn(users []Participant) []Participant {
	others := make([]Participant, 0, len(users))
	for _, u := range users {
		if c.participantID != "" && u.ID == c.participantID {
			continue
		}
		others = append(others, u)
	}
	return others
}
