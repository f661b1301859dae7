package room

import (
	"context"
	"fmt"

	"github.com/alex-pricope/roomvote/logging"
)

// Finalize asks the service to close the room. Only the owner may call it. On
// failure the room stays active and the user is told to retry.
func (c *Controller) Finalize(ctx context.Context) error {
	if !c.IsOwner() {
		return ErrNotOwner
	}
	if c.Status() == StatusInactive {
		return ErrSessionClosed
	}

	if err := c.service.FinalizeRoom(ctx, c.roomID); err != nil {
		logging.Log.Errorf("ROOM: finalize failed for room %s: %v", c.roomID, err)
		c.renderer.Notify(finalizeFailureMessage(err))
		return fmt.Errorf("finalize room: %w", err)
	}

	c.close()
	return nil
}
