package room

import (
	"fmt"
	"sync"
	"time"

	"github.com/alex-pricope/roomvote/logging"
)

const DefaultPollInterval = 5 * time.Second

// Options are the inputs the host supplies for one room view.
type Options struct {
	RoomID string
	// ParticipantID identifies the viewer's guest entry in the room. Empty
	// means the viewer can watch the room but cannot vote.
	ParticipantID string
	// AccountID is the viewer's authenticated account, if any. The owner check
	// uses it, falling back to ParticipantID when it is empty.
	AccountID string
	OwnerID   string
	// Status is the room status the host loaded the room with. Empty means
	// active.
	Status        Status
	Candidates    []Candidate
	InitialCursor int
	PollInterval  time.Duration
	FallbackImage string
	NewTicker     func(time.Duration) Ticker
}

// Controller walks one participant through a room's candidates. All state is
// guarded by mu; renderer and service calls are made without holding it.
type Controller struct {
	roomID        string
	participantID string
	viewerID      string
	ownerID       string
	candidates    []Candidate
	interval      time.Duration
	fallbackImage string
	newTicker     func(time.Duration) Ticker

	service  Service
	renderer Renderer

	mu       sync.Mutex
	cursor   int
	status   Status
	voting   bool
	doneSent bool
}

func NewController(opts Options, service Service, renderer Renderer) (*Controller, error) {
	if opts.RoomID == "" {
		logging.Log.Error("ROOM: missing room id, controller not started")
		return nil, ErrMissingRoom
	}
	if opts.Candidates == nil {
		logging.Log.Errorf("ROOM: missing candidates for room %s, controller not started", opts.RoomID)
		return nil, ErrMissingCandidates
	}
	if service == nil || renderer == nil {
		logging.Log.Errorf("ROOM: missing collaborators for room %s, controller not started", opts.RoomID)
		return nil, ErrMissingCollaborator
	}

	c := &Controller{
		roomID:        opts.RoomID,
		participantID: opts.ParticipantID,
		viewerID:      opts.AccountID,
		ownerID:       opts.OwnerID,
		candidates:    append([]Candidate(nil), opts.Candidates...),
		interval:      opts.PollInterval,
		fallbackImage: opts.FallbackImage,
		newTicker:     opts.NewTicker,
		service:       service,
		renderer:      renderer,
		status:        StatusActive,
	}
	if opts.Status == StatusInactive {
		c.status = StatusInactive
	}
	if c.viewerID == "" {
		c.viewerID = c.participantID
	}
	if c.interval <= 0 {
		c.interval = DefaultPollInterval
	}
	if c.newTicker == nil {
		c.newTicker = NewTimeTicker
	}
	c.cursor = max(0, min(opts.InitialCursor, len(c.candidates)))

	if c.participantID == "" {
		logging.Log.Warnf("ROOM: no participant identity for room %s, voting is disabled", c.roomID)
	}
	if c.ownerID == "" {
		logging.Log.Warnf("ROOM: no owner identity for room %s, nobody can end the session", c.roomID)
	}

	return c, nil
}

func (c *Controller) RoomID() string {
	return c.roomID
}

func (c *Controller) IsOwner() bool {
	return c.ownerID != "" && c.viewerID == c.ownerID
}

func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) Complete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor >= len(c.candidates)
}

func (c *Controller) String() string {
	return fmt.Sprintf("room %s (%d candidates)", c.roomID, len(c.candidates))
}

// close performs the active -> inactive transition. Only the first caller
// notifies the renderer.
func (c *Controller) close() bool {
	c.mu.Lock()
	if c.status == StatusInactive {
		c.mu.Unlock()
		return false
	}
	c.status = StatusInactive
	c.mu.Unlock()

	logging.Log.Infof("ROOM: %s is closed", c.roomID)
	c.renderer.SessionClosed()
	return true
}
