// Package testing provides an in-memory session service for exercising the
// client end to end without a real backend.
package testing

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/alex-pricope/roomvote/api/models"
	"github.com/alex-pricope/roomvote/api/transport"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Room struct {
	ID          string
	HostUserID  string
	Status      string
	Restaurants []models.Restaurant
	Winner      string
}

type guest struct {
	models.GuestUser
	RoomID string
}

// SessionService mimics the session service's endpoints over gin.
type SessionService struct {
	Engine *gin.Engine

	mu       sync.Mutex
	token    string
	rooms    map[string]*Room
	guests   map[string]*guest
	order    []string
	votes    map[string]map[string]int
	failures map[string]int
	calls    map[string]int
}

func NewSessionService(ownerToken string) *SessionService {
	s := &SessionService{
		token:    ownerToken,
		rooms:    make(map[string]*Room),
		guests:   make(map[string]*guest),
		votes:    make(map[string]map[string]int),
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}

	s.Engine = transport.NewRouter(gin.TestMode)
	s.Engine.Use(s.countAndFail())
	s.Engine.GET(models.PathRoomStatus, s.getRoomStatus)
	s.Engine.GET(models.PathRoomUsers, s.getRoomUsers)
	s.Engine.POST(models.PathCreateVote, s.createVote)
	s.Engine.POST(models.PathSetGuestDone, s.setGuestDone)
	s.Engine.POST(models.PathFinalizeRoom, transport.AuthMiddleware(ownerToken), s.finalizeRoom)
	s.Engine.POST(models.PathAddGuestUser, s.addGuestUser)
	s.Engine.GET(models.PathRoom+":id", s.getRoom)

	return s
}

// Serve starts an HTTP server for the service; close it when done.
func (s *SessionService) Serve() *httptest.Server {
	return httptest.NewServer(s.Engine)
}

func (s *SessionService) AddRoom(r *Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Status == "" {
		r.Status = models.RoomStatusActive
	}
	s.rooms[r.ID] = r
}

// AddGuest registers a guest directly and returns its id.
func (s *SessionService) AddGuest(roomID, username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addGuestLocked(roomID, username)
}

func (s *SessionService) addGuestLocked(roomID, username string) string {
	id := uuid.NewString()
	s.guests[id] = &guest{GuestUser: models.GuestUser{ID: models.ID(id), Username: username}, RoomID: roomID}
	s.order = append(s.order, id)
	return id
}

// FailNext makes the next n requests to path answer with a 500.
func (s *SessionService) FailNext(path string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = n
}

func (s *SessionService) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func (s *SessionService) Votes(guestID string) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.votes[guestID]))
	for k, v := range s.votes[guestID] {
		out[k] = v
	}
	return out
}

func (s *SessionService) GuestDone(guestID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guests[guestID]
	return ok && g.Done
}

func (s *SessionService) RoomStatus(roomID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[roomID]; ok {
		return r.Status
	}
	return ""
}

// CloseRoom marks a room inactive without tallying, as if closed elsewhere.
func (s *SessionService) CloseRoom(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[roomID]; ok {
		r.Status = models.RoomStatusInactive
	}
}

func (s *SessionService) countAndFail() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		s.mu.Lock()
		s.calls[path]++
		fail := s.failures[path] > 0
		if fail {
			s.failures[path]--
		}
		s.mu.Unlock()

		if fail {
			c.AbortWithStatusJSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "injected failure"})
			return
		}
		c.Next()
	}
}
