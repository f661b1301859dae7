package testing

import (
	"net/http"

	"github.com/alex-pricope/roomvote/api/models"
	"github.com/gin-gonic/gin"
)

const guestCookieMaxAge = 7 * 24 * 60 * 60

func (s *SessionService) getRoomStatus(g *gin.Context) {
	roomID := g.Query("RoomID")
	if roomID == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Room ID is required"})
		return
	}

	s.mu.Lock()
	r, ok := s.rooms[roomID]
	var status string
	if ok {
		status = r.Status
	}
	s.mu.Unlock()

	if !ok {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "Room not found"})
		return
	}
	g.JSON(http.StatusOK, &models.RoomStatusResponse{RoomStatus: status})
}

func (s *SessionService) getRoomUsers(g *gin.Context) {
	roomID := g.Query("RoomID")
	if roomID == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Room ID is required"})
		return
	}

	s.mu.Lock()
	users := make([]models.GuestUser, 0)
	for _, id := range s.order {
		if gu := s.guests[id]; gu.RoomID == roomID {
			users = append(users, gu.GuestUser)
		}
	}
	s.mu.Unlock()

	g.JSON(http.StatusOK, users)
}

func (s *SessionService) createVote(g *gin.Context) {
	var req models.CreateVoteRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Missing required data."})
		return
	}
	if req.RoomID == "" || req.GuestUserID == "" || req.RestaurantID == "" || req.VoteChoice == nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Missing required data."})
		return
	}
	if c := *req.VoteChoice; c < -1 || c > 1 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Invalid vote choice."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[req.RoomID]
	if !ok || r.Status != models.RoomStatusActive {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Room not found or not active."})
		return
	}
	gu, ok := s.guests[req.GuestUserID]
	if !ok || gu.RoomID != req.RoomID {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Guest not found or not in this room."})
		return
	}
	if !hasRestaurant(r, req.RestaurantID) {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Restaurant not in this room."})
		return
	}

	if s.votes[req.GuestUserID] == nil {
		s.votes[req.GuestUserID] = make(map[string]int)
	}
	s.votes[req.GuestUserID][req.RestaurantID] = *req.VoteChoice

	g.JSON(http.StatusCreated, &models.MessageResponse{Message: "Vote recorded."})
}

func (s *SessionService) setGuestDone(g *gin.Context) {
	var req models.SetGuestDoneRequest
	if err := g.ShouldBindJSON(&req); err != nil || req.GuestUserID == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "GuestUserID is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	gu, ok := s.guests[req.GuestUserID]
	if !ok {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "Guest user not found"})
		return
	}
	gu.Done = true
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "Guest user status updated successfully."})
}

func (s *SessionService) finalizeRoom(g *gin.Context) {
	var req models.FinalizeRoomRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Message: "Unauthorized or room not found."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[req.RoomID]
	if !ok {
		g.JSON(http.StatusForbidden, &models.ErrorResponse{Message: "Unauthorized or room not found."})
		return
	}

	totals := make(map[string]int)
	for _, byRestaurant := range s.votes {
		for restaurantID, choice := range byRestaurant {
			if hasRestaurant(r, restaurantID) {
				totals[restaurantID] += choice
			}
		}
	}

	r.Winner = ""
	best := 0
	for _, rest := range r.Restaurants {
		total, voted := totals[rest.ID]
		if voted && (r.Winner == "" || total > best) {
			r.Winner, best = rest.ID, total
		}
	}
	r.Status = models.RoomStatusInactive

	g.JSON(http.StatusOK, &models.MessageResponse{Message: "Room finalized."})
}

func (s *SessionService) addGuestUser(g *gin.Context) {
	username := g.PostForm("Username")
	roomID := g.PostForm("RoomID")
	if username == "" || roomID == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "Username and RoomID are required"})
		return
	}

	s.mu.Lock()
	id := s.addGuestLocked(roomID, username)
	s.mu.Unlock()

	g.SetCookie(models.GuestCookieName(roomID), id, guestCookieMaxAge, "/", "", false, true)
	g.Redirect(http.StatusFound, models.PathRoom+roomID)
}

func (s *SessionService) getRoom(g *gin.Context) {
	roomID := g.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "Room not found"})
		return
	}

	view := &models.RoomView{
		RoomID:      r.ID,
		Status:      r.Status,
		HostUserID:  models.ID(r.HostUserID),
		Restaurants: make([]models.Restaurant, 0, len(r.Restaurants)),
	}

	if r.Status == models.RoomStatusInactive {
		view.Results = s.resultsLocked(r)
		g.JSON(http.StatusOK, view)
		return
	}

	guestID, _ := g.Cookie(models.GuestCookieName(roomID))
	gu, ok := s.guests[guestID]
	if guestID == "" || !ok || gu.RoomID != roomID {
		view.Restaurants = append(view.Restaurants, r.Restaurants...)
		g.JSON(http.StatusOK, view)
		return
	}

	current := gu.GuestUser
	view.CurrentGuestUser = &current
	for _, rest := range r.Restaurants {
		if _, voted := s.votes[guestID][rest.ID]; !voted {
			view.Restaurants = append(view.Restaurants, rest)
		}
	}
	g.JSON(http.StatusOK, view)
}

func (s *SessionService) resultsLocked(r *Room) *models.RoomResults {
	names := make(map[string]string, len(r.Restaurants))
	results := &models.RoomResults{UserVotes: make(map[string]map[string]int)}
	for i, rest := range r.Restaurants {
		names[rest.ID] = rest.Name
		results.RestaurantNames = append(results.RestaurantNames, rest.Name)
		if rest.ID == r.Winner {
			results.WinningRestaurant = &r.Restaurants[i]
		}
	}

	for guestID, byRestaurant := range s.votes {
		gu, ok := s.guests[guestID]
		if !ok || gu.RoomID != r.ID {
			continue
		}
		if results.UserVotes[gu.Username] == nil {
			results.UserVotes[gu.Username] = make(map[string]int)
		}
		for restaurantID, choice := range byRestaurant {
			name, ok := names[restaurantID]
			if !ok {
				name = "Unknown"
			}
			results.UserVotes[gu.Username][name] = choice
		}
	}
	return results
}

func hasRestaurant(r *Room, id string) bool {
	for _, rest := range r.Restaurants {
		if rest.ID == id {
			return true
		}
	}
	return false
}
