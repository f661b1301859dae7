package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/alex-pricope/roomvote/api/models"
	"github.com/alex-pricope/roomvote/api/transport"
	"github.com/alex-pricope/roomvote/config"
	"github.com/alex-pricope/roomvote/logging"
	"github.com/alex-pricope/roomvote/room"
)

var ErrMalformedResponse = errors.New("malformed response from session service")

// ResponseError is a request the service answered with a non-success status.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("session service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("session service returned %d: %s", e.StatusCode, e.Message)
}

// UserMessage is the service's own explanation, safe to show to the user.
func (e *ResponseError) UserMessage() string {
	return e.Message
}

// Client talks to the session service. It implements room.Service.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

var _ room.Service = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	if httpClient == nil {
		httpClient = transport.NewHTTPClient(config.DefaultTimeout, "")
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

func NewClientFromConfig(conf *config.Config) (*Client, error) {
	return NewClient(conf.BaseURL, transport.NewHTTPClient(conf.Timeout, conf.AuthToken))
}

// RoomURL is the link participants open to join the room.
func (c *Client) RoomURL(roomID string) string {
	return c.endpoint(models.PathRoom+url.PathEscape(roomID), nil)
}

func (c *Client) RoomStatus(ctx context.Context, roomID string) (room.Status, error) {
	var res models.RoomStatusResponse
	if err := c.get(ctx, models.PathRoomStatus, url.Values{"RoomID": {roomID}}, &res); err != nil {
		return "", err
	}

	status, err := models.TransformRoomStatus(res.RoomStatus)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return status, nil
}

func (c *Client) RoomUsers(ctx context.Context, roomID string) ([]room.Participant, error) {
	var users []models.GuestUser
	if err := c.get(ctx, models.PathRoomUsers, url.Values{"RoomID": {roomID}}, &users); err != nil {
		return nil, err
	}
	return models.TransformGuestUsersToParticipants(users), nil
}

func (c *Client) CreateVote(ctx context.Context, vote room.Vote) error {
	choice := int(vote.Choice)
	req := models.CreateVoteRequest{
		RoomID:       vote.RoomID,
		GuestUserID:  vote.ParticipantID,
		RestaurantID: vote.CandidateID,
		VoteChoice:   &choice,
	}
	return c.post(ctx, models.PathCreateVote, req, nil)
}

func (c *Client) SetGuestDone(ctx context.Context, participantID string) error {
	return c.post(ctx, models.PathSetGuestDone, models.SetGuestDoneRequest{GuestUserID: participantID}, nil)
}

func (c *Client) FinalizeRoom(ctx context.Context, roomID string) error {
	return c.post(ctx, models.PathFinalizeRoom, models.FinalizeRoomRequest{RoomID: roomID}, nil)
}

// Join registers username as a guest of the room and returns the guest id
// the service put in the room's guest cookie.
func (c *Client) Join(ctx context.Context, roomID, username string) (string, error) {
	form := url.Values{"Username": {username}, "RoomID": {roomID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(models.PathAddGuestUser, nil), strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.http.Do(req)
	if err != nil {
		logging.Log.Errorf("API: join room %s failed: %v", roomID, err)
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return "", responseError(res)
	}

	name := models.GuestCookieName(roomID)
	for _, cookie := range res.Cookies() {
		if cookie.Name == name && cookie.Value != "" {
			logging.Log.Infof("API: joined room %s as guest %s", roomID, cookie.Value)
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("%w: no %s cookie in join response", ErrMalformedResponse, name)
}

// GetRoom loads the room view for guestID; an empty guestID loads it
// anonymously.
func (c *Client) GetRoom(ctx context.Context, roomID, guestID string) (*models.RoomView, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RoomURL(roomID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if guestID != "" {
		req.AddCookie(&http.Cookie{Name: models.GuestCookieName(roomID), Value: guestID})
	}

	var view models.RoomView
	if err := c.do(req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return responseError(res)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, req.Method, req.URL.Path, err)
	}
	return nil
}

func responseError(res *http.Response) error {
	e := &ResponseError{StatusCode: res.StatusCode}

	var body models.ErrorResponse
	data, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if json.Unmarshal(data, &body) == nil {
		e.Message = body.Error
		if e.Message == "" {
			e.Message = body.Message
		}
	}
	return e
}
