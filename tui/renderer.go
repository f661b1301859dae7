package tui

import (
	"github.com/alex-pricope/roomvote/api/models"
	"github.com/alex-pricope/roomvote/room"
	tea "github.com/charmbracelet/bubbletea"
)

type candidateMsg struct{ view room.CandidateView }

type completeMsg struct{ view room.CompleteView }

type votingEnabledMsg struct{ enabled bool }

type rosterMsg struct{ participants []room.Participant }

type notifyMsg struct{ message string }

type sessionClosedMsg struct{}

type voteDoneMsg struct{ err error }

type finalizeDoneMsg struct{ err error }

type pollStoppedMsg struct{ err error }

type resultsMsg struct {
	view *models.RoomView
	err  error
}

// Renderer turns controller callbacks into bubbletea messages. Attach must be
// called with the program before the controller is started.
type Renderer struct {
	send func(tea.Msg)
}

var _ room.Renderer = (*Renderer)(nil)

func (r *Renderer) Attach(p *tea.Program) {
	r.send = p.Send
}

func (r *Renderer) post(msg tea.Msg) {
	if r.send != nil {
		r.send(msg)
	}
}

func (r *Renderer) ShowCandidate(view room.CandidateView) { r.post(candidateMsg{view: view}) }

func (r *Renderer) ShowComplete(view room.CompleteView) { r.post(completeMsg{view: view}) }

func (r *Renderer) SetVotingEnabled(enabled bool) { r.post(votingEnabledMsg{enabled: enabled}) }

func (r *Renderer) ShowRoster(participants []room.Participant) {
	r.post(rosterMsg{participants: append([]room.Participant(nil), participants...)})
}

func (r *Renderer) Notify(message string) { r.post(notifyMsg{message: message}) }

func (r *Renderer) SessionClosed() { r.post(sessionClosedMsg{}) }
