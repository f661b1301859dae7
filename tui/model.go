package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/alex-pricope/roomvote/api/models"
	"github.com/alex-pricope/roomvote/logging"
	"github.com/alex-pricope/roomvote/room"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Session is the part of the room controller the terminal drives.
type Session interface {
	Start(ctx context.Context)
	Run(ctx context.Context) error
	SubmitVote(ctx context.Context, choice room.Choice) error
	Finalize(ctx context.Context) error
}

// ResultsLoader reloads the room once voting has ended.
type ResultsLoader func(ctx context.Context) (*models.RoomView, error)

type Options struct {
	RoomID      string
	Location    string
	ShareURL    string
	Session     Session
	LoadResults ResultsLoader
}

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	opts Options
	keys keyMap
	help help.Model

	candidate     *room.CandidateView
	complete      *room.CompleteView
	votingEnabled bool
	roster        []room.Participant
	notice        string
	noticeIsError bool
	closed        bool
	results       *models.RoomResults
	resultsErr    error
	quitting      bool
}

func NewModel(parent context.Context, opts Options) Model {
	ctx, cancel := context.WithCancel(parent)
	return Model{
		ctx:    ctx,
		cancel: cancel,
		opts:   opts,
		keys:   defaultKeyMap(),
		help:   help.New(),

		votingEnabled: true,
	}
}

func (m Model) Init() tea.Cmd {
	ctx, session := m.ctx, m.opts.Session
	start := func() tea.Msg {
		session.Start(ctx)
		return nil
	}
	poll := func() tea.Msg {
		return pollStoppedMsg{err: session.Run(ctx)}
	}
	return tea.Batch(start, poll)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case candidateMsg:
		view := msg.view
		if view.Image != nil && !loadable(view.Image.URL) && view.Image.LoadFailed() {
			logging.Log.Debugf("TUI: image for %s not loadable, using fallback", view.ID)
		}
		m.candidate = &view
		m.complete = nil
		m.clearNotice()

	case completeMsg:
		view := msg.view
		m.complete = &view
		m.candidate = nil

	case votingEnabledMsg:
		m.votingEnabled = msg.enabled && !m.closed

	case rosterMsg:
		m.roster = msg.participants

	case notifyMsg:
		m.notice = msg.message
		m.noticeIsError = true

	case sessionClosedMsg:
		if m.closed {
			return m, nil
		}
		m.closed = true
		m.votingEnabled = false
		return m, m.loadResults()

	case resultsMsg:
		if msg.err != nil {
			m.resultsErr = msg.err
			return m, nil
		}
		if msg.view != nil {
			m.results = msg.view.Results
		}

	case pollStoppedMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			logging.Log.Errorf("TUI: poller stopped: %v", msg.err)
		}

	case voteDoneMsg:
		return m.voteDone(msg.err), nil

	case finalizeDoneMsg:
		// Failures already reached the screen through Notify.
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Share):
		m.notice = "Share this link: " + m.opts.ShareURL
		m.noticeIsError = false

	case key.Matches(msg, m.keys.Yum):
		return m.vote(room.ChoiceApprove)
	case key.Matches(msg, m.keys.Meh):
		return m.vote(room.ChoiceNeutral)
	case key.Matches(msg, m.keys.Ew):
		return m.vote(room.ChoiceReject)

	case key.Matches(msg, m.keys.End):
		if m.closed || m.complete == nil || !m.complete.ShowEndSession {
			return m, nil
		}
		ctx, session := m.ctx, m.opts.Session
		return m, func() tea.Msg {
			return finalizeDoneMsg{err: session.Finalize(ctx)}
		}
	}
	return m, nil
}

func (m Model) vote(choice room.Choice) (tea.Model, tea.Cmd) {
	if !m.votingEnabled || m.candidate == nil || m.closed {
		return m, nil
	}
	// Controls stay off until the controller re-enables them.
	m.votingEnabled = false
	ctx, session := m.ctx, m.opts.Session
	return m, func() tea.Msg {
		return voteDoneMsg{err: session.SubmitVote(ctx, choice)}
	}
}

// voteDone restores the controls when the controller refused the vote
// before sending it, since it never re-enables them in that case.
func (m Model) voteDone(err error) Model {
	switch {
	case errors.Is(err, room.ErrNoParticipant):
		m.votingEnabled = !m.closed
		m.notice = fmt.Sprintf("Join the room to vote: roomvote join %s --name <you>", m.opts.RoomID)
		m.noticeIsError = true
	case errors.Is(err, room.ErrNoCandidate), errors.Is(err, room.ErrInvalidChoice):
		m.votingEnabled = !m.closed
	}
	return m
}

func (m Model) loadResults() tea.Cmd {
	if m.opts.LoadResults == nil {
		return nil
	}
	ctx, load := m.ctx, m.opts.LoadResults
	return func() tea.Msg {
		view, err := load(ctx)
		return resultsMsg{view: view, err: err}
	}
}

func (m *Model) clearNotice() {
	m.notice = ""
	m.noticeIsError = false
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := "Room " + m.opts.RoomID
	if m.opts.Location != "" {
		title += " · " + m.opts.Location
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.closed:
		b.WriteString(m.resultsView())
	case m.complete != nil:
		b.WriteString(m.completeView())
	case m.candidate != nil:
		b.WriteString(m.candidateView())
	default:
		b.WriteString(mutedStyle.Render("Loading restaurants..."))
	}
	b.WriteString("\n\n")

	b.WriteString(m.rosterView())
	b.WriteString("\n\n")

	if m.notice != "" {
		if m.noticeIsError {
			b.WriteString(errorStyle.Render(m.notice))
		} else {
			b.WriteString(infoStyle.Render(m.notice))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) candidateView() string {
	c := m.candidate
	lines := []string{
		mutedStyle.Render(fmt.Sprintf("Restaurant %d of %d", c.Index+1, c.Total)),
		nameStyle.Render(c.Name),
	}
	if c.Image != nil {
		lines = append(lines, mutedStyle.Render(c.Image.Alt), mutedStyle.Render(c.Image.URL))
	}
	lines = append(lines, c.Rating, "Price: "+c.Price)
	card := cardStyle.Render(strings.Join(lines, "\n"))

	style := buttonStyle
	if !m.votingEnabled {
		style = buttonDisabledStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		style.Render("Yum (y)"),
		style.Render("Meh (m)"),
		style.Render("Ew (n)"),
	)
	return card + "\n" + buttons
}

func (m Model) completeView() string {
	out := doneStyle.Render("You have voted on every restaurant.")
	if m.complete.ShowEndSession {
		out += "\n\n" + endButtonStyle.Render("End voting (x)")
	} else {
		out += "\n" + mutedStyle.Render("Waiting for the host to end voting.")
	}
	return out
}

func (m Model) resultsView() string {
	if m.resultsErr != nil {
		return doneStyle.Render("Voting has ended.") + "\n" +
			errorStyle.Render("Could not load results: "+m.resultsErr.Error())
	}
	if m.results == nil {
		return doneStyle.Render("Voting has ended.") + "\n" + mutedStyle.Render("Loading results...")
	}

	var b strings.Builder
	b.WriteString(doneStyle.Render("Voting has ended."))
	b.WriteString("\n")
	if w := m.results.WinningRestaurant; w != nil {
		b.WriteString("Winner: " + nameStyle.Render(room.DisplayName(w.Name)))
	} else {
		b.WriteString(mutedStyle.Render("No winner."))
	}
	for _, voter := range m.results.Voters() {
		var yum, meh, ew int
		for _, choice := range m.results.UserVotes[voter] {
			switch room.Choice(choice) {
			case room.ChoiceApprove:
				yum++
			case room.ChoiceNeutral:
				meh++
			case room.ChoiceReject:
				ew++
			}
		}
		b.WriteString(fmt.Sprintf("\n%s: %d yum, %d meh, %d ew", voter, yum, meh, ew))
	}
	return b.String()
}

func (m Model) rosterView() string {
	avatars := []string{avatarFor("You", m.complete != nil || m.closed)}
	for _, p := range m.roster {
		avatars = append(avatars, avatarFor(room.DisplayName(p.Name), p.Done))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, avatars...)
}

func avatarFor(name string, done bool) string {
	if done {
		return avatarDoneStyle.Render(name + " ✓")
	}
	return avatarStyle.Render(name)
}

// loadable reports whether an image reference can be fetched at all.
func loadable(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
