// Package tui is the terminal reader: a thin bubbletea front end over the
// session, feed and engagement components.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/newslens-app/newslens/internal/engagement"
	"github.com/newslens-app/newslens/internal/feed"
	"github.com/newslens-app/newslens/internal/gateway"
	"github.com/newslens-app/newslens/internal/models"
	"github.com/newslens-app/newslens/internal/session"
	"github.com/newslens-app/newslens/internal/survey"
)

type screen int

const (
	screenLogin screen = iota
	screenSurvey
	screenFeed
	screenSaved
	screenDetail
)

// SessionChangedMsg is sent from the session watcher.
type SessionChangedMsg struct {
	Snap session.Snapshot
}

// FeedChangedMsg is sent from the feed change listener.
type FeedChangedMsg struct{}

type authResultMsg struct {
	err error
}

type opResultMsg struct {
	action string
	err    error
}

type surveyDoneMsg struct {
	leaning models.PoliticalLeaning
	err     error
}

type savedLoadedMsg struct {
	articles []models.Article
	err      error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
)

type Model struct {
	gw   gateway.Gateway
	sess *session.Session
	feed *feed.Feed
	ops  *engagement.Operations

	screen      screen
	inputs      []textinput.Model
	focus       int
	registering bool
	status      string
	errMsg      string

	cursor      int
	topicIdx    int // -1 = all topics
	lengthIdx   int // -1 = all lengths
	surveyIdx   int
	answers     []models.PoliticalLeaning
	detail      *models.Article
	detailFrom  screen
	saved       []models.Article
	savedCursor int

	width  int
	height int
}

func New(gw gateway.Gateway, sess *session.Session, f *feed.Feed, ops *engagement.Operations) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	name := textinput.New()
	name.Placeholder = "display name (register only)"

	return Model{
		gw:        gw,
		sess:      sess,
		feed:      f,
		ops:       ops,
		screen:    screenLogin,
		inputs:    []textinput.Model{email, password, name},
		topicIdx:  -1,
		lengthIdx: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SessionChangedMsg:
		return m.onSession(msg.Snap)

	case FeedChangedMsg:
		if m.cursor >= len(m.feed.Articles()) {
			m.cursor = 0
		}
		return m, nil

	case authResultMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.errMsg = ""
		}
		return m, nil

	case opResultMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
		} else {
			m.errMsg = ""
			m.status = msg.action + " ok"
		}
		return m, nil

	case surveyDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = "survey saved: " + string(msg.leaning)
		m.screen = screenFeed
		return m, m.refreshCmd()

	case savedLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.saved = msg.articles
		m.savedCursor = 0
		m.screen = screenSaved
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenLogin:
			return m.updateLogin(msg)
		case screenSurvey:
			return m.updateSurvey(msg)
		case screenSaved:
			return m.updateSaved(msg)
		case screenDetail:
			return m.updateDetail(msg)
		default:
			return m.updateFeed(msg)
		}
	}

	return m, nil
}

func (m Model) onSession(snap session.Snapshot) (tea.Model, tea.Cmd) {
	switch snap.State {
	case session.StateAuthenticated:
		if m.screen == screenLogin {
			if snap.Profile != nil && !snap.Profile.SurveyCompleted {
				m.screen = screenSurvey
				m.surveyIdx = 0
				m.answers = nil
				return m, nil
			}
			m.screen = screenFeed
			return m, m.refreshCmd()
		}
	case session.StateAnonymous:
		m.screen = screenLogin
		m.cursor = 0
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+r":
		m.registering = !m.registering
		return m, nil
	case "tab", "shift+tab", "up", "down":
		limit := 2
		if m.registering {
			limit = 3
		}
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.focus--
		} else {
			m.focus++
		}
		if m.focus < 0 {
			m.focus = limit - 1
		}
		if m.focus >= limit {
			m.focus = 0
		}
		for i := range m.inputs {
			if i == m.focus {
				m.inputs[i].Focus()
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, nil
	case "enter":
		email := m.inputs[0].Value()
		password := m.inputs[1].Value()
		name := m.inputs[2].Value()
		registering := m.registering
		return m, func() tea.Msg {
			var err error
			if registering {
				_, err = m.gw.Register(email, password, name)
			} else {
				_, err = m.gw.Login(email, password)
			}
			return authResultMsg{err: err}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateSurvey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		// Skip: leaning stays unspecified, survey marked completed.
		return m, m.surveyCmd(nil)
	case "1", "2", "3", "4", "5":
		idx := int(msg.String()[0] - '1')
		q := survey.Questions[m.surveyIdx]
		if idx >= len(q.Options) {
			return m, nil
		}
		m.answers = append(m.answers, q.Options[idx].Leaning)
		if m.surveyIdx < len(survey.Questions)-1 {
			m.surveyIdx++
			return m, nil
		}
		return m, m.surveyCmd(m.answers)
	}
	return m, nil
}

func (m Model) surveyCmd(answers []models.PoliticalLeaning) tea.Cmd {
	return func() tea.Msg {
		leaning, err := m.sess.CompleteSurvey(answers)
		return surveyDoneMsg{leaning: leaning, err: err}
	}
}

func (m Model) updateFeed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	articles := m.feed.Articles()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(articles)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.cursor < len(articles) {
			a := articles[m.cursor]
			m.detail = &a
			m.detailFrom = screenFeed
			m.screen = screenDetail
		}
		return m, nil
	case "r":
		return m, m.refreshCmd()
	case "t":
		m.topicIdx++
		if m.topicIdx >= len(models.Topics) {
			m.topicIdx = -1
		}
		m.feed.SetTopicFilters(m.topicFilter())
		return m, nil
	case "w":
		m.lengthIdx++
		if m.lengthIdx >= len(models.WordCounts) {
			m.lengthIdx = -1
		}
		m.feed.SetWordCountFilters(m.lengthFilter())
		return m, nil
	case "l":
		if m.cursor < len(articles) {
			return m, m.toggleLikeCmd(articles[m.cursor].ID.String())
		}
		return m, nil
	case "s":
		if m.cursor < len(articles) {
			return m, m.toggleSaveCmd(articles[m.cursor].ID.String())
		}
		return m, nil
	case "S":
		if m.cursor < len(articles) {
			id := articles[m.cursor].ID.String()
			return m, func() tea.Msg {
				return opResultMsg{action: "share", err: m.ops.Share(id)}
			}
		}
		return m, nil
	case "v":
		return m, func() tea.Msg {
			articles, err := m.ops.SavedArticles()
			return savedLoadedMsg{articles: articles, err: err}
		}
	case "ctrl+l":
		return m, func() tea.Msg {
			return opResultMsg{action: "logout", err: m.gw.Logout()}
		}
	}
	return m, nil
}

func (m Model) updateSaved(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.screen = screenFeed
	case "up", "k":
		if m.savedCursor > 0 {
			m.savedCursor--
		}
	case "down", "j":
		if m.savedCursor < len(m.saved)-1 {
			m.savedCursor++
		}
	case "enter":
		if m.savedCursor < len(m.saved) {
			a := m.saved[m.savedCursor]
			m.detail = &a
			m.detailFrom = screenSaved
			m.screen = screenDetail
		}
	case "s":
		if m.savedCursor < len(m.saved) {
			id := m.saved[m.savedCursor].ID.String()
			m.saved = append(m.saved[:m.savedCursor], m.saved[m.savedCursor+1:]...)
			if m.savedCursor >= len(m.saved) && m.savedCursor > 0 {
				m.savedCursor--
			}
			return m, func() tea.Msg {
				return opResultMsg{action: "unsave", err: m.ops.Unsave(id)}
			}
		}
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.detail = nil
		m.screen = m.detailFrom
	}
	return m, nil
}

func (m Model) topicFilter() []models.Topic {
	if m.topicIdx < 0 {
		return nil
	}
	return []models.Topic{models.Topics[m.topicIdx]}
}

func (m Model) lengthFilter() []models.WordCount {
	if m.lengthIdx < 0 {
		return nil
	}
	return []models.WordCount{models.WordCounts[m.lengthIdx]}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		m.feed.Refresh()
		return nil
	}
}

func (m Model) toggleLikeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if m.ops.IsLiked(id) {
			return opResultMsg{action: "unlike", err: m.ops.Unlike(id)}
		}
		return opResultMsg{action: "like", err: m.ops.Like(id)}
	}
}

func (m Model) toggleSaveCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if m.ops.IsSaved(id) {
			return opResultMsg{action: "unsave", err: m.ops.Unsave(id)}
		}
		return opResultMsg{action: "save", err: m.ops.Save(id)}
	}
}

func (m Model) View() string {
	switch m.screen {
	case screenLogin:
		return m.viewLogin()
	case screenSurvey:
		return m.viewSurvey()
	case screenSaved:
		return m.viewSaved()
	case screenDetail:
		return m.viewDetail()
	default:
		return m.viewFeed()
	}
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("NewsLens") + "\n\n")
	if m.registering {
		b.WriteString("Create an account (ctrl+r to switch to sign in)\n\n")
	} else {
		b.WriteString("Sign in (ctrl+r to switch to register)\n\n")
	}
	b.WriteString(m.inputs[0].View() + "\n")
	b.WriteString(m.inputs[1].View() + "\n")
	if m.registering {
		b.WriteString(m.inputs[2].View() + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("enter to submit, esc to quit") + "\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

func (m Model) viewSurvey() string {
	q := survey.Questions[m.surveyIdx]
	var b strings.Builder
	b.WriteString(titleStyle.Render("Political preference survey") + "\n\n")
	b.WriteString(fmt.Sprintf("Question %d of %d\n\n", m.surveyIdx+1, len(survey.Questions)))
	b.WriteString(q.Question + "\n\n")
	for i, opt := range q.Options {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, opt.Text))
	}
	b.WriteString("\n" + dimStyle.Render("press 1-5 to answer, esc to skip") + "\n")
	return b.String()
}

func (m Model) viewFeed() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("NewsLens — feed") + "\n\n")

	filters := "topics: all"
	if m.topicIdx >= 0 {
		filters = "topics: " + string(models.Topics[m.topicIdx])
	}
	if m.lengthIdx >= 0 {
		filters += fmt.Sprintf(" | length: %d", models.WordCounts[m.lengthIdx])
	} else {
		filters += " | length: all"
	}
	if leaning := m.feed.Leaning(); leaning != "" && leaning != models.LeaningUnspecified {
		filters += " | leaning: " + string(leaning)
	}
	b.WriteString(dimStyle.Render(filters) + "\n\n")

	if m.feed.Loading() {
		b.WriteString("loading...\n")
	} else if err := m.feed.Err(); err != nil {
		b.WriteString(errorStyle.Render("failed to fetch articles: "+err.Error()) + "\n")
	} else {
		articles := m.feed.Articles()
		if len(articles) == 0 {
			b.WriteString(dimStyle.Render("no articles match the current filters") + "\n")
		}
		for i, a := range articles {
			marks := ""
			if m.ops.IsLiked(a.ID.String()) {
				marks += " [liked]"
			}
			if m.ops.IsSaved(a.ID.String()) {
				marks += " [saved]"
			}
			line := fmt.Sprintf("%s — %s (%d likes, %d shares)%s", a.Title, a.Author, a.Likes, a.Shares, marks)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	}

	b.WriteString("\n" + dimStyle.Render("j/k move · enter read · l like · s save · S share · v saved · t/w filters · r refresh · ctrl+l logout · q quit") + "\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func (m Model) viewSaved() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("NewsLens — saved") + "\n\n")

	if len(m.saved) == 0 {
		b.WriteString(dimStyle.Render("nothing saved yet") + "\n")
	}
	for i, a := range m.saved {
		line := fmt.Sprintf("%s — %s", a.Title, a.Author)
		if i == m.savedCursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("j/k move · enter read · s unsave · esc back") + "\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

func (m Model) viewDetail() string {
	if m.detail == nil {
		return ""
	}
	a := m.detail
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.Title) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s · %s · %v", a.Author, a.PublishedDate.Format("Jan 2, 2006"), a.Topics)) + "\n\n")
	b.WriteString(truncateWords(a.Content, int(a.WordCount)) + "\n")
	b.WriteString("\n" + dimStyle.Render("esc to go back") + "\n")
	return b.String()
}

// truncateWords cuts content to the article's reading-length tier.
func truncateWords(content string, wordCount int) string {
	words := strings.Fields(content)
	if len(words) <= wordCount {
		return content
	}
	return strings.Join(words[:wordCount], " ") + "..."
}
