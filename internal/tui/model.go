package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"yuwelongo/internal/app"
	"yuwelongo/internal/domain"
)

// Game is the minimal controller surface the terminal client drives.
type Game interface {
	Dispatch(ctx context.Context, ev app.Event) (app.Snapshot, error)
	Snapshot() app.Snapshot
}

type snapshotMsg struct {
	snap app.Snapshot
	err  error
}

type exitedMsg struct{}

// Model renders one game session and turns key presses into game events.
type Model struct {
	ctx    context.Context
	game   Game
	player string

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model

	snap   app.Snapshot
	cursor int
	busy   bool
	notice string
	width  int
}

// New builds a model for game. player is only used for the greeting.
func New(ctx context.Context, game Game, player string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Lavender)

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(Lavender)
	h.Styles.ShortDesc = Muted
	h.Styles.ShortSeparator = Disabled

	return Model{
		ctx:      ctx,
		game:     game,
		player:   player,
		keys:     defaultKeys(),
		help:     h,
		spinner:  sp,
		progress: progress.New(progress.WithGradient(string(Sapphire), string(Lavender)), progress.WithWidth(40), progress.WithoutPercentage()),
		snap:     game.Snapshot(),
		busy:     true, // Init starts the game
	}
}

// Snapshot returns the last state the model rendered.
func (m Model) Snapshot() app.Snapshot { return m.snap }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, dispatchCmd(m.ctx, m.game, app.StartGame{}))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case snapshotMsg:
		m.busy = false
		m.snap = msg.snap
		m.notice = ""
		if msg.err != nil && msg.snap.State != app.StateError {
			m.notice = msg.err.Error()
		}
		m.syncCursor()
		return m, nil
	case exitedMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Pause):
		return m, m.exit(false)
	case key.Matches(msg, m.keys.Reset):
		return m, m.exit(true)
	}
	if m.busy {
		return m, nil
	}

	switch m.snap.State {
	case app.StatePlaying:
		return m.handlePlayingKey(msg)
	case app.StateLevelComplete:
		if key.Matches(msg, m.keys.Continue) {
			return m.send(app.ContinueGame{})
		}
	case app.StateFinished, app.StateError, app.StateIdle:
		if key.Matches(msg, m.keys.Restart) {
			return m.send(app.StartGame{})
		}
	}
	return m, nil
}

func (m Model) handlePlayingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := m.snap.Question
	if q == nil {
		return m, nil
	}
	if m.snap.Feedback != app.FeedbackNone {
		if key.Matches(msg, m.keys.Next) {
			return m.send(app.NextQuestion{})
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			return m.send(app.SelectOption{Option: q.Options[m.cursor]})
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(q.Options)-1 {
			m.cursor++
			return m.send(app.SelectOption{Option: q.Options[m.cursor]})
		}
	case key.Matches(msg, m.keys.Pick):
		if i := int(msg.String()[0] - '1'); i < len(q.Options) {
			m.cursor = i
			return m.send(app.SelectOption{Option: q.Options[i]})
		}
	case key.Matches(msg, m.keys.Confirm):
		if m.snap.Selected == "" {
			return m.send(app.SelectOption{Option: q.Options[m.cursor]}, app.ConfirmAnswer{})
		}
		return m.send(app.ConfirmAnswer{})
	}
	return m, nil
}

// send marks the model busy and applies events off the UI goroutine.
func (m Model) send(events ...app.Event) (tea.Model, tea.Cmd) {
	m.busy = true
	return m, tea.Batch(m.spinner.Tick, dispatchCmd(m.ctx, m.game, events...))
}

// dispatchCmd applies events in order, stopping at the first rejected one, and
// reports the last snapshot.
func dispatchCmd(ctx context.Context, game Game, events ...app.Event) tea.Cmd {
	return func() tea.Msg {
		var (
			snap app.Snapshot
			err  error
		)
		for _, ev := range events {
			snap, err = game.Dispatch(ctx, ev)
			if err != nil {
				break
			}
		}
		return snapshotMsg{snap: snap, err: err}
	}
}

// exit leaves the game; without clear the stored session survives for the next run.
func (m Model) exit(clear bool) tea.Cmd {
	ctx, game := m.ctx, m.game
	return func() tea.Msg {
		switch game.Snapshot().State {
		case app.StatePlaying, app.StateLevelComplete, app.StateError, app.StateFinished:
			_, _ = game.Dispatch(ctx, app.ExitGame{ClearSession: clear})
		}
		return exitedMsg{}
	}
}

func (m *Model) syncCursor() {
	q := m.snap.Question
	if q == nil {
		m.cursor = 0
		return
	}
	for i, opt := range q.Options {
		if opt == m.snap.Selected {
			m.cursor = i
			return
		}
	}
	if m.snap.Selected == "" {
		m.cursor = 0
	}
}

func (m Model) View() string {
	var body string
	switch m.snap.State {
	case app.StateIdle, app.StateLoading:
		body = m.spinner.View() + Muted.Render(" Loading game…")
	case app.StatePlaying:
		body = m.viewQuestion()
	case app.StateLevelComplete:
		body = m.viewLevelComplete()
	case app.StateFinished:
		body = m.viewFinished()
	case app.StateError:
		body = Wrong.Render(m.snap.Error)
	}
	if m.notice != "" {
		body += "\n\n" + Hot.Render(m.notice)
	}
	if keys := m.helpKeys(); len(keys) > 0 {
		body += "\n\n" + m.help.View(keys)
	}
	card := Card
	if m.width > 0 && m.width-8 < 64 {
		card = card.Width(m.width - 8)
	}
	return App.Render(card.Render(body))
}

func (m Model) header() string {
	level := "Level"
	if m.snap.Level != nil {
		level = m.snap.Level.Name
	}
	left := Title.Render(fmt.Sprintf("%s (%d/%d)", level, m.snap.LevelIndex+1, m.snap.LevelCount))
	right := Hot.Render(fmt.Sprintf("★ %d", m.snap.TotalScore))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m Model) viewQuestion() string {
	q := m.snap.Question
	if q == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header() + "\n")
	b.WriteString(m.progress.ViewAs(float64(m.snap.Progress())/100) + " " +
		Muted.Render(fmt.Sprintf("%d/%d", m.snap.QuestionIndex+1, m.snap.QuestionCount)) + "\n\n")

	switch q.MediaKind {
	case domain.MediaImage:
		b.WriteString(Muted.Render("Image hint: "+q.MediaURL) + "\n")
	case domain.MediaAudio:
		b.WriteString(Muted.Render("Listen: "+q.MediaURL) + "\n")
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(q.Prompt) + "\n\n")

	answered := m.snap.Feedback != app.FeedbackNone
	for i, opt := range q.Options {
		line := fmt.Sprintf("%d) %s", i+1, opt)
		switch {
		case answered && domain.MatchesAnswer(opt, q.CorrectAnswer):
			line = Right.Render("✓ " + line)
		case answered && opt == m.snap.Selected:
			line = Wrong.Render("✗ " + line)
		case answered:
			line = Disabled.Render("  " + line)
		case i == m.cursor:
			line = Cursor.Render("▸ " + line)
		default:
			line = Option.Render("  " + line)
		}
		b.WriteString(line + "\n")
	}

	switch m.snap.Feedback {
	case app.FeedbackCorrect:
		b.WriteString("\n" + Right.Render(fmt.Sprintf("Correct! +%d XP", q.XP)))
	case app.FeedbackIncorrect:
		b.WriteString("\n" + Wrong.Render("Incorrect. The answer was "+q.CorrectAnswer))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewLevelComplete() string {
	c := m.snap.Completed
	if c == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("Level %s complete!", c.LevelName)) + "\n\n")
	b.WriteString(fmt.Sprintf("Correct answers: %d/%d\n", c.CorrectCount, c.TotalCount))
	b.WriteString(fmt.Sprintf("Level score:     %d\n", c.Score))
	b.WriteString(fmt.Sprintf("Total score:     %d", m.snap.TotalScore))
	return b.String()
}

func (m Model) viewFinished() string {
	var b strings.Builder
	greeting := "Game complete!"
	if m.player != "" {
		greeting = fmt.Sprintf("Well done, %s!", m.player)
	}
	b.WriteString(Title.Render(greeting) + "\n\n")
	b.WriteString("Your final score is:\n")
	b.WriteString(Hot.Render(fmt.Sprintf("%d", m.snap.TotalScore)))
	return b.String()
}

// helpKeys lists the bindings that do something on the current screen.
func (m Model) helpKeys() screenKeys {
	k := m.keys
	if m.busy {
		return screenKeys{k.Pause}
	}
	switch m.snap.State {
	case app.StatePlaying:
		if m.snap.Feedback != app.FeedbackNone {
			return screenKeys{k.Next, k.Pause, k.Reset}
		}
		return screenKeys{k.Up, k.Pick, k.Confirm, k.Pause, k.Reset}
	case app.StateLevelComplete:
		next := k.Continue
		if m.snap.Completed != nil && m.snap.Completed.LastLevel {
			next.SetHelp("enter", "final score")
		}
		return screenKeys{next, k.Pause, k.Reset}
	case app.StateError:
		retry := k.Restart
		retry.SetHelp("enter", "retry")
		return screenKeys{retry, k.Pause}
	case app.StateFinished:
		quit := k.Pause
		quit.SetHelp("q", "quit")
		return screenKeys{k.Restart, quit}
	}
	return nil
}
