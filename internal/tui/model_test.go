package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yuwelongo/internal/app"
	"yuwelongo/internal/domain"
	"yuwelongo/internal/infra/memory"
)

func newTestModel(t *testing.T) (Model, *memory.SessionStore) {
	t.Helper()
	catalog := memory.NewStaticCatalog(
		[]domain.Level{{ID: 1, Name: "Animales", Order: 1, Status: domain.LevelActive}},
		[]domain.Question{
			{ID: 11, LevelID: 1, Prompt: "El perro se dice alku", Options: [4]string{"alku", "wala", "nasa", "yu'"}, CorrectAnswer: "alku", XP: 5},
		},
	)
	sessions := memory.NewSessionStore()
	games := &app.GameFactory{
		Catalog:   app.NewLevelCatalog(catalog, false),
		Questions: app.NewQuestionProvider(catalog),
		Sessions:  sessions,
	}
	m := New(context.Background(), games.NewGame("terminal", app.Player{}), "Ana")
	return run(t, m, m.Init()), sessions
}

// run executes cmd synchronously and feeds its messages back into the model.
// Commands returned by Update (spinner ticks) are not followed.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = run(t, m, c)
		}
		return m
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func pressAndRun(t *testing.T, m Model, key string) Model {
	t.Helper()
	m, cmd := press(t, m, key)
	return run(t, m, cmd)
}

func TestModelPlaysThroughGame(t *testing.T) {
	m, _ := newTestModel(t)
	require.Equal(t, app.StatePlaying, m.Snapshot().State)
	assert.Contains(t, m.View(), "_________")
	assert.NotContains(t, m.View(), "El perro se dice alku")

	// pick the correct option by number
	idx := indexOf(m.Snapshot().Question.Options, "alku")
	require.GreaterOrEqual(t, idx, 0)
	m = pressAndRun(t, m, string(rune('1'+idx)))
	assert.Equal(t, "alku", m.Snapshot().Selected)

	m = pressAndRun(t, m, "enter")
	assert.Equal(t, app.FeedbackCorrect, m.Snapshot().Feedback)
	assert.Contains(t, m.View(), "Correct! +5 XP")

	m = pressAndRun(t, m, "enter")
	require.Equal(t, app.StateLevelComplete, m.Snapshot().State)
	assert.Contains(t, m.View(), "Level Animales complete!")

	m = pressAndRun(t, m, "enter")
	require.Equal(t, app.StateFinished, m.Snapshot().State)
	assert.Contains(t, m.View(), "Well done, Ana!")
	assert.Contains(t, m.View(), "5")
}

func TestModelFooterFollowsScreen(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, "confirm")
	assert.Contains(t, view, "quit and reset")
	assert.NotContains(t, view, "next question")

	m = pressAndRun(t, m, "enter")
	view = m.View()
	assert.Contains(t, view, "next question")
	assert.NotContains(t, view, "confirm")

	m = pressAndRun(t, m, "enter")
	assert.Contains(t, m.View(), "final score")
}

func TestModelShowsSpinnerWhileLoading(t *testing.T) {
	catalog := memory.NewStaticCatalog(nil, nil)
	games := &app.GameFactory{
		Catalog:   app.NewLevelCatalog(catalog, false),
		Questions: app.NewQuestionProvider(catalog),
		Sessions:  memory.NewSessionStore(),
	}
	m := New(context.Background(), games.NewGame("terminal", app.Player{}), "")
	assert.Contains(t, m.View(), "Loading game")

	m, cmd := press(t, m, "1")
	assert.Nil(t, cmd, "keys other than quit are ignored while loading")
	assert.Equal(t, app.StateIdle, m.Snapshot().State)
}

func TestModelEnterConfirmsCursorOption(t *testing.T) {
	m, _ := newTestModel(t)
	m = pressAndRun(t, m, "down")
	options := m.Snapshot().Question.Options
	assert.Equal(t, options[1], m.Snapshot().Selected)

	m = pressAndRun(t, m, "enter")
	assert.NotEqual(t, app.FeedbackNone, m.Snapshot().Feedback)
	assert.Equal(t, "alku", m.Snapshot().Question.CorrectAnswer)
}

func TestModelQuitKeepsSessionForResume(t *testing.T) {
	m, sessions := newTestModel(t)
	sessionID := m.Snapshot().SessionID

	m, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	_, quit := m.Update(cmd())
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())

	id, ok, err := sessions.Load(context.Background(), "terminal:"+app.SessionSlot)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sessionID, id)
}

func TestModelExitAndClear(t *testing.T) {
	m, sessions := newTestModel(t)

	_, cmd := press(t, m, "x")
	require.NotNil(t, cmd)
	cmd()

	_, ok, err := sessions.Load(context.Background(), "terminal:"+app.SessionSlot)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestModelShowsLoadError(t *testing.T) {
	catalog := memory.NewStaticCatalog(nil, nil)
	games := &app.GameFactory{
		Catalog:   app.NewLevelCatalog(catalog, false),
		Questions: app.NewQuestionProvider(catalog),
		Sessions:  memory.NewSessionStore(),
	}
	m := New(context.Background(), games.NewGame("terminal", app.Player{}), "")
	m = run(t, m, m.Init())

	require.Equal(t, app.StateError, m.Snapshot().State)
	assert.True(t, strings.Contains(m.View(), "No levels are available"))
	assert.Contains(t, m.View(), "retry")
}

func indexOf(options []string, want string) int {
	for i, o := range options {
		if o == want {
			return i
		}
	}
	return -1
}
