package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"yuwelongo/internal/domain"
)

const (
	// DefaultQuestionsPerLevel is the batch size requested for every level.
	DefaultQuestionsPerLevel = 10
	// DefaultSubmitTimeout bounds one background result submission.
	DefaultSubmitTimeout = 10 * time.Second
)

// State is the phase of a game session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StateLevelComplete
	StateFinished
	StateError
)

var stateNames = map[State]string{
	StateIdle:          "idle",
	StateLoading:       "loading",
	StatePlaying:       "playing",
	StateLevelComplete: "level-complete",
	StateFinished:      "finished",
	StateError:         "error",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Feedback tells whether the confirmed answer of the current question was right.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
)

func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct"
	case FeedbackIncorrect:
		return "incorrect"
	default:
		return "none"
	}
}

func (f Feedback) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Event is an input to the game state machine.
type Event interface{ gameEvent() }

type (
	// StartGame loads the level catalog and the first level.
	StartGame struct{}
	// SelectOption records a not yet confirmed choice.
	SelectOption struct{ Option string }
	// ConfirmAnswer scores the selected option.
	ConfirmAnswer struct{}
	// NextQuestion moves past a confirmed question.
	NextQuestion struct{}
	// ContinueGame leaves the level-complete screen.
	ContinueGame struct{}
	// ExitGame abandons the game. ClearSession drops the stored session id;
	// leaving it allows a later start to resume the same session.
	ExitGame struct{ ClearSession bool }
)

func (StartGame) gameEvent()     {}
func (SelectOption) gameEvent()  {}
func (ConfirmAnswer) gameEvent() {}
func (NextQuestion) gameEvent()  {}
func (ContinueGame) gameEvent()  {}
func (ExitGame) gameEvent()      {}

// Player identifies who results are submitted for. A zero ID plays anonymously
// and nothing is submitted.
type Player struct {
	ID   int64
	Name string
}

// GameConfig tunes a Controller.
type GameConfig struct {
	QuestionsPerLevel int
	SubmitTimeout     time.Duration
}

// GameDeps are the collaborators a Controller drives.
type GameDeps struct {
	Catalog   *LevelCatalog
	Questions *QuestionProvider
	Results   *ResultSubmitter // optional
	Sessions  *SessionIDs
}

// LevelOutcome summarizes the level that was just finished.
type LevelOutcome struct {
	LevelID      int64  `json:"levelId"`
	LevelName    string `json:"levelName"`
	Score        int    `json:"score"`
	CorrectCount int    `json:"correctCount"`
	TotalCount   int    `json:"totalCount"`
	LastLevel    bool   `json:"lastLevel"`
}

// Controller owns one player's game session: level progression, scoring and
// per-level result submission. Events are applied one at a time; network
// loads run outside the lock while the state is StateLoading, which rejects
// every other event.
type Controller struct {
	deps    GameDeps
	player  Player
	cfg     GameConfig
	now     func() time.Time
	pending sync.WaitGroup

	mu   sync.Mutex
	game gameState
}

type gameState struct {
	state         State
	sessionID     string
	levels        []domain.Level
	levelIndex    int
	questions     []domain.PlayableQuestion
	questionIndex int
	totalScore    int
	levelScore    int
	levelCorrect  int
	selected      string
	feedback      Feedback
	completed     *LevelOutcome
	err           error
}

func NewController(deps GameDeps, player Player, cfg GameConfig) *Controller {
	return NewControllerWithClock(deps, player, cfg, time.Now)
}

// NewControllerWithClock allows deterministic result timestamps in tests.
func NewControllerWithClock(deps GameDeps, player Player, cfg GameConfig, now func() time.Time) *Controller {
	if cfg.QuestionsPerLevel <= 0 {
		cfg.QuestionsPerLevel = DefaultQuestionsPerLevel
	}
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = DefaultSubmitTimeout
	}
	return &Controller{
		deps:   deps,
		player: player,
		cfg:    cfg,
		now:    now,
		game:   gameState{state: StateIdle},
	}
}

// Start is shorthand for Dispatch(ctx, StartGame{}).
func (c *Controller) Start(ctx context.Context) (Snapshot, error) {
	return c.Dispatch(ctx, StartGame{})
}

// Dispatch applies ev to the session and returns the resulting snapshot.
// Events that the current state does not accept fail with
// domain.ErrInvalidTransition and leave the session untouched.
func (c *Controller) Dispatch(ctx context.Context, ev Event) (Snapshot, error) {
	switch ev := ev.(type) {
	case StartGame:
		return c.start(ctx)
	case SelectOption:
		return c.apply(func(g *gameState) error { return g.selectOption(ev.Option) })
	case ConfirmAnswer:
		return c.apply(func(g *gameState) error { return g.confirm() })
	case NextQuestion:
		return c.next(ctx)
	case ContinueGame:
		return c.continueGame(ctx)
	case ExitGame:
		return c.exit(ctx, ev.ClearSession)
	default:
		return c.Snapshot(), fmt.Errorf("%w: unknown event %T", domain.ErrInvalidTransition, ev)
	}
}

// Snapshot returns a copy of the current session for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.snapshot()
}

// Wait blocks until background result submissions have finished.
func (c *Controller) Wait() {
	c.pending.Wait()
}

func (c *Controller) apply(fn func(g *gameState) error) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := fn(&c.game)
	return c.game.snapshot(), err
}

func (c *Controller) start(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	switch c.game.state {
	case StateIdle, StateError, StateFinished:
	default:
		defer c.mu.Unlock()
		return c.game.snapshot(), transitionErr(c.game.state, StartGame{})
	}
	c.game = gameState{state: StateLoading}
	c.mu.Unlock()

	sessionID := c.deps.Sessions.GetOrCreate(ctx)
	levels, err := c.deps.Catalog.Load(ctx)
	var batch []domain.PlayableQuestion
	if err == nil {
		batch, err = c.loadLevel(ctx, levels[0])
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.game.sessionID = sessionID
	c.game.levels = levels
	c.game.levelIndex = 0
	if err != nil {
		c.game.fail(err)
		return c.game.snapshot(), err
	}
	c.game.enterLevel(batch)
	return c.game.snapshot(), nil
}

func (c *Controller) next(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := &c.game
	if g.state != StatePlaying || g.feedback == FeedbackNone {
		return g.snapshot(), transitionErr(g.state, NextQuestion{})
	}

	g.feedback = FeedbackNone
	g.selected = ""
	if g.questionIndex < len(g.questions)-1 {
		g.questionIndex++
		return g.snapshot(), nil
	}

	level := g.levels[g.levelIndex]
	outcome := LevelOutcome{
		LevelID:      level.ID,
		LevelName:    level.Name,
		Score:        g.levelScore,
		CorrectCount: g.levelCorrect,
		TotalCount:   len(g.questions),
		LastLevel:    g.levelIndex == len(g.levels)-1,
	}
	c.submit(ctx, domain.GameResult{
		LevelID:      level.ID,
		UserID:       c.player.ID,
		UserName:     c.player.Name,
		Score:        outcome.Score,
		CorrectCount: outcome.CorrectCount,
		TotalCount:   outcome.TotalCount,
		PlayedAt:     c.now(),
		SessionID:    g.sessionID,
	})

	// Already folded into the total and submitted.
	g.levelScore, g.levelCorrect = 0, 0
	g.completed = &outcome
	g.state = StateLevelComplete
	return g.snapshot(), nil
}

func (c *Controller) continueGame(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	g := &c.game
	if g.state != StateLevelComplete {
		defer c.mu.Unlock()
		return g.snapshot(), transitionErr(g.state, ContinueGame{})
	}
	if g.completed != nil && g.completed.LastLevel {
		g.state = StateFinished
		snap := g.snapshot()
		c.mu.Unlock()
		c.deps.Sessions.Clear(ctx)
		return snap, nil
	}
	g.levelIndex++
	g.levelScore, g.levelCorrect = 0, 0
	g.state = StateLoading
	level := g.levels[g.levelIndex]
	c.mu.Unlock()

	batch, err := c.loadLevel(ctx, level)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		g.fail(err)
		return g.snapshot(), err
	}
	g.enterLevel(batch)
	return g.snapshot(), nil
}

func (c *Controller) exit(ctx context.Context, clearSession bool) (Snapshot, error) {
	c.mu.Lock()
	prev := c.game.state
	switch prev {
	case StatePlaying, StateLevelComplete, StateError, StateFinished:
	default:
		defer c.mu.Unlock()
		return c.game.snapshot(), transitionErr(prev, ExitGame{})
	}
	c.game = gameState{state: StateIdle}
	snap := c.game.snapshot()
	c.mu.Unlock()

	if clearSession || prev == StateFinished {
		c.deps.Sessions.Clear(ctx)
	}
	return snap, nil
}

func (c *Controller) loadLevel(ctx context.Context, level domain.Level) ([]domain.PlayableQuestion, error) {
	batch, err := c.deps.Questions.Load(ctx, level.ID, c.cfg.QuestionsPerLevel)
	if err != nil {
		return nil, fmt.Errorf("load questions for level %d: %w", level.ID, err)
	}
	if len(batch) == 0 {
		return nil, fmt.Errorf("level %d: %w", level.ID, domain.ErrNoQuestionsForLevel)
	}
	return batch, nil
}

// submit sends result in the background; failures are logged and never
// affect the score already credited.
func (c *Controller) submit(ctx context.Context, result domain.GameResult) {
	if c.deps.Results == nil || c.player.ID == 0 {
		return
	}
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.SubmitTimeout)
		defer cancel()
		if _, err := c.deps.Results.Submit(sctx, result); err != nil {
			log.Printf("submit result level=%d session=%s: %v", result.LevelID, result.SessionID, err)
		}
	}()
}

func (g *gameState) enterLevel(batch []domain.PlayableQuestion) {
	g.questions = batch
	g.questionIndex = 0
	g.levelScore, g.levelCorrect = 0, 0
	g.selected = ""
	g.feedback = FeedbackNone
	g.completed = nil
	g.err = nil
	g.state = StatePlaying
}

func (g *gameState) fail(err error) {
	g.err = err
	g.state = StateError
}

func (g *gameState) current() domain.PlayableQuestion {
	return g.questions[g.questionIndex]
}

func (g *gameState) selectOption(option string) error {
	if g.state != StatePlaying {
		return transitionErr(g.state, SelectOption{Option: option})
	}
	if g.feedback != FeedbackNone {
		return nil
	}
	for _, opt := range g.current().DisplayOptions {
		if opt == option {
			g.selected = option
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not an option", domain.ErrInvalidSelection, option)
}

// confirm is a no-op without a selection or once feedback is set, so a
// question can only be scored once.
func (g *gameState) confirm() error {
	if g.state != StatePlaying {
		return transitionErr(g.state, ConfirmAnswer{})
	}
	if g.selected == "" || g.feedback != FeedbackNone {
		return nil
	}
	q := g.current()
	if !domain.MatchesAnswer(g.selected, q.CorrectAnswer) {
		g.feedback = FeedbackIncorrect
		return nil
	}
	g.feedback = FeedbackCorrect
	g.levelScore += q.XP
	g.totalScore += q.XP
	g.levelCorrect++
	return nil
}

func transitionErr(s State, ev Event) error {
	return fmt.Errorf("%w: %T while %s", domain.ErrInvalidTransition, ev, s)
}

// UserMessage turns a loading failure into the text shown to the player.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrNoLevelsAvailable):
		return "No levels are available yet. Please try again later."
	case errors.Is(err, domain.ErrNoQuestionsForLevel):
		return "No questions were found for this level. Please try again later."
	case errors.Is(err, domain.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	default:
		return "There was a problem loading the game. Please try again."
	}
}
