package app

import "yuwelongo/internal/domain"

// Snapshot is a read-only view of a game session.
type Snapshot struct {
	State         State         `json:"state"`
	SessionID     string        `json:"sessionId,omitempty"`
	Level         *domain.Level `json:"level,omitempty"`
	LevelIndex    int           `json:"levelIndex"`
	LevelCount    int           `json:"levelCount"`
	Question      *QuestionView `json:"question,omitempty"`
	QuestionIndex int           `json:"questionIndex"`
	QuestionCount int           `json:"questionCount"`
	Selected      string        `json:"selected,omitempty"`
	Feedback      Feedback      `json:"feedback"`
	LevelScore    int           `json:"levelScore"`
	LevelCorrect  int           `json:"levelCorrect"`
	TotalScore    int           `json:"totalScore"`
	Completed     *LevelOutcome `json:"completed,omitempty"`
	IsLastLevel   bool          `json:"isLastLevel"`
	Error         string        `json:"error,omitempty"`

	Err error `json:"-"`
}

// QuestionView is the current question as shown to the player. The correct
// answer is only revealed once the answer has been confirmed.
type QuestionView struct {
	ID            int64            `json:"id"`
	Prompt        string           `json:"prompt"`
	Options       []string         `json:"options"`
	XP            int              `json:"xp"`
	MediaKind     domain.MediaKind `json:"mediaKind,omitempty"`
	MediaURL      string           `json:"mediaUrl,omitempty"`
	CorrectAnswer string           `json:"correctAnswer,omitempty"`
}

// Progress is the 1-based position of the current question as a percentage.
func (s Snapshot) Progress() int {
	if s.QuestionCount == 0 {
		return 0
	}
	return (s.QuestionIndex + 1) * 100 / s.QuestionCount
}

func (g *gameState) snapshot() Snapshot {
	snap := Snapshot{
		State:         g.state,
		SessionID:     g.sessionID,
		LevelIndex:    g.levelIndex,
		LevelCount:    len(g.levels),
		QuestionIndex: g.questionIndex,
		QuestionCount: len(g.questions),
		Selected:      g.selected,
		Feedback:      g.feedback,
		LevelScore:    g.levelScore,
		LevelCorrect:  g.levelCorrect,
		TotalScore:    g.totalScore,
		IsLastLevel:   len(g.levels) > 0 && g.levelIndex == len(g.levels)-1,
		Err:           g.err,
		Error:         UserMessage(g.err),
	}
	if g.levelIndex < len(g.levels) {
		lvl := g.levels[g.levelIndex]
		snap.Level = &lvl
	}
	if g.completed != nil {
		outcome := *g.completed
		snap.Completed = &outcome
		snap.IsLastLevel = outcome.LastLevel
	}
	if g.state == StatePlaying && g.questionIndex < len(g.questions) {
		q := g.current()
		view := &QuestionView{
			ID:        q.ID,
			Prompt:    q.MaskedPrompt,
			Options:   append([]string(nil), q.DisplayOptions...),
			XP:        q.XP,
			MediaKind: q.MediaKind,
			MediaURL:  q.MediaURL,
		}
		if g.feedback != FeedbackNone {
			view.CorrectAnswer = q.CorrectAnswer
		}
		snap.Question = view
	}
	return snap
}
