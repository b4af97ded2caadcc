package domain

import (
	"strings"
	"time"
)

// LevelStatus is the lifecycle status an administrator assigns to a level.
type LevelStatus string

const (
	LevelActive   LevelStatus = "active"
	LevelInactive LevelStatus = "inactive"
	LevelUpcoming LevelStatus = "upcoming"
)

// Level is an ordered stage of the game with its own question pool.
type Level struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Order       int         `json:"order"`
	Description string      `json:"description"`
	Status      LevelStatus `json:"status"`
}

// Playable reports whether the level may be served to players.
func (l Level) Playable() bool {
	return l.Status == LevelActive
}

// MediaKind tells the client which hint accompanies a question.
type MediaKind string

const (
	MediaNone  MediaKind = ""
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
)

// Question is a canonical quiz question as authored by an administrator.
type Question struct {
	ID            int64     `json:"id"`
	Prompt        string    `json:"prompt"`
	Options       [4]string `json:"options"`
	CorrectAnswer string    `json:"correctAnswer"`
	XP            int       `json:"xp"`
	LevelID       int64     `json:"levelId"`
	WordID        int64     `json:"wordId,omitempty"`
	MediaKind     MediaKind `json:"mediaKind,omitempty"`
	MediaURL      string    `json:"mediaUrl,omitempty"`
}

// PlayableQuestion is the display-ready variant of a Question: options are
// presented in shuffled order and the answer word is masked out of the prompt.
type PlayableQuestion struct {
	Question
	DisplayOptions []string `json:"displayOptions"`
	MaskedPrompt   string   `json:"maskedPrompt"`
}

// GameResult is the outcome of one completed level, sent once to the score service.
type GameResult struct {
	LevelID      int64     `json:"levelId"`
	UserID       int64     `json:"userId"`
	UserName     string    `json:"userName,omitempty"`
	Score        int       `json:"score"`
	CorrectCount int       `json:"correctCount"`
	TotalCount   int       `json:"totalCount"`
	PlayedAt     time.Time `json:"playedAt"`
	SessionID    string    `json:"sessionId"`
}

// ResultAck is the score service's acknowledgement of a submitted result.
type ResultAck struct {
	ID int64 `json:"id"`
}

// RankingEntry is one leaderboard row as returned by the score service.
type RankingEntry struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
	Score    int    `json:"score"`
}

// RankingRow is a RankingEntry with its 1-based leaderboard position.
type RankingRow struct {
	Position int `json:"position"`
	RankingEntry
}

// HistoryEntry is one past level play of a user.
type HistoryEntry struct {
	ID           int64     `json:"id"`
	LevelID      int64     `json:"levelId"`
	LevelName    string    `json:"levelName,omitempty"`
	Score        int       `json:"score"`
	CorrectCount int       `json:"correctCount"`
	TotalCount   int       `json:"totalCount"`
	PlayedAt     time.Time `json:"playedAt"`
	SessionID    string    `json:"sessionId,omitempty"`
}

// Account is the authenticated player profile returned by login.
type Account struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Token  string `json:"-"`
}

// ParseLevelStatus normalizes the status strings emitted by the backend
// (Spanish or English). Unknown values map to LevelInactive.
func ParseLevelStatus(raw string) LevelStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "activo", "active":
		return LevelActive
	case "proximamente", "próximamente", "upcoming":
		return LevelUpcoming
	default:
		return LevelInactive
	}
}

// MediaFor picks the question hint, preferring an image over audio.
func MediaFor(imageURL, audioURL string) (MediaKind, string) {
	switch {
	case imageURL != "":
		return MediaImage, imageURL
	case audioURL != "":
		return MediaAudio, audioURL
	default:
		return MediaNone, ""
	}
}
