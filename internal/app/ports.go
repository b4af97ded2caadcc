package app

import (
	"context"

	"yuwelongo/internal/domain"
)

// SessionRepository abstracts the persistent slot that keeps a game session id
// alive across reloads (in-memory, Redis, etc). Load reports ok=false when the
// slot is empty.
type SessionRepository interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, sessionID string) error
	Delete(ctx context.Context, key string) error
}

// LevelService lists the game levels known to the backend.
type LevelService interface {
	Levels(ctx context.Context) ([]domain.Level, error)
}

// QuestionService returns a random batch of questions for a level. It returns
// domain.ErrNotFound when the level has no questions.
type QuestionService interface {
	QuestionsForLevel(ctx context.Context, levelID int64, count int) ([]domain.Question, error)
}

// ScoreService records level results and serves leaderboards.
type ScoreService interface {
	SubmitResult(ctx context.Context, result domain.GameResult) (domain.ResultAck, error)
	GlobalRanking(ctx context.Context, limit int) ([]domain.RankingEntry, error)
	LevelRanking(ctx context.Context, levelID int64, limit int) ([]domain.RankingEntry, error)
}

// HistoryService exposes per-user play history and accumulated score.
type HistoryService interface {
	History(ctx context.Context, userID int64) ([]domain.HistoryEntry, error)
	TotalScore(ctx context.Context, userID int64) (int, error)
}

// WordCatalog serves the public dictionary.
type WordCatalog interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Category(ctx context.Context, id int64) (domain.Category, error)
	Words(ctx context.Context) ([]domain.Word, error)
	SearchWords(ctx context.Context, field domain.WordField, query string) ([]domain.Word, error)
}

// FavoriteStore keeps the words each user saved.
type FavoriteStore interface {
	Favorites(ctx context.Context, userID int64) ([]domain.Favorite, error)
	AddFavorite(ctx context.Context, userID, wordID int64) (domain.Favorite, error)
	RemoveFavorite(ctx context.Context, favoriteID int64) error
}

// AccountStore registers players and manages their profiles.
type AccountStore interface {
	Register(ctx context.Context, reg domain.Registration) (domain.User, error)
	User(ctx context.Context, id int64) (domain.User, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error)
}
