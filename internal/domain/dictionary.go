package domain

import (
	"regexp"
	"strings"
	"time"
)

// Category groups dictionary words (animals, family, territory...).
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Word is one Nasa Yuwe dictionary entry.
type Word struct {
	ID          int64  `json:"id"`
	Nasa        string `json:"nasa"`
	Translation string `json:"translation"`
	Example     string `json:"example,omitempty"`
	CategoryID  int64  `json:"categoryId,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	AudioURL    string `json:"audioUrl,omitempty"`
}

// WordField selects which side of the dictionary a search matches.
type WordField string

const (
	WordFieldNasa        WordField = "nasa"
	WordFieldTranslation WordField = "translation"
)

// ParseWordField accepts the English names and the backend's query keys.
func ParseWordField(raw string) (WordField, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "nasa", "palabranasa":
		return WordFieldNasa, true
	case "translation", "traduccion", "traducción":
		return WordFieldTranslation, true
	default:
		return "", false
	}
}

// Matches reports whether term occurs in the word's Nasa form or translation,
// ignoring case.
func (w Word) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(w.Nasa), term) ||
		strings.Contains(strings.ToLower(w.Translation), term)
}

// Favorite is a word a user saved.
type Favorite struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	Word   Word  `json:"word"`
}

// User is a registered player profile.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Status       string    `json:"status,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// RolePlayer is the role self-registered accounts receive.
const RolePlayer = "USUARIO"

// Registration is the sign-up form of a new player.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate changes a user's name, email or password. Empty fields are
// left unchanged by the backend.
type ProfileUpdate struct {
	ID       int64  `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

var createdSuffix = regexp.MustCompile(`\s*\(Creado:.*\)$`)

// CleanDescription drops the "(Creado: ...)" audit suffix the admin screens
// append to category descriptions.
func CleanDescription(description string) string {
	return strings.TrimSpace(createdSuffix.ReplaceAllString(description, ""))
}
